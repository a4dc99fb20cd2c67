package ast

import (
	"encoding/json"
	"testing"
)

func TestNodeTypes(t *testing.T) {
	cases := []struct {
		node Node
		want NodeType
	}{
		{Int(1), NodeNum},
		{ID("x"), NodeVar},
		{Bin(Int(1), OpAdd, Int(2)), NodeBinOp},
		{Let("x", Int(1)), NodeAssign},
		{Out(ID("x")), NodePrint},
		{When(ID("x")), NodeIf},
		{Loop(ID("x")), NodeWhile},
		{Prog(), NodeProgram},
	}
	for _, tc := range cases {
		if got := tc.node.NodeType(); got != tc.want {
			t.Fatalf("expected %s, got %s", tc.want, got)
		}
	}
}

func TestEmptyBodiesAreNonNil(t *testing.T) {
	if When(ID("x")).Body == nil || Loop(ID("x")).Body == nil || Prog().Body == nil {
		t.Fatalf("expected empty bodies to be non-nil slices")
	}
}

func TestProgramJSONShape(t *testing.T) {
	prog := Prog(
		Let("x", Bin(Int(100), OpAdd, Int(200))),
		When(Bin(ID("x"), OpGt, Int(1)), Out(ID("x"))),
	)
	data, err := json.Marshal(prog)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"Program","body":[` +
		`{"type":"Assign","target":"x","value":{"type":"BinOp","left":{"type":"Num","value":100},"operator":"+","right":{"type":"Num","value":200}}},` +
		`{"type":"If","condition":{"type":"BinOp","left":{"type":"Var","name":"x"},"operator":">","right":{"type":"Num","value":1}},"body":[{"type":"Print","value":{"type":"Var","name":"x"}}]}]}`
	if string(data) != want {
		t.Fatalf("unexpected JSON:\n got: %s\nwant: %s", data, want)
	}
}
