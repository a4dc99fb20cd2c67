package interpreter

import (
	"bytes"
	"testing"

	"minilang/interpreter-go/pkg/runtime"
)

func runSource(t *testing.T, src string) (*Interpreter, string) {
	t.Helper()
	var out bytes.Buffer
	interp := New(WithStdout(&out))
	if _, err := interp.Run(src); err != nil {
		t.Fatalf("run failed: %v\nsource:\n%s", err, src)
	}
	return interp, out.String()
}

func runSourceErr(t *testing.T, src string) (*Interpreter, string, error) {
	t.Helper()
	var out bytes.Buffer
	interp := New(WithStdout(&out))
	_, err := interp.Run(src)
	if err == nil {
		t.Fatalf("expected error for source:\n%s", src)
	}
	return interp, out.String(), err
}

func wantInt(t *testing.T, v runtime.Value, n int64) {
	t.Helper()
	iv, ok := v.(runtime.IntegerValue)
	if !ok || iv.Val == nil || !iv.Val.IsInt64() || iv.Val.Int64() != n {
		t.Fatalf("want int %d, got %#v", n, v)
	}
}

func wantBool(t *testing.T, v runtime.Value, b bool) {
	t.Helper()
	bv, ok := v.(runtime.BoolValue)
	if !ok || bv.Val != b {
		t.Fatalf("want bool %v, got %#v", b, v)
	}
}
