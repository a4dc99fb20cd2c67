package interpreter

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/lexer"
	"minilang/interpreter-go/pkg/parser"
	"minilang/interpreter-go/pkg/runtime"
)

func TestInterpreterAssignment(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithStdout(&out))
	if _, err := interp.Interpret(parser.New(lexer.New("let x = 100"))); err != nil {
		t.Fatalf("interpret: %v", err)
	}
	wantInt(t, interp.Globals()["x"], 100)
	if interp.Depth() != 1 {
		t.Fatalf("expected only the global frame, depth %d", interp.Depth())
	}
}

func TestInterpreterPrint(t *testing.T) {
	_, out := runSource(t, "print 123")
	if !strings.Contains(out, "123") {
		t.Fatalf("expected output to contain 123, got %q", out)
	}
	if out != "123\n" {
		t.Fatalf("expected exactly one line, got %q", out)
	}
}

func TestWhileLoopScopePropagation(t *testing.T) {
	interp, _ := runSource(t, `
		let x = 1
		while x < 3 then
			let x = x + 1
			let y = 99
		endwhile`)
	globals := interp.Globals()
	wantInt(t, globals["x"], 3)
	if _, ok := globals["y"]; ok {
		t.Fatalf("y escaped the loop body: %v", globals.Keys())
	}
}

func TestIfBodyPropagatesExistingNamesOnly(t *testing.T) {
	interp, out := runSource(t, `
		let total = 10
		if total > 5 then
			total = total * 2
			let scratch = 7
			print scratch
		endif
		print total`)
	if out != "7\n20\n" {
		t.Fatalf("unexpected output %q", out)
	}
	globals := interp.Globals()
	wantInt(t, globals["total"], 20)
	if _, ok := globals["scratch"]; ok {
		t.Fatalf("scratch leaked out of if body")
	}
}

func TestIfConditionFalseSkipsBody(t *testing.T) {
	interp, out := runSource(t, `
		let x = 1
		if x > 5 then
			print 999
			x = 0
		endif`)
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
	wantInt(t, interp.Globals()["x"], 1)
}

func TestLoopLocalsResetEachIteration(t *testing.T) {
	_, out, err := runSourceErr(t, `
		let i = 0
		while i < 3 then
			if i > 0 then
				print temp
			endif
			let temp = i
			i = temp + 1
		endwhile`)
	var undef *UndefinedVariableError
	if !errors.As(err, &undef) || undef.Name != "temp" {
		t.Fatalf("expected undefined temp on second iteration, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output before failure, got %q", out)
	}
}

func TestNestedBlocksPropagateOutward(t *testing.T) {
	interp, _ := runSource(t, `
		let depth = 0
		let n = 0
		while n < 2 then
			if n == 0 then
				if 1 then
					depth = depth + 10
				endif
			endif
			n = n + 1
			depth = depth + 1
		endwhile`)
	globals := interp.Globals()
	wantInt(t, globals["depth"], 12)
	wantInt(t, globals["n"], 2)
}

func TestFloorDivision(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
		{6, 3, 2},
		{-6, 3, -2},
		{0, 5, 0},
		{1, 3, 0},
		{-1, 3, -1},
	}
	interp := New()
	for _, tc := range cases {
		val, err := interp.evaluateExpression(ast.Bin(ast.Int(tc.a), "/", ast.Int(tc.b)))
		if err != nil {
			t.Fatalf("%d / %d: %v", tc.a, tc.b, err)
		}
		wantInt(t, val, tc.want)
	}
}

func TestFloorDivisionFromSource(t *testing.T) {
	_, out := runSource(t, "print (0 - 7) / 2\nprint 7 / (0 - 2)")
	if out != "-4\n-4\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestArithmeticAndPrecedence(t *testing.T) {
	_, out := runSource(t, `
		let a = 2 + 3 * 4
		let b = (2 + 3) * 4
		let c = 20 - 5 - 3
		print a
		print b
		print c`)
	if out != "14\n20\n12\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestArbitraryPrecisionIntegers(t *testing.T) {
	interp, out := runSource(t, "let big = 99999999999999999999 * 99999999999999999999\nprint big")
	want, _ := new(big.Int).SetString("9999999999999999999800000000000000000001", 10)
	if out != want.String()+"\n" {
		t.Fatalf("unexpected output %q", out)
	}
	got, ok := interp.Globals()["big"].(runtime.IntegerValue)
	if !ok || got.Val.Cmp(want) != 0 {
		t.Fatalf("unexpected global %#v", interp.Globals()["big"])
	}

	val, err := interp.evaluateExpression(ast.Bin(ast.IntBig(want), "+", ast.Int(-1)))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got := valueToString(val); got != "9999999999999999999800000000000000000000" {
		t.Fatalf("unexpected sum %s", got)
	}
}

func TestComparisonsProduceBooleans(t *testing.T) {
	interp := New()
	cases := []struct {
		expr ast.Expression
		want bool
	}{
		{ast.Bin(ast.Int(2), ">", ast.Int(1)), true},
		{ast.Bin(ast.Int(2), "<", ast.Int(1)), false},
		{ast.Bin(ast.Int(2), "==", ast.Int(2)), true},
		{ast.Bin(ast.Bin(ast.Int(1), "<", ast.Int(2)), "<", ast.Int(3)), true},
		{ast.Bin(ast.Bin(ast.Int(3), ">", ast.Int(2)), ">", ast.Int(1)), false},
		{ast.Bin(ast.Bin(ast.Int(1), "==", ast.Int(1)), "==", ast.Int(1)), true},
	}
	for _, tc := range cases {
		val, err := interp.evaluateExpression(tc.expr)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		wantBool(t, val, tc.want)
	}
}

func TestPrintBooleans(t *testing.T) {
	_, out := runSource(t, "print 3 > 2\nprint 3 < 2")
	if out != "true\nfalse\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestIntegerConditionsAreTruthy(t *testing.T) {
	_, out := runSource(t, `
		let n = 3
		while n then
			print n
			n = n - 1
		endwhile
		if 0 then print 100 endif`)
	if out != "3\n2\n1\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestUndefinedVariable(t *testing.T) {
	interp, _, err := runSourceErr(t, "let x = 1\nprint missing")
	var undef *UndefinedVariableError
	if !errors.As(err, &undef) || undef.Name != "missing" {
		t.Fatalf("expected UndefinedVariableError for missing, got %v", err)
	}
	if !errors.Is(err, ErrRuntime) {
		t.Fatalf("expected ErrRuntime classification")
	}
	if err.Error() != "Variable 'missing' not defined" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	wantInt(t, interp.Globals()["x"], 1)
}

func TestUnsupportedOperator(t *testing.T) {
	interp := New()
	_, err := interp.evaluateExpression(ast.Bin(ast.Int(1), "%", ast.Int(2)))
	var unsupported *UnsupportedOperatorError
	if !errors.As(err, &unsupported) || unsupported.Operator != "%" {
		t.Fatalf("expected UnsupportedOperatorError, got %v", err)
	}
	if !errors.Is(err, ErrRuntime) {
		t.Fatalf("expected ErrRuntime classification")
	}
}

func TestOperandsEvaluatedBeforeOperatorCheck(t *testing.T) {
	interp := New()
	_, err := interp.evaluateExpression(ast.Bin(ast.Int(1), ">=", ast.ID("ghost")))
	var undef *UndefinedVariableError
	if !errors.As(err, &undef) {
		t.Fatalf("expected right operand to be evaluated first, got %v", err)
	}
}

func TestDivisionByZero(t *testing.T) {
	_, _, err := runSourceErr(t, "let zero = 0\nprint 1 / zero")
	var divErr *DivisionByZeroError
	if !errors.As(err, &divErr) || !errors.Is(err, ErrRuntime) {
		t.Fatalf("expected DivisionByZeroError, got %v", err)
	}
}

func TestRuntimeErrorUnwindsScopes(t *testing.T) {
	interp, out, err := runSourceErr(t, `
		let x = 1
		while x < 5 then
			if x == 2 then
				x = 40
				print nope
			endif
			x = x + 1
		endwhile`)
	if !errors.Is(err, ErrRuntime) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	if out != "" {
		t.Fatalf("unexpected output %q", out)
	}
	if interp.Depth() != 1 {
		t.Fatalf("expected scopes unwound to global, depth %d", interp.Depth())
	}
	wantInt(t, interp.Globals()["x"], 40)
}

func TestParseErrorsSurfaceFromRun(t *testing.T) {
	_, _, err := runSourceErr(t, "x = 100 +")
	var syntaxErr *parser.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	_, _, err = runSourceErr(t, "print 1 ; print 2")
	var lexErr *lexer.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected LexError, got %v", err)
	}
}

func TestParseErrorPreventsAnyExecution(t *testing.T) {
	_, out, _ := runSourceErr(t, "print 1\nprint 2 +")
	if out != "" {
		t.Fatalf("program must be parsed fully before running, got %q", out)
	}
}

func TestEvaluateProgramResults(t *testing.T) {
	interp := New(WithStdout(&bytes.Buffer{}))
	results, err := interp.EvaluateProgram(ast.Prog(
		ast.Let("x", ast.Int(5)),
		ast.Out(ast.ID("x")),
		ast.When(ast.Bin(ast.ID("x"), ">", ast.Int(1)), ast.Let("x", ast.Int(6)), ast.Out(ast.ID("x"))),
		ast.When(ast.Bin(ast.ID("x"), "<", ast.Int(1)), ast.Out(ast.ID("x"))),
		ast.Loop(ast.Bin(ast.ID("x"), "<", ast.Int(0))),
	))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	wantInt(t, results[0], 5)
	if results[1] != nil || results[3] != nil || results[4] != nil {
		t.Fatalf("expected nil results for print, untaken if and while: %#v", results)
	}
	seq, ok := results[2].(runtime.SequenceValue)
	if !ok || len(seq.Items) != 2 {
		t.Fatalf("expected sequence result for taken if, got %#v", results[2])
	}
	wantInt(t, seq.Items[0], 6)
	if seq.Items[1] != nil {
		t.Fatalf("expected nil entry for print, got %#v", seq.Items[1])
	}
	if got := Describe(results[2]); got != "[6, nil]" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func TestFreshInterpretersAreDeterministic(t *testing.T) {
	src := `
		let a = 1
		let b = 0
		while a < 50 then
			print a
			let a = a * 3
			b = b + 1
		endwhile
		print b`
	_, first := runSource(t, src)
	_, second := runSource(t, src)
	if first != second {
		t.Fatalf("outputs differ:\n%s\n---\n%s", first, second)
	}
	if first != "1\n3\n9\n27\n4\n" {
		t.Fatalf("unexpected output %q", first)
	}
}
