package interpreter

import (
	"fmt"
	"math/big"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Num:
		return runtime.IntegerValue{Val: runtime.CloneBigInt(n.Value)}, nil
	case *ast.Var:
		val, ok := i.scopes.Get(n.Name)
		if !ok {
			return nil, &UndefinedVariableError{Name: n.Name}
		}
		return val, nil
	case *ast.BinOp:
		return i.evaluateBinOp(n)
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", node)
	}
}

// evaluateBinOp evaluates both operands, left first, before combining them.
func (i *Interpreter) evaluateBinOp(expr *ast.BinOp) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right)
	if err != nil {
		return nil, err
	}
	return applyOperator(expr.Operator, left, right)
}

func applyOperator(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpEq, ast.OpGt, ast.OpLt:
	default:
		return nil, &UnsupportedOperatorError{Operator: op}
	}
	x, err := numericOperand(left)
	if err != nil {
		return nil, err
	}
	y, err := numericOperand(right)
	if err != nil {
		return nil, err
	}

	switch op {
	case ast.OpAdd:
		return runtime.IntegerValue{Val: new(big.Int).Add(x, y)}, nil
	case ast.OpSub:
		return runtime.IntegerValue{Val: new(big.Int).Sub(x, y)}, nil
	case ast.OpMul:
		return runtime.IntegerValue{Val: new(big.Int).Mul(x, y)}, nil
	case ast.OpDiv:
		q, err := floorDiv(x, y)
		if err != nil {
			return nil, err
		}
		return runtime.IntegerValue{Val: q}, nil
	case ast.OpEq:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case ast.OpGt:
		return runtime.BoolValue{Val: x.Cmp(y) > 0}, nil
	default:
		return runtime.BoolValue{Val: x.Cmp(y) < 0}, nil
	}
}

func numericOperand(v runtime.Value) (*big.Int, error) {
	n, ok := runtime.AsBigInt(v)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported operand of kind %s", ErrRuntime, v.Kind())
	}
	return n, nil
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(x, y *big.Int) (*big.Int, error) {
	if y.Sign() == 0 {
		return nil, &DivisionByZeroError{}
	}
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (y.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return q, nil
}
