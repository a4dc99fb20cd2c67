package interpreter

import (
	"errors"
	"fmt"
)

// ErrRuntime matches every evaluation failure via errors.Is.
var ErrRuntime = errors.New("runtime error")

// UndefinedVariableError reports a name missing from every frame.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Variable '%s' not defined", e.Name)
}

func (e *UndefinedVariableError) Is(target error) bool { return target == ErrRuntime }

// UnsupportedOperatorError reports a BinOp operator outside + - * / == > <.
type UnsupportedOperatorError struct {
	Operator string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("Unsupported operator '%s'", e.Operator)
}

func (e *UnsupportedOperatorError) Is(target error) bool { return target == ErrRuntime }

// DivisionByZeroError reports `/` with a zero right operand.
type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string {
	return "integer division or modulo by zero"
}

func (e *DivisionByZeroError) Is(target error) bool { return target == ErrRuntime }
