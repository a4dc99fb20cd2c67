package interpreter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Assign:
		return i.evaluateAssign(n)
	case *ast.Print:
		return nil, i.evaluatePrint(n)
	case *ast.If:
		return i.evaluateIf(n)
	case *ast.While:
		return nil, i.evaluateWhile(n)
	default:
		return nil, fmt.Errorf("unsupported statement type: %T", node)
	}
}

func (i *Interpreter) evaluateSequence(body []ast.Statement) ([]runtime.Value, error) {
	results := make([]runtime.Value, 0, len(body))
	for _, stmt := range body {
		val, err := i.evaluateStatement(stmt)
		if err != nil {
			return nil, err
		}
		results = append(results, val)
	}
	return results, nil
}

// evaluateBlock runs body in a fresh frame copied from the current one and
// merges pre-existing names back on the way out, also when body fails.
func (i *Interpreter) evaluateBlock(body []ast.Statement) (results []runtime.Value, err error) {
	i.scopes.Enter()
	i.log.WithField("depth", i.scopes.Depth()).Debug("enter scope")
	defer func() {
		merged, exitErr := i.scopes.Exit()
		if exitErr != nil && err == nil {
			err = exitErr
		}
		i.log.WithFields(logrus.Fields{"depth": i.scopes.Depth(), "merged": merged}).Debug("exit scope")
	}()
	return i.evaluateSequence(body)
}

func (i *Interpreter) evaluateAssign(stmt *ast.Assign) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Value)
	if err != nil {
		return nil, err
	}
	i.scopes.Define(stmt.Target, val)
	return val, nil
}

func (i *Interpreter) evaluatePrint(stmt *ast.Print) error {
	val, err := i.evaluateExpression(stmt.Value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(i.stdout, valueToString(val))
	return err
}

func (i *Interpreter) evaluateIf(stmt *ast.If) (runtime.Value, error) {
	cond, err := i.evaluateExpression(stmt.Condition)
	if err != nil {
		return nil, err
	}
	if !runtime.Truthy(cond) {
		return nil, nil
	}
	results, err := i.evaluateBlock(stmt.Body)
	if err != nil {
		return nil, err
	}
	return runtime.SequenceValue{Items: results}, nil
}

// evaluateWhile re-enters a fresh scope on every iteration, so names first
// bound in the body never survive into the next pass.
func (i *Interpreter) evaluateWhile(loop *ast.While) error {
	for iteration := 0; ; iteration++ {
		cond, err := i.evaluateExpression(loop.Condition)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			i.log.WithField("iterations", iteration).Debug("while loop finished")
			return nil
		}
		if _, err := i.evaluateBlock(loop.Body); err != nil {
			return err
		}
	}
}
