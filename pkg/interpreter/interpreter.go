package interpreter

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/lexer"
	"minilang/interpreter-go/pkg/parser"
	"minilang/interpreter-go/pkg/runtime"
)

// Interpreter walks a parsed program against a stack of scope frames.
type Interpreter struct {
	scopes *runtime.ScopeStack
	stdout io.Writer
	log    logrus.FieldLogger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStdout redirects print output.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.stdout = w
		}
	}
}

// WithLogger enables debug tracing of scope and loop activity.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.log = logger
		}
	}
}

// New returns an interpreter with a single empty global frame.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		scopes: runtime.NewScopeStack(),
		stdout: os.Stdout,
		log:    discardLogger(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Globals returns a copy of the global frame.
func (i *Interpreter) Globals() runtime.Frame {
	return i.scopes.Globals()
}

// Depth reports the current scope stack depth.
func (i *Interpreter) Depth() int {
	return i.scopes.Depth()
}

// Interpret parses the whole program from p and then evaluates it.
func (i *Interpreter) Interpret(p *parser.Parser) ([]runtime.Value, error) {
	program, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	return i.EvaluateProgram(program)
}

// Run parses and evaluates source.
func (i *Interpreter) Run(source string) ([]runtime.Value, error) {
	return i.Interpret(parser.New(lexer.New(source), parser.WithLogger(i.log)))
}

// EvaluateProgram executes each top-level statement in order and returns
// their results. Print, While and untaken If statements yield nil entries.
func (i *Interpreter) EvaluateProgram(program *ast.Program) ([]runtime.Value, error) {
	if program == nil {
		return nil, nil
	}
	return i.evaluateSequence(program.Body)
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
