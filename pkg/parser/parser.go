package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/lexer"
	"minilang/interpreter-go/pkg/token"
)

// SyntaxError reports a grammar violation at the current token.
type SyntaxError struct {
	Expected []token.Kind
	Actual   token.Token
	Message  string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Message != "" {
		b.WriteString(e.Message)
	}
	if len(e.Expected) > 0 {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		names := make([]string, len(e.Expected))
		for i, kind := range e.Expected {
			names[i] = kind.String()
		}
		fmt.Fprintf(&b, "expected token %s, but found %s", strings.Join(names, " or "), e.Actual.Kind)
	} else {
		fmt.Fprintf(&b, " (found %s)", e.Actual)
	}
	fmt.Fprintf(&b, " at position %d", e.Actual.Offset)
	return b.String()
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger routes parser diagnostics to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.log = logger
		}
	}
}

// Parser is a recursive-descent parser holding one token of lookahead.
type Parser struct {
	lexer   *lexer.Lexer
	current token.Token
	primed  bool
	log     logrus.FieldLogger
}

// New wraps a lexer. The first token is pulled lazily so that a lexical
// error on it surfaces from ParseProgram rather than from the constructor.
func New(lx *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{lexer: lx, log: discardLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseSource lexes and parses a complete program.
func ParseSource(source string, opts ...Option) (*ast.Program, error) {
	return New(lexer.New(source), opts...).ParseProgram()
}

// ParseProgram parses statements until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	if err := p.prime(); err != nil {
		return nil, err
	}
	body := make([]ast.Statement, 0)
	for p.current.Kind != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return ast.NewProgram(body), nil
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
