package parser

import (
	"minilang/interpreter-go/pkg/token"
)

func (p *Parser) prime() error {
	if p.primed {
		return nil
	}
	p.primed = true
	return p.advance()
}

func (p *Parser) advance() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

// expect consumes the current token when it has the given kind.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.current
	if tok.Kind != kind {
		return tok, &SyntaxError{Expected: []token.Kind{kind}, Actual: tok}
	}
	if err := p.advance(); err != nil {
		return tok, err
	}
	return tok, nil
}

// expectOperator consumes an operator token with the given text.
func (p *Parser) expectOperator(op string) error {
	if !p.current.Is(op) {
		return &SyntaxError{Expected: []token.Kind{token.Operator}, Actual: p.current, Message: "expected '" + op + "'"}
	}
	return p.advance()
}

func (p *Parser) currentIsOneOf(ops ...string) bool {
	for _, op := range ops {
		if p.current.Is(op) {
			return true
		}
	}
	return false
}

func (p *Parser) atBlockEnd() bool {
	switch p.current.Kind {
	case token.EOF, token.EndIf, token.EndWhile:
		return true
	default:
		return false
	}
}

func (p *Parser) fail(message string) error {
	return &SyntaxError{Actual: p.current, Message: message}
}
