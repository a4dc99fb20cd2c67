package parser

import (
	"math/big"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/token"
)

// parseComparison: expression (("<" | ">" | "==") expression)*
func (p *Parser) parseComparison() (ast.Expression, error) {
	return p.parseLeftAssociative(p.parseExpression, ast.OpLt, ast.OpGt, ast.OpEq)
}

// parseExpression: term (("+" | "-") term)*
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseLeftAssociative(p.parseTerm, ast.OpAdd, ast.OpSub)
}

// parseTerm: factor (("*" | "/") factor)*
func (p *Parser) parseTerm() (ast.Expression, error) {
	return p.parseLeftAssociative(p.parseFactor, ast.OpMul, ast.OpDiv)
}

func (p *Parser) parseLeftAssociative(operand func() (ast.Expression, error), ops ...string) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.currentIsOneOf(ops...) {
		op := p.current.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(left, op, right)
	}
	return left, nil
}

// parseFactor: INTEGER | IDENTIFIER | "(" expression ")"
func (p *Parser) parseFactor() (ast.Expression, error) {
	tok := p.current
	switch {
	case tok.Kind == token.Integer:
		value, ok := new(big.Int).SetString(tok.Value, 10)
		if !ok {
			return nil, p.fail("invalid integer literal " + tok.Value)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewNum(value), nil
	case tok.Kind == token.Identifier:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewVar(tok.Value), nil
	case tok.Is("("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectOperator(")"); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.fail("invalid syntax in factor")
	}
}
