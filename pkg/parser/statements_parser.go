package parser

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/token"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current.Kind {
	case token.Let:
		return p.parseLetStatement()
	case token.Identifier:
		return p.parseReassignment()
	case token.Print:
		return p.parsePrintStatement()
	case token.If:
		return p.parseIfStatement()
	case token.While:
		return p.parseWhileStatement()
	default:
		return nil, p.fail("unrecognized statement")
	}
}

func (p *Parser) parseLetStatement() (ast.Statement, error) {
	if _, err := p.expect(token.Let); err != nil {
		return nil, err
	}
	return p.parseAssignmentTail()
}

// parseReassignment handles `x = expr`. A bare identifier followed by
// anything other than `=` is not a statement.
func (p *Parser) parseReassignment() (ast.Statement, error) {
	return p.parseAssignmentTail()
}

func (p *Parser) parseAssignmentTail() (ast.Statement, error) {
	name, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	if p.current.Kind != token.Assign {
		return nil, &SyntaxError{
			Expected: []token.Kind{token.Assign},
			Actual:   p.current,
			Message:  "expected assignment after identifier " + name.Value,
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewAssign(name.Value, value), nil
}

func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	if _, err := p.expect(token.Print); err != nil {
		return nil, err
	}
	value, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	return ast.NewPrint(value), nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	stmt, err := p.parseConditional(token.If, token.EndIf)
	if err != nil {
		p.log.WithFields(logrus.Fields{"position": p.current.Offset, "error": err}).Debug("if statement failed to parse")
		return nil, errors.Wrap(err, "parse if statement")
	}
	return ast.NewIf(stmt.condition, stmt.body), nil
}

func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	stmt, err := p.parseConditional(token.While, token.EndWhile)
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(stmt.condition, stmt.body), nil
}

type conditionalParts struct {
	condition ast.Expression
	body      []ast.Statement
}

// parseConditional parses `<open> comparison then block <close>`.
func (p *Parser) parseConditional(open, closing token.Kind) (conditionalParts, error) {
	if _, err := p.expect(open); err != nil {
		return conditionalParts{}, err
	}
	condition, err := p.parseComparison()
	if err != nil {
		return conditionalParts{}, err
	}
	if _, err := p.expect(token.Then); err != nil {
		return conditionalParts{}, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return conditionalParts{}, err
	}
	if _, err := p.expect(closing); err != nil {
		return conditionalParts{}, err
	}
	return conditionalParts{condition: condition, body: body}, nil
}

// parseBlock collects statements up to ENDIF, ENDWHILE or EOF without
// consuming the terminator.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	body := make([]ast.Statement, 0)
	for !p.atBlockEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}
