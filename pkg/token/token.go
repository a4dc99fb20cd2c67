package token

import (
	"fmt"
	"strings"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	Let Kind = iota
	Print
	If
	Then
	EndIf
	While
	EndWhile
	Integer
	Identifier
	Operator
	Assign
	EOF
)

func (k Kind) String() string {
	switch k {
	case Let:
		return "LET"
	case Print:
		return "PRINT"
	case If:
		return "IF"
	case Then:
		return "THEN"
	case EndIf:
		return "ENDIF"
	case While:
		return "WHILE"
	case EndWhile:
		return "ENDWHILE"
	case Integer:
		return "INTEGER"
	case Identifier:
		return "IDENTIFIER"
	case Operator:
		return "OPERATOR"
	case Assign:
		return "ASSIGN"
	case EOF:
		return "EOF"
	default:
		return fmt.Sprintf("UNKNOWN_%d", int(k))
	}
}

// Token is a single lexical unit. Value holds the literal text for identifiers,
// keywords, operators and the assignment sign, the decimal digits for integers,
// and is empty for EOF.
type Token struct {
	Kind   Kind
	Value  string
	Offset int
}

// String renders the token as Token(KIND, value) for diagnostics.
func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("Token(%s, None)", t.Kind)
	}
	if t.Kind == Integer {
		return fmt.Sprintf("Token(%s, %s)", t.Kind, t.Value)
	}
	return fmt.Sprintf("Token(%s, %q)", t.Kind, t.Value)
}

// Is reports whether the token is an operator with the given text.
func (t Token) Is(op string) bool {
	return t.Kind == Operator && t.Value == op
}

var keywords = map[string]Kind{
	"let":      Let,
	"print":    Print,
	"if":       If,
	"then":     Then,
	"endif":    EndIf,
	"while":    While,
	"endwhile": EndWhile,
}

// LookupIdentifier maps a word to its keyword kind, ignoring case, or to
// Identifier when the word is not reserved.
func LookupIdentifier(word string) Kind {
	if kind, ok := keywords[strings.ToLower(word)]; ok {
		return kind
	}
	return Identifier
}
