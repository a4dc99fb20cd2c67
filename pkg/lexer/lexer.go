package lexer

import (
	"fmt"
	"unicode"

	"minilang/interpreter-go/pkg/token"
)

const contextRadius = 10

// LexError reports a character that cannot start any token.
type LexError struct {
	Char    rune
	Offset  int
	Context string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("invalid character %q at position %d, context %q", e.Char, e.Offset, e.Context)
}

// Lexer produces tokens on demand from a source string. Offsets count
// characters, not bytes.
type Lexer struct {
	source []rune
	pos    int
}

// New creates a lexer positioned at the start of source.
func New(source string) *Lexer {
	return &Lexer{source: []rune(source)}
}

// NextToken returns the next token. Once the input is exhausted every call
// yields an EOF token.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	ch, ok := l.current()
	if !ok {
		return token.Token{Kind: token.EOF, Offset: l.pos}, nil
	}
	start := l.pos

	switch {
	case isDigit(ch):
		return token.Token{Kind: token.Integer, Value: l.scanWhile(isDigit), Offset: start}, nil
	case unicode.IsLetter(ch) || ch == '_':
		word := l.scanWhile(isIdentPart)
		return token.Token{Kind: token.LookupIdentifier(word), Value: word, Offset: start}, nil
	}

	switch ch {
	case '+', '-', '*', '/', '(', ')':
		l.advance()
		return token.Token{Kind: token.Operator, Value: string(ch), Offset: start}, nil
	case '=':
		l.advance()
		if l.match('=') {
			return token.Token{Kind: token.Operator, Value: "==", Offset: start}, nil
		}
		return token.Token{Kind: token.Assign, Value: "=", Offset: start}, nil
	case '>', '<':
		l.advance()
		// >= and <= are recognised here but no grammar rule consumes them.
		if l.match('=') {
			return token.Token{Kind: token.Operator, Value: string(ch) + "=", Offset: start}, nil
		}
		return token.Token{Kind: token.Operator, Value: string(ch), Offset: start}, nil
	}

	return token.Token{}, l.errorAt(ch)
}

// Tokenize drains a lexer over source, returning every token up to and
// including the first EOF.
func Tokenize(source string) ([]token.Token, error) {
	lx := New(source)
	var out []token.Token
	for {
		tok, err := lx.NextToken()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out, nil
		}
	}
}

func (l *Lexer) current() (rune, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) advance() {
	if l.pos < len(l.source) {
		l.pos++
	}
}

func (l *Lexer) match(want rune) bool {
	if ch, ok := l.current(); ok && ch == want {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) skipWhitespace() {
	for {
		ch, ok := l.current()
		if !ok || !unicode.IsSpace(ch) {
			return
		}
		l.advance()
	}
}

func (l *Lexer) scanWhile(pred func(rune) bool) string {
	start := l.pos
	for {
		ch, ok := l.current()
		if !ok || !pred(ch) {
			break
		}
		l.advance()
	}
	return string(l.source[start:l.pos])
}

func (l *Lexer) errorAt(ch rune) error {
	lo := max(0, l.pos-contextRadius)
	hi := min(len(l.source), l.pos+contextRadius)
	return &LexError{Char: ch, Offset: l.pos, Context: string(l.source[lo:hi])}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
