package grammar

import (
	"fmt"
	"strings"
)

// TokenKind classifies lexical units of Ricci notation.
type TokenKind int8

// Token kinds. A Group token carries a delimiter kind and its own inner
// token stream, mirroring the token trees the parser consumes.
const (
	EOF TokenKind = iota
	Ident
	Number
	Punct
	Group
)

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Number:
		return "Number"
	case Punct:
		return "Punct"
	case Group:
		return "Group"
	}
	return fmt.Sprintf("<illegal kind: %d>", k)
}

// Delim is the delimiter kind of a Group token.
type Delim int8

// Delimiter kinds.
const (
	NoDelim Delim = iota
	Paren
	Bracket
	Brace
)

func (d Delim) String() string {
	switch d {
	case NoDelim:
		return "none"
	case Paren:
		return "()"
	case Bracket:
		return "[]"
	case Brace:
		return "{}"
	}
	return fmt.Sprintf("<illegal delim: %d>", d)
}

// Pos is a source position, used for diagnostics.
type Pos struct {
	Line   int
	Col    int
	Offset int // byte offset into the input
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is an opaque lexical unit: an identifier, a piece of punctuation,
// a numeric literal, or a delimited group containing its own inner token
// stream. Tokens are immutable once produced by the scanner.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Value  float64 // numeric value, set for Number tokens
	Delim  Delim   // set for Group tokens
	Inner  []Token // inner token stream, set for Group tokens
	Pos    Pos
}

// IsIdent is a predicate: is this a bare identifier?
func (t Token) IsIdent() bool {
	return t.Kind == Ident
}

// IsPunct is a predicate: is this the punctuation lexeme s?
func (t Token) IsPunct(s string) bool {
	return t.Kind == Punct && t.Lexeme == s
}

func (t Token) String() string {
	if t.Kind != Group {
		return t.Lexeme
	}
	var b strings.Builder
	open, close := "", ""
	switch t.Delim {
	case Paren:
		open, close = "(", ")"
	case Bracket:
		open, close = "[", "]"
	case Brace:
		open, close = "{", "}"
	}
	b.WriteString(open)
	for i, inner := range t.Inner {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(inner.String())
	}
	b.WriteString(close)
	return b.String()
}
