package grammar

import (
	"strconv"
	"strings"
	"sync"

	lex "github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// The punctuation lexemes the scanner recognizes. Delimiters are scanned
// as plain punctuation first and folded into groups by treeify.
var puncts = []string{
	"$", ",", ";", ":",
	"(", ")", "[", "]", "{", "}",
	"+", "-", "*", "/", "%", "^",
	"<", ">", "=", ".", "!",
}

var lexerOnce sync.Once // monitors one-time creation of the lexer
var ricciLexer *lex.Lexer
var ricciLexerErr error

func initLexer() {
	lexerOnce.Do(func() {
		l := lex.NewLexer()
		l.Add([]byte(`( |\t|\n|\r)+`), skipToken)
		l.Add([]byte(`[a-zA-Z_][a-zA-Z_0-9]*`), makeToken(Ident))
		l.Add([]byte(`[0-9]+(\.[0-9]+)?`), makeToken(Number))
		for _, p := range puncts {
			l.Add(escape(p), makeToken(Punct))
		}
		if err := l.Compile(); err != nil {
			ricciLexerErr = err
			return
		}
		ricciLexer = l
	})
}

// escape backslash-escapes a punctuation lexeme so that lexmachine treats
// every character literally.
func escape(lit string) []byte {
	var b strings.Builder
	for _, r := range lit {
		b.WriteByte('\\')
		b.WriteRune(r)
	}
	return []byte(b.String())
}

func skipToken(*lex.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(kind TokenKind) lex.Action {
	return func(s *lex.Scanner, m *machines.Match) (interface{}, error) {
		tok := Token{
			Kind:   kind,
			Lexeme: string(m.Bytes),
			Pos: Pos{
				Line:   m.StartLine,
				Col:    m.StartColumn,
				Offset: m.TC,
			},
		}
		if kind == Number {
			v, err := strconv.ParseFloat(tok.Lexeme, 64)
			if err != nil {
				return nil, err
			}
			tok.Value = v
		}
		return tok, nil
	}
}

// Tokenize splits a Ricci expression into a token tree: a flat scan
// followed by folding matched delimiter pairs into Group tokens. The
// parser consumes the result.
//
// Forbidden characters are not rejected here; braces and semicolons scan
// fine and are diagnosed by the parser, so their fixed messages and
// positions are the same no matter how the token tree was produced.
func Tokenize(input string) ([]Token, error) {
	flat, err := scan(input)
	if err != nil {
		return nil, err
	}
	return treeify(flat)
}

func scan(input string) ([]Token, error) {
	initLexer()
	if ricciLexerErr != nil {
		panic(ricciLexerErr) // the patterns above failed to compile
	}
	s, err := ricciLexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []Token
	for tok, err, eos := s.Next(); !eos; tok, err, eos = s.Next() {
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				pos := Pos{Line: ui.FailLine, Col: ui.FailColumn, Offset: ui.StartTC}
				return nil, compileError(ErrUnexpectedChar, pos)
			}
			return nil, err
		}
		t := tok.(Token)
		tracer().Debugf("scanned %s %q at %s", t.Kind, t.Lexeme, t.Pos)
		tokens = append(tokens, t)
	}
	return tokens, nil
}

var openDelims = map[string]Delim{"(": Paren, "[": Bracket, "{": Brace}
var closeDelims = map[string]Delim{")": Paren, "]": Bracket, "}": Brace}

// treeify folds matched delimiter pairs of a flat token stream into Group
// tokens, producing the token tree the parser expects. Mismatched or
// unclosed delimiters are unbalanced-delimiter errors.
func treeify(flat []Token) ([]Token, error) {
	type frame struct {
		delim Delim
		pos   Pos
		buf   []Token
	}
	stack := []frame{{delim: NoDelim}}
	for _, tok := range flat {
		if tok.Kind == Punct {
			if d, ok := openDelims[tok.Lexeme]; ok {
				stack = append(stack, frame{delim: d, pos: tok.Pos})
				continue
			}
			if d, ok := closeDelims[tok.Lexeme]; ok {
				top := &stack[len(stack)-1]
				if len(stack) == 1 || top.delim != d {
					return nil, compileError(ErrUnbalanced, tok.Pos)
				}
				group := Token{
					Kind:  Group,
					Delim: top.delim,
					Inner: top.buf,
					Pos:   top.pos,
				}
				stack = stack[:len(stack)-1]
				parent := &stack[len(stack)-1]
				parent.buf = append(parent.buf, group)
				continue
			}
		}
		top := &stack[len(stack)-1]
		top.buf = append(top.buf, tok)
	}
	if len(stack) != 1 {
		return nil, compileError(ErrUnbalanced, stack[len(stack)-1].pos)
	}
	return stack[0].buf, nil
}
