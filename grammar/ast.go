package grammar

// Scope is an ordered sequence of elements, owned by its parent scope (or
// the root). Scopes form a tree, never a DAG. Parenthesized scopes must
// preserve their explicit grouping in generated code.
type Scope struct {
	Pos           Pos
	Parenthesized bool
	Elements      []Element
}

func newScope(pos Pos) *Scope {
	return &Scope{Pos: pos}
}

func newParenScope(pos Pos) *Scope {
	return &Scope{Pos: pos, Parenthesized: true}
}

// Element is one entry of a scope. The element-kind set is fixed and
// finite, so Element is a sealed sum type: the only implementations are
// RawToken, NestedScope, IndexBinder and TensorAccess, and both the
// parser and the code generator switch over them exhaustively.
type Element interface {
	element()
}

// RawToken is a token passed through verbatim.
type RawToken struct {
	Tok Token
}

// NestedScope is a parenthesized or bare sub-expression.
type NestedScope struct {
	Sub *Scope
}

// IndexBinder declares Ricci indices and scopes them over its body. The
// body is the entire remainder of the enclosing group after the '$'
// marker. Indices are kept in declaration order.
type IndexBinder struct {
	Pos     Pos
	Indices []Token
	Body    *Scope
}

// TensorAccess is a subscripted array reference, e.g. a[i,j]. Indices are
// index-name identifiers in subscript order.
type TensorAccess struct {
	Name    Token
	Indices []Token
	Pos     Pos
}

func (RawToken) element()     {}
func (NestedScope) element()  {}
func (IndexBinder) element()  {}
func (TensorAccess) element() {}

// push appends an element to the scope.
func (s *Scope) push(e Element) {
	s.Elements = append(s.Elements, e)
}

// lastIdent returns the trailing element of the scope if it is a bare
// identifier token.
func (s *Scope) lastIdent() (Token, bool) {
	if len(s.Elements) == 0 {
		return Token{}, false
	}
	raw, ok := s.Elements[len(s.Elements)-1].(RawToken)
	if !ok || !raw.Tok.IsIdent() {
		return Token{}, false
	}
	return raw.Tok, true
}

// popTrailingIdents pops the maximal run of trailing bare-identifier
// elements off the scope and returns them in reverse of their appearance,
// i.e. the element pushed last comes first. This is the scan-back step of
// the '$' binder: the identifiers were appended left to right, so callers
// reverse the result to recover declaration order.
func (s *Scope) popTrailingIdents() []Token {
	var inverted []Token
	for {
		tok, ok := s.lastIdent()
		if !ok {
			break
		}
		inverted = append(inverted, tok)
		s.Elements = s.Elements[:len(s.Elements)-1]
	}
	return inverted
}
