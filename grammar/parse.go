package grammar

// Parse runs the scope parser over a token tree, producing the scope tree
// and the two registries the sequentializer consumes. It is a single
// left-to-right pass, recursive on nested groups, and returns the first
// structural error encountered.
func Parse(tokens []Token) (*Scope, *IndexRegistry, *TensorRegistry, error) {
	p := &parser{
		indices: NewIndexRegistry(),
		tensors: NewTensorRegistry(),
	}
	root := newScope(Pos{})
	if len(tokens) > 0 {
		root.Pos = tokens[0].Pos
	}
	if err := p.parseSequence(tokens, root, nil); err != nil {
		return nil, nil, nil, err
	}
	return root, p.indices, p.tensors, nil
}

type parser struct {
	indices *IndexRegistry
	tensors *TensorRegistry
}

// binderFrame is one level of the lexical chain of declared indices. An
// index may only subscript a tensor under a binder that declares it.
type binderFrame struct {
	names map[string]bool
	up    *binderFrame
}

func (f *binderFrame) declared(name string) bool {
	for frame := f; frame != nil; frame = frame.up {
		if frame.names[name] {
			return true
		}
	}
	return false
}

func (p *parser) parseSequence(tokens []Token, scope *Scope, frame *binderFrame) error {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Kind {
		case Punct:
			switch tok.Lexeme {
			case ";":
				return compileError(ErrForbiddenSemicolon, tok.Pos)
			case "{", "}":
				// only reachable with hand-built token streams
				return compileError(ErrForbiddenBrace, tok.Pos)
			case "$":
				// The binder body absorbs the remainder of the group.
				return p.parseBinder(tok, tokens[i+1:], scope, frame)
			default:
				scope.push(RawToken{Tok: tok})
			}
		case Group:
			if err := p.parseGroup(tok, scope, frame); err != nil {
				return err
			}
		default:
			scope.push(RawToken{Tok: tok})
		}
	}
	return nil
}

// parseBinder handles the '$' marker: it pops the run of bare identifiers
// just appended to the current scope, registers them as newly declared
// indices, and parses the rest of the enclosing group as the binder body.
func (p *parser) parseBinder(marker Token, rest []Token, scope *Scope, frame *binderFrame) error {
	inverted := scope.popTrailingIdents()
	indices := make([]Token, len(inverted))
	for i, tok := range inverted {
		indices[len(inverted)-1-i] = tok // recover declaration order
	}
	names := make(map[string]bool, len(indices))
	for _, index := range indices {
		if names[index.Lexeme] {
			// duplicate detection is scoped to this one binder's list;
			// sibling binders may legally reuse a name
			return compileError(ErrReusedIndex, index.Pos)
		}
		names[index.Lexeme] = true
		p.indices.Declare(index.Lexeme, index.Pos)
	}
	tracer().Debugf("binder at %s declares %d indices", marker.Pos, len(indices))
	body := newScope(marker.Pos)
	inner := &binderFrame{names: names, up: frame}
	if err := p.parseSequence(rest, body, inner); err != nil {
		return err
	}
	scope.push(IndexBinder{Pos: marker.Pos, Indices: indices, Body: body})
	return nil
}

func (p *parser) parseGroup(group Token, scope *Scope, frame *binderFrame) error {
	switch group.Delim {
	case Brace:
		return compileError(ErrForbiddenBrace, group.Pos)
	case Bracket:
		return p.parseTensorAccess(group, scope, frame)
	case Paren:
		sub := newParenScope(group.Pos)
		if err := p.parseSequence(group.Inner, sub, frame); err != nil {
			return err
		}
		scope.push(NestedScope{Sub: sub})
	default:
		sub := newScope(group.Pos)
		if err := p.parseSequence(group.Inner, sub, frame); err != nil {
			return err
		}
		scope.push(NestedScope{Sub: sub})
	}
	return nil
}

// parseTensorAccess reinterprets a bracket group as a subscript list: the
// trailing identifier of the current scope names the tensor, the group's
// content is a comma-separated list of declared index names.
func (p *parser) parseTensorAccess(group Token, scope *Scope, frame *binderFrame) error {
	name, ok := scope.lastIdent()
	if !ok {
		return compileError(ErrMissingTensorName, group.Pos)
	}
	indices, err := parseIndexList(group)
	if err != nil {
		return err
	}
	for axis, index := range indices {
		if !frame.declared(index.Lexeme) {
			return compileError(ErrUndeclaredIndex, index.Pos)
		}
		p.indices.AddUse(index.Lexeme, UsageSite{
			Tensor: name.Lexeme,
			Axis:   axis,
			Pos:    index.Pos,
		})
	}
	if !p.tensors.Observe(name.Lexeme, len(indices)) {
		return compileError(ErrInconsistentArity, name.Pos)
	}
	scope.Elements = scope.Elements[:len(scope.Elements)-1] // drop the name token
	scope.push(TensorAccess{Name: name, Indices: indices, Pos: group.Pos})
	return nil
}

func parseIndexList(group Token) ([]Token, error) {
	var indices []Token
	for _, tok := range group.Inner {
		switch {
		case tok.IsIdent():
			indices = append(indices, tok)
		case tok.IsPunct(","):
			// separator
		default:
			return nil, compileError(ErrInvalidIndexList, group.Pos)
		}
	}
	return indices, nil
}
