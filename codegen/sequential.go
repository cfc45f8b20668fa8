package codegen

import (
	"github.com/contactomorph/tensorism/grammar"
)

// Sequentialize emits generated code for a parsed compilation unit: the
// header of dimension bindings and consistency checks, then the lowered
// body. Header statements appear in first-declared index order and, per
// index, in first-seen site order, so output is deterministic.
//
// An index that was declared but never subscripts any tensor has no site
// to bind its dimension from; that is reported as a structural error
// rather than deferred to a run-time failure.
func Sequentialize(scope *grammar.Scope, indices *grammar.IndexRegistry,
	tensors *grammar.TensorRegistry) (*Code, error) {
	//
	header, err := emitHeader(indices, tensors)
	if err != nil {
		return nil, err
	}
	code := &Code{Header: header}
	binder, lone := extractLoneBinder(scope)
	switch {
	case lone && len(binder.Indices) > 0:
		code.Mode = ArrayMode
		code.Body = lowerLoops(binder).construct()
	case lone:
		// a lone binder without indices binds nothing; its body is
		// inlined instead of wrapped into a one-element sequence
		code.Mode = ExpressionMode
		body := lowerScope(binder.Body)
		body.Parenthesized = false
		code.Body = body
	default:
		code.Mode = ExpressionMode
		body := lowerScope(scope)
		body.Parenthesized = false // the root never needs explicit grouping
		code.Body = body
	}
	tracer().Debugf("sequentialized %s-mode unit, %d header statements",
		code.Mode, len(code.Header))
	return code, nil
}

func emitHeader(indices *grammar.IndexRegistry, tensors *grammar.TensorRegistry) ([]HeaderStmt, error) {
	var header []HeaderStmt
	for _, name := range indices.Names() {
		sites := indices.Sites(name)
		if len(sites) == 0 {
			return nil, &grammar.CompileError{
				Code: grammar.ErrUnusedIndex,
				Pos:  indices.DeclPos(name),
			}
		}
		dim := dimName(name)
		first := makeSite(sites[0], tensors)
		header = append(header, DimBind{Dim: dim, Site: first})
		for _, other := range sites[1:] {
			header = append(header, DimCheck{
				Dim:   dim,
				First: first,
				Other: makeSite(other, tensors),
			})
		}
	}
	return header, nil
}

func makeSite(u grammar.UsageSite, tensors *grammar.TensorRegistry) Site {
	return Site{Tensor: u.Tensor, Axis: u.Axis, Rank: tensors.Rank(u.Tensor)}
}

func dimName(index string) string {
	return index + "_dimension"
}

// extractLoneBinder reports whether the entire top-level scope reduces to
// exactly one index binder. With a non-empty index list the binder
// triggers the array-construction strategy; with an empty one its body is
// inlined.
func extractLoneBinder(scope *grammar.Scope) (grammar.IndexBinder, bool) {
	if len(scope.Elements) != 1 {
		return grammar.IndexBinder{}, false
	}
	binder, ok := scope.Elements[0].(grammar.IndexBinder)
	if !ok {
		return grammar.IndexBinder{}, false
	}
	return binder, true
}

// loops carries the pieces of a lowered binder before it is committed to
// one of the two strategies.
type loops struct {
	indices []string
	dims    []string
	body    *Grouping
}

func (l loops) construct() *Construct {
	return &Construct{Indices: l.indices, Dims: l.dims, Body: l.body}
}

func (l loops) nest() *LoopNest {
	return &LoopNest{Indices: l.indices, Dims: l.dims, Body: l.body}
}

func lowerLoops(binder grammar.IndexBinder) loops {
	indices := make([]string, len(binder.Indices))
	dims := make([]string, len(binder.Indices))
	for i, tok := range binder.Indices {
		indices[i] = tok.Lexeme
		dims[i] = dimName(tok.Lexeme)
	}
	return loops{indices: indices, dims: dims, body: lowerScope(binder.Body)}
}

// lowerScope lowers a scope's elements recursively. Nested binders always
// lower to lazy sequences here; the array-construction strategy applies
// only to the top level.
func lowerScope(scope *grammar.Scope) *Grouping {
	group := &Grouping{Parenthesized: scope.Parenthesized}
	for _, element := range scope.Elements {
		switch e := element.(type) {
		case grammar.RawToken:
			group.Items = append(group.Items, Raw{Tok: e.Tok})
		case grammar.NestedScope:
			group.Items = append(group.Items, lowerScope(e.Sub))
		case grammar.IndexBinder:
			group.Items = append(group.Items, lowerLoops(e).nest())
		case grammar.TensorAccess:
			access := Access{Tensor: e.Name.Lexeme, Pos: e.Pos}
			for _, index := range e.Indices {
				access.Indices = append(access.Indices, index.Lexeme)
			}
			group.Items = append(group.Items, access)
		}
	}
	return group
}
