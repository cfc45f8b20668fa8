package codegen

import (
	"fmt"
	"strings"

	"github.com/contactomorph/tensorism/grammar"
)

// Mode is the code-generation strategy chosen for a compilation unit.
type Mode int8

// The two body-lowering strategies.
const (
	ExpressionMode Mode = iota
	ArrayMode
)

func (m Mode) String() string {
	if m == ArrayMode {
		return "array"
	}
	return "expression"
}

// Site designates one axis of a named tensor, together with the tensor's
// declared rank. Rank-1 sites render and evaluate through the single-axis
// size form.
type Site struct {
	Tensor string
	Axis   int
	Rank   int
}

func (s Site) String() string {
	if s.Rank == 1 {
		return fmt.Sprintf("dim(%s)", s.Tensor)
	}
	return fmt.Sprintf("dim(%s, %d)", s.Tensor, s.Axis)
}

// HeaderStmt is one statement of the generated header. The set is closed:
// a statement either binds a dimension or checks one.
type HeaderStmt interface {
	headerStmt()
}

// DimBind binds a dimension name to the axis size of the index's first
// usage site.
type DimBind struct {
	Dim  string
	Site Site
}

// DimCheck is a runtime equality assertion between the axis sizes of an
// index's first usage site and one of its other sites. Axis sizes are
// ordinary run-time values of the arrays the generated code receives, so
// the check cannot run earlier than that.
type DimCheck struct {
	Dim   string
	First Site
	Other Site
}

func (DimBind) headerStmt()  {}
func (DimCheck) headerStmt() {}

// Node is one node of the lowered body. Like grammar.Element this is a
// sealed sum type with exhaustive switches in the renderer and in the
// evaluator.
type Node interface {
	node()
}

// Raw is a token of surrounding expression code, passed through verbatim.
type Raw struct {
	Tok grammar.Token
}

// Grouping is a lowered scope. Parenthesized groupings render and
// evaluate inside explicit parentheses to preserve operator precedence.
type Grouping struct {
	Parenthesized bool
	Items         []Node
}

// Access is an unchecked single-element read of a tensor at a
// multi-index of bound Ricci indices. No bounds check is re-emitted:
// correctness relies on the header's dimension checks having run.
type Access struct {
	Tensor  string
	Indices []string
	Pos     grammar.Pos
}

// LoopNest is an index binder lowered to a lazy nested sequence, one
// iteration level per index, outermost index outermost. The sequence is
// produced once and consumed once.
type LoopNest struct {
	Indices []string
	Dims    []string
	Body    *Grouping
}

// Construct is the array-construction strategy: a brand-new array of the
// bound dimensions, filled by evaluating the body for every multi-index
// in row-major order, first index slowest-varying.
type Construct struct {
	Indices []string
	Dims    []string
	Body    *Grouping
}

func (Raw) node()        {}
func (*Grouping) node()  {}
func (Access) node()     {}
func (*LoopNest) node()  {}
func (*Construct) node() {}

// Code is the generated code of one compilation unit: the header
// statements followed by the lowered body. In array mode the body is a
// *Construct, otherwise a *Grouping.
type Code struct {
	Header []HeaderStmt
	Body   Node
	Mode   Mode
}

// String renders the code in its deterministic textual form, one header
// statement per line followed by the body expression.
func (c *Code) String() string {
	var b strings.Builder
	for _, stmt := range c.Header {
		switch s := stmt.(type) {
		case DimBind:
			fmt.Fprintf(&b, "%s := %s\n", s.Dim, s.Site)
		case DimCheck:
			fmt.Fprintf(&b, "check %s == %s\n", s.First, s.Other)
		}
	}
	writeNode(&b, c.Body)
	b.WriteString("\n")
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch node := n.(type) {
	case Raw:
		b.WriteString(node.Tok.Lexeme)
	case *Grouping:
		if node.Parenthesized {
			b.WriteString("(")
		}
		for i, item := range node.Items {
			if i > 0 {
				b.WriteString(" ")
			}
			writeNode(b, item)
		}
		if node.Parenthesized {
			b.WriteString(")")
		}
	case Access:
		fmt.Fprintf(b, "uget(%s", node.Tensor)
		for _, index := range node.Indices {
			fmt.Fprintf(b, ", %s", index)
		}
		b.WriteString(")")
	case *LoopNest:
		writeLoops(b, "seq", node.Indices, node.Dims, node.Body)
	case *Construct:
		writeLoops(b, "make", node.Indices, node.Dims, node.Body)
	}
}

func writeLoops(b *strings.Builder, verb string, indices, dims []string, body *Grouping) {
	b.WriteString(verb)
	b.WriteString("[")
	for i, index := range indices {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s < %s", index, dims[i])
	}
	b.WriteString("](")
	for i, item := range body.Items {
		if i > 0 {
			b.WriteString(" ")
		}
		writeNode(b, item)
	}
	b.WriteString(")")
}
