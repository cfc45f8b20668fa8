package evaluator

import (
	"fmt"
	"strings"

	"github.com/contactomorph/tensorism"
	"github.com/contactomorph/tensorism/codegen"
	"github.com/contactomorph/tensorism/grammar"
	"github.com/contactomorph/tensorism/tensor"
)

// evalCtx carries what one run needs besides the program itself: the
// dimension sizes the header bound.
type evalCtx struct {
	prog *Program
	dims map[string]int
}

// Binary operator precedence of the surrounding expression code.
var precedence = map[string]int{
	"+": 1, "-": 1,
	"*": 2, "/": 2, "%": 2,
}

// unaryPrec binds tighter than any binary operator.
const unaryPrec = 3

type opEntry struct {
	op    string
	unary bool
}

func (e opEntry) prec() int {
	if e.unary {
		return unaryPrec
	}
	return precedence[e.op]
}

// evalItems evaluates one lowered element run as an expression. Raw
// punctuation acts as operators, everything else as operands; the walk
// keeps an explicit value stack and operator stack.
func (ev *evalCtx) evalItems(items []codegen.Node, binds map[string]int) (tensorism.Value, error) {
	operands := newExprStack()
	var ops []opEntry
	reduce := func() error {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.unary {
			v, ok := operands.pop()
			if !ok {
				return fmt.Errorf("malformed expression: operand missing for unary %q", top.op)
			}
			r, err := v.Self().Negate()
			if err != nil {
				return err
			}
			operands.push(r)
			return nil
		}
		right, okR := operands.pop()
		left, okL := operands.pop()
		if !okR || !okL {
			return fmt.Errorf("malformed expression: operands missing for %q", top.op)
		}
		r, err := applyOp(top.op, left, right)
		if err != nil {
			return err
		}
		operands.push(r)
		return nil
	}
	expectOperand := true
	for i := 0; i < len(items); {
		if raw, isRaw := items[i].(codegen.Raw); isRaw && raw.Tok.Kind == grammar.Punct {
			op := raw.Tok.Lexeme
			if expectOperand {
				switch op {
				case "-":
					ops = append(ops, opEntry{op: op, unary: true})
				case "+":
					// unary plus is a no-op
				default:
					return nil, fmt.Errorf("unexpected operator %q at %s", op, raw.Tok.Pos)
				}
				i++
				continue
			}
			prec, known := precedence[op]
			if !known {
				return nil, fmt.Errorf("unsupported operator %q at %s", op, raw.Tok.Pos)
			}
			for len(ops) > 0 && ops[len(ops)-1].prec() >= prec {
				if err := reduce(); err != nil {
					return nil, err
				}
			}
			ops = append(ops, opEntry{op: op})
			expectOperand = true
			i++
			continue
		}
		if !expectOperand {
			return nil, fmt.Errorf("missing operator in expression")
		}
		v, err := ev.operand(items, &i, binds)
		if err != nil {
			return nil, err
		}
		operands.push(v)
		expectOperand = false
	}
	if expectOperand {
		return nil, fmt.Errorf("expression ends with an operator or is empty")
	}
	for len(ops) > 0 {
		if err := reduce(); err != nil {
			return nil, err
		}
	}
	v, ok := operands.pop()
	if !ok || operands.size() != 0 {
		return nil, fmt.Errorf("malformed expression")
	}
	return v, nil
}

func applyOp(op string, left, right tensorism.Value) (tensorism.Value, error) {
	switch op {
	case "+":
		return left.Self().Plus(right)
	case "-":
		return left.Self().Minus(right)
	case "*":
		return left.Self().Times(right)
	case "/":
		return left.Self().Divide(right)
	case "%":
		return left.Self().Mod(right)
	}
	return nil, fmt.Errorf("unsupported operator %q", op)
}

// operand evaluates one operand starting at items[*i] and advances *i
// past it. An identifier followed by a parenthesized grouping is a
// builtin call and consumes both.
func (ev *evalCtx) operand(items []codegen.Node, i *int, binds map[string]int) (tensorism.Value, error) {
	switch n := items[*i].(type) {
	case codegen.Raw:
		tok := n.Tok
		switch tok.Kind {
		case grammar.Number:
			*i++
			if strings.Contains(tok.Lexeme, ".") {
				return tensorism.Float(tok.Value), nil
			}
			return tensorism.Integer(int64(tok.Value)), nil
		case grammar.Ident:
			if *i+1 < len(items) {
				if g, isGroup := items[*i+1].(*codegen.Grouping); isGroup && g.Parenthesized {
					*i += 2
					args, err := ev.callArgs(g, binds)
					if err != nil {
						return nil, err
					}
					return callBuiltin(tok.Lexeme, args)
				}
			}
			*i++
			if v, bound := binds[tok.Lexeme]; bound {
				return tensorism.Integer(v), nil
			}
			if v, bound := ev.prog.scalars[tok.Lexeme]; bound {
				return v, nil
			}
			return nil, fmt.Errorf("unknown identifier %q at %s", tok.Lexeme, tok.Pos)
		}
		return nil, fmt.Errorf("unexpected token %q at %s", tok.Lexeme, tok.Pos)
	case *codegen.Grouping:
		*i++
		return ev.evalItems(n.Items, binds)
	case codegen.Access:
		*i++
		return ev.access(n, binds)
	case *codegen.LoopNest:
		*i++
		return ev.loopSequence(n, binds)
	}
	return nil, fmt.Errorf("unexpected node %T in generated code", items[*i])
}

// access performs the unchecked element read of a lowered tensor access.
func (ev *evalCtx) access(n codegen.Access, binds map[string]int) (tensorism.Value, error) {
	a, ok := ev.prog.arrays[n.Tensor]
	if !ok {
		return nil, runErrorf("unknown array %q", n.Tensor)
	}
	index := make([]int, len(n.Indices))
	for k, name := range n.Indices {
		v, bound := binds[name]
		if !bound {
			return nil, fmt.Errorf("unbound index %q at %s", name, n.Pos)
		}
		index[k] = v
	}
	return tensorism.FromGo(a.UncheckedAt(index...))
}

// loopSequence turns a lowered binder into a lazy sequence: one iteration
// level per index, outermost index outermost, advanced lexicographically
// so inner levels flatten into one stream. The sequence captures the
// surrounding bindings at creation time and is never restarted.
func (ev *evalCtx) loopSequence(n *codegen.LoopNest, binds map[string]int) (tensorism.Value, error) {
	sizes := make([]int, len(n.Dims))
	count := 1
	for k, dim := range n.Dims {
		size, bound := ev.dims[dim]
		if !bound {
			return nil, fmt.Errorf("dimension %s is not bound by the header", dim)
		}
		sizes[k] = size
		count *= size
	}
	inner := copyBinds(binds)
	index := make([]int, len(sizes))
	done := count == 0
	gen := func() (tensorism.Value, error, bool) {
		if done {
			return nil, nil, false
		}
		for k, name := range n.Indices {
			inner[name] = index[k]
		}
		v, err := ev.evalItems(n.Body.Items, inner)
		if err != nil {
			return nil, err, false
		}
		k := len(index) - 1
		for k >= 0 {
			index[k]++
			if index[k] < sizes[k] {
				break
			}
			index[k] = 0
			k--
		}
		if k < 0 {
			done = true
		}
		return v, nil, true
	}
	if len(n.Indices) == 0 {
		// a binder without indices yields its body exactly once
		yielded := false
		gen = func() (tensorism.Value, error, bool) {
			if yielded {
				return nil, nil, false
			}
			yielded = true
			v, err := ev.evalItems(n.Body.Items, inner)
			return v, err, err == nil
		}
	}
	return tensorism.NewSequence(gen), nil
}

// construct runs the array-construction strategy: a new tensor with the
// bound dimensions as shape, filled in row-major order by evaluating the
// body for every multi-index.
func (ev *evalCtx) construct(c *codegen.Construct) (tensorism.Value, error) {
	shape := make([]int, len(c.Dims))
	for k, dim := range c.Dims {
		size, bound := ev.dims[dim]
		if !bound {
			return nil, fmt.Errorf("dimension %s is not bound by the header", dim)
		}
		shape[k] = size
	}
	tracer().Debugf("constructing array of shape %v", shape)
	binds := make(map[string]int, len(c.Indices))
	var evalErr error
	t := tensor.FromShapeFunc(shape, func(index []int) interface{} {
		if evalErr != nil {
			return nil
		}
		for k, name := range c.Indices {
			binds[name] = index[k]
		}
		v, err := ev.evalItems(c.Body.Items, binds)
		if err != nil {
			evalErr = err
			return nil
		}
		return unwrap(v)
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return tensorism.Array{ND: t}, nil
}

// unwrap turns a scalar Value back into the plain Go value stored as a
// tensor element.
func unwrap(v tensorism.Value) interface{} {
	switch x := v.(type) {
	case tensorism.Float:
		return float64(x)
	case tensorism.Integer:
		return int64(x)
	}
	return v
}

func copyBinds(binds map[string]int) map[string]int {
	inner := make(map[string]int, len(binds)+2)
	for name, v := range binds {
		inner[name] = v
	}
	return inner
}
