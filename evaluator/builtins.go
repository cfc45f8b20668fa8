package evaluator

import (
	"fmt"

	"github.com/contactomorph/tensorism"
	"github.com/contactomorph/tensorism/codegen"
	"github.com/contactomorph/tensorism/grammar"
)

// callArgs evaluates the argument list of a builtin call: the items of
// the parenthesized grouping, split on top-level commas.
func (ev *evalCtx) callArgs(g *codegen.Grouping, binds map[string]int) ([]tensorism.Value, error) {
	var args []tensorism.Value
	start := 0
	for i := 0; i <= len(g.Items); i++ {
		atComma := false
		if i < len(g.Items) {
			raw, isRaw := g.Items[i].(codegen.Raw)
			atComma = isRaw && raw.Tok.Kind == grammar.Punct && raw.Tok.Lexeme == ","
		}
		if i == len(g.Items) || atComma {
			if start == i {
				if i == len(g.Items) && len(args) == 0 {
					break // empty argument list
				}
				return nil, fmt.Errorf("empty argument in call")
			}
			v, err := ev.evalItems(g.Items[start:i], binds)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
			start = i + 1
		}
	}
	return args, nil
}

// callBuiltin dispatches the builtin functions available to surrounding
// expression code. The reductions consume their sequence argument
// exactly once.
func callBuiltin(name string, args []tensorism.Value) (tensorism.Value, error) {
	switch name {
	case "sum":
		return reduceSeq(name, args, func(acc, v tensorism.Value) (tensorism.Value, error) {
			return acc.Self().Plus(v)
		}, tensorism.Integer(0))
	case "min":
		return reduceSeq(name, args, func(acc, v tensorism.Value) (tensorism.Value, error) {
			return pick(acc, v, true)
		}, nil)
	case "max":
		return reduceSeq(name, args, func(acc, v tensorism.Value) (tensorism.Value, error) {
			return pick(acc, v, false)
		}, nil)
	case "len":
		s, err := oneSequence(name, args)
		if err != nil {
			return nil, err
		}
		count := 0
		for _, ok := s.Next(); ok; _, ok = s.Next() {
			count++
		}
		if err := s.Err(); err != nil {
			return nil, err
		}
		return tensorism.Integer(count), nil
	case "float":
		v, err := oneScalar(name, args)
		if err != nil {
			return nil, err
		}
		f, err := v.Self().AsFloat()
		if err != nil {
			return nil, err
		}
		return tensorism.Float(f), nil
	case "int":
		v, err := oneScalar(name, args)
		if err != nil {
			return nil, err
		}
		n, err := v.Self().AsInteger()
		if err != nil {
			return nil, err
		}
		return tensorism.Integer(n), nil
	case "abs":
		v, err := oneScalar(name, args)
		if err != nil {
			return nil, err
		}
		f, err := v.Self().AsFloat()
		if err != nil {
			return nil, err
		}
		if f >= 0 {
			return v, nil
		}
		return v.Self().Negate()
	}
	return nil, fmt.Errorf("unknown function %q", name)
}

// reduceSeq drains a sequence argument through a fold. A nil zero means
// the reduction has no identity and fails on an empty sequence.
func reduceSeq(name string, args []tensorism.Value,
	fold func(acc, v tensorism.Value) (tensorism.Value, error),
	zero tensorism.Value) (tensorism.Value, error) {
	//
	s, err := oneSequence(name, args)
	if err != nil {
		return nil, err
	}
	var acc tensorism.Value
	for v, ok := s.Next(); ok; v, ok = s.Next() {
		if acc == nil {
			acc = v
			continue
		}
		acc, err = fold(acc, v)
		if err != nil {
			return nil, err
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if acc == nil {
		if zero == nil {
			return nil, fmt.Errorf("%s of an empty sequence", name)
		}
		acc = zero
	}
	return acc, nil
}

// pick keeps the smaller (or larger) of two scalars, preserving the
// original value rather than coercing it.
func pick(acc, v tensorism.Value, smaller bool) (tensorism.Value, error) {
	x, err := acc.Self().AsFloat()
	if err != nil {
		return nil, err
	}
	y, err := v.Self().AsFloat()
	if err != nil {
		return nil, err
	}
	if (smaller && y < x) || (!smaller && y > x) {
		return v, nil
	}
	return acc, nil
}

func oneSequence(name string, args []tensorism.Value) (*tensorism.Sequence, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s expects one argument, got %d", name, len(args))
	}
	s, err := args[0].Self().AsSequence()
	if err != nil {
		return nil, fmt.Errorf("%s expects a sequence: %w", name, err)
	}
	return s, nil
}

func oneScalar(name string, args []tensorism.Value) (tensorism.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s expects one argument, got %d", name, len(args))
	}
	if !args[0].Self().IsNumeric() {
		return nil, fmt.Errorf("%s expects a number, got %s", name, args[0].Type())
	}
	return args[0], nil
}
