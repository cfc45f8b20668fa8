package evaluator

import (
	"github.com/emirpasic/gods/stacks/linkedliststack"

	"github.com/contactomorph/tensorism"
)

// exprStack holds intermediate values during the operator walk of a
// lowered expression.
type exprStack struct {
	stack *linkedliststack.Stack
}

func newExprStack() *exprStack {
	return &exprStack{stack: linkedliststack.New()}
}

func (s *exprStack) push(v tensorism.Value) {
	s.stack.Push(v)
}

func (s *exprStack) pop() (tensorism.Value, bool) {
	v, ok := s.stack.Pop()
	if !ok {
		return nil, false
	}
	return v.(tensorism.Value), true
}

func (s *exprStack) size() int {
	return s.stack.Size()
}
