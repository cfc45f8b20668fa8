package evaluator

import (
	"fmt"

	"github.com/contactomorph/tensorism"
	"github.com/contactomorph/tensorism/codegen"
	"github.com/contactomorph/tensorism/tensor"
)

// nonMatchingDimensions is the fixed diagnostic of a failed header check.
const nonMatchingDimensions = "Non matching dimensions"

// RunError is a failure of generated code at run time. Dimension
// mismatches are the one failure mode the compiler plans for; they abort
// the run before any body element executes.
type RunError struct {
	Message string
}

func (e *RunError) Error() string {
	return e.Message
}

func runErrorf(format string, args ...interface{}) *RunError {
	return &RunError{Message: fmt.Sprintf(format, args...)}
}

// Program is a compiled unit linked to an environment of named arrays
// and scalars.
type Program struct {
	code    *codegen.Code
	arrays  map[string]tensor.NDArray
	scalars map[string]tensorism.Value
}

// New wraps generated code into a runnable program with an empty
// environment.
func New(code *codegen.Code) *Program {
	return &Program{
		code:    code,
		arrays:  make(map[string]tensor.NDArray),
		scalars: make(map[string]tensorism.Value),
	}
}

// BindArray binds an array name used by the generated code. It returns
// the program for chaining.
func (p *Program) BindArray(name string, a tensor.NDArray) *Program {
	p.arrays[name] = a
	return p
}

// BindScalar binds a scalar name referenced by surrounding expression
// code. It returns the program for chaining.
func (p *Program) BindScalar(name string, v tensorism.Value) *Program {
	p.scalars[name] = v
	return p
}

// Run executes the program: header first, then the lowered body. A
// failing dimension check aborts with a *RunError carrying the fixed
// "Non matching dimensions" message before any body element runs.
func (p *Program) Run() (tensorism.Value, error) {
	dims := make(map[string]int)
	for _, stmt := range p.code.Header {
		switch s := stmt.(type) {
		case codegen.DimBind:
			size, err := p.axisSize(s.Site)
			if err != nil {
				return nil, err
			}
			tracer().Debugf("%s = %d", s.Dim, size)
			dims[s.Dim] = size
		case codegen.DimCheck:
			first, err := p.axisSize(s.First)
			if err != nil {
				return nil, err
			}
			other, err := p.axisSize(s.Other)
			if err != nil {
				return nil, err
			}
			if first != other {
				return nil, &RunError{Message: nonMatchingDimensions}
			}
		}
	}
	ev := &evalCtx{prog: p, dims: dims}
	switch body := p.code.Body.(type) {
	case *codegen.Construct:
		return ev.construct(body)
	case *codegen.Grouping:
		return ev.evalItems(body.Items, nil)
	}
	return nil, fmt.Errorf("malformed generated code: %T body", p.code.Body)
}

// axisSize computes the run-time size of one site. Axis sizes are
// ordinary values of the bound arrays, which is why the header's checks
// cannot run any earlier than this.
func (p *Program) axisSize(site codegen.Site) (int, error) {
	a, ok := p.arrays[site.Tensor]
	if !ok {
		return 0, runErrorf("unknown array %q", site.Tensor)
	}
	if a.Rank() != site.Rank {
		return 0, runErrorf("array %q has rank %d, generated code expects %d",
			site.Tensor, a.Rank(), site.Rank)
	}
	return a.Dim(site.Axis), nil
}
