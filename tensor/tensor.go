package tensor

import "fmt"

// NDArray is the untyped view of a tensor the evaluator works against:
// the four primitives the generated code needs, with elements delivered
// as interface values.
type NDArray interface {
	Rank() int
	Dim(axis int) int
	Size() int
	UncheckedAt(index ...int) interface{}
}

// Tensor is a fixed-shape multi-dimensional container with row-major
// storage. The zero Tensor is a rank-0 scalar holder and not useful;
// construct tensors with New, FromShapeFunc or FromSlice.
type Tensor[T any] struct {
	dims []Dim
	data []T
}

// New creates a zero-filled tensor with the given dimensions.
func New[T any](dims ...Dim) *Tensor[T] {
	size := 1
	for _, d := range dims {
		size *= d.Size()
	}
	return &Tensor[T]{
		dims: append([]Dim(nil), dims...),
		data: make([]T, size),
	}
}

// FromShapeFunc constructs a tensor of the given shape from a generator
// function over multi-indices. Every multi-index in the cartesian product
// of the axis ranges is visited exactly once, in lexicographic order with
// the first index slowest-varying, which matches the storage order.
func FromShapeFunc[T any](shape []int, gen func(index []int) T) *Tensor[T] {
	dims := make([]Dim, len(shape))
	size := 1
	for i, n := range shape {
		dims[i] = NewDim(n)
		size *= n
	}
	tracer().Debugf("allocating tensor of shape %v", shape)
	t := &Tensor[T]{dims: dims, data: make([]T, 0, size)}
	if size == 0 {
		return t
	}
	index := make([]int, len(shape))
	for {
		t.data = append(t.data, gen(index))
		k := len(index) - 1
		for k >= 0 {
			index[k]++
			if index[k] < shape[k] {
				break
			}
			index[k] = 0
			k--
		}
		if k < 0 {
			return t
		}
	}
}

// FromSlice creates a rank-1 tensor holding a copy of the given values.
func FromSlice[T any](values []T) *Tensor[T] {
	return &Tensor[T]{
		dims: []Dim{NewDim(len(values))},
		data: append([]T(nil), values...),
	}
}

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int {
	return len(t.dims)
}

// Dim returns the size of one axis.
func (t *Tensor[T]) Dim(axis int) int {
	return t.dims[axis].Size()
}

// Dims returns the tensor's dimensions.
func (t *Tensor[T]) Dims() []Dim {
	return append([]Dim(nil), t.dims...)
}

// Size returns the total number of elements.
func (t *Tensor[T]) Size() int {
	return len(t.data)
}

// At reads one element with full multi-index validation.
func (t *Tensor[T]) At(index ...int) T {
	if len(index) != len(t.dims) {
		panic(fmt.Sprintf("tensor: rank is %d, got %d indices", len(t.dims), len(index)))
	}
	for axis, i := range index {
		if i < 0 || i >= t.dims[axis].Size() {
			panic(fmt.Sprintf("tensor: index %d out of range on axis %d", i, axis))
		}
	}
	return t.data[t.offset(index)]
}

// Set writes one element with full multi-index validation.
func (t *Tensor[T]) Set(value T, index ...int) {
	if len(index) != len(t.dims) {
		panic(fmt.Sprintf("tensor: rank is %d, got %d indices", len(t.dims), len(index)))
	}
	for axis, i := range index {
		if i < 0 || i >= t.dims[axis].Size() {
			panic(fmt.Sprintf("tensor: index %d out of range on axis %d", i, axis))
		}
	}
	t.data[t.offset(index)] = value
}

// UncheckedAt reads one element without per-axis validation. Generated
// code uses this accessor: the header's dimension checks already ran.
func (t *Tensor[T]) UncheckedAt(index ...int) interface{} {
	return t.data[t.offset(index)]
}

func (t *Tensor[T]) offset(index []int) int {
	off := 0
	for axis, i := range index {
		off = off*t.dims[axis].Size() + i
	}
	return off
}

func (t *Tensor[T]) String() string {
	return fmt.Sprintf("〈%v〉#%d", t.dims, len(t.data))
}
