package tensor

import (
	"encoding/base64"
	"encoding/binary"
	"strconv"
	"sync/atomic"
)

// thumbprints mints distinguishing tags for dynamically created
// dimensions. Multiple compilation units may run concurrently, so this
// single piece of process-wide state is updated atomically.
var thumbprints uint32

// Dim is one dimension of a tensor: an axis size, plus a thumbprint
// telling dynamically created dimensions apart in diagnostics. A zero
// thumbprint marks a statically known dimension.
type Dim struct {
	size int
	tag  uint32
}

// NewDim creates a dimension of the given size with a fresh thumbprint.
func NewDim(size int) Dim {
	if size < 0 {
		panic("negative dimension size")
	}
	return Dim{size: size, tag: atomic.AddUint32(&thumbprints, 1)}
}

// StaticDim creates a statically known dimension; its thumbprint is zero.
func StaticDim(size int) Dim {
	if size < 0 {
		panic("negative dimension size")
	}
	return Dim{size: size}
}

// Size returns the number of valid index values along the dimension.
func (d Dim) Size() int {
	return d.size
}

// Equal compares two dimensions by size. Thumbprints do not take part:
// they only distinguish dimensions in textual output.
func (d Dim) Equal(other Dim) bool {
	return d.size == other.size
}

func (d Dim) String() string {
	s := strconv.Itoa(d.size)
	if d.tag == 0 {
		return s
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], d.tag)
	return s + "|" + base64.StdEncoding.EncodeToString(buf[:])
}
