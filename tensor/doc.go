/*
Package tensor provides the multi-dimensional array runtime the generated
code operates on. It is a collaborator of the compiler, not part of it.
The code generator only relies on four primitives: the rank of an array,
the size of one of its axes, construction from a generator function over
multi-indices, and unchecked single-element reads.

Arrays are stored flat in row-major order. Dimensions can carry a
thumbprint minted from a process-wide atomic counter, so dynamically
created dimensions of equal size remain distinguishable in diagnostics
even when many compilations run concurrently.
*/
package tensor

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tensorism.tensor'.
func tracer() tracing.Trace {
	return tracing.Select("tensorism.tensor")
}
