/*
Package evaluator runs generated Ricci code against concrete arrays.

A Program links a compiled unit to an environment binding array names to
tensors and scalar names to values. Running it first executes the header:
every dimension binding reads an axis size from its array, every
consistency check compares two such sizes and aborts the run with the
fixed "Non matching dimensions" diagnostic on mismatch. Only then is the
body evaluated: as a fresh array in array-construction mode, or as an
ordinary expression in which index binders have become lazy nested
sequences drained by aggregations such as sum, min and max.

The compiler itself never evaluates anything; this package is where the
numbers happen.
*/
package evaluator

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tensorism.evaluator'.
func tracer() tracing.Trace {
	return tracing.Select("tensorism.evaluator")
}
