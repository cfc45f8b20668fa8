/*
Package codegen implements the sequentializer, the back end of the
Ricci-notation compiler. It walks a finished scope tree plus the index
and tensor registries and emits generated code: a header of dimension
bindings and consistency checks, followed by a lowered body.

The body is lowered with one of two strategies, chosen once per
compilation unit. If the whole input reduces to a single non-empty index
binder, the generator emits an array construction whose shape is the
tuple of the bound dimensions, filled in row-major order. In every other
case binders lower to lazy nested sequences substituted in place, so they
compose with arbitrary surrounding expression code.

The emitted Code is a structured value; rendering it yields a
deterministic textual form used by tooling and snapshot tests. Actual
evaluation of generated code is the evaluator package's concern.
*/
package codegen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tensorism.codegen'.
func tracer() tracing.Trace {
	return tracing.Select("tensorism.codegen")
}
