/*
Package grammar implements the front end of the Ricci-notation compiler:
a scanner for index expressions, a scope-aware recursive-descent parser,
and the two bookkeeping registries the code generator consumes.

Ricci notation lets users write multi-dimensional-array computations with
named indices instead of explicit loops:

   i j $ a[i,j] + b[j]

The parser turns a token tree into a tree of scopes whose elements are raw
tokens, nested scopes, index binders or tensor accesses. While parsing it
records, per index name, every (tensor, axis) site the index subscripts,
and per tensor name the arity it was first used with. Structural problems
(forbidden characters, reused or undeclared indices, inconsistent arities,
malformed subscript lists) abort the parse with the first error found.
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tensorism.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("tensorism.grammar")
}
