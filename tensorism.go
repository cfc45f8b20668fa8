/*
Package tensorism compiles Ricci-notation index expressions into
generated code over multi-dimensional arrays.

An expression such as

   i j $ a[i,j] + b[j]

binds the indices i and j, checks that every array is subscripted
consistently, and compiles to a header of dimension bindings and
consistency checks followed by either an array construction (when the
whole expression is one binder) or a lazy nested iteration embedded in
the surrounding expression code.

The compiler never evaluates anything itself; running the generated code
against concrete arrays is the evaluator package's job.
*/
package tensorism

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/contactomorph/tensorism/codegen"
	"github.com/contactomorph/tensorism/grammar"
)

// tracer traces with key 'tensorism'.
func tracer() tracing.Trace {
	return tracing.Select("tensorism")
}

// Compile scans, parses and lowers one Ricci expression. On success it
// returns the generated code; on failure a structural *grammar.CompileError
// takes the code's place.
func Compile(input string) (*codegen.Code, error) {
	tokens, err := grammar.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return CompileTokens(tokens)
}

// CompileTokens compiles an already tokenized expression. This is the
// entry point for hosts that carry their own lexer.
func CompileTokens(tokens []grammar.Token) (*codegen.Code, error) {
	scope, indices, tensors, err := grammar.Parse(tokens)
	if err != nil {
		tracer().Infof("compilation failed: %v", err)
		return nil, err
	}
	return codegen.Sequentialize(scope, indices, tensors)
}

// Format compiles an expression and renders the generated code as a
// flattened, whitespace-normalized string, intended for tooling,
// debugging and snapshot tests.
func Format(input string) (string, error) {
	code, err := Compile(input)
	if err != nil {
		return "", err
	}
	return simplify(code.String()), nil
}

// simplify joins the rendered lines into one, each trimmed and followed
// by a single space.
func simplify(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(strings.TrimSpace(line))
		b.WriteString(" ")
	}
	return strings.TrimRight(b.String(), " ")
}
