package tensorism

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/contactomorph/tensorism/grammar"
)

func TestFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tensorism")
	defer teardown()
	//
	cases := []struct {
		input string
		want  string
	}{
		{
			"i j $ a[i,j] + b[j]",
			"i_dimension := dim(a, 0) j_dimension := dim(a, 1) check dim(a, 1) == dim(b) " +
				"make[i < i_dimension, j < j_dimension](uget(a, i, j) + uget(b, j))",
		},
		{
			"sum(i $ a[i])",
			"i_dimension := dim(a) sum (seq[i < i_dimension](uget(a, i)))",
		},
		{
			"2 + 3",
			"2 + 3",
		},
		{
			// an index-less binder inlines its body
			"$ 2 + 3",
			"2 + 3",
		},
	}
	for _, c := range cases {
		got, err := Format(c.input)
		if err != nil {
			t.Errorf("%q: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("%q:\nexpected %q\ngot      %q", c.input, c.want, got)
		}
	}
}

func TestCompileReportsFirstError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tensorism")
	defer teardown()
	//
	_, err := Compile("i $ a[i] ; b[i]")
	if err == nil {
		t.Fatal("expected a compile error")
	}
	cerr, ok := err.(*grammar.CompileError)
	if !ok {
		t.Fatalf("expected a *grammar.CompileError, got %T", err)
	}
	if cerr.Message() != "Character ';' is forbidden" {
		t.Errorf("unexpected message %q", cerr.Message())
	}
}

func TestCompileTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tensorism")
	defer teardown()
	//
	tokens, err := grammar.Tokenize("i $ a[i]")
	if err != nil {
		t.Fatal(err)
	}
	code, err := CompileTokens(tokens)
	if err != nil {
		t.Fatal(err)
	}
	if len(code.Header) != 1 {
		t.Errorf("expected 1 header statement, got %d", len(code.Header))
	}
}
