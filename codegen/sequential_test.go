package codegen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/contactomorph/tensorism/grammar"
)

func sequentialize(t *testing.T, input string) *Code {
	t.Helper()
	tokens, err := grammar.Tokenize(input)
	if err != nil {
		t.Fatal(err)
	}
	scope, indices, tensors, err := grammar.Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	code, err := Sequentialize(scope, indices, tensors)
	if err != nil {
		t.Fatal(err)
	}
	return code
}

func TestSequentializeHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tensorism.codegen")
	defer teardown()
	//
	code := sequentialize(t, "i j $ a[i,j] + b[j]")
	if len(code.Header) != 3 {
		t.Fatalf("expected 3 header statements, got %d", len(code.Header))
	}
	bind, ok := code.Header[0].(DimBind)
	if !ok || bind.Dim != "i_dimension" || bind.Site.Tensor != "a" || bind.Site.Axis != 0 {
		t.Errorf("statement 0: expected i_dimension bound to a/0, got %+v", code.Header[0])
	}
	bind, ok = code.Header[1].(DimBind)
	if !ok || bind.Dim != "j_dimension" || bind.Site.Tensor != "a" || bind.Site.Axis != 1 {
		t.Errorf("statement 1: expected j_dimension bound to a/1, got %+v", code.Header[1])
	}
	check, ok := code.Header[2].(DimCheck)
	if !ok || check.First.Tensor != "a" || check.Other.Tensor != "b" {
		t.Errorf("statement 2: expected a check between a and b, got %+v", code.Header[2])
	}
	if check.Other.Rank != 1 {
		t.Errorf("expected b to have rank 1, got %d", check.Other.Rank)
	}
}

func TestSequentializeArrayMode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tensorism.codegen")
	defer teardown()
	//
	code := sequentialize(t, "i j $ a[i,j] + b[j]")
	if code.Mode != ArrayMode {
		t.Fatalf("expected array mode, got %s", code.Mode)
	}
	want := "i_dimension := dim(a, 0)\n" +
		"j_dimension := dim(a, 1)\n" +
		"check dim(a, 1) == dim(b)\n" +
		"make[i < i_dimension, j < j_dimension](uget(a, i, j) + uget(b, j))\n"
	if got := code.String(); got != want {
		t.Errorf("rendered code mismatch:\n--- want ---\n%s--- got ---\n%s", want, got)
	}
}

func TestSequentializeExpressionMode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tensorism.codegen")
	defer teardown()
	//
	code := sequentialize(t, "sum(i $ a[i])")
	if code.Mode != ExpressionMode {
		t.Fatalf("expected expression mode, got %s", code.Mode)
	}
	want := "i_dimension := dim(a)\n" +
		"sum (seq[i < i_dimension](uget(a, i)))\n"
	if got := code.String(); got != want {
		t.Errorf("rendered code mismatch:\n--- want ---\n%s--- got ---\n%s", want, got)
	}
}

func TestSequentializeNestedBinders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tensorism.codegen")
	defer teardown()
	//
	code := sequentialize(t, "sum(i $ min(j $ a[i,j]))")
	want := "i_dimension := dim(a, 0)\n" +
		"j_dimension := dim(a, 1)\n" +
		"sum (seq[i < i_dimension](min (seq[j < j_dimension](uget(a, i, j)))))\n"
	if got := code.String(); got != want {
		t.Errorf("rendered code mismatch:\n--- want ---\n%s--- got ---\n%s", want, got)
	}
}

func TestSequentializeExpressionModeWithoutTensors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tensorism.codegen")
	defer teardown()
	//
	code := sequentialize(t, "2 + 3 * 4")
	if code.Mode != ExpressionMode {
		t.Fatalf("expected expression mode, got %s", code.Mode)
	}
	if len(code.Header) != 0 {
		t.Errorf("expected an empty header, got %d statements", len(code.Header))
	}
	if got := code.String(); got != "2 + 3 * 4\n" {
		t.Errorf("rendered code mismatch: %q", got)
	}
}

func TestSequentializeLoneEmptyBinder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tensorism.codegen")
	defer teardown()
	//
	// a binder without indices binds nothing: the body is inlined, not
	// wrapped into a one-element sequence
	code := sequentialize(t, "$ 2 + 3")
	if code.Mode != ExpressionMode {
		t.Fatalf("expected expression mode, got %s", code.Mode)
	}
	if got := code.String(); got != "2 + 3\n" {
		t.Errorf("rendered code mismatch: %q", got)
	}
}

func TestSequentializeDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tensorism.codegen")
	defer teardown()
	//
	const input = "i j k $ a[i,j] * b[j,k] + c[i,k]"
	first := sequentialize(t, input).String()
	for n := 0; n < 5; n++ {
		if again := sequentialize(t, input).String(); again != first {
			t.Fatalf("run %d produced different code:\n%s\nvs\n%s", n, first, again)
		}
	}
}

func TestSequentializeUnusedIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tensorism.codegen")
	defer teardown()
	//
	tokens, err := grammar.Tokenize("i j $ a[i]")
	if err != nil {
		t.Fatal(err)
	}
	scope, indices, tensors, err := grammar.Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Sequentialize(scope, indices, tensors)
	if err == nil {
		t.Fatal("expected an error for an unused index")
	}
	cerr, ok := err.(*grammar.CompileError)
	if !ok || cerr.Code != grammar.ErrUnusedIndex {
		t.Errorf("expected %s, got %v", grammar.ErrUnusedIndex, err)
	}
}
