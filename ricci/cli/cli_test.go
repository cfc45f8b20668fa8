package cli

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/contactomorph/tensorism/grammar"
)

func TestRunRicciCmdReturnsCompileError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tensorism")
	defer teardown()
	//
	// errors flow back to cobra; the command must not exit the process
	err := runRicciCmd(rootCmd, []string{"i", "i", "$", "a[i]"})
	if err == nil {
		t.Fatal("expected a compile error to be returned")
	}
	cerr, ok := err.(*grammar.CompileError)
	if !ok {
		t.Fatalf("expected a *grammar.CompileError, got %T: %v", err, err)
	}
	if cerr.Code != grammar.ErrReusedIndex {
		t.Errorf("expected %s, got %s", grammar.ErrReusedIndex, cerr.Code)
	}
}
