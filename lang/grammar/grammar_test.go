package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

// TestEBNF verifies that the SysY surface grammar transcribed in sysy.ebnf
// parses and is well-formed (every production reachable from CompUnit is
// defined).
func TestEBNF(t *testing.T) {
	f, err := os.Open("sysy.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("sysy.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "CompUnit"); err != nil {
		t.Fatal(err)
	}
}
