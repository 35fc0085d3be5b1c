package maincmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"

	"github.com/sysy-lang/sysyc/internal/filetest"
	"github.com/sysy-lang/sysyc/internal/maincmd"
)

// scenarioShape captures the qualitative IR/assembly shape expected for
// one fixture, keyed by its filename.
type scenarioShape struct {
	ir  []string
	asm []string
}

var scenarios = map[string]scenarioShape{
	"a_trivial_return.sy": {
		ir:  []string{"fun @main(): i32 {", "ret 0"},
		asm: []string{".globl main", "main:", "ret"},
	},
	"b_arithmetic.sy": {
		ir:  []string{"= mul 2, 3", "= add 1,"},
		asm: []string{"mul", "add", "li"},
	},
	"c_local_var_roundtrip.sy": {
		ir:  []string{"= alloc i32", "store 2", "= load", "= add", "ret"},
		asm: []string{"sw", "lw", "add"},
	},
	"d_if_else.sy": {
		ir:  []string{"br", "%branch0:"},
		asm: []string{"bnez", "branch"},
	},
	"e_while_loop.sy": {
		ir:  []string{"%branch"},
		asm: []string{"slt", "bnez", "j branch"},
	},
	"f_call_roundtrip.sy": {
		ir:  []string{"= call @f(6)", "call @f"},
		asm: []string{".globl f", "call f"},
	},
}

// TestCompileFileScenarios drives maincmd.CompileFile over every fixture
// under testdata/in through both pipelines, asserting the qualitative
// shape of the emitted IR and assembly rather than byte-exact text.
func TestCompileFileScenarios(t *testing.T) {
	ctx := context.Background()
	srcDir := filepath.Join("testdata", "in")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".sy") {
		shape, ok := scenarios[fi.Name()]
		if !ok {
			t.Fatalf("no expected shape registered for fixture %s", fi.Name())
		}

		t.Run(fi.Name(), func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(srcDir, fi.Name())

			koopaOut := filepath.Join(dir, "out.koopa")
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}
			require.NoError(t, maincmd.CompileFile(ctx, stdio, maincmd.ModeKoopa, input, koopaOut))
			ir, err := os.ReadFile(koopaOut)
			require.NoError(t, err)
			for _, want := range shape.ir {
				require.Contains(t, string(ir), want)
			}

			asmOut := filepath.Join(dir, "out.s")
			require.NoError(t, maincmd.CompileFile(ctx, stdio, maincmd.ModeRISCV, input, asmOut))
			asm, err := os.ReadFile(asmOut)
			require.NoError(t, err)
			for _, want := range shape.asm {
				require.Contains(t, string(asm), want)
			}
		})
	}
}

func TestCompileFileRejectsMissingInput(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}
	err := maincmd.CompileFile(context.Background(), stdio, maincmd.ModeKoopa, filepath.Join("testdata", "in", "nosuch.sy"), filepath.Join(t.TempDir(), "out.koopa"))
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "reading"))
}
