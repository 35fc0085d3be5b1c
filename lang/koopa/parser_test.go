package koopa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sysy-lang/sysyc/lang/koopa"
)

func TestParseResolvesBranchTargets(t *testing.T) {
	prog, err := koopa.Parse(`
fun @main(): i32 {
%entry:
	%0 = eq 0, 0
	br %0, %branch0, %branch1
%branch0:
	jump %branch2
%branch1:
	jump %branch2
%branch2:
	ret 1
}
`)
	require.NoError(t, err)
	require.Len(t, prog.Funcs, 1)
	f := prog.Funcs[0]
	require.Len(t, f.Blocks, 4)

	entry := f.Blocks[0]
	br := entry.Terminator()
	require.Equal(t, koopa.KBranch, br.Kind)
	require.Len(t, br.Targets, 2)
	require.NotNil(t, br.Targets[0])
	require.NotNil(t, br.Targets[1])
	require.Equal(t, "branch0", br.Targets[0].Label)
	require.Equal(t, "branch1", br.Targets[1].Label)

	jmp := f.Blocks[1].Terminator()
	require.Equal(t, koopa.KJump, jmp.Kind)
	require.Same(t, f.Blocks[3], jmp.Targets[0])
}

func TestParseGlobalVisibleInsideFunction(t *testing.T) {
	prog, err := koopa.Parse(`
global @g = alloc i32, 41

fun @main(): i32 {
%entry:
	%0 = load @g
	%1 = add %0, 1
	ret %1
}
`)
	require.NoError(t, err)
	require.Len(t, prog.Globals, 1)
	require.Equal(t, "@g", prog.Globals[0].Name)

	f := prog.FuncByName("main")
	require.NotNil(t, f)
	load := f.Blocks[0].Insts[0]
	require.Equal(t, koopa.KLoad, load.Kind)
	require.Same(t, prog.Globals[0], load.Operands[0])
}

func TestParseFuncArgRefAndOverflowParams(t *testing.T) {
	prog, err := koopa.Parse(`
fun @sum(%a: i32, %b: i32): i32 {
%entry:
	%0 = add %a, %b
	ret %0
}
`)
	require.NoError(t, err)
	f := prog.FuncByName("sum")
	require.NotNil(t, f)
	require.Equal(t, []string{"a", "b"}, f.ParamNames)

	add := f.Blocks[0].Insts[0]
	require.Equal(t, koopa.KFuncArgRef, add.Operands[0].Kind)
	require.Equal(t, 0, add.Operands[0].ArgIndex)
	require.Equal(t, koopa.KFuncArgRef, add.Operands[1].Kind)
	require.Equal(t, 1, add.Operands[1].ArgIndex)
}

func TestParseZeroInitGlobal(t *testing.T) {
	prog, err := koopa.Parse("global @g = alloc i32, zeroinit\n")
	require.NoError(t, err)
	require.Len(t, prog.Globals, 1)
	require.False(t, prog.Globals[0].HasInit)
}
