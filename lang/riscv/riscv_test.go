package riscv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sysy-lang/sysyc/lang/frontend"
	"github.com/sysy-lang/sysyc/lang/koopa"
	"github.com/sysy-lang/sysyc/lang/parser"
	"github.com/sysy-lang/sysyc/lang/riscv"
	"github.com/sysy-lang/sysyc/lang/token"
)

// compile runs the full pipeline (parse -> frontend IR -> koopa raw program
// -> RV32 text), mirroring what internal/maincmd's -riscv mode does.
func compile(t *testing.T, src string) string {
	t.Helper()
	fset := token.NewFileSet()
	file, cu, err := parser.ParseFile(fset, "test.sy", []byte(src))
	require.NoError(t, err)

	env := frontend.New(file, nil)
	require.NoError(t, frontend.LowerCompUnit(env, cu))

	prog, err := koopa.Parse(env.Output())
	require.NoError(t, err)

	return riscv.Compile(prog, nil)
}

func TestScenarioA_TrivialReturn(t *testing.T) {
	asm := compile(t, `int main() { return 0; }`)
	require.Contains(t, asm, ".globl main")
	require.Contains(t, asm, "main:")
	require.Contains(t, asm, "addi sp, sp, -")
	require.Contains(t, asm, "ret")
}

func TestScenarioB_ArithmeticExpression(t *testing.T) {
	// Outside a constant context, lowering always emits dynamic IR: only
	// const-declaration and global-variable initializers are folded at compile time. Each literal operand is still a zero-temp decimal, so the
	// backend materializes it with "li" before the mul/add.
	asm := compile(t, `int main() { return 1+2*3; }`)
	require.Contains(t, asm, "mul")
	require.Contains(t, asm, "add")
	require.Contains(t, asm, "li")
}

func TestScenarioC_LocalVarRoundTrip(t *testing.T) {
	asm := compile(t, `int main() { int a = 2; a = a + 3; return a; }`)
	require.Contains(t, asm, "sw")
	require.Contains(t, asm, "lw")
	require.Contains(t, asm, "add")
}

func TestScenarioD_IfElse(t *testing.T) {
	asm := compile(t, `int main() { if (1) return 1; else return 2; }`)
	require.Contains(t, asm, "bnez")
	require.Contains(t, asm, "branch")
}

func TestScenarioE_WhileLoop(t *testing.T) {
	asm := compile(t, `
int main() {
  int s = 0, i = 0;
  while (i < 10) { s = s + i; i = i + 1; }
  return s;
}`)
	require.Contains(t, asm, "slt")
	require.Contains(t, asm, "bnez")
	require.Contains(t, asm, "j branch")
}

func TestScenarioF_CallRoundTrip(t *testing.T) {
	asm := compile(t, `int f(int x) { return x*x; } int main() { return f(6); }`)
	require.Contains(t, asm, ".globl f")
	require.Contains(t, asm, "call f")
	require.Contains(t, asm, "mv a0,")
}

func TestCallOverflowArguments(t *testing.T) {
	// 10 parameters: the first 8 arrive in a0-a7, the last 2 spill to the
	// outgoing-argument overflow area.
	asm := compile(t, `
int sum10(int a,int b,int c,int d,int e,int f,int g,int h,int i,int j) {
  return a+b+c+d+e+f+g+h+i+j;
}
int main() {
  return sum10(1,2,3,4,5,6,7,8,9,10);
}`)
	require.Contains(t, asm, "sw")
	require.Contains(t, asm, "0(sp)")
	require.Contains(t, asm, "call sum10")
}

func TestRelationalOperators(t *testing.T) {
	asm := compile(t, `
int main() {
  int a = 1, b = 2;
  int r = 0;
  if (a >= b) r = 1;
  if (a <= b) r = 2;
  return r;
}`)
	require.Contains(t, asm, "slt")
	require.Contains(t, asm, "xori")
}

func TestGlobalVariable(t *testing.T) {
	asm := compile(t, `
int g = 41;
int main() { return g + 1; }`)
	require.Contains(t, asm, ".data")
	require.Contains(t, asm, ".globl g")
	require.Contains(t, asm, ".word 41")
	require.Contains(t, asm, "la ")
}

func TestUninitializedGlobalZeroInit(t *testing.T) {
	asm := compile(t, `
int g;
int main() { return g; }`)
	require.Contains(t, asm, ".zero 4")
}
