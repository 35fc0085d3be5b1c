package frontend_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sysy-lang/sysyc/lang/frontend"
	"github.com/sysy-lang/sysyc/lang/parser"
	"github.com/sysy-lang/sysyc/lang/token"
)

func lower(t *testing.T, src string) string {
	t.Helper()
	fset := token.NewFileSet()
	file, cu, err := parser.ParseFile(fset, "test.sy", []byte(src))
	require.NoError(t, err)

	env := frontend.New(file, nil)
	err = frontend.LowerCompUnit(env, cu)
	require.NoError(t, err)
	return env.Output()
}

func lowerErr(t *testing.T, src string) error {
	t.Helper()
	fset := token.NewFileSet()
	file, cu, err := parser.ParseFile(fset, "test.sy", []byte(src))
	require.NoError(t, err)

	env := frontend.New(file, nil)
	return frontend.LowerCompUnit(env, cu)
}

func TestLowerTrivialReturn(t *testing.T) {
	ir := lower(t, `int main() { return 0; }`)
	require.Contains(t, ir, "fun @main(): i32 {")
	require.Contains(t, ir, "%entry:")
	require.Contains(t, ir, "ret 0")
}

func TestLowerVoidFuncImplicitRet(t *testing.T) {
	ir := lower(t, `void f() { }`)
	require.Contains(t, ir, "fun @f() {")
	lines := strings.Split(strings.TrimSpace(ir), "\n")
	require.Equal(t, "ret", lines[len(lines)-2])
	require.Equal(t, "}", lines[len(lines)-1])
}

func TestLowerArithmeticExpression(t *testing.T) {
	ir := lower(t, `int main() { return 1 + 2 * 3; }`)
	require.Contains(t, ir, "= mul 2, 3")
	require.Contains(t, ir, "= add 1,")
}

func TestLowerLocalVarLoadStore(t *testing.T) {
	ir := lower(t, `
int main() {
  int x;
  x = 1;
  return x;
}
`)
	require.Contains(t, ir, "= alloc i32")
	require.Contains(t, ir, "store 1, @x_1")
	require.Contains(t, ir, "= load @x_1")
}

func TestLowerConstFoldedAtCompileTime(t *testing.T) {
	ir := lower(t, `
const int N = 3;
int main() { return N + 1; }
`)
	require.Contains(t, ir, "ret 4")
	require.NotContains(t, ir, "@N")
}

func TestLowerGlobalVarDecl(t *testing.T) {
	ir := lower(t, `
int g = 5;
int main() { return g; }
`)
	require.Contains(t, ir, "global @g = alloc i32, 5")
}

func TestLowerGlobalVarDeclZeroInit(t *testing.T) {
	ir := lower(t, `
int g;
int main() { return g; }
`)
	require.Contains(t, ir, "global @g = alloc i32, zeroinit")
}

func TestLowerIfElse(t *testing.T) {
	ir := lower(t, `
int main() {
  int x;
  x = 0;
  if (x == 0) x = 1; else x = 2;
  return x;
}
`)
	require.Contains(t, ir, "br")
	require.Contains(t, ir, "%branch0:")
}

func TestLowerWhileBreakContinue(t *testing.T) {
	ir := lower(t, `
int main() {
  int i;
  i = 0;
  while (i < 10) {
    i = i + 1;
    if (i == 3) continue;
    if (i == 5) break;
  }
  return i;
}
`)
	require.Contains(t, ir, "jump %branch")
}

func TestLowerShortCircuitAnd(t *testing.T) {
	ir := lower(t, `
int f(int a, int b) { return a && b; }
`)
	require.Contains(t, ir, "= alloc i32")
	require.Contains(t, ir, "store 0,")
	require.Contains(t, ir, "= ne 0,")
}

func TestLowerShortCircuitOr(t *testing.T) {
	ir := lower(t, `
int f(int a, int b) { return a || b; }
`)
	require.Contains(t, ir, "store 1,")
}

func TestLowerFunctionCallWithArgs(t *testing.T) {
	ir := lower(t, `
int add(int a, int b) { return a + b; }
int main() { return add(1, 2); }
`)
	require.Contains(t, ir, "= call @add(1, 2)")
}

func TestLowerVoidCallNoResultBinding(t *testing.T) {
	ir := lower(t, `
int main() {
  putint(1);
  return 0;
}
`)
	require.Contains(t, ir, "call @putint(1)")
	require.NotContains(t, ir, "= call @putint")
}

func TestLowerRuntimeDeclsEmittedFirst(t *testing.T) {
	ir := lower(t, `int main() { return 0; }`)
	require.Contains(t, ir, "decl @getint(): i32")
	require.Contains(t, ir, "decl @putch(i32)")
	require.Contains(t, ir, "decl @starttime()")
}

func TestLowerForwardCallToLaterFunction(t *testing.T) {
	ir := lower(t, `
int main() { return helper(); }
int helper() { return 42; }
`)
	require.Contains(t, ir, "= call @helper()")
}

func TestLowerErrorUndeclaredIdentifier(t *testing.T) {
	err := lowerErr(t, `int main() { return y; }`)
	require.Error(t, err)
}

func TestLowerErrorAssignToConst(t *testing.T) {
	err := lowerErr(t, `
const int N = 1;
int main() { N = 2; return N; }
`)
	require.Error(t, err)
}

func TestLowerErrorDuplicateFunction(t *testing.T) {
	err := lowerErr(t, `
int f() { return 0; }
int f() { return 1; }
`)
	require.Error(t, err)
}

func TestLowerErrorBreakOutsideLoop(t *testing.T) {
	err := lowerErr(t, `int main() { break; return 0; }`)
	require.Error(t, err)
}

func TestLowerErrorVoidReturnsValue(t *testing.T) {
	err := lowerErr(t, `void f() { return 1; }`)
	require.Error(t, err)
}

func TestLowerErrorVoidCallUsedAsValue(t *testing.T) {
	err := lowerErr(t, `
void f() { return; }
int main() { int x = f(); return x; }
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "void function call used as a value")
}

func TestLowerErrorCallUndeclaredFunction(t *testing.T) {
	err := lowerErr(t, `int main() { return nosuch(); }`)
	require.Error(t, err)
}

func TestLowerNestedScopeShadowing(t *testing.T) {
	ir := lower(t, `
int main() {
  int x;
  x = 1;
  {
    int x;
    x = 2;
  }
  return x;
}
`)
	require.Contains(t, ir, "@x_1")
	require.Contains(t, ir, "@x_2")
}
