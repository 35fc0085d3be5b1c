package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sysy-lang/sysyc/lang/ast"
	"github.com/sysy-lang/sysyc/lang/token"
)

func parse(t *testing.T, src string) *ast.CompUnit {
	t.Helper()
	fset := token.NewFileSet()
	_, cu, err := ParseFile(fset, "test.sy", []byte(src))
	require.NoError(t, err)
	return cu
}

func TestParseGlobalDecls(t *testing.T) {
	cu := parse(t, `
const int N = 10, M = N + 1;
int g;
int h = 5;
`)
	require.Len(t, cu.Decls, 3)

	cd := cu.Decls[0].(*ast.GlobalDecl)
	require.True(t, cd.Const)
	require.Len(t, cd.Defs, 2)
	require.Equal(t, "N", cd.Defs[0].Name.Lit)
	require.IsType(t, &ast.NumberExpr{}, cd.Defs[0].Init)
	require.Equal(t, "M", cd.Defs[1].Name.Lit)
	require.IsType(t, &ast.BinaryExpr{}, cd.Defs[1].Init)

	vd := cu.Decls[1].(*ast.GlobalDecl)
	require.False(t, vd.Const)
	require.Nil(t, vd.Defs[0].Init)

	vd2 := cu.Decls[2].(*ast.GlobalDecl)
	require.NotNil(t, vd2.Defs[0].Init)
}

func TestParseFuncDefWithParams(t *testing.T) {
	cu := parse(t, `int add(int a, int b) { return a + b; }`)
	require.Len(t, cu.Decls, 1)

	fd := cu.Decls[0].(*ast.FuncDef)
	require.False(t, fd.Void)
	require.Equal(t, "add", fd.Name.Lit)
	require.Len(t, fd.Params, 2)
	require.Equal(t, "a", fd.Params[0].Name.Lit)
	require.True(t, fd.ReturnsValue())

	require.Len(t, fd.Body.Stmts, 1)
	ret := fd.Body.Stmts[0].(*ast.ReturnStmt)
	bin := ret.Expr.(*ast.BinaryExpr)
	require.Equal(t, token.PLUS, bin.Op)
}

func TestParseVoidFuncNoParams(t *testing.T) {
	cu := parse(t, `void f() { return; }`)
	fd := cu.Decls[0].(*ast.FuncDef)
	require.True(t, fd.Void)
	require.False(t, fd.ReturnsValue())
	require.Empty(t, fd.Params)

	ret := fd.Body.Stmts[0].(*ast.ReturnStmt)
	require.Nil(t, ret.Expr)
}

func TestParseIfWhileBreakContinue(t *testing.T) {
	cu := parse(t, `
int f() {
  int i;
  i = 0;
  while (i < 10) {
    if (i == 5) break;
    else continue;
  }
  return i;
}
`)
	fd := cu.Decls[0].(*ast.FuncDef)
	require.Len(t, fd.Body.Stmts, 4)

	ws := fd.Body.Stmts[2].(*ast.WhileStmt)
	cond := ws.Cond.(*ast.RelExpr)
	require.Equal(t, token.LT, cond.Op)

	body := ws.Body.(*ast.BlockStmt).Body
	ifs := body.Stmts[0].(*ast.IfStmt)
	require.NotNil(t, ifs.Else)
	require.IsType(t, &ast.BreakStmt{}, ifs.Then)
	require.IsType(t, &ast.ContinueStmt{}, ifs.Else)
}

func TestParseLogicalShortCircuitPrecedence(t *testing.T) {
	cu := parse(t, `int f() { return a < b && c == d || !e; }`)
	fd := cu.Decls[0].(*ast.FuncDef)
	ret := fd.Body.Stmts[0].(*ast.ReturnStmt)

	lor := ret.Expr.(*ast.LogicalExpr)
	require.Equal(t, token.LOR, lor.Op)

	land := lor.Left.(*ast.LogicalExpr)
	require.Equal(t, token.LAND, land.Op)

	rel := land.Left.(*ast.RelExpr)
	require.Equal(t, token.LT, rel.Op)

	eq := land.Right.(*ast.RelExpr)
	require.Equal(t, token.EQL, eq.Op)

	not := lor.Right.(*ast.UnaryExpr)
	require.Equal(t, token.NOT, not.Op)
}

func TestParseCallExprAndAssign(t *testing.T) {
	cu := parse(t, `
int f(int x) { return x; }
int g() {
  int y;
  y = f(1 + 2, 3);
  return y;
}
`)
	fd := cu.Decls[1].(*ast.FuncDef)
	assign := fd.Body.Stmts[1].(*ast.AssignStmt)
	require.Equal(t, "y", assign.Name.Lit)
	call := assign.Value.(*ast.CallExpr)
	require.Equal(t, "f", call.Fn.Lit)
	require.Len(t, call.Args, 2)
}

func TestParseHexOctalLiterals(t *testing.T) {
	cu := parse(t, `const int a = 0x1A, b = 010;`)
	cd := cu.Decls[0].(*ast.GlobalDecl)
	require.EqualValues(t, 26, cd.Defs[0].Init.(*ast.NumberExpr).Value)
	require.EqualValues(t, 8, cd.Defs[1].Init.(*ast.NumberExpr).Value)
}

func TestParseArrayParamRecognizedButFlagged(t *testing.T) {
	cu := parse(t, `void f(int a[]) { return; }`)
	fd := cu.Decls[0].(*ast.FuncDef)
	require.True(t, fd.Params[0].Array)
}

func TestParseErrorRecoveryContinuesToNextDecl(t *testing.T) {
	fset := token.NewFileSet()
	_, cu, err := ParseFile(fset, "test.sy", []byte(`
int bad( {
int ok() { return 1; }
`))
	require.Error(t, err)
	require.NotNil(t, cu)

	var found bool
	for _, d := range cu.Decls {
		if fd, ok := d.(*ast.FuncDef); ok && fd.Name.Lit == "ok" {
			found = true
		}
	}
	require.True(t, found, "parser should recover and still find the ok() function")
}

func TestParseEmptyStatement(t *testing.T) {
	cu := parse(t, `int f() { ; return 0; }`)
	fd := cu.Decls[0].(*ast.FuncDef)
	require.Len(t, fd.Body.Stmts, 2)
	require.IsType(t, &ast.ExprStmt{}, fd.Body.Stmts[0])
	require.Nil(t, fd.Body.Stmts[0].(*ast.ExprStmt).Expr)
}
