package ast

import (
	"fmt"

	"github.com/sysy-lang/sysyc/lang/token"
)

type (
	// Def is a single name/initializer pair inside a const or var
	// declaration, e.g. the "a = 1" in "int a = 1, b;".
	Def struct {
		Name  *IdentExpr
		Init  Expr // nil if no initializer (only legal for non-const vars)
		Start token.Pos
		End   token.Pos
	}

	// FuncParam is a single formal parameter of a function definition. SysY
	// only has int parameters in the compiling pipeline; array-decay
	// parameters are recognized by the parser but not compiled.
	FuncParam struct {
		Name  *IdentExpr
		Array bool // true if declared as "int name[]" (unsupported past parsing)
		Start token.Pos
	}

	// FuncDef represents a function definition, e.g. "int f(int x) { ... }".
	FuncDef struct {
		Start  token.Pos
		Void   bool // true if the return type is void
		Name   *IdentExpr
		Params []*FuncParam
		Body   *Block
	}

	// GlobalDecl represents a top-level "const int ...;" or "int ...;"
	// declaration.
	GlobalDecl struct {
		Const bool
		Start token.Pos
		End   token.Pos
		Defs  []*Def
	}
)

func (n *Def) Format(f fmt.State, verb rune) { format(f, verb, n, "def "+n.Name.Lit, nil) }
func (n *Def) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *Def) Walk(v Visitor) {
	Walk(v, n.Name)
	if n.Init != nil {
		Walk(v, n.Init)
	}
}

func (n *FuncParam) Format(f fmt.State, verb rune) { format(f, verb, n, "param "+n.Name.Lit, nil) }
func (n *FuncParam) Span() (start, end token.Pos) {
	_, end = n.Name.Span()
	return n.Start, end
}
func (n *FuncParam) Walk(v Visitor) { Walk(v, n.Name) }

func (n *FuncDef) Format(f fmt.State, verb rune) {
	format(f, verb, n, "funcdef "+n.Name.Lit, map[string]int{"params": len(n.Params)})
}
func (n *FuncDef) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.Start, end
}
func (n *FuncDef) Walk(v Visitor) {
	Walk(v, n.Name)
	for _, p := range n.Params {
		Walk(v, p)
	}
	Walk(v, n.Body)
}
func (n *FuncDef) decl() {}

// ReturnsValue reports whether calls to this function yield a usable value.
func (n *FuncDef) ReturnsValue() bool { return !n.Void }

func (n *GlobalDecl) Format(f fmt.State, verb rune) {
	lbl := "vardecl"
	if n.Const {
		lbl = "constdecl"
	}
	format(f, verb, n, lbl, map[string]int{"defs": len(n.Defs)})
}
func (n *GlobalDecl) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *GlobalDecl) Walk(v Visitor) {
	for _, d := range n.Defs {
		Walk(v, d)
	}
}
func (n *GlobalDecl) decl() {}
