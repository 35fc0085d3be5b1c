package ast

import (
	"fmt"

	"github.com/sysy-lang/sysyc/lang/token"
)

type (
	// Block is a brace-delimited sequence of statements, introducing a new
	// lexical scope.
	Block struct {
		Lbrace token.Pos
		Stmts  []Stmt
		Rbrace token.Pos
	}

	// LocalDeclStmt is a "const int ...;" or "int ...;" declaration appearing
	// inside a function body.
	LocalDeclStmt struct {
		Const bool
		Start token.Pos
		End   token.Pos
		Defs  []*Def
	}

	// AssignStmt is "name = expr;".
	AssignStmt struct {
		Name  *IdentExpr
		Eq    token.Pos
		Value Expr
		End   token.Pos
	}

	// ExprStmt is an expression evaluated for its side effects, e.g. a bare
	// function call, or the empty statement ";".
	ExprStmt struct {
		Expr  Expr // nil for the empty statement
		Start token.Pos
		End   token.Pos
	}

	// BlockStmt wraps a nested Block used as a statement.
	BlockStmt struct {
		Body *Block
	}

	// IfStmt is "if (cond) then [else else_]".
	IfStmt struct {
		Start token.Pos
		Cond  Expr
		Then  Stmt
		Else  Stmt // nil if no else clause
	}

	// WhileStmt is "while (cond) body".
	WhileStmt struct {
		Start token.Pos
		Cond  Expr
		Body  Stmt
	}

	// BreakStmt is "break;".
	BreakStmt struct {
		Start token.Pos
		End   token.Pos
	}

	// ContinueStmt is "continue;".
	ContinueStmt struct {
		Start token.Pos
		End   token.Pos
	}

	// ReturnStmt is "return [expr];".
	ReturnStmt struct {
		Start token.Pos
		Expr  Expr // nil for a bare "return;"
		End   token.Pos
	}
)

func (n *Block) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *Block) Span() (start, end token.Pos) { return n.Lbrace, n.Rbrace + 1 }
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

func (n *LocalDeclStmt) Format(f fmt.State, verb rune) {
	lbl := "vardecl"
	if n.Const {
		lbl = "constdecl"
	}
	format(f, verb, n, lbl, map[string]int{"defs": len(n.Defs)})
}
func (n *LocalDeclStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *LocalDeclStmt) Walk(v Visitor) {
	for _, d := range n.Defs {
		Walk(v, d)
	}
}
func (n *LocalDeclStmt) stmt() {}

func (n *AssignStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "assign "+n.Name.Lit, nil) }
func (n *AssignStmt) Span() (start, end token.Pos)  { return n.Name.Start, n.End }
func (n *AssignStmt) Walk(v Visitor) {
	Walk(v, n.Name)
	Walk(v, n.Value)
}
func (n *AssignStmt) stmt() {}

func (n *ExprStmt) Format(f fmt.State, verb rune) {
	lbl := "empty stmt"
	if n.Expr != nil {
		lbl = "expr stmt"
	}
	format(f, verb, n, lbl, nil)
}
func (n *ExprStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *ExprStmt) Walk(v Visitor) {
	if n.Expr != nil {
		Walk(v, n.Expr)
	}
}
func (n *ExprStmt) stmt() {}

func (n *BlockStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "nested block", nil) }
func (n *BlockStmt) Span() (start, end token.Pos)  { return n.Body.Span() }
func (n *BlockStmt) Walk(v Visitor)                { Walk(v, n.Body) }
func (n *BlockStmt) stmt()                         {}

func (n *IfStmt) Format(f fmt.State, verb rune) {
	lbl := "if"
	if n.Else != nil {
		lbl = "if/else"
	}
	format(f, verb, n, lbl, nil)
}
func (n *IfStmt) Span() (start, end token.Pos) {
	if n.Else != nil {
		_, end = n.Else.Span()
	} else {
		_, end = n.Then.Span()
	}
	return n.Start, end
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *IfStmt) stmt() {}

func (n *WhileStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *WhileStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.Start, end
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) stmt() {}

func (n *BreakStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "break", nil) }
func (n *BreakStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *BreakStmt) Walk(v Visitor)                {}
func (n *BreakStmt) stmt()                         {}

func (n *ContinueStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "continue", nil) }
func (n *ContinueStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *ContinueStmt) Walk(v Visitor)                {}
func (n *ContinueStmt) stmt()                         {}

func (n *ReturnStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "return", nil) }
func (n *ReturnStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Expr != nil {
		Walk(v, n.Expr)
	}
}
func (n *ReturnStmt) stmt() {}
