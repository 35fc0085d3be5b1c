package ast

import (
	"fmt"

	"github.com/sysy-lang/sysyc/lang/token"
)

type (
	// NumberExpr is an integer literal.
	NumberExpr struct {
		Start token.Pos
		Raw   string
		Value int64
	}

	// IdentExpr is an identifier reference, either a variable/constant use or
	// the name being declared/assigned.
	IdentExpr struct {
		Start token.Pos
		Lit   string
	}

	// ParenExpr is a parenthesized expression, corresponding to the grammar's
	// PrimaryExp production when it wraps a nested expression rather than a
	// bare number, identifier or call.
	ParenExpr struct {
		Lparen token.Pos
		Expr   Expr
		Rparen token.Pos
	}

	// UnaryExpr is a unary operator expression: +e, -e or !e.
	UnaryExpr struct {
		Op    token.Token // PLUS, MINUS or NOT
		Pos   token.Pos
		Right Expr
	}

	// BinaryExpr is an arithmetic binary expression: *, /, %, + or -.
	BinaryExpr struct {
		Left  Expr
		Op    token.Token
		Pos   token.Pos
		Right Expr
	}

	// RelExpr is a relational or equality expression: <, <=, >, >=, == or !=.
	RelExpr struct {
		Left  Expr
		Op    token.Token
		Pos   token.Pos
		Right Expr
	}

	// LogicalExpr is a short-circuiting && or || expression.
	LogicalExpr struct {
		Left  Expr
		Op    token.Token // LAND or LOR
		Pos   token.Pos
		Right Expr
	}

	// CallExpr is a function call, e.g. f(a, b).
	CallExpr struct {
		Fn     *IdentExpr
		Lparen token.Pos
		Args   []Expr
		Rparen token.Pos
	}
)

func (n *NumberExpr) Format(f fmt.State, verb rune) { format(f, verb, n, n.Raw, nil) }
func (n *NumberExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Raw))
}
func (n *NumberExpr) Walk(v Visitor) {}
func (n *NumberExpr) expr()          {}

func (n *IdentExpr) Format(f fmt.State, verb rune) { format(f, verb, n, n.Lit, nil) }
func (n *IdentExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Lit))
}
func (n *IdentExpr) Walk(v Visitor) {}
func (n *IdentExpr) expr()          {}

func (n *ParenExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "(expr)", nil) }
func (n *ParenExpr) Span() (start, end token.Pos) {
	return n.Lparen, n.Rparen + 1
}
func (n *ParenExpr) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *ParenExpr) expr()          {}

func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Op.GoString(), nil)
}
func (n *UnaryExpr) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.Pos, end
}
func (n *UnaryExpr) Walk(v Visitor) { Walk(v, n.Right) }
func (n *UnaryExpr) expr()          {}

func (n *BinaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Op.GoString(), nil)
}
func (n *BinaryExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinaryExpr) expr() {}

func (n *RelExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "rel "+n.Op.GoString(), nil)
}
func (n *RelExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *RelExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *RelExpr) expr() {}

func (n *LogicalExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "logical "+n.Op.GoString(), nil)
}
func (n *LogicalExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *LogicalExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *LogicalExpr) expr() {}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call "+n.Fn.Lit, map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Fn.Span()
	return start, n.Rparen + 1
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *CallExpr) expr() {}
