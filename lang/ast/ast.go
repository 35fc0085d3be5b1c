// Package ast defines the types representing the abstract syntax tree (AST)
// of a SysY compilation unit: a sum type over declarations, statements and
// expressions, each implementing Node so the whole tree can be walked with a
// single Visitor (see visitor.go) and printed with a single Printer (see
// printer.go).
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sysy-lang/sysyc/lang/token"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a one-line
	// description of itself (used by the Printer and in error messages). The
	// only supported verbs are 'v' and 's'.
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters each direct child node to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	stmt()
}

// Decl represents a top-level declaration: a function definition or a
// global constant/variable declaration.
type Decl interface {
	Node
	decl()
}

// CompUnit is the root of the AST: an ordered list of top-level
// declarations.
type CompUnit struct {
	Decls []Decl
}

func (n *CompUnit) Format(f fmt.State, verb rune) {
	format(f, verb, n, "compunit", map[string]int{"decls": len(n.Decls)})
}
func (n *CompUnit) Span() (start, end token.Pos) {
	if len(n.Decls) == 0 {
		return 0, 0
	}
	start, _ = n.Decls[0].Span()
	_, end = n.Decls[len(n.Decls)-1].Span()
	return start, end
}
func (n *CompUnit) Walk(v Visitor) {
	for _, d := range n.Decls {
		Walk(v, d)
	}
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}
	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
		}
		fmt.Fprint(f, " {"+strings.Join(parts, ", ")+"}")
	}
}
