package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes an indented textual dump of an AST, one node per line,
// useful for diagnosing the frontend without needing to read emitted IR.
// It never contributes to a compile's output file (the CLI only emits
// Koopa IR or RISC-V assembly); internal/maincmd wires it to stderr when
// SYSYC_TRACE_AST is set.
type Printer struct {
	Output io.Writer
}

// Print writes the dump of node and all its descendants to p.Output.
func (p *Printer) Print(node Node) error {
	pr := &printVisitor{w: p.Output}
	Walk(pr, node)
	return pr.err
}

type printVisitor struct {
	w      io.Writer
	indent int
	err    error
}

func (pr *printVisitor) Visit(n Node, dir VisitDirection) Visitor {
	if pr.err != nil {
		return nil
	}
	switch dir {
	case VisitEnter:
		if _, err := fmt.Fprintf(pr.w, "%s%v\n", strings.Repeat("  ", pr.indent), n); err != nil {
			pr.err = err
			return nil
		}
		pr.indent++
	case VisitExit:
		pr.indent--
	}
	return pr
}
