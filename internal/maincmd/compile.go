package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/sysy-lang/sysyc/internal/config"
	"github.com/sysy-lang/sysyc/lang/ast"
	"github.com/sysy-lang/sysyc/lang/frontend"
	"github.com/sysy-lang/sysyc/lang/koopa"
	"github.com/sysy-lang/sysyc/lang/parser"
	"github.com/sysy-lang/sysyc/lang/riscv"
	"github.com/sysy-lang/sysyc/lang/scanner"
	"github.com/sysy-lang/sysyc/lang/token"
)

// Mode selects which of the two pipelines CompileFile runs.
type Mode int

const (
	ModeKoopa Mode = iota
	ModeRISCV
)

// CompileFile runs the frontend lowering pipeline over input, and for
// ModeRISCV additionally runs it through the raw-IR parser and the RV32
// backend, writing the result to output. It is the single place the two
// pipelines are wired together.
func CompileFile(ctx context.Context, stdio mainer.Stdio, mode Mode, input, output string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("sysyc: reading configuration: %w", err)
	}

	src, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("sysyc: reading %s: %w", input, err)
	}

	fset := token.NewFileSet()
	file, cu, err := parser.ParseFile(fset, input, src)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return err
	}

	if cfg.TraceAST {
		p := &ast.Printer{Output: stdio.Stderr}
		if err := p.Print(cu); err != nil {
			return fmt.Errorf("sysyc: tracing AST: %w", err)
		}
	}

	var irTrace io.Writer
	if cfg.TraceIR {
		irTrace = stdio.Stderr
	}
	env := frontend.New(file, irTrace)
	if err := frontend.LowerCompUnit(env, cu); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	ir := env.Output()

	var out string
	switch mode {
	case ModeKoopa:
		out = ir
	case ModeRISCV:
		prog, err := koopa.Parse(ir)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		var asmTrace io.Writer
		if cfg.TraceASM {
			asmTrace = stdio.Stderr
		}
		out = riscv.Compile(prog, asmTrace)
	default:
		panic("sysyc: unreachable compile mode")
	}

	if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("sysyc: writing %s: %w", output, err)
	}
	return nil
}
