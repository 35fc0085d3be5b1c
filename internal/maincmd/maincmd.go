// Package maincmd implements the sysyc command line:
// "sysyc -koopa|-riscv <input> -o <output>", dispatched through
// github.com/mna/mainer. The surface is intentionally narrow, so
// Cmd.Validate and Cmd.Main switch on the two mode flags directly instead
// of a subcommand table.
package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "sysyc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s -koopa|-riscv <input> -o <output>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s -koopa|-riscv <input> -o <output>
       %[1]s -h|--help
       %[1]s -v|--version

Compiles a single SysY source file to either textual Koopa IR or RV32
assembly.

Valid flag options are:
       -koopa                    Emit textual Koopa IR.
       -riscv                    Emit RV32 assembly.
       -o, --output <path>       Write output to <path> (required).
       -h, --help                Show this help and exit.
       -v, --version             Print version and exit.

Setting SYSYC_TRACE_AST, SYSYC_TRACE_IR or SYSYC_TRACE_ASM to a truthy value
additionally echoes the parsed AST, each emitted IR line, or each emitted
assembly line (respectively) to stderr as it is produced.
`, binName)
)

// Cmd is the sysyc command's flag surface, parsed by mainer.Parser.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Koopa  bool   `flag:"koopa"`
	RISCV  bool   `flag:"riscv"`
	Output string `flag:"o,output"`

	args []string
}

func (c *Cmd) SetArgs(args []string)      { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool) {}

// Validate enforces the narrow flag surface: exactly one mode flag,
// exactly one input file, and a required -o.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if c.Koopa == c.RISCV {
		return fmt.Errorf("exactly one of -koopa or -riscv must be given")
	}
	if len(c.args) != 1 {
		return fmt.Errorf("exactly one input file must be given, got %d", len(c.args))
	}
	if c.Output == "" {
		return fmt.Errorf("-o <output> is required")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	mode := ModeKoopa
	if c.RISCV {
		mode = ModeRISCV
	}
	if err := CompileFile(ctx, stdio, mode, c.args[0], c.Output); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}
	return mainer.Success
}
