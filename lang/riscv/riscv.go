// Package riscv lowers a koopa.Program (the raw IR tree parsed from the
// frontend's textual output) into RV32 assembly text: a frame planner sizes
// each function's stack frame, a value placer resolves every IR value to a
// register, a stack slot or a global label, and an instruction selector
// emits 1-3 RV32 instructions per IR operator.
package riscv

import (
	"fmt"
	"io"
	"strings"

	"github.com/dolthub/swiss"

	"github.com/sysy-lang/sysyc/lang/koopa"
)

// Register slot indices into the 16-entry register-state array: slot 0 is
// x0 (always zero, never allocated), slots 1-7 are the scratch temporaries
// t0-t6, slots 8-15 are the argument/return registers a0-a7.
const (
	regX0 = 0
	regT0 = 1
	regT6 = 7
	regA0 = 8
)

var regNames = [16]string{
	"x0",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
}

func regName(slot int) string { return regNames[slot] }

// Environment is the backend's single mutable compilation context: the
// assembly output buffer, the value→Placement map, the register-state
// array, the current function's frame layout, and the basic-block→label
// table, owned exclusively by the single Compile call that builds it.
type Environment struct {
	out   strings.Builder
	trace io.Writer

	placements *swiss.Map[koopa.ValueID, Placement]
	regFree    [16]bool

	blockLabels map[*koopa.BasicBlock]string
	nextBranch  int

	frameSize int
	s0Offset  int
	raOffset  int // -1 if the function contains no call
	hasCall   bool
}

// newEnvironment returns a fresh Environment with every scratch register
// free and an empty placement map sized for a typical function.
func newEnvironment(trace io.Writer) *Environment {
	e := &Environment{
		trace:       trace,
		placements:  swiss.NewMap[koopa.ValueID, Placement](64),
		blockLabels: make(map[*koopa.BasicBlock]string),
	}
	e.freeAllTemps()
	return e
}

func (e *Environment) freeAllTemps() {
	for i := regT0; i <= regT6; i++ {
		e.regFree[i] = true
	}
}

// emit appends an indented instruction or assembler-directive line.
func (e *Environment) emit(format string, args ...interface{}) {
	e.writeLine("\t" + fmt.Sprintf(format, args...))
}

// emitLabel appends an unindented label line ("name:").
func (e *Environment) emitLabel(format string, args ...interface{}) {
	e.writeLine(fmt.Sprintf(format, args...))
}

func (e *Environment) writeLine(line string) {
	e.out.WriteString(line)
	e.out.WriteByte('\n')
	if e.trace != nil {
		fmt.Fprintln(e.trace, line)
	}
}

// Compile lowers prog to textual RV32 assembly. trace, if non-nil, receives
// a copy of every emitted line (wired to internal/config's SYSYC_TRACE_ASM
// knob by the driver).
func Compile(prog *koopa.Program, trace io.Writer) string {
	e := newEnvironment(trace)

	if len(prog.Globals) > 0 {
		e.emit(".data")
		for _, g := range prog.Globals {
			e.emitGlobal(g)
		}
	}

	e.emit(".text")
	for _, f := range prog.Funcs {
		if f.IsDecl {
			continue
		}
		e.compileFunc(f)
	}
	return e.out.String()
}

func (e *Environment) emitGlobal(v *koopa.Value) {
	label := strings.TrimPrefix(v.Name, "@")
	e.placements.Put(v.ID, Placement{Kind: Global, Label: label})
	e.emit(".globl %s", label)
	e.emitLabel("%s:", label)
	if v.HasInit {
		e.emit(".word %d", v.Imm)
	} else {
		e.emit(".zero 4")
	}
}

func (e *Environment) compileFunc(f *koopa.Function) {
	e.freeAllTemps()
	e.planFrame(f)

	e.emit(".globl %s", f.Name)
	e.emitLabel("%s:", f.Name)
	e.emitPrologue()

	for i, bb := range f.Blocks {
		if i > 0 {
			e.emitLabel("%s:", e.blockLabel(bb))
		}
		for _, inst := range bb.Insts {
			e.selectInst(inst)
		}
	}
}

func (e *Environment) emitPrologue() {
	e.emit("addi sp, sp, -%d", e.frameSize)
	e.emit("sw s0, %d(sp)", e.s0Offset)
	e.emit("addi s0, sp, %d", e.frameSize)
	if e.hasCall {
		e.emit("sw ra, %d(sp)", e.raOffset)
	}
}

// emitEpilogue is emitted at every return.
func (e *Environment) emitEpilogue() {
	if e.hasCall {
		e.emit("lw ra, %d(sp)", e.raOffset)
	}
	e.emit("lw s0, %d(sp)", e.s0Offset)
	e.emit("addi sp, sp, %d", e.frameSize)
}

// blockLabel interns bb's generated "branchK" label; the
// function's entry block (bb.Label == "") is never targeted by a jump or
// branch in conforming IR, since control only ever falls into it.
func (e *Environment) blockLabel(bb *koopa.BasicBlock) string {
	if lbl, ok := e.blockLabels[bb]; ok {
		return lbl
	}
	lbl := fmt.Sprintf("branch%d", e.nextBranch)
	e.nextBranch++
	e.blockLabels[bb] = lbl
	return lbl
}
