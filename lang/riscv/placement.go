package riscv

import "github.com/sysy-lang/sysyc/lang/koopa"

// PlaceKind is the kind of a value's Placement.
type PlaceKind int

const (
	// InReg: the value lives in a fixed argument register a0-a7, only
	// produced for a FuncArgRef whose index is < 8, for as long as that
	// register still holds the incoming parameter (the frontend always
	// consumes it immediately via the parameter-materializing store, so no
	// other instruction observes it after that point).
	InReg PlaceKind = iota
	// OnStack: the value lives at a fixed, non-negative byte offset from sp.
	// A FuncArgRef with index >= 8 also resolves here, addressing the
	// caller's outgoing-argument overflow area just above this function's
	// own frame.
	OnStack
	// Global: the value is a named global label in .data.
	Global
)

// Placement is where an IR value currently resides: a register, a stack
// slot, or a global label.
type Placement struct {
	Kind   PlaceKind
	Reg    int    // meaningful iff Kind == InReg
	Offset int    // meaningful iff Kind == OnStack
	Label  string // meaningful iff Kind == Global
}

// placementOf resolves v's Placement, populated by planFrame (every non-Unit
// instruction result), by emitGlobal (every global), or lazily here for a
// FuncArgRef, whose location is determined entirely by its ArgIndex and the
// current function's frame size rather than by a dedicated stack slot.
func (e *Environment) placementOf(v *koopa.Value) Placement {
	if p, ok := e.placements.Get(v.ID); ok {
		return p
	}
	if v.Kind == koopa.KFuncArgRef {
		var p Placement
		if v.ArgIndex < 8 {
			p = Placement{Kind: InReg, Reg: regA0 + v.ArgIndex}
		} else {
			p = Placement{Kind: OnStack, Offset: e.frameSize + (v.ArgIndex-8)*4}
		}
		e.placements.Put(v.ID, p)
		return p
	}
	panic("riscv: no placement recorded for value " + v.Kind.String())
}

// allocTemp returns a free scratch register (t0-t6), marking it busy. It
// panics if none is free: the selection discipline never holds more than
// ~3 temps live at once, so exhaustion indicates a selector bug rather than
// a program that needs a real spill search.
func (e *Environment) allocTemp() int {
	for i := regT0; i <= regT6; i++ {
		if e.regFree[i] {
			e.regFree[i] = false
			return i
		}
	}
	panic("riscv: no free temporary register")
}

// freeTemp releases r if it is a scratch temporary; freeing x0 or an
// argument register is a no-op (they are never owned by allocTemp).
func (e *Environment) freeTemp(r int) {
	if r >= regT0 && r <= regT6 {
		e.regFree[r] = true
	}
}

// loadOperand materializes v's value into a register: x0 for the literal
// zero, a freshly allocated temp loaded with "li"/"lw"/"la+lw" otherwise, or
// the fixed argument register for a still-live FuncArgRef.
func (e *Environment) loadOperand(v *koopa.Value) int {
	if v.Kind == koopa.KInteger {
		if v.Imm == 0 {
			return regX0
		}
		r := e.allocTemp()
		e.emit("li %s, %d", regName(r), v.Imm)
		return r
	}

	p := e.placementOf(v)
	switch p.Kind {
	case InReg:
		return p.Reg
	case OnStack:
		r := e.allocTemp()
		e.emit("lw %s, %d(sp)", regName(r), p.Offset)
		return r
	case Global:
		r := e.allocTemp()
		e.emit("la %s, %s", regName(r), p.Label)
		e.emit("lw %s, 0(%s)", regName(r), regName(r))
		return r
	default:
		panic("riscv: unreachable placement kind in loadOperand")
	}
}

// storeResult spills r, the just-computed value of inst, to inst's planned
// stack slot; cross-instruction values always live in memory.
func (e *Environment) storeResult(inst *koopa.Value, r int) {
	p := e.placementOf(inst)
	if p.Kind != OnStack {
		panic("riscv: result value must resolve to a stack placement")
	}
	e.emit("sw %s, %d(sp)", regName(r), p.Offset)
}
