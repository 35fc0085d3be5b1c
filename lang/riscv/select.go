package riscv

import (
	"fmt"

	"github.com/sysy-lang/sysyc/lang/koopa"
)

// binMnemonic maps a straight-arithmetic/bitwise IR operator directly to its
// RV32 mnemonic: one instruction, no special-casing.
var binMnemonic = map[koopa.BinaryOp]string{
	koopa.OpAdd: "add", koopa.OpSub: "sub", koopa.OpMul: "mul",
	koopa.OpDiv: "div", koopa.OpMod: "rem",
	koopa.OpAnd: "and", koopa.OpOr: "or", koopa.OpXor: "xor",
	koopa.OpShl: "sll", koopa.OpShr: "srl", koopa.OpSar: "sra",
}

// selectInst emits RV32 for a single raw-IR instruction. koopa.KAlloc needs
// no code: its cell already has a stack slot from planFrame, and every
// subsequent load/store addresses that slot directly.
func (e *Environment) selectInst(inst *koopa.Value) {
	switch inst.Kind {
	case koopa.KAlloc:
	case koopa.KLoad:
		e.selectLoad(inst)
	case koopa.KStore:
		e.selectStore(inst)
	case koopa.KBinary:
		e.selectBinary(inst)
	case koopa.KBranch:
		e.selectBranch(inst)
	case koopa.KJump:
		e.emit("j %s", e.blockLabel(inst.Targets[0]))
	case koopa.KCall:
		e.selectCall(inst)
	case koopa.KReturn:
		e.selectReturn(inst)
	default:
		panic(fmt.Sprintf("riscv: unreachable value kind %v in selectInst", inst.Kind))
	}
}

func (e *Environment) selectLoad(inst *koopa.Value) {
	r := e.loadOperand(inst.Operands[0])
	e.storeResult(inst, r)
	e.freeTemp(r)
}

func (e *Environment) selectStore(inst *koopa.Value) {
	val, dest := inst.Operands[0], inst.Operands[1]
	r := e.loadOperand(val)

	p := e.placementOf(dest)
	switch p.Kind {
	case OnStack:
		e.emit("sw %s, %d(sp)", regName(r), p.Offset)
	case Global:
		scratch := e.allocTemp()
		e.emit("la %s, %s", regName(scratch), p.Label)
		e.emit("sw %s, 0(%s)", regName(r), regName(scratch))
		e.freeTemp(scratch)
	default:
		panic("riscv: store destination must be memory")
	}
	e.freeTemp(r)
}

// selectBinary emits one instruction per arithmetic operator and 1-2 per
// relational operator. ge/le invert slt with xori; subtracting and testing
// the sign instead would misread the equal case.
func (e *Environment) selectBinary(inst *koopa.Value) {
	l := e.loadOperand(inst.Operands[0])
	r := e.loadOperand(inst.Operands[1])
	dst := e.allocTemp()

	switch inst.Op {
	case koopa.OpEq:
		e.emit("xor %s, %s, %s", regName(dst), regName(l), regName(r))
		e.emit("seqz %s, %s", regName(dst), regName(dst))
	case koopa.OpNe:
		e.emit("xor %s, %s, %s", regName(dst), regName(l), regName(r))
		e.emit("snez %s, %s", regName(dst), regName(dst))
	case koopa.OpLt:
		e.emit("slt %s, %s, %s", regName(dst), regName(l), regName(r))
	case koopa.OpGt:
		e.emit("sgt %s, %s, %s", regName(dst), regName(l), regName(r))
	case koopa.OpGe:
		e.emit("slt %s, %s, %s", regName(dst), regName(l), regName(r))
		e.emit("xori %s, %s, 1", regName(dst), regName(dst))
	case koopa.OpLe:
		e.emit("slt %s, %s, %s", regName(dst), regName(r), regName(l))
		e.emit("xori %s, %s, 1", regName(dst), regName(dst))
	default:
		mnem, ok := binMnemonic[inst.Op]
		if !ok {
			panic(fmt.Sprintf("riscv: unreachable binary operator %v", inst.Op))
		}
		e.emit("%s %s, %s, %s", mnem, regName(dst), regName(l), regName(r))
	}

	e.freeTemp(l)
	e.freeTemp(r)
	e.storeResult(inst, dst)
	e.freeTemp(dst)
}

// selectBranch emits the two-instruction idiom RV32 needs in place of a
// single two-target conditional branch.
func (e *Environment) selectBranch(inst *koopa.Value) {
	c := e.loadOperand(inst.Operands[0])
	thenLbl := e.blockLabel(inst.Targets[0])
	elseLbl := e.blockLabel(inst.Targets[1])
	e.emit("bnez %s, %s", regName(c), thenLbl)
	e.emit("j %s", elseLbl)
	e.freeTemp(c)
}

// selectCall marshals arguments 0-7 into a0-a7 and any remainder into the
// outgoing-argument overflow area at the bottom of this frame, then spills
// a non-Unit result to its planned slot.
func (e *Environment) selectCall(inst *koopa.Value) {
	for i, arg := range inst.Operands {
		r := e.loadOperand(arg)
		if i < 8 {
			e.emit("mv %s, %s", regName(regA0+i), regName(r))
		} else {
			e.emit("sw %s, %d(sp)", regName(r), (i-8)*4)
		}
		e.freeTemp(r)
	}
	e.emit("call %s", inst.Callee)
	if inst.Type != nil && inst.Type.Tag != koopa.Unit {
		e.storeResult(inst, regA0)
	}
}

func (e *Environment) selectReturn(inst *koopa.Value) {
	if len(inst.Operands) > 0 {
		r := e.loadOperand(inst.Operands[0])
		if r != regA0 {
			e.emit("mv a0, %s", regName(r))
		}
		e.freeTemp(r)
	}
	e.emitEpilogue()
	e.emit("ret")
}
