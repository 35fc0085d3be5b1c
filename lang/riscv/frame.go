package riscv

import "github.com/sysy-lang/sysyc/lang/koopa"

// planFrame walks f's basic blocks and computes its stack frame layout,
// assigning every non-Unit-typed instruction result a stack slot in the
// same pass. Layout grows downward from the frame pointer: the slot cursor
// starts at frameSize-4 and decreases by 4 per slot, so every sw/lw this
// function emits uses a non-negative offset from sp.
func (e *Environment) planFrame(f *koopa.Function) {
	var results []*koopa.Value
	hasCall := false
	maxOverflow := 0

	for _, bb := range f.Blocks {
		for _, inst := range bb.Insts {
			if inst.Type != nil && inst.Type.Tag != koopa.Unit {
				results = append(results, inst)
			}
			if inst.Kind == koopa.KCall {
				hasCall = true
				if n := len(inst.Operands) - 8; n > maxOverflow {
					maxOverflow = n
				}
			}
		}
	}

	locals := len(results) * 4
	saved := 4 // s0 is always saved, call or not
	if hasCall {
		saved += 4 // ra, iff the function contains any call
	}
	overflow := maxOverflow * 4
	size := roundUp16(locals + saved + overflow)

	e.frameSize = size
	e.hasCall = hasCall

	cursor := size - 4
	e.s0Offset = cursor
	cursor -= 4
	if hasCall {
		e.raOffset = cursor
		cursor -= 4
	} else {
		e.raOffset = -1
	}
	for _, v := range results {
		e.placements.Put(v.ID, Placement{Kind: OnStack, Offset: cursor})
		cursor -= 4
	}
}

func roundUp16(n int) int {
	if r := n % 16; r != 0 {
		n += 16 - r
	}
	return n
}
