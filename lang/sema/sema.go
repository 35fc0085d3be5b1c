// Package sema defines the semantic-error type raised by the frontend
// lowerer: duplicate declarations, break/continue outside a
// loop, assignment to a constant, undeclared identifiers, non-constant
// expressions in constant context, calls to undeclared functions, and
// return-value/void mismatches. Parse errors are scanner.ErrorList's
// business; internal inconsistencies are panics. Only this
// middle tier is a Go error type of its own.
package sema

import (
	"fmt"

	"github.com/sysy-lang/sysyc/lang/token"
)

// Error is a single semantic error with a resolved source position.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}
