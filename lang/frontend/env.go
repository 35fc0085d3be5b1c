// Package frontend lowers a SysY AST (lang/ast) into textual Koopa IR: a
// single Environment owns the output buffer, the symbol table, the
// scope/loop label stacks and the monotonic name counters, and a set of
// recursive lowering functions pattern-match on the AST node kind.
package frontend

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/sysy-lang/sysyc/lang/sema"
	"github.com/sysy-lang/sysyc/lang/symtab"
	"github.com/sysy-lang/sysyc/lang/token"
)

// loopLabels is the {entry, end} pair pushed for every enclosing while loop,
// consulted by break/continue lowering.
type loopLabels struct {
	entry, end string
}

// Environment is the frontend's single mutable compilation context. It is
// owned exclusively by the driver that constructs it and is never reused
// across invocations.
type Environment struct {
	out   strings.Builder
	trace io.Writer // non-nil: each emitted line is also echoed here
	file  *token.File

	symtab   *symtab.Table
	scopeIDs []int

	nextTemp     int
	nextBranch   int
	nextScopeID  int
	loopStack    []loopLabels
	funcReturns  map[string]bool
	inGlobalDecl bool

	currentFuncVoid bool
}

// New returns a fresh Environment ready to lower a single compilation unit
// parsed from file. trace, if non-nil, receives a copy of every line
// appended to the IR buffer (wired to internal/config's SYSYC_TRACE_IR knob
// by the driver).
func New(file *token.File, trace io.Writer) *Environment {
	return &Environment{
		symtab:      symtab.New(),
		file:        file,
		trace:       trace,
		funcReturns: make(map[string]bool),
	}
}

// Position resolves an AST position to a fully qualified source location,
// for use in semantic diagnostics.
func (e *Environment) Position(pos token.Pos) token.Position {
	return e.file.Position(pos)
}

// errorf builds a *sema.Error at pos, the only constructor lowering code
// uses to report a semantic error.
func (e *Environment) errorf(pos token.Pos, format string, args ...interface{}) error {
	return &sema.Error{Pos: e.Position(pos), Msg: fmt.Sprintf(format, args...)}
}

// Output returns the complete Koopa IR text emitted so far.
func (e *Environment) Output() string { return e.out.String() }

// Emit appends a formatted line (with a trailing newline) to the IR
// buffer. IR is built as text, not an in-memory tree, and emission is
// purely append-only.
func (e *Environment) Emit(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	e.out.WriteString(line)
	e.out.WriteByte('\n')
	if e.trace != nil {
		fmt.Fprintln(e.trace, line)
	}
}

// NewTemp allocates a fresh IR temporary name %k, monotonically increasing
// across the whole compilation unit.
func (e *Environment) NewTemp() string {
	s := fmt.Sprintf("%%%d", e.nextTemp)
	e.nextTemp++
	return s
}

// NewBranchLabel allocates a fresh branch label %branchk.
func (e *Environment) NewBranchLabel() string {
	s := fmt.Sprintf("%%branch%d", e.nextBranch)
	e.nextBranch++
	return s
}

// Symtab returns the environment's symbol table.
func (e *Environment) Symtab() *symtab.Table { return e.symtab }

// EnterBlock pushes a fresh scope id (used to mangle local names declared
// directly inside it) and a matching symbol table scope.
func (e *Environment) EnterBlock() {
	e.nextScopeID++
	e.scopeIDs = append(e.scopeIDs, e.nextScopeID)
	e.symtab.EnterScope()
}

// ExitBlock pops the innermost scope id and symbol table scope.
func (e *Environment) ExitBlock() {
	e.scopeIDs = e.scopeIDs[:len(e.scopeIDs)-1]
	e.symtab.ExitScope()
}

// ScopeID returns the id of the innermost active scope, used to mangle a
// local name as "@name_k".
func (e *Environment) ScopeID() int {
	return e.scopeIDs[len(e.scopeIDs)-1]
}

// PushLoop registers entry/end labels for an enclosing while loop.
func (e *Environment) PushLoop(entry, end string) {
	e.loopStack = append(e.loopStack, loopLabels{entry: entry, end: end})
}

// PopLoop discards the innermost loop's labels.
func (e *Environment) PopLoop() {
	e.loopStack = e.loopStack[:len(e.loopStack)-1]
}

// CurrentLoopEntry returns the entry label of the innermost enclosing loop,
// or ok=false if break/continue appears outside any loop.
func (e *Environment) CurrentLoopEntry() (label string, ok bool) {
	if len(e.loopStack) == 0 {
		return "", false
	}
	top := e.loopStack[len(e.loopStack)-1]
	return top.entry, true
}

// CurrentLoopEnd is the break-target counterpart of CurrentLoopEntry.
func (e *Environment) CurrentLoopEnd() (label string, ok bool) {
	if len(e.loopStack) == 0 {
		return "", false
	}
	top := e.loopStack[len(e.loopStack)-1]
	return top.end, true
}

// SetInGlobalDecl toggles whether lowering is currently processing a
// top-level (as opposed to function-local) declaration.
func (e *Environment) SetInGlobalDecl(v bool) { e.inGlobalDecl = v }

// InGlobalDecl reports whether lowering is currently inside a top-level
// declaration.
func (e *Environment) InGlobalDecl() bool { return e.inGlobalDecl }

// RegisterFunc records whether calls to name yield a usable value, so a
// later FuncCall lowering knows whether to bind a result temporary.
func (e *Environment) RegisterFunc(name string, returnsValue bool) {
	e.funcReturns[name] = returnsValue
}

// FuncReturnsValue reports whether name was registered as a value-returning
// function.
func (e *Environment) FuncReturnsValue(name string) (returnsValue, declared bool) {
	returnsValue, declared = e.funcReturns[name]
	return returnsValue, declared
}

// SetCurrentFuncVoid records whether the function currently being lowered
// has a void return type, consulted when lowering a "return [expr];".
func (e *Environment) SetCurrentFuncVoid(v bool) { e.currentFuncVoid = v }

// CurrentFuncVoid reports whether the function currently being lowered is
// void.
func (e *Environment) CurrentFuncVoid() bool { return e.currentFuncVoid }

// FuncNames returns the names of every function registered so far, sorted
// for deterministic output.
func (e *Environment) FuncNames() []string {
	names := maps.Keys(e.funcReturns)
	sort.Strings(names)
	return names
}
