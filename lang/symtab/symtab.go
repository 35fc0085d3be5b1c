// Package symtab implements the scoped symbol table used by the frontend
// lowerer: a stack of maps, innermost scope on top. An inner scope may
// shadow a name from an outer one; redeclaring a name in the same scope is
// rejected.
package symtab

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Binding records everything the frontend needs to know about a declared
// name: whether it is a compile-time constant (and if so, its value), or
// the IR storage name at which a variable's memory cell was allocated.
type Binding struct {
	BaseType    string // always "int"; SysY variables have no other type
	StorageName string // the IR operand used to load/store this binding
	IsConstant  bool
	ConstValue  int64
}

// Table is a stack of scopes, each a name-to-Binding map. The bottom of the
// stack is the global scope.
type Table struct {
	scopes []map[string]*Binding
}

// New returns an empty Table with no scopes pushed.
func New() *Table {
	return &Table{}
}

// EnterScope pushes a new, empty scope on top of the stack.
func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, make(map[string]*Binding))
}

// ExitScope pops the innermost scope. It panics if there is no scope to pop,
// since every EnterScope must be matched by exactly one ExitScope.
func (t *Table) ExitScope() {
	if len(t.scopes) == 0 {
		panic("symtab: ExitScope with no scope pushed")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth returns the number of currently nested scopes.
func (t *Table) Depth() int { return len(t.scopes) }

// Insert adds name/binding to the innermost scope. It returns false without
// modifying the table if name already exists in that same scope (shadowing a
// binding from an outer scope is always allowed; redeclaring within the same
// scope is not).
func (t *Table) Insert(name string, b *Binding) bool {
	top := t.top()
	if _, ok := top[name]; ok {
		return false
	}
	top[name] = b
	return true
}

// Lookup returns the binding for name in the innermost scope only (no
// walking of outer scopes).
func (t *Table) Lookup(name string) (*Binding, bool) {
	b, ok := t.top()[name]
	return b, ok
}

// Probe walks from the innermost scope outward to the global scope and
// returns the nearest binding for name.
func (t *Table) Probe(name string) (*Binding, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if b, ok := t.scopes[i][name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Names returns every name visible from the innermost scope outward
// (shadowed names counted once, under their nearest binding), sorted for
// deterministic diagnostics and tests.
func (t *Table) Names() []string {
	seen := make(map[string]struct{})
	for i := len(t.scopes) - 1; i >= 0; i-- {
		for name := range t.scopes[i] {
			seen[name] = struct{}{}
		}
	}
	names := maps.Keys(seen)
	sort.Strings(names)
	return names
}

func (t *Table) top() map[string]*Binding {
	if len(t.scopes) == 0 {
		panic("symtab: operation on empty scope stack")
	}
	return t.scopes[len(t.scopes)-1]
}
