package frontend

import (
	"fmt"
	"strings"

	"github.com/sysy-lang/sysyc/lang/ast"
	"github.com/sysy-lang/sysyc/lang/symtab"
)

// runtimeDecls is the standard runtime library forward-declared in every
// compilation unit, so user code may call them without its own
// declaration.
var runtimeDecls = []struct {
	name         string
	params       string // Koopa parameter type list, already comma-joined
	returnsValue bool
}{
	{"getint", "", true},
	{"getch", "", true},
	{"getarray", "*i32", true},
	{"putint", "i32", false},
	{"putch", "i32", false},
	{"putarray", "i32, *i32", false},
	{"starttime", "", false},
	{"stoptime", "", false},
}

// LowerCompUnit lowers an entire parsed SysY file to Koopa IR text,
// appended to env's output buffer. It forward-declares the runtime
// library, registers every user function's signature (so calls may
// precede their definition in source order), then lowers each top-level
// declaration in order.
func LowerCompUnit(env *Environment, cu *ast.CompUnit) error {
	lowerRuntimeDecls(env)
	if err := registerFuncSignatures(env, cu); err != nil {
		return err
	}

	env.SetInGlobalDecl(true)
	env.Symtab().EnterScope()
	defer env.Symtab().ExitScope()

	for _, d := range cu.Decls {
		switch n := d.(type) {
		case *ast.GlobalDecl:
			if err := lowerGlobalDecl(env, n); err != nil {
				return err
			}
		case *ast.FuncDef:
			env.SetInGlobalDecl(false)
			if err := lowerFuncDef(env, n); err != nil {
				return err
			}
			env.SetInGlobalDecl(true)
		default:
			panic(fmt.Sprintf("frontend: unreachable decl kind %T in LowerCompUnit", d))
		}
	}
	return nil
}

func lowerRuntimeDecls(env *Environment) {
	for _, rt := range runtimeDecls {
		suffix := ""
		if rt.returnsValue {
			suffix = ": i32"
		}
		env.Emit("decl @%s(%s)%s", rt.name, rt.params, suffix)
		env.RegisterFunc(rt.name, rt.returnsValue)
	}
}

func registerFuncSignatures(env *Environment, cu *ast.CompUnit) error {
	for _, d := range cu.Decls {
		fd, ok := d.(*ast.FuncDef)
		if !ok {
			continue
		}
		if _, declared := env.FuncReturnsValue(fd.Name.Lit); declared {
			return env.errorf(fd.Start, "duplicate function declaration %q", fd.Name.Lit)
		}
		env.RegisterFunc(fd.Name.Lit, fd.ReturnsValue())
	}
	return nil
}

// lowerGlobalDecl lowers a top-level const/var declaration.
// Global storage is mangled simply as "@name" since the top scope is
// unique, unlike locals which need a scope-id suffix.
func lowerGlobalDecl(env *Environment, gd *ast.GlobalDecl) error {
	for _, def := range gd.Defs {
		if gd.Const {
			v, err := EvalConst(env, def.Init)
			if err != nil {
				return err
			}
			if !env.Symtab().Insert(def.Name.Lit, &symtab.Binding{BaseType: "int", IsConstant: true, ConstValue: v}) {
				return env.errorf(def.Start, "duplicate declaration of %q", def.Name.Lit)
			}
			continue
		}

		storage := "@" + def.Name.Lit
		init := "zeroinit"
		if def.Init != nil {
			v, err := EvalConst(env, def.Init)
			if err != nil {
				return err
			}
			init = fmt.Sprintf("%d", v)
		}
		env.Emit("global %s = alloc i32, %s", storage, init)
		if !env.Symtab().Insert(def.Name.Lit, &symtab.Binding{BaseType: "int", StorageName: storage}) {
			return env.errorf(def.Start, "duplicate declaration of %q", def.Name.Lit)
		}
	}
	return nil
}

// lowerFuncDef lowers a function definition: the header
// names each parameter as a Koopa value ("%x: i32"); inside the entry
// block each parameter is immediately materialized as a local cell so
// every subsequent use is a uniform load, matching how any other local
// variable behaves.
func lowerFuncDef(env *Environment, fd *ast.FuncDef) error {
	env.SetCurrentFuncVoid(fd.Void)

	params := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = fmt.Sprintf("%%%s: i32", p.Name.Lit)
	}
	retSuffix := ""
	if !fd.Void {
		retSuffix = ": i32"
	}
	env.Emit("fun @%s(%s)%s {", fd.Name.Lit, strings.Join(params, ", "), retSuffix)
	env.Emit("%%entry:")

	env.EnterBlock()
	for _, p := range fd.Params {
		storage := fmt.Sprintf("@%s_%d", p.Name.Lit, env.ScopeID())
		env.Emit("%s = alloc i32", storage)
		env.Emit("store %%%s, %s", p.Name.Lit, storage)
		if !env.Symtab().Insert(p.Name.Lit, &symtab.Binding{BaseType: "int", StorageName: storage}) {
			env.ExitBlock()
			return env.errorf(p.Start, "duplicate parameter %q", p.Name.Lit)
		}
	}

	marker, err := lowerStmtList(env, fd.Body.Stmts)
	env.ExitBlock()
	if err != nil {
		return err
	}
	if marker != markerRet {
		env.Emit("ret")
	}
	env.Emit("}")
	return nil
}
