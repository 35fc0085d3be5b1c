package frontend

import (
	"fmt"

	"github.com/sysy-lang/sysyc/lang/ast"
	"github.com/sysy-lang/sysyc/lang/symtab"
)

// terminator markers returned by LowerStmt.
const (
	markerNone = ""
	markerRet  = "ret"
)

// LowerStmt lowers a single statement and reports whether it left the
// current basic block terminated (markerRet) or fell through (markerNone).
func LowerStmt(env *Environment, s ast.Stmt) (string, error) {
	switch n := s.(type) {
	case *ast.ReturnStmt:
		return lowerReturnStmt(env, n)

	case *ast.IfStmt:
		return lowerIfStmt(env, n)

	case *ast.WhileStmt:
		return lowerWhileStmt(env, n)

	case *ast.BreakStmt:
		end, ok := env.CurrentLoopEnd()
		if !ok {
			return "", env.errorf(n.Start, "break outside a loop")
		}
		env.Emit("jump %s", end)
		return markerRet, nil

	case *ast.ContinueStmt:
		entry, ok := env.CurrentLoopEntry()
		if !ok {
			return "", env.errorf(n.Start, "continue outside a loop")
		}
		env.Emit("jump %s", entry)
		return markerRet, nil

	case *ast.AssignStmt:
		return lowerAssignStmt(env, n)

	case *ast.ExprStmt:
		if n.Expr == nil {
			return markerNone, nil
		}
		_, err := LowerExpr(env, n.Expr)
		return markerNone, err

	case *ast.BlockStmt:
		return lowerBlock(env, n.Body)

	case *ast.LocalDeclStmt:
		return markerNone, lowerLocalDecl(env, n)

	default:
		panic(fmt.Sprintf("frontend: unreachable stmt kind %T in LowerStmt", s))
	}
}

func lowerReturnStmt(env *Environment, n *ast.ReturnStmt) (string, error) {
	if n.Expr != nil {
		if env.CurrentFuncVoid() {
			return "", env.errorf(n.Start, "void function must not return a value")
		}
		v, err := lowerValueExpr(env, n.Expr)
		if err != nil {
			return "", err
		}
		env.Emit("ret %s", v)
		return markerRet, nil
	}
	if !env.CurrentFuncVoid() {
		return "", env.errorf(n.Start, "non-void function must return a value")
	}
	env.Emit("ret")
	return markerRet, nil
}

func lowerAssignStmt(env *Environment, n *ast.AssignStmt) (string, error) {
	b, ok := env.Symtab().Probe(n.Name.Lit)
	if !ok {
		return "", env.errorf(n.Name.Start, "undeclared identifier %q", n.Name.Lit)
	}
	if b.IsConstant {
		return "", env.errorf(n.Name.Start, "cannot assign to constant %q", n.Name.Lit)
	}
	v, err := lowerValueExpr(env, n.Value)
	if err != nil {
		return "", err
	}
	env.Emit("store %s, %s", v, b.StorageName)
	return markerNone, nil
}

func lowerIfStmt(env *Environment, n *ast.IfStmt) (string, error) {
	cond, err := lowerValueExpr(env, n.Cond)
	if err != nil {
		return "", err
	}

	bThen := env.NewBranchLabel()
	bCont := env.NewBranchLabel()
	bElse := bCont
	if n.Else != nil {
		bElse = env.NewBranchLabel()
	}
	env.Emit("br %s, %s, %s", cond, bThen, bElse)

	env.Emit("%s:", bThen)
	thenMarker, err := LowerStmt(env, n.Then)
	if err != nil {
		return "", err
	}
	if thenMarker != markerRet {
		env.Emit("jump %s", bCont)
	}

	if n.Else != nil {
		env.Emit("%s:", bElse)
		elseMarker, err := LowerStmt(env, n.Else)
		if err != nil {
			return "", err
		}
		if elseMarker != markerRet {
			env.Emit("jump %s", bCont)
		}
		if thenMarker == markerRet && elseMarker == markerRet {
			// both arms returned: nothing jumps to bCont, and emitting its
			// label would open a block with no terminator.
			return markerRet, nil
		}
	}

	env.Emit("%s:", bCont)
	return markerNone, nil
}

func lowerWhileStmt(env *Environment, n *ast.WhileStmt) (string, error) {
	bEntry := env.NewBranchLabel()
	bBody := env.NewBranchLabel()
	bEnd := env.NewBranchLabel()

	env.Emit("jump %s", bEntry)
	env.Emit("%s:", bEntry)
	cond, err := lowerValueExpr(env, n.Cond)
	if err != nil {
		return "", err
	}
	env.Emit("br %s, %s, %s", cond, bBody, bEnd)

	env.Emit("%s:", bBody)
	env.PushLoop(bEntry, bEnd)
	bodyMarker, err := LowerStmt(env, n.Body)
	env.PopLoop()
	if err != nil {
		return "", err
	}
	if bodyMarker != markerRet {
		env.Emit("jump %s", bEntry)
	}

	env.Emit("%s:", bEnd)
	return markerNone, nil
}

// lowerBlock enters a new lexical scope, lowers every statement of b, and
// restores the enclosing scope before returning.
func lowerBlock(env *Environment, b *ast.Block) (string, error) {
	env.EnterBlock()
	defer env.ExitBlock()
	return lowerStmtList(env, b.Stmts)
}

// lowerStmtList lowers stmts in the environment's current scope (the
// caller is responsible for scope entry/exit), inserting a fresh branch
// label whenever a terminated statement is followed by more statements, so
// the unreachable tail still lands in a well-formed basic block.
func lowerStmtList(env *Environment, stmts []ast.Stmt) (string, error) {
	marker := markerNone
	for i, st := range stmts {
		m, err := LowerStmt(env, st)
		if err != nil {
			return "", err
		}
		marker = m
		if m == markerRet && i != len(stmts)-1 {
			env.Emit("%s:", env.NewBranchLabel())
		}
	}
	return marker, nil
}

// lowerLocalDecl lowers a const/var declaration appearing inside a function
// body. Local storage is mangled as "@name_k" with k the
// innermost scope id, so sibling scopes reusing a name never collide.
func lowerLocalDecl(env *Environment, ld *ast.LocalDeclStmt) error {
	for _, def := range ld.Defs {
		if ld.Const {
			v, err := EvalConst(env, def.Init)
			if err != nil {
				return err
			}
			if !env.Symtab().Insert(def.Name.Lit, &symtab.Binding{BaseType: "int", IsConstant: true, ConstValue: v}) {
				return env.errorf(def.Start, "duplicate declaration of %q", def.Name.Lit)
			}
			continue
		}

		storage := fmt.Sprintf("@%s_%d", def.Name.Lit, env.ScopeID())
		env.Emit("%s = alloc i32", storage)
		if !env.Symtab().Insert(def.Name.Lit, &symtab.Binding{BaseType: "int", StorageName: storage}) {
			return env.errorf(def.Start, "duplicate declaration of %q", def.Name.Lit)
		}
		if def.Init != nil {
			v, err := lowerValueExpr(env, def.Init)
			if err != nil {
				return err
			}
			env.Emit("store %s, %s", v, storage)
		}
	}
	return nil
}
