package frontend

import (
	"fmt"

	"github.com/sysy-lang/sysyc/lang/ast"
	"github.com/sysy-lang/sysyc/lang/token"
)

// EvalConst evaluates e at compile time. It is total over the constant
// sub-language (literals, constant identifiers, and the operators below). A non-constant subexpression (an undeclared or non-constant
// identifier, a call) is a semantic error, not a panic.
func EvalConst(env *Environment, e ast.Expr) (int64, error) {
	switch n := e.(type) {
	case *ast.NumberExpr:
		return n.Value, nil

	case *ast.IdentExpr:
		b, ok := env.Symtab().Probe(n.Lit)
		if !ok {
			return 0, env.errorf(n.Start, "undeclared identifier %q", n.Lit)
		}
		if !b.IsConstant {
			return 0, env.errorf(n.Start, "%q is not a constant expression", n.Lit)
		}
		return b.ConstValue, nil

	case *ast.ParenExpr:
		return EvalConst(env, n.Expr)

	case *ast.UnaryExpr:
		v, err := EvalConst(env, n.Right)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.PLUS:
			return v, nil
		case token.MINUS:
			return -v, nil
		case token.NOT:
			return boolToInt(v == 0), nil
		default:
			panic(fmt.Sprintf("frontend: unreachable unary operator %v in EvalConst", n.Op))
		}

	case *ast.BinaryExpr:
		l, err := EvalConst(env, n.Left)
		if err != nil {
			return 0, err
		}
		r, err := EvalConst(env, n.Right)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.PLUS:
			return l + r, nil
		case token.MINUS:
			return l - r, nil
		case token.STAR:
			return l * r, nil
		case token.SLASH:
			if r == 0 {
				return 0, env.errorf(n.Pos, "division by zero in constant expression")
			}
			return l / r, nil
		case token.PERCENT:
			if r == 0 {
				return 0, env.errorf(n.Pos, "division by zero in constant expression")
			}
			return l % r, nil
		default:
			panic(fmt.Sprintf("frontend: unreachable binary operator %v in EvalConst", n.Op))
		}

	case *ast.RelExpr:
		l, err := EvalConst(env, n.Left)
		if err != nil {
			return 0, err
		}
		r, err := EvalConst(env, n.Right)
		if err != nil {
			return 0, err
		}
		return evalRel(n.Op, l, r), nil

	case *ast.LogicalExpr:
		l, err := EvalConst(env, n.Left)
		if err != nil {
			return 0, err
		}
		if n.Op == token.LOR && l != 0 {
			return 1, nil
		}
		if n.Op == token.LAND && l == 0 {
			return 0, nil
		}
		r, err := EvalConst(env, n.Right)
		if err != nil {
			return 0, err
		}
		return boolToInt(r != 0), nil

	case *ast.CallExpr:
		return 0, env.errorf(callPos(n), "function call is not a constant expression")

	default:
		panic(fmt.Sprintf("frontend: unreachable expr kind %T in EvalConst", e))
	}
}

// LowerExpr emits IR for e and returns the operand holding its value: a
// decimal literal, a %k temporary, or (for a constant identifier) its
// literal value.
func LowerExpr(env *Environment, e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.NumberExpr:
		return fmt.Sprintf("%d", n.Value), nil

	case *ast.IdentExpr:
		b, ok := env.Symtab().Probe(n.Lit)
		if !ok {
			return "", env.errorf(n.Start, "undeclared identifier %q", n.Lit)
		}
		if b.IsConstant {
			return fmt.Sprintf("%d", b.ConstValue), nil
		}
		tmp := env.NewTemp()
		env.Emit("%s = load %s", tmp, b.StorageName)
		return tmp, nil

	case *ast.ParenExpr:
		return LowerExpr(env, n.Expr)

	case *ast.UnaryExpr:
		switch n.Op {
		case token.PLUS:
			return LowerExpr(env, n.Right)
		case token.MINUS:
			v, err := lowerValueExpr(env, n.Right)
			if err != nil {
				return "", err
			}
			tmp := env.NewTemp()
			env.Emit("%s = sub 0, %s", tmp, v)
			return tmp, nil
		case token.NOT:
			v, err := lowerValueExpr(env, n.Right)
			if err != nil {
				return "", err
			}
			tmp := env.NewTemp()
			env.Emit("%s = eq 0, %s", tmp, v)
			return tmp, nil
		default:
			panic(fmt.Sprintf("frontend: unreachable unary operator %v in LowerExpr", n.Op))
		}

	case *ast.BinaryExpr:
		l, err := lowerValueExpr(env, n.Left)
		if err != nil {
			return "", err
		}
		r, err := lowerValueExpr(env, n.Right)
		if err != nil {
			return "", err
		}
		tmp := env.NewTemp()
		env.Emit("%s = %s %s, %s", tmp, binOpMnemonic(n.Op), l, r)
		return tmp, nil

	case *ast.RelExpr:
		l, err := lowerValueExpr(env, n.Left)
		if err != nil {
			return "", err
		}
		r, err := lowerValueExpr(env, n.Right)
		if err != nil {
			return "", err
		}
		tmp := env.NewTemp()
		env.Emit("%s = %s %s, %s", tmp, relOpMnemonic(n.Op), l, r)
		return tmp, nil

	case *ast.LogicalExpr:
		return lowerLogicalExpr(env, n)

	case *ast.CallExpr:
		return lowerCallExpr(env, n)

	default:
		panic(fmt.Sprintf("frontend: unreachable expr kind %T in LowerExpr", e))
	}
}

// lowerValueExpr lowers e and requires it to produce a value. A call to a
// void function is the only expression that yields none; it is legal as a
// bare expression statement but a semantic error in any operand position.
func lowerValueExpr(env *Environment, e ast.Expr) (string, error) {
	v, err := LowerExpr(env, e)
	if err != nil || v != "" {
		return v, err
	}
	start, _ := e.Span()
	return "", env.errorf(start, "void function call used as a value")
}

// lowerLogicalExpr lowers a short-circuiting && or ||: a result cell
// seeded with the short-circuit default, a branch on the left operand that
// either keeps the default or falls through to evaluate the right operand,
// converging on a single end label. The right operand's truth value is
// normalized with "ne 0, r"; the result is always 0 or 1.
func lowerLogicalExpr(env *Environment, n *ast.LogicalExpr) (string, error) {
	var deflt int64
	if n.Op == token.LOR {
		deflt = 1
	}

	cell := env.NewTemp()
	env.Emit("%s = alloc i32", cell)
	env.Emit("store %d, %s", deflt, cell)

	vL, err := lowerValueExpr(env, n.Left)
	if err != nil {
		return "", err
	}

	bEval := env.NewBranchLabel()
	bDone := env.NewBranchLabel()
	bEnd := env.NewBranchLabel()
	if n.Op == token.LOR {
		env.Emit("br %s, %s, %s", vL, bDone, bEval)
	} else {
		env.Emit("br %s, %s, %s", vL, bEval, bDone)
	}

	env.Emit("%s:", bDone)
	env.Emit("jump %s", bEnd)

	env.Emit("%s:", bEval)
	vR, err := lowerValueExpr(env, n.Right)
	if err != nil {
		return "", err
	}
	norm := env.NewTemp()
	env.Emit("%s = ne 0, %s", norm, vR)
	env.Emit("store %s, %s", norm, cell)
	env.Emit("jump %s", bEnd)

	env.Emit("%s:", bEnd)
	out := env.NewTemp()
	env.Emit("%s = load %s", out, cell)
	return out, nil
}

// lowerCallExpr lowers each argument left to right (so side effects occur
// in source order) then emits the call, binding a result temporary only if
// the callee is registered as value-returning.
func lowerCallExpr(env *Environment, n *ast.CallExpr) (string, error) {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		v, err := lowerValueExpr(env, a)
		if err != nil {
			return "", err
		}
		args[i] = v
	}

	returnsValue, declared := env.FuncReturnsValue(n.Fn.Lit)
	if !declared {
		return "", env.errorf(n.Fn.Start, "call to undeclared function %q", n.Fn.Lit)
	}

	argList := joinArgs(args)
	if returnsValue {
		tmp := env.NewTemp()
		env.Emit("%s = call @%s(%s)", tmp, n.Fn.Lit, argList)
		return tmp, nil
	}
	env.Emit("call @%s(%s)", n.Fn.Lit, argList)
	return "", nil
}

func joinArgs(args []string) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a
	}
	return s
}

func binOpMnemonic(op token.Token) string {
	switch op {
	case token.PLUS:
		return "add"
	case token.MINUS:
		return "sub"
	case token.STAR:
		return "mul"
	case token.SLASH:
		return "div"
	case token.PERCENT:
		return "mod"
	default:
		panic(fmt.Sprintf("frontend: unreachable binary operator %v", op))
	}
}

func relOpMnemonic(op token.Token) string {
	switch op {
	case token.LT:
		return "lt"
	case token.GT:
		return "gt"
	case token.LE:
		return "le"
	case token.GE:
		return "ge"
	case token.EQL:
		return "eq"
	case token.NEQ:
		return "ne"
	default:
		panic(fmt.Sprintf("frontend: unreachable relational operator %v", op))
	}
}

func evalRel(op token.Token, l, r int64) int64 {
	switch op {
	case token.LT:
		return boolToInt(l < r)
	case token.GT:
		return boolToInt(l > r)
	case token.LE:
		return boolToInt(l <= r)
	case token.GE:
		return boolToInt(l >= r)
	case token.EQL:
		return boolToInt(l == r)
	case token.NEQ:
		return boolToInt(l != r)
	default:
		panic(fmt.Sprintf("frontend: unreachable relational operator %v", op))
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func callPos(n *ast.CallExpr) token.Pos {
	start, _ := n.Span()
	return start
}
