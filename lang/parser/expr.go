package parser

import (
	"github.com/sysy-lang/sysyc/lang/ast"
	"github.com/sysy-lang/sysyc/lang/token"
)

// parseExpr parses an Exp, i.e. an LOrExp: the full six-level precedence
// chain, so relational and logical operators are usable in any expression
// position, not just conditions.
func (p *parser) parseExpr() ast.Expr { return p.parseLOrExpr() }

// parseConstExpr parses a ConstExp, which the grammar defines identically to
// Exp; constant-ness is a semantic property checked by the frontend, not a
// syntactic one.
func (p *parser) parseConstExpr() ast.Expr { return p.parseLOrExpr() }

// parseCond parses a Cond, i.e. an LOrExp.
func (p *parser) parseCond() ast.Expr { return p.parseLOrExpr() }

func (p *parser) parseLOrExpr() ast.Expr {
	left := p.parseLAndExpr()
	for p.tok == token.LOR {
		pos := p.val.Pos
		p.advance()
		right := p.parseLAndExpr()
		left = &ast.LogicalExpr{Left: left, Op: token.LOR, Pos: pos, Right: right}
	}
	return left
}

func (p *parser) parseLAndExpr() ast.Expr {
	left := p.parseEqExpr()
	for p.tok == token.LAND {
		pos := p.val.Pos
		p.advance()
		right := p.parseEqExpr()
		left = &ast.LogicalExpr{Left: left, Op: token.LAND, Pos: pos, Right: right}
	}
	return left
}

func (p *parser) parseEqExpr() ast.Expr {
	left := p.parseRelExpr()
	for p.tok == token.EQL || p.tok == token.NEQ {
		op, pos := p.tok, p.val.Pos
		p.advance()
		right := p.parseRelExpr()
		left = &ast.RelExpr{Left: left, Op: op, Pos: pos, Right: right}
	}
	return left
}

func (p *parser) parseRelExpr() ast.Expr {
	left := p.parseAddExpr()
	for p.tok == token.LT || p.tok == token.LE || p.tok == token.GT || p.tok == token.GE {
		op, pos := p.tok, p.val.Pos
		p.advance()
		right := p.parseAddExpr()
		left = &ast.RelExpr{Left: left, Op: op, Pos: pos, Right: right}
	}
	return left
}

func (p *parser) parseAddExpr() ast.Expr {
	left := p.parseMulExpr()
	for p.tok.IsAddOp() {
		op, pos := p.tok, p.val.Pos
		p.advance()
		right := p.parseMulExpr()
		left = &ast.BinaryExpr{Left: left, Op: op, Pos: pos, Right: right}
	}
	return left
}

func (p *parser) parseMulExpr() ast.Expr {
	left := p.parseUnaryExpr()
	for p.tok.IsMulOp() {
		op, pos := p.tok, p.val.Pos
		p.advance()
		right := p.parseUnaryExpr()
		left = &ast.BinaryExpr{Left: left, Op: op, Pos: pos, Right: right}
	}
	return left
}

// parseUnaryExpr parses PrimaryExp, a call, or a unary-operator expression.
func (p *parser) parseUnaryExpr() ast.Expr {
	switch p.tok {
	case token.PLUS, token.MINUS, token.NOT:
		op, pos := p.tok, p.val.Pos
		p.advance()
		right := p.parseUnaryExpr()
		return &ast.UnaryExpr{Op: op, Pos: pos, Right: right}
	case token.IDENT:
		name := p.parseIdent()
		if p.tok == token.LPAREN {
			return p.parseCallExpr(name)
		}
		return name
	default:
		return p.parsePrimaryExpr()
	}
}

func (p *parser) parseCallExpr(fn *ast.IdentExpr) ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	if p.tok != token.RPAREN {
		args = append(args, p.parseExpr())
		for p.accept(token.COMMA) {
			args = append(args, p.parseExpr())
		}
	}
	rparen := p.expect(token.RPAREN)
	return &ast.CallExpr{Fn: fn, Args: args, Rparen: rparen}
}

// parsePrimaryExpr parses "(" Exp ")", a bare identifier (LVal), or a Number.
func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.tok {
	case token.LPAREN:
		lparen := p.expect(token.LPAREN)
		e := p.parseExpr()
		rparen := p.expect(token.RPAREN)
		return &ast.ParenExpr{Lparen: lparen, Expr: e, Rparen: rparen}
	case token.IDENT:
		return p.parseIdent()
	case token.INT:
		return p.parseNumber()
	default:
		p.expectedOneOf(token.LPAREN, token.IDENT, token.INT)
		panic(errPanicMode) // unreachable
	}
}

func (p *parser) parseNumber() ast.Expr {
	n := &ast.NumberExpr{Start: p.val.Pos, Raw: p.val.Raw, Value: p.val.Int}
	p.expect(token.INT)
	return n
}
