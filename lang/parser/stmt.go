package parser

import (
	"github.com/sysy-lang/sysyc/lang/ast"
	"github.com/sysy-lang/sysyc/lang/token"
)

// parseBlock parses "{" { BlockItem } "}".
func (p *parser) parseBlock() *ast.Block {
	lbrace := p.expect(token.LBRACE)
	b := &ast.Block{Lbrace: lbrace}
	for p.tok != token.RBRACE && p.tok != token.EOF {
		if item := p.parseBlockItem(); item != nil {
			b.Stmts = append(b.Stmts, item)
		}
	}
	b.Rbrace = p.expect(token.RBRACE)
	return b
}

// parseBlockItem parses a Decl or a Stmt, recovering to the next statement
// boundary on error so one bad line does not lose the rest of the block.
func (p *parser) parseBlockItem() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.syncStmt()
			stmt = nil
		}
	}()

	if p.tok == token.CONST || p.tok == token.INT_KW {
		return p.parseLocalDecl()
	}
	return p.parseStmt()
}

// syncStmt discards tokens until a semicolon or a token that can start a new
// statement or declaration.
func (p *parser) syncStmt() {
	for p.tok != token.EOF && p.tok != token.RBRACE {
		if p.tok == token.SEMI {
			p.advance()
			return
		}
		if p.oneOf(token.CONST, token.INT_KW, token.IF, token.WHILE, token.BREAK,
			token.CONTINUE, token.RETURN, token.LBRACE) {
			return
		}
		p.advance()
	}
}

// parseLocalDecl parses a ConstDecl or VarDecl appearing inside a Block.
func (p *parser) parseLocalDecl() *ast.LocalDeclStmt {
	d := &ast.LocalDeclStmt{}
	if p.tok == token.CONST {
		d.Const = true
		d.Start = p.expect(token.CONST)
		p.expect(token.INT_KW)
	} else {
		d.Start = p.expect(token.INT_KW)
	}

	d.Defs = append(d.Defs, p.parseDef(d.Const))
	for p.accept(token.COMMA) {
		d.Defs = append(d.Defs, p.parseDef(d.Const))
	}
	d.End = p.expect(token.SEMI)
	return d
}

// parseStmt parses a single Stmt production.
func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.LBRACE:
		return &ast.BlockStmt{Body: p.parseBlock()}
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.BREAK:
		start := p.expect(token.BREAK)
		end := p.expect(token.SEMI)
		return &ast.BreakStmt{Start: start, End: end}
	case token.CONTINUE:
		start := p.expect(token.CONTINUE)
		end := p.expect(token.SEMI)
		return &ast.ContinueStmt{Start: start, End: end}
	case token.RETURN:
		return p.parseReturnStmt()
	case token.SEMI:
		start := p.val.Pos
		end := p.expect(token.SEMI)
		return &ast.ExprStmt{Start: start, End: end}
	case token.IDENT:
		return p.parseAssignOrExprStmt()
	default:
		start := p.val.Pos
		e := p.parseExpr()
		end := p.expect(token.SEMI)
		return &ast.ExprStmt{Expr: e, Start: start, End: end}
	}
}

// parseAssignOrExprStmt disambiguates "LVal = Exp ;" from a bare expression
// statement starting with an identifier (a call or a parenthesized use),
// both of which start with IDENT in the grammar.
func (p *parser) parseAssignOrExprStmt() ast.Stmt {
	start := p.val.Pos
	name := p.parseIdent()
	if p.tok == token.ASSIGN {
		eq := p.expect(token.ASSIGN)
		val := p.parseExpr()
		end := p.expect(token.SEMI)
		return &ast.AssignStmt{Name: name, Eq: eq, Value: val, End: end}
	}

	var e ast.Expr = name
	if p.tok == token.LPAREN {
		e = p.parseCallExpr(name)
	}
	e = p.parseBinaryTail(e)
	end := p.expect(token.SEMI)
	return &ast.ExprStmt{Expr: e, Start: start, End: end}
}

// parseBinaryTail continues parsing up the precedence chain from an
// already-parsed primary/unary expression, e.g. when an expression
// statement begins with "f(x) + 1;" rather than a bare call.
func (p *parser) parseBinaryTail(left ast.Expr) ast.Expr {
	for p.tok.IsMulOp() {
		op, pos := p.tok, p.val.Pos
		p.advance()
		right := p.parseUnaryExpr()
		left = &ast.BinaryExpr{Left: left, Op: op, Pos: pos, Right: right}
	}
	for p.tok.IsAddOp() {
		op, pos := p.tok, p.val.Pos
		p.advance()
		right := p.parseMulExpr()
		left = &ast.BinaryExpr{Left: left, Op: op, Pos: pos, Right: right}
	}
	for p.tok == token.LT || p.tok == token.LE || p.tok == token.GT || p.tok == token.GE {
		op, pos := p.tok, p.val.Pos
		p.advance()
		right := p.parseAddExpr()
		left = &ast.RelExpr{Left: left, Op: op, Pos: pos, Right: right}
	}
	for p.tok == token.EQL || p.tok == token.NEQ {
		op, pos := p.tok, p.val.Pos
		p.advance()
		right := p.parseRelExpr()
		left = &ast.RelExpr{Left: left, Op: op, Pos: pos, Right: right}
	}
	for p.tok == token.LAND {
		pos := p.val.Pos
		p.advance()
		right := p.parseEqExpr()
		left = &ast.LogicalExpr{Left: left, Op: token.LAND, Pos: pos, Right: right}
	}
	for p.tok == token.LOR {
		pos := p.val.Pos
		p.advance()
		right := p.parseLAndExpr()
		left = &ast.LogicalExpr{Left: left, Op: token.LOR, Pos: pos, Right: right}
	}
	return left
}

func (p *parser) parseIfStmt() *ast.IfStmt {
	start := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseCond()
	p.expect(token.RPAREN)
	then := p.parseStmt()
	s := &ast.IfStmt{Start: start, Cond: cond, Then: then}
	if p.accept(token.ELSE) {
		s.Else = p.parseStmt()
	}
	return s
}

func (p *parser) parseWhileStmt() *ast.WhileStmt {
	start := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseCond()
	p.expect(token.RPAREN)
	body := p.parseStmt()
	return &ast.WhileStmt{Start: start, Cond: cond, Body: body}
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.expect(token.RETURN)
	s := &ast.ReturnStmt{Start: start}
	if p.tok != token.SEMI {
		s.Expr = p.parseExpr()
	}
	s.End = p.expect(token.SEMI)
	return s
}
