package parser

import (
	"github.com/sysy-lang/sysyc/lang/ast"
	"github.com/sysy-lang/sysyc/lang/token"
)

// parseCompUnit parses { GlobalDecl | FuncDef } until EOF, resynchronizing
// at the next top-level starter token after a syntax error instead of
// aborting the whole parse.
func (p *parser) parseCompUnit() *ast.CompUnit {
	cu := &ast.CompUnit{}
	for p.tok != token.EOF {
		decl := p.parseTopLevel()
		if decl != nil {
			cu.Decls = append(cu.Decls, decl)
		}
	}
	return cu
}

func (p *parser) parseTopLevel() (decl ast.Decl) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.syncTopLevel()
			decl = nil
		}
	}()

	switch p.tok {
	case token.CONST:
		return p.parseGlobalDecl()
	case token.VOID:
		return p.parseFuncDef()
	case token.INT_KW:
		// "int" starts both a VarDecl and a FuncDef; only a following
		// identifier then "(" distinguishes them, so peek past the type.
		if p.isFuncDefAhead() {
			return p.parseFuncDef()
		}
		return p.parseGlobalDecl()
	default:
		p.expectedOneOf(token.CONST, token.INT_KW, token.VOID)
		panic(errPanicMode) // unreachable, expectedOneOf already panics
	}
}

// isFuncDefAhead reports whether the upcoming "int IDENT (" shape is a
// function definition rather than a variable declaration. It only looks
// ahead by scanning a throwaway copy of the scanner state, never mutating
// p's own token stream.
func (p *parser) isFuncDefAhead() bool {
	save := p.scanner
	saveTok, saveVal := p.tok, p.val

	p.advance() // consume "int"
	if p.tok != token.IDENT {
		p.scanner, p.tok, p.val = save, saveTok, saveVal
		return false
	}
	p.advance() // consume identifier
	isFunc := p.tok == token.LPAREN

	p.scanner, p.tok, p.val = save, saveTok, saveVal
	return isFunc
}

// syncTopLevel discards tokens until one that can start a new top-level
// declaration, so a single malformed declaration does not swallow the rest
// of the file.
func (p *parser) syncTopLevel() {
	for p.tok != token.EOF && !p.oneOf(token.CONST, token.INT_KW, token.VOID) {
		p.advance()
	}
}

// parseGlobalDecl parses a top-level ConstDecl or VarDecl.
func (p *parser) parseGlobalDecl() *ast.GlobalDecl {
	d := &ast.GlobalDecl{}
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

// parseDef parses a single "name" or "name = expr" inside a const/var
// declaration list. const defs always require an initializer.
func (p *parser) parseDef(isConst bool) *ast.Def {
	name := p.parseIdent()
	def := &ast.Def{Name: name, Start: name.Start, End: name.Start + token.Pos(len(name.Lit))}
	if isConst {
		p.expect(token.ASSIGN)
		def.Init = p.parseConstExpr()
		_, def.End = def.Init.Span()
	} else if p.accept(token.ASSIGN) {
		def.Init = p.parseExpr()
		_, def.End = def.Init.Span()
	}
	return def
}

// parseFuncDef parses ("void" | "int") identifier "(" [FuncFParams] ")" Block.
func (p *parser) parseFuncDef() *ast.FuncDef {
	fd := &ast.FuncDef{}
	if p.tok == token.VOID {
		fd.Void = true
		fd.Start = p.expect(token.VOID)
	} else {
		fd.Start = p.expect(token.INT_KW)
	}
	fd.Name = p.parseIdent()
	p.expect(token.LPAREN)
	if p.tok != token.RPAREN {
		fd.Params = append(fd.Params, p.parseFuncParam())
		for p.accept(token.COMMA) {
			fd.Params = append(fd.Params, p.parseFuncParam())
		}
	}
	p.expect(token.RPAREN)
	fd.Body = p.parseBlock()
	return fd
}

func (p *parser) parseFuncParam() *ast.FuncParam {
	start := p.expect(token.INT_KW)
	name := p.parseIdent()
	fp := &ast.FuncParam{Name: name, Start: start}
	if p.tok == token.LBRACK {
		p.expect(token.LBRACK)
		p.expect(token.RBRACK)
		fp.Array = true
	}
	return fp
}

func (p *parser) parseIdent() *ast.IdentExpr {
	pos := p.val.Pos
	lit := p.val.Raw
	p.expect(token.IDENT)
	return &ast.IdentExpr{Start: pos, Lit: lit}
}
