// Package parser implements the recursive-descent parser that turns SysY
// source text into an *ast.CompUnit: one method per grammar production,
// with an expect/error pair driving panic-based recovery to the nearest
// statement boundary rather than threading an error return through every
// call.
package parser

import (
	"errors"
	"strings"

	"github.com/sysy-lang/sysyc/lang/ast"
	"github.com/sysy-lang/sysyc/lang/scanner"
	"github.com/sysy-lang/sysyc/lang/token"
)

// ParseFile parses a single SysY source file and returns its AST. The file
// is registered in fset under filename for later position resolution. The
// returned error, if non-nil, is always a scanner.ErrorList.
func ParseFile(fset *token.FileSet, filename string, src []byte) (*token.File, *ast.CompUnit, error) {
	var p parser
	p.init(fset, filename, src)
	cu := p.parseCompUnit()
	p.errors.Sort()
	return p.file, cu, p.errors.Err()
}

// parser holds the mutable state of a single parse.
type parser struct {
	scanner scanner.Scanner
	errors  scanner.ErrorList
	file    *token.File

	tok token.Token
	val token.Value
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.file = fset.AddFile(filename, len(src))
	p.scanner.Init(p.file, src, func(pos token.Position, msg string) {
		p.errors.Add(scanner.ToGoTokenPos(pos), msg)
	})
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan(&p.val)
}

// errPanicMode unwinds the call stack to the nearest recovery point (a
// top-level declaration or a statement) on a syntax error.
var errPanicMode = errors.New("panic")

func (p *parser) error(pos token.Pos, msg string) {
	p.errors.Add(scanner.ToGoTokenPos(p.file.Position(pos)), msg)
}

func (p *parser) errorExpected(pos token.Pos, msg string) {
	msg = "expected " + msg
	if pos == p.val.Pos {
		if lit := p.tok.Literal(p.val); lit != "" {
			msg += ", found " + lit
		} else {
			msg += ", found " + p.tok.GoString()
		}
	}
	p.error(pos, msg)
}

// expect consumes the current token if it matches tok, otherwise records an
// error and panics with errPanicMode.
func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.val.Pos
	if p.tok != tok {
		p.errorExpected(pos, tok.GoString())
		panic(errPanicMode)
	}
	p.advance()
	return pos
}

// accept consumes and returns true if the current token matches tok,
// otherwise leaves the token stream untouched and returns false.
func (p *parser) accept(tok token.Token) bool {
	if p.tok == tok {
		p.advance()
		return true
	}
	return false
}

func (p *parser) oneOf(toks ...token.Token) bool {
	for _, t := range toks {
		if p.tok == t {
			return true
		}
	}
	return false
}

func (p *parser) expectedOneOf(toks ...token.Token) {
	var buf strings.Builder
	for i, t := range toks {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(t.GoString())
	}
	lbl := buf.String()
	if len(toks) > 1 {
		lbl = "one of " + lbl
	}
	p.errorExpected(p.val.Pos, lbl)
	panic(errPanicMode)
}
