// Package scanner tokenizes SysY source files for the parser to consume. Its
// structure (character classes, advance/peek, an error sink rather than a
// returned error) is adapted from the Go standard library's go/scanner.
package scanner

import (
	"go/scanner"
	gotoken "go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sysy-lang/sysyc/lang/token"
)

type (
	// Error is a single scan or parse error with a resolved source position.
	Error = scanner.Error
	// ErrorList collects Errors and knows how to sort and print them.
	ErrorList = scanner.ErrorList
)

// PrintError prints an error list (or a plain error) to w in the conventional
// multi-line form.
var PrintError = scanner.PrintError

// ScanFile tokenizes the named source file's contents and returns every
// token, along with the *token.File used to resolve positions and any
// lexical errors found. The token stream always ends with a token.EOF.
func ScanFile(name string, src []byte) (*token.File, []token.Value, []token.Token, error) {
	var (
		s   Scanner
		el  ErrorList
		val token.Value
	)

	file := token.NewFileSet().AddFile(name, len(src))
	s.Init(file, src, func(pos token.Position, msg string) {
		el.Add(toScannerPos(pos), msg)
	})

	var vals []token.Value
	var toks []token.Token
	for {
		tok := s.Scan(&val)
		vals = append(vals, val)
		toks = append(toks, tok)
		if tok == token.EOF {
			break
		}
	}
	el.Sort()
	return file, vals, toks, el.Err()
}

// ToGoTokenPos adapts our own token.Position to the go/token.Position that
// go/scanner.ErrorList expects, so our hand-written scanner can reuse the
// standard library's error collection and formatting.
func ToGoTokenPos(p token.Position) gotoken.Position {
	return gotoken.Position{Filename: p.Filename, Line: p.Line, Column: p.Col}
}

func toScannerPos(p token.Position) gotoken.Position {
	return ToGoTokenPos(p)
}

// Scanner tokenizes a single source file.
type Scanner struct {
	file *token.File
	src  []byte
	err  func(pos token.Position, msg string)

	cur  rune // current character, -1 at EOF
	off  int  // byte offset of cur
	roff int  // byte offset just past cur
}

// Init prepares s to scan src, which must be exactly file.Size() bytes long.
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	if file.Size() != len(src) {
		panic("scanner: file size does not match src length")
	}
	s.file = file
	s.src = src
	s.err = errHandler
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.advance()
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		if s.cur == '\n' {
			s.file.AddLine(s.off)
		}
		s.cur = -1
		return
	}

	s.off = s.roff
	if s.cur == '\n' {
		s.file.AddLine(s.off)
	}

	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(off)), msg)
	}
}

func (s *Scanner) advanceIf(b byte) bool {
	if s.cur == rune(b) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token, filling val with its raw text, position, and
// (for INT) parsed value.
func (s *Scanner) Scan(val *token.Value) (tok token.Token) {
	s.skipWhitespaceAndComments()

	pos := s.file.Pos(s.off)
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		tok = token.LookupKw(lit)
		*val = token.Value{Raw: lit, Pos: pos}

	case isDigit(cur):
		lit := s.number()
		tok = token.INT
		n, err := parseIntLiteral(lit)
		if err != nil {
			s.error(start, "invalid integer literal: "+lit)
		}
		*val = token.Value{Raw: lit, Pos: pos, Int: n}

	default:
		s.advance() // always make progress
		switch cur {
		case '+', '-', '*', '%', '(', ')', '{', '}', '[', ']', ',', ';':
			tok = token.LookupPunct(string(cur))
			*val = token.Value{Raw: tok.String(), Pos: pos}

		case '/':
			tok = token.SLASH
			*val = token.Value{Raw: "/", Pos: pos}

		case '=':
			tok = token.ASSIGN
			if s.advanceIf('=') {
				tok = token.EQL
			}
			*val = token.Value{Raw: tok.String(), Pos: pos}

		case '!':
			tok = token.NOT
			if s.advanceIf('=') {
				tok = token.NEQ
			}
			*val = token.Value{Raw: tok.String(), Pos: pos}

		case '<':
			tok = token.LT
			if s.advanceIf('=') {
				tok = token.LE
			}
			*val = token.Value{Raw: tok.String(), Pos: pos}

		case '>':
			tok = token.GT
			if s.advanceIf('=') {
				tok = token.GE
			}
			*val = token.Value{Raw: tok.String(), Pos: pos}

		case '&':
			if s.advanceIf('&') {
				tok = token.LAND
				*val = token.Value{Raw: "&&", Pos: pos}
			} else {
				s.error(start, "illegal character '&' (expected '&&')")
				tok = token.ILLEGAL
				*val = token.Value{Raw: "&", Pos: pos}
			}

		case '|':
			if s.advanceIf('|') {
				tok = token.LOR
				*val = token.Value{Raw: "||", Pos: pos}
			} else {
				s.error(start, "illegal character '|' (expected '||')")
				tok = token.ILLEGAL
				*val = token.Value{Raw: "|", Pos: pos}
			}

		case -1:
			tok = token.EOF
			*val = token.Value{Raw: "", Pos: pos}

		default:
			s.error(start, "illegal character "+strconv.QuoteRune(cur))
			tok = token.ILLEGAL
			*val = token.Value{Raw: string(cur), Pos: pos}
		}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// number scans a decimal, octal (leading 0) or hexadecimal (0x/0X) integer
// literal, per the SysY grammar.
func (s *Scanner) number() string {
	start := s.off
	if s.cur == '0' {
		s.advance()
		if s.cur == 'x' || s.cur == 'X' {
			s.advance()
			for isHexDigit(s.cur) {
				s.advance()
			}
			return string(s.src[start:s.off])
		}
		for isOctDigit(s.cur) {
			s.advance()
		}
		return string(s.src[start:s.off])
	}
	for isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func parseIntLiteral(lit string) (int64, error) {
	base := 10
	switch {
	case strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X"):
		base = 16
		lit = lit[2:]
	case len(lit) > 1 && lit[0] == '0':
		base = 8
	}
	if lit == "" {
		lit = "0"
	}
	return strconv.ParseInt(lit, base, 64)
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		for isWhitespace(s.cur) {
			s.advance()
		}
		if s.cur == '/' && s.peek() == '/' {
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
			continue
		}
		if s.cur == '/' && s.peek() == '*' {
			s.advance()
			s.advance()
			for {
				if s.cur == -1 {
					s.error(s.off, "unterminated block comment")
					return
				}
				if s.cur == '*' && s.peek() == '/' {
					s.advance()
					s.advance()
					break
				}
				s.advance()
			}
			continue
		}
		return
	}
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' ||
		r >= utf8.RuneSelf && unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

func isOctDigit(r rune) bool {
	return '0' <= r && r <= '7'
}
