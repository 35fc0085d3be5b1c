package koopa

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// Parse parses textual Koopa IR (as emitted by lang/frontend) into a raw
// Program. The frontend emits one instruction, label or declaration per
// line, so a line-oriented scan classifying each line by prefix suffices.
func Parse(src string) (*Program, error) {
	p := &parser{s: bufio.NewScanner(strings.NewReader(src)), globals: make(map[string]*Value)}
	prog := &Program{}

	p.next()
	for p.err == nil && p.line != "" {
		switch {
		case strings.HasPrefix(p.line, "decl "):
			prog.Funcs = append(prog.Funcs, p.parseDecl())
		case strings.HasPrefix(p.line, "global "):
			prog.Globals = append(prog.Globals, p.parseGlobal())
		case strings.HasPrefix(p.line, "fun "):
			prog.Funcs = append(prog.Funcs, p.parseFunc())
		default:
			p.err = fmt.Errorf("koopa: unexpected top-level line %q", p.line)
		}
		if p.err != nil {
			break
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return prog, nil
}

type parser struct {
	s       *bufio.Scanner
	line    string
	nextID  ValueID
	err     error
	vals    map[string]*Value      // name (e.g. "%3", "@x_1") -> value, scoped to current function
	blocks  map[string]*BasicBlock // label -> block, scoped to current function
	globals map[string]*Value      // name ("@g") -> value, visible to every function
}

func (p *parser) next() {
	for p.s.Scan() {
		line := strings.TrimSpace(p.s.Text())
		if line == "" {
			continue
		}
		p.line = line
		return
	}
	p.line = ""
}

func (p *parser) fail(format string, args ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf("koopa: "+format, args...)
	}
}

func (p *parser) newValue(kind ValueKind, typ *Type) *Value {
	v := &Value{ID: p.nextID, Kind: kind, Type: typ}
	p.nextID++
	return v
}

// parseDecl parses "decl @name(types)[: i32]".
func (p *parser) parseDecl() *Function {
	line := strings.TrimPrefix(p.line, "decl @")
	name, rest := splitName(line)
	_, retUnit := splitParenAndRet(rest)
	f := &Function{Name: name, Ret: retUnit, IsDecl: true}
	p.next()
	return f
}

// parseGlobal parses "global @name = alloc i32, <int|zeroinit>".
func (p *parser) parseGlobal() *Value {
	line := strings.TrimPrefix(p.line, "global ")
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		p.fail("malformed global declaration %q", p.line)
		p.next()
		return nil
	}
	name := strings.TrimSpace(parts[0])
	rhs := strings.TrimSpace(parts[1])
	rhs = strings.TrimPrefix(rhs, "alloc i32,")
	rhs = strings.TrimSpace(rhs)

	v := p.newValue(KGlobalAlloc, PointerTo(TypeInt32))
	v.Name = name
	if rhs == "zeroinit" {
		v.HasInit = false
	} else {
		n, err := strconv.ParseInt(rhs, 10, 64)
		if err != nil {
			p.fail("malformed global initializer %q: %v", rhs, err)
		}
		v.HasInit = true
		v.Imm = n
	}
	p.globals[name] = v
	p.next()
	return v
}

// parseFunc parses a full "fun @name(params)[: i32] { ... }" definition.
func (p *parser) parseFunc() *Function {
	header := strings.TrimSuffix(strings.TrimSpace(p.line), "{")
	header = strings.TrimSpace(header)
	header = strings.TrimPrefix(header, "fun @")
	name, rest := splitName(header)
	paramList, ret := splitParenAndRet(rest)

	f := &Function{Name: name, Ret: ret}
	p.vals = make(map[string]*Value)
	p.blocks = make(map[string]*BasicBlock)

	for _, param := range splitArgs(paramList) {
		if param == "" {
			continue
		}
		nameType := strings.SplitN(param, ":", 2)
		pname := strings.TrimSpace(nameType[0])
		f.ParamNames = append(f.ParamNames, strings.TrimPrefix(pname, "%"))
		f.ParamTypes = append(f.ParamTypes, TypeInt32)

		argRef := p.newValue(KFuncArgRef, TypeInt32)
		argRef.Name = pname
		argRef.ArgIndex = len(f.ParamNames) - 1
		p.vals[pname] = argRef
	}

	p.next()
	for p.err == nil && p.line != "}" {
		if p.line == "" {
			p.fail("unterminated function %q", f.Name)
			return f
		}
		if strings.HasSuffix(p.line, ":") {
			label := strings.TrimPrefix(strings.TrimSuffix(p.line, ":"), "%")
			bb := &BasicBlock{ID: len(f.Blocks), Label: label}
			if bb.Label == "entry" {
				bb.Label = ""
			}
			p.blocks[label] = bb
			f.Blocks = append(f.Blocks, bb)
			p.next()
			continue
		}
		if len(f.Blocks) == 0 {
			p.fail("instruction %q outside any basic block", p.line)
			return f
		}
		bb := f.Blocks[len(f.Blocks)-1]
		inst := p.parseInst()
		if inst != nil {
			bb.Insts = append(bb.Insts, inst)
		}
		p.next()
	}
	p.next() // consume "}"

	// resolve jump/branch targets now that every block is registered.
	p.resolveTargets(f)
	return f
}

func (p *parser) resolveTargets(f *Function) {
	for _, bb := range f.Blocks {
		for _, inst := range bb.Insts {
			for i, t := range inst.pendingTargets {
				label := strings.TrimPrefix(t, "%")
				target, ok := p.blocks[label]
				if !ok {
					p.fail("undefined label %q", t)
					return
				}
				if i < len(inst.Targets) {
					inst.Targets[i] = target
				}
			}
		}
	}
}

// parseInst parses a single instruction line within a basic block.
func (p *parser) parseInst() *Value {
	line := p.line

	if strings.HasPrefix(line, "ret") {
		v := p.newValue(KReturn, TypeUnit)
		arg := strings.TrimSpace(strings.TrimPrefix(line, "ret"))
		if arg != "" {
			v.Operands = []*Value{p.operand(arg)}
		}
		return v
	}
	if strings.HasPrefix(line, "jump ") {
		v := p.newValue(KJump, TypeUnit)
		target := strings.TrimSpace(strings.TrimPrefix(line, "jump"))
		v.Targets = make([]*BasicBlock, 1)
		v.pendingTargets = []string{target}
		return v
	}
	if strings.HasPrefix(line, "br ") {
		rest := strings.TrimSpace(strings.TrimPrefix(line, "br"))
		args := splitArgs(rest)
		if len(args) != 3 {
			p.fail("malformed br %q", line)
			return nil
		}
		v := p.newValue(KBranch, TypeUnit)
		v.Operands = []*Value{p.operand(strings.TrimSpace(args[0]))}
		v.Targets = make([]*BasicBlock, 2)
		v.pendingTargets = []string{strings.TrimSpace(args[1]), strings.TrimSpace(args[2])}
		return v
	}
	if strings.HasPrefix(line, "store ") {
		rest := strings.TrimSpace(strings.TrimPrefix(line, "store"))
		args := splitArgs(rest)
		if len(args) != 2 {
			p.fail("malformed store %q", line)
			return nil
		}
		v := p.newValue(KStore, TypeUnit)
		v.Operands = []*Value{p.operand(strings.TrimSpace(args[0])), p.operand(strings.TrimSpace(args[1]))}
		return v
	}
	if strings.HasPrefix(line, "call @") {
		return p.parseCall(line, "")
	}

	// "<name> = <rhs>" forms.
	eq := strings.Index(line, "=")
	if eq < 0 {
		p.fail("unrecognized instruction %q", line)
		return nil
	}
	name := strings.TrimSpace(line[:eq])
	rhs := strings.TrimSpace(line[eq+1:])

	switch {
	case rhs == "alloc i32":
		v := p.newValue(KAlloc, PointerTo(TypeInt32))
		v.Name = name
		p.vals[name] = v
		return v
	case strings.HasPrefix(rhs, "load "):
		src := strings.TrimSpace(strings.TrimPrefix(rhs, "load"))
		v := p.newValue(KLoad, TypeInt32)
		v.Name = name
		v.Operands = []*Value{p.operand(src)}
		p.vals[name] = v
		return v
	case strings.HasPrefix(rhs, "call @"):
		return p.parseCall(rhs, name)
	default:
		return p.parseBinary(name, rhs)
	}
}

func (p *parser) parseBinary(name, rhs string) *Value {
	sp := strings.IndexByte(rhs, ' ')
	if sp < 0 {
		p.fail("malformed binary expression %q", rhs)
		return nil
	}
	mnemonic := rhs[:sp]
	op, ok := binaryOpNames[mnemonic]
	if !ok {
		p.fail("unknown binary operator %q", mnemonic)
		return nil
	}
	args := splitArgs(strings.TrimSpace(rhs[sp+1:]))
	if len(args) != 2 {
		p.fail("malformed binary operands %q", rhs)
		return nil
	}
	v := p.newValue(KBinary, TypeInt32)
	v.Name = name
	v.Op = op
	v.Operands = []*Value{p.operand(strings.TrimSpace(args[0])), p.operand(strings.TrimSpace(args[1]))}
	p.vals[name] = v
	return v
}

func (p *parser) parseCall(line, resultName string) *Value {
	rest := strings.TrimPrefix(line, "call @")
	paren := strings.IndexByte(rest, '(')
	callee := rest[:paren]
	argsStr := strings.TrimSuffix(rest[paren+1:], ")")

	typ := TypeUnit
	if resultName != "" {
		typ = TypeInt32
	}
	v := p.newValue(KCall, typ)
	v.Name = resultName
	v.Callee = callee
	for _, a := range splitArgs(argsStr) {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		v.Operands = append(v.Operands, p.operand(a))
	}
	if resultName != "" {
		p.vals[resultName] = v
	}
	return v
}

// operand resolves a textual operand (decimal literal, %k temp, or @name
// storage) to the Value it refers to, synthesizing a fresh KInteger Value
// for literals.
func (p *parser) operand(tok string) *Value {
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		v := p.newValue(KInteger, TypeInt32)
		v.Imm = n
		return v
	}
	if v, ok := p.vals[tok]; ok {
		return v
	}
	if v, ok := p.globals[tok]; ok {
		return v
	}
	p.fail("undefined value %q", tok)
	return &Value{Kind: KInteger}
}

func splitName(s string) (name, rest string) {
	paren := strings.IndexByte(s, '(')
	if paren < 0 {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:paren]), s[paren:]
}

// splitParenAndRet splits "(params): i32" into ("params", TypeInt32) or
// "(params)" into ("params", TypeUnit).
func splitParenAndRet(s string) (params string, ret *Type) {
	s = strings.TrimSpace(s)
	close := strings.IndexByte(s, ')')
	if close < 0 {
		return "", TypeUnit
	}
	params = s[1:close]
	tail := strings.TrimSpace(s[close+1:])
	if strings.HasPrefix(tail, ":") {
		return params, TypeInt32
	}
	return params, TypeUnit
}

// splitArgs splits a comma-separated argument/operand list at top level
// (there is no nesting in this IR's operand grammar, so a plain split
// suffices).
func splitArgs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
