// Copyright 2026, slimlime

package asm

import (
	"bufio"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// regMap maps register names to registers.
var regMap = map[string]Register{
	"R0":  REG_R0,
	"R1":  REG_R1,
	"R2":  REG_R2,
	"R3":  REG_R3,
	"R4":  REG_R4,
	"R5":  REG_R5,
	"R6":  REG_R6,
	"R7":  REG_R7,
	"SP":  REG_SP,
	"PC":  REG_PC,
	"ACC": REG_ACC,
}

// opMap maps mnemonics to opcodes.
var opMap = map[string]Op{
	"MOVE":  OP_MOVE,
	"ADD":   OP_ADD,
	"SUB":   OP_SUB,
	"MUL":   OP_MUL,
	"DIV":   OP_DIV,
	"MOD":   OP_MOD,
	"CMP":   OP_CMP,
	"JUMP":  OP_JUMP,
	"BEQ":   OP_BEQ,
	"BNE":   OP_BNE,
	"BLT":   OP_BLT,
	"BGT":   OP_BGT,
	"PUSH":  OP_PUSH,
	"POP":   OP_POP,
	"CALL":  OP_CALL,
	"RET":   OP_RET,
	"READ":  OP_READ,
	"WRITE": OP_WRITE,
	"HALT":  OP_HALT,
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parser is a single pass parser for FP-16/1 assembly source.
type Parser struct {
	Verbose bool             // If set, verbosely logs the parser actions.
	Consts  map[string]int64 // Map of .value constants seen so far.
}

// Parse parses an input stream into a Program.
func (p *Parser) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)
	prog = &Program{}

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	p.Consts = make(map[string]int64, 16)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if p.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		before, _, _ := strings.Cut(text, ";")
		line = strings.TrimSpace(before)

		var decls []Decl
		decls, err = p.parseLine(line, lineno)
		if err != nil {
			return
		}
		prog.Decls = append(prog.Decls, decls...)
	}

	err = scanner.Err()

	return
}

// parseLine parses a single source line into declarations.
func (p *Parser) parseLine(line string, lineno int) (decls []Decl, err error) {
	// Do $() evaluations
	line, err = p.expand(line)
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// Leading labels. Several may stack on one line.
	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		name := strings.TrimSuffix(words[0], ":")
		if !identRe.MatchString(name) {
			err = ErrLabelSyntax
			return
		}
		decls = append(decls, Decl{Kind: DECL_LABEL, LineNo: lineno, Line: line, Name: name})
		words = words[1:]
	}
	if len(words) == 0 {
		return
	}

	switch words[0] {
	case ".byte", ".word":
		kind := DECL_BYTE
		if words[0] == ".word" {
			kind = DECL_WORD
		}
		if len(words) != 2 || !identRe.MatchString(words[1]) {
			err = ErrStorageSyntax
			return
		}
		decls = append(decls, Decl{Kind: kind, LineNo: lineno, Line: line, Name: words[1]})
		return
	case ".value":
		if len(words) != 3 || !identRe.MatchString(words[1]) {
			err = ErrValueSyntax
			return
		}
		var number int64
		number, err = parseNumber(words[2])
		if err != nil {
			return
		}
		p.Consts[words[1]] = number
		decls = append(decls, Decl{Kind: DECL_VALUE, LineNo: lineno, Line: line, Name: words[1], Value: NumberValue(number)})
		return
	}

	var in Instruction
	in, err = p.parseInstruction(words)
	if err != nil {
		return
	}
	decls = append(decls, Decl{Kind: DECL_INSTRUCTION, LineNo: lineno, Line: line, Inst: in})

	return
}

// arity is the operand count required by a shape.
func (shape Shape) arity() int {
	switch shape {
	case SHAPE_SRC_DST, SHAPE_SRC_SRC:
		return 2
	case SHAPE_TARGET, SHAPE_SRC, SHAPE_DST:
		return 1
	}

	return 0
}

// parseInstruction parses a mnemonic and its operand words.
func (p *Parser) parseInstruction(words []string) (in Instruction, err error) {
	op, ok := opMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	shape := op.Shape()
	if len(args) < shape.arity() {
		err = ErrOperandMissing
		return
	}
	if len(args) > shape.arity() {
		err = ErrOperandExtra
		return
	}

	var operands []Operand
	switch shape {
	case SHAPE_SRC_DST:
		var src Source
		var dst Destination
		src, err = parseSource(args[0])
		if err != nil {
			return
		}
		dst, err = parseDestination(args[1])
		if err != nil {
			return
		}
		operands = []Operand{src, dst}
	case SHAPE_SRC_SRC:
		var a, b Source
		a, err = parseSource(args[0])
		if err != nil {
			return
		}
		b, err = parseSource(args[1])
		if err != nil {
			return
		}
		operands = []Operand{a, b}
	case SHAPE_TARGET:
		var target Value
		target, err = parseValue(args[0])
		if err != nil {
			return
		}
		operands = []Operand{target}
	case SHAPE_SRC:
		var src Source
		src, err = parseSource(args[0])
		if err != nil {
			return
		}
		operands = []Operand{src}
	case SHAPE_DST:
		var dst Destination
		dst, err = parseDestination(args[0])
		if err != nil {
			return
		}
		operands = []Operand{dst}
	}

	in = MakeInstruction(op, operands...)

	return
}

// parseNumber parses a numeric literal.
func parseNumber(word string) (number int64, err error) {
	number, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}

	return
}

// parseValue parses a value: a numeric literal or a symbolic name.
// Register names are not values.
func parseValue(word string) (v Value, err error) {
	if _, is_reg := regMap[word]; is_reg {
		err = ErrParseValue(word)
		return
	}

	number, nerr := strconv.ParseInt(word, 0, 64)
	if nerr == nil {
		v = NumberValue(number)
		return
	}

	if identRe.MatchString(word) {
		v = SymbolValue(word)
		return
	}

	err = ErrParseValue(word)

	return
}

// parseLocation parses the interior of an addressing parenthesis.
func parseLocation(word string) (loc Location, err error) {
	reg, is_reg := regMap[word]
	if is_reg {
		loc = RegisterLocation(reg)
		return
	}

	var v Value
	v, err = parseValue(word)
	if err != nil {
		return
	}
	loc = ValueLocation(v)

	return
}

// parseDestination parses a writable operand in any addressing mode.
func parseDestination(word string) (dst Destination, err error) {
	if reg, is_reg := regMap[word]; is_reg {
		dst = RegisterDst(reg)
		return
	}

	var loc Location
	switch {
	case strings.HasPrefix(word, "+(") && strings.HasSuffix(word, ")"):
		loc, err = parseLocation(word[2 : len(word)-1])
		if err != nil {
			return
		}
		dst = PreIncDst(loc)
	case strings.HasPrefix(word, "-(") && strings.HasSuffix(word, ")"):
		loc, err = parseLocation(word[2 : len(word)-1])
		if err != nil {
			return
		}
		dst = PreDecDst(loc)
	case strings.HasPrefix(word, "("):
		closing := strings.IndexByte(word, ')')
		if closing < 0 {
			err = ErrParseOperand(word)
			return
		}
		loc, err = parseLocation(word[1:closing])
		if err != nil {
			return
		}
		switch rest := word[closing+1:]; rest {
		case "":
			dst = IndirectDst(loc)
		case "+":
			dst = PostIncDst(loc)
		case "-":
			dst = PostDecDst(loc)
		default:
			var offset Value
			offset, err = parseValue(rest)
			if err != nil {
				return
			}
			dst = IndexedDst(loc, offset)
		}
	default:
		var v Value
		v, err = parseValue(word)
		if err != nil {
			return
		}
		dst = ValueDst(v)
	}

	return
}

// parseSource parses a readable operand: #value, or any destination form.
func parseSource(word string) (src Source, err error) {
	if strings.HasPrefix(word, "#") {
		var v Value
		v, err = parseValue(word[1:])
		if err != nil {
			return
		}
		src = ImmediateSrc(v)
		return
	}

	var dst Destination
	dst, err = parseDestination(word)
	if err != nil {
		return
	}
	src = DstSrc(dst)

	return
}

// expand does compile-time $(...) evaluations.
func (p *Parser) expand(line string) (out string, err error) {
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	out = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := p.evalExpr(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})

	return
}

// evalExpr evaluates a compile-time expression, with every numeric
// .value constant declared so far in scope.
func (p *Parser) evalExpr(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, number := range p.Consts {
		pred[name] = starlark.MakeInt64(number)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = st_int64

	return
}
