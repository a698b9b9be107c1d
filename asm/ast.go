package asm

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// ValueKind selects between the two Value variants.
type ValueKind int

const (
	VALUE_NUMBER = ValueKind(0) // numeric literal
	VALUE_SYMBOL = ValueKind(1) // symbolic reference
)

// Value is a numeric literal or a symbolic reference. Symbolic values
// render as their name; resolution to an address happens through the
// symbol table, never in the renderer.
type Value struct {
	Kind   ValueKind
	Number int64
	Symbol string
}

// NumberValue makes a literal Value.
func NumberValue(number int64) Value {
	return Value{Kind: VALUE_NUMBER, Number: number}
}

// SymbolValue makes a symbolic Value.
func SymbolValue(symbol string) Value {
	return Value{Kind: VALUE_SYMBOL, Symbol: symbol}
}

func (v Value) String() string {
	if v.Kind == VALUE_SYMBOL {
		return v.Symbol
	}

	return strconv.FormatInt(v.Number, 10)
}

// LocationKind selects between the two Location variants.
type LocationKind int

const (
	LOC_REGISTER = LocationKind(0)
	LOC_VALUE    = LocationKind(1)
)

// Location is the interior of an addressing parenthesis: a register or
// a value.
type Location struct {
	Kind     LocationKind
	Register Register
	Value    Value
}

// RegisterLocation makes a register Location.
func RegisterLocation(reg Register) Location {
	return Location{Kind: LOC_REGISTER, Register: reg}
}

// ValueLocation makes a value Location.
func ValueLocation(v Value) Location {
	return Location{Kind: LOC_VALUE, Value: v}
}

func (loc Location) String() string {
	if loc.Kind == LOC_REGISTER {
		return loc.Register.String()
	}

	return loc.Value.String()
}

// Destination is a writable operand in one of the eight addressing
// modes. The Mode tag determines which fields are meaningful:
// Register for MODE_REGISTER, Value for MODE_VALUE and the offset of
// MODE_INDEXED, Location for every parenthesized mode.
type Destination struct {
	Mode     Mode
	Register Register
	Value    Value
	Location Location
}

// RegisterDst makes a register destination.
func RegisterDst(reg Register) Destination {
	return Destination{Mode: MODE_REGISTER, Register: reg}
}

// ValueDst makes a direct-value destination.
func ValueDst(v Value) Destination {
	return Destination{Mode: MODE_VALUE, Value: v}
}

// IndirectDst makes a plain indirect destination.
func IndirectDst(loc Location) Destination {
	return Destination{Mode: MODE_INDIRECT, Location: loc}
}

// IndexedDst makes an indexed destination with the given offset.
func IndexedDst(loc Location, offset Value) Destination {
	return Destination{Mode: MODE_INDEXED, Location: loc, Value: offset}
}

// PostIncDst makes a post-increment destination.
func PostIncDst(loc Location) Destination {
	return Destination{Mode: MODE_POST_INC, Location: loc}
}

// PostDecDst makes a post-decrement destination.
func PostDecDst(loc Location) Destination {
	return Destination{Mode: MODE_POST_DEC, Location: loc}
}

// PreIncDst makes a pre-increment destination.
func PreIncDst(loc Location) Destination {
	return Destination{Mode: MODE_PRE_INC, Location: loc}
}

// PreDecDst makes a pre-decrement destination.
func PreDecDst(loc Location) Destination {
	return Destination{Mode: MODE_PRE_DEC, Location: loc}
}

func (dst Destination) String() string {
	switch dst.Mode {
	case MODE_REGISTER:
		return dst.Register.String()
	case MODE_VALUE:
		return dst.Value.String()
	case MODE_INDIRECT:
		return "(" + dst.Location.String() + ")"
	case MODE_INDEXED:
		return "(" + dst.Location.String() + ")" + dst.Value.String()
	case MODE_POST_INC:
		return "(" + dst.Location.String() + ")+"
	case MODE_POST_DEC:
		return "(" + dst.Location.String() + ")-"
	case MODE_PRE_INC:
		return "+(" + dst.Location.String() + ")"
	case MODE_PRE_DEC:
		return "-(" + dst.Location.String() + ")"
	}

	return fmt.Sprintf("Mode(%d)", int(dst.Mode))
}

// Source is a readable operand: any destination form, or an immediate
// value written as #value.
type Source struct {
	Immediate bool
	Value     Value       // valid when Immediate
	Dst       Destination // valid otherwise
}

// ImmediateSrc makes an immediate source.
func ImmediateSrc(v Value) Source {
	return Source{Immediate: true, Value: v}
}

// DstSrc makes a source out of a destination form.
func DstSrc(dst Destination) Source {
	return Source{Dst: dst}
}

func (src Source) String() string {
	if src.Immediate {
		return "#" + src.Value.String()
	}

	return src.Dst.String()
}

// Operand is any renderable instruction operand: Source, Destination,
// or Value (branch and call targets).
type Operand interface {
	fmt.Stringer
}

// Instruction is one decoded instruction: a mnemonic and its operands
// in source order.
type Instruction struct {
	Op       Op
	Operands []Operand
}

// MakeInstruction builds an instruction from a mnemonic and operands.
func MakeInstruction(op Op, operands ...Operand) Instruction {
	return Instruction{Op: op, Operands: operands}
}

func (in Instruction) String() string {
	parts := make([]string, 0, 1+len(in.Operands))
	parts = append(parts, in.Op.String())
	for _, operand := range in.Operands {
		parts = append(parts, operand.String())
	}

	return strings.Join(parts, " ")
}

// DeclKind is the type of a program declaration.
type DeclKind int

const (
	DECL_LABEL       = DeclKind(0) // NAME:
	DECL_BYTE        = DeclKind(1) // .byte NAME
	DECL_WORD        = DeclKind(2) // .word NAME
	DECL_VALUE       = DeclKind(3) // .value NAME N
	DECL_INSTRUCTION = DeclKind(4)
)

// Decl is a single program declaration with its source location.
type Decl struct {
	Kind   DeclKind
	LineNo int
	Line   string

	Name  string      // label, storage, and value declarations
	Value Value       // value declarations
	Inst  Instruction // instruction declarations
}

// Program is an ordered list of declarations produced by the parser.
type Program struct {
	Decls []Decl
}

// CodeSize returns the number of instruction declarations, which is
// also the number of memory cells the program occupies when loaded.
func (prog *Program) CodeSize() (size int) {
	for _, decl := range prog.Decls {
		if decl.Kind == DECL_INSTRUCTION {
			size += 1
		}
	}

	return
}

// Instructions iterates the instruction declarations in source order,
// keyed by load address.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(addr int, in Instruction) bool) {
		addr := 0
		for _, decl := range prog.Decls {
			if decl.Kind != DECL_INSTRUCTION {
				continue
			}
			if !yield(addr, decl.Inst) {
				return
			}
			addr += 1
		}
	}
}

// Debug returns the declaration behind the instruction loaded at the
// given address.
func (prog *Program) Debug(addr int) (decl Decl, ok bool) {
	count := 0
	for _, d := range prog.Decls {
		if d.Kind != DECL_INSTRUCTION {
			continue
		}
		if count == addr {
			return d, true
		}
		count += 1
	}

	return
}
