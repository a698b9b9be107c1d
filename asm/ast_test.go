package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueRender(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("42", NumberValue(42).String())
	assert.Equal("-7", NumberValue(-7).String())
	assert.Equal("loop", SymbolValue("loop").String())
}

func TestLocationRender(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("R3", RegisterLocation(REG_R3).String())
	assert.Equal("SP", RegisterLocation(REG_SP).String())
	assert.Equal("5", ValueLocation(NumberValue(5)).String())
	assert.Equal("base", ValueLocation(SymbolValue("base")).String())
}

func TestDestinationRender(t *testing.T) {
	assert := assert.New(t)

	loc := RegisterLocation(REG_R2)

	table := [](struct {
		name string
		dst  Destination
		text string
	}){
		{"register", RegisterDst(REG_R1), "R1"},
		{"literal", ValueDst(NumberValue(7)), "7"},
		{"symbol", ValueDst(SymbolValue("X")), "X"},
		{"indirect", IndirectDst(loc), "(R2)"},
		{"indexed", IndexedDst(loc, NumberValue(3)), "(R2)3"},
		{"indexed_negative", IndexedDst(loc, NumberValue(-2)), "(R2)-2"},
		{"post_inc", PostIncDst(loc), "(R2)+"},
		{"post_dec", PostDecDst(loc), "(R2)-"},
		{"pre_inc", PreIncDst(loc), "+(R2)"},
		{"pre_dec", PreDecDst(loc), "-(R2)"},
		{"indirect_literal", IndirectDst(ValueLocation(NumberValue(5))), "(5)"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.dst.String(), entry.name)

		// Construction and parsing agree on the canonical form.
		dst, err := parseDestination(entry.text)
		assert.NoError(err, entry.name)
		assert.Equal(entry.dst, dst, entry.name)
	}
}

func TestSourceRender(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("#3", ImmediateSrc(NumberValue(3)).String())
	assert.Equal("#size", ImmediateSrc(SymbolValue("size")).String())
	assert.Equal("(R4)+", DstSrc(PostIncDst(RegisterLocation(REG_R4))).String())
}

func TestInstructionRender(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		in   Instruction
		text string
	}){
		{MakeInstruction(OP_ADD, ImmediateSrc(NumberValue(3)), RegisterDst(REG_R1)), "ADD #3 R1"},
		{MakeInstruction(OP_MOVE, DstSrc(ValueDst(SymbolValue("X"))), RegisterDst(REG_ACC)), "MOVE X ACC"},
		{MakeInstruction(OP_JUMP, SymbolValue("loop")), "JUMP loop"},
		{MakeInstruction(OP_CMP, DstSrc(RegisterDst(REG_R1)), ImmediateSrc(NumberValue(0))), "CMP R1 #0"},
		{MakeInstruction(OP_HALT), "HALT"},
		{MakeInstruction(OP_RET), "RET"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.in.String())
	}
}

func TestProgramInstructions(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Decls: []Decl{
			{Kind: DECL_LABEL, Name: "start", LineNo: 1},
			{Kind: DECL_INSTRUCTION, Inst: MakeInstruction(OP_HALT), LineNo: 2},
			{Kind: DECL_BYTE, Name: "X", LineNo: 3},
			{Kind: DECL_INSTRUCTION, Inst: MakeInstruction(OP_RET), LineNo: 4},
		},
	}

	assert.Equal(2, prog.CodeSize())

	var ops []Op
	for addr, in := range prog.Instructions() {
		ops = append(ops, in.Op)
		assert.Equal(len(ops)-1, addr)
	}
	assert.Equal([]Op{OP_HALT, OP_RET}, ops)

	decl, ok := prog.Debug(1)
	assert.True(ok)
	assert.Equal(4, decl.LineNo)

	_, ok = prog.Debug(2)
	assert.False(ok)
}
