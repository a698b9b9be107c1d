package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseLines(t *testing.T, lines ...string) (prog *Program, err error) {
	t.Helper()

	parser := &Parser{}
	prog, err = parser.Parse(strings.NewReader(strings.Join(lines, "\n")))

	return
}

func TestParserEmpty(t *testing.T) {
	assert := assert.New(t)

	prog, err := parseLines(t, "")
	assert.NoError(err)
	assert.Equal(0, len(prog.Decls))
}

func TestParserComments(t *testing.T) {
	assert := assert.New(t)

	prog, err := parseLines(t,
		"; a full line comment",
		"   HALT ; trailing comment",
	)
	assert.NoError(err)
	assert.Equal(1, len(prog.Decls))
	assert.Equal(DECL_INSTRUCTION, prog.Decls[0].Kind)
	assert.Equal("HALT", prog.Decls[0].Inst.String())
}

func TestParserDeclarations(t *testing.T) {
	assert := assert.New(t)

	prog, err := parseLines(t,
		"start:",
		".byte X",
		".word Y",
		".value N 3",
		"MOVE #N R1",
		"loop: HALT",
	)
	assert.NoError(err)

	kinds := []DeclKind{}
	for _, decl := range prog.Decls {
		kinds = append(kinds, decl.Kind)
	}
	assert.Equal([]DeclKind{DECL_LABEL, DECL_BYTE, DECL_WORD, DECL_VALUE, DECL_INSTRUCTION, DECL_LABEL, DECL_INSTRUCTION}, kinds)

	assert.Equal("start", prog.Decls[0].Name)
	assert.Equal(int64(3), prog.Decls[3].Value.Number)
	assert.Equal("MOVE #N R1", prog.Decls[4].Inst.String())
	assert.Equal(6, prog.Decls[6].LineNo)
}

func TestParserRoundTrip(t *testing.T) {
	assert := assert.New(t)

	// Every instruction renders back to its source text.
	lines := []string{
		"MOVE #3 R1",
		"ADD (R1)+ ACC",
		"SUB -(SP) R2",
		"MUL (base)2 R3",
		"DIV #N (R4)-",
		"MOD R5 +(R6)",
		"CMP R1 #0",
		"JUMP loop",
		"BEQ done",
		"PUSH #7",
		"POP (R7)",
		"CALL sub",
		"READ ACC",
		"WRITE (12)",
		"RET",
		"HALT",
	}

	prog, err := parseLines(t, lines...)
	assert.NoError(err)

	rendered := []string{}
	for _, in := range prog.Decls {
		rendered = append(rendered, in.Inst.String())
	}
	assert.Equal(lines, rendered)
}

func TestParserExpressions(t *testing.T) {
	assert := assert.New(t)

	prog, err := parseLines(t,
		".value N 4",
		"MOVE #$(N*2+1) R1",
	)
	assert.NoError(err)
	assert.Equal("MOVE #9 R1", prog.Decls[1].Inst.String())

	_, err = parseLines(t, "MOVE #$(nope) R1")
	assert.Error(err)
}

func TestParserErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line string
		want error
	}){
		{"BOGUS 1", ErrOpcodeInvalid},
		{"MOVE #3", ErrOperandMissing},
		{"MOVE #3 R1 R2", ErrOperandExtra},
		{"HALT NOW", ErrOperandExtra},
		{".value N", ErrValueSyntax},
		{".byte", ErrStorageSyntax},
		{"1bad:", ErrLabelSyntax},
		{"MOVE #3 ((R1)", ErrParseValue("(R1")},
		{"JUMP R1", ErrParseValue("R1")},
	}

	for _, entry := range table {
		prog, err := parseLines(t, entry.line)
		assert.Nil(prog, entry.line)
		assert.ErrorIs(err, entry.want, entry.line)

		var syntax ErrSyntax
		assert.ErrorAs(err, &syntax, entry.line)
		assert.Equal(1, syntax.LineNo, entry.line)
	}
}
