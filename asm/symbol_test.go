package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolBuild(t *testing.T) {
	assert := assert.New(t)

	prog, err := parseLines(t,
		".value N 7",
		"start: MOVE #N R1",
		".byte X",
		"loop: ADD #1 R1",
		".word Y",
		"HALT",
	)
	assert.NoError(err)

	table, err := Build(prog)
	assert.NoError(err)
	assert.Equal(5, table.Len())

	expected := []Symbol{
		{Name: "N", Kind: SYM_CONST, Address: 7},
		{Name: "start", Kind: SYM_LABEL, Address: 0},
		{Name: "X", Kind: SYM_STORAGE, Address: 3}, // first cell after the code
		{Name: "loop", Kind: SYM_LABEL, Address: 1},
		{Name: "Y", Kind: SYM_STORAGE, Address: 4},
	}

	syms := []Symbol{}
	for sym := range table.Symbols() {
		syms = append(syms, sym)
	}
	assert.Equal(expected, syms)

	sym, ok := table.Lookup("loop")
	assert.True(ok)
	assert.Equal(int64(1), sym.Address)

	_, ok = table.Lookup("missing")
	assert.False(ok)
}

func TestSymbolDuplicate(t *testing.T) {
	assert := assert.New(t)

	prog, err := parseLines(t,
		"x: HALT",
		".byte x",
	)
	assert.NoError(err)

	_, err = Build(prog)
	assert.ErrorIs(err, ErrSymbolDuplicate("x"))

	var syntax ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.Equal(2, syntax.LineNo)
}

func TestSymbolString(t *testing.T) {
	assert := assert.New(t)

	prog, err := parseLines(t,
		".value N 7",
		"loop: HALT",
	)
	assert.NoError(err)

	table, err := Build(prog)
	assert.NoError(err)

	assert.Equal("N = 7 ; const\nloop = 0 ; label\n", table.String())
}

func TestResolve(t *testing.T) {
	assert := assert.New(t)

	prog, err := parseLines(t,
		".byte X",
		"loop: MOVE X ACC",
		"JUMP loop",
	)
	assert.NoError(err)

	table, err := Build(prog)
	assert.NoError(err)

	resolved, err := Resolve(prog, table)
	assert.NoError(err)
	assert.Equal(table, resolved)
}

func TestResolveMissing(t *testing.T) {
	assert := assert.New(t)

	prog, err := parseLines(t, "MOVE FOO R1")
	assert.NoError(err)

	table, err := Build(prog)
	assert.NoError(err)

	_, err = Resolve(prog, table)
	assert.ErrorIs(err, ErrSymbolMissing("FOO"))
}

func TestVerify(t *testing.T) {
	assert := assert.New(t)

	prog, err := parseLines(t,
		".byte X",
		"loop: MOVE #1 (R1)+",
		"JUMP loop",
		"HALT",
	)
	assert.NoError(err)

	table, err := Build(prog)
	assert.NoError(err)

	assert.NoError(Verify(prog, table))
}

func TestVerifyLocation(t *testing.T) {
	assert := assert.New(t)

	// Increment addressing may not mutate a literal location.
	prog, err := parseLines(t, "MOVE #1 (5)+")
	assert.NoError(err)

	table, err := Build(prog)
	assert.NoError(err)

	assert.ErrorIs(Verify(prog, table), ErrLocationInvalid)
}

func TestVerifyTarget(t *testing.T) {
	assert := assert.New(t)

	// Storage symbols are data addresses, not control transfer targets.
	prog, err := parseLines(t,
		".byte X",
		"JUMP X",
	)
	assert.NoError(err)

	table, err := Build(prog)
	assert.NoError(err)

	assert.ErrorIs(Verify(prog, table), ErrTargetInvalid)
}

func TestVerifyShape(t *testing.T) {
	assert := assert.New(t)

	// Hand-built ASTs may not satisfy the mnemonic shapes.
	prog := &Program{
		Decls: []Decl{
			{Kind: DECL_INSTRUCTION, Inst: MakeInstruction(OP_MOVE, ImmediateSrc(NumberValue(1)))},
		},
	}

	table, err := Build(prog)
	assert.NoError(err)

	assert.ErrorIs(Verify(prog, table), ErrShapeInvalid)
}
