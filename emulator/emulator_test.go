package emulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slimlime/fp-16-1/asm"
	"github.com/slimlime/fp-16-1/machine"
)

// loadSource assembles a program and wraps it in an emulator with the
// listing attached for line diagnostics.
func loadSource(t *testing.T, source string) *Emulator {
	t.Helper()

	parser := &asm.Parser{}
	prog, err := parser.Parse(strings.NewReader(source))
	if err != nil {
		t.Fatal(err)
	}

	env, err := machine.LoadProgram(prog, machine.Config{})
	if err != nil {
		t.Fatal(err)
	}

	emu := NewEmulator(env)
	emu.Program = prog

	return emu
}

func runSource(t *testing.T, source string) (*Emulator, error) {
	t.Helper()

	emu := loadSource(t, source)
	err := emu.Run(0)

	return emu, err
}

func TestRunArithmetic(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		inst string
		want int64
	}{
		{"ADD #4 R0", 7},
		{"SUB #4 R0", -1},
		{"MUL #4 R0", 12},
		{"DIV #2 R0", 1},
		{"MOD #2 R0", 1},
	}

	for _, test := range tests {
		emu, err := runSource(t,
			"MOVE #3 R0\n"+test.inst+"\nWRITE R0\nHALT\n")
		assert.NoError(err, test.inst)
		assert.Equal([]int64{test.want}, emu.Env.Output, test.inst)
	}
}

func TestRunLoop(t *testing.T) {
	assert := assert.New(t)

	emu, err := runSource(t, `
.value N 3
  MOVE #N R0
loop:
  WRITE R0
  SUB #1 R0
  CMP R0 #0
  BGT loop
  HALT
`)
	assert.NoError(err)
	assert.Equal([]int64{3, 2, 1}, emu.Env.Output)
}

func TestRunBranches(t *testing.T) {
	assert := assert.New(t)

	// Each comparison drives one branch: only the taken path writes.
	emu, err := runSource(t, `
  CMP #1 #2
  BLT less
  HALT
less:
  WRITE #1
  CMP #2 #2
  BEQ equal
  HALT
equal:
  WRITE #2
  CMP #3 #2
  BGT greater
  HALT
greater:
  WRITE #3
  CMP #3 #2
  BNE done
  HALT
done:
  WRITE #4
  HALT
`)
	assert.NoError(err)
	assert.Equal([]int64{1, 2, 3, 4}, emu.Env.Output)
}

func TestRunStorage(t *testing.T) {
	assert := assert.New(t)

	emu, err := runSource(t, `
.byte X
  MOVE #11 (X)
  WRITE (X)
  HALT
`)
	assert.NoError(err)
	assert.Equal([]int64{11}, emu.Env.Output)

	cell, err := emu.Env.Memory.Load(3)
	assert.NoError(err)
	assert.Equal(machine.NumberCell(11), cell)
}

func TestRunIndirect(t *testing.T) {
	assert := assert.New(t)

	emu, err := runSource(t, `
  MOVE #10 R1
  MOVE #16 (R1)
  MOVE #10 R2
  WRITE (R2)+
  WRITE R2
  HALT
`)
	assert.NoError(err)
	assert.Equal([]int64{16, 11}, emu.Env.Output)
}

func TestRunIndexed(t *testing.T) {
	assert := assert.New(t)

	emu, err := runSource(t, `
  MOVE #8 R1
  MOVE #21 (R1)2
  WRITE (R1)2
  HALT
`)
	assert.NoError(err)
	assert.Equal([]int64{21}, emu.Env.Output)

	cell, err := emu.Env.Memory.Load(10)
	assert.NoError(err)
	assert.Equal(machine.NumberCell(21), cell)
}

func TestRunCall(t *testing.T) {
	assert := assert.New(t)

	emu, err := runSource(t, `
  CALL sub
  WRITE R0
  HALT
sub:
  MOVE #10 R0
  RET
`)
	assert.NoError(err)
	assert.Equal([]int64{10}, emu.Env.Output)
	assert.Equal(emu.Env.Memory.Len(), emu.Env.StackPointer)
}

func TestRunStack(t *testing.T) {
	assert := assert.New(t)

	emu, err := runSource(t, `
  MOVE #42 -(SP)
  POP R3
  WRITE R3
  HALT
`)
	assert.NoError(err)
	assert.Equal([]int64{42}, emu.Env.Output)
	assert.Equal(emu.Env.Memory.Len(), emu.Env.StackPointer)
}

func TestRunRead(t *testing.T) {
	assert := assert.New(t)

	// The default configuration seeds the input queue with a single 5.
	emu, err := runSource(t, `
  READ R0
  ADD #1 R0
  WRITE R0
  HALT
`)
	assert.NoError(err)
	assert.Equal([]int64{6}, emu.Env.Output)
	assert.Empty(emu.Env.Input)
}

func TestRunOffEnd(t *testing.T) {
	assert := assert.New(t)

	// Without HALT execution stops at the first empty cell.
	emu, err := runSource(t, "MOVE #1 R0\n")
	assert.NoError(err)
	assert.Equal(1, emu.Ticks)
}

func TestRunDivideByZero(t *testing.T) {
	assert := assert.New(t)

	_, err := runSource(t, `
  MOVE #1 R0
  DIV #0 R0
  HALT
`)
	assert.ErrorIs(err, ErrDivideByZero)

	var rterr *ErrRuntime
	assert.ErrorAs(err, &rterr)
	assert.Equal(3, rterr.LineNo)
}

func TestRunNotInstruction(t *testing.T) {
	assert := assert.New(t)

	_, err := runSource(t, `
  MOVE #5 9
  JUMP 9
`)
	assert.ErrorIs(err, ErrNotInstruction)
}

func TestRunInputEmpty(t *testing.T) {
	assert := assert.New(t)

	_, err := runSource(t, `
  READ R0
  READ R1
  HALT
`)
	assert.ErrorIs(err, machine.ErrInputEmpty)
}

func TestRunTickLimit(t *testing.T) {
	assert := assert.New(t)

	emu := loadSource(t, "loop:\n  JUMP loop\n")
	err := emu.Run(10)
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(10, emu.Ticks)
}

func TestStep(t *testing.T) {
	assert := assert.New(t)

	emu := loadSource(t, "MOVE #2 R0\nHALT\n")

	done, err := emu.Step()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(1, emu.Env.ProgramCounter)
	assert.Equal(machine.NumberCell(2), emu.Env.Registers[0])

	done, err = emu.Step()
	assert.NoError(err)
	assert.True(done)
}
