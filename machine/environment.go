package machine

import (
	"fmt"
	"slices"

	"github.com/slimlime/fp-16-1/asm"
)

// Environment is the full machine state: registers, memory, the code
// region boundary, the input and output queues, and the resolved
// symbol table. The loader constructs it, the execution engine mutates
// it, and Snapshot hands a frozen copy to inspectors.
type Environment struct {
	Accumulator    Cell // Dedicated accumulator register.
	StackPointer   int  // Grows downward from the top of memory.
	ProgramCounter int
	Compare        int // Sign recorded by the last comparison.

	Memory     Memory
	StaticSize int // Leading cells occupied by loaded code.

	Input  []int64 // Values available to input instructions, FIFO.
	Output []int64 // Values produced by output instructions.

	Registers [asm.REGISTER_COUNT]Cell // General purpose registers R0..R7.

	Symbols *asm.SymbolTable
}

// NewEnvironment makes an initial environment: empty accumulator and
// registers, stack pointer at the top, program counter zero, frozen
// all-empty memory, empty queues and symbol table.
func NewEnvironment(capacity int) (env *Environment) {
	env = &Environment{
		StackPointer: capacity,
		Memory:       NewMemory(capacity),
		Symbols:      &asm.SymbolTable{},
	}

	return
}

// Snapshot returns an independent copy with frozen memory. The
// receiver keeps its mode, so a live mutable environment may continue
// running while the snapshot is inspected.
func (env *Environment) Snapshot() (snap *Environment) {
	snap = &Environment{
		Accumulator:    env.Accumulator,
		StackPointer:   env.StackPointer,
		ProgramCounter: env.ProgramCounter,
		Compare:        env.Compare,
		Memory:         env.Memory.Freeze(),
		StaticSize:     env.StaticSize,
		Input:          slices.Clone(env.Input),
		Output:         slices.Clone(env.Output),
		Registers:      env.Registers,
		Symbols:        env.Symbols,
	}

	return
}

// Push stores a cell below the stack pointer. The stack may not grow
// into the static code region.
func (env *Environment) Push(cell Cell) (err error) {
	if env.StackPointer-1 < env.StaticSize {
		err = ErrStackFull
		return
	}

	env.StackPointer -= 1
	err = env.Memory.Store(env.StackPointer, cell)

	return
}

// Pop removes and returns the cell at the stack pointer.
func (env *Environment) Pop() (cell Cell, err error) {
	if env.StackPointer >= env.Memory.Len() {
		err = ErrStackEmpty
		return
	}

	cell, err = env.Memory.Load(env.StackPointer)
	if err != nil {
		return
	}
	env.StackPointer += 1

	return
}

// ReadInput consumes the front of the input queue.
func (env *Environment) ReadInput() (number int64, err error) {
	if len(env.Input) == 0 {
		err = ErrInputEmpty
		return
	}

	number = env.Input[0]
	env.Input = env.Input[1:]

	return
}

// WriteOutput appends a value to the output queue.
func (env *Environment) WriteOutput(number int64) {
	env.Output = append(env.Output, number)
}

// String returns a multi-line dump: registers, queues, the static
// region size, one line per memory cell, and the symbol table. A
// mutable environment is snapshotted first.
func (env *Environment) String() (text string) {
	if env.Memory.Mode() == MEMORY_MUTABLE {
		env = env.Snapshot()
	}

	text += fmt.Sprintf("   acc: %v\n", env.Accumulator)
	text += fmt.Sprintf("    sp: %v\n", env.StackPointer)
	text += fmt.Sprintf("    pc: %v\n", env.ProgramCounter)
	text += fmt.Sprintf("static: %v\n", env.StaticSize)
	text += fmt.Sprintf(" input: %v\n", env.Input)
	text += fmt.Sprintf("output: %v\n", env.Output)

	for index, cell := range env.Memory.Cells() {
		text += fmt.Sprintf("mem[%02d]: %v\n", index, cell)
	}

	text += env.Symbols.String()

	return
}
