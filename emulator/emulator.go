// Copyright 2026, slimlime

// Package emulator implements the fetch-decode-execute loop for the
// FP-16/1 virtual machine. It owns the consumption policy of the
// environment's input queue and the production policy of its output
// queue; the environment itself stays passive.
package emulator

import (
	"github.com/rs/zerolog"

	"github.com/slimlime/fp-16-1/asm"
	"github.com/slimlime/fp-16-1/machine"
)

const (
	TICK_LIMIT = 10000 // Default Run tick budget.
)

// Emulator drives a loaded environment.
type Emulator struct {
	Env     *machine.Environment
	Program *asm.Program // Optional listing for line-level diagnostics.
	Log     zerolog.Logger

	Ticks int // Instructions executed since construction.
}

// NewEmulator wraps a loaded environment. Tracing is off until a
// logger is attached.
func NewEmulator(env *machine.Environment) (emu *Emulator) {
	emu = &Emulator{
		Env: env,
		Log: zerolog.Nop(),
	}

	return
}

// Step fetches and executes the instruction at the program counter.
// Stepping onto an empty cell ends the run; stepping onto a number
// cell is a runtime error.
func (emu *Emulator) Step() (done bool, err error) {
	env := emu.Env
	pc := env.ProgramCounter

	defer func() {
		if err != nil {
			lineno := 0
			if emu.Program != nil {
				decl, ok := emu.Program.Debug(pc)
				if ok {
					lineno = decl.LineNo
				}
			}
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	cell, err := env.Memory.Load(pc)
	if err != nil {
		return
	}
	if cell.Kind() == machine.CELL_EMPTY {
		// Fell off the end of the program.
		done = true
		return
	}
	in, err := cell.Instruction()
	if err != nil {
		err = ErrNotInstruction
		return
	}

	emu.Log.Debug().Int("pc", pc).Stringer("inst", in).Msg("step")

	done, err = emu.execute(in)
	if err != nil {
		return
	}

	emu.Ticks += 1

	return
}

// Run steps until the program ends or the tick budget is exhausted. A
// non-positive limit selects TICK_LIMIT.
func (emu *Emulator) Run(limit int) (err error) {
	if limit <= 0 {
		limit = TICK_LIMIT
	}

	for range limit {
		var done bool
		done, err = emu.Step()
		if done || err != nil {
			return
		}
	}

	err = ErrTickLimit

	return
}

// execute runs a single decoded instruction, advancing the program
// counter unless the instruction replaced it.
func (emu *Emulator) execute(in asm.Instruction) (done bool, err error) {
	env := emu.Env

	next := env.ProgramCounter + 1

	switch in.Op {
	case asm.OP_MOVE:
		var cell machine.Cell
		cell, err = emu.source(in, 0, &next)
		if err != nil {
			return
		}
		var set func(machine.Cell) error
		_, set, err = emu.destination(in, 1, &next)
		if err != nil {
			return
		}
		err = set(cell)
	case asm.OP_ADD, asm.OP_SUB, asm.OP_MUL, asm.OP_DIV, asm.OP_MOD:
		err = emu.arithmetic(in, &next)
	case asm.OP_CMP:
		var a, b int64
		a, err = emu.sourceNumber(in, 0, &next)
		if err != nil {
			return
		}
		b, err = emu.sourceNumber(in, 1, &next)
		if err != nil {
			return
		}
		switch {
		case a < b:
			env.Compare = -1
		case a > b:
			env.Compare = 1
		default:
			env.Compare = 0
		}
	case asm.OP_JUMP, asm.OP_BEQ, asm.OP_BNE, asm.OP_BLT, asm.OP_BGT:
		var taken bool
		switch in.Op {
		case asm.OP_JUMP:
			taken = true
		case asm.OP_BEQ:
			taken = env.Compare == 0
		case asm.OP_BNE:
			taken = env.Compare != 0
		case asm.OP_BLT:
			taken = env.Compare < 0
		case asm.OP_BGT:
			taken = env.Compare > 0
		}
		if taken {
			var addr int64
			addr, err = emu.target(in)
			if err != nil {
				return
			}
			next = int(addr)
		}
	case asm.OP_PUSH:
		var cell machine.Cell
		cell, err = emu.source(in, 0, &next)
		if err != nil {
			return
		}
		err = env.Push(cell)
	case asm.OP_POP:
		var cell machine.Cell
		cell, err = env.Pop()
		if err != nil {
			return
		}
		var set func(machine.Cell) error
		_, set, err = emu.destination(in, 0, &next)
		if err != nil {
			return
		}
		err = set(cell)
	case asm.OP_CALL:
		var addr int64
		addr, err = emu.target(in)
		if err != nil {
			return
		}
		err = env.Push(machine.NumberCell(int64(next)))
		if err != nil {
			return
		}
		next = int(addr)
	case asm.OP_RET:
		var cell machine.Cell
		cell, err = env.Pop()
		if err != nil {
			return
		}
		var addr int64
		addr, err = cell.Number()
		if err != nil {
			return
		}
		next = int(addr)
	case asm.OP_READ:
		var number int64
		number, err = env.ReadInput()
		if err != nil {
			return
		}
		var set func(machine.Cell) error
		_, set, err = emu.destination(in, 0, &next)
		if err != nil {
			return
		}
		err = set(machine.NumberCell(number))
	case asm.OP_WRITE:
		var number int64
		number, err = emu.sourceNumber(in, 0, &next)
		if err != nil {
			return
		}
		env.WriteOutput(number)
	case asm.OP_HALT:
		done = true
	default:
		err = ErrNotInstruction
	}
	if err != nil {
		return
	}

	env.ProgramCounter = next

	return
}

// arithmetic executes a two-operand arithmetic instruction:
// destination = destination op source.
func (emu *Emulator) arithmetic(in asm.Instruction, next *int) (err error) {
	a, err := emu.sourceNumber(in, 0, next)
	if err != nil {
		return
	}

	get, set, err := emu.destination(in, 1, next)
	if err != nil {
		return
	}
	cell, err := get()
	if err != nil {
		return
	}
	b, err := cell.Number()
	if err != nil {
		return
	}

	var result int64
	switch in.Op {
	case asm.OP_ADD:
		result = b + a
	case asm.OP_SUB:
		result = b - a
	case asm.OP_MUL:
		result = b * a
	case asm.OP_DIV:
		if a == 0 {
			err = ErrDivideByZero
			return
		}
		result = b / a
	case asm.OP_MOD:
		if a == 0 {
			err = ErrDivideByZero
			return
		}
		result = b % a
	}

	err = set(machine.NumberCell(result))

	return
}

// evalValue resolves a value to a number: literals evaluate to
// themselves, symbols to their symbol table binding.
func (emu *Emulator) evalValue(v asm.Value) (number int64, err error) {
	if v.Kind == asm.VALUE_NUMBER {
		number = v.Number
		return
	}

	sym, ok := emu.Env.Symbols.Lookup(v.Symbol)
	if !ok {
		err = asm.ErrSymbolMissing(v.Symbol)
		return
	}
	number = sym.Address

	return
}

// readRegister reads a register cell. SP and PC read as numbers; PC
// reads as the next instruction address.
func (emu *Emulator) readRegister(reg asm.Register, next int) (cell machine.Cell) {
	env := emu.Env

	switch reg {
	case asm.REG_ACC:
		cell = env.Accumulator
	case asm.REG_SP:
		cell = machine.NumberCell(int64(env.StackPointer))
	case asm.REG_PC:
		cell = machine.NumberCell(int64(next))
	default:
		cell = env.Registers[reg]
	}

	return
}

// writeRegister writes a register cell. SP and PC only accept numbers;
// writing PC redirects control flow.
func (emu *Emulator) writeRegister(reg asm.Register, cell machine.Cell, next *int) (err error) {
	env := emu.Env

	switch reg {
	case asm.REG_ACC:
		env.Accumulator = cell
	case asm.REG_SP:
		var number int64
		number, err = cell.Number()
		if err != nil {
			return
		}
		env.StackPointer = int(number)
	case asm.REG_PC:
		var number int64
		number, err = cell.Number()
		if err != nil {
			return
		}
		*next = int(number)
	default:
		env.Registers[reg] = cell
	}

	return
}

// location resolves an addressing location to a memory address.
func (emu *Emulator) location(loc asm.Location, next int) (addr int, err error) {
	var number int64

	switch loc.Kind {
	case asm.LOC_REGISTER:
		cell := emu.readRegister(loc.Register, next)
		number, err = cell.Number()
	case asm.LOC_VALUE:
		number, err = emu.evalValue(loc.Value)
	}
	if err != nil {
		return
	}

	addr = int(number)

	return
}

// adjust applies an increment or decrement to a register location.
func (emu *Emulator) adjust(loc asm.Location, delta int64, next *int) (err error) {
	if loc.Kind != asm.LOC_REGISTER {
		err = asm.ErrLocationInvalid
		return
	}

	cell := emu.readRegister(loc.Register, *next)
	number, err := cell.Number()
	if err != nil {
		return
	}

	err = emu.writeRegister(loc.Register, machine.NumberCell(number+delta), next)

	return
}

// destination resolves the operand at the given index into a get/set
// pair. Increment and decrement side effects apply exactly once, at
// resolve time.
func (emu *Emulator) destination(in asm.Instruction, index int, next *int) (get func() (machine.Cell, error), set func(machine.Cell) error, err error) {
	operand := in.Operands[index]
	dst, ok := operand.(asm.Destination)
	if !ok {
		src, src_ok := operand.(asm.Source)
		if !src_ok || src.Immediate {
			err = ErrOperandShape
			return
		}
		dst = src.Dst
	}

	if dst.Mode == asm.MODE_REGISTER {
		reg := dst.Register
		get = func() (machine.Cell, error) { return emu.readRegister(reg, *next), nil }
		set = func(cell machine.Cell) error { return emu.writeRegister(reg, cell, next) }
		return
	}

	var addr int
	switch dst.Mode {
	case asm.MODE_VALUE:
		var number int64
		number, err = emu.evalValue(dst.Value)
		addr = int(number)
	case asm.MODE_INDIRECT:
		addr, err = emu.location(dst.Location, *next)
	case asm.MODE_INDEXED:
		addr, err = emu.location(dst.Location, *next)
		if err != nil {
			return
		}
		var offset int64
		offset, err = emu.evalValue(dst.Value)
		addr += int(offset)
	case asm.MODE_POST_INC:
		addr, err = emu.location(dst.Location, *next)
		if err != nil {
			return
		}
		err = emu.adjust(dst.Location, 1, next)
	case asm.MODE_POST_DEC:
		addr, err = emu.location(dst.Location, *next)
		if err != nil {
			return
		}
		err = emu.adjust(dst.Location, -1, next)
	case asm.MODE_PRE_INC:
		err = emu.adjust(dst.Location, 1, next)
		if err != nil {
			return
		}
		addr, err = emu.location(dst.Location, *next)
	case asm.MODE_PRE_DEC:
		err = emu.adjust(dst.Location, -1, next)
		if err != nil {
			return
		}
		addr, err = emu.location(dst.Location, *next)
	}
	if err != nil {
		return
	}

	env := emu.Env
	get = func() (machine.Cell, error) { return env.Memory.Load(addr) }
	set = func(cell machine.Cell) error { return env.Memory.Store(addr, cell) }

	return
}

// source reads the operand at the given index.
func (emu *Emulator) source(in asm.Instruction, index int, next *int) (cell machine.Cell, err error) {
	src, ok := in.Operands[index].(asm.Source)
	if !ok {
		err = ErrOperandShape
		return
	}

	if src.Immediate {
		var number int64
		number, err = emu.evalValue(src.Value)
		if err != nil {
			return
		}
		cell = machine.NumberCell(number)
		return
	}

	get, _, err := emu.destination(in, index, next)
	if err != nil {
		return
	}
	cell, err = get()

	return
}

// sourceNumber reads the operand at the given index as a number.
func (emu *Emulator) sourceNumber(in asm.Instruction, index int, next *int) (number int64, err error) {
	cell, err := emu.source(in, index, next)
	if err != nil {
		return
	}

	number, err = cell.Number()

	return
}

// target resolves a control transfer target address.
func (emu *Emulator) target(in asm.Instruction) (addr int64, err error) {
	v, ok := in.Operands[0].(asm.Value)
	if !ok {
		err = ErrOperandShape
		return
	}

	addr, err = emu.evalValue(v)

	return
}
