package machine

import (
	"io"
	"slices"

	"github.com/slimlime/fp-16-1/asm"
)

const (
	MEMORY_SIZE = 20 // Default memory capacity in cells.
)

// Config controls environment construction. The zero value falls back
// to the defaults: MEMORY_SIZE cells and the default input seed.
type Config struct {
	Capacity int     // Memory capacity in cells.
	Input    []int64 // Initial input queue seed.
}

// DefaultConfig seeds a single queued input value, standing in for
// interactive input.
var DefaultConfig = Config{
	Capacity: MEMORY_SIZE,
	Input:    []int64{5},
}

// LoadFromSource parses assembly source and loads it into a fresh
// environment ready for execution.
func LoadFromSource(input io.Reader, cfg Config) (env *Environment, err error) {
	parser := &asm.Parser{}
	prog, err := parser.Parse(input)
	if err != nil {
		return
	}

	env, err = LoadProgram(prog, cfg)

	return
}

// LoadProgram runs the load pipeline over a parsed program: build the
// symbol table, resolve references, verify, then write the instruction
// declarations into memory one cell each, starting at address zero.
// The returned environment has mutable memory and its static size set
// to the number of instructions written.
func LoadProgram(prog *asm.Program, cfg Config) (env *Environment, err error) {
	table, err := asm.Build(prog)
	if err != nil {
		return
	}

	resolved, err := asm.Resolve(prog, table)
	if err != nil {
		return
	}

	err = asm.Verify(prog, resolved)
	if err != nil {
		return
	}

	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultConfig.Capacity
	}
	if cfg.Input == nil {
		cfg.Input = DefaultConfig.Input
	}

	if prog.CodeSize() > cfg.Capacity {
		err = ErrProgramSize
		return
	}

	env = NewEnvironment(cfg.Capacity)
	env.Symbols = resolved
	env.Input = slices.Clone(cfg.Input)
	env.Memory = env.Memory.Thaw()

	for addr, in := range prog.Instructions() {
		err = env.Memory.Store(addr, InstructionCell(in))
		if err != nil {
			env = nil
			return
		}
	}
	env.StaticSize = prog.CodeSize()

	return
}
