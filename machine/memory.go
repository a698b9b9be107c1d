package machine

import (
	"iter"
	"slices"
)

// MemoryMode is the mode tag of a memory representation.
type MemoryMode int

const (
	MEMORY_FROZEN  = MemoryMode(0) // immutable snapshot, safe to share
	MEMORY_MUTABLE = MemoryMode(1) // in-place writable
)

// Memory is a fixed-capacity, zero-indexed array of cells. It is in
// exactly one mode at a time: frozen for inspection and sharing, or
// mutable for loading and execution. Thaw and Freeze convert between
// the modes by copying, so the result never aliases the source.
type Memory struct {
	mode  MemoryMode
	cells []Cell
}

// NewMemory makes a frozen memory of the given capacity with every
// cell empty.
func NewMemory(capacity int) Memory {
	return Memory{
		mode:  MEMORY_FROZEN,
		cells: make([]Cell, capacity),
	}
}

// Mode returns the active mode.
func (mem Memory) Mode() MemoryMode {
	return mem.mode
}

// Len returns the capacity in cells.
func (mem Memory) Len() int {
	return len(mem.cells)
}

// Thaw returns an independent mutable copy. Mutating the result never
// affects the source.
func (mem Memory) Thaw() Memory {
	return Memory{
		mode:  MEMORY_MUTABLE,
		cells: slices.Clone(mem.cells),
	}
}

// Freeze returns an independent frozen copy.
func (mem Memory) Freeze() Memory {
	return Memory{
		mode:  MEMORY_FROZEN,
		cells: slices.Clone(mem.cells),
	}
}

// Load reads the cell at index.
func (mem Memory) Load(index int) (cell Cell, err error) {
	if index < 0 || index >= len(mem.cells) {
		err = ErrAddress
		return
	}

	cell = mem.cells[index]

	return
}

// Store replaces the cell at index. The memory must be mutable.
func (mem Memory) Store(index int, cell Cell) (err error) {
	if mem.mode != MEMORY_MUTABLE {
		err = ErrFrozen
		return
	}
	if index < 0 || index >= len(mem.cells) {
		err = ErrAddress
		return
	}

	mem.cells[index] = cell

	return
}

// Cells iterates the cells in index order.
func (mem Memory) Cells() iter.Seq2[int, Cell] {
	return func(yield func(index int, cell Cell) bool) {
		for index, cell := range mem.cells {
			if !yield(index, cell) {
				return
			}
		}
	}
}
