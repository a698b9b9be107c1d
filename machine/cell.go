package machine

import (
	"strconv"

	"github.com/slimlime/fp-16-1/asm"
)

// CellKind is the variant tag of a memory cell.
type CellKind int

//go:generate go tool stringer -linecomment -type=CellKind
const (
	CELL_EMPTY       = CellKind(0) // empty
	CELL_NUMBER      = CellKind(1) // number
	CELL_INSTRUCTION = CellKind(2) // instruction
)

// Cell is one slot of machine memory: empty, a number, or a decoded
// instruction. A cell's variant never changes in place; assignment
// replaces the whole cell.
type Cell struct {
	kind   CellKind
	number int64
	inst   asm.Instruction
}

// EmptyCell makes an uninitialized cell.
func EmptyCell() Cell {
	return Cell{}
}

// NumberCell makes a cell holding a number.
func NumberCell(number int64) Cell {
	return Cell{kind: CELL_NUMBER, number: number}
}

// InstructionCell makes a cell holding a decoded instruction.
func InstructionCell(in asm.Instruction) Cell {
	return Cell{kind: CELL_INSTRUCTION, inst: in}
}

// Kind returns the variant tag. Callers branch on this instead of
// assuming a variant.
func (cell Cell) Kind() CellKind {
	return cell.kind
}

// Number returns the numeric content of a number cell.
func (cell Cell) Number() (number int64, err error) {
	if cell.kind != CELL_NUMBER {
		err = ErrCellType
		return
	}

	number = cell.number

	return
}

// Instruction returns the decoded instruction of an instruction cell.
func (cell Cell) Instruction() (in asm.Instruction, err error) {
	if cell.kind != CELL_INSTRUCTION {
		err = ErrCellType
		return
	}

	in = cell.inst

	return
}

// String renders the cell as assembly text. Number cells render as
// decimal, instruction cells as their assembly form, and empty cells
// as the empty string for compact memory dumps.
func (cell Cell) String() string {
	switch cell.kind {
	case CELL_NUMBER:
		return strconv.FormatInt(cell.number, 10)
	case CELL_INSTRUCTION:
		return cell.inst.String()
	}

	return ""
}
