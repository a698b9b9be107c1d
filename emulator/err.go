package emulator

import (
	"errors"

	"github.com/slimlime/fp-16-1/translate"
)

var f = translate.From

var (
	ErrNotInstruction = errors.New(f("cell is not an instruction"))
	ErrOperandShape   = errors.New(f("operand shape invalid"))
	ErrDivideByZero   = errors.New(f("divide by zero"))
	ErrTickLimit      = errors.New(f("tick limit exceeded"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
