package asm

import (
	"errors"

	"github.com/slimlime/fp-16-1/translate"
)

var f = translate.From

var (
	// Parser errors
	ErrValueSyntax    = errors.New(f(".value syntax"))
	ErrStorageSyntax  = errors.New(f(".byte/.word syntax"))
	ErrLabelSyntax    = errors.New(f("label syntax"))
	ErrOpcodeInvalid  = errors.New(f("opcode invalid"))
	ErrOperandMissing = errors.New(f("operand missing"))
	ErrOperandExtra   = errors.New(f("excessive operands"))
	ErrOperandInvalid = errors.New(f("operand invalid"))

	// Verifier errors
	ErrShapeInvalid    = errors.New(f("operand shape invalid"))
	ErrTargetInvalid   = errors.New(f("target invalid"))
	ErrLocationInvalid = errors.New(f("location must be a register"))
)

// ErrSyntax indicates the source location of a front end error.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value", string(err))
}

type ErrParseOperand string

func (err ErrParseOperand) Error() string {
	return f("'%v' is not an operand", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSymbolMissing string

func (err ErrSymbolMissing) Error() string {
	return f("symbol %v missing", string(err))
}

type ErrSymbolDuplicate string

func (err ErrSymbolDuplicate) Error() string {
	return f("symbol %v duplicated", string(err))
}
