package machine

import (
	"errors"

	"github.com/slimlime/fp-16-1/translate"
)

var f = translate.From

var (
	// Cell and memory errors
	ErrCellType = errors.New(f("cell type mismatch"))
	ErrAddress  = errors.New(f("address out of range"))
	ErrFrozen   = errors.New(f("memory frozen"))

	// Loader errors
	ErrProgramSize = errors.New(f("program exceeds memory"))

	// Environment errors
	ErrStackFull  = errors.New(f("stack full"))
	ErrStackEmpty = errors.New(f("stack empty"))
	ErrInputEmpty = errors.New(f("input empty"))
)
