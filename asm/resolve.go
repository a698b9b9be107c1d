package asm

// locationValues collects the value referenced by a location, if any.
func locationValues(loc Location) (vals []Value) {
	if loc.Kind == LOC_VALUE {
		vals = []Value{loc.Value}
	}

	return
}

// destinationValues collects every value referenced by a destination.
func destinationValues(dst Destination) (vals []Value) {
	switch dst.Mode {
	case MODE_VALUE:
		vals = []Value{dst.Value}
	case MODE_INDEXED:
		vals = append(locationValues(dst.Location), dst.Value)
	case MODE_INDIRECT, MODE_POST_INC, MODE_POST_DEC, MODE_PRE_INC, MODE_PRE_DEC:
		vals = locationValues(dst.Location)
	}

	return
}

// operandValues collects every value referenced by an operand.
func operandValues(operand Operand) (vals []Value) {
	switch o := operand.(type) {
	case Value:
		vals = []Value{o}
	case Source:
		if o.Immediate {
			vals = []Value{o.Value}
		} else {
			vals = destinationValues(o.Dst)
		}
	case Destination:
		vals = destinationValues(o)
	}

	return
}

// Resolve checks that every symbolic operand reference in the program
// is bound by the table, and returns the resolved table.
func Resolve(prog *Program, table *SymbolTable) (resolved *SymbolTable, err error) {
	for _, decl := range prog.Decls {
		if decl.Kind != DECL_INSTRUCTION {
			continue
		}
		for _, operand := range decl.Inst.Operands {
			for _, v := range operandValues(operand) {
				if v.Kind != VALUE_SYMBOL {
					continue
				}
				_, ok := table.Lookup(v.Symbol)
				if !ok {
					err = ErrSyntax{LineNo: decl.LineNo, Line: decl.Line, Err: ErrSymbolMissing(v.Symbol)}
					return
				}
			}
		}
	}

	resolved = table

	return
}

// verifyDestination checks addressing mode constraints on a writable
// operand. Increment and decrement forms mutate their location, so the
// location must be a register.
func verifyDestination(dst Destination) (err error) {
	switch dst.Mode {
	case MODE_POST_INC, MODE_POST_DEC, MODE_PRE_INC, MODE_PRE_DEC:
		if dst.Location.Kind != LOC_REGISTER {
			err = ErrLocationInvalid
		}
	}

	return
}

// verifyShape checks that the operands match the mnemonic's shape.
func verifyShape(in Instruction) (err error) {
	shape := in.Op.Shape()
	if len(in.Operands) != shape.arity() {
		return ErrShapeInvalid
	}

	kinds := make([]bool, 0, 2) // true for source-position operands
	switch shape {
	case SHAPE_SRC_DST:
		kinds = append(kinds, true, false)
	case SHAPE_SRC_SRC:
		kinds = append(kinds, true, true)
	case SHAPE_SRC:
		kinds = append(kinds, true)
	case SHAPE_DST:
		kinds = append(kinds, false)
	case SHAPE_TARGET:
		_, ok := in.Operands[0].(Value)
		if !ok {
			return ErrShapeInvalid
		}
		return
	case SHAPE_NONE:
		return
	}

	for n, is_src := range kinds {
		if is_src {
			src, ok := in.Operands[n].(Source)
			if !ok {
				return ErrShapeInvalid
			}
			if !src.Immediate {
				err = verifyDestination(src.Dst)
				if err != nil {
					return
				}
			}
			continue
		}

		dst, ok := in.Operands[n].(Destination)
		if !ok {
			return ErrShapeInvalid
		}
		err = verifyDestination(dst)
		if err != nil {
			return
		}
	}

	return
}

// Verify checks the resolved program against the static rules: operand
// shapes per mnemonic, register locations for increment and decrement
// addressing, and label or constant targets for control transfer.
func Verify(prog *Program, table *SymbolTable) (err error) {
	for _, decl := range prog.Decls {
		if decl.Kind != DECL_INSTRUCTION {
			continue
		}

		err = verifyShape(decl.Inst)
		if err == nil && decl.Inst.Op.Shape() == SHAPE_TARGET {
			target := decl.Inst.Operands[0].(Value)
			if target.Kind == VALUE_SYMBOL {
				sym, _ := table.Lookup(target.Symbol)
				if sym.Kind == SYM_STORAGE {
					err = ErrTargetInvalid
				}
			}
		}
		if err != nil {
			err = ErrSyntax{LineNo: decl.LineNo, Line: decl.Line, Err: err}
			return
		}
	}

	return
}
