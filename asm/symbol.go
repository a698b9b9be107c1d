package asm

import (
	"fmt"
	"iter"
	"strings"
)

// SymbolKind is the kind of a symbol table entry.
type SymbolKind int

//go:generate go tool stringer -linecomment -type=SymbolKind
const (
	SYM_LABEL   = SymbolKind(0) // label
	SYM_STORAGE = SymbolKind(1) // storage
	SYM_CONST   = SymbolKind(2) // const
)

// Symbol is a resolved symbol: a name bound to an address (labels and
// storage) or a literal (constants).
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Address int64
}

// SymbolTable maps symbolic names to addresses, preserving the order
// of definition.
type SymbolTable struct {
	order  []string
	byName map[string]Symbol
}

// define adds a symbol, rejecting duplicates.
func (st *SymbolTable) define(sym Symbol) (err error) {
	if st.byName == nil {
		st.byName = make(map[string]Symbol, 16)
	}
	_, ok := st.byName[sym.Name]
	if ok {
		err = ErrSymbolDuplicate(sym.Name)
		return
	}

	st.byName[sym.Name] = sym
	st.order = append(st.order, sym.Name)

	return
}

// Lookup finds a symbol by name.
func (st *SymbolTable) Lookup(name string) (sym Symbol, ok bool) {
	sym, ok = st.byName[name]
	return
}

// Len returns the number of symbols.
func (st *SymbolTable) Len() int {
	return len(st.order)
}

// Symbols iterates the symbols in definition order.
func (st *SymbolTable) Symbols() iter.Seq[Symbol] {
	return func(yield func(sym Symbol) bool) {
		for _, name := range st.order {
			if !yield(st.byName[name]) {
				return
			}
		}
	}
}

// String returns one line per symbol, in definition order.
func (st *SymbolTable) String() (text string) {
	var sb strings.Builder
	for sym := range st.Symbols() {
		fmt.Fprintf(&sb, "%v = %v ; %v\n", sym.Name, sym.Address, sym.Kind)
	}

	return sb.String()
}

// Build constructs the symbol table for a program. Labels bind to the
// index of the next instruction, storage declarations bind to
// sequential addresses immediately after the code region, and .value
// declarations bind their literal.
func Build(prog *Program) (table *SymbolTable, err error) {
	table = &SymbolTable{}

	code := prog.CodeSize()

	addr := 0
	storage := 0
	for _, decl := range prog.Decls {
		switch decl.Kind {
		case DECL_INSTRUCTION:
			addr += 1
			continue
		case DECL_LABEL:
			err = table.define(Symbol{Name: decl.Name, Kind: SYM_LABEL, Address: int64(addr)})
		case DECL_BYTE, DECL_WORD:
			err = table.define(Symbol{Name: decl.Name, Kind: SYM_STORAGE, Address: int64(code + storage)})
			storage += 1
		case DECL_VALUE:
			err = table.define(Symbol{Name: decl.Name, Kind: SYM_CONST, Address: decl.Value.Number})
		}
		if err != nil {
			err = ErrSyntax{LineNo: decl.LineNo, Line: decl.Line, Err: err}
			table = nil
			return
		}
	}

	return
}
