// Package machine implements the FP-16/1 execution environment: typed
// memory cells, a dual-mode (mutable/frozen) memory representation,
// the machine state record, and the loader that turns parsed assembly
// into a ready-to-run environment.
//
// Memory is a fixed-size array of cells. A cell holds nothing, a
// number, or a decoded instruction. The loader writes one instruction
// per cell starting at address zero; the region above the code holds
// variables and the downward-growing stack.
package machine
