// Package asm implements the assembly language front end for the FP-16/1
// virtual machine.
//
// A source program is an ordered list of declarations: labels, storage
// directives (.byte, .word), named constants (.value), and instructions.
// The parser produces a Program AST, the symbol table builder assigns
// addresses, the resolver binds symbolic operand references, and the
// verifier checks operand shapes. Every AST node renders itself back to
// canonical assembly text through its String method.
package asm
