package asm

// Op is an instruction mnemonic.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_MOVE  = Op(0)  // MOVE
	OP_ADD   = Op(1)  // ADD
	OP_SUB   = Op(2)  // SUB
	OP_MUL   = Op(3)  // MUL
	OP_DIV   = Op(4)  // DIV
	OP_MOD   = Op(5)  // MOD
	OP_CMP   = Op(6)  // CMP
	OP_JUMP  = Op(7)  // JUMP
	OP_BEQ   = Op(8)  // BEQ
	OP_BNE   = Op(9)  // BNE
	OP_BLT   = Op(10) // BLT
	OP_BGT   = Op(11) // BGT
	OP_PUSH  = Op(12) // PUSH
	OP_POP   = Op(13) // POP
	OP_CALL  = Op(14) // CALL
	OP_RET   = Op(15) // RET
	OP_READ  = Op(16) // READ
	OP_WRITE = Op(17) // WRITE
	OP_HALT  = Op(18) // HALT
)

// Register is a machine register name.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_R0  = Register(0)  // R0
	REG_R1  = Register(1)  // R1
	REG_R2  = Register(2)  // R2
	REG_R3  = Register(3)  // R3
	REG_R4  = Register(4)  // R4
	REG_R5  = Register(5)  // R5
	REG_R6  = Register(6)  // R6
	REG_R7  = Register(7)  // R7
	REG_SP  = Register(8)  // SP
	REG_PC  = Register(9)  // PC
	REG_ACC = Register(10) // ACC
)

// REGISTER_COUNT is the number of general purpose registers (R0..R7).
const REGISTER_COUNT = 8

// Mode is an operand addressing mode.
type Mode int

const (
	MODE_REGISTER = Mode(0) // R1
	MODE_VALUE    = Mode(1) // 42 or NAME
	MODE_INDIRECT = Mode(2) // (loc)
	MODE_INDEXED  = Mode(3) // (loc)off
	MODE_POST_INC = Mode(4) // (loc)+
	MODE_POST_DEC = Mode(5) // (loc)-
	MODE_PRE_INC  = Mode(6) // +(loc)
	MODE_PRE_DEC  = Mode(7) // -(loc)
)

// Shape is the operand shape required by a mnemonic.
type Shape int

const (
	SHAPE_NONE    = Shape(0) // no operands
	SHAPE_SRC_DST = Shape(1) // source, destination
	SHAPE_SRC_SRC = Shape(2) // source, source
	SHAPE_TARGET  = Shape(3) // value target
	SHAPE_SRC     = Shape(4) // source
	SHAPE_DST     = Shape(5) // destination
)

// opShapes maps each mnemonic to its operand shape.
var opShapes = map[Op]Shape{
	OP_MOVE:  SHAPE_SRC_DST,
	OP_ADD:   SHAPE_SRC_DST,
	OP_SUB:   SHAPE_SRC_DST,
	OP_MUL:   SHAPE_SRC_DST,
	OP_DIV:   SHAPE_SRC_DST,
	OP_MOD:   SHAPE_SRC_DST,
	OP_CMP:   SHAPE_SRC_SRC,
	OP_JUMP:  SHAPE_TARGET,
	OP_BEQ:   SHAPE_TARGET,
	OP_BNE:   SHAPE_TARGET,
	OP_BLT:   SHAPE_TARGET,
	OP_BGT:   SHAPE_TARGET,
	OP_PUSH:  SHAPE_SRC,
	OP_POP:   SHAPE_DST,
	OP_CALL:  SHAPE_TARGET,
	OP_RET:   SHAPE_NONE,
	OP_READ:  SHAPE_DST,
	OP_WRITE: SHAPE_SRC,
	OP_HALT:  SHAPE_NONE,
}

// Shape returns the operand shape required by the mnemonic.
func (op Op) Shape() Shape {
	return opShapes[op]
}
