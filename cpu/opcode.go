package cpu

import (
	"fmt"
)

// Opcode is an LS-8 instruction byte, encoded as AABCDDDD:
//   - AA   number of operand bytes that follow
//   - B    instruction is dispatched to the ALU
//   - C    instruction sets the PC directly
//   - DDDD instruction identifier
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_HLT  = Opcode(0b0000_0001) // HLT
	OP_PUSH = Opcode(0b0100_0101) // PUSH
	OP_POP  = Opcode(0b0100_0110) // POP
	OP_PRN  = Opcode(0b0100_0111) // PRN
	OP_LDI  = Opcode(0b1000_0010) // LDI
	OP_ADD  = Opcode(0b1010_0000) // ADD
	OP_MUL  = Opcode(0b1010_0010) // MUL
)

const (
	opcodeOperandShift = 6
	opcodeAluFlag      = 0b0010_0000
	opcodeSetsPcFlag   = 0b0001_0000
	opcodeIdMask       = 0b0000_1111
)

// opcodeTable is the closed set of decodable opcodes.
var opcodeTable = map[Opcode]bool{
	OP_HLT:  true,
	OP_PUSH: true,
	OP_POP:  true,
	OP_PRN:  true,
	OP_LDI:  true,
	OP_ADD:  true,
	OP_MUL:  true,
}

// mnemonicMap maps the assembler mnemonics to opcodes.
var mnemonicMap = map[string]Opcode{
	"hlt":  OP_HLT,
	"push": OP_PUSH,
	"pop":  OP_POP,
	"prn":  OP_PRN,
	"ldi":  OP_LDI,
	"add":  OP_ADD,
	"mul":  OP_MUL,
}

// Decode resolves an instruction byte to an opcode.
func Decode(b uint8) (op Opcode, err error) {
	op = Opcode(b)
	if !op.Valid() {
		err = ErrOpcode(b)
	}
	return
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	return opcodeTable[op]
}

// Operands returns the number of operand bytes following the opcode.
func (op Opcode) Operands() int {
	return int(op >> opcodeOperandShift)
}

// IsAlu returns true if the opcode is executed by the ALU.
func (op Opcode) IsAlu() bool {
	return (op & opcodeAluFlag) != 0
}

// SetsPc returns true if the opcode writes the PC itself.
func (op Opcode) SetsPc() bool {
	return (op & opcodeSetsPcFlag) != 0
}

// AluOp returns the ALU operation of an ALU opcode.
func (op Opcode) AluOp() AluOp {
	return AluOp(op & opcodeIdMask)
}

// Instruction is an opcode and its operand bytes, fetched from memory.
type Instruction struct {
	Opcode  Opcode
	Operand [2]uint8
}

// Size is the number of memory bytes used by the instruction.
func (inst Instruction) Size() int {
	return 1 + inst.Opcode.Operands()
}

// Bytes returns the memory encoding of the instruction.
func (inst Instruction) Bytes() []uint8 {
	return append([]uint8{uint8(inst.Opcode)}, inst.Operand[:inst.Opcode.Operands()]...)
}

func (inst Instruction) String() (text string) {
	text = inst.Opcode.String()
	for n := range inst.Opcode.Operands() {
		text += fmt.Sprintf(" 0x%02x", inst.Operand[n])
	}
	return
}
