// Package cpu implements the LS-8 microprocessor and its assembler.
//
// The LS-8 is an 8-bit machine with eight one-byte registers (R0-R7),
// 256 bytes of flat memory, and a program counter (PC). Register R7 is the
// stack pointer (SP); the stack grows down from STACK_TOP. Instructions are
// one opcode byte followed by zero, one or two operand bytes, the count being
// encoded in the two high bits of the opcode.
//
// The assembler provides a small assembly language for the LS-8 instruction
// set, supporting macros, labels, equates, and compile-time expression
// evaluation.
package cpu
