// Package cpu implements the LS8 microprocessor and its assembler.
//
// The LS8 has 256 bytes of RAM, eight 8-bit general-purpose registers
// (R7 doubles as the stack pointer), a flags register set by CMP, and a
// program counter. Instructions are a single byte, followed by up to two
// operand bytes; the instruction byte itself encodes its operand count,
// whether it is an ALU operation, and whether it sets the PC itself.
//
// The assembler provides a small assembly language for the LS8 instruction
// set, supporting macros, labels, equates, data directives, and compile-time
// expression evaluation.
package cpu
