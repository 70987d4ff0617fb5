// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"maps"
	"slices"
)

// Code is a single LS8 instruction byte, laid out as AABCDDDD:
//
//	AA   number of operand bytes that follow (0-2)
//	B    set for ALU operations
//	C    set when the instruction sets the PC itself
//	DDDD instruction identifier
type Code uint8

// Operands returns the number of operand bytes following the instruction.
func (code Code) Operands() int {
	return int(code >> 6)
}

// IsAlu returns true if the instruction is routed to the ALU.
func (code Code) IsAlu() bool {
	return ((code >> 5) & 1) == 1
}

// SetsPc returns true if the instruction is responsible for the PC.
// The execution loop does not advance the PC after such instructions.
func (code Code) SetsPc() bool {
	return ((code >> 4) & 1) == 1
}

// Ident returns the instruction identifier within its class.
func (code Code) Ident() uint8 {
	return uint8(code & 0xf)
}

// Size returns the total size in bytes of the instruction and its operands.
func (code Code) Size() int {
	return code.Operands() + 1
}

// String returns the mnemonic of a known instruction, or its hex value.
func (code Code) String() string {
	op, ok := Lookup(code)
	if !ok {
		return fmt.Sprintf("0x%02x", uint8(code))
	}
	return op.Name
}

// Instruction bytes.
const (
	CODE_NOP  = Code(0b00000000)
	CODE_HLT  = Code(0b00000001)
	CODE_RET  = Code(0b00010001)
	CODE_PUSH = Code(0b01000101)
	CODE_POP  = Code(0b01000110)
	CODE_PRN  = Code(0b01000111)
	CODE_PRA  = Code(0b01001000)
	CODE_CALL = Code(0b01010000)
	CODE_JMP  = Code(0b01010100)
	CODE_JEQ  = Code(0b01010101)
	CODE_JNE  = Code(0b01010110)
	CODE_JGT  = Code(0b01010111)
	CODE_JLT  = Code(0b01011000)
	CODE_JLE  = Code(0b01011001)
	CODE_JGE  = Code(0b01011010)
	CODE_LDI  = Code(0b10000010)
	CODE_LD   = Code(0b10000011)
	CODE_ST   = Code(0b10000100)

	CODE_INC = Code(0b01100101)
	CODE_DEC = Code(0b01100110)
	CODE_NOT = Code(0b01101001)
	CODE_ADD = Code(0b10100000)
	CODE_SUB = Code(0b10100001)
	CODE_MUL = Code(0b10100010)
	CODE_DIV = Code(0b10100011)
	CODE_MOD = Code(0b10100100)
	CODE_CMP = Code(0b10100111)
	CODE_AND = Code(0b10101000)
	CODE_OR  = Code(0b10101010)
	CODE_XOR = Code(0b10101011)
	CODE_SHL = Code(0b10101100)
	CODE_SHR = Code(0b10101101)
)

// Kind is the tagged variant of a decoded instruction.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_NOOP      = Kind(0) // noop
	KIND_HALT      = Kind(1) // halt
	KIND_OPERATION = Kind(2) // operation
)

// CodeArg is the type of an operand byte.
type CodeArg int

const (
	ARG_REG = CodeArg(0) // Register index, R0-R7.
	ARG_IMM = CodeArg(1) // Immediate byte.
)

// Handler executes one instruction against the machine state.
// Operand bytes not used by the instruction are zero.
type Handler func(cpu *Cpu, code Code, a, b uint8) error

// Operation is an entry in the static instruction tables.
type Operation struct {
	Code Code
	Name string
	Kind Kind
	Args []CodeArg
	Exec Handler // Only set for KIND_OPERATION.
}

var (
	argsNone = []CodeArg{}
	argsR    = []CodeArg{ARG_REG}
	argsRR   = []CodeArg{ARG_REG, ARG_REG}
	argsRI   = []CodeArg{ARG_REG, ARG_IMM}
)

// instructionSet holds the control and data instructions.
var instructionSet = map[Code]*Operation{
	CODE_NOP:  {CODE_NOP, "NOP", KIND_NOOP, argsNone, nil},
	CODE_HLT:  {CODE_HLT, "HLT", KIND_HALT, argsNone, nil},
	CODE_RET:  {CODE_RET, "RET", KIND_OPERATION, argsNone, (*Cpu).opRet},
	CODE_PUSH: {CODE_PUSH, "PUSH", KIND_OPERATION, argsR, (*Cpu).opPush},
	CODE_POP:  {CODE_POP, "POP", KIND_OPERATION, argsR, (*Cpu).opPop},
	CODE_PRN:  {CODE_PRN, "PRN", KIND_OPERATION, argsR, (*Cpu).opPrn},
	CODE_PRA:  {CODE_PRA, "PRA", KIND_OPERATION, argsR, (*Cpu).opPra},
	CODE_CALL: {CODE_CALL, "CALL", KIND_OPERATION, argsR, (*Cpu).opCall},
	CODE_JMP:  {CODE_JMP, "JMP", KIND_OPERATION, argsR, (*Cpu).opJump},
	CODE_JEQ:  {CODE_JEQ, "JEQ", KIND_OPERATION, argsR, (*Cpu).opJump},
	CODE_JNE:  {CODE_JNE, "JNE", KIND_OPERATION, argsR, (*Cpu).opJump},
	CODE_JGT:  {CODE_JGT, "JGT", KIND_OPERATION, argsR, (*Cpu).opJump},
	CODE_JLT:  {CODE_JLT, "JLT", KIND_OPERATION, argsR, (*Cpu).opJump},
	CODE_JLE:  {CODE_JLE, "JLE", KIND_OPERATION, argsR, (*Cpu).opJump},
	CODE_JGE:  {CODE_JGE, "JGE", KIND_OPERATION, argsR, (*Cpu).opJump},
	CODE_LDI:  {CODE_LDI, "LDI", KIND_OPERATION, argsRI, (*Cpu).opLdi},
	CODE_LD:   {CODE_LD, "LD", KIND_OPERATION, argsRR, (*Cpu).opLd},
	CODE_ST:   {CODE_ST, "ST", KIND_OPERATION, argsRR, (*Cpu).opSt},
}

// aluSet holds the ALU operations, keyed by the full instruction byte.
var aluSet = map[Code]*Operation{
	CODE_INC: {CODE_INC, "INC", KIND_OPERATION, argsR, (*Cpu).aluInc},
	CODE_DEC: {CODE_DEC, "DEC", KIND_OPERATION, argsR, (*Cpu).aluDec},
	CODE_NOT: {CODE_NOT, "NOT", KIND_OPERATION, argsR, (*Cpu).aluNot},
	CODE_ADD: {CODE_ADD, "ADD", KIND_OPERATION, argsRR, (*Cpu).aluAdd},
	CODE_SUB: {CODE_SUB, "SUB", KIND_OPERATION, argsRR, (*Cpu).aluSub},
	CODE_MUL: {CODE_MUL, "MUL", KIND_OPERATION, argsRR, (*Cpu).aluMul},
	CODE_DIV: {CODE_DIV, "DIV", KIND_OPERATION, argsRR, (*Cpu).aluDiv},
	CODE_MOD: {CODE_MOD, "MOD", KIND_OPERATION, argsRR, (*Cpu).aluMod},
	CODE_CMP: {CODE_CMP, "CMP", KIND_OPERATION, argsRR, (*Cpu).aluCmp},
	CODE_AND: {CODE_AND, "AND", KIND_OPERATION, argsRR, (*Cpu).aluAnd},
	CODE_OR:  {CODE_OR, "OR", KIND_OPERATION, argsRR, (*Cpu).aluOr},
	CODE_XOR: {CODE_XOR, "XOR", KIND_OPERATION, argsRR, (*Cpu).aluXor},
	CODE_SHL: {CODE_SHL, "SHL", KIND_OPERATION, argsRR, (*Cpu).aluShl},
	CODE_SHR: {CODE_SHR, "SHR", KIND_OPERATION, argsRR, (*Cpu).aluShr},
}

// aluDispatch is the decoded form of every ALU-bit instruction not in
// instructionSet. The ALU resolves the full byte when it executes.
var aluDispatch = &Operation{Name: "ALU", Kind: KIND_OPERATION, Exec: (*Cpu).alu}

// Decode resolves an instruction byte to its operation.
func Decode(code Code) (op *Operation, err error) {
	op, ok := instructionSet[code]
	if ok {
		return
	}

	if code.IsAlu() {
		op = aluDispatch
		return
	}

	op = nil
	err = ErrOpcodeDecode
	return
}

// Lookup finds the operation of a known instruction byte in either table.
func Lookup(code Code) (op *Operation, ok bool) {
	op, ok = instructionSet[code]
	if !ok {
		op, ok = aluSet[code]
	}
	return
}

// Operations returns all known operations, ordered by instruction byte.
func Operations() (ops []*Operation) {
	codes := slices.Collect(maps.Keys(instructionSet))
	codes = append(codes, slices.Collect(maps.Keys(aluSet))...)
	slices.Sort(codes)
	for _, code := range codes {
		op, _ := Lookup(code)
		ops = append(ops, op)
	}
	return
}
