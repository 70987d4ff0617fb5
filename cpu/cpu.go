// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	goio "io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/io"
)

// Channel is a diagnostic output channel.
type Channel io.Channel

const (
	RAM_SIZE       = 256  // Bytes of RAM.
	REGISTER_COUNT = 8    // General purpose registers.
	SP             = 7    // Register reserved as the stack pointer.
	STACK_TOP      = 0xf4 // Initial stack pointer, just below the top of RAM.
)

// Flag bits, as set by CMP.
const (
	FLAG_EQUAL   = uint8(1 << 0)
	FLAG_GREATER = uint8(1 << 1)
	FLAG_LESS    = uint8(1 << 2)
)

var _cpu_defines = map[string]string{
	"RAM_SIZE":     fmt.Sprintf("%v", RAM_SIZE),
	"STACK_TOP":    fmt.Sprintf("0x%x", STACK_TOP),
	"FLAG_EQUAL":   fmt.Sprintf("0x%x", FLAG_EQUAL),
	"FLAG_GREATER": fmt.Sprintf("0x%x", FLAG_GREATER),
	"FLAG_LESS":    fmt.Sprintf("0x%x", FLAG_LESS),
}

// Cpu is the simulation context for the LS8.
type Cpu struct {
	Verbose bool        // Set to enable verbose logging.
	Trace   goio.Writer // If set, receives a trace line before each instruction.
	Console Channel     // Receives PRN and PRA output.

	Ram      [RAM_SIZE]uint8       // Memory.
	Register [REGISTER_COUNT]uint8 // Register bank. R7 is the stack pointer.
	Fl       uint8                 // Flags, as set by CMP.
	Pc       uint16                // Address of the next instruction.
	Halted   bool                  // Set once HLT has executed.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears RAM, registers and flags.
// - Sets the stack pointer to STACK_TOP.
// - Sets the PC to 0, and leaves the halted state.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Ram[:])
	clear(cpu.Register[:])
	cpu.Register[SP] = STACK_TOP
	cpu.Fl = 0
	cpu.Pc = 0
	cpu.Halted = false
	cpu.Ticks = 0

	if cpu.Console != nil {
		cpu.Console.Rewind()
	}
}

// Load writes a program image into RAM, starting at address 0.
func (cpu *Cpu) Load(image iter.Seq[uint8]) (err error) {
	var address uint16
	for value := range image {
		err = cpu.Write(address, value)
		if err != nil {
			return
		}
		address++
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", address)
	}

	return
}

// Read returns the byte of RAM at address.
func (cpu *Cpu) Read(address uint16) (value uint8, err error) {
	if int(address) >= len(cpu.Ram) {
		err = ErrAddress(address)
		return
	}

	value = cpu.Ram[address]
	return
}

// Write sets the byte of RAM at address.
func (cpu *Cpu) Write(address uint16, value uint8) (err error) {
	if int(address) >= len(cpu.Ram) {
		err = ErrAddress(address)
		return
	}

	cpu.Ram[address] = value
	return
}

// register returns the register named by an operand byte.
func (cpu *Cpu) register(index uint8) (reg *uint8, err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegister(index)
		return
	}

	reg = &cpu.Register[index]
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %02X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %03b\n", "fl", cpu.Fl)
	for n, val := range cpu.Register {
		name := fmt.Sprintf("r%d", n)
		if n == SP {
			name = "sp"
		}
		text += fmt.Sprintf("% 5s: %02X\n", name, val)
	}
	if cpu.Halted {
		text += fmt.Sprintf("% 5s\n", "halt")
	}

	return
}

// trace writes the PC, the next three bytes of RAM, and the registers.
func (cpu *Cpu) trace() {
	line := fmt.Sprintf("TRACE: %02X |", cpu.Pc)
	for n := range 3 {
		value, err := cpu.Read(cpu.Pc + uint16(n))
		if err != nil {
			line += " --"
		} else {
			line += fmt.Sprintf(" %02X", value)
		}
	}
	line += " |"
	for _, val := range cpu.Register {
		line += fmt.Sprintf(" %02X", val)
	}

	fmt.Fprintln(cpu.Trace, line)
}

// FetchCode fetches the instruction at the PC, and its operands.
func (cpu *Cpu) FetchCode() (code Code, operands [2]uint8, err error) {
	value, err := cpu.Read(cpu.Pc)
	if err != nil {
		return
	}
	code = Code(value)

	for n := range min(code.Operands(), len(operands)) {
		operands[n], err = cpu.Read(cpu.Pc + 1 + uint16(n))
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	if cpu.Trace != nil {
		cpu.trace()
	}

	code, operands, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code, operands[0], operands[1])
	if err != nil {
		return
	}

	return
}

// Run executes instructions until HLT, or the first error.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single instruction, then advances the PC past it
// unless the instruction sets the PC itself.
func (cpu *Cpu) Execute(code Code, a, b uint8) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	op, err := Decode(code)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%02x: %v %v", cpu.Pc, code, op.Kind)
	}

	switch op.Kind {
	case KIND_NOOP:
		// pass
	case KIND_HALT:
		cpu.Halted = true
		cpu.Ticks++
		return
	case KIND_OPERATION:
		err = op.Exec(cpu, code, a, b)
		if err != nil {
			return
		}
	}

	if !code.SetsPc() {
		cpu.Pc += uint16(code.Size())
	}

	cpu.Ticks++

	return
}

// opLdi sets a register to an immediate value.
func (cpu *Cpu) opLdi(code Code, a, b uint8) (err error) {
	reg, err := cpu.register(a)
	if err != nil {
		return
	}

	*reg = b
	return
}

func (cpu *Cpu) opPrn(code Code, a, b uint8) (err error) {
	reg, err := cpu.register(a)
	if err != nil {
		return
	}

	if cpu.Console == nil {
		err = ErrChannelInvalid
		return
	}

	err = cpu.Console.SendNumber(*reg)
	return
}

func (cpu *Cpu) opPra(code Code, a, b uint8) (err error) {
	reg, err := cpu.register(a)
	if err != nil {
		return
	}

	if cpu.Console == nil {
		err = ErrChannelInvalid
		return
	}

	err = cpu.Console.SendChar(*reg)
	return
}

// opLd loads register a from the address in register b.
func (cpu *Cpu) opLd(code Code, a, b uint8) (err error) {
	dst, err := cpu.register(a)
	if err != nil {
		return
	}
	src, err := cpu.register(b)
	if err != nil {
		return
	}

	value, err := cpu.Read(uint16(*src))
	if err != nil {
		return
	}

	*dst = value
	return
}

// opSt stores register b to the address in register a.
func (cpu *Cpu) opSt(code Code, a, b uint8) (err error) {
	dst, err := cpu.register(a)
	if err != nil {
		return
	}
	src, err := cpu.register(b)
	if err != nil {
		return
	}

	err = cpu.Write(uint16(*dst), *src)
	return
}

// opPush pushes register a. The stack pointer is decremented before
// register a is read, so PUSH R7 stores the new stack pointer.
func (cpu *Cpu) opPush(code Code, a, b uint8) (err error) {
	reg, err := cpu.register(a)
	if err != nil {
		return
	}

	cpu.Register[SP]--
	err = cpu.Write(uint16(cpu.Register[SP]), *reg)
	return
}

// opPop stores the value at the stack pointer in register a, then
// increments the stack pointer, so POP R7 leaves the popped value plus one.
func (cpu *Cpu) opPop(code Code, a, b uint8) (err error) {
	reg, err := cpu.register(a)
	if err != nil {
		return
	}

	value, err := cpu.Peek()
	if err != nil {
		return
	}

	*reg = value
	cpu.Register[SP]++
	return
}

// opCall pushes the address after the CALL, and jumps to register a.
// A return address past the end of RAM is not representable on the stack.
func (cpu *Cpu) opCall(code Code, a, b uint8) (err error) {
	reg, err := cpu.register(a)
	if err != nil {
		return
	}

	ret := cpu.Pc + uint16(code.Size())
	if ret >= RAM_SIZE {
		err = ErrAddress(ret)
		return
	}

	err = cpu.Push(uint8(ret))
	if err != nil {
		return
	}

	cpu.Pc = uint16(*reg)
	return
}

func (cpu *Cpu) opRet(code Code, a, b uint8) (err error) {
	value, err := cpu.Pop()
	if err != nil {
		return
	}

	cpu.Pc = uint16(value)
	return
}

// opJump jumps to register a when the condition of the instruction
// holds for the flags, and otherwise steps over the instruction.
func (cpu *Cpu) opJump(code Code, a, b uint8) (err error) {
	reg, err := cpu.register(a)
	if err != nil {
		return
	}

	equal := (cpu.Fl & FLAG_EQUAL) != 0
	greater := (cpu.Fl & FLAG_GREATER) != 0
	less := (cpu.Fl & FLAG_LESS) != 0

	var taken bool
	switch code {
	case CODE_JMP:
		taken = true
	case CODE_JEQ:
		taken = equal
	case CODE_JNE:
		taken = !equal
	case CODE_JGT:
		taken = greater
	case CODE_JLT:
		taken = less
	case CODE_JLE:
		taken = less || equal
	case CODE_JGE:
		taken = greater || equal
	default:
		err = ErrOpcodeDecode
		return
	}

	if taken {
		cpu.Pc = uint16(*reg)
	} else {
		cpu.Pc += uint16(code.Size())
	}

	return
}
