// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// alu executes the ALU operation named by the full instruction byte.
func (cpu *Cpu) alu(code Code, a, b uint8) (err error) {
	op, ok := aluSet[code]
	if !ok {
		err = ErrOpcodeAlu
		return
	}

	err = op.Exec(cpu, code, a, b)
	return
}

// unary applies fn to register a.
func (cpu *Cpu) unary(a uint8, fn func(input uint8) uint8) (err error) {
	reg, err := cpu.register(a)
	if err != nil {
		return
	}

	*reg = fn(*reg)
	return
}

// binary applies fn to registers a and b, storing the result in a.
// Nothing is stored if fn fails.
func (cpu *Cpu) binary(a, b uint8, fn func(input, value uint8) (uint8, error)) (err error) {
	reg_a, err := cpu.register(a)
	if err != nil {
		return
	}
	reg_b, err := cpu.register(b)
	if err != nil {
		return
	}

	output, err := fn(*reg_a, *reg_b)
	if err != nil {
		return
	}

	*reg_a = output
	return
}

func (cpu *Cpu) aluInc(code Code, a, b uint8) error {
	return cpu.unary(a, func(input uint8) uint8 { return input + 1 })
}

func (cpu *Cpu) aluDec(code Code, a, b uint8) error {
	return cpu.unary(a, func(input uint8) uint8 { return input - 1 })
}

func (cpu *Cpu) aluNot(code Code, a, b uint8) error {
	return cpu.unary(a, func(input uint8) uint8 { return ^input })
}

func (cpu *Cpu) aluAdd(code Code, a, b uint8) error {
	return cpu.binary(a, b, func(input, value uint8) (uint8, error) { return input + value, nil })
}

func (cpu *Cpu) aluSub(code Code, a, b uint8) error {
	return cpu.binary(a, b, func(input, value uint8) (uint8, error) { return input - value, nil })
}

func (cpu *Cpu) aluMul(code Code, a, b uint8) error {
	return cpu.binary(a, b, func(input, value uint8) (uint8, error) { return input * value, nil })
}

func (cpu *Cpu) aluDiv(code Code, a, b uint8) error {
	return cpu.binary(a, b, func(input, value uint8) (output uint8, err error) {
		if value == 0 {
			err = ErrDivideByZero
			return
		}
		output = input / value
		return
	})
}

func (cpu *Cpu) aluMod(code Code, a, b uint8) error {
	return cpu.binary(a, b, func(input, value uint8) (output uint8, err error) {
		if value == 0 {
			err = ErrDivideByZero
			return
		}
		output = input % value
		return
	})
}

func (cpu *Cpu) aluAnd(code Code, a, b uint8) error {
	return cpu.binary(a, b, func(input, value uint8) (uint8, error) { return input & value, nil })
}

func (cpu *Cpu) aluOr(code Code, a, b uint8) error {
	return cpu.binary(a, b, func(input, value uint8) (uint8, error) { return input | value, nil })
}

func (cpu *Cpu) aluXor(code Code, a, b uint8) error {
	return cpu.binary(a, b, func(input, value uint8) (uint8, error) { return input ^ value, nil })
}

// Shifts of 8 or more clear the register.
func (cpu *Cpu) aluShl(code Code, a, b uint8) error {
	return cpu.binary(a, b, func(input, value uint8) (uint8, error) { return input << value, nil })
}

func (cpu *Cpu) aluShr(code Code, a, b uint8) error {
	return cpu.binary(a, b, func(input, value uint8) (uint8, error) { return input >> value, nil })
}

// aluCmp replaces the flags with the comparison of registers a and b.
func (cpu *Cpu) aluCmp(code Code, a, b uint8) (err error) {
	reg_a, err := cpu.register(a)
	if err != nil {
		return
	}
	reg_b, err := cpu.register(b)
	if err != nil {
		return
	}

	switch {
	case *reg_a < *reg_b:
		cpu.Fl = FLAG_LESS
	case *reg_a > *reg_b:
		cpu.Fl = FLAG_GREATER
	default:
		cpu.Fl = FLAG_EQUAL
	}

	return
}
