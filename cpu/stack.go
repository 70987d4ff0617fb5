package cpu

// Push decrements the stack pointer, then stores value at its address.
func (cpu *Cpu) Push(value uint8) (err error) {
	cpu.Register[SP]--
	err = cpu.Write(uint16(cpu.Register[SP]), value)
	return
}

// Pop loads the value at the stack pointer, then increments it.
func (cpu *Cpu) Pop() (value uint8, err error) {
	value, err = cpu.Peek()
	if err != nil {
		return
	}
	cpu.Register[SP]++
	return
}

// Peek returns the value at the stack pointer.
func (cpu *Cpu) Peek() (value uint8, err error) {
	return cpu.Read(uint16(cpu.Register[SP]))
}

// Depth returns the number of bytes pushed below STACK_TOP.
func (cpu *Cpu) Depth() int {
	return STACK_TOP - int(cpu.Register[SP])
}
