package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(0, cpu.Depth())

	assert.NoError(cpu.Push(0x12))
	assert.Equal(1, cpu.Depth())
	assert.Equal(uint8(STACK_TOP-1), cpu.Register[SP])
	assert.Equal(uint8(0x12), cpu.Ram[STACK_TOP-1])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Push(0x12))
	assert.NoError(cpu.Push(0xAB))

	val, err := cpu.Pop()
	assert.NoError(err)
	assert.Equal(uint8(0xAB), val)
	assert.Equal(1, cpu.Depth())

	val, err = cpu.Pop()
	assert.NoError(err)
	assert.Equal(uint8(0x12), val)
	assert.Equal(0, cpu.Depth())
	assert.Equal(uint8(STACK_TOP), cpu.Register[SP])
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Push(0x12))
	assert.NoError(cpu.Push(0xAB))

	val, err := cpu.Peek()
	assert.NoError(err)
	assert.Equal(uint8(0xAB), val)
	assert.Equal(2, cpu.Depth())
}

func TestStack_Wrap(t *testing.T) {
	assert := assert.New(t)

	// The stack pointer is an ordinary register, and wraps.
	cpu := NewCpu()
	cpu.Register[SP] = 0
	assert.NoError(cpu.Push(0x77))
	assert.Equal(uint8(0xff), cpu.Register[SP])
	assert.Equal(uint8(0x77), cpu.Ram[0xff])

	val, err := cpu.Pop()
	assert.NoError(err)
	assert.Equal(uint8(0x77), val)
	assert.Equal(uint8(0), cpu.Register[SP])
}

func TestStack_PushSp(t *testing.T) {
	assert := assert.New(t)

	// PUSH R7 stores the already decremented stack pointer.
	cpu, _ := newTestCpu(uint8(CODE_PUSH), SP)
	assert.NoError(cpu.Tick())
	assert.Equal(uint8(STACK_TOP-1), cpu.Ram[STACK_TOP-1])
}

func TestStack_PopSp(t *testing.T) {
	assert := assert.New(t)

	// POP R7 stores the popped value, then increments it.
	cpu, _ := newTestCpu(uint8(CODE_POP), SP)
	cpu.Ram[STACK_TOP] = 0x30
	assert.NoError(cpu.Tick())
	assert.Equal(uint8(0x31), cpu.Register[SP])
	assert.Equal(uint16(2), cpu.Pc)
}
