package emulator

import (
	"bytes"
	"errors"
	"maps"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Nil(emu.Program)
	assert.Equal(os.Stdout, emu.Console.Output)
	assert.Same(&emu.Console, emu.Cpu.Console)
}

// newTestEmulator assembles a program into an emulator writing to a buffer.
func newTestEmulator(t *testing.T, program []string) (emu *Emulator, output *bytes.Buffer) {
	emu = NewEmulator()
	output = &bytes.Buffer{}
	emu.Console.Output = output

	asm := &cpu.Assembler{}
	for equ, value := range emu.Defines() {
		asm.Predefine(equ, value)
	}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog

	err = emu.Reset()
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LDI R0, 8",
		"LDI R1, 9",
		"ADD R0, R1",
		"PRN R0",
		"HLT",
	}

	emu, output := newTestEmulator(t, program)

	err := emu.Run()
	assert.NoError(err)
	assert.Equal("17\n", output.String())
	assert.True(emu.Cpu.Halted)
	assert.Equal(5, emu.Ticks())
	assert.Equal(uint16(11), emu.Cpu.Pc)
	assert.Equal(5, emu.LineNo())

	// Ticking a halted emulator is done, not an error.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"    LDI R1, print",
		"    LDI R0, 'A'",
		"    CALL R1",
		"    LDI R0, 'b'",
		"    CALL R1",
		"    HLT",
		"print:",
		"    PUSH SP",
		"    PRA R0",
		"    POP R2",
		"    RET",
	}

	emu, output := newTestEmulator(t, program)

	var lines []int
	for done := false; !done; {
		lineno := emu.LineNo()
		assert.Equal(emu.Program.Debug(emu.Cpu.Pc).LineNo, lineno)
		lines = append(lines, lineno)

		var err error
		done, err = emu.Tick()
		if err != nil {
			t.Log(emu.Cpu.String())
			t.Fatal(err)
		}
	}

	assert.Equal([]int{1, 2, 3, 8, 9, 10, 11, 4, 5, 8, 9, 10, 11, 6}, lines)
	assert.Equal("Ab", output.String())
	assert.Equal(uint8(cpu.STACK_TOP), emu.Cpu.Register[cpu.SP])
	assert.Equal(uint8(cpu.STACK_TOP-2), emu.Cpu.Register[2])
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LDI R0, 1",
		"LDI R1, 0",
		"MOD R0, R1",
		"HLT",
	}

	emu, output := newTestEmulator(t, program)

	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrDivideByZero)
	assert.ErrorIs(err, cpu.ErrOpcode(cpu.CODE_MOD))

	var er *ErrRuntime
	if assert.True(errors.As(err, &er)) {
		assert.Equal(uint16(6), er.Pc)
		assert.Equal(3, er.LineNo)
		assert.Contains(er.Error(), "line 3")
	}

	assert.Equal(uint8(1), emu.Cpu.Register[0])
	assert.False(emu.Cpu.Halted)
	assert.Equal(0, output.Len())
}

func TestEmulatorRom(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := &bytes.Buffer{}
	emu.Console.Output = output

	emu.Rom.Data = []uint8{
		0b10000010, 0b00000000, 0b00001000,
		0b10000010, 0b00000001, 0b00001001,
		0b10100000, 0b00000000, 0b00000001,
		0b01000111, 0b00000000,
		0b00000001,
	}

	err := emu.Reset()
	assert.NoError(err)
	assert.Equal(0, emu.LineNo())

	err = emu.Run()
	assert.NoError(err)
	assert.Equal("17\n", output.String())
	assert.Equal(1, emu.Console.Sent)

	// Reset reloads the image and rewinds the console.
	err = emu.Reset()
	assert.NoError(err)
	assert.Equal(0, emu.Console.Sent)
	assert.Equal(uint16(0), emu.Cpu.Pc)
	assert.False(emu.Cpu.Halted)
	assert.Equal(emu.Rom.Data, emu.Cpu.Ram[:len(emu.Rom.Data)])

	err = emu.Run()
	assert.NoError(err)
	assert.Equal("17\n17\n", output.String())
}

func TestEmulatorRomRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Rom.Data = []uint8{0x00, 0x02}

	err := emu.Reset()
	assert.NoError(err)

	err = emu.Run()
	assert.ErrorIs(err, cpu.ErrOpcodeDecode)

	var er *ErrRuntime
	if assert.True(errors.As(err, &er)) {
		assert.Equal(uint16(1), er.Pc)
		assert.Equal(0, er.LineNo)
		assert.NotContains(er.Error(), "line")
	}
}

func TestEmulatorRomTooLarge(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Rom.Data = make([]uint8, cpu.RAM_SIZE+1)

	err := emu.Reset()

	var ea cpu.ErrAddress
	if assert.True(errors.As(err, &ea)) {
		assert.Equal(cpu.ErrAddress(cpu.RAM_SIZE), ea)
	}
}

func TestEmulatorTrace(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LDI R0, 8",
		"PRN R0",
		"HLT",
	}

	emu, _ := newTestEmulator(t, program)

	trace := &bytes.Buffer{}
	emu.Cpu.Trace = trace

	err := emu.Run()
	assert.NoError(err)

	lines := strings.Split(strings.TrimSuffix(trace.String(), "\n"), "\n")
	assert.Equal([]string{
		"TRACE: 00 | 82 00 08 | 00 00 00 00 00 00 00 F4",
		"TRACE: 03 | 47 00 01 | 08 00 00 00 00 00 00 F4",
		"TRACE: 05 | 01 00 00 | 08 00 00 00 00 00 00 F4",
	}, lines)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	defines := maps.Collect(emu.Defines())

	assert.Equal("R7", defines["SP"])
	assert.Equal("256", defines["RAM_SIZE"])
	assert.Equal("0xf4", defines["STACK_TOP"])
	assert.Equal("0x1", defines["FLAG_EQUAL"])
	assert.Equal("0x2", defines["FLAG_GREATER"])
	assert.Equal("0x4", defines["FLAG_LESS"])

	program := []string{
		"LDI R0, FLAG_LESS",
		"PUSH SP",
	}

	emu, _ = newTestEmulator(t, program)
	assert.Equal([]uint8{0x82, 0x00, 0x04, 0x45, 0x07}, emu.Program.Binary())
}
