package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location and generated bytes.
type Opcode struct {
	LineNo    int
	Addr      int
	Words     []string
	Bytes     []uint8
	LinkLabel string // Label whose address fills Bytes[LinkIndex].
	LinkIndex int
}

// Program is an assembled LS8 program.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the opcode that generated the byte at addr.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) >= op.Addr && int(addr) < op.Addr+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr) - op.Addr,
			}
			break
		}
	}

	return
}

// Size returns the number of bytes in the program image.
func (prog *Program) Size() (size int) {
	for _, op := range prog.Opcodes {
		size += len(op.Bytes)
	}
	return
}

// Binary returns the program image.
func (prog *Program) Binary() (bins []uint8) {
	for _, value := range prog.Bytes() {
		bins = append(bins, value)
	}

	return
}

// Bytes iterates over the program image, by address.
func (prog *Program) Bytes() iter.Seq2[uint16, uint8] {
	return func(yield func(addr uint16, value uint8) bool) {
		for _, op := range prog.Opcodes {
			addr := uint16(op.Addr)
			for n, value := range op.Bytes {
				if !yield(addr+uint16(n), value) {
					return
				}
			}
		}
	}
}

// WriteImage writes the program as a loadable text image, with each
// opcode's source as a comment on its first byte.
func (prog *Program) WriteImage(output io.Writer) (err error) {
	for _, op := range prog.Opcodes {
		for n, value := range op.Bytes {
			if n == 0 {
				_, err = fmt.Fprintf(output, "%08b # %v\n", value, strings.Join(op.Words, " "))
			} else {
				_, err = fmt.Fprintf(output, "%08b\n", value)
			}
			if err != nil {
				return
			}
		}
	}

	return
}
