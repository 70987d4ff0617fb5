// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"fmt"
	"io"
)

// Console writes PRN and PRA output to a byte stream.
type Console struct {
	Output io.Writer

	Sent int // Number of values sent since the last rewind.
}

var _ Channel = (*Console)(nil)

// Rewind clears the sent counter. Output already written is not recalled.
func (con *Console) Rewind() {
	con.Sent = 0
}

// SendNumber writes the decimal value and a newline.
func (con *Console) SendNumber(value uint8) (err error) {
	if con.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = fmt.Fprintf(con.Output, "%d\n", value)
	if err != nil {
		return
	}

	con.Sent++

	return
}

// SendChar writes the UTF-8 encoding of the code point value, with no newline.
func (con *Console) SendChar(value uint8) (err error) {
	if con.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = io.WriteString(con.Output, string(rune(value)))
	if err != nil {
		return
	}

	con.Sent++

	return
}
