// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io provides the devices attached to the LS8 emulator:
// the diagnostic console used by PRN and PRA, and the ROM that
// holds a program image before it is loaded into RAM.
package io

// Channel defines the interface for diagnostic output devices.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// SendNumber writes the decimal value, followed by a newline.
	SendNumber(value uint8) error
	// SendChar writes the character whose code point is value.
	SendChar(value uint8) error
}
