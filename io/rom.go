// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"unicode"
)

// ROM_WORD_DIGITS is the number of binary digits in one image byte.
const ROM_WORD_DIGITS = 8

// Rom holds a program image: the bytes to place in RAM, starting at address 0.
type Rom struct {
	Data []uint8
}

// Receive returns an iterator that yields the image bytes in load order.
func (rom *Rom) Receive() iter.Seq[uint8] {
	return func(yield func(value uint8) bool) {
		for _, data := range rom.Data {
			if !yield(data) {
				return
			}
		}
	}
}

// isBinary is true for the two binary digit characters.
func isBinary(r rune) bool {
	return r == '0' || r == '1'
}

// parseWord parses the binary literal at the start of an image line.
// Up to ROM_WORD_DIGITS characters are considered; the literal may end
// early on whitespace.
func parseWord(line string) (value uint8, err error) {
	digits := line[:min(ROM_WORD_DIGITS, len(line))]
	end := strings.IndexFunc(digits, func(r rune) bool { return !isBinary(r) })
	if end >= 0 {
		if !unicode.IsSpace(rune(digits[end])) {
			err = ErrImageNumber
			return
		}
		digits = digits[:end]
	}

	v64, err := strconv.ParseUint(digits, 2, 8)
	if err != nil {
		err = ErrImageNumber
		return
	}

	value = uint8(v64)
	return
}

// Unmarshal loads a text program image, replacing any existing data.
// Every line starting with '0' or '1' holds one byte as a binary literal.
// All other lines, such as comments and blank lines, are skipped.
func (rom *Rom) Unmarshal(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	var data []uint8
	var lineno int
	for scanner.Scan() {
		line := scanner.Text()
		lineno++

		if len(line) == 0 || !isBinary(rune(line[0])) {
			continue
		}

		var value uint8
		value, err = parseWord(line)
		if err != nil {
			err = &ErrImageSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
		data = append(data, value)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	rom.Data = data
	return
}

// Marshal writes the image in the text format read by Unmarshal.
func (rom *Rom) Marshal(output io.Writer) (err error) {
	for _, data := range rom.Data {
		_, err = fmt.Fprintf(output, "%08b\n", data)
		if err != nil {
			return
		}
	}

	return
}
