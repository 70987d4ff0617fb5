package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelClosed = errors.New(f("channel closed"))

	// Image errors
	ErrImageNumber = errors.New(f("not a binary byte"))
)

// ErrImageSyntax indicates the image line that could not be loaded.
type ErrImageSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrImageSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrImageSyntax) Unwrap() error {
	return err.Err
}
