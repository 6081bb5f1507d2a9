package imem

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeLimit is returned when a word limit below zero is requested.
	ErrNegativeLimit = errors.New("word limit must not be negative")

	errIsDir = errors.New("is a directory")
)

// CodecError reports an unknown input codec or a failure while decoding the
// input with it.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type CodecError struct {
	Codec Codec
	cause error
}

func (e *CodecError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("unknown input codec %q", string(e.Codec))
	}
	return fmt.Sprintf("%s input: %v", e.Codec, e.cause)
}

func (e *CodecError) Unwrap() error { return e.cause }
