package imem

import (
	"fmt"
	"os"
)

// Options controls a file or stream conversion.
type Options struct {
	// Limit caps the number of words written. NoLimit disables the cap and
	// zero produces an empty output.
	Limit int

	// Codec selects how the input is decoded before packing.
	Codec Codec

	// BufferSize is the read buffer size. Zero selects DefaultBufferSize.
	BufferSize int

	// Perm is the mode of a newly written output file. Zero selects 0644.
	Perm os.FileMode

	// OnProgress, if set, is called after every read of decoded input.
	OnProgress ProgressFunc
}

// DefaultOptions returns options for an uncapped conversion of a raw image.
func DefaultOptions() Options {
	return Options{
		Limit: NoLimit,
		Codec: CodecNone,
		Perm:  0o644,
	}
}

// Validate checks the options before any I/O is attempted.
func (o Options) Validate() error {
	if o.Limit < NoLimit {
		return fmt.Errorf("%w: %d", ErrNegativeLimit, o.Limit)
	}
	if _, err := ParseCodec(string(o.Codec)); err != nil {
		return err
	}
	return nil
}

func (o Options) perm() os.FileMode {
	if o.Perm == 0 {
		return 0o644
	}
	return o.Perm
}

func bufferSizeOrDefault(n int) int {
	if n > 0 {
		return n
	}
	return DefaultBufferSize
}
