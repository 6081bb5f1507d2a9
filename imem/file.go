package imem

import (
	"fmt"
	"io"
	"os"
)

// ConvertFile converts the image at src and writes the hex text to dst,
// replacing any existing file. The input is opened before the output is
// touched, and dst only changes if the whole conversion succeeds.
func ConvertFile(src, dst string, opts Options) (Stats, error) {
	if err := opts.Validate(); err != nil {
		return Stats{}, err
	}

	f, err := os.Open(src)
	if err != nil {
		return Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Stats{}, fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return Stats{}, fmt.Errorf("open input: %w", &os.PathError{Op: "open", Path: src, Err: errIsDir})
	}

	// Decoded length is unknown for compressed input.
	var total uint64
	if c, _ := ParseCodec(string(opts.Codec)); c == CodecNone {
		total = uint64(info.Size())
	}

	var (
		stats   Stats
		convErr error
	)
	err = WriteFileAtomic(dst, opts.perm(), func(w io.Writer) error {
		stats, convErr = convertStream(w, f, total, opts)
		return convErr
	})
	switch {
	case convErr != nil:
		return stats, fmt.Errorf("convert %s: %w", src, convErr)
	case err != nil:
		return stats, fmt.Errorf("write output: %w", err)
	}
	return stats, nil
}
