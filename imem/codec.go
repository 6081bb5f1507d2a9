package imem

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec names how the input image is encoded on disk.
type Codec string

const (
	// CodecNone reads the input as a raw image.
	CodecNone Codec = "none"
	// CodecAuto picks gzip, zstd or lz4 by magic number and falls back to raw.
	CodecAuto Codec = "auto"
	CodecGzip Codec = "gzip"
	CodecZstd Codec = "zstd"
	CodecLZ4  Codec = "lz4"
)

// Codecs lists the accepted codec names.
var Codecs = []Codec{CodecNone, CodecAuto, CodecGzip, CodecZstd, CodecLZ4}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

const magicLen = 4

// ParseCodec maps a codec name to a Codec. The empty string means CodecNone.
func ParseCodec(name string) (Codec, error) {
	if name == "" {
		return CodecNone, nil
	}
	c := Codec(strings.ToLower(name))
	for _, known := range Codecs {
		if c == known {
			return c, nil
		}
	}
	return "", &CodecError{Codec: Codec(name)}
}

// DetectCodec inspects the leading bytes of an input and returns the codec
// whose magic number they carry, or CodecNone.
func DetectCodec(head []byte) Codec {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return CodecZstd
	case bytes.HasPrefix(head, lz4Magic):
		return CodecLZ4
	case bytes.HasPrefix(head, gzipMagic):
		return CodecGzip
	}
	return CodecNone
}

// NewDecoder wraps r so that reads return the decoded image. The returned
// reader must be closed; closing it does not close r.
func NewDecoder(r io.Reader, c Codec) (io.ReadCloser, error) {
	c, err := ParseCodec(string(c))
	if err != nil {
		return nil, err
	}

	if c == CodecAuto {
		br := bufio.NewReader(r)
		head, err := br.Peek(magicLen)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return nil, err
		}
		c, r = DetectCodec(head), br
	}

	switch c {
	case CodecGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, &CodecError{Codec: c, cause: err}
		}
		return &codecReader{codec: c, r: zr, close: zr.Close}, nil
	case CodecZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			if zr != nil {
				zr.Close()
			}
			return nil, &CodecError{Codec: c, cause: err}
		}
		return &codecReader{codec: c, r: zr, close: func() error {
			zr.Close()
			return nil
		}}, nil
	case CodecLZ4:
		return &codecReader{codec: c, r: lz4.NewReader(r)}, nil
	}
	return io.NopCloser(r), nil
}

// codecReader tags decoding failures with the codec that produced them.
type codecReader struct {
	codec Codec
	r     io.Reader
	close func() error
}

func (c *codecReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		err = &CodecError{Codec: c.codec, cause: err}
	}
	return n, err
}

func (c *codecReader) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}
