package imem

import (
	"bufio"
	"errors"
	"io"
	"os"
	"time"
)

type Progress struct {
	Processed uint64
	Total     uint64
	Elapsed   time.Duration
}

type ProgressFunc func(Progress)

// Stats describes a finished conversion.
type Stats struct {
	// BytesRead is the decoded input length, including input past the limit.
	BytesRead uint64
	// Words is the number of words the whole input packs into.
	Words uint64
	// WordsWritten is the number of lines emitted after applying the limit.
	WordsWritten uint64
	// PadBytes is the number of zero bytes added to complete the final word.
	// It stays zero when the limit drops that word.
	PadBytes int
}

// Encoder packs bytes written to it into words and writes them as hex lines
// to the underlying writer. Partial words are carried across writes; Close
// pads and emits the final word and flushes.
type Encoder struct {
	w      *bufio.Writer
	limit  int
	carry  [WordLen]byte
	ncarry int
	batch  []uint32
	line   []byte
	stats  Stats
	closed bool
	err    error
}

// NewEncoder returns an Encoder writing at most limit words to w. Pass NoLimit
// to write every word.
func NewEncoder(w io.Writer, limit int) *Encoder {
	return &Encoder{
		w:     bufio.NewWriter(w),
		limit: limit,
		batch: make([]uint32, batchWords),
	}
}

// Write consumes raw image bytes. It never returns a short count unless the
// underlying writer failed.
func (e *Encoder) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if e.closed {
		return 0, os.ErrClosed
	}
	n := len(p)
	e.stats.BytesRead += uint64(n)

	if e.ncarry > 0 {
		k := copy(e.carry[e.ncarry:], p)
		e.ncarry += k
		p = p[k:]
		if e.ncarry < WordLen {
			return n, nil
		}
		e.batch[0] = packTail(e.carry[:])
		e.emit(e.batch[:1])
		e.ncarry = 0
	}

	for full := len(p) / WordLen; full > 0; {
		k := min(full, len(e.batch))
		packWords(e.batch[:k], p[:k*WordLen])
		e.emit(e.batch[:k])
		p = p[k*WordLen:]
		full -= k
	}
	e.ncarry = copy(e.carry[:], p)

	if e.err != nil {
		return 0, e.err
	}
	return n, nil
}

func (e *Encoder) emit(words []uint32) {
	e.stats.Words += uint64(len(words))
	if e.err != nil {
		return
	}
	if e.limit >= 0 {
		room := uint64(e.limit) - e.stats.WordsWritten
		if uint64(len(words)) > room {
			words = words[:room]
		}
	}
	if len(words) == 0 {
		return
	}
	e.line = appendLines(e.line[:0], words)
	if _, err := e.w.Write(e.line); err != nil {
		e.err = err
		return
	}
	e.stats.WordsWritten += uint64(len(words))
}

// Close emits the zero-padded final word, if any, and flushes. It does not
// close the underlying writer.
func (e *Encoder) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true
	if e.ncarry > 0 {
		written := e.stats.WordsWritten
		e.batch[0] = packTail(e.carry[:e.ncarry])
		e.emit(e.batch[:1])
		if e.stats.WordsWritten > written {
			e.stats.PadBytes = WordLen - e.ncarry
		}
		e.ncarry = 0
	}
	if e.err != nil {
		return e.err
	}
	if err := e.w.Flush(); err != nil {
		e.err = err
	}
	return e.err
}

// Stats returns the counters accumulated so far.
func (e *Encoder) Stats() Stats {
	return e.stats
}

// WriteReader streams data from r into the encoder using buf and reports
// progress. If total is unknown, pass 0.
func (e *Encoder) WriteReader(r io.Reader, buf []byte, total uint64, onProgress ProgressFunc) (int64, error) {
	if len(buf) == 0 {
		buf = make([]byte, DefaultBufferSize)
	}

	start := time.Now()
	var processed uint64
	emptyReads := 0

	for {
		n, err := r.Read(buf)
		if n > 0 {
			emptyReads = 0
			if _, werr := e.Write(buf[:n]); werr != nil {
				return int64(processed), werr
			}
			processed += uint64(n)
			if onProgress != nil {
				onProgress(Progress{
					Processed: processed,
					Total:     total,
					Elapsed:   time.Since(start),
				})
			}
		}

		if errors.Is(err, io.EOF) {
			if n == 0 && onProgress != nil {
				onProgress(Progress{
					Processed: processed,
					Total:     total,
					Elapsed:   time.Since(start),
				})
			}
			return int64(processed), nil
		}
		if err != nil {
			return int64(processed), err
		}
		if n == 0 {
			emptyReads++
			if emptyReads >= maxEmptyReads {
				return int64(processed), io.ErrNoProgress
			}
		}
	}
}

// ConvertReader decodes r according to opts.Codec and writes the hex image to
// w. The caller owns both w and r.
func ConvertReader(w io.Writer, r io.Reader, opts Options) (Stats, error) {
	if err := opts.Validate(); err != nil {
		return Stats{}, err
	}
	return convertStream(w, r, 0, opts)
}

func convertStream(w io.Writer, r io.Reader, total uint64, opts Options) (Stats, error) {
	dec, err := NewDecoder(r, opts.Codec)
	if err != nil {
		return Stats{}, err
	}
	defer dec.Close()

	enc := NewEncoder(w, opts.Limit)
	buf := make([]byte, bufferSizeOrDefault(opts.BufferSize))
	if _, err := enc.WriteReader(dec, buf, total, opts.OnProgress); err != nil {
		return enc.Stats(), err
	}
	if err := enc.Close(); err != nil {
		return enc.Stats(), err
	}
	return enc.Stats(), nil
}
