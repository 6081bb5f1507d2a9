package imem

// PaddedLen returns n rounded up to a whole number of words.
func PaddedLen(n int) int {
	return (n + WordLen - 1) &^ (WordLen - 1)
}

// Words packs data into little-endian words, zero-padding the final word.
func Words(data []byte) []uint32 {
	words := make([]uint32, PaddedLen(len(data))/WordLen)
	full := len(data) / WordLen
	packWords(words[:full], data[:full*WordLen])
	if tail := data[full*WordLen:]; len(tail) > 0 {
		words[full] = packTail(tail)
	}
	return words
}

// Truncate caps words to at most limit entries. A negative limit leaves words
// unchanged, and a short sequence is never extended.
func Truncate(words []uint32, limit int) []uint32 {
	if limit >= 0 && limit < len(words) {
		return words[:limit]
	}
	return words
}

// AppendWord appends w as eight lowercase hex digits.
func AppendWord(dst []byte, w uint32) []byte {
	var buf [WordDigits]byte
	for i := WordDigits - 1; i >= 0; i-- {
		buf[i] = hexDigits[w&0xf]
		w >>= 4
	}
	return append(dst, buf[:]...)
}

func appendLines(dst []byte, words []uint32) []byte {
	for _, w := range words {
		dst = AppendWord(dst, w)
		dst = append(dst, '\n')
	}
	return dst
}

// Encode renders words one per line, each line terminated by a newline.
func Encode(words []uint32) []byte {
	return appendLines(make([]byte, 0, len(words)*LineLen), words)
}

// Convert is the whole transformation on an in-memory image: pad, pack, cap
// to limit words (NoLimit for none) and format.
func Convert(data []byte, limit int) []byte {
	return Encode(Truncate(Words(data), limit))
}
