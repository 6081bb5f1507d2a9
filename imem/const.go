package imem

const (
	// Word geometry: bytes per word, hex digits per word, bytes per output line.
	WordLen    = 4
	WordDigits = 8
	LineLen    = WordDigits + 1
)

// NoLimit disables the word cap.
const NoLimit = -1

const DefaultBufferSize = 256 * 1024
const maxEmptyReads = 8

// Words packed per batch by the stream encoder.
const batchWords = 4096

const hexDigits = "0123456789abcdef"
