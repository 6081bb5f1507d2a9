package imem

import "encoding/binary"

func packWordsSlow(dst []uint32, b []byte) {
	if len(dst) == 0 {
		return
	}
	_ = b[len(dst)*WordLen-1]
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint32(b[i*WordLen:])
	}
}

// packTail packs fewer than WordLen bytes, zero-filling the high-order bytes.
func packTail(tail []byte) uint32 {
	var b [WordLen]byte
	copy(b[:], tail)
	return binary.LittleEndian.Uint32(b[:])
}
