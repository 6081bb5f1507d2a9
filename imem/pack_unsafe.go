//go:build (amd64 || 386 || arm64 || arm || riscv64 || ppc64le || mipsle || mips64le || loong64) && !purego

package imem

import "unsafe"

func packWords(dst []uint32, b []byte) {
	if len(dst) == 0 {
		return
	}
	_ = b[len(dst)*WordLen-1]
	if uintptr(unsafe.Pointer(&b[0]))&3 == 0 {
		copy(dst, unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), len(dst)))
		return
	}
	packWordsSlow(dst, b)
}
