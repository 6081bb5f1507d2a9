//go:build !(amd64 || 386 || arm64 || arm || riscv64 || ppc64le || mipsle || mips64le || loong64) || purego

package imem

func packWords(dst []uint32, b []byte) {
	packWordsSlow(dst, b)
}
