package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"
)

func runCLI(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stderr.String()
}

func setup(t *testing.T, data []byte) (src, dst string) {
	t.Helper()
	dir := t.TempDir()
	src = filepath.Join(dir, "fw.bin")
	require.NoError(t, os.WriteFile(src, data, 0o644))
	return src, filepath.Join(dir, "fw.hex")
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestRun(t *testing.T) {
	src, dst := setup(t, []byte{0x78, 0x56, 0x34, 0x12, 0x01, 0x00, 0x00, 0x00})

	code, logs := runCLI(t, src, dst)
	require.Equal(t, exitOK, code, logs)
	assert.Equal(t, "12345678\n00000001\n", readOutput(t, dst))
	assert.Contains(t, logs, "wrote memory image")
	assert.Contains(t, logs, "words=2")
}

func TestRun_WordLimit(t *testing.T) {
	src, dst := setup(t, []byte{1, 0, 0, 0, 2, 0, 0, 0, 3})

	code, logs := runCLI(t, "--words", "2", src, dst)
	require.Equal(t, exitOK, code, logs)
	assert.Equal(t, "00000001\n00000002\n", readOutput(t, dst))
	assert.Contains(t, logs, "dropped=1")

	code, logs = runCLI(t, "-w", "0", src, dst)
	require.Equal(t, exitOK, code, logs)
	assert.Empty(t, readOutput(t, dst))

	code, logs = runCLI(t, "-w", "50", src, dst)
	require.Equal(t, exitOK, code, logs)
	assert.Equal(t, "00000001\n00000002\n00000003\n", readOutput(t, dst))
}

func TestRun_Codec(t *testing.T) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte{0xab})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	src, dst := setup(t, buf.Bytes())
	code, logs := runCLI(t, "--codec", "auto", src, dst)
	require.Equal(t, exitOK, code, logs)
	assert.Equal(t, "000000ab\n", readOutput(t, dst))
}

func TestRun_Checksum(t *testing.T) {
	src, dst := setup(t, []byte{1, 2, 3, 4})

	code, logs := runCLI(t, "--checksum", src, dst)
	require.Equal(t, exitOK, code, logs)

	sum := blake3.Sum256([]byte("04030201\n"))
	assert.Contains(t, logs, "blake3="+hex.EncodeToString(sum[:]))
}

func TestRun_Quiet(t *testing.T) {
	src, dst := setup(t, []byte{1, 2, 3, 4})

	code, logs := runCLI(t, "-q", src, dst)
	require.Equal(t, exitOK, code)
	assert.Empty(t, logs)
}

func TestRun_JSONLogs(t *testing.T) {
	src, dst := setup(t, []byte{1, 2, 3, 4})

	code, logs := runCLI(t, "--log-format", "json", src, dst)
	require.Equal(t, exitOK, code, logs)
	assert.Contains(t, logs, `"msg":"wrote memory image"`)
}

func TestRun_UsageErrors(t *testing.T) {
	src, dst := setup(t, []byte{1, 2, 3, 4})

	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"one arg", []string{src}},
		{"three args", []string{src, dst, dst}},
		{"non-integer limit", []string{"--words", "many", src, dst}},
		{"negative limit", []string{"--words=-3", src, dst}},
		{"unknown codec", []string{"--codec", "bzip2", src, dst}},
		{"unknown log level", []string{"--log-level", "loud", src, dst}},
		{"unknown flag", []string{"--big-endian", src, dst}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, logs := runCLI(t, tt.args...)
			assert.Equal(t, exitUsage, code, logs)
			_, err := os.Stat(dst)
			assert.ErrorIs(t, err, os.ErrNotExist, "no output on argument errors")
		})
	}
}

func TestRun_IOErrors(t *testing.T) {
	src, dst := setup(t, []byte{1, 2, 3, 4})
	dir := filepath.Dir(src)

	code, logs := runCLI(t, filepath.Join(dir, "missing.bin"), dst)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, logs, "open input")

	code, logs = runCLI(t, src, filepath.Join(dir, "no", "such", "dir", "fw.hex"))
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, logs, "write output")

	code, _ = runCLI(t, "--codec", "gzip", src, dst)
	assert.Equal(t, exitFailure, code)
	_, err := os.Stat(dst)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_Help(t *testing.T) {
	code, _ := runCLI(t, "--help")
	assert.Equal(t, exitOK, code)
}
