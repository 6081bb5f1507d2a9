// Package imem converts flat little-endian binary images into word-per-line
// hex text for $readmemh-style memory initialization.
//
// Each group of four input bytes becomes one 32-bit word, the first byte being
// the least significant. A short final group is zero-padded in its high-order
// bytes. Every word is written as exactly eight lowercase hex digits followed
// by a newline. When no words are written the output is empty.
package imem
