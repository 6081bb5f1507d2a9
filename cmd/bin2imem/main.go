// Command bin2imem converts a flat little-endian binary image into a text file
// of 32-bit hex words, one per line, for loading with $readmemh.
//
//	bin2imem [flags] <input.bin> <output.hex>
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
