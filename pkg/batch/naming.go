package batch

import (
	"strings"

	"github.com/jtolio/shift/pkg/enc"
)

const (
	EncodeSuffix = "_enc"
	DecodeSuffix = "_dec"
)

// Suffix returns the output name suffix for a direction.
func Suffix(d enc.Direction) string {
	if d == enc.Inverse {
		return DecodeSuffix
	}
	return EncodeSuffix
}

// OutputName derives an output file name from input by inserting suffix
// before the extension. The filename is everything after the last '/',
// and the extension starts at the last '.' of the filename. Without an
// extension the suffix is appended.
//
// The directory part of input is dropped: "dir/sub/file.dat" becomes
// "file_enc.dat". Inputs with the same filename in different directories
// therefore map to the same output name and the later one wins.
func OutputName(input, suffix string) string {
	name := input
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	stem, ext := name, ""
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		stem, ext = name[:idx], name[idx:]
	}
	return stem + suffix + ext
}
