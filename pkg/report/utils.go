package report

import "regexp"

var patternAnsiColors = regexp.MustCompile(`\x1B\[([0-9]{1,3}(;[0-9]{1,2})*)?[mGK]`)

// RemoveTerminalColors strips ANSI color and erase sequences from the input.
func RemoveTerminalColors(input []byte) []byte {
	return patternAnsiColors.ReplaceAll(input, []byte{})
}
