package main

import (
	"strings"

	"golang.org/x/text/width"
)

// caret returns the line of input holding offset with a '^' under the byte at
// offset. Wide runes take two columns and tabs are kept so the marker lines
// up in a terminal.
func caret(input string, offset int) string {
	offset = min(max(offset, 0), len(input))
	start := strings.LastIndexByte(input[:offset], '\n') + 1
	end := len(input)
	if i := strings.IndexByte(input[offset:], '\n'); i >= 0 {
		end = offset + i
	}

	var pad strings.Builder
	for _, r := range input[start:offset] {
		switch {
		case r == '\t':
			pad.WriteByte('\t')
		case isWide(r):
			pad.WriteString("  ")
		default:
			pad.WriteByte(' ')
		}
	}
	return input[start:end] + "\n" + pad.String() + "^"
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianFullwidth, width.EastAsianWide:
		return true
	}
	return false
}
