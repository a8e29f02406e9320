// Package cparser implements the plain-C declaration matcher and the
// universal call-site/context extractor shared by both the AUTOSAR macro
// parser and the plain-C parser (spec §4.3, §4.3.5).
package cparser

import "github.com/melodypapa/autosar-calltree/parser"

// FindBody scans forward from offset (which should point just past a
// declaration's closing parameter-list paren) for either a statement
// terminator ';' — a prototype, not a definition, per spec §4.3.1 — or an
// opening '{' that begins a definition's body. On success it returns the
// body's interior byte range, excluding the braces themselves.
func FindBody(src string, offset int) (start, end int, ok bool) {
	i := offset
	for i < len(src) {
		switch src[i] {
		case ' ', '\t', '\n', '\r':
			i++
		case ';':
			return 0, 0, false
		case '{':
			closeIdx := parser.FindMatchingDelim(src, i, '{', '}')
			if closeIdx < 0 {
				return 0, 0, false
			}
			return i + 1, closeIdx, true
		default:
			// K&R-style parameter declarations or annotation macros can sit
			// between ')' and '{'; skip over them a byte at a time.
			i++
		}
	}
	return 0, 0, false
}
