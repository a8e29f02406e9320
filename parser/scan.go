package parser

// LineStarts returns, for each line (0-indexed) in src, the absolute byte
// offset at which the line begins. It lets callers convert a line-relative
// regex match offset into an absolute source offset, as required by the
// line-by-line declaration scan (spec §4.3.1).
func LineStarts(src string) []int {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// FindMatchingDelim scans forward from openIdx (which must point at open)
// counting nesting depth of open/close, and returns the index of the
// matching close, or -1 if the input ends first. String and character
// literals are skipped over so a brace or paren inside a literal never
// affects the depth count.
func FindMatchingDelim(src string, openIdx int, open, close byte) int {
	if openIdx < 0 || openIdx >= len(src) || src[openIdx] != open {
		return -1
	}
	depth := 0
	i := openIdx
	for i < len(src) {
		c := src[i]
		switch {
		case c == '"':
			i = skipStringLiteral(src, i)
			continue
		case c == '\'':
			i = skipCharLiteral(src, i)
			continue
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// skipStringLiteral returns the index just past the closing quote of the
// string literal starting at i (which must point at the opening '"').
func skipStringLiteral(src string, i int) int {
	i++ // past opening quote
	for i < len(src) {
		if src[i] == '\\' && i+1 < len(src) {
			i += 2
			continue
		}
		if src[i] == '"' {
			return i + 1
		}
		i++
	}
	return i
}

// skipCharLiteral returns the index just past the closing quote of the
// character literal starting at i (which must point at the opening '\'').
func skipCharLiteral(src string, i int) int {
	i++ // past opening quote
	for i < len(src) {
		if src[i] == '\\' && i+1 < len(src) {
			i += 2
			continue
		}
		if src[i] == '\'' {
			return i + 1
		}
		i++
	}
	return i
}

// SkipStringLiteral is the exported form of skipStringLiteral, for callers
// outside this package that need to step over a string literal while
// scanning source text (e.g. call-site detection in package cparser).
func SkipStringLiteral(src string, i int) int { return skipStringLiteral(src, i) }

// SkipCharLiteral is the exported form of skipCharLiteral.
func SkipCharLiteral(src string, i int) int { return skipCharLiteral(src, i) }

// SplitTopLevel splits s on commas that appear at paren/bracket depth zero,
// so a parameter like "P2VAR(uint8, AUTOMATIC, ...) name" is not split on
// the commas inside its own macro argument list.
func SplitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		case '"':
			i = skipStringLiteral(s, i) - 1
		case '\'':
			i = skipCharLiteral(s, i) - 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// IsIdentStart reports whether b can start a C identifier.
func IsIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsIdentPart reports whether b can appear after the first character of a
// C identifier.
func IsIdentPart(b byte) bool {
	return IsIdentStart(b) || (b >= '0' && b <= '9')
}

// TrimSpace trims ASCII whitespace from both ends of s without pulling in
// strings.TrimSpace's unicode table, which the hot declaration-scan path
// doesn't need.
func TrimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpaceByte(s[start]) {
		start++
	}
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// CollapseSpace collapses runs of interior whitespace in s to single
// spaces, after trimming the ends. Used to sanitize condition text (spec
// §4.3.4).
func CollapseSpace(s string) string {
	s = TrimSpace(s)
	out := make([]byte, 0, len(s))
	inSpace := false
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isSpaceByte(b) {
			if !inSpace {
				out = append(out, ' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		out = append(out, b)
	}
	return string(out)
}
