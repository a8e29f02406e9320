package cparser

import (
	"regexp"
	"strings"

	"github.com/melodypapa/autosar-calltree/model"
	"github.com/melodypapa/autosar-calltree/parser"
)

// declRe matches a plain-C function-definition header at the start of a
// line: an optional "static", a return-type token run, a name, and an
// opening '('. Every repeated group carries an explicit upper bound (spec
// §9), even though Go's RE2-based regexp engine cannot backtrack
// catastrophically regardless.
var declRe = regexp.MustCompile(`^[ \t]{0,40}(static[ \t]{1,10})?([A-Za-z_][A-Za-z0-9_ \t\*]{0,160}?)[ \t]{1,10}([A-Za-z_][A-Za-z0-9_]{0,80})[ \t]{0,10}\(`)

// reservedControlWords must never be mistaken for a function name even
// when the generic header shape matches (e.g. "if (" reads the same
// shape as "name(").
var reservedControlWords = controlKeywords

// Parse scans src (one source file's full text) for plain-C function
// definitions: declarations with an actual body, not forward-declared
// prototypes (spec §4.3.1). AUTOSAR macro headers are left to package
// autosar — they don't match this shape, since a macro invocation like
// "FUNC(void, RTE_CODE) Demo(void)" has an extra parenthesized group
// before the name that a plain return-type/name pair doesn't produce.
func Parse(filePath, src string) []model.FunctionInfo {
	clean := parser.StripComments(src)
	lineStarts := parser.LineStarts(clean)

	var out []model.FunctionInfo
	lineStart := 0
	for lineStart <= len(clean) {
		lineEnd := len(clean)
		if idx := strings.IndexByte(clean[lineStart:], '\n'); idx >= 0 {
			lineEnd = lineStart + idx
		}
		line := clean[lineStart:lineEnd]

		if m := declRe.FindStringSubmatchIndex(line); m != nil {
			if info, ok := parseDeclAt(filePath, clean, lineStarts, lineStart, m); ok {
				out = append(out, info)
			}
		}

		if lineEnd >= len(clean) {
			break
		}
		lineStart = lineEnd + 1
	}

	return out
}

func parseDeclAt(filePath, src string, lineStarts []int, lineStart int, m []int) (model.FunctionInfo, bool) {
	isStatic := m[2] >= 0
	returnType := strings.TrimSpace(collapseInternal(src[lineStart+m[4] : lineStart+m[5]]))
	name := src[lineStart+m[6] : lineStart+m[7]]

	if name == "" || reservedControlWords[name] || parser.IsReserved(name) || returnType == "" {
		return model.FunctionInfo{}, false
	}

	openParen := lineStart + m[1] - 1
	paramsEnd := parser.FindMatchingDelim(src, openParen, '(', ')')
	if paramsEnd < 0 {
		return model.FunctionInfo{}, false
	}
	paramsStr := src[openParen+1 : paramsEnd]

	bodyStart, bodyEnd, hasBody := FindBody(src, paramsEnd+1)
	if !hasBody {
		// A prototype, not a definition; spec §4.3.1 excludes these from
		// the plain-C parser's output.
		return model.FunctionInfo{}, false
	}

	info := model.FunctionInfo{
		Name:       name,
		FilePath:   filePath,
		LineNumber: lineNumberFor(lineStarts, lineStart),
		ReturnType: returnType,
		IsStatic:   isStatic,
		Kind:       model.TraditionalC,
		Parameters: parsePlainParams(paramsStr),
		Calls:      ExtractCalls(src[bodyStart:bodyEnd]),
	}
	return info, true
}

// parsePlainParams splits a plain-C parameter list on top-level commas and
// derives a name/type/pointer/const triple from each.
func parsePlainParams(paramsStr string) []model.Parameter {
	trimmed := parser.TrimSpace(paramsStr)
	if trimmed == "" || trimmed == "void" {
		return nil
	}

	var params []model.Parameter
	for _, raw := range parser.SplitTopLevel(paramsStr) {
		tok := parser.TrimSpace(raw)
		if tok == "" {
			continue
		}
		fields := strings.Fields(tok)
		if len(fields) == 0 {
			continue
		}
		name := fields[len(fields)-1]
		isPointer := strings.HasPrefix(name, "*")
		name = strings.TrimLeft(name, "*")
		isConst := false
		var typeParts []string
		for _, f := range fields[:len(fields)-1] {
			switch f {
			case "const":
				isConst = true
			default:
				typeParts = append(typeParts, f)
			}
		}
		params = append(params, model.NewParameter(name, strings.Join(typeParts, " "), isPointer, isConst))
	}
	return params
}

func collapseInternal(s string) string {
	return parser.CollapseSpace(s)
}

func lineNumberFor(lineStarts []int, offset int) int {
	lo, hi := 0, len(lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}
