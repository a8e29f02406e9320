// Package autosar recognizes AUTOSAR function-definition macros (FUNC,
// FUNC_P2VAR, FUNC_P2CONST) and their parameter macros (VAR, P2VAR,
// P2CONST, CONST), producing FunctionInfo skeletons. Body call-site
// extraction is delegated to package cparser (spec §4.2).
package autosar

import (
	"regexp"
	"strings"

	"github.com/melodypapa/autosar-calltree/model"
	"github.com/melodypapa/autosar-calltree/parser"
	"github.com/melodypapa/autosar-calltree/parser/cparser"
)

// headerRe matches one AUTOSAR function-definition macro header at the
// start of a line, with an optional STATIC prefix. Every repeated group is
// bounded, in keeping with spec §9's "avoid unbounded quantifiers" rule,
// even though Go's regexp package (RE2) already guarantees linear-time
// matching regardless.
var headerRe = regexp.MustCompile(`^[ \t]{0,80}(STATIC[ \t]{1,10})?(FUNC_P2VAR|FUNC_P2CONST|FUNC)[ \t]{0,10}\(`)

// paramMacroRe recognizes the leading macro token of a single AUTOSAR
// parameter.
var paramMacroRe = regexp.MustCompile(`^[ \t]{0,20}(P2VAR|P2CONST|VAR|CONST)[ \t]{0,10}\(`)

// Parse scans src (the full text of one source file, after comment
// stripping) for AUTOSAR macro headers and returns one FunctionInfo per
// recognized header. A header with no following '{' body (a forward
// declaration) still produces a FunctionInfo, but with an empty Calls list
// — this is required for the smart resolver's "implementation preference"
// filter (spec §4.4.2 step 2, scenario 3) to work.
func Parse(filePath, src string) []model.FunctionInfo {
	clean := parser.StripComments(src)
	lineStarts := parser.LineStarts(clean)

	var out []model.FunctionInfo

	lineStart := 0
	for lineNo := 0; lineStart <= len(clean); lineNo++ {
		lineEnd := len(clean)
		if idx := strings.IndexByte(clean[lineStart:], '\n'); idx >= 0 {
			lineEnd = lineStart + idx
		}
		line := clean[lineStart:lineEnd]

		if m := headerRe.FindStringSubmatchIndex(line); m != nil {
			info, ok := parseHeaderAt(filePath, clean, lineStarts, lineStart, m)
			if ok {
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

// parseHeaderAt parses one matched macro header. m is the submatch index
// set from headerRe, relative to the line starting at lineStart.
func parseHeaderAt(filePath, src string, lineStarts []int, lineStart int, m []int) (model.FunctionInfo, bool) {
	isStatic := m[2] >= 0

	macroToken := src[lineStart+m[4] : lineStart+m[5]]
	openParen := lineStart + m[1] - 1 // index of the '(' the match ends on

	macroArgsEnd := parser.FindMatchingDelim(src, openParen, '(', ')')
	if macroArgsEnd < 0 {
		return model.FunctionInfo{}, false
	}
	macroArgs := splitTrim(src[openParen+1 : macroArgsEnd])

	var kind model.FunctionKind
	var returnType, memClass string
	switch macroToken {
	case "FUNC":
		if len(macroArgs) < 2 {
			return model.FunctionInfo{}, false
		}
		kind = model.AutosarFunc
		returnType = macroArgs[0]
		memClass = macroArgs[1]
	case "FUNC_P2VAR":
		if len(macroArgs) < 3 {
			return model.FunctionInfo{}, false
		}
		kind = model.AutosarFuncP2Var
		returnType = macroArgs[0] + "*"
		memClass = macroArgs[1]
	case "FUNC_P2CONST":
		if len(macroArgs) < 3 {
			return model.FunctionInfo{}, false
		}
		kind = model.AutosarFuncP2Const
		returnType = "const " + macroArgs[0] + "*"
		memClass = macroArgs[1]
	default:
		return model.FunctionInfo{}, false
	}

	pos := skipSpace(src, macroArgsEnd+1)
	nameStart := pos
	for pos < len(src) && parser.IsIdentPart(src[pos]) {
		pos++
	}
	name := src[nameStart:pos]
	if name == "" || parser.IsReserved(name) {
		return model.FunctionInfo{}, false
	}

	pos = skipSpace(src, pos)
	if pos >= len(src) || src[pos] != '(' {
		return model.FunctionInfo{}, false
	}
	paramsEnd := parser.FindMatchingDelim(src, pos, '(', ')')
	if paramsEnd < 0 {
		return model.FunctionInfo{}, false
	}
	paramsStr := src[pos+1 : paramsEnd]

	lineNo := lineNumberFor(lineStarts, lineStart)

	var calls []model.FunctionCall
	if bodyStart, bodyEnd, ok := cparser.FindBody(src, paramsEnd+1); ok {
		// Even a macro header, once it has a body, is subject to the same
		// call-site/context extraction as a plain-C definition.
		calls = cparser.ExtractCalls(src[bodyStart:bodyEnd])
	}

	info := model.FunctionInfo{
		Name:        name,
		FilePath:    filePath,
		LineNumber:  lineNo,
		ReturnType:  returnType,
		IsStatic:    isStatic,
		Kind:        kind,
		MemoryClass: memClass,
		MacroType:   macroToken,
		Parameters:  parseParams(paramsStr),
		Calls:       calls,
	}
	return info, true
}

// parseParams parses an AUTOSAR parameter list string (the text between
// the outermost parentheses) into Parameters, honoring the `(void)` rule
// from spec §4.2/B5.
func parseParams(paramsStr string) []model.Parameter {
	trimmed := parser.TrimSpace(paramsStr)
	if trimmed == "void" {
		return nil
	}
	if trimmed == "" {
		return nil
	}

	var params []model.Parameter
	for _, raw := range parser.SplitTopLevel(paramsStr) {
		tok := parser.TrimSpace(raw)
		if tok == "" {
			continue
		}
		if p, ok := parseOneParam(tok); ok {
			params = append(params, p)
		}
	}
	return params
}

func parseOneParam(tok string) (model.Parameter, bool) {
	m := paramMacroRe.FindStringSubmatchIndex(tok)
	if m == nil {
		return fallbackParam(tok)
	}
	macro := tok[m[2]:m[3]]
	openParen := m[1] - 1
	argsEnd := parser.FindMatchingDelim(tok, openParen, '(', ')')
	if argsEnd < 0 {
		return fallbackParam(tok)
	}
	args := splitTrim(tok[openParen+1 : argsEnd])
	if len(args) == 0 {
		return fallbackParam(tok)
	}
	name := parser.TrimSpace(tok[argsEnd+1:])

	baseType := args[0]
	memClass := ""
	if len(args) > 1 {
		memClass = args[1]
	}

	switch macro {
	case "VAR":
		return model.NewAutosarParameter(name, baseType, memClass, false, false), true
	case "P2VAR":
		return model.NewAutosarParameter(name, baseType, memClass, true, false), true
	case "P2CONST":
		return model.NewAutosarParameter(name, baseType, memClass, true, true), true
	case "CONST":
		return model.NewAutosarParameter(name, baseType, memClass, false, true), true
	default:
		return fallbackParam(tok)
	}
}

// fallbackParam handles a plain-C parameter appearing inside an otherwise
// AUTOSAR parameter list (mixed-style signatures).
func fallbackParam(tok string) (model.Parameter, bool) {
	fields := strings.Fields(tok)
	if len(fields) == 0 {
		return model.Parameter{}, false
	}
	name := fields[len(fields)-1]
	isPointer := strings.HasPrefix(name, "*")
	name = strings.TrimLeft(name, "*")
	isConst := false
	var typeParts []string
	for _, f := range fields[:len(fields)-1] {
		if f == "const" {
			isConst = true
			continue
		}
		typeParts = append(typeParts, f)
	}
	return model.NewParameter(name, strings.Join(typeParts, " "), isPointer, isConst), true
}

func splitTrim(s string) []string {
	parts := parser.SplitTopLevel(s)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, parser.TrimSpace(p))
	}
	return out
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpaceOrNewline(s[i]) {
		i++
	}
	return i
}

func isSpaceOrNewline(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func lineNumberFor(lineStarts []int, offset int) int {
	// lineStarts is sorted ascending; binary search for the last start <= offset.
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
