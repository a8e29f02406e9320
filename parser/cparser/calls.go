package cparser

import (
	"github.com/melodypapa/autosar-calltree/model"
	"github.com/melodypapa/autosar-calltree/parser"
)

// controlKeywords are identifiers that can be immediately followed by '('
// without naming a function call.
var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"sizeof": true, "return": true, "do": true, "else": true,
}

// frame tracks one enclosing conditional branch or loop body while
// scanning a function body for call sites (spec §4.3.3/§4.3.4).
type frame struct {
	enterDepth int
	singleStmt bool
	isLoop     bool
	condition  string
}

// ExtractCalls scans a function body (the text strictly between its
// outermost braces) for call sites, tagging each with whether it occurs
// inside an if/else branch and/or a for/while/do-while loop, along with the
// collapsed condition text of the nearest enclosing construct of each kind.
func ExtractCalls(body string) []model.FunctionCall {
	doWhileConds := findDoWhileConditions(body)

	var calls []model.FunctionCall
	var stack []frame
	depth := 0

	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == '"':
			i = parser.SkipStringLiteral(body, i)
			continue
		case c == '\'':
			i = parser.SkipCharLiteral(body, i)
			continue
		case c == '{':
			depth++
			i++
			continue
		case c == '}':
			depth--
			for len(stack) > 0 && !stack[len(stack)-1].singleStmt && stack[len(stack)-1].enterDepth == depth {
				stack = stack[:len(stack)-1]
			}
			i++
			continue
		case c == ';':
			i++
			for len(stack) > 0 && stack[len(stack)-1].singleStmt && stack[len(stack)-1].enterDepth == depth {
				stack = stack[:len(stack)-1]
			}
			continue
		case parser.IsIdentStart(c):
			start := i
			for i < len(body) && parser.IsIdentPart(body[i]) {
				i++
			}
			word := body[start:i]

			if controlKeywords[word] {
				next := handleKeyword(body, word, start, i, depth, doWhileConds, &stack)
				i = next
				continue
			}

			// Candidate call site: identifier followed (after whitespace) by '('.
			j := skipSpace(body, i)
			if j < len(body) && body[j] == '(' {
				if !parser.IsReserved(word) {
					calls = append(calls, buildCall(word, stack))
				}
			}
			continue
		default:
			i++
		}
	}

	return calls
}

// handleKeyword processes an "if"/"else"/"for"/"while"/"do" token found at
// body[wordStart:wordEnd] and pushes a context frame if it introduces a
// conditional branch or loop. It returns the index to resume scanning from.
func handleKeyword(body, word string, wordStart, wordEnd, depth int, doWhileConds map[int]string, stack *[]frame) int {
	switch word {
	case "if", "for", "while":
		pos := skipSpace(body, wordEnd)
		if pos >= len(body) || body[pos] != '(' {
			return wordEnd
		}
		condEnd := parser.FindMatchingDelim(body, pos, '(', ')')
		if condEnd < 0 {
			return wordEnd
		}
		cond := parser.CollapseSpace(body[pos+1 : condEnd])
		isLoop := word == "for" || word == "while"
		after := skipSpace(body, condEnd+1)
		singleStmt := !(after < len(body) && body[after] == '{')
		*stack = append(*stack, frame{enterDepth: depth, isLoop: isLoop, condition: cond, singleStmt: singleStmt})
		// Condition contents are not rescanned for their own call sites —
		// the condition text is preserved verbatim for display, but calls
		// made there aren't tree nodes in their own right.
		return condEnd + 1

	case "else":
		pos := skipSpace(body, wordEnd)
		if isElseIf(body, pos) {
			// "else if": the following "if" token pushes the one combined
			// frame (spec §4.3.4), so else doesn't push a wrapper of its
			// own — otherwise that wrapper only pops on a bare ";", never
			// fires for a braced "else if (...) { ... }", and taints every
			// statement after the whole chain as conditional.
			return wordEnd
		}
		if pos < len(body) && body[pos] == '{' {
			*stack = append(*stack, frame{enterDepth: depth})
		} else if pos < len(body) {
			*stack = append(*stack, frame{enterDepth: depth, singleStmt: true})
		}
		return wordEnd

	case "do":
		cond := doWhileConds[wordStart]
		*stack = append(*stack, frame{enterDepth: depth, isLoop: true, condition: cond})
		return wordEnd

	default:
		return wordEnd
	}
}

// buildCall constructs a FunctionCall for calleeName given the current
// context stack, taking the nearest enclosing conditional and the nearest
// enclosing loop (they may be the same frame or different frames).
func buildCall(calleeName string, stack []frame) model.FunctionCall {
	call := model.FunctionCall{CalleeName: calleeName}
	for i := len(stack) - 1; i >= 0; i-- {
		f := stack[i]
		if !call.IsConditional && !f.isLoop {
			call.IsConditional = true
			call.ConditionText = f.condition
		}
		if !call.IsLoop && f.isLoop {
			call.IsLoop = true
			call.LoopConditionText = f.condition
		}
		if call.IsConditional && call.IsLoop {
			break
		}
	}
	return call
}

// findDoWhileConditions locates every "do { ... } while ( ... )" construct
// in body and returns the trailing condition text keyed by the byte offset
// of the "do" keyword, so the forward-scanning call extractor can attach
// the (textually later) condition to calls made inside the loop body.
func findDoWhileConditions(body string) map[int]string {
	conds := make(map[int]string)
	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == '"':
			i = parser.SkipStringLiteral(body, i)
		case c == '\'':
			i = parser.SkipCharLiteral(body, i)
		case parser.IsIdentStart(c):
			start := i
			for i < len(body) && parser.IsIdentPart(body[i]) {
				i++
			}
			if body[start:i] != "do" {
				continue
			}
			pos := skipSpace(body, i)
			if pos >= len(body) || body[pos] != '{' {
				continue
			}
			blockEnd := parser.FindMatchingDelim(body, pos, '{', '}')
			if blockEnd < 0 {
				continue
			}
			pos = skipSpace(body, blockEnd+1)
			if pos+5 > len(body) || body[pos:pos+5] != "while" {
				continue
			}
			pos = skipSpace(body, pos+5)
			if pos >= len(body) || body[pos] != '(' {
				continue
			}
			condEnd := parser.FindMatchingDelim(body, pos, '(', ')')
			if condEnd < 0 {
				continue
			}
			conds[start] = parser.CollapseSpace(body[pos+1 : condEnd])
		default:
			i++
		}
	}
	return conds
}

// isElseIf reports whether body[pos:] begins with the keyword "if" (as its
// own token, not an identifier prefix like "ifdef").
func isElseIf(body string, pos int) bool {
	if pos+2 > len(body) || body[pos:pos+2] != "if" {
		return false
	}
	return pos+2 >= len(body) || !parser.IsIdentPart(body[pos+2])
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
