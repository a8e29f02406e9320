// Package parser holds scanning primitives and reserved-name tables shared
// by the AUTOSAR and C parsers: comment stripping, brace/paren matching by
// depth counting (never by regex, per spec §9 "Avoiding catastrophic
// backtracking"), and the keyword/type-name sets that keep control-flow
// keywords from being mistaken for function declarations or call sites.
package parser

// ReservedKeywords is every C keyword that could precede '(' without being
// a function declaration or call (if, while, sizeof, ...). A name in this
// set is never accepted as a function name or call target.
var ReservedKeywords = buildSet([]string{
	"if", "else", "while", "for", "do", "switch", "case", "default",
	"return", "break", "continue", "goto", "typedef", "struct", "union",
	"enum", "static", "extern", "auto", "register", "volatile", "const",
	"inline", "sizeof",
})

// ReservedTypeNames is the set of common AUTOSAR scalar type names that,
// followed by '(', would otherwise look like a cast-style call or a
// declaration (e.g. "(uint8)(x)"). Declaration names may not equal one of
// these.
var ReservedTypeNames = buildSet([]string{
	"uint8", "uint16", "uint32", "sint8", "sint16", "sint32",
	"boolean", "float32", "float64", "Std_ReturnType",
})

func buildSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsReserved reports whether name is a C keyword or a reserved AUTOSAR
// scalar type name, and so must never be accepted as a function name or
// emitted as a FunctionCall target (spec §4.3.1, property P7).
func IsReserved(name string) bool {
	if _, ok := ReservedKeywords[name]; ok {
		return true
	}
	_, ok := ReservedTypeNames[name]
	return ok
}
