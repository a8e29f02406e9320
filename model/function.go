package model

import "fmt"

// FunctionInfo describes one function definition site. Two FunctionInfo
// values compare equal iff their identity triple (Name, FilePath,
// LineNumber) is equal; Identity returns the comparable key.
type FunctionInfo struct {
	Name       string
	FilePath   string
	LineNumber int

	ReturnType string
	IsStatic   bool
	Kind       FunctionKind

	// MemoryClass and MacroType are set only for AUTOSAR-recognized
	// definitions (FUNC's <class>, FUNC_P2VAR/FUNC_P2CONST's <mem_class>).
	MemoryClass string
	MacroType   string

	Parameters []Parameter
	Calls      []FunctionCall

	// CalledBy is populated only by explicit AddCaller calls; the function
	// database and the tree builder neither fill nor read it.
	CalledBy map[string]struct{}

	QualifiedName string
	HasQualified  bool

	SWModule    string
	HasSWModule bool
}

// Identity is the (name, file_path, line_number) triple that FunctionInfo
// equality and hashing are defined over.
type Identity struct {
	Name       string
	FilePath   string
	LineNumber int
}

// Identity returns this function's identity triple.
func (f *FunctionInfo) Identity() Identity {
	return Identity{Name: f.Name, FilePath: f.FilePath, LineNumber: f.LineNumber}
}

// Equal reports whether two FunctionInfos share an identity triple.
func (f *FunctionInfo) Equal(other *FunctionInfo) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Identity() == other.Identity()
}

// IsRTE reports whether this function is an RTE call: its name begins with
// "Rte_" or its Kind is explicitly RteCall.
func (f *FunctionInfo) IsRTE() bool {
	if f.Kind == RteCall {
		return true
	}
	return len(f.Name) >= 4 && f.Name[:4] == "Rte_"
}

// AddCaller records a caller name in the lazily-populated CalledBy set.
func (f *FunctionInfo) AddCaller(name string) {
	if f.CalledBy == nil {
		f.CalledBy = make(map[string]struct{})
	}
	f.CalledBy[name] = struct{}{}
}

// String renders a short human-readable identity for logging.
func (f *FunctionInfo) String() string {
	return fmt.Sprintf("%s (%s:%d)", f.Name, f.FilePath, f.LineNumber)
}
