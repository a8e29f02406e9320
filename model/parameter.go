package model

// Parameter is an immutable record describing one function parameter.
// MemoryClass is present only when the source used an AUTOSAR parameter
// macro (VAR, P2VAR, P2CONST, CONST); it is empty for plain-C parameters.
type Parameter struct {
	Name        string
	BaseType    string
	IsPointer   bool
	IsConst     bool
	MemoryClass string
	HasMemClass bool
}

// NewParameter builds a plain-C parameter (no AUTOSAR memory class).
func NewParameter(name, baseType string, isPointer, isConst bool) Parameter {
	return Parameter{Name: name, BaseType: baseType, IsPointer: isPointer, IsConst: isConst}
}

// NewAutosarParameter builds a parameter carrying an AUTOSAR memory class.
func NewAutosarParameter(name, baseType, memClass string, isPointer, isConst bool) Parameter {
	return Parameter{
		Name:        name,
		BaseType:    baseType,
		IsPointer:   isPointer,
		IsConst:     isConst,
		MemoryClass: memClass,
		HasMemClass: true,
	}
}
