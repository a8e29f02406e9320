package model

// CircularDependency records a detected cycle. Names holds the qualified
// names on the call stack from the root at detection time, followed by the
// name that closed the cycle, which also appears earlier in Names. Names[0]
// equals the last entry only when the cycle runs back to the root.
type CircularDependency struct {
	Names []string
	Depth int
}
