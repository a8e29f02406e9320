package output

import (
	"fmt"
	"strings"

	"github.com/melodypapa/autosar-calltree/model"
)

// ExitCode represents the exit code for the CLI.
type ExitCode int

const (
	// ExitCodeSuccess indicates a clean run: a tree was produced and
	// nothing in --fail-on was triggered.
	ExitCodeSuccess ExitCode = 0

	// ExitCodeFlagged indicates the run completed but triggered a
	// condition named in --fail-on (cycles found, or parse errors
	// encountered while building the function database).
	ExitCodeFlagged ExitCode = 1

	// ExitCodeError indicates the run could not produce a tree at all
	// because the start function was never resolved. Errors such as a
	// failure to read the source tree are returned as errors instead and
	// exit with status 1; an unreadable cache is treated as a cache miss.
	ExitCodeError ExitCode = 2
)

// InvalidFailOnCategoryError is returned when an unrecognized --fail-on
// category is provided.
type InvalidFailOnCategoryError struct {
	Category string
	Valid    []string
}

func (e *InvalidFailOnCategoryError) Error() string {
	return fmt.Sprintf("invalid fail-on category '%s', must be one of: %s",
		e.Category, strings.Join(e.Valid, ", "))
}

var validFailOnCategories = map[string]bool{
	"cycles":       true,
	"parse-errors": true,
}

// DetermineExitCode calculates the appropriate exit code for one
// build+trace run.
//
// Exit code precedence:
//  1. ExitCodeError (2) - hadErrors is true, or result produced no tree.
//  2. ExitCodeFlagged (1) - a --fail-on category matched: "cycles" and
//     result has at least one CircularDependency, or "parse-errors" and
//     parseErrors is non-empty.
//  3. ExitCodeSuccess (0) - otherwise.
func DetermineExitCode(result *model.AnalysisResult, parseErrors []string, failOn []string, hadErrors bool) ExitCode {
	if hadErrors || result == nil || !result.Succeeded() {
		return ExitCodeError
	}

	failOnSet := make(map[string]bool, len(failOn))
	for _, category := range failOn {
		failOnSet[strings.ToLower(category)] = true
	}

	if failOnSet["cycles"] && len(result.Cycles) > 0 {
		return ExitCodeFlagged
	}
	if failOnSet["parse-errors"] && len(parseErrors) > 0 {
		return ExitCodeFlagged
	}

	return ExitCodeSuccess
}

// ParseFailOn parses the comma-separated --fail-on flag value into a
// slice of categories. Empty strings and whitespace are trimmed. Returns
// an empty slice for empty input.
func ParseFailOn(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{}
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ValidateFailOnCategories checks that all provided categories are
// recognized. Valid categories are: cycles, parse-errors
// (case-insensitive). Returns InvalidFailOnCategoryError for the first
// unrecognized category encountered.
func ValidateFailOnCategories(categories []string) error {
	validList := []string{"cycles", "parse-errors"}

	for _, category := range categories {
		normalized := strings.ToLower(category)
		if !validFailOnCategories[normalized] {
			return &InvalidFailOnCategoryError{
				Category: category,
				Valid:    validList,
			}
		}
	}
	return nil
}
