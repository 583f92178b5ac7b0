package verity

import (
	"strconv"
	"strings"
)

// Machine-readable expectation codes. The taxonomy is dot-namespaced and
// stable; new leaf codes may be added but existing ones never change meaning.
const (
	// type.* — runtime type mismatches.
	CodeTypeMismatch   = "type.mismatch"
	CodeCoercionFailed = "type.coercion_failed"

	// value.* — intrinsic content problems.
	CodeRangeOutOfBounds  = "value.range_out_of_bounds"
	CodeLengthOutOfBounds = "value.length_out_of_bounds"
	CodePatternMismatch   = "value.pattern_mismatch"
	CodeNotEqual          = "value.not_equal"
	CodeNotInSet          = "value.not_in_set"
	CodeCaseMismatch      = "value.case_mismatch"
	CodeFormatInvalid     = "value.format_invalid"
	CodeExprFailed        = "value.expr_failed"

	// structure.* — container shape problems.
	CodeUnknownKey    = "structure.unknown_key"
	CodeFieldInvalid  = "structure.field_invalid"
	CodeItemInvalid   = "structure.item_invalid"
	CodeContextMisuse = "structure.context_misuse"

	// logic.* — combinator-level outcomes.
	CodeNot       = "logic.not"
	CodePredicate = "logic.predicate"

	// CodeInvalid is the legacy pre-namespacing code, retained for backward
	// compatibility with consumers that match on it.
	CodeInvalid = "invalid"
)

// Expectation describes a single unmet constraint: what was expected at which
// location, what was observed instead, and a machine-readable classification.
type Expectation struct {
	// Path addresses the location within the root value using dot notation
	// for map fields and bracket notation for list indexes, e.g.
	// "address.street" or "items[2].name". Empty at the root.
	Path string

	// Message is a human-readable description of the expectation.
	Message string

	// Value is the value actually observed at Path.
	Value any

	// Code is the optional machine-readable classification, one of the
	// Code* constants or a caller-defined dot-namespaced extension.
	Code string

	// Data carries structured metadata specific to Code, e.g.
	// {"operator": ">=", "limit": 18}.
	Data map[string]any
}

// AddToPath returns a copy of the expectation with the map field name
// prepended to its path.
func (e Expectation) AddToPath(field string) Expectation {
	switch {
	case e.Path == "":
		e.Path = field
	case strings.HasPrefix(e.Path, "["):
		e.Path = field + e.Path
	default:
		e.Path = field + "." + e.Path
	}
	return e
}

// AddIndexToPath returns a copy of the expectation with the list index
// prepended to its path.
func (e Expectation) AddIndexToPath(index int) Expectation {
	segment := "[" + strconv.Itoa(index) + "]"
	switch {
	case e.Path == "":
		e.Path = segment
	case strings.HasPrefix(e.Path, "["):
		e.Path = segment + e.Path
	default:
		e.Path = segment + "." + e.Path
	}
	return e
}

// String renders the expectation as "path: message", or just the message
// when the expectation sits at the root.
func (e Expectation) String() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}
