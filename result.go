package verity

import (
	"log/slog"
	"strconv"
	"strings"
)

// Result is the outcome of evaluating one validator against one value.
// The invariant Valid == (len(Expectations) == 0) holds for every result the
// engine returns.
type Result struct {
	// Valid reports whether the value satisfied the validator.
	Valid bool

	// Value is the possibly coerced value on success, or the last-known
	// value on failure.
	Value any

	// OriginalValue is the pristine input before any coercion, retained for
	// diagnostics even after transformation.
	OriginalValue any

	// Expectations lists the unmet constraints, in evaluation order. Empty
	// when Valid is true.
	Expectations []Expectation
}

// Valid constructs a successful result carrying the (possibly coerced) value.
func Valid(value any) Result {
	return Result{Valid: true, Value: value, OriginalValue: value}
}

// Invalid constructs a failing result. Constructing a failure without any
// expectation is a programming error; it is normalized into a placeholder
// expectation carrying the legacy CodeInvalid classification so that a
// failure is never silently empty.
func Invalid(value any, expectations ...Expectation) Result {
	if len(expectations) == 0 {
		expectations = []Expectation{{
			Message: "value is invalid",
			Value:   value,
			Code:    CodeInvalid,
		}}
	}
	return Result{Value: value, OriginalValue: value, Expectations: expectations}
}

// Description renders every expectation with its path, one per line, for
// logging. The rendering is deterministic but not authoritative; the
// Expectations slice is.
func (r Result) Description() string {
	if r.Valid {
		return "valid"
	}

	var b strings.Builder
	b.WriteString("invalid:")
	for _, e := range r.Expectations {
		b.WriteString("\n- ")
		b.WriteString(e.String())
	}
	return b.String()
}

// LogValue implements slog.LogValuer so results can be logged structurally.
func (r Result) LogValue() slog.Value {
	if r.Valid {
		return slog.GroupValue(slog.Bool("valid", true))
	}

	attrs := make([]slog.Attr, 0, len(r.Expectations)+1)
	attrs = append(attrs, slog.Bool("valid", false))
	for i, e := range r.Expectations {
		fields := []slog.Attr{slog.String("message", e.Message)}
		if e.Path != "" {
			fields = append(fields, slog.String("path", e.Path))
		}
		if e.Code != "" {
			fields = append(fields, slog.String("code", e.Code))
		}
		attrs = append(attrs, slog.Attr{
			Key:   "expectation_" + strconv.Itoa(i),
			Value: slog.GroupValue(fields...),
		})
	}
	return slog.GroupValue(attrs...)
}
