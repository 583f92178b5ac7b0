package rules

import (
	"fmt"

	"github.com/dmitrymomot/verity"
)

// asNumber widens any Go numeric kind to float64 for comparison. Validation
// values come out of decoded JSON/YAML documents, so the concrete kind varies
// per decoder.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Min requires a numeric value of at least limit.
func Min(limit float64) *verity.Validator {
	return verity.Test(fmt.Sprintf("must be at least %v", limit),
		func(v any) bool {
			n, ok := asNumber(v)
			return ok && n >= limit
		},
		verity.WithCode(verity.CodeRangeOutOfBounds),
		verity.WithData(map[string]any{"operator": ">=", "limit": limit}),
	)
}

// Max requires a numeric value of at most limit.
func Max(limit float64) *verity.Validator {
	return verity.Test(fmt.Sprintf("must be at most %v", limit),
		func(v any) bool {
			n, ok := asNumber(v)
			return ok && n <= limit
		},
		verity.WithCode(verity.CodeRangeOutOfBounds),
		verity.WithData(map[string]any{"operator": "<=", "limit": limit}),
	)
}

// Between requires a numeric value within [min, max].
func Between(min, max float64) *verity.Validator {
	return verity.Test(fmt.Sprintf("must be between %v and %v", min, max),
		func(v any) bool {
			n, ok := asNumber(v)
			return ok && n >= min && n <= max
		},
		verity.WithCode(verity.CodeRangeOutOfBounds),
		verity.WithData(map[string]any{"min": min, "max": max}),
	)
}

// Positive requires a numeric value greater than zero.
func Positive() *verity.Validator {
	return verity.Test("must be positive",
		func(v any) bool {
			n, ok := asNumber(v)
			return ok && n > 0
		},
		verity.WithCode(verity.CodeRangeOutOfBounds),
		verity.WithData(map[string]any{"operator": ">", "limit": 0}),
	)
}
