package rules

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/verity"
)

// PastDate requires a time.Time strictly before now.
func PastDate() *verity.Validator {
	return verity.Test("date must be in the past",
		func(v any) bool {
			t, ok := v.(time.Time)
			return ok && t.Before(time.Now())
		},
		verity.WithCode(verity.CodeRangeOutOfBounds),
		verity.WithData(map[string]any{"operator": "<", "limit": "now"}),
	)
}

// FutureDate requires a time.Time strictly after now.
func FutureDate() *verity.Validator {
	return verity.Test("date must be in the future",
		func(v any) bool {
			t, ok := v.(time.Time)
			return ok && t.After(time.Now())
		},
		verity.WithCode(verity.CodeRangeOutOfBounds),
		verity.WithData(map[string]any{"operator": ">", "limit": "now"}),
	)
}

// DateAfter requires a time.Time strictly after the given instant.
func DateAfter(after time.Time) *verity.Validator {
	return verity.Test(fmt.Sprintf("date must be after %s", after.Format("2006-01-02")),
		func(v any) bool {
			t, ok := v.(time.Time)
			return ok && t.After(after)
		},
		verity.WithCode(verity.CodeRangeOutOfBounds),
		verity.WithData(map[string]any{"operator": ">", "limit": after.Format(time.RFC3339)}),
	)
}

// DateBefore requires a time.Time strictly before the given instant.
func DateBefore(before time.Time) *verity.Validator {
	return verity.Test(fmt.Sprintf("date must be before %s", before.Format("2006-01-02")),
		func(v any) bool {
			t, ok := v.(time.Time)
			return ok && t.Before(before)
		},
		verity.WithCode(verity.CodeRangeOutOfBounds),
		verity.WithData(map[string]any{"operator": "<", "limit": before.Format(time.RFC3339)}),
	)
}

// DateBetween requires a time.Time within [start, end], inclusive on both
// ends.
func DateBetween(start, end time.Time) *verity.Validator {
	return verity.Test(
		fmt.Sprintf("date must be between %s and %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
		func(v any) bool {
			t, ok := v.(time.Time)
			if !ok {
				return false
			}
			return !t.Before(start) && !t.After(end)
		},
		verity.WithCode(verity.CodeRangeOutOfBounds),
		verity.WithData(map[string]any{
			"min": start.Format(time.RFC3339),
			"max": end.Format(time.RFC3339),
		}),
	)
}
