package rules

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dmitrymomot/verity"
)

// Eq requires the value to deeply equal expected.
func Eq(expected any) *verity.Validator {
	return verity.Test(fmt.Sprintf("must equal %v", expected),
		func(v any) bool {
			return reflect.DeepEqual(v, expected)
		},
		verity.WithCode(verity.CodeNotEqual),
		verity.WithData(map[string]any{"expected": expected}),
	)
}

// EqualFold requires a string equal to expected under Unicode case folding.
func EqualFold(expected string) *verity.Validator {
	folded := cases.Fold().String(expected)
	return verity.Test(fmt.Sprintf("must equal %q (case-insensitive)", expected),
		func(v any) bool {
			s, ok := v.(string)
			// Casers are stateful; one per call keeps the rule reentrant.
			return ok && cases.Fold().String(s) == folded
		},
		verity.WithCode(verity.CodeNotEqual),
		verity.WithData(map[string]any{"expected": expected, "fold": true}),
	)
}

// OneOf requires the value to deeply equal one of the choices.
func OneOf(choices ...any) *verity.Validator {
	rendered := make([]string, 0, len(choices))
	for _, c := range choices {
		rendered = append(rendered, fmt.Sprintf("%v", c))
	}
	return verity.Test(fmt.Sprintf("must be one of: %s", strings.Join(rendered, ", ")),
		func(v any) bool {
			for _, c := range choices {
				if reflect.DeepEqual(v, c) {
					return true
				}
			}
			return false
		},
		verity.WithCode(verity.CodeNotInSet),
		verity.WithData(map[string]any{"choices": choices}),
	)
}
