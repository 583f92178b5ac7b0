package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/verity"
)

// NotEmpty requires a string with at least one non-whitespace character.
func NotEmpty() *verity.Validator {
	return verity.Test("must not be empty",
		func(v any) bool {
			s, ok := v.(string)
			return ok && strings.TrimSpace(s) != ""
		},
		verity.WithCode(verity.CodeLengthOutOfBounds),
		verity.WithData(map[string]any{"operator": ">=", "limit": 1}),
	)
}

// MinLen requires at least min characters, counted in runes.
func MinLen(min int) *verity.Validator {
	return verity.Test(fmt.Sprintf("must be at least %d characters long", min),
		func(v any) bool {
			s, ok := v.(string)
			return ok && utf8.RuneCountInString(s) >= min
		},
		verity.WithCode(verity.CodeLengthOutOfBounds),
		verity.WithData(map[string]any{"operator": ">=", "limit": min}),
	)
}

// MaxLen requires at most max characters, counted in runes.
func MaxLen(max int) *verity.Validator {
	return verity.Test(fmt.Sprintf("must be at most %d characters long", max),
		func(v any) bool {
			s, ok := v.(string)
			return ok && utf8.RuneCountInString(s) <= max
		},
		verity.WithCode(verity.CodeLengthOutOfBounds),
		verity.WithData(map[string]any{"operator": "<=", "limit": max}),
	)
}

// LenBetween requires a character count within [min, max].
func LenBetween(min, max int) *verity.Validator {
	return verity.Test(fmt.Sprintf("must be between %d and %d characters long", min, max),
		func(v any) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			n := utf8.RuneCountInString(s)
			return n >= min && n <= max
		},
		verity.WithCode(verity.CodeLengthOutOfBounds),
		verity.WithData(map[string]any{"min": min, "max": max}),
	)
}

// Matches requires the string to match the regular expression pattern. The
// pattern is compiled once at construction; an invalid pattern panics, which
// surfaces misconfiguration at startup rather than per validation.
func Matches(pattern string) *verity.Validator {
	re := regexp.MustCompile(pattern)
	return verity.Test(fmt.Sprintf("must match pattern %q", pattern),
		func(v any) bool {
			s, ok := v.(string)
			return ok && re.MatchString(s)
		},
		verity.WithCode(verity.CodePatternMismatch),
		verity.WithData(map[string]any{"pattern": pattern}),
	)
}

// HasPrefix requires the string to start with prefix.
func HasPrefix(prefix string) *verity.Validator {
	return verity.Test(fmt.Sprintf("must start with %q", prefix),
		func(v any) bool {
			s, ok := v.(string)
			return ok && strings.HasPrefix(s, prefix)
		},
		verity.WithCode(verity.CodePatternMismatch),
		verity.WithData(map[string]any{"prefix": prefix}),
	)
}

// IsUpperCase requires every cased character to be upper case.
func IsUpperCase() *verity.Validator {
	return verity.Test("must be upper case",
		func(v any) bool {
			s, ok := v.(string)
			return ok && !strings.ContainsFunc(s, unicode.IsLower)
		},
		verity.WithCode(verity.CodeCaseMismatch),
		verity.WithData(map[string]any{"case": "upper"}),
	)
}

// IsLowerCase requires every cased character to be lower case.
func IsLowerCase() *verity.Validator {
	return verity.Test("must be lower case",
		func(v any) bool {
			s, ok := v.(string)
			return ok && !strings.ContainsFunc(s, unicode.IsUpper)
		},
		verity.WithCode(verity.CodeCaseMismatch),
		verity.WithData(map[string]any{"case": "lower"}),
	)
}
