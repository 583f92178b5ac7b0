package rules

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/verity"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email requires a plausibly-formed email address. The check is a pragmatic
// pattern, not a full RFC 5322 parse; deliverability is a caller concern.
func Email() *verity.Validator {
	return verity.Test("must be a valid email address",
		func(v any) bool {
			s, ok := v.(string)
			return ok && emailRe.MatchString(s)
		},
		verity.WithCode(verity.CodeFormatInvalid),
		verity.WithData(map[string]any{"format": "email"}),
	)
}

// UUID requires a canonical 36-character UUID string. Length and hyphen
// positions are checked before parsing to reject malformed input cheaply.
func UUID() *verity.Validator {
	return verity.Test("must be a valid UUID",
		func(v any) bool {
			s, ok := v.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return false
			}
			if len(s) != 36 {
				return false
			}
			if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
				return false
			}
			_, err := uuid.Parse(s)
			return err == nil
		},
		verity.WithCode(verity.CodeFormatInvalid),
		verity.WithData(map[string]any{"format": "uuid"}),
	)
}

// NonNilUUID requires a canonical UUID string that is not the nil UUID.
func NonNilUUID() *verity.Validator {
	return verity.Test("UUID cannot be nil",
		func(v any) bool {
			s, ok := v.(string)
			if !ok || len(s) != 36 {
				return false
			}
			parsed, err := uuid.Parse(s)
			return err == nil && parsed != uuid.Nil
		},
		verity.WithCode(verity.CodeFormatInvalid),
		verity.WithData(map[string]any{"format": "uuid"}),
	)
}
