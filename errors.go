package verity

import (
	"errors"
	"strings"
)

// ErrAsyncValidator is returned by the synchronous entry points when the
// validator graph contains work that must suspend. The synchronous path never
// blocks or polls; callers that can encounter asynchronous validators must use
// ValidateAsync instead.
var ErrAsyncValidator = errors.New("verity: asynchronous validator evaluated synchronously")

// Error wraps a failing Result so it can travel as an error value. It is what
// ValidateValue returns and MustValidate panics with when validation fails.
type Error struct {
	Result Result
}

// Error implements the error interface with a one-line summary of every
// unmet expectation.
func (e *Error) Error() string {
	if len(e.Result.Expectations) == 0 {
		return "verity: validation failed"
	}

	parts := make([]string, 0, len(e.Result.Expectations))
	for _, exp := range e.Result.Expectations {
		parts = append(parts, exp.String())
	}
	return "verity: validation failed: " + strings.Join(parts, "; ")
}

// AsError extracts a validation *Error from err, or nil when err carries no
// validation failure.
func AsError(err error) *Error {
	var verr *Error
	if errors.As(err, &verr) {
		return verr
	}
	return nil
}
