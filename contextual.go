package verity

import (
	"context"
	"sync"

	"github.com/dmitrymomot/verity/pkg/future"
)

// When builds a conditional validator for use as a field inside a Map. The
// condition validator is evaluated against the enclosing container; the field
// value is then checked with then on success, otherwise on failure. A nil
// otherwise accepts the field implicitly. Evaluated outside of a map, the
// validator fails with a fixed structure.context_misuse expectation rather
// than panicking.
func When(condition, then, otherwise *Validator) *Validator {
	return &Validator{
		run: func(ec *evalCtx, in input) (Result, error) {
			if !in.hasParent {
				return Invalid(in.value, contextMisuse(in.value)), nil
			}

			condRes, err := condition.evaluate(ec, input{value: anyMap(in.parent), present: true})
			if err != nil {
				return Result{}, err
			}

			branch := otherwise
			if condRes.Valid {
				branch = then
			}
			if branch == nil {
				return Valid(in.value), nil
			}
			return branch.evaluate(ec, in)
		},
	}
}

// ResolveWith builds a field validator chosen at evaluation time from the
// enclosing container. Returning nil marks the field implicitly valid. Like
// When, it is only usable inside a Map.
func ResolveWith(fn func(parent map[string]any) *Validator) *Validator {
	return &Validator{
		run: func(ec *evalCtx, in input) (Result, error) {
			if !in.hasParent {
				return Invalid(in.value, contextMisuse(in.value)), nil
			}

			resolved := fn(in.parent)
			if resolved == nil {
				return Valid(in.value), nil
			}
			return resolved.evaluate(ec, in)
		},
	}
}

// ResolveWithAsync is ResolveWith for resolvers that must suspend, such as a
// lookup against an external source. The validator can only be evaluated
// through ValidateAsync; the synchronous path reports ErrAsyncValidator
// before the resolver is ever invoked.
func ResolveWithAsync(fn func(ctx context.Context, parent map[string]any) (*Validator, error)) *Validator {
	return &Validator{
		run: func(ec *evalCtx, in input) (Result, error) {
			if !in.hasParent {
				return Invalid(in.value, contextMisuse(in.value)), nil
			}
			if !ec.async() {
				return Result{}, ErrAsyncValidator
			}

			resolved, err := future.Go(ec.ctx, in.parent, fn).Await()
			if err != nil {
				return Result{}, err
			}
			if resolved == nil {
				return Valid(in.value), nil
			}
			return resolved.evaluate(ec, in)
		},
	}
}

// Lazy defers construction of a validator until first use, enabling
// self-referential schemas such as a tree node whose children are validated
// by the node validator itself. The thunk runs at most once; its result is
// memoized for all subsequent evaluations.
func Lazy(fn func() *Validator) *Validator {
	var once sync.Once
	var resolved *Validator

	return &Validator{
		run: func(ec *evalCtx, in input) (Result, error) {
			once.Do(func() { resolved = fn() })
			return resolved.evaluate(ec, in)
		},
	}
}

// anyMap converts the container to a plain value, collapsing a nil map into
// an untyped nil so nullable semantics apply to it.
func anyMap(m map[string]any) any {
	if m == nil {
		return nil
	}
	return m
}
