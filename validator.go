package verity

import (
	"context"

	"github.com/dmitrymomot/verity/pkg/future"
)

// input carries one value through the evaluation tree together with its
// presence information and, for fields of a map under validation, the
// enclosing container.
type input struct {
	value     any
	present   bool
	parent    map[string]any
	hasParent bool
}

// evalCtx distinguishes synchronous from asynchronous evaluation. ctx is
// non-nil only on the asynchronous path; leaves that must suspend check it
// and refuse to run synchronously.
type evalCtx struct {
	ctx context.Context
}

func (ec *evalCtx) async() bool {
	return ec.ctx != nil
}

type evalFunc func(ec *evalCtx, in input) (Result, error)

type nodeKind int

const (
	kindLeaf nodeKind = iota
	kindAll
	kindAllCollect
	kindAny
	kindNone
)

// Validator decides whether a value satisfies some constraint, possibly
// coercing it along the way. Validators are immutable once constructed and
// hold no per-evaluation state, so a single graph can serve any number of
// concurrent evaluations. Attribute changes (Optional, Nullable, WithMessage)
// return new instances.
type Validator struct {
	kind     nodeKind
	nullable bool
	optional bool

	// message, when set, replaces the aggregated expectation text on
	// failure while preserving the underlying code and data.
	message string

	// label names what the validator checks, used when a negating
	// combinator must describe a child that passed without producing any
	// expectation of its own.
	label string

	children []*Validator
	policy   policy

	run evalFunc
}

// Validate evaluates the value synchronously. It returns ErrAsyncValidator
// the moment evaluation reaches a validator that must suspend; it never
// blocks waiting for asynchronous work, even work that may already have
// finished, so the outcome never depends on scheduling.
func (v *Validator) Validate(value any) (Result, error) {
	return v.evaluate(&evalCtx{}, input{value: value, present: true})
}

// ValidateAsync evaluates the value on a new goroutine, awaiting any
// suspension points, and returns a future for the eventual Result. For graphs
// without asynchronous validators it yields exactly the same Result as
// Validate, including expectation order.
func (v *Validator) ValidateAsync(ctx context.Context, value any) *future.Future[Result] {
	return future.Go(ctx, value, func(ctx context.Context, value any) (Result, error) {
		return v.evaluate(&evalCtx{ctx: ctx}, input{value: value, present: true})
	})
}

// ValidateValue evaluates synchronously and returns the coerced value, or a
// *Error carrying the full Result when the value is invalid.
func (v *Validator) ValidateValue(value any) (any, error) {
	res, err := v.Validate(value)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return res.Value, &Error{Result: res}
	}
	return res.Value, nil
}

// MustValidate is like ValidateValue but panics with the *Error on failure.
// Intended for validating trusted values at startup.
func (v *Validator) MustValidate(value any) any {
	out, err := v.ValidateValue(value)
	if err != nil {
		panic(err)
	}
	return out
}

// IsOptional reports whether a missing value short-circuits to success.
func (v *Validator) IsOptional() bool { return v.optional }

// IsNullable reports whether an explicitly-present nil short-circuits to
// success.
func (v *Validator) IsNullable() bool { return v.nullable }

// Optional returns a validator that accepts a missing value without
// consulting any constraint. Applying it to an already-optional validator
// returns the validator unchanged.
func (v *Validator) Optional() *Validator {
	if v.optional {
		return v
	}
	c := *v
	c.optional = true
	return &c
}

// Nullable returns a validator that accepts an explicitly-present nil without
// consulting any constraint. Idempotent.
func (v *Validator) Nullable() *Validator {
	if v.nullable {
		return v
	}
	c := *v
	c.nullable = true
	return &c
}

// WithMessage returns a validator whose failure reports the given message in
// place of the aggregated expectation text. The machine-readable code and
// data of the underlying failure are preserved.
func (v *Validator) WithMessage(message string) *Validator {
	if v.message == message {
		return v
	}
	c := *v
	c.message = message
	return &c
}

// evaluate applies presence semantics, runs the validator core, and applies
// any message override. Every evaluation path funnels through here so the
// synchronous and asynchronous entry points cannot diverge.
func (v *Validator) evaluate(ec *evalCtx, in input) (Result, error) {
	if !in.present {
		if v.optional {
			return Valid(nil), nil
		}
	} else if in.value == nil && v.nullable {
		return Valid(nil), nil
	}

	var res Result
	var err error
	if v.kind == kindLeaf {
		res, err = v.run(ec, in)
	} else {
		res, err = v.combine(ec, in)
	}
	if err != nil {
		return Result{}, err
	}

	if !res.Valid && v.message != "" {
		first := res.Expectations[0]
		res.Expectations = []Expectation{{
			Path:    first.Path,
			Message: v.message,
			Value:   first.Value,
			Code:    first.Code,
			Data:    first.Data,
		}}
	}
	return res, nil
}

// TestOption customizes the expectation produced by a failing leaf validator.
type TestOption func(*testConfig)

type testConfig struct {
	code string
	data map[string]any
}

// WithCode sets the machine-readable code reported on failure.
func WithCode(code string) TestOption {
	return func(c *testConfig) { c.code = code }
}

// WithData attaches structured metadata to the failure expectation.
func WithData(data map[string]any) TestOption {
	return func(c *testConfig) { c.data = data }
}

// Test builds a leaf validator from a plain predicate. On failure it reports
// a single expectation with the given message; the code defaults to
// CodePredicate unless overridden with WithCode.
func Test(message string, fn func(value any) bool, opts ...TestOption) *Validator {
	cfg := testConfig{code: CodePredicate}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Validator{
		label: message,
		run: func(_ *evalCtx, in input) (Result, error) {
			if fn(in.value) {
				return Valid(in.value), nil
			}
			return Invalid(in.value, Expectation{
				Message: message,
				Value:   in.value,
				Code:    cfg.code,
				Data:    cfg.data,
			}), nil
		},
	}
}

// TestAsync builds a leaf validator around a predicate that may suspend, such
// as a lookup against an external source. The validator can only be evaluated
// through ValidateAsync; the synchronous path reports ErrAsyncValidator. An
// error returned by fn aborts the evaluation, it is not a validation failure.
func TestAsync(message string, fn func(ctx context.Context, value any) (bool, error), opts ...TestOption) *Validator {
	cfg := testConfig{code: CodePredicate}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Validator{
		label: message,
		run: func(ec *evalCtx, in input) (Result, error) {
			if !ec.async() {
				return Result{}, ErrAsyncValidator
			}

			ok, err := future.Go(ec.ctx, in.value, fn).Await()
			if err != nil {
				return Result{}, err
			}
			if ok {
				return Valid(in.value), nil
			}
			return Invalid(in.value, Expectation{
				Message: message,
				Value:   in.value,
				Code:    cfg.code,
				Data:    cfg.data,
			}), nil
		},
	}
}

// TestCtx builds a leaf validator whose predicate inspects the enclosing
// container instead of the field value. It is only meaningful as a field
// validator inside a Map; evaluated anywhere else it fails with a fixed
// misuse expectation.
func TestCtx(message string, fn func(parent map[string]any) bool, opts ...TestOption) *Validator {
	cfg := testConfig{code: CodePredicate}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Validator{
		label: message,
		run: func(_ *evalCtx, in input) (Result, error) {
			if !in.hasParent {
				return Invalid(in.value, contextMisuse(in.value)), nil
			}
			if fn(in.parent) {
				return Valid(in.value), nil
			}
			return Invalid(in.value, Expectation{
				Message: message,
				Value:   in.value,
				Code:    cfg.code,
				Data:    cfg.data,
			}), nil
		},
	}
}

func contextMisuse(value any) Expectation {
	return Expectation{
		Message: "contextual validator used outside of a map",
		Value:   value,
		Code:    CodeContextMisuse,
	}
}
