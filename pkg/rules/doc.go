// Package rules provides the leaf predicate catalog for the verity engine:
// small, focused validators for strings, numbers, dates, membership and
// formats, grouped per domain file (string.go, numeric.go, date.go, ...).
//
// Every function constructs a *verity.Validator from a plain predicate via
// verity.Test, carrying a human-readable message, a stable machine-readable
// code and structured metadata. The package has no state of its own; rule
// values can be built once and shared freely.
//
// # Usage
//
//	v := verity.NewString().Trim().
//		Check(rules.MinLen(3)).
//		Check(rules.Matches(`^[a-z]+$`)).
//		Build()
//
// Rules that need the whole container rather than one field (cross-field
// conditions) are expressed with ExprCtx, which compiles an expression over
// the enclosing map:
//
//	"discount": rules.ExprCtx("requires a coupon", `coupon != ""`)
//
// # Error Handling
//
// Rules never return Go errors; an unmet rule surfaces as an Expectation in
// the validation Result. Predicates are total: a value of an unexpected type
// simply fails the rule.
package rules
