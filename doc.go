// Package verity is a runtime data-shape validation engine: given an
// arbitrary dynamically-typed value (scalar, map, list, or any nested
// combination), it decides whether the value satisfies a declared set of
// constraints, optionally coercing the value along the way, and reports
// structured, path-addressed failure information.
//
// Key Features:
//
//   - Immutable, reentrant validator graphs built once and reused across
//     any number of concurrent evaluations
//   - A combinator algebra (All, AllCollect, Any, None, Not) sharing one
//     evaluation loop parameterized by a small policy record
//   - A fluent chain builder that threads type guards, idempotent coercions
//     and constraints into a single validator
//   - Optional/nullable presence semantics that behave identically no
//     matter where in a chain they were declared
//   - Contextual validators (When, ResolveWith) that branch on sibling
//     fields of the enclosing map
//   - A dual synchronous/asynchronous execution contract: Validate never
//     blocks on suspended work, ValidateAsync always awaits it
//
// Basic Usage:
//
//	user := verity.Map(map[string]*verity.Validator{
//		"name": verity.NewString().Trim().
//			Check(rules.MinLen(2)).
//			Build(),
//		"age": verity.NewInt().
//			Check(rules.Min(18)).
//			Optional().
//			Build(),
//	})
//
//	res, err := user.Validate(map[string]any{"name": "  Ada  ", "age": 36})
//	if err != nil {
//		// the graph contains asynchronous validators; use ValidateAsync
//	}
//	if !res.Valid {
//		for _, exp := range res.Expectations {
//			// exp.Path, exp.Message, exp.Code, exp.Data
//		}
//	}
//
// Failures are never silent: every failing evaluation carries at least one
// Expectation with a dot-namespaced machine-readable code (type.*, value.*,
// structure.*, logic.*), the path of the offending field or element, and the
// observed value. Translation of messages is a caller concern; the engine
// only guarantees stable codes and metadata.
//
// Asynchronous work (TestAsync, ResolveWithAsync) is represented with
// pkg/future futures. The synchronous entry point reports ErrAsyncValidator
// the moment it reaches one; it never blocks, spins, or depends on whether
// the future happens to have completed.
package verity
