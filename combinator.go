package verity

// policy parameterizes the single combinator evaluation loop. Each combinator
// kind is one row of this matrix rather than its own loop.
type policy struct {
	// chainValue feeds each child the previous child's transformed value,
	// making conjunction the backbone of coercion pipelines.
	chainValue bool

	// stopOnSuccess ends the loop at the first passing child (disjunction).
	stopOnSuccess bool

	// stopOnFailure ends the loop at the first failing child (conjunction).
	stopOnFailure bool

	// negatePassing inverts the meaning of the loop: passing children make
	// the combinator fail, with their expectations negated (exclusion).
	negatePassing bool
}

var policies = map[nodeKind]policy{
	kindAll:        {chainValue: true, stopOnFailure: true},
	kindAllCollect: {},
	kindAny:        {stopOnSuccess: true},
	kindNone:       {negatePassing: true},
}

// All builds a conjunction: every child must pass, evaluated left to right,
// each child seeing the previous child's (possibly coerced) value. The first
// failure wins and later children are never consulted. Adjoining conjunctions
// are flattened into one.
func All(children ...*Validator) *Validator {
	return newCombinator(kindAll, children)
}

// AllCollect builds a collecting conjunction: every child must pass, but all
// children are evaluated against the original value and every failure is
// reported. No value chaining happens between children.
func AllCollect(children ...*Validator) *Validator {
	return newCombinator(kindAllCollect, children)
}

// Any builds a disjunction: the first passing child wins. When every child
// fails, the failure aggregates each child's expectations in order. Adjoining
// disjunctions are flattened into one.
func Any(children ...*Validator) *Validator {
	return newCombinator(kindAny, children)
}

// None builds an exclusion: every child must fail. A passing child makes the
// exclusion fail with that child's expectations negated ("not " prefix).
func None(children ...*Validator) *Validator {
	return newCombinator(kindNone, children)
}

// Not negates a single validator; it is exclusion over exactly one child.
func Not(child *Validator) *Validator {
	return newCombinator(kindNone, []*Validator{child})
}

// And conjoins v with other; two conjunctions merge into one flat conjunction
// rather than nesting.
func (v *Validator) And(other *Validator) *Validator {
	return All(v, other)
}

// Or disjoins v with other, flattening adjoining disjunctions.
func (v *Validator) Or(other *Validator) *Validator {
	return Any(v, other)
}

func newCombinator(kind nodeKind, children []*Validator) *Validator {
	return &Validator{
		kind:     kind,
		children: flatten(kind, children),
		policy:   policies[kind],
	}
}

// flatten merges a child of the same kind into its parent, provided the child
// carries no attribute of its own that would change behavior. Chained And/Or
// composition therefore stays linear in the number of leaves instead of
// accumulating wrapper depth.
func flatten(kind nodeKind, children []*Validator) []*Validator {
	if kind != kindAll && kind != kindAny {
		return children
	}

	out := make([]*Validator, 0, len(children))
	for _, c := range children {
		if c.kind == kind && c.message == "" && !c.optional && !c.nullable {
			out = append(out, c.children...)
			continue
		}
		out = append(out, c)
	}
	return out
}

// combine runs the shared evaluation loop. Children are evaluated in
// declaration order; asynchronous children are awaited before the loop moves
// on, so diagnostic order matches strict left-to-right order regardless of
// the sync/async mix.
func (v *Validator) combine(ec *evalCtx, in input) (Result, error) {
	current := in.value
	var failed []Expectation
	var negated []Expectation
	anyPassed := false

	for _, child := range v.children {
		childIn := in
		if v.policy.chainValue {
			childIn.value = current
		}

		res, err := child.evaluate(ec, childIn)
		if err != nil {
			return Result{}, err
		}

		if res.Valid {
			anyPassed = true
			if v.policy.chainValue {
				current = res.Value
			}
			if v.policy.negatePassing {
				negated = append(negated, negate(child, res, childIn.value)...)
			}
			if v.policy.stopOnSuccess {
				return Valid(in.value), nil
			}
			continue
		}

		if v.policy.stopOnFailure {
			return Result{
				Value:         current,
				OriginalValue: in.value,
				Expectations:  res.Expectations,
			}, nil
		}
		if !v.policy.negatePassing {
			failed = append(failed, res.Expectations...)
		}
	}

	if v.policy.negatePassing {
		if anyPassed {
			return Result{Value: in.value, OriginalValue: in.value, Expectations: negated}, nil
		}
		return Valid(in.value), nil
	}

	if v.policy.stopOnSuccess {
		// Disjunction reaching the end of the loop means every child failed.
		return Invalid(in.value, failed...), nil
	}

	if len(failed) > 0 {
		return Result{Value: in.value, OriginalValue: in.value, Expectations: failed}, nil
	}
	return Result{Valid: true, Value: current, OriginalValue: in.value}, nil
}

// negate turns a passing child's outcome into failure expectations. Passing
// results normally carry no expectations, so the child's label (or a
// placeholder) stands in before the "not " prefix is applied. The code
// becomes CodeNot; metadata, when present, is preserved.
func negate(child *Validator, res Result, value any) []Expectation {
	if len(res.Expectations) == 0 {
		message := child.label
		if message == "" {
			message = "passed"
		}
		return []Expectation{{
			Message: "not " + message,
			Value:   value,
			Code:    CodeNot,
		}}
	}

	out := make([]Expectation, 0, len(res.Expectations))
	for _, e := range res.Expectations {
		out = append(out, Expectation{
			Path:    e.Path,
			Message: "not " + e.Message,
			Value:   value,
			Code:    CodeNot,
			Data:    e.Data,
		})
	}
	return out
}
