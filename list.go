package verity

// Each builds a structural validator over []any that evaluates every element
// with the item validator. Failing elements are reported with their index
// prefixed to the path ("[2]", "[2].name" for nested failures); an element
// expectation without a code falls back to structure.item_invalid. All
// elements are evaluated, so one bad element does not hide the next. On
// success the result value is a rebuilt slice of the elements' (possibly
// coerced) values.
func Each(item *Validator) *Validator {
	return &Validator{
		label: "must be a list",
		run: func(ec *evalCtx, in input) (Result, error) {
			items, ok := in.value.([]any)
			if !ok {
				return Invalid(in.value, Expectation{
					Message: "must be a list",
					Value:   in.value,
					Code:    CodeTypeMismatch,
					Data:    map[string]any{"expected": "list", "actual": typeName(in.value)},
				}), nil
			}

			out := make([]any, len(items))
			var exps []Expectation

			for i, elem := range items {
				res, err := item.evaluate(ec, input{value: elem, present: true})
				if err != nil {
					return Result{}, err
				}

				if !res.Valid {
					for _, e := range res.Expectations {
						if e.Code == "" {
							e.Code = CodeItemInvalid
						}
						exps = append(exps, e.AddIndexToPath(i))
					}
					out[i] = elem
					continue
				}
				out[i] = res.Value
			}

			if len(exps) > 0 {
				return Result{Value: in.value, OriginalValue: in.value, Expectations: exps}, nil
			}
			return Result{Valid: true, Value: out, OriginalValue: in.value}, nil
		},
	}
}
