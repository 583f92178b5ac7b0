package verity

import (
	"fmt"
	"sort"
)

// MapOption configures a Map validator.
type MapOption func(*mapConfig)

type mapConfig struct {
	strictKeys bool
}

// StrictKeys makes the map validator report every key not declared in the
// field set with a structure.unknown_key expectation. Without it, undeclared
// keys pass through to the output untouched.
func StrictKeys() MapOption {
	return func(c *mapConfig) { c.strictKeys = true }
}

// Map builds a structural validator over map[string]any. Each declared field
// is evaluated with its own validator, which receives the field's presence
// and the enclosing container (so contextual validators can inspect
// siblings). Child failures are re-emitted with the field name prefixed to
// their path; a child expectation that carries no code falls back to
// structure.field_invalid. On success the result value is a rebuilt map
// holding each field's (possibly coerced) value.
//
// Fields are evaluated in sorted name order so diagnostics are
// deterministic.
func Map(fields map[string]*Validator, opts ...MapOption) *Validator {
	cfg := mapConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Validator{
		label: "must be a map",
		run: func(ec *evalCtx, in input) (Result, error) {
			m, ok := in.value.(map[string]any)
			if !ok {
				return Invalid(in.value, Expectation{
					Message: "must be a map",
					Value:   in.value,
					Code:    CodeTypeMismatch,
					Data:    map[string]any{"expected": "map", "actual": typeName(in.value)},
				}), nil
			}

			out := make(map[string]any, len(m))
			var exps []Expectation

			for _, name := range names {
				fieldValue, present := m[name]
				res, err := fields[name].evaluate(ec, input{
					value:     fieldValue,
					present:   present,
					parent:    m,
					hasParent: true,
				})
				if err != nil {
					return Result{}, err
				}

				if !res.Valid {
					for _, e := range res.Expectations {
						if e.Code == "" {
							e.Code = CodeFieldInvalid
						}
						exps = append(exps, e.AddToPath(name))
					}
					if present {
						out[name] = fieldValue
					}
					continue
				}
				if present {
					out[name] = res.Value
				}
			}

			if cfg.strictKeys {
				var unknown []string
				for key := range m {
					if _, declared := fields[key]; !declared {
						unknown = append(unknown, key)
					}
				}
				sort.Strings(unknown)
				for _, key := range unknown {
					exps = append(exps, Expectation{
						Path:    key,
						Message: "unknown key",
						Value:   m[key],
						Code:    CodeUnknownKey,
					})
				}
			} else {
				for key, val := range m {
					if _, declared := fields[key]; !declared {
						out[key] = val
					}
				}
			}

			if len(exps) > 0 {
				return Result{Value: in.value, OriginalValue: in.value, Expectations: exps}, nil
			}
			return Result{Valid: true, Value: out, OriginalValue: in.value}, nil
		},
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
