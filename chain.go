package verity

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Chain is the mutable state of a validator under fluent construction: a
// type guard for the declared starting kind, followed by coercions and
// constraints in declaration order, plus the optional/nullable presence
// flags. Build freezes the chain into one immutable Validator.
//
// Presence flags are not steps: no matter where in the chain Optional or
// Nullable is called, the frozen validator applies them before the type
// guard, so declaring them early or late is observably identical.
type Chain struct {
	steps    []*Validator
	coerced  map[string]bool
	optional bool
	nullable bool
}

func newChain(guard *Validator) *Chain {
	c := &Chain{coerced: make(map[string]bool)}
	if guard != nil {
		c.steps = append(c.steps, guard)
	}
	return c
}

// NewString starts a chain over string values.
func NewString() *Chain {
	return newChain(typeGuard("string", "must be a string", func(v any) (any, bool) {
		s, ok := v.(string)
		return s, ok
	}))
}

// NewInt starts a chain over integer values. Go integer kinds are narrowed
// to int64; floating-point values are rejected (use NewFloat or a ToInt
// coercion on a string/float chain instead).
func NewInt() *Chain {
	return newChain(typeGuard("int", "must be an integer", asInt64))
}

// NewFloat starts a chain over floating-point values. Integer kinds widen to
// float64.
func NewFloat() *Chain {
	return newChain(typeGuard("float", "must be a number", asFloat64))
}

// NewBool starts a chain over boolean values.
func NewBool() *Chain {
	return newChain(typeGuard("bool", "must be a boolean", func(v any) (any, bool) {
		b, ok := v.(bool)
		return b, ok
	}))
}

// NewList starts a chain over []any values.
func NewList() *Chain {
	return newChain(typeGuard("list", "must be a list", func(v any) (any, bool) {
		s, ok := v.([]any)
		return s, ok
	}))
}

// NewMap starts a chain over map[string]any values.
func NewMap() *Chain {
	return newChain(typeGuard("map", "must be a map", func(v any) (any, bool) {
		m, ok := v.(map[string]any)
		return m, ok
	}))
}

// NewDate starts a chain over time.Time values.
func NewDate() *Chain {
	return newChain(typeGuard("date", "must be a date", func(v any) (any, bool) {
		t, ok := v.(time.Time)
		return t, ok
	}))
}

// NewValue starts a chain without a type guard, for constraints over values
// of any shape.
func NewValue() *Chain {
	return newChain(nil)
}

// Trim coerces the in-flight string by stripping surrounding whitespace.
func (c *Chain) Trim() *Chain {
	return c.coerce("trim", stringCoercion("trim", strings.TrimSpace))
}

// Lower coerces the in-flight string to lower case.
func (c *Chain) Lower() *Chain {
	return c.coerce("lower", stringCoercion("lower", strings.ToLower))
}

// Upper coerces the in-flight string to upper case.
func (c *Chain) Upper() *Chain {
	return c.coerce("upper", stringCoercion("upper", strings.ToUpper))
}

// Title coerces the in-flight string to Unicode title case.
func (c *Chain) Title() *Chain {
	return c.coerce("title", stringCoercion("title", func(s string) string {
		return cases.Title(language.Und).String(s)
	}))
}

// ToInt coerces the in-flight value to int64: strings are parsed in base 10,
// floats must be whole numbers, integers pass through.
func (c *Chain) ToInt() *Chain {
	return c.coerce("to_int", coercion("to_int", "must be convertible to an integer", func(v any) (any, bool) {
		switch val := v.(type) {
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
			return n, err == nil
		case float64:
			n := int64(val)
			return n, float64(n) == val
		case float32:
			n := int64(val)
			return n, float32(n) == val
		default:
			return asInt64(v)
		}
	}))
}

// ToFloat coerces the in-flight value to float64: strings are parsed,
// integers widen, floats pass through.
func (c *Chain) ToFloat() *Chain {
	return c.coerce("to_float", coercion("to_float", "must be convertible to a number", func(v any) (any, bool) {
		if s, ok := v.(string); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			return f, err == nil
		}
		return asFloat64(v)
	}))
}

// ToString coerces the in-flight scalar to its canonical string form.
func (c *Chain) ToString() *Chain {
	return c.coerce("to_string", coercion("to_string", "must be convertible to a string", func(v any) (any, bool) {
		switch val := v.(type) {
		case string:
			return val, true
		case bool:
			return strconv.FormatBool(val), true
		case time.Time:
			return val.Format(time.RFC3339), true
		}
		if n, ok := asInt64(v); ok {
			return strconv.FormatInt(n.(int64), 10), true
		}
		if f, ok := asFloat64(v); ok {
			return strconv.FormatFloat(f.(float64), 'f', -1, 64), true
		}
		return v, false
	}))
}

// ToBool coerces the in-flight value to bool, accepting the strings
// "true"/"false"/"1"/"0" and the integers 0/1.
func (c *Chain) ToBool() *Chain {
	return c.coerce("to_bool", coercion("to_bool", "must be convertible to a boolean", func(v any) (any, bool) {
		switch val := v.(type) {
		case bool:
			return val, true
		case string:
			switch strings.ToLower(strings.TrimSpace(val)) {
			case "true", "1":
				return true, true
			case "false", "0":
				return false, true
			}
			return v, false
		}
		if n, ok := asInt64(v); ok {
			switch n.(int64) {
			case 0:
				return false, true
			case 1:
				return true, true
			}
		}
		return v, false
	}))
}

// ToDate coerces the in-flight string to time.Time using the given layout;
// time.Time values pass through untouched.
func (c *Chain) ToDate(layout string) *Chain {
	return c.coerce("to_date", coercion("to_date", "must be a date in the expected format", func(v any) (any, bool) {
		switch val := v.(type) {
		case time.Time:
			return val, true
		case string:
			t, err := time.Parse(layout, strings.TrimSpace(val))
			return t, err == nil
		}
		return v, false
	}))
}

// Refine appends a constraint over the current in-flight value.
func (c *Chain) Refine(message string, fn func(value any) bool, opts ...TestOption) *Chain {
	return c.add(Test(message, fn, opts...))
}

// Check appends an already-built validator as a constraint. This is how leaf
// rule catalogs plug into a chain.
func (c *Chain) Check(v *Validator) *Chain {
	return c.add(v)
}

// Each constrains every element of the in-flight list with the item
// validator, rebuilding the list from the coerced elements.
func (c *Chain) Each(item *Validator) *Chain {
	return c.add(Each(item))
}

// Fields constrains the in-flight map with a structural field validator.
func (c *Chain) Fields(fields map[string]*Validator, opts ...MapOption) *Chain {
	return c.add(Map(fields, opts...))
}

// Optional marks the chain as accepting a missing value. Position in the
// chain does not matter, and repeated calls are no-ops.
func (c *Chain) Optional() *Chain {
	c.optional = true
	return c
}

// Nullable marks the chain as accepting an explicitly-present nil. Position
// in the chain does not matter, and repeated calls are no-ops.
func (c *Chain) Nullable() *Chain {
	c.nullable = true
	return c
}

// Build freezes the chain into a single immutable validator: a value-chaining
// conjunction of the type guard, coercions and constraints, carrying the
// OR-merged presence flags from every Optional/Nullable call seen while
// building.
func (c *Chain) Build() *Validator {
	v := All(c.steps...)
	if c.nullable {
		v = v.Nullable()
	}
	if c.optional {
		v = v.Optional()
	}
	return v
}

func (c *Chain) add(v *Validator) *Chain {
	c.steps = append(c.steps, v)
	return c
}

// coerce appends a coercion step unless the same coercion kind was already
// requested, making repeated coercions no-ops instead of double-applying.
func (c *Chain) coerce(kind string, v *Validator) *Chain {
	if c.coerced[kind] {
		return c
	}
	c.coerced[kind] = true
	return c.add(v)
}

func typeGuard(kind, message string, fn func(any) (any, bool)) *Validator {
	return &Validator{
		label: message,
		run: func(_ *evalCtx, in input) (Result, error) {
			out, ok := fn(in.value)
			if !ok {
				return Invalid(in.value, Expectation{
					Message: message,
					Value:   in.value,
					Code:    CodeTypeMismatch,
					Data:    map[string]any{"expected": kind, "actual": typeName(in.value)},
				}), nil
			}
			return Result{Valid: true, Value: out, OriginalValue: in.value}, nil
		},
	}
}

func coercion(kind, message string, fn func(any) (any, bool)) *Validator {
	return &Validator{
		label: message,
		run: func(_ *evalCtx, in input) (Result, error) {
			out, ok := fn(in.value)
			if !ok {
				return Invalid(in.value, Expectation{
					Message: message,
					Value:   in.value,
					Code:    CodeCoercionFailed,
					Data:    map[string]any{"coercion": kind},
				}), nil
			}
			return Result{Valid: true, Value: out, OriginalValue: in.value}, nil
		},
	}
}

func stringCoercion(kind string, fn func(string) string) *Validator {
	return coercion(kind, "must be a string", func(v any) (any, bool) {
		s, ok := v.(string)
		if !ok {
			return v, false
		}
		return fn(s), true
	})
}

func asInt64(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return v, false
}

func asFloat64(v any) (any, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := asInt64(v); ok {
		return float64(i.(int64)), true
	}
	return v, false
}
