package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/verity"
	"github.com/dmitrymomot/verity/pkg/rules"
)

func TestExpr(t *testing.T) {
	t.Run("evaluates against the value variable", func(t *testing.T) {
		v := rules.Expr("must be an adult age", "value >= 18 && value < 150")
		assert.True(t, check(t, v, 36).Valid)
		assert.False(t, check(t, v, 12).Valid)
	})

	t.Run("failure carries the expression as metadata", func(t *testing.T) {
		res := check(t, rules.Expr("must be even", "value % 2 == 0"), 3)
		require.Len(t, res.Expectations, 1)
		assert.Equal(t, verity.CodeExprFailed, res.Expectations[0].Code)
		assert.Equal(t, map[string]any{"expression": "value % 2 == 0"}, res.Expectations[0].Data)
	})

	t.Run("runtime evaluation errors fail the rule", func(t *testing.T) {
		v := rules.Expr("must be numeric", "value > 10")
		assert.False(t, check(t, v, "not a number").Valid)
	})

	t.Run("malformed expressions panic at construction", func(t *testing.T) {
		assert.Panics(t, func() { rules.Expr("broken", "value >=") })
	})
}

func TestExprCtx(t *testing.T) {
	t.Run("sees sibling fields of the enclosing map", func(t *testing.T) {
		v := verity.Map(map[string]*verity.Validator{
			"coupon":   verity.NewString().Build(),
			"discount": rules.ExprCtx("requires a coupon code", `coupon != ""`),
		})

		res, err := v.Validate(map[string]any{"coupon": "TEN", "discount": 10})
		require.NoError(t, err)
		assert.True(t, res.Valid)

		res, _ = v.Validate(map[string]any{"coupon": "", "discount": 10})
		require.Len(t, res.Expectations, 1)
		assert.Equal(t, "discount", res.Expectations[0].Path)
		assert.Equal(t, "requires a coupon code", res.Expectations[0].Message)
	})

	t.Run("used outside of a map fails with the misuse expectation", func(t *testing.T) {
		v := rules.ExprCtx("x", "true")
		res, err := v.Validate(10)
		require.NoError(t, err)
		require.Len(t, res.Expectations, 1)
		assert.Equal(t, verity.CodeContextMisuse, res.Expectations[0].Code)
	})
}
