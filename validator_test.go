package verity_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/verity"
)

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func TestValidator_Test(t *testing.T) {
	t.Run("passing predicate yields a valid result", func(t *testing.T) {
		v := verity.Test("must be a string", isString)
		res, err := v.Validate("hello")
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Equal(t, "hello", res.Value)
	})

	t.Run("failing predicate reports message, code and data", func(t *testing.T) {
		v := verity.Test("must be adult", func(v any) bool { return false },
			verity.WithCode(verity.CodeRangeOutOfBounds),
			verity.WithData(map[string]any{"operator": ">=", "limit": 18}),
		)
		res, err := v.Validate(12)
		require.NoError(t, err)
		require.False(t, res.Valid)
		require.Len(t, res.Expectations, 1)

		exp := res.Expectations[0]
		assert.Equal(t, "must be adult", exp.Message)
		assert.Equal(t, verity.CodeRangeOutOfBounds, exp.Code)
		assert.Equal(t, map[string]any{"operator": ">=", "limit": 18}, exp.Data)
		assert.Equal(t, 12, exp.Value)
	})

	t.Run("code defaults to the generic predicate fallback", func(t *testing.T) {
		v := verity.Test("nope", func(any) bool { return false })
		res, _ := v.Validate(1)
		require.Len(t, res.Expectations, 1)
		assert.Equal(t, verity.CodePredicate, res.Expectations[0].Code)
	})
}

func TestValidator_Presence(t *testing.T) {
	t.Run("nullable accepts an explicit nil without running the predicate", func(t *testing.T) {
		called := false
		v := verity.Test("never", func(any) bool { called = true; return false }).Nullable()

		res, err := v.Validate(nil)
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.False(t, called)
	})

	t.Run("non-nullable runs the predicate against nil", func(t *testing.T) {
		v := verity.Test("must be a string", isString)
		res, _ := v.Validate(nil)
		assert.False(t, res.Valid)
	})

	t.Run("optional and nullable are idempotent", func(t *testing.T) {
		v := verity.Test("x", isString).Optional()
		assert.Same(t, v, v.Optional())

		n := v.Nullable()
		assert.Same(t, n, n.Nullable())
	})

	t.Run("attribute changes never mutate the original", func(t *testing.T) {
		v := verity.Test("x", isString)
		_ = v.Optional()
		_ = v.Nullable()
		assert.False(t, v.IsOptional())
		assert.False(t, v.IsNullable())
	})
}

func TestValidator_EntryPoints(t *testing.T) {
	t.Run("sync and async agree for suspension-free graphs", func(t *testing.T) {
		v := verity.All(
			verity.Test("must be a string", isString),
			verity.Test("must be short", func(v any) bool { return len(v.(string)) < 3 }),
		)

		syncRes, err := v.Validate("hello")
		require.NoError(t, err)

		asyncRes, err := v.ValidateAsync(context.Background(), "hello").Await()
		require.NoError(t, err)

		assert.Equal(t, syncRes, asyncRes)
	})

	t.Run("ValidateValue returns the coerced value on success", func(t *testing.T) {
		v := verity.NewString().Trim().Build()
		out, err := v.ValidateValue("  hi  ")
		require.NoError(t, err)
		assert.Equal(t, "hi", out)
	})

	t.Run("ValidateValue wraps failures in a rich error", func(t *testing.T) {
		v := verity.Test("must be a string", isString)
		_, err := v.ValidateValue(42)
		require.Error(t, err)

		verr := verity.AsError(err)
		require.NotNil(t, verr)
		assert.False(t, verr.Result.Valid)
		assert.Contains(t, err.Error(), "must be a string")
		assert.True(t, strings.HasPrefix(err.Error(), "verity: validation failed"))
	})

	t.Run("MustValidate panics with the validation error", func(t *testing.T) {
		v := verity.Test("must be a string", isString)
		assert.Panics(t, func() { v.MustValidate(42) })
		assert.Equal(t, "ok", v.MustValidate("ok"))
	})
}

func TestValidator_Async(t *testing.T) {
	t.Run("async leaf fails fatally on the synchronous path", func(t *testing.T) {
		v := verity.TestAsync("must exist upstream", func(ctx context.Context, value any) (bool, error) {
			return true, nil
		})

		_, err := v.Validate("anything")
		require.ErrorIs(t, err, verity.ErrAsyncValidator)
	})

	t.Run("async leaf succeeds on the asynchronous path", func(t *testing.T) {
		v := verity.TestAsync("must be a string", func(ctx context.Context, value any) (bool, error) {
			_, ok := value.(string)
			return ok, nil
		})

		res, err := v.ValidateAsync(context.Background(), "hello").Await()
		require.NoError(t, err)
		assert.True(t, res.Valid)

		res, err = v.ValidateAsync(context.Background(), 42).Await()
		require.NoError(t, err)
		assert.False(t, res.Valid)
	})

	t.Run("predicate errors abort the evaluation instead of failing it", func(t *testing.T) {
		boom := errors.New("upstream down")
		v := verity.TestAsync("x", func(ctx context.Context, value any) (bool, error) {
			return false, boom
		})

		_, err := v.ValidateAsync(context.Background(), "hello").Await()
		require.ErrorIs(t, err, boom)
	})

	t.Run("async leaf nested in a conjunction still trips the sync guard", func(t *testing.T) {
		v := verity.All(
			verity.Test("must be a string", isString),
			verity.TestAsync("remote", func(ctx context.Context, value any) (bool, error) { return true, nil }),
		)
		_, err := v.Validate("hello")
		require.ErrorIs(t, err, verity.ErrAsyncValidator)
	})
}

func TestValidator_WithMessage(t *testing.T) {
	t.Run("override replaces the text but keeps code and data", func(t *testing.T) {
		v := verity.Test("must be at least 18", func(any) bool { return false },
			verity.WithCode(verity.CodeRangeOutOfBounds),
			verity.WithData(map[string]any{"limit": 18}),
		).WithMessage("you are too young")

		res, _ := v.Validate(12)
		require.Len(t, res.Expectations, 1)
		assert.Equal(t, "you are too young", res.Expectations[0].Message)
		assert.Equal(t, verity.CodeRangeOutOfBounds, res.Expectations[0].Code)
		assert.Equal(t, map[string]any{"limit": 18}, res.Expectations[0].Data)
	})

	t.Run("override collapses an aggregate failure to one expectation", func(t *testing.T) {
		v := verity.Any(
			verity.Test("must equal admin", func(v any) bool { return v == "admin" }),
			verity.Test("must equal user", func(v any) bool { return v == "user" }),
		).WithMessage("unknown role")

		res, _ := v.Validate("guest")
		require.Len(t, res.Expectations, 1)
		assert.Equal(t, "unknown role", res.Expectations[0].Message)
	})
}
