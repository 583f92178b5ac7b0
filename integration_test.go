package verity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/verity"
	"github.com/dmitrymomot/verity/pkg/rules"
)

const orderFixture = `
order_id: "b2f5e6c0-9b0a-4b9e-8f4a-2f6d1c3e5a70"
customer:
  name: "  Ada Lovelace  "
  email: "ada@example.com"
items:
  - sku: "A-1"
    qty: 2
  - sku: "B-2"
    qty: 0
status: "SHIPPED"
`

func orderSchema() *verity.Validator {
	return verity.Map(map[string]*verity.Validator{
		"order_id": verity.NewString().Check(rules.UUID()).Build(),
		"customer": verity.Map(map[string]*verity.Validator{
			"name":  verity.NewString().Trim().Check(rules.MinLen(2)).Build(),
			"email": verity.NewString().Check(rules.Email()).Build(),
		}),
		"items": verity.NewList().Each(verity.Map(map[string]*verity.Validator{
			"sku": verity.NewString().Check(rules.NotEmpty()).Build(),
			"qty": verity.NewInt().Check(rules.Positive()).Build(),
		})).Build(),
		"status": verity.NewString().Lower().Check(rules.OneOf("pending", "shipped", "delivered")).Build(),
	})
}

func TestValidateDecodedDocument(t *testing.T) {
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(orderFixture), &doc))

	t.Run("reports the one bad item by its exact path", func(t *testing.T) {
		res, err := orderSchema().Validate(doc)
		require.NoError(t, err)
		require.Len(t, res.Expectations, 1)
		assert.Equal(t, "items[1].qty", res.Expectations[0].Path)
		assert.Equal(t, verity.CodeRangeOutOfBounds, res.Expectations[0].Code)
	})

	t.Run("coerces nested values in the output document", func(t *testing.T) {
		fixed := map[string]any{}
		for k, v := range doc {
			fixed[k] = v
		}
		fixed["items"] = []any{map[string]any{"sku": "A-1", "qty": 2}}

		res, err := orderSchema().Validate(fixed)
		require.NoError(t, err)
		require.True(t, res.Valid, res.Description())

		out := res.Value.(map[string]any)
		assert.Equal(t, "shipped", out["status"])
		customer := out["customer"].(map[string]any)
		assert.Equal(t, "Ada Lovelace", customer["name"])
	})
}
