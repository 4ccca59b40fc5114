package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSelectProductsKeepsNumbers(t *testing.T) {
	req, err := decodeSelectProducts([]byte(`{"items":[{"product_id":123456789012345678,"discount":12.50}]}`))
	require.NoError(t, err)
	require.Len(t, req.Items, 1)
	assert.Equal(t, json.Number("123456789012345678"), req.Items[0].ProductID)
	assert.Equal(t, json.Number("12.50"), req.Items[0].Discount)
}

func TestDecodeSelectProductsNullItems(t *testing.T) {
	req, err := decodeSelectProducts([]byte(`{"items":null}`))
	require.NoError(t, err)
	assert.Empty(t, req.Items)
}

func TestDecodeSelectProductsRejects(t *testing.T) {
	for _, body := range []string{"", "   ", "{", `{"items":{}}`, `"x"`} {
		_, err := decodeSelectProducts([]byte(body))
		assert.Error(t, err, body)
	}
}
