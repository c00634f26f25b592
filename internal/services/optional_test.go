package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalFieldsDistinguishAbsentFromNull(t *testing.T) {
	var in struct {
		Name     OptionalString  `json:"name"`
		Servings OptionalInt     `json:"servings"`
		Quantity OptionalFloat64 `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"  Gỏi Cuốn ","servings":null}`), &in))

	assert.True(t, in.Name.Set)
	require.NotNil(t, in.Name.Value)
	assert.Equal(t, "Gỏi Cuốn", *in.Name.Value)

	assert.True(t, in.Servings.Set)
	assert.Nil(t, in.Servings.Value)

	assert.False(t, in.Quantity.Set)
	assert.Nil(t, in.Quantity.Value)
}

func TestOptionalFieldsRejectWrongTypes(t *testing.T) {
	var in struct {
		Servings OptionalInt `json:"servings"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"servings":"four"}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"servings":1.5}`), &in))
}

func TestNormalizePage(t *testing.T) {
	skip, limit, err := normalizePage(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultPageSize, limit)

	skip, limit, err = normalizePage(ptrInt(5), ptrInt(1000))
	require.NoError(t, err)
	assert.Equal(t, 5, skip)
	assert.Equal(t, MaxPageSize, limit)

	_, _, err = normalizePage(nil, ptrInt(-1))
	assert.Error(t, err)
}
