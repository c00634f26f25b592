package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/recipebook-backend/internal/data/repos"
	"github.com/yungbote/recipebook-backend/internal/data/repos/testutil"
)

func newTestPantryService(t *testing.T) (PantryService, *recordingNotifier) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	n := &recordingNotifier{}
	return NewPantryService(db, log, repos.NewPantryRepo(db, log), n), n
}

func TestCreatePantryItemMergesByName(t *testing.T) {
	svc, n := newTestPantryService(t)
	dbc := txContext(t)

	first, merged, err := svc.CreatePantryItem(dbc, PantryItemInput{Name: " Jasmine rice ", Quantity: 2, Unit: "kg"})
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Equal(t, "Jasmine rice", first.Name)

	second, merged, err := svc.CreatePantryItem(dbc, PantryItemInput{Name: "Jasmine rice", Quantity: 500, Unit: "g"})
	require.NoError(t, err)
	assert.True(t, merged)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 502.0, second.Quantity, "quantities add regardless of unit")
	assert.Equal(t, "g", second.Unit, "latest unit wins")

	items, err := svc.ListPantryItems(dbc)
	require.NoError(t, err)
	count := 0
	for _, it := range items {
		if it.Name == "Jasmine rice" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	assert.Equal(t, []string{
		fmt.Sprintf("pantry.created:%d", first.ID),
		fmt.Sprintf("pantry.updated:%d", first.ID),
	}, n.Events())
}

func TestCreatePantryItemValidation(t *testing.T) {
	svc, n := newTestPantryService(t)

	_, _, err := svc.CreatePantryItem(txContext(t), PantryItemInput{Name: "", Quantity: 0, Unit: ""})
	ae := requireAPIError(t, err, http.StatusBadRequest, "invalid_pantry_item")
	assert.Contains(t, ae.Error(), "name is required")
	assert.Contains(t, ae.Error(), "quantity must be greater than 0")
	assert.Contains(t, ae.Error(), "unit is required")
	assert.Empty(t, n.Events())
}

func TestUpdatePantryItem(t *testing.T) {
	svc, n := newTestPantryService(t)
	dbc := txContext(t)

	item, _, err := svc.CreatePantryItem(dbc, PantryItemInput{Name: "Lime", Quantity: 6, Unit: "pieces"})
	require.NoError(t, err)

	var patch PantryItemUpdateInput
	require.NoError(t, json.Unmarshal([]byte(`{"quantity":2.5}`), &patch))
	updated, err := svc.UpdatePantryItem(dbc, item.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, 2.5, updated.Quantity)
	assert.Equal(t, "pieces", updated.Unit)

	patch = PantryItemUpdateInput{}
	require.NoError(t, json.Unmarshal([]byte(`{"quantity":null}`), &patch))
	_, err = svc.UpdatePantryItem(dbc, item.ID, patch)
	requireAPIError(t, err, http.StatusBadRequest, "invalid_pantry_item")

	patch = PantryItemUpdateInput{}
	require.NoError(t, json.Unmarshal([]byte(`{"unit":"kg"}`), &patch))
	_, err = svc.UpdatePantryItem(dbc, 987654, patch)
	requireAPIError(t, err, http.StatusNotFound, "pantry_item_not_found")

	assert.Len(t, n.Events(), 2)
}

func TestDeletePantryItem(t *testing.T) {
	svc, n := newTestPantryService(t)
	dbc := txContext(t)

	item, _, err := svc.CreatePantryItem(dbc, PantryItemInput{Name: "Shallot", Quantity: 3, Unit: "pieces"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePantryItem(dbc, item.ID))
	requireAPIError(t, svc.DeletePantryItem(dbc, item.ID), http.StatusNotFound, "pantry_item_not_found")
	_, err = svc.GetPantryItem(dbc, item.ID)
	requireAPIError(t, err, http.StatusNotFound, "pantry_item_not_found")
	assert.Contains(t, n.Events(), fmt.Sprintf("pantry.deleted:%d", item.ID))
}
