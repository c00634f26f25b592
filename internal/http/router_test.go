package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/recipebook-backend/internal/data/repos"
	"github.com/yungbote/recipebook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/recipebook-backend/internal/domain/recipes"
	httpH "github.com/yungbote/recipebook-backend/internal/http/handlers"
	"github.com/yungbote/recipebook-backend/internal/observability"
	"github.com/yungbote/recipebook-backend/internal/realtime"
	"github.com/yungbote/recipebook-backend/internal/services"
)

type testStack struct {
	router *gin.Engine
	hub    *realtime.Hub
}

func newTestStack(t *testing.T) testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.IsolatedDB(t)
	log := testutil.Logger(t)
	metrics := observability.NewMetrics(observability.MetricsConfig{})
	hub := realtime.NewHub(log)
	notify := services.NewChangeNotifier(&services.HubEmitter{Hub: hub}, metrics)

	recipeRepo := repos.NewRecipeRepo(db, log)
	ingredientRepo := repos.NewIngredientRepo(db, log)
	stepRepo := repos.NewStepRepo(db, log)
	pantryRepo := repos.NewPantryRepo(db, log)

	recipeSvc := services.NewRecipeService(db, log, recipeRepo, ingredientRepo, stepRepo, notify)
	pantrySvc := services.NewPantryService(db, log, pantryRepo, notify)
	shoppingSvc := services.NewShoppingListService(log, recipeRepo, pantryRepo, metrics, 0)

	router := NewRouter(RouterConfig{
		Log:                 log,
		Metrics:             metrics,
		HealthHandler:       httpH.NewHealthHandler(),
		RecipeHandler:       httpH.NewRecipeHandler(log, recipeSvc),
		PantryHandler:       httpH.NewPantryHandler(log, pantrySvc),
		ShoppingListHandler: httpH.NewShoppingListHandler(log, shoppingSvc),
		RealtimeHandler:     httpH.NewRealtimeHandler(log, hub, metrics),
	})
	return testStack{router: router, hub: hub}
}

func send(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createRecipe(t *testing.T, r http.Handler, body string) types.Recipe {
	t.Helper()
	rec := send(t, r, http.MethodPost, "/api/recipes", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out types.Recipe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestShoppingListEndToEnd(t *testing.T) {
	s := newTestStack(t)

	r1 := createRecipe(t, s.router, `{"name":"Canh Chua","ingredients":[{"name":"Fish sauce","quantity":3,"unit":"tbsp"}]}`)
	r2 := createRecipe(t, s.router, `{"name":"Thịt Kho","ingredients":[{"name":"Fish sauce","quantity":2,"unit":"tbsp"},{"name":"Sugar","quantity":100,"unit":"g"}]}`)

	rec := send(t, s.router, http.MethodPost, "/api/pantry", `{"name":"Fish sauce","quantity":4,"unit":"tbsp"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = send(t, s.router, http.MethodPost, "/api/pantry", `{"name":"Sugar","quantity":1,"unit":"kg"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = send(t, s.router, http.MethodPost, "/api/shopping-list", fmt.Sprintf(`[%d, %d, 424242, -7, 0]`, r1.ID, r2.ID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `[
		{"name":"Fish sauce","quantity":1,"unit":"tbsp"},
		{"name":"Sugar","quantity":100,"unit":"g"}
	]`, rec.Body.String())

	rec = send(t, s.router, http.MethodPost, "/api/shopping-list", fmt.Sprintf(`{"recipe_ids":[%d]}`, r1.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestOverflowingQuantitiesReturnErrors(t *testing.T) {
	s := newTestStack(t)

	salt := createRecipe(t, s.router, `{"name":"Muối","ingredients":[{"name":"Salt","quantity":1e308,"unit":"g"}]}`)

	rec := send(t, s.router, http.MethodPost, "/api/shopping-list", fmt.Sprintf(`[%d, %d]`, salt.ID, salt.ID))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"quantity_overflow"`)

	rec = send(t, s.router, http.MethodGet, fmt.Sprintf("/api/recipes/%d/scale?factor=1e10", salt.ID), "")
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"invalid_scale_factor"`)
}

func TestRecipeLifecycleOverHTTP(t *testing.T) {
	s := newTestStack(t)

	created := createRecipe(t, s.router, `{
		"name":"Phở Bò","servings":4,
		"ingredients":[{"name":"Rice noodles","quantity":400,"unit":"g"}],
		"steps":[{"step_number":2,"instruction":"Assemble."},{"step_number":1,"instruction":"Simmer broth."}]
	}`)
	require.Len(t, created.Steps, 2)
	assert.Equal(t, 1, created.Steps[0].StepNumber)

	rec := send(t, s.router, http.MethodGet, fmt.Sprintf("/api/recipes/%d/scale?factor=0.5", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"original_servings":4,"scaled_servings":2,"scale_factor":0.5,
		"ingredients":[{"name":"Rice noodles","quantity":200,"unit":"g"}]}`, rec.Body.String())

	rec = send(t, s.router, http.MethodGet, "/api/recipes/search?q=Ph", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Phở Bò")

	rec = send(t, s.router, http.MethodPut, fmt.Sprintf("/api/recipes/%d", created.ID), `{"ingredients":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared types.Recipe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cleared))
	assert.Empty(t, cleared.Ingredients)
	assert.Len(t, cleared.Steps, 2)

	rec = send(t, s.router, http.MethodDelete, fmt.Sprintf("/api/recipes/%d", created.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = send(t, s.router, http.MethodGet, fmt.Sprintf("/api/recipes/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangeEventsReachSubscribers(t *testing.T) {
	s := newTestStack(t)
	client := s.hub.NewClient()
	s.hub.Subscribe(client, realtime.ChannelPantry)
	t.Cleanup(func() { s.hub.CloseClient(client) })

	rec := send(t, s.router, http.MethodPost, "/api/pantry", `{"name":"Lemongrass","quantity":3,"unit":"stalks"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	select {
	case msg := <-client.Outbound:
		assert.Equal(t, realtime.ChannelPantry, msg.Channel)
		assert.Equal(t, realtime.EventPantryCreated, msg.Event)
	case <-time.After(2 * time.Second):
		t.Fatal("no change event delivered")
	}
}

func TestRouterAttachesRequestIDAndHealth(t *testing.T) {
	s := newTestStack(t)

	rec := send(t, s.router, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = send(t, s.router, http.MethodGet, "/api/health", "")
	assert.JSONEq(t, `{"status":"healthy","architecture":"3-layer"}`, rec.Body.String())
}
