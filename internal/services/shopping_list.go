package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/recipebook-backend/internal/data/repos"
	"github.com/yungbote/recipebook-backend/internal/modules/shopping"
	"github.com/yungbote/recipebook-backend/internal/observability"
	"github.com/yungbote/recipebook-backend/internal/platform/apierr"
	"github.com/yungbote/recipebook-backend/internal/platform/ctxutil"
	"github.com/yungbote/recipebook-backend/internal/platform/dbctx"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

type ShoppingListService interface {
	GenerateShoppingList(ctx context.Context, recipeIDs []int64) ([]shopping.Line, error)
}

type shoppingListService struct {
	log        *logger.Logger
	recipes    shopping.RecipeIngredientSource
	pantry     shopping.PantrySource
	metrics    *observability.Metrics
	maxRecipes int
}

func NewShoppingListService(
	log *logger.Logger,
	recipeRepo repos.RecipeRepo,
	pantryRepo repos.PantryRepo,
	metrics *observability.Metrics,
	maxRecipes int,
) ShoppingListService {
	return newShoppingListService(
		log,
		&repoIngredientSource{recipes: recipeRepo},
		&repoPantrySource{pantry: pantryRepo},
		metrics,
		maxRecipes,
	)
}

func newShoppingListService(log *logger.Logger, recipes shopping.RecipeIngredientSource, pantry shopping.PantrySource, metrics *observability.Metrics, maxRecipes int) *shoppingListService {
	return &shoppingListService{
		log:        log.With("service", "ShoppingListService"),
		recipes:    recipes,
		pantry:     pantry,
		metrics:    metrics,
		maxRecipes: maxRecipes,
	}
}

// GenerateShoppingList runs the aggregation over the repositories. maxRecipes,
// when positive, bounds the number of ids per call.
func (s *shoppingListService) GenerateShoppingList(ctx context.Context, recipeIDs []int64) ([]shopping.Line, error) {
	ctx = ctxutil.Default(ctx)
	if s.maxRecipes > 0 && len(recipeIDs) > s.maxRecipes {
		return nil, apierr.BadRequest("too_many_recipes",
			fmt.Errorf("at most %d recipe ids per request, got %d", s.maxRecipes, len(recipeIDs)))
	}

	ctx, span := observability.Tracer().Start(ctx, "shopping.Generate")
	defer span.End()
	span.SetAttributes(attribute.Int("shopping.recipe_ids", len(recipeIDs)))

	start := time.Now()
	res, err := shopping.Generate(ctx, recipeIDs, s.recipes, s.pantry)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "shopping list failed")
		s.metrics.ObserveShoppingList("error", elapsed, 0, 0, 0)
		s.log.Error("Shopping list generation failed", "recipe_ids", len(recipeIDs), "error", err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if errors.Is(err, shopping.ErrQuantityOverflow) {
			return nil, apierr.New(http.StatusUnprocessableEntity, "quantity_overflow", err)
		}
		return nil, apierr.Internal("shopping_list_failed", err)
	}

	span.SetAttributes(
		attribute.Int("shopping.lines", len(res.Lines)),
		attribute.Int("shopping.recipes_skipped", res.RecipesSkipped),
		attribute.Int("shopping.keys_covered", res.KeysCovered),
	)
	s.metrics.ObserveShoppingList("ok", elapsed, len(res.Lines), res.RecipesSkipped, res.KeysCovered)
	s.log.Debug("Shopping list generated",
		"recipe_ids", len(recipeIDs),
		"recipes_found", res.RecipesFound,
		"recipes_skipped", res.RecipesSkipped,
		"lines", len(res.Lines),
		"keys_covered", res.KeysCovered,
		"duration_ms", elapsed.Milliseconds(),
	)
	return res.Lines, nil
}

// repoIngredientSource resolves recipes through the recipe repository, one
// read per recipe, outside any transaction.
type repoIngredientSource struct {
	recipes repos.RecipeRepo
}

func (a *repoIngredientSource) RecipeIngredients(ctx context.Context, recipeID int64) ([]shopping.Requirement, bool, error) {
	if recipeID <= 0 {
		return nil, false, nil
	}
	r, err := a.recipes.GetByID(dbctx.Context{Ctx: ctx}, uint(recipeID))
	if err != nil {
		return nil, false, err
	}
	if r == nil {
		return nil, false, nil
	}
	out := make([]shopping.Requirement, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		out = append(out, shopping.Requirement{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit})
	}
	return out, true, nil
}

type repoPantrySource struct {
	pantry repos.PantryRepo
}

func (a *repoPantrySource) PantryEntries(ctx context.Context) ([]shopping.PantryEntry, error) {
	rows, err := a.pantry.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, err
	}
	out := make([]shopping.PantryEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, shopping.PantryEntry{Name: r.Name, Quantity: r.Quantity, Unit: r.Unit})
	}
	return out, nil
}
