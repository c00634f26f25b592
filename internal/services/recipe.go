package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/recipebook-backend/internal/data/repos"
	types "github.com/yungbote/recipebook-backend/internal/domain/recipes"
	"github.com/yungbote/recipebook-backend/internal/platform/apierr"
	"github.com/yungbote/recipebook-backend/internal/platform/dbctx"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

type RecipeCreateInput struct {
	Name            string            `json:"name"`
	Description     *string           `json:"description"`
	Cuisine         *string           `json:"cuisine"`
	Servings        *int              `json:"servings"`
	PrepTimeMinutes *int              `json:"prep_time_minutes"`
	CookTimeMinutes *int              `json:"cook_time_minutes"`
	Ingredients     []IngredientInput `json:"ingredients"`
	Steps           []StepInput       `json:"steps"`
}

// RecipeUpdateInput is a partial update. Ingredients and Steps, when present,
// replace the recipe's whole collection; an empty list clears it.
type RecipeUpdateInput struct {
	Name            OptionalString     `json:"name"`
	Description     OptionalString     `json:"description"`
	Cuisine         OptionalString     `json:"cuisine"`
	Servings        OptionalInt        `json:"servings"`
	PrepTimeMinutes OptionalInt        `json:"prep_time_minutes"`
	CookTimeMinutes OptionalInt        `json:"cook_time_minutes"`
	Ingredients     *[]IngredientInput `json:"ingredients"`
	Steps           *[]StepInput       `json:"steps"`
}

type RecipeService interface {
	ListRecipes(dbc dbctx.Context, skip, limit *int) ([]*types.Recipe, error)
	SearchRecipes(dbc dbctx.Context, q string) ([]*types.Recipe, error)
	GetRecipe(dbc dbctx.Context, id uint) (*types.Recipe, error)
	CreateRecipe(dbc dbctx.Context, in RecipeCreateInput) (*types.Recipe, error)
	UpdateRecipe(dbc dbctx.Context, id uint, in RecipeUpdateInput) (*types.Recipe, error)
	DeleteRecipe(dbc dbctx.Context, id uint) error
	ScaleRecipe(dbc dbctx.Context, id uint, factor float64) (*types.ScaledRecipe, error)
}

type recipeService struct {
	db             *gorm.DB
	log            *logger.Logger
	recipeRepo     repos.RecipeRepo
	ingredientRepo repos.IngredientRepo
	stepRepo       repos.StepRepo
	notify         ChangeNotifier
}

func NewRecipeService(
	db *gorm.DB,
	log *logger.Logger,
	recipeRepo repos.RecipeRepo,
	ingredientRepo repos.IngredientRepo,
	stepRepo repos.StepRepo,
	notify ChangeNotifier,
) RecipeService {
	if notify == nil {
		notify = NewChangeNotifier(nil, nil)
	}
	return &recipeService{
		db:             db,
		log:            log.With("service", "RecipeService"),
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		stepRepo:       stepRepo,
		notify:         notify,
	}
}

func recipeNotFound(id uint) error {
	return apierr.NotFound("recipe_not_found", fmt.Errorf("recipe %d not found", id))
}

func (s *recipeService) ListRecipes(dbc dbctx.Context, skip, limit *int) ([]*types.Recipe, error) {
	offset, size, err := normalizePage(skip, limit)
	if err != nil {
		return nil, apierr.BadRequest("invalid_pagination", err)
	}
	out, err := s.recipeRepo.List(dbc, offset, size)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return out, nil
}

func (s *recipeService) SearchRecipes(dbc dbctx.Context, q string) ([]*types.Recipe, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apierr.BadRequest("missing_query", errors.New("q is required"))
	}
	out, err := s.recipeRepo.SearchByName(dbc, q, MaxPageSize)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return out, nil
}

func (s *recipeService) GetRecipe(dbc dbctx.Context, id uint) (*types.Recipe, error) {
	r, err := s.recipeRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	if r == nil {
		return nil, recipeNotFound(id)
	}
	return r, nil
}

func (in RecipeCreateInput) validate() error {
	var errs []error
	if err := checkText("name", in.Name, 1, maxNameLen); err != nil {
		errs = append(errs, err)
	}
	if in.Cuisine != nil {
		if err := checkText("cuisine", *in.Cuisine, 0, maxCuisineLen); err != nil {
			errs = append(errs, err)
		}
	}
	for _, f := range []struct {
		name string
		v    *int
	}{
		{"servings", in.Servings},
		{"prep_time_minutes", in.PrepTimeMinutes},
		{"cook_time_minutes", in.CookTimeMinutes},
	} {
		if err := checkPositiveInt(f.name, f.v); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, validateChildren(in.Ingredients, in.Steps)...)
	return errors.Join(errs...)
}

func toIngredients(recipeID uint, in []IngredientInput) []types.Ingredient {
	out := make([]types.Ingredient, 0, len(in))
	for _, ing := range in {
		out = append(out, types.Ingredient{
			RecipeID: recipeID,
			Name:     strings.TrimSpace(ing.Name),
			Quantity: ing.Quantity,
			Unit:     strings.TrimSpace(ing.Unit),
		})
	}
	return out
}

func toSteps(recipeID uint, in []StepInput) []types.Step {
	out := make([]types.Step, 0, len(in))
	for _, st := range in {
		out = append(out, types.Step{
			RecipeID:    recipeID,
			StepNumber:  st.StepNumber,
			Instruction: strings.TrimSpace(st.Instruction),
		})
	}
	return out
}

func (s *recipeService) CreateRecipe(dbc dbctx.Context, in RecipeCreateInput) (*types.Recipe, error) {
	if err := in.validate(); err != nil {
		return nil, apierr.BadRequest("invalid_recipe", err)
	}
	servings := 1
	if in.Servings != nil {
		servings = *in.Servings
	}
	recipe := &types.Recipe{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Cuisine:         in.Cuisine,
		Servings:        servings,
		PrepTimeMinutes: in.PrepTimeMinutes,
		CookTimeMinutes: in.CookTimeMinutes,
		Ingredients:     toIngredients(0, in.Ingredients),
		Steps:           toSteps(0, in.Steps),
	}

	var created *types.Recipe
	err := dbc.DB(s.db).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		if _, err := s.recipeRepo.Create(inner, recipe); err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		reloaded, err := s.recipeRepo.GetByID(inner, recipe.ID)
		if err != nil {
			return fmt.Errorf("reload recipe: %w", err)
		}
		created = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Recipe created", "recipe_id", created.ID, "ingredients", len(created.Ingredients), "steps", len(created.Steps))
	s.notify.RecipeCreated(dbc.Ctx, created)
	return created, nil
}

func (in RecipeUpdateInput) toUpdates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	var errs []error

	if in.Name.Set {
		if in.Name.Value == nil {
			errs = append(errs, errors.New("name cannot be null"))
		} else if err := checkText("name", *in.Name.Value, 1, maxNameLen); err != nil {
			errs = append(errs, err)
		} else {
			updates["name"] = *in.Name.Value
		}
	}
	if in.Description.Set {
		updates["description"] = in.Description.Value
	}
	if in.Cuisine.Set {
		if in.Cuisine.Value != nil {
			if err := checkText("cuisine", *in.Cuisine.Value, 0, maxCuisineLen); err != nil {
				errs = append(errs, err)
			}
		}
		updates["cuisine"] = in.Cuisine.Value
	}
	if in.Servings.Set {
		if in.Servings.Value == nil {
			errs = append(errs, errors.New("servings cannot be null"))
		} else if err := checkPositiveInt("servings", in.Servings.Value); err != nil {
			errs = append(errs, err)
		} else {
			updates["servings"] = *in.Servings.Value
		}
	}
	if in.PrepTimeMinutes.Set {
		if err := checkPositiveInt("prep_time_minutes", in.PrepTimeMinutes.Value); err != nil {
			errs = append(errs, err)
		}
		updates["prep_time_minutes"] = in.PrepTimeMinutes.Value
	}
	if in.CookTimeMinutes.Set {
		if err := checkPositiveInt("cook_time_minutes", in.CookTimeMinutes.Value); err != nil {
			errs = append(errs, err)
		}
		updates["cook_time_minutes"] = in.CookTimeMinutes.Value
	}

	var ingredients []IngredientInput
	if in.Ingredients != nil {
		ingredients = *in.Ingredients
	}
	var steps []StepInput
	if in.Steps != nil {
		steps = *in.Steps
	}
	errs = append(errs, validateChildren(ingredients, steps)...)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return updates, nil
}

func (s *recipeService) UpdateRecipe(dbc dbctx.Context, id uint, in RecipeUpdateInput) (*types.Recipe, error) {
	updates, err := in.toUpdates()
	if err != nil {
		return nil, apierr.BadRequest("invalid_recipe", err)
	}

	var updated *types.Recipe
	err = dbc.DB(s.db).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		exists, err := s.recipeRepo.Exists(inner, id)
		if err != nil {
			return fmt.Errorf("lookup recipe %d: %w", id, err)
		}
		if !exists {
			return recipeNotFound(id)
		}
		if len(updates) > 0 {
			if err := s.recipeRepo.UpdateFields(inner, id, updates); err != nil {
				return fmt.Errorf("update recipe %d: %w", id, err)
			}
		}
		if in.Ingredients != nil {
			if err := s.ingredientRepo.DeleteByRecipeID(inner, id); err != nil {
				return fmt.Errorf("clear ingredients: %w", err)
			}
			rows := toIngredients(id, *in.Ingredients)
			ptrs := make([]*types.Ingredient, len(rows))
			for i := range rows {
				ptrs[i] = &rows[i]
			}
			if _, err := s.ingredientRepo.Create(inner, ptrs); err != nil {
				return fmt.Errorf("replace ingredients: %w", err)
			}
		}
		if in.Steps != nil {
			if err := s.stepRepo.DeleteByRecipeID(inner, id); err != nil {
				return fmt.Errorf("clear steps: %w", err)
			}
			rows := toSteps(id, *in.Steps)
			ptrs := make([]*types.Step, len(rows))
			for i := range rows {
				ptrs[i] = &rows[i]
			}
			if _, err := s.stepRepo.Create(inner, ptrs); err != nil {
				return fmt.Errorf("replace steps: %w", err)
			}
		}
		updated, err = s.recipeRepo.GetByID(inner, id)
		if err != nil {
			return fmt.Errorf("reload recipe %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify.RecipeUpdated(dbc.Ctx, updated)
	return updated, nil
}

func (s *recipeService) DeleteRecipe(dbc dbctx.Context, id uint) error {
	deleted, err := s.recipeRepo.Delete(dbc, id)
	if err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	if !deleted {
		return recipeNotFound(id)
	}
	s.log.Info("Recipe deleted", "recipe_id", id)
	s.notify.RecipeDeleted(dbc.Ctx, id)
	return nil
}

// ScaleRecipe multiplies every ingredient quantity by factor. Servings are
// truncated to a whole number. Nothing is persisted. A factor whose results
// do not fit (servings beyond int, quantities beyond float64) is rejected.
func (s *recipeService) ScaleRecipe(dbc dbctx.Context, id uint, factor float64) (*types.ScaledRecipe, error) {
	if err := checkPositive("factor", factor); err != nil {
		return nil, apierr.BadRequest("invalid_scale_factor", err)
	}
	r, err := s.GetRecipe(dbc, id)
	if err != nil {
		return nil, err
	}
	servings := math.Trunc(float64(r.Servings) * factor)
	if math.IsInf(servings, 0) || servings >= float64(math.MaxInt) {
		return nil, apierr.BadRequest("invalid_scale_factor",
			fmt.Errorf("factor %g overflows servings of recipe %d", factor, id))
	}
	out := &types.ScaledRecipe{
		OriginalServings: r.Servings,
		ScaledServings:   int(servings),
		ScaleFactor:      factor,
		Ingredients:      make([]types.ScaledIngredient, 0, len(r.Ingredients)),
	}
	for _, ing := range r.Ingredients {
		q := ing.Quantity * factor
		if math.IsInf(q, 0) {
			return nil, apierr.BadRequest("invalid_scale_factor",
				fmt.Errorf("factor %g overflows quantity of %s", factor, ing.Name))
		}
		out.Ingredients = append(out.Ingredients, types.ScaledIngredient{
			Name:     ing.Name,
			Quantity: q,
			Unit:     ing.Unit,
		})
	}
	return out, nil
}
