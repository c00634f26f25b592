// Package seed loads the bundled sample recipes and pantry items.
package seed

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yungbote/recipebook-backend/internal/data/repos"
	types "github.com/yungbote/recipebook-backend/internal/domain/recipes"
	"github.com/yungbote/recipebook-backend/internal/platform/dbctx"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

// SeedFileEnv points at a YAML file that replaces the embedded sample data.
const SeedFileEnv = "SEED_DATA_YAML"

//go:embed sample_data.yaml
var sampleFS embed.FS

type Data struct {
	Recipes []RecipeSpec `yaml:"recipes"`
	Pantry  []ItemSpec   `yaml:"pantry"`
}

type RecipeSpec struct {
	Name            string     `yaml:"name"`
	Description     string     `yaml:"description"`
	Cuisine         string     `yaml:"cuisine"`
	Servings        int        `yaml:"servings"`
	PrepTimeMinutes int        `yaml:"prep_time_minutes"`
	CookTimeMinutes int        `yaml:"cook_time_minutes"`
	Ingredients     []ItemSpec `yaml:"ingredients"`
	Steps           []string   `yaml:"steps"`
}

type ItemSpec struct {
	Name     string  `yaml:"name"`
	Quantity float64 `yaml:"quantity"`
	Unit     string  `yaml:"unit"`
}

// Load reads path, or the embedded sample data when path is empty.
func Load(path string) (*Data, error) {
	var (
		raw []byte
		err error
	)
	if strings.TrimSpace(path) != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = sampleFS.ReadFile("sample_data.yaml")
	}
	if err != nil {
		return nil, fmt.Errorf("read seed data: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (d *Data) validate() error {
	var errs []error
	for i, r := range d.Recipes {
		if strings.TrimSpace(r.Name) == "" {
			errs = append(errs, fmt.Errorf("recipes[%d]: name is required", i))
		}
		if r.Servings < 0 {
			errs = append(errs, fmt.Errorf("recipes[%d]: servings must be positive", i))
		}
		for j, ing := range r.Ingredients {
			if err := ing.validate(); err != nil {
				errs = append(errs, fmt.Errorf("recipes[%d].ingredients[%d]: %w", i, j, err))
			}
		}
	}
	for i, it := range d.Pantry {
		if err := it.validate(); err != nil {
			errs = append(errs, fmt.Errorf("pantry[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (it ItemSpec) validate() error {
	switch {
	case strings.TrimSpace(it.Name) == "":
		return errors.New("name is required")
	case it.Quantity <= 0:
		return errors.New("quantity must be positive")
	case strings.TrimSpace(it.Unit) == "":
		return errors.New("unit is required")
	}
	return nil
}

func (r RecipeSpec) toRecipe() *types.Recipe {
	rec := &types.Recipe{
		Name:     r.Name,
		Servings: r.Servings,
	}
	if rec.Servings == 0 {
		rec.Servings = 1
	}
	if r.Description != "" {
		rec.Description = &r.Description
	}
	if r.Cuisine != "" {
		rec.Cuisine = &r.Cuisine
	}
	if r.PrepTimeMinutes > 0 {
		rec.PrepTimeMinutes = &r.PrepTimeMinutes
	}
	if r.CookTimeMinutes > 0 {
		rec.CookTimeMinutes = &r.CookTimeMinutes
	}
	for _, ing := range r.Ingredients {
		rec.Ingredients = append(rec.Ingredients, types.Ingredient{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit})
	}
	for i, instruction := range r.Steps {
		rec.Steps = append(rec.Steps, types.Step{StepNumber: i + 1, Instruction: instruction})
	}
	return rec
}

type Report struct {
	RecipesCreated int
	RecipesSkipped int
	PantryCreated  int
	PantrySkipped  int
}

type Seeder struct {
	db         *gorm.DB
	log        *logger.Logger
	recipeRepo repos.RecipeRepo
	pantryRepo repos.PantryRepo
}

func NewSeeder(db *gorm.DB, baseLog *logger.Logger, recipeRepo repos.RecipeRepo, pantryRepo repos.PantryRepo) *Seeder {
	return &Seeder{
		db:         db,
		log:        baseLog.With("service", "Seeder"),
		recipeRepo: recipeRepo,
		pantryRepo: pantryRepo,
	}
}

// Apply inserts recipes whose name is not yet taken and pantry items that are
// absent. Running it twice leaves the database unchanged.
func (s *Seeder) Apply(dbc dbctx.Context, data *Data) (*Report, error) {
	report := &Report{}
	if data == nil {
		return report, nil
	}
	err := dbc.DB(s.db).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		for _, rec := range data.Recipes {
			existing, err := s.recipeRepo.GetByName(inner, rec.Name)
			if err != nil {
				return fmt.Errorf("lookup recipe %q: %w", rec.Name, err)
			}
			if existing != nil {
				report.RecipesSkipped++
				continue
			}
			if _, err := s.recipeRepo.Create(inner, rec.toRecipe()); err != nil {
				return fmt.Errorf("create recipe %q: %w", rec.Name, err)
			}
			report.RecipesCreated++
		}
		for _, it := range data.Pantry {
			existing, err := s.pantryRepo.GetByNameForUpdate(inner, it.Name)
			if err != nil {
				return fmt.Errorf("lookup pantry item %q: %w", it.Name, err)
			}
			if existing != nil {
				report.PantrySkipped++
				continue
			}
			if _, err := s.pantryRepo.Create(inner, &types.PantryItem{Name: it.Name, Quantity: it.Quantity, Unit: it.Unit}); err != nil {
				return fmt.Errorf("create pantry item %q: %w", it.Name, err)
			}
			report.PantryCreated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Seed applied",
		"recipes_created", report.RecipesCreated,
		"recipes_skipped", report.RecipesSkipped,
		"pantry_created", report.PantryCreated,
		"pantry_skipped", report.PantrySkipped,
	)
	return report, nil
}
