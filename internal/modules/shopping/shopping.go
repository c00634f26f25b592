// Package shopping derives a shopping list from a set of recipes and the pantry.
//
// Requirements are accumulated per ingredient key across every requested recipe,
// then the pantry snapshot is subtracted once from each total. Keys are exact
// (name, unit) pairs: "Sugar"/"g" and "Sugar"/"kg" are unrelated goods.
package shopping

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Requirement is one ingredient line of a recipe.
type Requirement struct {
	Name     string
	Quantity float64
	Unit     string
}

// PantryEntry is the on-hand quantity of one (name, unit) pair.
type PantryEntry struct {
	Name     string
	Quantity float64
	Unit     string
}

// Line is one item to buy.
type Line struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// RecipeIngredientSource resolves a recipe id to its ingredient list.
// found is false when the recipe does not exist, including ids no recipe can
// carry (zero or negative).
type RecipeIngredientSource interface {
	RecipeIngredients(ctx context.Context, recipeID int64) (reqs []Requirement, found bool, err error)
}

// PantrySource returns the full pantry, unique per (name, unit).
type PantrySource interface {
	PantryEntries(ctx context.Context) ([]PantryEntry, error)
}

// Key identifies a distinct good. Comparison is exact and case-sensitive.
type Key struct {
	Name string
	Unit string
}

// ErrQuantityOverflow is returned when an accumulated need no longer fits a float64.
var ErrQuantityOverflow = errors.New("ingredient quantity overflow")

// Result carries the lines plus bookkeeping callers may want to log.
type Result struct {
	Lines          []Line
	RecipesFound   int
	RecipesSkipped int
	KeysCovered    int
}

// Generate builds the shopping list for recipeIDs. Unknown ids are skipped.
// Duplicate ids count their recipe once per occurrence. The pantry is read
// exactly once, after every recipe has been loaded. Any source error aborts
// the whole computation and no lines are returned, as does a total that
// overflows (ErrQuantityOverflow).
func Generate(ctx context.Context, recipeIDs []int64, recipes RecipeIngredientSource, pantry PantrySource) (*Result, error) {
	needs := newTally()
	res := &Result{}

	for _, id := range recipeIDs {
		reqs, found, err := recipes.RecipeIngredients(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load recipe %d ingredients: %w", id, err)
		}
		if !found {
			res.RecipesSkipped++
			continue
		}
		res.RecipesFound++
		for _, r := range reqs {
			k := Key{Name: r.Name, Unit: r.Unit}
			if total := needs.add(k, r.Quantity); math.IsInf(total, 0) || math.IsNaN(total) {
				return nil, fmt.Errorf("%w: %s (%s) in recipe %d", ErrQuantityOverflow, k.Name, k.Unit, id)
			}
		}
	}

	entries, err := pantry.PantryEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pantry: %w", err)
	}
	available := make(map[Key]float64, len(entries))
	for _, e := range entries {
		available[Key{Name: e.Name, Unit: e.Unit}] = e.Quantity
	}

	res.Lines = make([]Line, 0, needs.len())
	for _, k := range needs.order {
		remaining := Remainder(needs.totals[k], available[k])
		if remaining <= 0 {
			res.KeysCovered++
			continue
		}
		res.Lines = append(res.Lines, Line{Name: k.Name, Quantity: remaining, Unit: k.Unit})
	}
	return res, nil
}

// Remainder is max(0, needed - available).
func Remainder(needed, available float64) float64 {
	if r := needed - available; r > 0 {
		return r
	}
	return 0
}

// tally is an insertion-ordered map of key to accumulated quantity.
type tally struct {
	order  []Key
	totals map[Key]float64
}

func newTally() *tally {
	return &tally{totals: make(map[Key]float64)}
}

// add accumulates qty under k and returns the new total.
func (t *tally) add(k Key, qty float64) float64 {
	if _, ok := t.totals[k]; !ok {
		t.order = append(t.order, k)
	}
	t.totals[k] += qty
	return t.totals[k]
}

func (t *tally) len() int { return len(t.order) }
