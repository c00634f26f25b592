package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLen    = 200
	maxUnitLen    = 50
	maxCuisineLen = 100

	DefaultPageSize = 100
	MaxPageSize     = 100
)

type IngredientInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type StepInput struct {
	StepNumber  int    `json:"step_number"`
	Instruction string `json:"instruction"`
}

func checkText(field, v string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	if n < min {
		if min == 1 {
			return fmt.Errorf("%s is required", field)
		}
		return fmt.Errorf("%s must be at least %d characters", field, min)
	}
	if max > 0 && n > max {
		return fmt.Errorf("%s must be at most %d characters", field, max)
	}
	return nil
}

func checkPositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%s must be greater than 0", field)
	}
	return nil
}

func checkPositiveInt(field string, v *int) error {
	if v != nil && *v <= 0 {
		return fmt.Errorf("%s must be greater than 0", field)
	}
	return nil
}

func (in IngredientInput) validate(prefix string) []error {
	var errs []error
	if err := checkText(prefix+".name", in.Name, 1, maxNameLen); err != nil {
		errs = append(errs, err)
	}
	if err := checkPositive(prefix+".quantity", in.Quantity); err != nil {
		errs = append(errs, err)
	}
	if err := checkText(prefix+".unit", in.Unit, 1, maxUnitLen); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func (in StepInput) validate(prefix string) []error {
	var errs []error
	if in.StepNumber <= 0 {
		errs = append(errs, fmt.Errorf("%s.step_number must be greater than 0", prefix))
	}
	if err := checkText(prefix+".instruction", in.Instruction, 1, 0); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func validateChildren(ingredients []IngredientInput, steps []StepInput) []error {
	var errs []error
	for i, ing := range ingredients {
		errs = append(errs, ing.validate(fmt.Sprintf("ingredients[%d]", i))...)
	}
	for i, st := range steps {
		errs = append(errs, st.validate(fmt.Sprintf("steps[%d]", i))...)
	}
	return errs
}

// normalizePage applies the listing defaults; negative values are rejected.
func normalizePage(skip, limit *int) (int, int, error) {
	s, l := 0, DefaultPageSize
	if skip != nil {
		if *skip < 0 {
			return 0, 0, errors.New("skip must be >= 0")
		}
		s = *skip
	}
	if limit != nil {
		if *limit < 0 {
			return 0, 0, errors.New("limit must be >= 0")
		}
		l = *limit
	}
	if l > MaxPageSize {
		l = MaxPageSize
	}
	return s, l, nil
}
