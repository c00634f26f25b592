package recipes

import "time"

type Recipe struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Name            string       `gorm:"column:name;size:200;not null;index" json:"name"`
	Description     *string      `gorm:"column:description;type:text" json:"description"`
	Cuisine         *string      `gorm:"column:cuisine;size:100" json:"cuisine"`
	Servings        int          `gorm:"column:servings;not null;default:1" json:"servings"`
	PrepTimeMinutes *int         `gorm:"column:prep_time_minutes" json:"prep_time_minutes"`
	CookTimeMinutes *int         `gorm:"column:cook_time_minutes" json:"cook_time_minutes"`
	Ingredients     []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Steps           []Step       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"steps"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Recipe) TableName() string { return "recipes" }

// ScaledIngredient is an ingredient line multiplied by a scale factor.
type ScaledIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type ScaledRecipe struct {
	OriginalServings int                `json:"original_servings"`
	ScaledServings   int                `json:"scaled_servings"`
	ScaleFactor      float64            `json:"scale_factor"`
	Ingredients      []ScaledIngredient `json:"ingredients"`
}
