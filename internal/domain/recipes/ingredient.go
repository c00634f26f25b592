package recipes

type Ingredient struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	RecipeID uint    `gorm:"column:recipe_id;not null;index" json:"recipe_id"`
	Name     string  `gorm:"column:name;size:200;not null" json:"name"`
	Quantity float64 `gorm:"column:quantity;not null" json:"quantity"`
	Unit     string  `gorm:"column:unit;size:50;not null" json:"unit"`
}

func (Ingredient) TableName() string { return "ingredients" }
