package recipes

type Step struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RecipeID    uint   `gorm:"column:recipe_id;not null;index" json:"recipe_id"`
	StepNumber  int    `gorm:"column:step_number;not null" json:"step_number"`
	Instruction string `gorm:"column:instruction;type:text;not null" json:"instruction"`
}

func (Step) TableName() string { return "steps" }
