package recipes

import "time"

// PantryItem is one line of on-hand inventory. Name is unique across the pantry,
// so there is never more than one entry per (name, unit) pair.
type PantryItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"column:name;size:200;not null;uniqueIndex" json:"name"`
	Quantity float64 `gorm:"column:quantity;not null" json:"quantity"`
	Unit     string  `gorm:"column:unit;size:50;not null" json:"unit"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PantryItem) TableName() string { return "pantry" }
