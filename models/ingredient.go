package models

import "time"

// Ingredient is a pantry item shared across dishes.
type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Dishes    []Dish    `gorm:"many2many:dish_ingredients;constraint:OnDelete:CASCADE" json:"dishes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
