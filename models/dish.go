package models

import "time"

// Dish is a menu item. It belongs to one DishType and links to the cooks who
// prepare it and the ingredients it uses.
type Dish struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Price       Price        `gorm:"type:decimal(10,2);not null" json:"price"`
	DishTypeID  uint         `gorm:"not null;index" json:"dish_type_id"`
	DishType    *DishType    `gorm:"foreignKey:DishTypeID" json:"dish_type,omitempty"`
	Cooks       []Cook       `gorm:"many2many:dish_cooks;constraint:OnDelete:CASCADE" json:"cooks,omitempty"`
	Ingredients []Ingredient `gorm:"many2many:dish_ingredients;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
