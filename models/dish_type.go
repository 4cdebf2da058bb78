package models

import "time"

// DishType groups dishes on the menu, e.g. "Mains" or "Desserts".
type DishType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Dishes    []Dish    `gorm:"foreignKey:DishTypeID;constraint:OnDelete:CASCADE" json:"dishes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
