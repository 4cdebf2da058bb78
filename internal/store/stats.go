package store

import (
	"context"
	"fmt"

	"kitchen/models"
)

// Counts summarises the kitchen for the dashboard.
type Counts struct {
	Cooks       int64 `json:"cooks"`
	Dishes      int64 `json:"dishes"`
	DishTypes   int64 `json:"dish_types"`
	Ingredients int64 `json:"ingredients"`
}

// Counts returns the number of rows per entity.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return Counts{}, err
	}
	var c Counts
	targets := []struct {
		model any
		dest  *int64
		name  string
	}{
		{&models.Cook{}, &c.Cooks, "cooks"},
		{&models.Dish{}, &c.Dishes, "dishes"},
		{&models.DishType{}, &c.DishTypes, "dish types"},
		{&models.Ingredient{}, &c.Ingredients, "ingredients"},
	}
	for _, target := range targets {
		if err := db.Model(target.model).Count(target.dest).Error; err != nil {
			return Counts{}, fmt.Errorf("count %s: %w", target.name, err)
		}
	}
	return c, nil
}
