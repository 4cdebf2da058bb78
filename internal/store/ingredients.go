package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"kitchen/models"
)

// IngredientInput carries the editable ingredient fields. DishIDs replaces
// the set of dishes using the ingredient.
type IngredientInput struct {
	Name    string
	DishIDs []uint
}

// ListIngredients returns a page of ingredients ordered by name.
func (s *Store) ListIngredients(ctx context.Context, name string, page int) (Page[models.Ingredient], error) {
	db, err := s.conn(ctx)
	if err != nil {
		return Page[models.Ingredient]{}, err
	}
	query := containsFilter(db.Model(&models.Ingredient{}), "name", name)
	return paginate[models.Ingredient](query, "name asc", page)
}

// GetIngredient loads an ingredient with the dishes that use it.
func (s *Store) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var ingredient models.Ingredient
	err = db.Preload("Dishes", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("name asc")
	}).First(&ingredient, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &ingredient, nil
}

func (s *Store) validateIngredient(ctx context.Context, in *IngredientInput, excludeID uint) ([]models.Dish, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.DishIDs = uniqueIDs(in.DishIDs)

	verr := &ValidationError{}
	requireText(verr, "name", in.Name, 255)
	if err := s.checkUnique(ctx, verr, &models.Ingredient{}, "name", "Ingredient", in.Name, excludeID); err != nil {
		return nil, err
	}

	var dishes []models.Dish
	if len(in.DishIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", in.DishIDs).Find(&dishes).Error; err != nil {
			return nil, fmt.Errorf("load dishes: %w", err)
		}
		if len(dishes) != len(in.DishIDs) {
			verr.Add("dishes", "Select a valid choice. One of the dishes is not available.")
		}
	}
	return dishes, verr.Err()
}

// CreateIngredient validates and stores a new ingredient.
func (s *Store) CreateIngredient(ctx context.Context, in IngredientInput) (*models.Ingredient, error) {
	if _, err := s.conn(ctx); err != nil {
		return nil, err
	}
	dishes, err := s.validateIngredient(ctx, &in, 0)
	if err != nil {
		return nil, err
	}
	ingredient := models.Ingredient{Name: in.Name}
	err = s.transaction(ctx, func(tx *Store) error {
		if err := tx.db.Omit("Dishes").Create(&ingredient).Error; err != nil {
			return translateWriteError(err, "name", "Ingredient")
		}
		if len(dishes) > 0 {
			return tx.db.Model(&ingredient).Association("Dishes").Append(dishes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// UpdateIngredient validates and rewrites an ingredient and its dishes.
func (s *Store) UpdateIngredient(ctx context.Context, id uint, in IngredientInput) (*models.Ingredient, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var ingredient models.Ingredient
	if err := db.First(&ingredient, id).Error; err != nil {
		return nil, notFound(err)
	}
	dishes, err := s.validateIngredient(ctx, &in, id)
	if err != nil {
		return nil, err
	}
	err = s.transaction(ctx, func(tx *Store) error {
		if err := tx.db.Model(&ingredient).Update("name", in.Name).Error; err != nil {
			return translateWriteError(err, "name", "Ingredient")
		}
		assoc := tx.db.Model(&ingredient).Association("Dishes")
		if len(dishes) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(dishes)
	})
	if err != nil {
		return nil, err
	}
	return s.GetIngredient(ctx, id)
}

// DeleteIngredient removes an ingredient and its dish links.
func (s *Store) DeleteIngredient(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *Store) error {
		var ingredient models.Ingredient
		if err := tx.db.First(&ingredient, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.db.Exec("DELETE FROM dish_ingredients WHERE ingredient_id = ?", id).Error; err != nil {
			return fmt.Errorf("unlink dishes: %w", err)
		}
		return tx.db.Delete(&ingredient).Error
	})
}

// FindIngredientByName looks an ingredient up ignoring case.
func (s *Store) FindIngredientByName(ctx context.Context, name string) (*models.Ingredient, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var ingredient models.Ingredient
	err = db.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).First(&ingredient).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &ingredient, nil
}
