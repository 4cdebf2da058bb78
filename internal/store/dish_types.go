package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"kitchen/models"
)

// DishTypeInput carries the editable dish type fields.
type DishTypeInput struct {
	Name string
}

// ListDishTypes returns a page of dish types ordered by name, optionally
// filtered by a case-insensitive substring of the name.
func (s *Store) ListDishTypes(ctx context.Context, name string, page int) (Page[models.DishType], error) {
	db, err := s.conn(ctx)
	if err != nil {
		return Page[models.DishType]{}, err
	}
	query := containsFilter(db.Model(&models.DishType{}), "name", name)
	return paginate[models.DishType](query, "name asc", page)
}

// AllDishTypes returns every dish type ordered by name, for select inputs.
func (s *Store) AllDishTypes(ctx context.Context) ([]models.DishType, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var types []models.DishType
	if err := db.Order("name asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// GetDishType loads a dish type with its dishes.
func (s *Store) GetDishType(ctx context.Context, id uint) (*models.DishType, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var dishType models.DishType
	err = db.Preload("Dishes", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("name asc")
	}).First(&dishType, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &dishType, nil
}

func (s *Store) validateDishType(ctx context.Context, in *DishTypeInput, excludeID uint) error {
	in.Name = strings.TrimSpace(in.Name)
	verr := &ValidationError{}
	requireText(verr, "name", in.Name, 255)
	if err := s.checkUnique(ctx, verr, &models.DishType{}, "name", "Dish type", in.Name, excludeID); err != nil {
		return err
	}
	return verr.Err()
}

// CreateDishType validates and stores a new dish type.
func (s *Store) CreateDishType(ctx context.Context, in DishTypeInput) (*models.DishType, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validateDishType(ctx, &in, 0); err != nil {
		return nil, err
	}
	dishType := models.DishType{Name: in.Name}
	if err := db.Create(&dishType).Error; err != nil {
		return nil, translateWriteError(err, "name", "Dish type")
	}
	return &dishType, nil
}

// UpdateDishType validates and renames an existing dish type.
func (s *Store) UpdateDishType(ctx context.Context, id uint, in DishTypeInput) (*models.DishType, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var dishType models.DishType
	if err := db.First(&dishType, id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := s.validateDishType(ctx, &in, id); err != nil {
		return nil, err
	}
	if err := db.Model(&dishType).Update("name", in.Name).Error; err != nil {
		return nil, translateWriteError(err, "name", "Dish type")
	}
	return &dishType, nil
}

// DeleteDishType removes a dish type together with every dish that
// references it and those dishes' cook and ingredient links.
func (s *Store) DeleteDishType(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *Store) error {
		var dishType models.DishType
		if err := tx.db.First(&dishType, id).Error; err != nil {
			return notFound(err)
		}
		var dishIDs []uint
		if err := tx.db.Model(&models.Dish{}).Where("dish_type_id = ?", id).Pluck("id", &dishIDs).Error; err != nil {
			return fmt.Errorf("collect dishes: %w", err)
		}
		if err := tx.deleteDishes(dishIDs); err != nil {
			return err
		}
		if err := tx.db.Delete(&dishType).Error; err != nil {
			return fmt.Errorf("delete dish type: %w", err)
		}
		return nil
	})
}
