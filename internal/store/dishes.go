package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"kitchen/models"
)

// DishInput carries the editable dish fields. CookIDs replaces the set of
// cooks preparing the dish; ingredients are managed with UpdateDishIngredient.
type DishInput struct {
	Name        string
	Description string
	Price       models.Price
	DishTypeID  uint
	CookIDs     []uint
}

// MaxPrice is the first amount that no longer fits a decimal(10,2) column.
const MaxPrice models.Price = 100_000_000_00

// RelationAction is the operation applied by the dish relation toggles.
type RelationAction string

const (
	ActionAdd    RelationAction = "add"
	ActionRemove RelationAction = "remove"
)

// ParseAction validates a toggle action.
func ParseAction(value string) (RelationAction, error) {
	switch RelationAction(strings.TrimSpace(value)) {
	case ActionAdd:
		return ActionAdd, nil
	case ActionRemove:
		return ActionRemove, nil
	default:
		return "", FieldError("action", fmt.Sprintf("Unknown action %q.", value))
	}
}

// ListDishes returns a page of dishes ordered by name with their dish type.
func (s *Store) ListDishes(ctx context.Context, name string, page int) (Page[models.Dish], error) {
	db, err := s.conn(ctx)
	if err != nil {
		return Page[models.Dish]{}, err
	}
	query := containsFilter(db.Model(&models.Dish{}), "name", name).Preload("DishType")
	return paginate[models.Dish](query, "name asc", page)
}

// AllDishes returns every dish ordered by name, for checkbox inputs.
func (s *Store) AllDishes(ctx context.Context) ([]models.Dish, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var dishes []models.Dish
	if err := db.Order("name asc").Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// GetDish loads a dish with its type, cooks and ingredients.
func (s *Store) GetDish(ctx context.Context, id uint) (*models.Dish, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var dish models.Dish
	err = db.Preload("DishType").
		Preload("Cooks", func(tx *gorm.DB) *gorm.DB { return tx.Order("username asc") }).
		Preload("Ingredients", func(tx *gorm.DB) *gorm.DB { return tx.Order("name asc") }).
		First(&dish, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &dish, nil
}

func (s *Store) validateDish(ctx context.Context, in *DishInput, excludeID uint) ([]models.Cook, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.CookIDs = uniqueIDs(in.CookIDs)

	verr := &ValidationError{}
	requireText(verr, "name", in.Name, 255)
	requireText(verr, "description", in.Description, 0)
	switch {
	case in.Price < 0:
		verr.Add("price", "Ensure this value is greater than or equal to 0.")
	case in.Price >= MaxPrice:
		verr.Add("price", "Ensure that there are no more than 10 digits in total.")
	}
	if err := s.checkUnique(ctx, verr, &models.Dish{}, "name", "Dish", in.Name, excludeID); err != nil {
		return nil, err
	}

	if in.DishTypeID == 0 {
		verr.Add("dish_type", "This field is required.")
	} else {
		ok, err := s.exists(ctx, &models.DishType{}, "id", in.DishTypeID, 0)
		if err != nil {
			return nil, fmt.Errorf("check dish type: %w", err)
		}
		if !ok {
			verr.Add("dish_type", "Select a valid choice. That choice is not one of the available choices.")
		}
	}

	var cooks []models.Cook
	if len(in.CookIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", in.CookIDs).Find(&cooks).Error; err != nil {
			return nil, fmt.Errorf("load cooks: %w", err)
		}
		if len(cooks) != len(in.CookIDs) {
			verr.Add("cooks", "Select a valid choice. One of the cooks is not available.")
		}
	}

	return cooks, verr.Err()
}

// CreateDish validates and stores a new dish and its cooks.
func (s *Store) CreateDish(ctx context.Context, in DishInput) (*models.Dish, error) {
	if _, err := s.conn(ctx); err != nil {
		return nil, err
	}
	cooks, err := s.validateDish(ctx, &in, 0)
	if err != nil {
		return nil, err
	}
	dish := models.Dish{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		DishTypeID:  in.DishTypeID,
	}
	err = s.transaction(ctx, func(tx *Store) error {
		if err := tx.db.Omit("Cooks", "Ingredients", "DishType").Create(&dish).Error; err != nil {
			return translateWriteError(err, "name", "Dish")
		}
		if len(cooks) > 0 {
			if err := tx.db.Model(&dish).Association("Cooks").Append(cooks); err != nil {
				return fmt.Errorf("link cooks: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

// UpdateDish validates and rewrites a dish, replacing its cooks.
func (s *Store) UpdateDish(ctx context.Context, id uint, in DishInput) (*models.Dish, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var dish models.Dish
	if err := db.First(&dish, id).Error; err != nil {
		return nil, notFound(err)
	}
	cooks, err := s.validateDish(ctx, &in, id)
	if err != nil {
		return nil, err
	}
	err = s.transaction(ctx, func(tx *Store) error {
		updates := map[string]any{
			"name":         in.Name,
			"description":  in.Description,
			"price":        in.Price,
			"dish_type_id": in.DishTypeID,
		}
		if err := tx.db.Model(&dish).Updates(updates).Error; err != nil {
			return translateWriteError(err, "name", "Dish")
		}
		assoc := tx.db.Model(&dish).Association("Cooks")
		if len(cooks) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(cooks)
	})
	if err != nil {
		return nil, err
	}
	return s.GetDish(ctx, id)
}

// DeleteDish removes a dish and its links. The dish type is kept.
func (s *Store) DeleteDish(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *Store) error {
		var dish models.Dish
		if err := tx.db.First(&dish, id).Error; err != nil {
			return notFound(err)
		}
		return tx.deleteDishes([]uint{id})
	})
}

// deleteDishes removes the join rows and then the dishes themselves. It must
// run inside a transaction.
func (s *Store) deleteDishes(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.db.Exec("DELETE FROM dish_cooks WHERE dish_id IN ?", ids).Error; err != nil {
		return fmt.Errorf("unlink cooks: %w", err)
	}
	if err := s.db.Exec("DELETE FROM dish_ingredients WHERE dish_id IN ?", ids).Error; err != nil {
		return fmt.Errorf("unlink ingredients: %w", err)
	}
	if err := s.db.Where("id IN ?", ids).Delete(&models.Dish{}).Error; err != nil {
		return fmt.Errorf("delete dishes: %w", err)
	}
	return nil
}

// UpdateDishIngredient adds or removes one ingredient. Adding an existing
// ingredient and removing an absent one are both no-ops.
func (s *Store) UpdateDishIngredient(ctx context.Context, dishID, ingredientID uint, action RelationAction) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	var dish models.Dish
	if err := db.First(&dish, dishID).Error; err != nil {
		return notFound(err)
	}
	var ingredient models.Ingredient
	if err := db.First(&ingredient, ingredientID).Error; err != nil {
		return notFound(err)
	}
	return toggle(db.Model(&dish).Association("Ingredients"), &ingredient, action)
}

// UpdateDishCook adds or removes one cook with the same semantics as
// UpdateDishIngredient.
func (s *Store) UpdateDishCook(ctx context.Context, dishID, cookID uint, action RelationAction) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	var dish models.Dish
	if err := db.First(&dish, dishID).Error; err != nil {
		return notFound(err)
	}
	var cook models.Cook
	if err := db.First(&cook, cookID).Error; err != nil {
		return notFound(err)
	}
	return toggle(db.Model(&dish).Association("Cooks"), &cook, action)
}

func toggle(assoc *gorm.Association, related any, action RelationAction) error {
	switch action {
	case ActionAdd:
		return assoc.Append(related)
	case ActionRemove:
		return assoc.Delete(related)
	default:
		_, err := ParseAction(string(action))
		return err
	}
}
