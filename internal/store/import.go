package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"kitchen/models"
)

// ImportResult reports what a bulk ingredient import changed.
type ImportResult struct {
	Created  []string
	Existing []string
}

// ImportIngredients creates every name that does not exist yet, matching
// existing rows case-insensitively. Blank and repeated names are skipped.
func (s *Store) ImportIngredients(ctx context.Context, names []string) (ImportResult, error) {
	var result ImportResult
	err := s.transaction(ctx, func(tx *Store) error {
		seen := make(map[string]struct{}, len(names))
		for _, raw := range names {
			name := strings.Join(strings.Fields(raw), " ")
			key := strings.ToLower(name)
			if name == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			if len([]rune(name)) > 255 {
				return FieldError("sheet", fmt.Sprintf("Ingredient name %q is too long.", name))
			}

			_, created, err := tx.ensureIngredient(name)
			if err != nil {
				return err
			}
			if created {
				result.Created = append(result.Created, name)
			} else {
				result.Existing = append(result.Existing, name)
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

// ImportDishTypes creates the named dish types that do not exist yet.
func (s *Store) ImportDishTypes(ctx context.Context, names []string) (ImportResult, error) {
	var result ImportResult
	err := s.transaction(ctx, func(tx *Store) error {
		for _, raw := range names {
			name := strings.TrimSpace(raw)
			if name == "" {
				continue
			}
			_, created, err := tx.ensureDishType(name)
			if err != nil {
				return err
			}
			if created {
				result.Created = append(result.Created, name)
			} else {
				result.Existing = append(result.Existing, name)
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

// MenuDish is one dish of a menu fixture, referencing its dish type and
// ingredients by name.
type MenuDish struct {
	Name        string
	Description string
	Price       models.Price
	DishType    string
	Ingredients []string
}

// ImportMenuDish creates or refreshes a dish from a fixture entry, creating
// the dish type and ingredients it names when missing. It reports whether
// the dish was new.
func (s *Store) ImportMenuDish(ctx context.Context, item MenuDish) (bool, error) {
	item.Name = strings.TrimSpace(item.Name)
	item.DishType = strings.TrimSpace(item.DishType)
	verr := &ValidationError{}
	requireText(verr, "name", item.Name, 255)
	requireText(verr, "dish_type", item.DishType, 255)
	if item.Price < 0 {
		verr.Add("price", "Ensure this value is greater than or equal to 0.")
	}
	if err := verr.Err(); err != nil {
		return false, err
	}
	description := strings.TrimSpace(item.Description)
	if description == "" {
		description = item.Name
	}

	created := false
	err := s.transaction(ctx, func(tx *Store) error {
		dishType, _, err := tx.ensureDishType(item.DishType)
		if err != nil {
			return err
		}

		ingredients := make([]models.Ingredient, 0, len(item.Ingredients))
		for _, name := range item.Ingredients {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			ingredient, _, err := tx.ensureIngredient(name)
			if err != nil {
				return err
			}
			ingredients = append(ingredients, *ingredient)
		}

		var dish models.Dish
		err = tx.db.Where("name = ?", item.Name).First(&dish).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			dish = models.Dish{
				Name:        item.Name,
				Description: description,
				Price:       item.Price,
				DishTypeID:  dishType.ID,
			}
			if err := tx.db.Omit("Cooks", "Ingredients", "DishType").Create(&dish).Error; err != nil {
				return fmt.Errorf("create dish %q: %w", item.Name, err)
			}
			created = true
		case err != nil:
			return fmt.Errorf("find dish %q: %w", item.Name, err)
		default:
			updates := map[string]any{
				"description":  description,
				"price":        item.Price,
				"dish_type_id": dishType.ID,
			}
			if err := tx.db.Model(&dish).Updates(updates).Error; err != nil {
				return fmt.Errorf("update dish %q: %w", item.Name, err)
			}
		}

		assoc := tx.db.Model(&dish).Association("Ingredients")
		if len(ingredients) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(ingredients)
	})
	return created, err
}

// ensureDishType returns the dish type with name, creating it when missing.
func (s *Store) ensureDishType(name string) (*models.DishType, bool, error) {
	var dishType models.DishType
	err := s.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&dishType).Error
	if err == nil {
		return &dishType, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find dish type %q: %w", name, err)
	}
	dishType = models.DishType{Name: name}
	if err := s.db.Omit("Dishes").Create(&dishType).Error; err != nil {
		return nil, false, fmt.Errorf("create dish type %q: %w", name, err)
	}
	return &dishType, true, nil
}

func (s *Store) ensureIngredient(name string) (*models.Ingredient, bool, error) {
	var ingredient models.Ingredient
	err := s.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&ingredient).Error
	if err == nil {
		return &ingredient, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find ingredient %q: %w", name, err)
	}
	ingredient = models.Ingredient{Name: name}
	if err := s.db.Omit("Dishes").Create(&ingredient).Error; err != nil {
		return nil, false, fmt.Errorf("create ingredient %q: %w", name, err)
	}
	return &ingredient, true, nil
}
