package store

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"kitchen/models"
)

func TestCreateDishTypeRejectsDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustDishType(t, s, "Desserts")

	_, err := s.CreateDishType(ctx, DishTypeInput{Name: "Desserts"})
	requireFieldError(t, err, "name")

	page, err := s.ListDishTypes(ctx, "", 1)
	if err != nil {
		t.Fatalf("ListDishTypes() error = %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected a single dish type after the duplicate, got %d", page.Total)
	}
}

func TestCreateDishTypeRequiresName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateDishType(context.Background(), DishTypeInput{Name: "   "})
	requireFieldError(t, err, "name")
}

func TestUpdateDishTypeKeepsOwnName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	soups := mustDishType(t, s, "Soups")
	mustDishType(t, s, "Salads")

	updated, err := s.UpdateDishType(ctx, soups.ID, DishTypeInput{Name: "Soups"})
	if err != nil {
		t.Fatalf("UpdateDishType() to the same name error = %v", err)
	}
	if updated.Name != "Soups" {
		t.Fatalf("unexpected name %q", updated.Name)
	}

	_, err = s.UpdateDishType(ctx, soups.ID, DishTypeInput{Name: "Salads"})
	requireFieldError(t, err, "name")

	if _, err := s.UpdateDishType(ctx, 999, DishTypeInput{Name: "Other"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteDishTypeCascadesToDishes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mains := mustDishType(t, s, "Mains")
	sides := mustDishType(t, s, "Sides")
	pasta := mustDish(t, s, "Pasta", mains.ID, "10.00")
	mustDish(t, s, "Risotto", mains.ID, "12.00")
	fries := mustDish(t, s, "Fries", sides.ID, "3.50")
	cheese := mustIngredient(t, s, "Cheese")
	cook := mustCook(t, s, "bob", "employee")

	if err := s.UpdateDishIngredient(ctx, pasta.ID, cheese.ID, ActionAdd); err != nil {
		t.Fatalf("UpdateDishIngredient() error = %v", err)
	}
	if err := s.UpdateDishCook(ctx, pasta.ID, cook.ID, ActionAdd); err != nil {
		t.Fatalf("UpdateDishCook() error = %v", err)
	}

	if err := s.DeleteDishType(ctx, mains.ID); err != nil {
		t.Fatalf("DeleteDishType() error = %v", err)
	}

	var remaining []models.Dish
	if err := s.DB().Find(&remaining).Error; err != nil {
		t.Fatalf("query dishes: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != fries.ID {
		t.Fatalf("expected only Fries to remain, got %+v", remaining)
	}

	var links int64
	if err := s.DB().Table("dish_ingredients").Where("dish_id = ?", pasta.ID).Count(&links).Error; err != nil {
		t.Fatalf("count dish_ingredients: %v", err)
	}
	if links != 0 {
		t.Fatalf("expected ingredient links to be removed, got %d", links)
	}
	if err := s.DB().Table("dish_cooks").Where("dish_id = ?", pasta.ID).Count(&links).Error; err != nil {
		t.Fatalf("count dish_cooks: %v", err)
	}
	if links != 0 {
		t.Fatalf("expected cook links to be removed, got %d", links)
	}

	if _, err := s.GetIngredient(ctx, cheese.ID); err != nil {
		t.Fatalf("ingredient should survive the cascade: %v", err)
	}
	if _, err := s.GetDishType(ctx, mains.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted dish type to be gone, got %v", err)
	}
	if err := s.DeleteDishType(ctx, mains.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestGetDishTypeListsDishesByName(t *testing.T) {
	s := newTestStore(t)

	mains := mustDishType(t, s, "Mains")
	mustDish(t, s, "Steak", mains.ID, "25.00")
	mustDish(t, s, "Lasagne", mains.ID, "14.00")

	dishType, err := s.GetDishType(context.Background(), mains.ID)
	if err != nil {
		t.Fatalf("GetDishType() error = %v", err)
	}
	if len(dishType.Dishes) != 2 || dishType.Dishes[0].Name != "Lasagne" {
		t.Fatalf("unexpected dishes %+v", dishType.Dishes)
	}
}

func TestTranslateWriteErrorMapsRacedDuplicate(t *testing.T) {
	s := newTestStore(t)
	mustDishType(t, s, "Mains")

	// Insert behind the up-front uniqueness check, as a concurrent writer would.
	raw := s.DB().Create(&models.DishType{Name: "Mains"}).Error
	if !errors.Is(raw, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey from the unique index, got %v", raw)
	}

	verr, ok := AsValidation(translateWriteError(raw, "name", "Dish type"))
	if !ok {
		t.Fatalf("expected a validation error, got %v", raw)
	}
	if got := verr.Field("name"); got != "Dish type with this name already exists." {
		t.Fatalf("unexpected name error %q", got)
	}

	other := errors.New("disk full")
	if err := translateWriteError(other, "name", "Dish type"); !errors.Is(err, other) {
		t.Fatalf("expected unrelated errors to pass through, got %v", err)
	}
	if err := translateWriteError(nil, "name", "Dish type"); err != nil {
		t.Fatalf("expected nil for a successful write, got %v", err)
	}
}
