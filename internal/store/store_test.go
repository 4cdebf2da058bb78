package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kitchen/internal/auth"
	"kitchen/internal/db"
	"kitchen/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	database, err := gorm.Open(sqlite.Open(dsn), db.GormConfig())
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	if err := auth.EnsureRoles(context.Background(), database); err != nil {
		t.Fatalf("failed to ensure roles: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return New(database)
}

func mustDishType(t *testing.T, s *Store, name string) *models.DishType {
	t.Helper()
	dishType, err := s.CreateDishType(context.Background(), DishTypeInput{Name: name})
	if err != nil {
		t.Fatalf("CreateDishType(%q) error = %v", name, err)
	}
	return dishType
}

func mustDish(t *testing.T, s *Store, name string, dishTypeID uint, price string) *models.Dish {
	t.Helper()
	parsed, err := models.ParsePrice(price)
	if err != nil {
		t.Fatalf("ParsePrice(%q) error = %v", price, err)
	}
	dish, err := s.CreateDish(context.Background(), DishInput{
		Name:        name,
		Description: name + " description",
		Price:       parsed,
		DishTypeID:  dishTypeID,
	})
	if err != nil {
		t.Fatalf("CreateDish(%q) error = %v", name, err)
	}
	return dish
}

func mustIngredient(t *testing.T, s *Store, name string) *models.Ingredient {
	t.Helper()
	ingredient, err := s.CreateIngredient(context.Background(), IngredientInput{Name: name})
	if err != nil {
		t.Fatalf("CreateIngredient(%q) error = %v", name, err)
	}
	return ingredient
}

func mustCook(t *testing.T, s *Store, username, role string) *models.Cook {
	t.Helper()
	cook, err := s.CreateCook(context.Background(), NewCookInput{
		CookInput: CookInput{Username: username, Role: role},
		Password1: "Sh4rpKnives!",
		Password2: "Sh4rpKnives!",
	})
	if err != nil {
		t.Fatalf("CreateCook(%q) error = %v", username, err)
	}
	return cook
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	verr, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error on %q, got %v", field, err)
	}
	if verr.Field(field) == "" {
		t.Fatalf("expected error on field %q, got %v", field, verr.Fields)
	}
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "", want: 1},
		{raw: "1", want: 1},
		{raw: " 3 ", want: 3},
		{raw: "last", want: -1},
		{raw: "0", wantErr: true},
		{raw: "-2", wantErr: true},
		{raw: "two", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParsePage(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrPageNotFound) {
				t.Fatalf("ParsePage(%q) error = %v, want ErrPageNotFound", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePage(%q) unexpected error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParsePage(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestListPagesHoldFiveRowsInNameOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	names := []string{"Garlic", "Basil", "Flour", "Eggs", "Anchovy", "Capers", "Dill"}
	for _, name := range names {
		mustIngredient(t, s, name)
	}

	first, err := s.ListIngredients(ctx, "", 1)
	if err != nil {
		t.Fatalf("ListIngredients() page 1 error = %v", err)
	}
	if len(first.Items) != PageSize {
		t.Fatalf("expected %d items on page 1, got %d", PageSize, len(first.Items))
	}
	want := []string{"Anchovy", "Basil", "Capers", "Dill", "Eggs"}
	for i, item := range first.Items {
		if item.Name != want[i] {
			t.Fatalf("page 1 item %d = %q, want %q", i, item.Name, want[i])
		}
	}
	if first.NumPages != 2 || first.Total != 7 || !first.HasNext() || first.HasPrevious() {
		t.Fatalf("unexpected page metadata: %+v", first)
	}

	last, err := s.ListIngredients(ctx, "", -1)
	if err != nil {
		t.Fatalf("ListIngredients() last page error = %v", err)
	}
	if last.Number != 2 || len(last.Items) != 2 || last.Items[0].Name != "Flour" || last.Items[1].Name != "Garlic" {
		t.Fatalf("unexpected last page: %+v", last)
	}

	if _, err := s.ListIngredients(ctx, "", 3); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound past the last page, got %v", err)
	}
}

func TestListEmptyResultHasFirstPage(t *testing.T) {
	s := newTestStore(t)

	page, err := s.ListDishTypes(context.Background(), "nothing", 1)
	if err != nil {
		t.Fatalf("ListDishTypes() error = %v", err)
	}
	if len(page.Items) != 0 || page.Number != 1 || page.NumPages != 1 {
		t.Fatalf("unexpected empty page: %+v", page)
	}
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	starters := mustDishType(t, s, "Starters")
	mustDish(t, s, "Bread and butter", starters.ID, "4.50")
	mustDish(t, s, "Olives", starters.ID, "3.00")

	page, err := s.ListDishes(ctx, "br", 1)
	if err != nil {
		t.Fatalf("ListDishes() error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Bread and butter" {
		t.Fatalf("expected only Bread and butter, got %+v", page.Items)
	}
	if page.Items[0].DishType == nil || page.Items[0].DishType.Name != "Starters" {
		t.Fatalf("expected dish type to be preloaded, got %+v", page.Items[0].DishType)
	}

	upper, err := s.ListDishes(ctx, "OLI", 1)
	if err != nil {
		t.Fatalf("ListDishes() error = %v", err)
	}
	if len(upper.Items) != 1 || upper.Items[0].Name != "Olives" {
		t.Fatalf("expected Olives for upper-case term, got %+v", upper.Items)
	}
}

func TestFilterMatchesNonASCIINames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustDishType(t, s, "Édition spéciale")
	mustDishType(t, s, "Mains")

	for _, term := range []string{"Édition", "spéciale", "ÉDITION", "dition"} {
		page, err := s.ListDishTypes(ctx, term, 1)
		if err != nil {
			t.Fatalf("ListDishTypes(%q) error = %v", term, err)
		}
		if len(page.Items) != 1 || page.Items[0].Name != "Édition spéciale" {
			t.Fatalf("ListDishTypes(%q) = %+v, want Édition spéciale", term, page.Items)
		}
	}
}

func TestFilterKeepsWhitespaceTerm(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	starters := mustDishType(t, s, "Starters")
	mustDish(t, s, "Bread and butter", starters.ID, "4.50")
	mustDish(t, s, "Olives", starters.ID, "3.00")

	page, err := s.ListDishes(ctx, " ", 1)
	if err != nil {
		t.Fatalf("ListDishes() error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Bread and butter" {
		t.Fatalf("expected a blank term to match names with spaces, got %+v", page.Items)
	}
}

func TestFilterEscapesWildcards(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustIngredient(t, s, "Salt")
	mustIngredient(t, s, "100% cocoa")

	page, err := s.ListIngredients(ctx, "%", 1)
	if err != nil {
		t.Fatalf("ListIngredients() error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "100% cocoa" {
		t.Fatalf("expected literal percent match, got %+v", page.Items)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	verr := &ValidationError{}
	if verr.Err() != nil {
		t.Fatal("expected empty validation error to be nil")
	}
	verr.Add("name", "This field is required.")
	verr.Add("description", "This field is required.")

	err := verr.Err()
	if err == nil {
		t.Fatal("expected validation error")
	}
	want := "validation failed: description: This field is required., name: This field is required."
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	wrapped := fmt.Errorf("save: %w", err)
	if got, ok := AsValidation(wrapped); !ok || got.Field("name") == "" {
		t.Fatalf("AsValidation() did not unwrap %v", wrapped)
	}
}

func TestNilStoreReturnsInvalidDB(t *testing.T) {
	t.Parallel()

	var s *Store
	if _, err := s.ListCooks(context.Background(), "", 1); !errors.Is(err, gorm.ErrInvalidDB) {
		t.Fatalf("expected ErrInvalidDB, got %v", err)
	}
}

func TestCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mains := mustDishType(t, s, "Mains")
	mustDish(t, s, "Pasta", mains.ID, "10.00")
	mustIngredient(t, s, "Cheese")
	mustIngredient(t, s, "Tomato")
	mustCook(t, s, "alice", "manager")

	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	want := Counts{Cooks: 1, Dishes: 1, DishTypes: 1, Ingredients: 2}
	if counts != want {
		t.Fatalf("Counts() = %+v, want %+v", counts, want)
	}
}
