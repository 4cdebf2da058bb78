package store

import (
	"context"
	"errors"
	"testing"

	"kitchen/models"
)

func TestCreateDishValidatesFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mains := mustDishType(t, s, "Mains")
	mustDish(t, s, "Pasta", mains.ID, "10.00")

	cases := []struct {
		name  string
		input DishInput
		field string
	}{
		{
			name:  "duplicate name",
			input: DishInput{Name: "Pasta", Description: "again", Price: 100, DishTypeID: mains.ID},
			field: "name",
		},
		{
			name:  "missing description",
			input: DishInput{Name: "Soup", Price: 100, DishTypeID: mains.ID},
			field: "description",
		},
		{
			name:  "negative price",
			input: DishInput{Name: "Soup", Description: "hot", Price: -1, DishTypeID: mains.ID},
			field: "price",
		},
		{
			name:  "price too large",
			input: DishInput{Name: "Soup", Description: "hot", Price: MaxPrice, DishTypeID: mains.ID},
			field: "price",
		},
		{
			name:  "missing dish type",
			input: DishInput{Name: "Soup", Description: "hot", Price: 100},
			field: "dish_type",
		},
		{
			name:  "unknown dish type",
			input: DishInput{Name: "Soup", Description: "hot", Price: 100, DishTypeID: 404},
			field: "dish_type",
		},
		{
			name:  "unknown cook",
			input: DishInput{Name: "Soup", Description: "hot", Price: 100, DishTypeID: mains.ID, CookIDs: []uint{77}},
			field: "cooks",
		},
	}

	for _, tc := range cases {
		_, err := s.CreateDish(ctx, tc.input)
		verr, ok := AsValidation(err)
		if !ok {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		if verr.Field(tc.field) == "" {
			t.Fatalf("%s: expected error on %q, got %v", tc.name, tc.field, verr.Fields)
		}
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if counts.Dishes != 1 {
		t.Fatalf("invalid input must not persist dishes, got %d", counts.Dishes)
	}
}

func TestMenuScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mains := mustDishType(t, s, "Mains")
	pasta := mustDish(t, s, "Pasta", mains.ID, "10.00")
	cheese := mustIngredient(t, s, "Cheese")

	if err := s.UpdateDishIngredient(ctx, pasta.ID, cheese.ID, ActionAdd); err != nil {
		t.Fatalf("UpdateDishIngredient() error = %v", err)
	}

	dish, err := s.GetDish(ctx, pasta.ID)
	if err != nil {
		t.Fatalf("GetDish() error = %v", err)
	}
	if dish.Name != "Pasta" || dish.Price.String() != "10.00" {
		t.Fatalf("unexpected dish %+v", dish)
	}
	if dish.DishType == nil || dish.DishType.Name != "Mains" {
		t.Fatalf("expected Mains dish type, got %+v", dish.DishType)
	}
	if len(dish.Ingredients) != 1 || dish.Ingredients[0].Name != "Cheese" {
		t.Fatalf("expected Cheese ingredient, got %+v", dish.Ingredients)
	}
}

func TestUpdateDishIngredientIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mains := mustDishType(t, s, "Mains")
	pasta := mustDish(t, s, "Pasta", mains.ID, "10.00")
	cheese := mustIngredient(t, s, "Cheese")
	basil := mustIngredient(t, s, "Basil")

	for i := 0; i < 2; i++ {
		if err := s.UpdateDishIngredient(ctx, pasta.ID, cheese.ID, ActionAdd); err != nil {
			t.Fatalf("add run %d error = %v", i, err)
		}
	}
	if err := s.UpdateDishIngredient(ctx, pasta.ID, basil.ID, ActionRemove); err != nil {
		t.Fatalf("removing an absent ingredient should be a no-op, got %v", err)
	}

	dish, err := s.GetDish(ctx, pasta.ID)
	if err != nil {
		t.Fatalf("GetDish() error = %v", err)
	}
	if len(dish.Ingredients) != 1 {
		t.Fatalf("expected one ingredient membership, got %+v", dish.Ingredients)
	}

	if err := s.UpdateDishIngredient(ctx, pasta.ID, cheese.ID, ActionRemove); err != nil {
		t.Fatalf("remove error = %v", err)
	}
	dish, err = s.GetDish(ctx, pasta.ID)
	if err != nil {
		t.Fatalf("GetDish() error = %v", err)
	}
	if len(dish.Ingredients) != 0 {
		t.Fatalf("expected ingredient to be removed, got %+v", dish.Ingredients)
	}
	if _, err := s.GetIngredient(ctx, cheese.ID); err != nil {
		t.Fatalf("removing a link must keep the ingredient: %v", err)
	}
}

func TestRelationTogglesRejectUnknownInput(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mains := mustDishType(t, s, "Mains")
	pasta := mustDish(t, s, "Pasta", mains.ID, "10.00")
	cheese := mustIngredient(t, s, "Cheese")

	if err := s.UpdateDishIngredient(ctx, pasta.ID, cheese.ID, RelationAction("toggle")); err == nil {
		t.Fatal("expected an error for an unknown action")
	} else {
		requireFieldError(t, err, "action")
	}
	if err := s.UpdateDishIngredient(ctx, 999, cheese.ID, ActionAdd); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing dish, got %v", err)
	}
	if err := s.UpdateDishIngredient(ctx, pasta.ID, 999, ActionAdd); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing ingredient, got %v", err)
	}
	if err := s.UpdateDishCook(ctx, pasta.ID, 999, ActionAdd); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing cook, got %v", err)
	}
}

func TestUpdateDishCookAddsAndRemoves(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mains := mustDishType(t, s, "Mains")
	pasta := mustDish(t, s, "Pasta", mains.ID, "10.00")
	alice := mustCook(t, s, "alice", "employee")

	if err := s.UpdateDishCook(ctx, pasta.ID, alice.ID, ActionAdd); err != nil {
		t.Fatalf("add cook error = %v", err)
	}
	cook, err := s.GetCook(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetCook() error = %v", err)
	}
	if len(cook.Dishes) != 1 || cook.Dishes[0].Name != "Pasta" {
		t.Fatalf("expected cook to be linked to Pasta, got %+v", cook.Dishes)
	}

	if err := s.UpdateDishCook(ctx, pasta.ID, alice.ID, ActionRemove); err != nil {
		t.Fatalf("remove cook error = %v", err)
	}
	dish, err := s.GetDish(ctx, pasta.ID)
	if err != nil {
		t.Fatalf("GetDish() error = %v", err)
	}
	if len(dish.Cooks) != 0 {
		t.Fatalf("expected no cooks, got %+v", dish.Cooks)
	}
}

func TestUpdateDishReplacesCooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mains := mustDishType(t, s, "Mains")
	sides := mustDishType(t, s, "Sides")
	alice := mustCook(t, s, "alice", "employee")
	bob := mustCook(t, s, "bob", "trainee")

	dish, err := s.CreateDish(ctx, DishInput{
		Name:        "Pasta",
		Description: "Fresh pasta",
		Price:       1000,
		DishTypeID:  mains.ID,
		CookIDs:     []uint{alice.ID, alice.ID},
	})
	if err != nil {
		t.Fatalf("CreateDish() error = %v", err)
	}

	updated, err := s.UpdateDish(ctx, dish.ID, DishInput{
		Name:        "Pasta al forno",
		Description: "Baked",
		Price:       1250,
		DishTypeID:  sides.ID,
		CookIDs:     []uint{bob.ID},
	})
	if err != nil {
		t.Fatalf("UpdateDish() error = %v", err)
	}
	if updated.Name != "Pasta al forno" || updated.Price != models.Price(1250) || updated.DishType.Name != "Sides" {
		t.Fatalf("unexpected updated dish %+v", updated)
	}
	if len(updated.Cooks) != 1 || updated.Cooks[0].Username != "bob" {
		t.Fatalf("expected only bob, got %+v", updated.Cooks)
	}

	cleared, err := s.UpdateDish(ctx, dish.ID, DishInput{
		Name:        "Pasta al forno",
		Description: "Baked",
		Price:       1250,
		DishTypeID:  sides.ID,
	})
	if err != nil {
		t.Fatalf("UpdateDish() clearing cooks error = %v", err)
	}
	if len(cleared.Cooks) != 0 {
		t.Fatalf("expected cooks to be cleared, got %+v", cleared.Cooks)
	}
}

func TestDeleteDishKeepsDishType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mains := mustDishType(t, s, "Mains")
	pasta := mustDish(t, s, "Pasta", mains.ID, "10.00")

	if err := s.DeleteDish(ctx, pasta.ID); err != nil {
		t.Fatalf("DeleteDish() error = %v", err)
	}
	if _, err := s.GetDish(ctx, pasta.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected dish to be gone, got %v", err)
	}
	if _, err := s.GetDishType(ctx, mains.ID); err != nil {
		t.Fatalf("dish type must survive: %v", err)
	}
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	if got, err := ParseAction(" add "); err != nil || got != ActionAdd {
		t.Fatalf("ParseAction(add) = %q, %v", got, err)
	}
	if got, err := ParseAction("remove"); err != nil || got != ActionRemove {
		t.Fatalf("ParseAction(remove) = %q, %v", got, err)
	}
	if _, err := ParseAction("delete"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}
