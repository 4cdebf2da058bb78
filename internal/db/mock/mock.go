package mock

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kitchen/internal/auth"
	"kitchen/internal/db"
	applog "kitchen/internal/log"
	"kitchen/internal/store"
)

// Password is shared by every seeded cook.
const Password = "Mise3nPlace!"

var cooks = []store.CookInput{
	{Username: "gordon", FirstName: "Gordon", LastName: "Ramsay", YearsOfExperience: intPtr(30), Role: string(auth.RoleManager)},
	{Username: "monica", FirstName: "Monica", LastName: "Galetti", YearsOfExperience: intPtr(18), Role: string(auth.RoleEmployee)},
	{Username: "tom", FirstName: "Tom", LastName: "Kerridge", YearsOfExperience: intPtr(2), Role: string(auth.RoleTrainee)},
	{Username: "newhire", FirstName: "Alex", LastName: "Rowe"},
}

var menu = []store.MenuDish{
	{Name: "Bread and butter", Description: "Sourdough with cultured butter.", Price: 450, DishType: "Starters", Ingredients: []string{"Flour", "Butter", "Salt"}},
	{Name: "Olives", Description: "Marinated Nocellara olives.", Price: 400, DishType: "Starters", Ingredients: []string{"Olives", "Olive oil"}},
	{Name: "Pasta", Description: "Fresh tagliatelle, parmesan and butter.", Price: 1000, DishType: "Mains", Ingredients: []string{"Flour", "Eggs", "Cheese", "Butter"}},
	{Name: "Risotto", Description: "Carnaroli rice with wild mushrooms.", Price: 1450, DishType: "Mains", Ingredients: []string{"Rice", "Mushrooms", "Cheese", "Butter"}},
	{Name: "Fish pie", Description: "Smoked haddock, prawns and mash.", Price: 1650, DishType: "Mains", Ingredients: []string{"Haddock", "Prawns", "Potatoes", "Butter"}},
	{Name: "Tart", Description: "Treacle tart with clotted cream.", Price: 750, DishType: "Desserts", Ingredients: []string{"Flour", "Butter", "Golden syrup", "Cream"}},
}

// New returns an in-memory sqlite database seeded with a small kitchen: the
// three roles, one cook per role plus one without, and a short menu.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:kitchen-mock?mode=memory&cache=shared"), db.GormConfig())
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}
	if err := auth.EnsureRoles(ctx, database); err != nil {
		return nil, err
	}
	if err := seed(ctx, store.New(database)); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, st *store.Store) error {
	counts, err := st.Counts(ctx)
	if err != nil {
		return err
	}
	if counts.Cooks > 0 {
		applog.Debug(ctx, "mock database already seeded")
		return nil
	}
	applog.Debug(ctx, "seeding mock database")

	ids := make([]uint, 0, len(cooks))
	for _, in := range cooks {
		cook, err := st.CreateCook(ctx, store.NewCookInput{CookInput: in, Password1: Password, Password2: Password})
		if err != nil {
			return fmt.Errorf("seed cook %s: %w", in.Username, err)
		}
		ids = append(ids, cook.ID)
	}

	for i, item := range menu {
		if _, err := st.ImportMenuDish(ctx, item); err != nil {
			return fmt.Errorf("seed dish %s: %w", item.Name, err)
		}
		dishID, err := findDish(ctx, st, item.Name)
		if err != nil {
			return err
		}
		cookID := ids[i%2]
		if err := st.UpdateDishCook(ctx, dishID, cookID, store.ActionAdd); err != nil {
			return fmt.Errorf("assign cook to %s: %w", item.Name, err)
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}

func findDish(ctx context.Context, st *store.Store, name string) (uint, error) {
	page, err := st.ListDishes(ctx, name, 1)
	if err != nil {
		return 0, fmt.Errorf("reload dish %s: %w", name, err)
	}
	for _, dish := range page.Items {
		if dish.Name == name {
			return dish.ID, nil
		}
	}
	return 0, fmt.Errorf("reload dish %s: %w", name, store.ErrNotFound)
}

func intPtr(v int) *int { return &v }
