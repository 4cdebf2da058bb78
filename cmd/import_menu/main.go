package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"kitchen/internal/auth"
	"kitchen/internal/config"
	"kitchen/internal/db"
	applog "kitchen/internal/log"
	"kitchen/internal/store"
	"kitchen/models"
)

// menuFixture is the YAML layout accepted by the importer.
type menuFixture struct {
	DishTypes   []string      `yaml:"dish_types"`
	Ingredients []string      `yaml:"ingredients"`
	Dishes      []fixtureDish `yaml:"dishes"`
}

type fixtureDish struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	DishType    string   `yaml:"dish_type"`
	Ingredients []string `yaml:"ingredients"`
}

type importSummary struct {
	dishTypes   int
	ingredients int
	created     int
	updated     int
}

func main() {
	path := "menu.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := run(context.Background(), path); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("fixture path must not be empty")
	}

	fixture, err := readFixture(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := auth.EnsureRoles(ctx, database); err != nil {
		return fmt.Errorf("ensure roles: %w", err)
	}

	summary, err := importMenu(ctx, store.New(database), fixture)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %s from %s: %d dishes created, %d updated, %d new dish types, %d new ingredients\n",
		pluralDishes(summary.created+summary.updated), filepath.Base(path),
		summary.created, summary.updated, summary.dishTypes, summary.ingredients)
	return nil
}

func readFixture(path string) (menuFixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return menuFixture{}, err
	}
	var fixture menuFixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return menuFixture{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return fixture, nil
}

// importMenu applies a fixture. Standalone dish types and ingredients go in
// first, then every dish in its own transaction.
func importMenu(ctx context.Context, s *store.Store, fixture menuFixture) (importSummary, error) {
	var summary importSummary

	dishTypes, err := s.ImportDishTypes(ctx, fixture.DishTypes)
	if err != nil {
		return summary, fmt.Errorf("import dish types: %w", err)
	}
	summary.dishTypes = len(dishTypes.Created)

	ingredients, err := s.ImportIngredients(ctx, fixture.Ingredients)
	if err != nil {
		return summary, fmt.Errorf("import ingredients: %w", err)
	}
	summary.ingredients = len(ingredients.Created)

	for idx, entry := range fixture.Dishes {
		price, err := models.ParsePrice(entry.Price)
		if err != nil {
			return summary, fmt.Errorf("dish %d (%s): price %q: %w", idx+1, entry.Name, entry.Price, err)
		}
		created, err := s.ImportMenuDish(ctx, store.MenuDish{
			Name:        entry.Name,
			Description: entry.Description,
			Price:       price,
			DishType:    entry.DishType,
			Ingredients: entry.Ingredients,
		})
		if err != nil {
			return summary, fmt.Errorf("dish %d (%s): %w", idx+1, entry.Name, err)
		}
		if created {
			summary.created++
		} else {
			summary.updated++
		}
		applog.Debug(ctx, "menu dish imported", "dish", entry.Name, "created", created)
	}
	return summary, nil
}

func pluralDishes(n int) string {
	if n == 1 {
		return "1 dish"
	}
	return fmt.Sprintf("%d dishes", n)
}
