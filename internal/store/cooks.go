package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"kitchen/internal/auth"
	"kitchen/models"
)

// CookInput carries the editable cook fields. Role is a role name or empty
// for no role.
type CookInput struct {
	Username          string
	FirstName         string
	LastName          string
	YearsOfExperience *int
	Role              string
}

// NewCookInput adds the password pair required when creating a cook.
type NewCookInput struct {
	CookInput
	Password1 string
	Password2 string
}

// ListCooks returns a page of cooks ordered by username, filtered by a
// case-insensitive substring of the username.
func (s *Store) ListCooks(ctx context.Context, username string, page int) (Page[models.Cook], error) {
	db, err := s.conn(ctx)
	if err != nil {
		return Page[models.Cook]{}, err
	}
	query := containsFilter(db.Model(&models.Cook{}), "username", username).Preload("Role")
	return paginate[models.Cook](query, "username asc", page)
}

// AllCooks returns every cook ordered by username, for checkbox inputs.
func (s *Store) AllCooks(ctx context.Context) ([]models.Cook, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var cooks []models.Cook
	if err := db.Order("username asc").Find(&cooks).Error; err != nil {
		return nil, err
	}
	return cooks, nil
}

// GetCook loads a cook with role and dishes.
func (s *Store) GetCook(ctx context.Context, id uint) (*models.Cook, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var cook models.Cook
	err = db.Preload("Role").
		Preload("Dishes", func(tx *gorm.DB) *gorm.DB { return tx.Order("name asc") }).
		Preload("Dishes.DishType").
		First(&cook, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &cook, nil
}

// FindCook loads a cook with its role only, for authorization checks.
func (s *Store) FindCook(ctx context.Context, id uint) (*models.Cook, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var cook models.Cook
	if err := db.Preload("Role").First(&cook, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &cook, nil
}

// FindCookByUsername loads a cook and role by exact username.
func (s *Store) FindCookByUsername(ctx context.Context, username string) (*models.Cook, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var cook models.Cook
	if err := db.Preload("Role").Where("username = ?", strings.TrimSpace(username)).First(&cook).Error; err != nil {
		return nil, notFound(err)
	}
	return &cook, nil
}

// Authenticate resolves a cook by username and password.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.Cook, error) {
	cook, err := s.FindCookByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := auth.CheckPassword(cook.PasswordHash, password); err != nil {
		return nil, err
	}
	return cook, nil
}

// SetCookTheme stores the UI theme preference of a cook.
func (s *Store) SetCookTheme(ctx context.Context, id uint, theme string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if !models.ValidTheme(theme) {
		return FieldError("theme", "Select a valid theme.")
	}
	result := db.Model(&models.Cook{}).Where("id = ?", id).Update("theme", theme)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) validateCook(ctx context.Context, in *CookInput, excludeID uint) (*ValidationError, *uint, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Role = strings.TrimSpace(in.Role)

	verr := &ValidationError{}
	requireText(verr, "username", in.Username, 150)
	if len([]rune(in.FirstName)) > 150 {
		verr.Add("first_name", "Ensure this value has at most 150 characters.")
	}
	if len([]rune(in.LastName)) > 150 {
		verr.Add("last_name", "Ensure this value has at most 150 characters.")
	}
	if in.YearsOfExperience != nil && *in.YearsOfExperience < 0 {
		verr.Add("years_of_experience", "Ensure this value is greater than or equal to 0.")
	}
	if err := s.checkUnique(ctx, verr, &models.Cook{}, "username", "A user", in.Username, excludeID); err != nil {
		return nil, nil, err
	}

	roleID, err := s.resolveRole(ctx, verr, in.Role)
	if err != nil {
		return nil, nil, err
	}
	return verr, roleID, nil
}

// resolveRole maps a role name onto its row id. An empty name clears the role.
func (s *Store) resolveRole(ctx context.Context, verr *ValidationError, name string) (*uint, error) {
	if name == "" {
		return nil, nil
	}
	if _, ok := auth.ParseRole(name); !ok {
		verr.Add("role", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", name))
		return nil, nil
	}
	var role models.Role
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		verr.Add("role", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", name))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("look up role: %w", err)
	}
	return &role.ID, nil
}

// CreateCook validates the profile and password pair and stores a new cook
// with at most one role.
func (s *Store) CreateCook(ctx context.Context, in NewCookInput) (*models.Cook, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	verr, roleID, err := s.validateCook(ctx, &in.CookInput, 0)
	if err != nil {
		return nil, err
	}
	if in.Password1 == "" {
		verr.Add("password1", "This field is required.")
	}
	if in.Password2 == "" {
		verr.Add("password2", "This field is required.")
	}
	if in.Password1 != "" && in.Password2 != "" {
		for _, problem := range auth.ValidateNewPassword(in.Username, in.Password1, in.Password2) {
			verr.Add("password2", sentence(problem.Error()))
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password1)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	cook := models.Cook{
		Username:          in.Username,
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		YearsOfExperience: in.YearsOfExperience,
		PasswordHash:      hash,
		RoleID:            roleID,
		Theme:             models.DefaultTheme,
	}
	if err := db.Omit("Role", "Dishes").Create(&cook).Error; err != nil {
		return nil, translateWriteError(err, "username", "A user")
	}
	return s.GetCook(ctx, cook.ID)
}

// UpdateCook rewrites the profile and replaces the role in a single write.
func (s *Store) UpdateCook(ctx context.Context, id uint, in CookInput) (*models.Cook, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var cook models.Cook
	if err := db.First(&cook, id).Error; err != nil {
		return nil, notFound(err)
	}
	verr, roleID, err := s.validateCook(ctx, &in, id)
	if err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	updates := map[string]any{
		"username":            in.Username,
		"first_name":          in.FirstName,
		"last_name":           in.LastName,
		"years_of_experience": in.YearsOfExperience,
		"role_id":             roleID,
	}
	if err := db.Model(&cook).Updates(updates).Error; err != nil {
		return nil, translateWriteError(err, "username", "A user")
	}
	return s.GetCook(ctx, id)
}

// DeleteCook removes a cook and the cook's dish links.
func (s *Store) DeleteCook(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *Store) error {
		var cook models.Cook
		if err := tx.db.First(&cook, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.db.Exec("DELETE FROM dish_cooks WHERE cook_id = ?", id).Error; err != nil {
			return fmt.Errorf("unlink dishes: %w", err)
		}
		return tx.db.Delete(&cook).Error
	})
}

// sentence capitalises an error message for display next to a form field.
func sentence(message string) string {
	if message == "" {
		return message
	}
	return strings.ToUpper(message[:1]) + message[1:] + "."
}
