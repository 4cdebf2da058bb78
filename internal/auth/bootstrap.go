package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	applog "kitchen/internal/log"
	"kitchen/models"
)

// EnsureRoles creates any missing role rows. Existing rows are left alone, so
// calling it on every startup is safe.
func EnsureRoles(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	for _, name := range Roles {
		var existing models.Role
		err := db.WithContext(ctx).Where("name = ?", string(name)).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("look up role %s: %w", name, err)
		}
		if err := db.WithContext(ctx).Create(&models.Role{Name: string(name)}).Error; err != nil {
			return fmt.Errorf("create role %s: %w", name, err)
		}
		applog.Info(ctx, "role created", "role", name)
	}
	return nil
}

// SeedSuperuser creates a superuser account when no cook holds username yet.
// It reports whether a new account was created.
func SeedSuperuser(ctx context.Context, db *gorm.DB, username, password string) (bool, error) {
	if db == nil {
		return false, gorm.ErrInvalidDB
	}
	if username == "" || password == "" {
		applog.Debug(ctx, "superuser seed skipped: credentials not configured")
		return false, nil
	}

	var existing models.Cook
	err := db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		applog.Debug(ctx, "superuser already present", "username", username)
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("look up superuser: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	cook := models.Cook{
		Username:     username,
		PasswordHash: hash,
		IsSuperuser:  true,
		Theme:        models.DefaultTheme,
	}
	if err := db.WithContext(ctx).Create(&cook).Error; err != nil {
		return false, fmt.Errorf("create superuser: %w", err)
	}
	applog.Info(ctx, "superuser created", "username", username)
	return true, nil
}

// PrincipalFor builds the principal for a cook. The cook's Role must be
// preloaded for its membership to count.
func PrincipalFor(cook *models.Cook) *Principal {
	if cook == nil {
		return nil
	}
	roles := NewRoleSet()
	if cook.Role != nil {
		if name, ok := ParseRole(cook.Role.Name); ok {
			roles[name] = struct{}{}
		}
	}
	return &Principal{
		CookID:      cook.ID,
		Username:    cook.Username,
		Roles:       roles,
		IsSuperuser: cook.IsSuperuser,
	}
}
