package models

import (
	"strings"
	"time"
)

// Cook is a staff account. A cook holds at most one role; RoleID is nil for
// cooks that have not been assigned to a group yet.
type Cook struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Username          string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	FirstName         string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName          string    `gorm:"type:varchar(150)" json:"last_name"`
	YearsOfExperience *int      `json:"years_of_experience"`
	PasswordHash      string    `gorm:"not null" json:"-"`
	IsSuperuser       bool      `gorm:"not null;default:false" json:"is_superuser"`
	RoleID            *uint     `gorm:"index" json:"role_id"`
	Role              *Role     `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL" json:"role,omitempty"`
	Theme             string    `gorm:"type:varchar(32);default:night_service" json:"theme"`
	Dishes            []Dish    `gorm:"many2many:dish_cooks;constraint:OnDelete:CASCADE" json:"dishes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// FullName joins first and last name, falling back to the username.
func (c Cook) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name == "" {
		return c.Username
	}
	return name
}

// RoleName returns the assigned role name or an empty string.
func (c Cook) RoleName() string {
	if c.Role == nil {
		return ""
	}
	return c.Role.Name
}
