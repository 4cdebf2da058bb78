package models

// Role is one of the fixed staff groups a cook may belong to.
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(32);uniqueIndex;not null" json:"name"`
}
