package models

import (
	"time"
)

// User roles
const (
	RoleCustomer = "CUSTOMER"
	RoleArtisan  = "ARTISAN"
	RoleAdmin    = "ADMIN"
)

// User represents an account in the marketplace (customer, artisan or admin)
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // opaque bcrypt hash, never serialized
	Role         string    `gorm:"not null;default:'CUSTOMER'" json:"role"` // CUSTOMER, ARTISAN or ADMIN
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
