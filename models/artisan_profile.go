package models

import (
	"time"
)

// ArtisanProfile is the public seller profile linked one-to-one with an
// ARTISAN user. It owns the artisan's products.
type ArtisanProfile struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User            User      `gorm:"foreignKey:UserID" json:"user"`
	DisplayName     string    `gorm:"not null" json:"display_name"`
	Bio             string    `json:"bio"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	CoverImageURL   *string   `json:"cover_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ArtisanProfile model
func (ArtisanProfile) TableName() string {
	return "artisan_profiles"
}
