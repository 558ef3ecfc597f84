package models

import (
	"time"
)

// ProductImage is one image of a product. At most one image per product has
// IsPrimary set; the invariant is maintained by clearing sibling flags before
// a new primary is written.
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index;uniqueIndex:idx_product_image_url" json:"product_id"`
	ImageURL  string    `gorm:"not null;uniqueIndex:idx_product_image_url" json:"image_url"`
	IsPrimary bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ProductImage model
func (ProductImage) TableName() string {
	return "product_images"
}
