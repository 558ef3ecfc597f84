package models

import (
	"time"
)

// Product belongs to exactly one artisan profile and one category.
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ArtisanID     uint           `gorm:"not null;index" json:"artisan_id"`
	Artisan       ArtisanProfile `gorm:"foreignKey:ArtisanID" json:"artisan"`
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	Category      Category       `gorm:"foreignKey:CategoryID" json:"category"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description"`
	Price         float64        `gorm:"not null;check:price > 0" json:"price"`
	StockQuantity int            `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	IsFeatured    bool           `gorm:"not null;default:false" json:"is_featured"`
	Images        []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
