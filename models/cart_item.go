package models

import (
	"time"
)

// CartItem is one line of a user's cart, unique per (user, product).
// PriceAtTime is snapshotted when the item is first added and only changes on
// an explicit resync, never on read.
type CartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID   uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Product     Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity    int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	PriceAtTime float64   `gorm:"not null" json:"price_at_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the CartItem model
func (CartItem) TableName() string {
	return "cart_items"
}

// Total returns the snapshot price times quantity for this line.
func (c *CartItem) Total() float64 {
	return c.PriceAtTime * float64(c.Quantity)
}
