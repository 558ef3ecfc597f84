package models

import (
	"time"
)

// Order statuses
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// Order is a customer or guest purchase. Exactly one of CustomerID and
// GuestEmail is set, never both and never neither. An order owns its items;
// deleting the order deletes them.
type Order struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	CustomerID *uint   `gorm:"index" json:"customer_id,omitempty"`
	Customer   *User   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	GuestEmail *string `json:"guest_email,omitempty"`

	Status     string  `gorm:"not null;default:'PENDING'" json:"status"` // PENDING, PROCESSING, SHIPPED, DELIVERED, CANCELLED
	TotalPrice float64 `gorm:"not null;check:total_price > 0" json:"total_price"`

	ShippingName         string  `gorm:"not null" json:"shipping_name"`
	ShippingAddressLine1 string  `gorm:"not null" json:"shipping_address_line1"`
	ShippingAddressLine2 *string `json:"shipping_address_line2,omitempty"`
	ShippingCity         string  `gorm:"not null" json:"shipping_city"`
	ShippingPostalCode   string  `gorm:"not null" json:"shipping_postal_code"`
	ShippingCountry      string  `gorm:"not null" json:"shipping_country"`
	ShippingPhone        *string `json:"shipping_phone,omitempty"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one purchased line of an order. PriceAtPurchase is the price
// snapshot taken at order time and does not track later catalog changes.
type OrderItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderID         uint      `gorm:"not null;index" json:"order_id"`
	ProductID       uint      `gorm:"not null;index" json:"product_id"`
	Product         Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity        int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	PriceAtPurchase float64   `gorm:"not null;check:price_at_purchase > 0" json:"price_at_purchase"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
