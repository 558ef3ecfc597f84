package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/artisania/marketplace-api/models"
)

// setupServiceTestDB creates an in-memory database with the full schema
func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ArtisanProfile{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	user := models.User{
		Email:        email,
		PasswordHash: "$2a$10$test-hash",
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

// createTestArtisan creates an ARTISAN user together with their profile
func createTestArtisan(t *testing.T, db *gorm.DB, email string) (*models.User, *models.ArtisanProfile) {
	user := createTestUser(t, db, email, models.RoleArtisan)
	profile := models.ArtisanProfile{
		UserID:      user.ID,
		DisplayName: "Artisan " + email,
		Bio:         "Handmade goods",
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to create test artisan profile: %v", err)
	}
	return user, &profile
}

func createTestCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	category := models.Category{Name: name, Slug: slug}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return &category
}

func createTestProduct(t *testing.T, db *gorm.DB, artisanID, categoryID uint, name string, price float64, stock int) *models.Product {
	product := models.Product{
		ArtisanID:     artisanID,
		CategoryID:    categoryID,
		Name:          name,
		Price:         price,
		StockQuantity: stock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return &product
}

// createTestOrder creates a guest order with one item per product given as
// (productID, quantity) pairs
func createTestOrder(t *testing.T, db *gorm.DB, customerID *uint, guestEmail *string, items map[uint]int) *models.Order {
	order := models.Order{
		CustomerID:           customerID,
		GuestEmail:           guestEmail,
		Status:               models.OrderStatusPending,
		TotalPrice:           99.99,
		ShippingName:         "Test Recipient",
		ShippingAddressLine1: "1 Test Street",
		ShippingCity:         "Testville",
		ShippingPostalCode:   "12345",
		ShippingCountry:      "Testland",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	for productID, quantity := range items {
		item := models.OrderItem{
			OrderID:         order.ID,
			ProductID:       productID,
			Quantity:        quantity,
			PriceAtPurchase: 10.00,
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("Failed to create test order item: %v", err)
		}
	}
	return &order
}

func strPtr(s string) *string {
	return &s
}
