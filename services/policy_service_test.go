package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/artisania/marketplace-api/models"
)

type policyFixture struct {
	db       *gorm.DB
	admin    *models.User
	customer *models.User
	owner    *models.User
	other    *models.User
	product  *models.Product
	profile  *models.ArtisanProfile
}

func setupPolicyFixture(t *testing.T) *policyFixture {
	db := setupServiceTestDB(t)
	owner, ownerProfile := createTestArtisan(t, db, "owner@example.com")
	other, _ := createTestArtisan(t, db, "other@example.com")
	category := createTestCategory(t, db, "Ceramics", "ceramics")
	product := createTestProduct(t, db, ownerProfile.ID, category.ID, "Vase", 25.00, 10)

	return &policyFixture{
		db:       db,
		admin:    createTestUser(t, db, "admin@example.com", models.RoleAdmin),
		customer: createTestUser(t, db, "buyer@example.com", models.RoleCustomer),
		owner:    owner,
		other:    other,
		product:  product,
		profile:  ownerProfile,
	}
}

func TestCanEditProduct(t *testing.T) {
	f := setupPolicyFixture(t)
	policy := NewPolicyService(f.db)

	tests := []struct {
		name      string
		principal *models.User
		productID uint
		want      bool
	}{
		{"anonymous denied", nil, f.product.ID, false},
		{"admin allowed", f.admin, f.product.ID, true},
		{"owning artisan allowed", f.owner, f.product.ID, true},
		{"other artisan denied", f.other, f.product.ID, false},
		{"customer denied", f.customer, f.product.ID, false},
		{"missing product denied", f.owner, 99999, false},
		{"admin allowed even for missing product", f.admin, 99999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanEditProduct(tt.principal, tt.productID))
		})
	}
}

func TestCanEditArtisanProfile(t *testing.T) {
	f := setupPolicyFixture(t)
	policy := NewPolicyService(f.db)

	assert.False(t, policy.CanEditArtisanProfile(nil, f.profile.ID))
	assert.True(t, policy.CanEditArtisanProfile(f.admin, f.profile.ID))
	assert.True(t, policy.CanEditArtisanProfile(f.owner, f.profile.ID))
	assert.False(t, policy.CanEditArtisanProfile(f.other, f.profile.ID))
	assert.False(t, policy.CanEditArtisanProfile(f.owner, 99999))
}

func TestCanEditProductImage(t *testing.T) {
	f := setupPolicyFixture(t)
	image := models.ProductImage{ProductID: f.product.ID, ImageURL: "https://img.example.com/vase.jpg"}
	f.db.Create(&image)

	policy := NewPolicyService(f.db)

	assert.False(t, policy.CanEditProductImage(nil, image.ID))
	assert.True(t, policy.CanEditProductImage(f.admin, image.ID))
	assert.True(t, policy.CanEditProductImage(f.owner, image.ID), "Ownership resolves through the image's product")
	assert.False(t, policy.CanEditProductImage(f.other, image.ID))
	assert.False(t, policy.CanEditProductImage(f.customer, image.ID))
	assert.False(t, policy.CanEditProductImage(f.owner, 99999))

	// Creation uses the product ownership rule directly
	assert.True(t, policy.CanCreateProductImage(f.owner, f.product.ID))
	assert.False(t, policy.CanCreateProductImage(f.other, f.product.ID))
}

func TestCanViewOrder(t *testing.T) {
	f := setupPolicyFixture(t)
	policy := NewPolicyService(f.db)

	customerOrder := createTestOrder(t, f.db, &f.customer.ID, nil, map[uint]int{f.product.ID: 1})
	guestOrder := createTestOrder(t, f.db, nil, strPtr("guest@example.com"), nil)

	tests := []struct {
		name      string
		principal *models.User
		orderID   uint
		want      bool
	}{
		{"anonymous denied", nil, customerOrder.ID, false},
		{"admin allowed", f.admin, customerOrder.ID, true},
		{"order customer allowed", f.customer, customerOrder.ID, true},
		{"artisan with item in order allowed", f.owner, customerOrder.ID, true},
		{"artisan without item denied", f.other, customerOrder.ID, false},
		{"other customer denied", f.customer, guestOrder.ID, false},
		{"missing order denied", f.customer, 99999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanViewOrder(tt.principal, tt.orderID))
		})
	}
}

func TestCanViewCustomerOrders(t *testing.T) {
	f := setupPolicyFixture(t)
	policy := NewPolicyService(f.db)

	assert.False(t, policy.CanViewCustomerOrders(nil, f.customer.ID))
	assert.True(t, policy.CanViewCustomerOrders(f.admin, f.customer.ID))
	assert.True(t, policy.CanViewCustomerOrders(f.customer, f.customer.ID))
	assert.False(t, policy.CanViewCustomerOrders(f.customer, f.owner.ID))
}

func TestCanUpdateOrderStatus(t *testing.T) {
	f := setupPolicyFixture(t)
	policy := NewPolicyService(f.db)

	order := createTestOrder(t, f.db, &f.customer.ID, nil, map[uint]int{f.product.ID: 1})

	assert.False(t, policy.CanUpdateOrderStatus(nil, order.ID))
	assert.True(t, policy.CanUpdateOrderStatus(f.admin, order.ID))
	assert.True(t, policy.CanUpdateOrderStatus(f.owner, order.ID))
	assert.False(t, policy.CanUpdateOrderStatus(f.other, order.ID))
	assert.False(t, policy.CanUpdateOrderStatus(f.customer, order.ID),
		"Customers may cancel but not set arbitrary statuses")
}

func TestArtisanHasProductsInOrder(t *testing.T) {
	f := setupPolicyFixture(t)
	policy := NewPolicyService(f.db)

	order := createTestOrder(t, f.db, &f.customer.ID, nil, map[uint]int{f.product.ID: 1})

	assert.True(t, policy.ArtisanHasProductsInOrder(f.owner, order.ID))
	assert.False(t, policy.ArtisanHasProductsInOrder(f.other, order.ID))
	assert.False(t, policy.ArtisanHasProductsInOrder(nil, order.ID))
	// This rule is about the artisan relationship itself, so no admin bypass
	assert.False(t, policy.ArtisanHasProductsInOrder(f.admin, order.ID))
}

func TestArtisanOwnsOrderItem(t *testing.T) {
	f := setupPolicyFixture(t)
	policy := NewPolicyService(f.db)

	order := createTestOrder(t, f.db, &f.customer.ID, nil, map[uint]int{f.product.ID: 1})
	var item models.OrderItem
	f.db.Where("order_id = ?", order.ID).First(&item)

	assert.True(t, policy.ArtisanOwnsOrderItem(f.owner, item.ID))
	assert.False(t, policy.ArtisanOwnsOrderItem(f.other, item.ID))
	assert.False(t, policy.ArtisanOwnsOrderItem(nil, item.ID))
	assert.False(t, policy.ArtisanOwnsOrderItem(f.admin, item.ID))
	assert.False(t, policy.ArtisanOwnsOrderItem(f.owner, 99999))
}
