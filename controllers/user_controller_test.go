package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artisania/marketplace-api/models"
)

func TestGetMyProfileEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	user := models.User{Email: "me@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	db.Create(&user)

	router := setupTestRouter()
	router.GET("/users/me", mockAuthMiddleware(&user), GetMyProfile)

	w := performJSON(t, router, http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "me@example.com", data["email"])
	assert.NotContains(t, data, "password_hash")
}

func TestGetUserEndpoint_Authorization(t *testing.T) {
	db := setupControllerTestDB(t)
	admin := models.User{Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin, IsActive: true}
	db.Create(&admin)
	user := models.User{Email: "user@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	db.Create(&user)
	other := models.User{Email: "other@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	db.Create(&other)

	path := fmt.Sprintf("/users/%d", user.ID)

	tests := []struct {
		name           string
		principal      *models.User
		expectedStatus int
	}{
		{"admin may view any account", &admin, http.StatusOK},
		{"users may view themselves", &user, http.StatusOK},
		{"other users are denied", &other, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.GET("/users/:id", mockAuthMiddleware(tt.principal), GetUser)

			w := performJSON(t, router, http.MethodGet, path, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestDeactivateAndActivateUserEndpoints(t *testing.T) {
	db := setupControllerTestDB(t)
	admin := models.User{Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin, IsActive: true}
	db.Create(&admin)
	user := models.User{Email: "user@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	db.Create(&user)

	router := setupTestRouter()
	router.PUT("/users/:id/deactivate", mockAuthMiddleware(&admin), DeactivateUser)
	router.PUT("/users/:id/activate", mockAuthMiddleware(&admin), ActivateUser)

	w := performJSON(t, router, http.MethodPut, fmt.Sprintf("/users/%d/deactivate", user.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	db.First(&stored, user.ID)
	assert.False(t, stored.IsActive)

	w = performJSON(t, router, http.MethodPut, fmt.Sprintf("/users/%d/activate", user.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	db.First(&stored, user.ID)
	assert.True(t, stored.IsActive)

	// Unknown accounts
	w = performJSON(t, router, http.MethodPut, "/users/999/deactivate", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUserEndpoint_RemovesCart(t *testing.T) {
	db := setupControllerTestDB(t)
	admin := models.User{Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin, IsActive: true}
	db.Create(&admin)
	user := models.User{Email: "user@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	db.Create(&user)

	artisan := models.User{Email: "maker@example.com", PasswordHash: "x", Role: models.RoleArtisan, IsActive: true}
	db.Create(&artisan)
	profile := models.ArtisanProfile{UserID: artisan.ID, DisplayName: "Maker"}
	db.Create(&profile)
	category := models.Category{Name: "Ceramics", Slug: "ceramics"}
	db.Create(&category)
	product := models.Product{ArtisanID: profile.ID, CategoryID: category.ID, Name: "Bowl", Price: 12.00, StockQuantity: 3}
	db.Create(&product)
	db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1, PriceAtTime: 12.00})

	router := setupTestRouter()
	router.DELETE("/users/:id", mockAuthMiddleware(&admin), DeleteUser)

	w := performJSON(t, router, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var userCount, cartCount int64
	db.Model(&models.User{}).Where("id = ?", user.ID).Count(&userCount)
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.Equal(t, int64(0), userCount)
	assert.Equal(t, int64(0), cartCount, "A user's cart does not outlive the account")
}

func TestGetUserOrdersEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	user := models.User{Email: "user@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	db.Create(&user)
	other := models.User{Email: "other@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	db.Create(&other)

	order := models.Order{
		CustomerID:           &user.ID,
		Status:               models.OrderStatusPending,
		TotalPrice:           30.00,
		ShippingName:         "Recipient",
		ShippingAddressLine1: "1 Test Street",
		ShippingCity:         "Testville",
		ShippingPostalCode:   "12345",
		ShippingCountry:      "Testland",
	}
	db.Create(&order)

	router := setupTestRouter()
	router.GET("/users/:id/orders", mockAuthMiddleware(&user), GetUserOrders)

	w := performJSON(t, router, http.MethodGet, fmt.Sprintf("/users/%d/orders", user.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 1)

	// Another customer cannot read the order history
	router = setupTestRouter()
	router.GET("/users/:id/orders", mockAuthMiddleware(&other), GetUserOrders)
	w = performJSON(t, router, http.MethodGet, fmt.Sprintf("/users/%d/orders", user.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
