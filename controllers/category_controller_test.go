package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artisania/marketplace-api/models"
)

func TestCategoryEndpoints(t *testing.T) {
	db := setupControllerTestDB(t)
	admin := models.User{Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin, IsActive: true}
	db.Create(&admin)

	router := setupTestRouter()
	router.POST("/categories", mockAuthMiddleware(&admin), CreateCategory)
	router.GET("/categories", ListCategories)
	router.GET("/categories/slug/:slug", GetCategoryBySlug)
	router.PUT("/categories/:id", mockAuthMiddleware(&admin), UpdateCategory)
	router.DELETE("/categories/:id", mockAuthMiddleware(&admin), DeleteCategory)

	// Create derives the slug from the name
	w := performJSON(t, router, http.MethodPost, "/categories", map[string]interface{}{"name": "Home & Living"})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "home-living", data["slug"])

	// Duplicate names are rejected
	w = performJSON(t, router, http.MethodPost, "/categories", map[string]interface{}{"name": "Home & Living"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Slug lookup finds the category
	w = performJSON(t, router, http.MethodGet, "/categories/slug/home-living", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, router, http.MethodGet, "/categories/slug/no-such-slug", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Rename re-derives the slug
	var category models.Category
	db.First(&category)
	w = performJSON(t, router, http.MethodPut, fmt.Sprintf("/categories/%d", category.ID), map[string]interface{}{"name": "Home Decor"})
	assert.Equal(t, http.StatusOK, w.Code)
	data = parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "home-decor", data["slug"])

	w = performJSON(t, router, http.MethodDelete, fmt.Sprintf("/categories/%d", category.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteCategoryEndpoint_WithProducts(t *testing.T) {
	db := setupControllerTestDB(t)
	admin := models.User{Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin, IsActive: true}
	db.Create(&admin)

	artisan := models.User{Email: "maker@example.com", PasswordHash: "x", Role: models.RoleArtisan, IsActive: true}
	db.Create(&artisan)
	profile := models.ArtisanProfile{UserID: artisan.ID, DisplayName: "Maker"}
	db.Create(&profile)
	category := models.Category{Name: "Ceramics", Slug: "ceramics"}
	db.Create(&category)
	db.Create(&models.Product{ArtisanID: profile.ID, CategoryID: category.ID, Name: "Bowl", Price: 12.00, StockQuantity: 1})

	router := setupTestRouter()
	router.DELETE("/categories/:id", mockAuthMiddleware(&admin), DeleteCategory)

	// A category still owning products cannot be deleted
	w := performJSON(t, router, http.MethodDelete, fmt.Sprintf("/categories/%d", category.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
