package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artisania/marketplace-api/config"
	"github.com/artisania/marketplace-api/services"
)

// CategoryRequest represents the request body for creating or renaming a category
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCategories handles GET /api/v1/categories - public
func ListCategories(c *gin.Context) {
	categoryService := services.NewCategoryService(config.GetDB())
	categories, err := categoryService.GetAllCategories()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// GetCategory handles GET /api/v1/categories/:id - public
func GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	categoryService := services.NewCategoryService(config.GetDB())
	category, err := categoryService.GetCategoryByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// GetCategoryBySlug handles GET /api/v1/categories/slug/:slug - public
func GetCategoryBySlug(c *gin.Context) {
	categoryService := services.NewCategoryService(config.GetDB())
	category, err := categoryService.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// CreateCategory handles POST /api/v1/categories - admin only
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	categoryService := services.NewCategoryService(config.GetDB())
	category, err := categoryService.CreateCategory(req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// UpdateCategory handles PUT /api/v1/categories/:id - admin only
func UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	categoryService := services.NewCategoryService(config.GetDB())
	category, err := categoryService.UpdateCategory(id, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// DeleteCategory handles DELETE /api/v1/categories/:id - admin only.
// Categories still owning products cannot be deleted.
func DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	categoryService := services.NewCategoryService(config.GetDB())
	if err := categoryService.DeleteCategory(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted",
	})
}
