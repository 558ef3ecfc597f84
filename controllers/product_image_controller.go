package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artisania/marketplace-api/config"
	"github.com/artisania/marketplace-api/middleware"
	"github.com/artisania/marketplace-api/services"
)

// AddProductImageRequest represents the request body for attaching an image
type AddProductImageRequest struct {
	ImageURL  string `json:"image_url" binding:"required"`
	IsPrimary bool   `json:"is_primary"`
}

// UpdateProductImageRequest represents the request body for updating an image
type UpdateProductImageRequest struct {
	ImageURL  *string `json:"image_url"`
	IsPrimary *bool   `json:"is_primary"`
}

// ListProductImages handles GET /api/v1/products/:id/images - public
func ListProductImages(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	imageService := services.NewProductImageService(config.GetDB())
	images, err := imageService.GetImagesByProductID(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    images,
	})
}

// AddProductImage handles POST /api/v1/products/:id/images - owning artisan
// or admin
func AddProductImage(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanCreateProductImage(principal, productID) {
		respondForbidden(c)
		return
	}

	imageService := services.NewProductImageService(config.GetDB())
	image, err := imageService.AddImage(productID, req.ImageURL, req.IsPrimary)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    image,
	})
}

// UpdateProductImage handles PUT /api/v1/product-images/:id - owner or admin,
// resolved through the image's product
func UpdateProductImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanEditProductImage(principal, id) {
		respondForbidden(c)
		return
	}

	imageService := services.NewProductImageService(config.GetDB())
	image, err := imageService.UpdateImage(id, req.ImageURL, req.IsPrimary)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    image,
	})
}

// SetPrimaryProductImage handles PUT /api/v1/product-images/:id/primary -
// owner or admin
func SetPrimaryProductImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanEditProductImage(principal, id) {
		respondForbidden(c)
		return
	}

	imageService := services.NewProductImageService(config.GetDB())
	image, err := imageService.SetAsPrimary(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    image,
	})
}

// DeleteProductImage handles DELETE /api/v1/product-images/:id - owner or admin
func DeleteProductImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanEditProductImage(principal, id) {
		respondForbidden(c)
		return
	}

	imageService := services.NewProductImageService(config.GetDB())
	if err := imageService.DeleteImage(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product image deleted",
	})
}
