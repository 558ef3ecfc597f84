package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artisania/marketplace-api/config"
	"github.com/artisania/marketplace-api/middleware"
	"github.com/artisania/marketplace-api/models"
	"github.com/artisania/marketplace-api/services"
)

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
	CategoryID    uint    `json:"category_id" binding:"required"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"omitempty,gt=0"`
	CategoryID  uint    `json:"category_id"`
}

// UpdateStockRequest represents the request body for a direct stock set
type UpdateStockRequest struct {
	StockQuantity *int `json:"stock_quantity" binding:"required"`
}

// FeaturedRequest represents the request body for toggling the featured flag
type FeaturedRequest struct {
	IsFeatured *bool `json:"is_featured" binding:"required"`
}

// ListProducts handles GET /api/v1/products - public
func ListProducts(c *gin.Context) {
	productService := services.NewProductService(config.GetDB())
	products, err := productService.GetAllProducts()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// GetProduct handles GET /api/v1/products/:id - public
func GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	productService := services.NewProductService(config.GetDB())
	product, err := productService.GetProductByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// ListFeaturedProducts handles GET /api/v1/products/featured - public
func ListFeaturedProducts(c *gin.Context) {
	productService := services.NewProductService(config.GetDB())
	products, err := productService.GetFeaturedProducts()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// ListProductsByCategory handles GET /api/v1/products/category/:categoryId - public
func ListProductsByCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}

	productService := services.NewProductService(config.GetDB())
	products, err := productService.GetProductsByCategory(categoryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// ListProductsByArtisan handles GET /api/v1/products/artisan/:artisanId - public
func ListProductsByArtisan(c *gin.Context) {
	artisanID, ok := parseIDParam(c, "artisanId")
	if !ok {
		return
	}

	productService := services.NewProductService(config.GetDB())
	products, err := productService.GetProductsByArtisan(artisanID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// CreateProduct handles POST /api/v1/products - artisans only; the product
// is bound to the acting artisan's own profile
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	profileService := services.NewArtisanProfileService(config.GetDB())
	profile, err := profileService.GetProfileByUserID(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	productService := services.NewProductService(config.GetDB())
	product, err := productService.CreateProduct(&models.Product{
		ArtisanID:     profile.ID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct handles PUT /api/v1/products/:id - owning artisan or admin
func UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanEditProduct(principal, id) {
		respondForbidden(c)
		return
	}

	productService := services.NewProductService(config.GetDB())
	product, err := productService.UpdateProduct(id, &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProductStock handles PUT /api/v1/products/:id/stock - owning artisan
// or admin; direct stock set
func UpdateProductStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanEditProduct(principal, id) {
		respondForbidden(c)
		return
	}

	productService := services.NewProductService(config.GetDB())
	product, err := productService.UpdateProductStock(id, *req.StockQuantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// SetProductFeatured handles PUT /api/v1/products/:id/featured - admin only
func SetProductFeatured(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req FeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	productService := services.NewProductService(config.GetDB())
	product, err := productService.SetFeatured(id, *req.IsFeatured)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/v1/products/:id - owning artisan or admin
func DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanEditProduct(principal, id) {
		respondForbidden(c)
		return
	}

	productService := services.NewProductService(config.GetDB())
	if err := productService.DeleteProduct(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted",
	})
}
