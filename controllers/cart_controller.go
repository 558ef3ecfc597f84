package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artisania/marketplace-api/config"
	"github.com/artisania/marketplace-api/middleware"
	"github.com/artisania/marketplace-api/services"
)

// AddToCartRequest represents the request body for adding a product to the cart
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartQuantityRequest represents the request body for setting a line quantity
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// GetCart handles GET /api/v1/cart - the current user's cart with total
func GetCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	cartService := services.NewCartService(config.GetDB())

	items, err := cartService.GetCartItems(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	total, err := cartService.CalculateCartTotal(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items": items,
			"total": total,
		},
	})
}

// AddToCart handles POST /api/v1/cart/items - merges quantity when the
// product is already in the cart
func AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	cartService := services.NewCartService(config.GetDB())
	item, err := cartService.AddToCart(user.ID, req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdateCartItem handles PUT /api/v1/cart/items/:productId - replaces the
// line quantity
func UpdateCartItem(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	var req UpdateCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	cartService := services.NewCartService(config.GetDB())
	item, err := cartService.UpdateQuantity(user.ID, productID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:productId
func RemoveCartItem(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	cartService := services.NewCartService(config.GetDB())
	if err := cartService.RemoveFromCart(user.ID, productID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item removed from cart",
	})
}

// ClearCart handles DELETE /api/v1/cart
func ClearCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	cartService := services.NewCartService(config.GetDB())
	if err := cartService.ClearCart(user.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart cleared",
	})
}

// SyncCartPrices handles POST /api/v1/cart/sync-prices - overwrites every
// snapshot price with the products' current live prices
func SyncCartPrices(c *gin.Context) {
	user := middleware.CurrentUser(c)
	cartService := services.NewCartService(config.GetDB())
	items, err := cartService.SyncAllCartItemPrices(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// SyncCartItemPrice handles POST /api/v1/cart/items/:productId/sync-price
func SyncCartItemPrice(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	cartService := services.NewCartService(config.GetDB())
	item, err := cartService.SyncCartItemPrice(user.ID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}
