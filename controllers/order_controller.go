package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artisania/marketplace-api/config"
	"github.com/artisania/marketplace-api/middleware"
	"github.com/artisania/marketplace-api/models"
	"github.com/artisania/marketplace-api/services"
)

// OrderItemRequest is one purchased line in an order draft
type OrderItemRequest struct {
	ProductID       uint    `json:"product_id" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required,gt=0"`
	PriceAtPurchase float64 `json:"price_at_purchase" binding:"required,gt=0"`
}

// CreateOrderRequest represents the request body for placing an order.
// Anonymous requests must set guest_email; authenticated requests are bound
// to the acting user and any guest_email is discarded.
type CreateOrderRequest struct {
	GuestEmail           *string            `json:"guest_email"`
	TotalPrice           float64            `json:"total_price" binding:"required"`
	ShippingName         string             `json:"shipping_name"`
	ShippingAddressLine1 string             `json:"shipping_address_line1"`
	ShippingAddressLine2 *string            `json:"shipping_address_line2"`
	ShippingCity         string             `json:"shipping_city"`
	ShippingPostalCode   string             `json:"shipping_postal_code"`
	ShippingCountry      string             `json:"shipping_country"`
	ShippingPhone        *string            `json:"shipping_phone"`
	OrderItems           []OrderItemRequest `json:"order_items"`
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderRequest represents the request body for an admin order edit.
// Zero-valued fields are left untouched.
type UpdateOrderRequest struct {
	Status               string  `json:"status"`
	TotalPrice           float64 `json:"total_price"`
	ShippingName         string  `json:"shipping_name"`
	ShippingAddressLine1 string  `json:"shipping_address_line1"`
	ShippingAddressLine2 *string `json:"shipping_address_line2"`
	ShippingCity         string  `json:"shipping_city"`
	ShippingPostalCode   string  `json:"shipping_postal_code"`
	ShippingCountry      string  `json:"shipping_country"`
	ShippingPhone        *string `json:"shipping_phone"`
}

// CreateOrder handles POST /api/v1/orders - guest or authenticated checkout
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	order := models.Order{
		GuestEmail:           req.GuestEmail,
		TotalPrice:           req.TotalPrice,
		ShippingName:         req.ShippingName,
		ShippingAddressLine1: req.ShippingAddressLine1,
		ShippingAddressLine2: req.ShippingAddressLine2,
		ShippingCity:         req.ShippingCity,
		ShippingPostalCode:   req.ShippingPostalCode,
		ShippingCountry:      req.ShippingCountry,
		ShippingPhone:        req.ShippingPhone,
	}
	for _, item := range req.OrderItems {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}

	principal := middleware.CurrentUser(c)
	orderService := services.NewOrderService(config.GetDB())
	created, err := orderService.CreateOrder(&order, principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    created,
	})
}

// GetOrder handles GET /api/v1/orders/:id - admin, the order's customer, or
// an artisan with items in the order
func GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanViewOrder(principal, id) {
		respondForbidden(c)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.GetOrderByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - admin only
func ListOrders(c *gin.Context) {
	orderService := services.NewOrderService(config.GetDB())
	orders, err := orderService.GetAllOrders()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListOrdersByStatus handles GET /api/v1/orders/status/:status - admin only
func ListOrdersByStatus(c *gin.Context) {
	orderService := services.NewOrderService(config.GetDB())
	orders, err := orderService.GetOrdersByStatus(c.Param("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetMyOrders handles GET /api/v1/orders/me - the current customer's orders
func GetMyOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orderService := services.NewOrderService(config.GetDB())
	orders, err := orderService.GetOrdersByCustomerID(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListGuestOrders handles GET /api/v1/orders/guest/:email - orders placed
// under a guest email
func ListGuestOrders(c *gin.Context) {
	orderService := services.NewOrderService(config.GetDB())
	orders, err := orderService.GetOrdersByGuestEmail(c.Param("email"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status - admin, or an
// artisan with items in the order. Direct set, no transition guard.
func UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanUpdateOrderStatus(principal, id) {
		respondForbidden(c)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.UpdateOrderStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PUT /api/v1/orders/:id - admin only, partial edit of
// status and shipping details
func UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.UpdateOrder(id, &models.Order{
		Status:               req.Status,
		TotalPrice:           req.TotalPrice,
		ShippingName:         req.ShippingName,
		ShippingAddressLine1: req.ShippingAddressLine1,
		ShippingAddressLine2: req.ShippingAddressLine2,
		ShippingCity:         req.ShippingCity,
		ShippingPostalCode:   req.ShippingPostalCode,
		ShippingCountry:      req.ShippingCountry,
		ShippingPhone:        req.ShippingPhone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CancelOrder handles PUT /api/v1/orders/:id/cancel - anyone allowed to view
// the order may cancel it, but only before shipment
func CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanViewOrder(principal, id) {
		respondForbidden(c)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.CancelOrder(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id - admin only
func DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	if err := orderService.DeleteOrder(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order deleted",
	})
}

// ListArtisanOrders handles GET /api/v1/orders/artisan - every order
// containing at least one of the acting artisan's products
func ListArtisanOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orderService := services.NewOrderService(config.GetDB())
	orders, err := orderService.GetOrdersForCurrentArtisan(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetArtisanOrder handles GET /api/v1/orders/:id/artisan - the order with
// items filtered to the acting artisan's products
func GetArtisanOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.ArtisanHasProductsInOrder(user, id) {
		respondForbidden(c)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.GetOrderWithArtisanItems(id, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderItemStatus handles PUT /api/v1/orders/items/:itemId/status -
// artisan owning the item's product. Status is tracked at the order level:
// this sets the parent order's status and, on delivery, decrements stock for
// every item in the order.
func UpdateOrderItemStatus(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.ArtisanOwnsOrderItem(user, itemID) {
		respondForbidden(c)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.UpdateOrderItemStatus(itemID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
