package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/artisania/marketplace-api/config"
	"github.com/artisania/marketplace-api/middleware"
	"github.com/artisania/marketplace-api/models"
	"github.com/artisania/marketplace-api/services"
)

// GetMyProfile handles GET /api/v1/users/me - gets the current user's account
func GetMyProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// GetUser handles GET /api/v1/users/:id - admin, or the user themselves
func GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	principal := middleware.CurrentUser(c)
	if principal == nil || (principal.Role != models.RoleAdmin && principal.ID != id) {
		respondForbidden(c)
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// ListUsers handles GET /api/v1/users - admin only
func ListUsers(c *gin.Context) {
	db := config.GetDB()
	var users []models.User
	if err := db.Order("id ASC").Find(&users).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}

// DeactivateUser handles PUT /api/v1/users/:id/deactivate - admin only.
// Soft deactivation: the account stays but can no longer authenticate.
func DeactivateUser(c *gin.Context) {
	setUserActive(c, false)
}

// ActivateUser handles PUT /api/v1/users/:id/activate - admin only
func ActivateUser(c *gin.Context) {
	setUserActive(c, true)
}

func setUserActive(c *gin.Context, active bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User not found",
			},
		})
		return
	}

	if err := db.Model(&user).Update("is_active", active).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	user.IsActive = active

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// DeleteUser handles DELETE /api/v1/users/:id - admin only, hard delete
func DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User not found",
			},
		})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// A user's cart does not outlive the account
		if err := tx.Where("user_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted",
	})
}

// GetUserOrders handles GET /api/v1/users/:id/orders - the customer
// themselves or an admin
func GetUserOrders(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanViewCustomerOrders(principal, id) {
		respondForbidden(c)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	orders, err := orderService.GetOrdersByCustomerID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}
