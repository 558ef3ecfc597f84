package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/artisania/marketplace-api/config"
	"github.com/artisania/marketplace-api/models"
	"github.com/artisania/marketplace-api/services"
)

const currentUserKey = "current_user"

// RequireAuth validates the bearer token and loads the acting user into the
// Gin context. Requests without a valid token are rejected.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "A valid bearer token is required",
				},
			})
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OptionalAuth loads the acting user if a valid bearer token is present, but
// lets anonymous requests through. Used for guest checkout.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := resolveUser(c); ok {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose user does not hold the
// given role. Must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != role {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions to access this resource",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the acting user stored by RequireAuth/OptionalAuth, or
// nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// resolveUser parses the Authorization header and loads the matching active
// user from the database. Returns false for missing/invalid tokens, unknown
// users and deactivated accounts.
func resolveUser(c *gin.Context) (*models.User, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}

	cfg := config.GetConfig()
	claims, err := services.ParseToken(parts[1], cfg.JWTSecret)
	if err != nil {
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		return nil, false
	}
	if !user.IsActive {
		return nil, false
	}

	return &user, true
}
