package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/artisania/marketplace-api/config"
	"github.com/artisania/marketplace-api/models"
	"github.com/artisania/marketplace-api/services"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	config.SetDB(db)
	config.SetConfig(&config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		GoEnv:          "test",
	})
	return db
}

func issueTestToken(t *testing.T, db *gorm.DB, user *models.User) string {
	token, err := services.NewAuthService(db).IssueToken(user)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// whoami echoes the resolved principal so tests can inspect it
func whoami(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": user.ID, "role": user.Role}})
}

func TestRequireAuth(t *testing.T) {
	db := setupAuthTestDB(t)

	user := models.User{Email: "buyer@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	db.Create(&user)

	deactivated := models.User{Email: "gone@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: false}
	db.Create(&deactivated)

	validToken := issueTestToken(t, db, &user)
	deactivatedToken := issueTestToken(t, db, &deactivated)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"valid token", "Bearer " + validToken, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"deactivated user", "Bearer " + deactivatedToken, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.GET("/protected", RequireAuth(), whoami)

			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var response map[string]interface{}
				json.Unmarshal(w.Body.Bytes(), &response)
				data := response["data"].(map[string]interface{})
				assert.Equal(t, float64(user.ID), data["id"])
			}
		})
	}
}

func TestRequireAuth_UnknownUser(t *testing.T) {
	db := setupAuthTestDB(t)

	// Token for a user that is then deleted
	user := models.User{Email: "buyer@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	db.Create(&user)
	token := issueTestToken(t, db, &user)
	db.Delete(&user)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(), whoami)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	db := setupAuthTestDB(t)

	user := models.User{Email: "buyer@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	db.Create(&user)
	token := issueTestToken(t, db, &user)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/open", OptionalAuth(), whoami)

	// Anonymous request passes through with no principal
	req, _ := http.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Nil(t, response["data"])

	// Authenticated request resolves the principal
	req, _ = http.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(user.ID), data["id"])
}

func TestRequireRole(t *testing.T) {
	db := setupAuthTestDB(t)

	artisan := models.User{Email: "maker@example.com", PasswordHash: "x", Role: models.RoleArtisan, IsActive: true}
	db.Create(&artisan)
	customer := models.User{Email: "buyer@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	db.Create(&customer)

	artisanToken := issueTestToken(t, db, &artisan)
	customerToken := issueTestToken(t, db, &customer)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/artisan-only", RequireAuth(), RequireRole(models.RoleArtisan), whoami)

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{"matching role", artisanToken, http.StatusOK},
		{"wrong role", customerToken, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/artisan-only", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
