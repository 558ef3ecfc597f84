package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artisania/marketplace-api/config"
	"github.com/artisania/marketplace-api/models"
)

func setupAuthConfig() {
	config.SetConfig(&config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		GoEnv:          "test",
	})
}

func TestRegister(t *testing.T) {
	db := setupServiceTestDB(t)
	setupAuthConfig()
	service := NewAuthService(db)

	tests := []struct {
		name      string
		email     string
		password  string
		role      string
		expectErr error
		checkUser func(t *testing.T, user *models.User)
	}{
		{
			name:     "register customer with default role",
			email:    "buyer@example.com",
			password: "password123",
			role:     "",
			checkUser: func(t *testing.T, user *models.User) {
				assert.Equal(t, models.RoleCustomer, user.Role)
				assert.True(t, user.IsActive)
				assert.NotEqual(t, "password123", user.PasswordHash, "Password must be hashed")
			},
		},
		{
			name:     "register artisan",
			email:    "maker@example.com",
			password: "password123",
			role:     models.RoleArtisan,
			checkUser: func(t *testing.T, user *models.User) {
				assert.Equal(t, models.RoleArtisan, user.Role)
			},
		},
		{
			name:     "email is normalized",
			email:    "  Mixed.Case@Example.COM ",
			password: "password123",
			role:     "",
			checkUser: func(t *testing.T, user *models.User) {
				assert.Equal(t, "mixed.case@example.com", user.Email)
			},
		},
		{
			name:      "admin cannot self-register",
			email:     "admin@example.com",
			password:  "password123",
			role:      models.RoleAdmin,
			expectErr: ErrValidation,
		},
		{
			name:      "password too short",
			email:     "short@example.com",
			password:  "1234567",
			role:      "",
			expectErr: ErrValidation,
		},
		{
			name:      "missing email",
			email:     "   ",
			password:  "password123",
			role:      "",
			expectErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Register(tt.email, tt.password, tt.role)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			assert.NoError(t, err)
			if tt.checkUser != nil {
				tt.checkUser(t, user)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := setupServiceTestDB(t)
	setupAuthConfig()
	service := NewAuthService(db)

	_, err := service.Register("buyer@example.com", "password123", "")
	assert.NoError(t, err)

	_, err = service.Register("buyer@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrConflict)

	// Duplicates are caught case-insensitively via normalization
	_, err = service.Register("BUYER@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	db := setupServiceTestDB(t)
	setupAuthConfig()
	service := NewAuthService(db)

	registered, err := service.Register("buyer@example.com", "password123", "")
	assert.NoError(t, err)

	user, token, err := service.Login("buyer@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	// The token round-trips through ParseToken
	claims, err := ParseToken(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleCustomer, claims.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	db := setupServiceTestDB(t)
	setupAuthConfig()
	service := NewAuthService(db)

	service.Register("buyer@example.com", "password123", "")

	_, _, err := service.Login("buyer@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = service.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	db := setupServiceTestDB(t)
	setupAuthConfig()
	service := NewAuthService(db)

	user, _ := service.Register("buyer@example.com", "password123", "")
	db.Model(user).Update("is_active", false)

	_, _, err := service.Login("buyer@example.com", "password123")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestParseToken_RejectsTampering(t *testing.T) {
	db := setupServiceTestDB(t)
	setupAuthConfig()
	service := NewAuthService(db)

	user, _ := service.Register("buyer@example.com", "password123", "")
	token, err := service.IssueToken(user)
	assert.NoError(t, err)

	_, err = ParseToken(token, "wrong-secret")
	assert.Error(t, err, "A token signed with another secret must not validate")

	_, err = ParseToken(token+"x", "test-secret")
	assert.Error(t, err)

	_, err = ParseToken("not-a-token", "test-secret")
	assert.Error(t, err)
}
