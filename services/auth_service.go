package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/artisania/marketplace-api/config"
	"github.com/artisania/marketplace-api/models"
)

// AuthService owns credential hashing and session token issue/validation.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates an AuthService backed by the given database handle.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// TokenClaims is the payload carried by an issued session token.
type TokenClaims struct {
	UserID uint
	Email  string
	Role   string
}

// Register creates a new user with the given role. Only CUSTOMER and ARTISAN
// can self-register; admins are provisioned out of band.
func (s *AuthService) Register(email, password, role string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, validationErr("email is required")
	}
	if len(password) < 8 {
		return nil, validationErr("password must be at least 8 characters")
	}
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleArtisan {
		return nil, validationErr("role must be CUSTOMER or ARTISAN")
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, conflictErr("email already exists: %s", email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and returns the user and a signed session token.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", forbiddenErr("invalid credentials")
		}
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", forbiddenErr("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", forbiddenErr("invalid credentials")
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// IssueToken signs an HS256 session token for the user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	cfg := config.GetConfig()
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(cfg.JWTExpiryHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a session token and extracts its claims.
func ParseToken(tokenStr string, secret string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid sub claim")
	}
	userID, err := strconv.ParseUint(subStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in sub claim: %w", err)
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid email claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid role claim")
	}

	return &TokenClaims{
		UserID: uint(userID),
		Email:  email,
		Role:   role,
	}, nil
}
