package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artisania/marketplace-api/config"
	"github.com/artisania/marketplace-api/middleware"
	"github.com/artisania/marketplace-api/services"
)

// CreateArtisanProfileRequest represents the request body for creating a profile
type CreateArtisanProfileRequest struct {
	DisplayName     string  `json:"display_name" binding:"required"`
	Bio             string  `json:"bio"`
	ProfileImageURL *string `json:"profile_image_url"`
	CoverImageURL   *string `json:"cover_image_url"`
}

// UpdateArtisanProfileRequest represents the request body for updating a profile
type UpdateArtisanProfileRequest struct {
	DisplayName     string  `json:"display_name"`
	Bio             string  `json:"bio"`
	ProfileImageURL *string `json:"profile_image_url"`
	CoverImageURL   *string `json:"cover_image_url"`
}

// ListArtisanProfiles handles GET /api/v1/artisans - public
func ListArtisanProfiles(c *gin.Context) {
	profileService := services.NewArtisanProfileService(config.GetDB())
	profiles, err := profileService.GetAllProfiles()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profiles,
	})
}

// GetArtisanProfile handles GET /api/v1/artisans/:id - public
func GetArtisanProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profileService := services.NewArtisanProfileService(config.GetDB())
	profile, err := profileService.GetProfileByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// GetArtisanProfileByUser handles GET /api/v1/artisans/user/:userId - public
func GetArtisanProfileByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	profileService := services.NewArtisanProfileService(config.GetDB())
	profile, err := profileService.GetProfileByUserID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// CreateArtisanProfile handles POST /api/v1/artisans - creates the profile
// for the current user (ARTISAN role required)
func CreateArtisanProfile(c *gin.Context) {
	var req CreateArtisanProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	profileService := services.NewArtisanProfileService(config.GetDB())
	profile, err := profileService.CreateProfile(user, req.DisplayName, req.Bio, req.ProfileImageURL, req.CoverImageURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    profile,
	})
}

// UpdateArtisanProfile handles PUT /api/v1/artisans/:id - profile owner or admin
func UpdateArtisanProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateArtisanProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanEditArtisanProfile(principal, id) {
		respondForbidden(c)
		return
	}

	profileService := services.NewArtisanProfileService(config.GetDB())
	profile, err := profileService.UpdateProfile(id, req.DisplayName, req.Bio, req.ProfileImageURL, req.CoverImageURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// DeleteArtisanProfile handles DELETE /api/v1/artisans/:id - profile owner or admin
func DeleteArtisanProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	principal := middleware.CurrentUser(c)
	policy := services.NewPolicyService(config.GetDB())
	if !policy.CanEditArtisanProfile(principal, id) {
		respondForbidden(c)
		return
	}

	profileService := services.NewArtisanProfileService(config.GetDB())
	if err := profileService.DeleteProfile(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Artisan profile deleted",
	})
}
