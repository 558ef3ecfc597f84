package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/artisania/marketplace-api/models"
)

// ArtisanProfileService handles seller profiles. A profile is one-to-one with
// an ARTISAN user.
type ArtisanProfileService struct {
	db *gorm.DB
}

// NewArtisanProfileService creates an ArtisanProfileService backed by the
// given database handle.
func NewArtisanProfileService(db *gorm.DB) *ArtisanProfileService {
	return &ArtisanProfileService{db: db}
}

// GetProfileByID loads one profile with its linked user.
func (s *ArtisanProfileService) GetProfileByID(id uint) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	if err := s.db.Preload("User").First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("artisan profile not found with id: %d", id)
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileByUserID loads the profile linked to a user.
func (s *ArtisanProfileService) GetProfileByUserID(userID uint) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	if err := s.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("artisan profile not found for user: %d", userID)
		}
		return nil, err
	}
	return &profile, nil
}

// GetAllProfiles lists every artisan profile.
func (s *ArtisanProfileService) GetAllProfiles() ([]models.ArtisanProfile, error) {
	var profiles []models.ArtisanProfile
	err := s.db.Preload("User").Find(&profiles).Error
	return profiles, err
}

// CreateProfile creates the profile for the given user. The user must hold
// the ARTISAN role and have no profile yet.
func (s *ArtisanProfileService) CreateProfile(user *models.User, displayName, bio string, profileImageURL, coverImageURL *string) (*models.ArtisanProfile, error) {
	if user == nil {
		return nil, forbiddenErr("authentication required to create artisan profile")
	}
	if user.Role != models.RoleArtisan {
		return nil, validationErr("user must have ARTISAN role to create artisan profile")
	}
	if displayName == "" {
		return nil, validationErr("display name is required")
	}

	var count int64
	if err := s.db.Model(&models.ArtisanProfile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, conflictErr("artisan profile already exists for user: %s", user.Email)
	}

	profile := models.ArtisanProfile{
		UserID:          user.ID,
		DisplayName:     displayName,
		Bio:             bio,
		ProfileImageURL: profileImageURL,
		CoverImageURL:   coverImageURL,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, err
	}
	return s.GetProfileByID(profile.ID)
}

// UpdateProfile applies the non-empty fields of the request to a profile.
func (s *ArtisanProfileService) UpdateProfile(id uint, displayName, bio string, profileImageURL, coverImageURL *string) (*models.ArtisanProfile, error) {
	profile, err := s.GetProfileByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if displayName != "" {
		updates["display_name"] = displayName
	}
	if bio != "" {
		updates["bio"] = bio
	}
	if profileImageURL != nil {
		updates["profile_image_url"] = profileImageURL
	}
	if coverImageURL != nil {
		updates["cover_image_url"] = coverImageURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(profile).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetProfileByID(id)
}

// DeleteProfile removes an artisan profile. Dependent products are not
// checked here, unlike category deletion.
func (s *ArtisanProfileService) DeleteProfile(id uint) error {
	var profile models.ArtisanProfile
	if err := s.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("artisan profile not found with id: %d", id)
		}
		return err
	}
	return s.db.Delete(&profile).Error
}
