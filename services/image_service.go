package services

import (
	"fmt"
	"mime/multipart"

	"github.com/artisania/marketplace-api/utils"
)

// ImageService stores product and profile images. The concrete backend is S3;
// tests swap in an in-memory mock via SetImageService.
type ImageService interface {
	// UploadImage validates the file and stores it, returning the storage key
	UploadImage(fileHeader *multipart.FileHeader) (string, error)

	// GetImageURL resolves a storage key to a fetchable URL
	GetImageURL(imageKey string) (string, error)

	// DeleteImage removes a stored image
	DeleteImage(imageKey string) error
}

// S3ImageService is the ImageService backed by object storage.
type S3ImageService struct {
	storage S3Interface
}

var imageServiceInstance ImageService

// InitImageService wires the image service to the given storage backend
func InitImageService(s3Service S3Interface) ImageService {
	imageServiceInstance = &S3ImageService{storage: s3Service}
	return imageServiceInstance
}

// GetImageService returns the initialized image service instance. nil means
// uploads are disabled (storage was never configured).
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

func (s *S3ImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	key, err := s.storage.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return key, nil
}

func (s *S3ImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.storage.GetPresignedURL(imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}
	return url, nil
}

func (s *S3ImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.storage.DeleteFile(imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
