package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/artisania/marketplace-api/models"
)

// ProductImageService maintains product image records and the primary-image
// invariant: at most one image per product carries the primary flag, enforced
// by clearing sibling flags before a new primary is written.
type ProductImageService struct {
	db *gorm.DB
}

// NewProductImageService creates a ProductImageService backed by the given
// database handle.
func NewProductImageService(db *gorm.DB) *ProductImageService {
	return &ProductImageService{db: db}
}

// GetImageByID loads one image record.
func (s *ProductImageService) GetImageByID(id uint) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := s.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("product image not found with id: %d", id)
		}
		return nil, err
	}
	return &image, nil
}

// GetImagesByProductID lists a product's images, primary first.
func (s *ProductImageService) GetImagesByProductID(productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	err := s.db.Where("product_id = ?", productID).
		Order("is_primary DESC, id ASC").Find(&images).Error
	return images, err
}

// AddImage attaches a new image to a product. Duplicate URLs per product are
// a conflict. When the new image is primary, sibling flags are cleared first.
func (s *ProductImageService) AddImage(productID uint, imageURL string, isPrimary bool) (*models.ProductImage, error) {
	if imageURL == "" {
		return nil, validationErr("image URL is required")
	}

	if err := s.db.First(&models.Product{}, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("product not found with id: %d", productID)
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.ProductImage{}).
		Where("product_id = ? AND image_url = ?", productID, imageURL).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, conflictErr("image URL already exists for this product")
	}

	image := models.ProductImage{
		ProductID: productID,
		ImageURL:  imageURL,
		IsPrimary: isPrimary,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if isPrimary {
			if err := clearPrimaryFlags(tx, productID); err != nil {
				return err
			}
		}
		return tx.Create(&image).Error
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// UpdateImage changes an image's URL and/or primary flag. Setting the primary
// flag clears siblings first.
func (s *ProductImageService) UpdateImage(id uint, imageURL *string, isPrimary *bool) (*models.ProductImage, error) {
	image, err := s.GetImageByID(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if imageURL != nil && *imageURL != image.ImageURL {
			var count int64
			if err := tx.Model(&models.ProductImage{}).
				Where("product_id = ? AND image_url = ? AND id <> ?", image.ProductID, *imageURL, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return conflictErr("image URL already exists for this product")
			}
			image.ImageURL = *imageURL
		}

		if isPrimary != nil {
			if *isPrimary {
				if err := clearPrimaryFlags(tx, image.ProductID); err != nil {
					return err
				}
			}
			image.IsPrimary = *isPrimary
		}

		return tx.Save(image).Error
	})
	if err != nil {
		return nil, err
	}
	return image, nil
}

// SetAsPrimary marks the image as its product's primary, clearing siblings
// first.
func (s *ProductImageService) SetAsPrimary(id uint) (*models.ProductImage, error) {
	image, err := s.GetImageByID(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := clearPrimaryFlags(tx, image.ProductID); err != nil {
			return err
		}
		image.IsPrimary = true
		return tx.Save(image).Error
	})
	if err != nil {
		return nil, err
	}
	return image, nil
}

// DeleteImage removes an image. When the deleted image was primary, an
// arbitrary surviving sibling is promoted so the product keeps a primary
// image whenever it has any.
func (s *ProductImageService) DeleteImage(id uint) error {
	image, err := s.GetImageByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(image).Error; err != nil {
			return err
		}

		if !image.IsPrimary {
			return nil
		}

		var survivor models.ProductImage
		err := tx.Where("product_id = ?", image.ProductID).Order("id ASC").First(&survivor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&survivor).Update("is_primary", true).Error
	})
}

func clearPrimaryFlags(tx *gorm.DB, productID uint) error {
	return tx.Model(&models.ProductImage{}).
		Where("product_id = ?", productID).
		Update("is_primary", false).Error
}
