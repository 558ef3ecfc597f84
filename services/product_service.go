package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/artisania/marketplace-api/models"
)

// ProductService handles catalog product access, including the direct stock
// set used by the order lifecycle on delivery.
type ProductService struct {
	db *gorm.DB
}

// NewProductService creates a ProductService backed by the given database handle.
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// GetProductByID loads a product with its artisan, category and images.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Artisan").Preload("Artisan.User").Preload("Category").Preload("Images").
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("product not found with id: %d", id)
		}
		return nil, err
	}
	return &product, nil
}

// GetAllProducts lists every product with associations preloaded.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Preload("Artisan").Preload("Category").Preload("Images").Find(&products).Error
	return products, err
}

// GetProductsByCategory lists the products of one category.
func (s *ProductService) GetProductsByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Preload("Artisan").Preload("Category").Preload("Images").
		Where("category_id = ?", categoryID).Find(&products).Error
	return products, err
}

// GetProductsByArtisan lists the products owned by one artisan profile.
func (s *ProductService) GetProductsByArtisan(artisanID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Preload("Artisan").Preload("Category").Preload("Images").
		Where("artisan_id = ?", artisanID).Find(&products).Error
	return products, err
}

// GetFeaturedProducts lists products flagged for the storefront.
func (s *ProductService) GetFeaturedProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Preload("Artisan").Preload("Category").Preload("Images").
		Where("is_featured = ?", true).Find(&products).Error
	return products, err
}

// CreateProduct validates and persists a new product.
func (s *ProductService) CreateProduct(product *models.Product) (*models.Product, error) {
	if err := s.validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.db.First(&models.ArtisanProfile{}, product.ArtisanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("artisan profile not found with id: %d", product.ArtisanID)
		}
		return nil, err
	}
	if err := s.db.First(&models.Category{}, product.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("category not found with id: %d", product.CategoryID)
		}
		return nil, err
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, err
	}
	return s.GetProductByID(product.ID)
}

// UpdateProduct applies the non-zero fields of details to an existing product.
func (s *ProductService) UpdateProduct(id uint, details *models.Product) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("product not found with id: %d", id)
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if details.Name != "" {
		updates["name"] = details.Name
	}
	if details.Description != "" {
		updates["description"] = details.Description
	}
	if details.Price != 0 {
		if details.Price < 0 {
			return nil, validationErr("product price must be greater than zero")
		}
		updates["price"] = details.Price
	}
	if details.CategoryID != 0 {
		if err := s.db.First(&models.Category{}, details.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFoundErr("category not found with id: %d", details.CategoryID)
			}
			return nil, err
		}
		updates["category_id"] = details.CategoryID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetProductByID(id)
}

// SetFeatured toggles the storefront feature flag.
func (s *ProductService) SetFeatured(id uint, featured bool) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("product not found with id: %d", id)
		}
		return nil, err
	}
	if err := s.db.Model(&product).Update("is_featured", featured).Error; err != nil {
		return nil, err
	}
	return s.GetProductByID(id)
}

// UpdateProductStock sets the product's stock to newStock. Direct set, used
// by admin stock edits and by the order lifecycle on delivery.
func (s *ProductService) UpdateProductStock(id uint, newStock int) (*models.Product, error) {
	if newStock < 0 {
		return nil, validationErr("stock quantity cannot be negative")
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("product not found with id: %d", id)
		}
		return nil, err
	}

	if err := s.db.Model(&product).Update("stock_quantity", newStock).Error; err != nil {
		return nil, err
	}
	product.StockQuantity = newStock
	return &product, nil
}

// DeleteProduct removes a product and, by cascade, its images.
func (s *ProductService) DeleteProduct(id uint) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("product not found with id: %d", id)
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

func (s *ProductService) validateProduct(product *models.Product) error {
	if product.Name == "" {
		return validationErr("product name is required")
	}
	if product.Price <= 0 {
		return validationErr("product price must be greater than zero")
	}
	if product.StockQuantity < 0 {
		return validationErr("stock quantity cannot be negative")
	}
	return nil
}
