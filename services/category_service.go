package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/artisania/marketplace-api/models"
	"github.com/artisania/marketplace-api/utils"
)

// CategoryService handles categories: unique names, derived unique slugs and
// the delete guard while products still reference a category.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService backed by the given database handle.
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// GetCategoryByID loads one category.
func (s *CategoryService) GetCategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("category not found with id: %d", id)
		}
		return nil, err
	}
	return &category, nil
}

// GetCategoryBySlug loads one category by its URL slug.
func (s *CategoryService) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("category not found with slug: %s", slug)
		}
		return nil, err
	}
	return &category, nil
}

// GetAllCategories lists every category ordered by name.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// CreateCategory creates a category with a slug derived from its name.
// Name collisions are a conflict; slug collisions are resolved with a
// numeric suffix.
func (s *CategoryService) CreateCategory(name string) (*models.Category, error) {
	if name == "" {
		return nil, validationErr("category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, conflictErr("category name already exists: %s", name)
	}

	slug, err := s.uniqueSlug(name, 0)
	if err != nil {
		return nil, err
	}

	category := models.Category{Name: name, Slug: slug}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category and re-derives its slug.
func (s *CategoryService) UpdateCategory(id uint, name string) (*models.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}
	if name == "" || name == category.Name {
		return category, nil
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, conflictErr("category name already exists: %s", name)
	}

	slug, err := s.uniqueSlug(name, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(category).Updates(map[string]interface{}{
		"name": name,
		"slug": slug,
	}).Error; err != nil {
		return nil, err
	}
	return s.GetCategoryByID(id)
}

// DeleteCategory removes a category. A category still owning products cannot
// be deleted.
func (s *CategoryService) DeleteCategory(id uint) error {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return err
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount > 0 {
		return conflictErr("cannot delete category with existing products")
	}

	return s.db.Delete(category).Error
}

// uniqueSlug derives a slug from name and appends the first free numeric
// suffix on collision. excludeID ignores the category being renamed.
func (s *CategoryService) uniqueSlug(name string, excludeID uint) (string, error) {
	base := utils.Slugify(name)
	slug := base

	for suffix := 2; ; suffix++ {
		var count int64
		query := s.db.Model(&models.Category{}).Where("slug = ?", slug)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = utils.SlugWithSuffix(base, suffix)
	}
}
