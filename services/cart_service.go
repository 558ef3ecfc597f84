package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/artisania/marketplace-api/models"
)

// CartService handles per-user cart lines with price snapshotting. A cart
// line is unique per (user, product); adding an existing pair merges
// quantities. Snapshot prices only change on an explicit resync.
type CartService struct {
	db *gorm.DB
}

// NewCartService creates a CartService backed by the given database handle.
func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddToCart adds quantity units of a product to the user's cart. If the
// (user, product) pair already exists the quantities are merged; otherwise a
// new line is created with the product's current price as snapshot.
func (s *CartService) AddToCart(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, validationErr("quantity must be greater than zero")
	}

	if err := s.db.First(&models.User{}, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("user not found with id: %d", userID)
		}
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("product not found with id: %d", productID)
		}
		return nil, err
	}

	var item models.CartItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err == nil {
		item.Quantity += quantity
		if err := s.db.Save(&item).Error; err != nil {
			return nil, err
		}
		return s.getItem(item.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item = models.CartItem{
		UserID:      userID,
		ProductID:   productID,
		Quantity:    quantity,
		PriceAtTime: product.Price,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return s.getItem(item.ID)
}

// UpdateQuantity replaces the quantity of the user's cart line for a product.
func (s *CartService) UpdateQuantity(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, validationErr("quantity must be greater than zero")
	}

	var item models.CartItem
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("cart item not found")
		}
		return nil, err
	}

	if err := s.db.Model(&item).Update("quantity", quantity).Error; err != nil {
		return nil, err
	}
	return s.getItem(item.ID)
}

// RemoveFromCart deletes the user's cart line for a product.
func (s *CartService) RemoveFromCart(userID, productID uint) error {
	var item models.CartItem
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("cart item not found")
		}
		return err
	}
	return s.db.Delete(&item).Error
}

// ClearCart removes every line of the user's cart.
func (s *CartService) ClearCart(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// GetCartItems lists the user's cart with product details.
func (s *CartService) GetCartItems(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.Preload("Product").Preload("Product.Images").
		Where("user_id = ?", userID).Find(&items).Error
	return items, err
}

// CalculateCartTotal sums snapshot price times quantity over the user's cart.
// Snapshot prices are used as stored; reads never resync them.
func (s *CartService) CalculateCartTotal(userID uint) (float64, error) {
	items, err := s.GetCartItems(userID)
	if err != nil {
		return 0, err
	}

	var total float64
	for i := range items {
		total += items[i].Total()
	}
	return total, nil
}

// SyncCartItemPrice overwrites one line's snapshot with the product's current
// live price.
func (s *CartService) SyncCartItemPrice(userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("cart item not found")
		}
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, item.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("product not found with id: %d", item.ProductID)
		}
		return nil, err
	}

	if err := s.db.Model(&item).Update("price_at_time", product.Price).Error; err != nil {
		return nil, err
	}
	return s.getItem(item.ID)
}

// SyncAllCartItemPrices overwrites every snapshot in the user's cart with the
// products' current live prices.
func (s *CartService) SyncAllCartItemPrices(userID uint) ([]models.CartItem, error) {
	items, err := s.GetCartItems(userID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if err := s.db.Model(&items[i]).Update("price_at_time", items[i].Product.Price).Error; err != nil {
			return nil, err
		}
		items[i].PriceAtTime = items[i].Product.Price
	}
	return items, nil
}

func (s *CartService) getItem(id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.Preload("Product").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
