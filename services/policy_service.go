package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/artisania/marketplace-api/models"
)

// PolicyService decides whether an acting principal may perform a protected
// operation on a resource. It is consulted before every protected mutation,
// only ever reads, and fails closed: a missing principal, missing resource or
// role mismatch yields false, never an error that could default to allow.
//
// Every rule reduces to one of two shapes: a global ADMIN bypass, or a
// transitive ownership walk from the resource to the user behind its owning
// artisan profile.
type PolicyService struct {
	db *gorm.DB
}

// NewPolicyService creates a PolicyService backed by the given database handle.
func NewPolicyService(db *gorm.DB) *PolicyService {
	return &PolicyService{db: db}
}

// CanEditProduct reports whether the principal may mutate the product.
// Admins may edit any product; artisans only their own.
func (s *PolicyService) CanEditProduct(principal *models.User, productID uint) bool {
	if principal == nil {
		return false
	}
	if principal.Role == models.RoleAdmin {
		return true
	}
	if principal.Role != models.RoleArtisan {
		return false
	}

	ownerID, ok := s.productOwnerUserID(productID)
	return ok && ownerID == principal.ID
}

// CanEditArtisanProfile reports whether the principal may mutate the profile.
// Admins may edit any profile; otherwise only the profile's linked user.
func (s *PolicyService) CanEditArtisanProfile(principal *models.User, profileID uint) bool {
	if principal == nil {
		return false
	}
	if principal.Role == models.RoleAdmin {
		return true
	}

	var profile models.ArtisanProfile
	if err := s.db.First(&profile, profileID).Error; err != nil {
		return false
	}
	return profile.UserID == principal.ID
}

// CanCreateProductImage applies the product ownership rule to image creation.
func (s *PolicyService) CanCreateProductImage(principal *models.User, productID uint) bool {
	return s.CanEditProduct(principal, productID)
}

// CanEditProductImage applies the product ownership rule, resolved
// transitively through the image's product.
func (s *PolicyService) CanEditProductImage(principal *models.User, imageID uint) bool {
	if principal == nil {
		return false
	}
	if principal.Role == models.RoleAdmin {
		return true
	}
	if principal.Role != models.RoleArtisan {
		return false
	}

	var image models.ProductImage
	if err := s.db.First(&image, imageID).Error; err != nil {
		return false
	}
	ownerID, ok := s.productOwnerUserID(image.ProductID)
	return ok && ownerID == principal.ID
}

// CanViewOrder reports whether the principal may read the order: admins
// always, the registered customer, or an artisan owning at least one of the
// order's items.
func (s *PolicyService) CanViewOrder(principal *models.User, orderID uint) bool {
	if principal == nil {
		return false
	}
	if principal.Role == models.RoleAdmin {
		return true
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		return false
	}

	if order.CustomerID != nil && *order.CustomerID == principal.ID {
		return true
	}

	if principal.Role == models.RoleArtisan {
		return s.artisanOwnsItemInOrder(principal.ID, orderID)
	}
	return false
}

// CanViewCustomerOrders reports whether the principal may list a customer's
// orders: admins, or the customer themselves.
func (s *PolicyService) CanViewCustomerOrders(principal *models.User, customerID uint) bool {
	if principal == nil {
		return false
	}
	if principal.Role == models.RoleAdmin {
		return true
	}
	return principal.ID == customerID
}

// CanUpdateOrderStatus reports whether the principal may set the order's
// status: admins, or an artisan owning at least one item in the order.
func (s *PolicyService) CanUpdateOrderStatus(principal *models.User, orderID uint) bool {
	if principal == nil {
		return false
	}
	if principal.Role == models.RoleAdmin {
		return true
	}
	if principal.Role != models.RoleArtisan {
		return false
	}
	return s.artisanOwnsItemInOrder(principal.ID, orderID)
}

// ArtisanHasProductsInOrder reports whether the principal is an artisan
// owning at least one item in the order. No admin bypass: the decision is
// about the artisan relationship itself.
func (s *PolicyService) ArtisanHasProductsInOrder(principal *models.User, orderID uint) bool {
	if principal == nil || principal.Role != models.RoleArtisan {
		return false
	}
	return s.artisanOwnsItemInOrder(principal.ID, orderID)
}

// ArtisanOwnsOrderItem reports whether the principal is an artisan owning the
// product referenced by the order item.
func (s *PolicyService) ArtisanOwnsOrderItem(principal *models.User, itemID uint) bool {
	if principal == nil || principal.Role != models.RoleArtisan {
		return false
	}

	var item models.OrderItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		return false
	}
	ownerID, ok := s.productOwnerUserID(item.ProductID)
	return ok && ownerID == principal.ID
}

// productOwnerUserID walks product -> artisan profile -> user and returns the
// owning user's id. The second return is false when any link is missing.
func (s *PolicyService) productOwnerUserID(productID uint) (uint, bool) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return 0, false
	}

	var profile models.ArtisanProfile
	if err := s.db.First(&profile, product.ArtisanID).Error; err != nil {
		return 0, false
	}
	return profile.UserID, true
}

// artisanOwnsItemInOrder reports whether any item of the order references a
// product owned by the given user's artisan profile.
func (s *PolicyService) artisanOwnsItemInOrder(userID uint, orderID uint) bool {
	var count int64
	err := s.db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN artisan_profiles ON artisan_profiles.id = products.artisan_id").
		Where("order_items.order_id = ? AND artisan_profiles.user_id = ?", orderID, userID).
		Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	return count > 0
}
