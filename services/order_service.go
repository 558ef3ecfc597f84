package services

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/artisania/marketplace-api/models"
)

// OrderService owns the order lifecycle: creation for guests and registered
// customers, status transitions, artisan-scoped views, and the stock
// decrement side effect when an order is delivered.
type OrderService struct {
	db       *gorm.DB
	products *ProductService
}

// NewOrderService creates an OrderService backed by the given database handle.
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db, products: NewProductService(db)}
}

var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

// CreateOrder validates and persists an order together with its items.
// If principal is non-nil the order is bound to that user and any guest email
// is discarded; anonymous orders must carry a guest email instead. Exactly
// one of the two identifies the order, never both and never neither.
func (s *OrderService) CreateOrder(order *models.Order, principal *models.User) (*models.Order, error) {
	if principal != nil {
		order.CustomerID = &principal.ID
		// Authenticated orders can never carry a guest email.
		order.GuestEmail = nil
	}

	if err := s.validateOrder(order); err != nil {
		return nil, err
	}

	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		items := order.OrderItems
		order.OrderItems = nil
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		order.OrderItems = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrderByID(order.ID)
}

// GetOrderByID loads an order with its items and their products.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Customer").
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Preload("OrderItems.Product.Artisan").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("order not found with id: %d", id)
		}
		return nil, err
	}
	return &order, nil
}

// GetAllOrders lists every order, newest first.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Customer").Preload("OrderItems").Preload("OrderItems.Product").
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// GetOrdersByCustomerID lists a registered customer's orders, newest first.
func (s *OrderService) GetOrdersByCustomerID(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("OrderItems").Preload("OrderItems.Product").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// GetOrdersByGuestEmail lists guest orders placed under the given email.
func (s *OrderService) GetOrdersByGuestEmail(email string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("OrderItems").Preload("OrderItems.Product").
		Where("guest_email = ?", email).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// GetOrdersByStatus lists orders in one lifecycle state.
func (s *OrderService) GetOrdersByStatus(status string) ([]models.Order, error) {
	if !validOrderStatuses[status] {
		return nil, validationErr("invalid order status: %s", status)
	}
	var orders []models.Order
	err := s.db.Preload("Customer").Preload("OrderItems").Preload("OrderItems.Product").
		Where("status = ?", status).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// UpdateOrder applies the non-zero fields of details to an existing order.
// Status changes through here are unconditional, like UpdateOrderStatus.
func (s *OrderService) UpdateOrder(id uint, details *models.Order) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("order not found with id: %d", id)
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if details.Status != "" {
		if !validOrderStatuses[details.Status] {
			return nil, validationErr("invalid order status: %s", details.Status)
		}
		updates["status"] = details.Status
	}
	if details.TotalPrice != 0 {
		if details.TotalPrice < 0 {
			return nil, validationErr("order total price must be greater than zero")
		}
		updates["total_price"] = details.TotalPrice
	}
	if details.ShippingName != "" {
		updates["shipping_name"] = details.ShippingName
	}
	if details.ShippingAddressLine1 != "" {
		updates["shipping_address_line1"] = details.ShippingAddressLine1
	}
	if details.ShippingAddressLine2 != nil {
		updates["shipping_address_line2"] = details.ShippingAddressLine2
	}
	if details.ShippingCity != "" {
		updates["shipping_city"] = details.ShippingCity
	}
	if details.ShippingPostalCode != "" {
		updates["shipping_postal_code"] = details.ShippingPostalCode
	}
	if details.ShippingCountry != "" {
		updates["shipping_country"] = details.ShippingCountry
	}
	if details.ShippingPhone != nil {
		updates["shipping_phone"] = details.ShippingPhone
	}

	if len(updates) > 0 {
		if err := s.db.Model(&order).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetOrderByID(id)
}

// UpdateOrderStatus sets the order's status unconditionally. Used by direct
// admin/artisan edits; arbitrary jumps are allowed here, only the dedicated
// cancel operation enforces the shipment guard.
func (s *OrderService) UpdateOrderStatus(id uint, status string) (*models.Order, error) {
	if !validOrderStatuses[status] {
		return nil, validationErr("invalid order status: %s", status)
	}

	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("order not found with id: %d", id)
		}
		return nil, err
	}

	if err := s.db.Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}
	return s.GetOrderByID(id)
}

// CancelOrder transitions an order to CANCELLED. Only PENDING and PROCESSING
// orders can be cancelled; shipped or delivered orders report a conflict.
func (s *OrderService) CancelOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("order not found with id: %d", id)
		}
		return nil, err
	}

	if order.Status == models.OrderStatusShipped || order.Status == models.OrderStatusDelivered {
		return nil, conflictErr("cannot cancel order that has been shipped or delivered")
	}

	if err := s.db.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
		return nil, err
	}
	return s.GetOrderByID(id)
}

// UpdateOrderItemStatus sets the status of the item's parent order; statuses
// are tracked at the order level, not per item. When the order transitions
// into DELIVERED, the stock of every ordered product is decremented by the
// ordered quantity, floored at zero. The decrement is a best-effort batch:
// each item is attempted independently and failures are logged and skipped
// without aborting the status change or sibling items.
func (s *OrderService) UpdateOrderItemStatus(itemID uint, status string) (*models.Order, error) {
	if !validOrderStatuses[status] {
		return nil, validationErr("invalid order status: %s", status)
	}

	var item models.OrderItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("order item not found with id: %d", itemID)
		}
		return nil, err
	}

	order, err := s.GetOrderByID(item.OrderID)
	if err != nil {
		return nil, err
	}
	previousStatus := order.Status

	if err := s.db.Model(order).Update("status", status).Error; err != nil {
		return nil, err
	}

	if status == models.OrderStatusDelivered && previousStatus != models.OrderStatusDelivered {
		s.reduceStockForOrder(order)
	}

	return s.GetOrderByID(order.ID)
}

// reduceStockForOrder decrements stock for every item of a delivered order,
// floored at zero. Per-item failures must not block sibling items or the
// already-committed status change.
func (s *OrderService) reduceStockForOrder(order *models.Order) {
	for _, item := range order.OrderItems {
		product, err := s.products.GetProductByID(item.ProductID)
		if err != nil {
			log.Printf("Failed to update stock for order item %d: %v", item.ID, err)
			continue
		}

		newStock := product.StockQuantity - item.Quantity
		if newStock < 0 {
			newStock = 0
		}

		if _, err := s.products.UpdateProductStock(product.ID, newStock); err != nil {
			log.Printf("Failed to update stock for order item %d: %v", item.ID, err)
			continue
		}
		log.Printf("Stock updated for product %q: %d -> %d (reduced by %d)",
			product.Name, product.StockQuantity, newStock, item.Quantity)
	}
}

// GetOrderWithArtisanItems returns a read model of the order whose items are
// filtered to the acting artisan's products. An order that exists but holds
// none of the artisan's items is reported as not found.
func (s *OrderService) GetOrderWithArtisanItems(orderID uint, artisan *models.User) (*models.Order, error) {
	if artisan == nil || artisan.Role != models.RoleArtisan {
		return nil, forbiddenErr("only artisans can access order details")
	}

	order, err := s.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	var artisanItems []models.OrderItem
	for _, item := range order.OrderItems {
		if item.Product.Artisan.UserID == artisan.ID {
			artisanItems = append(artisanItems, item)
		}
	}

	if len(artisanItems) == 0 {
		return nil, notFoundErr("order does not contain any products of this artisan")
	}

	filtered := *order
	filtered.OrderItems = artisanItems
	return &filtered, nil
}

// GetOrdersForCurrentArtisan lists the distinct orders containing at least
// one item owned by the acting artisan, newest first.
func (s *OrderService) GetOrdersForCurrentArtisan(artisan *models.User) ([]models.Order, error) {
	if artisan == nil || artisan.Role != models.RoleArtisan {
		return nil, forbiddenErr("only artisans can access their orders")
	}

	var orders []models.Order
	err := s.db.Preload("Customer").
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Preload("OrderItems.Product.Artisan").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN artisan_profiles ON artisan_profiles.id = products.artisan_id").
		Where("artisan_profiles.user_id = ?", artisan.ID).
		Group("orders.id").
		Order("orders.created_at DESC").
		Find(&orders).Error
	return orders, err
}

// DeleteOrder removes an order and, by cascade, its items.
func (s *OrderService) DeleteOrder(id uint) error {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("order not found with id: %d", id)
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

func (s *OrderService) validateOrder(order *models.Order) error {
	if order.TotalPrice <= 0 {
		return validationErr("order total price must be greater than zero")
	}
	if strings.TrimSpace(order.ShippingName) == "" {
		return validationErr("shipping name is required")
	}
	if strings.TrimSpace(order.ShippingAddressLine1) == "" {
		return validationErr("shipping address is required")
	}
	if strings.TrimSpace(order.ShippingCity) == "" {
		return validationErr("shipping city is required")
	}
	if strings.TrimSpace(order.ShippingPostalCode) == "" {
		return validationErr("shipping postal code is required")
	}
	if strings.TrimSpace(order.ShippingCountry) == "" {
		return validationErr("shipping country is required")
	}

	hasGuestEmail := order.GuestEmail != nil && strings.TrimSpace(*order.GuestEmail) != ""
	if order.CustomerID == nil && !hasGuestEmail {
		return validationErr("either customer or guest email must be provided")
	}
	if order.CustomerID != nil && hasGuestEmail {
		return validationErr("cannot have both customer and guest email")
	}
	return nil
}
