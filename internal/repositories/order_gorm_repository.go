package repositories

import (
	"errors"
	"fmt"
	"time"

	"lapak/internal/apperrors"
	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// cartPreloads resolves an order's items down to product, category and
// inventory bucket, the shape every cart and order read returns.
func cartPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items.ProductVariant.Product.Category").
		Preload("Items.Inventory")
}

// sellerOrderIDs builds a subquery selecting the IDs of orders that
// contain at least one of the seller's products.
func sellerOrderIDs(db *gorm.DB, sellerID string) *gorm.DB {
	return db.
		Table("order_items oi").
		Select("oi.order_id").
		Joins("JOIN product_variants pv ON oi.product_variant_id = pv.id").
		Joins("JOIN products p ON pv.product_id = p.id").
		Where("p.seller_id = ?", sellerID)
}

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetOrCreateCart returns the user's active cart, creating an empty one
// if none exists. Items come back fully resolved.
func (r *GORMOrderRepository) GetOrCreateCart(userID string) (*models.Order, error) {
	var cart models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&cart, "user_id = ? AND status = ?", userID, models.StatusCart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = models.Order{
				ID:          uuid.New().String(),
				UserID:      userID,
				Status:      models.StatusCart,
				TotalAmount: 0,
			}
			if createErr := tx.Create(&cart).Error; createErr != nil {
				// The partial unique index on (user_id) WHERE status='cart'
				// rejects a second active cart; a concurrent request won
				// the race, so take its cart instead.
				if reErr := tx.First(&cart, "user_id = ? AND status = ?", userID, models.StatusCart).Error; reErr == nil {
					return nil
				}
				return createErr
			}
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart for user %s: %w", userID, err)
	}
	return r.GetByID(cart.ID)
}

// GetActiveCart returns the user's active cart with items resolved, or
// NotFound when the user has no cart.
func (r *GORMOrderRepository) GetActiveCart(userID string) (*models.Order, error) {
	var cart models.Order
	err := cartPreloads(r.db).
		First(&cart, "user_id = ? AND status = ?", userID, models.StatusCart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("cart", "")
		}
		return nil, fmt.Errorf("failed to get active cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// AddCartItem adds quantity of a variant/inventory pair to the cart. A
// line already holding that exact pair is merged: its quantity grows and
// its price and subtotal are refreshed from the current variant price.
// The cart total is recomputed in the same transaction.
func (r *GORMOrderRepository) AddCartItem(cartID, variantID, inventoryID string, quantity int, unitPrice float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.OrderItem
		err := tx.First(&existing,
			"order_id = ? AND product_variant_id = ? AND inventory_id = ?",
			cartID, variantID, inventoryID).Error
		switch {
		case err == nil:
			newQuantity := existing.Quantity + quantity
			err = tx.Model(&existing).Updates(map[string]interface{}{
				"quantity": newQuantity,
				"price":    unitPrice,
				"subtotal": unitPrice * float64(newQuantity),
			}).Error
			if err != nil {
				return fmt.Errorf("failed to update cart item %s: %w", existing.ID, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item := models.OrderItem{
				ID:               uuid.New().String(),
				OrderID:          cartID,
				ProductVariantID: variantID,
				InventoryID:      inventoryID,
				Quantity:         quantity,
				Price:            unitPrice,
				Subtotal:         unitPrice * float64(quantity),
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create cart item: %w", err)
			}
		default:
			return fmt.Errorf("failed to look up cart item: %w", err)
		}
		return recomputeTotal(tx, cartID)
	})
}

// UpdateItemQuantity sets a cart line's quantity and recomputes its
// subtotal from the stored price snapshot and the cart total.
func (r *GORMOrderRepository) UpdateItemQuantity(cartID, itemID string, quantity int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		err := tx.First(&item, "id = ? AND order_id = ?", itemID, cartID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("order item", itemID)
			}
			return fmt.Errorf("failed to look up cart item %s: %w", itemID, err)
		}
		err = tx.Model(&item).Updates(map[string]interface{}{
			"quantity": quantity,
			"subtotal": item.Price * float64(quantity),
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update quantity for item %s: %w", itemID, err)
		}
		return recomputeTotal(tx, cartID)
	})
}

// RemoveItem deletes a cart line and recomputes the cart total.
func (r *GORMOrderRepository) RemoveItem(cartID, itemID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.OrderItem{}, "id = ? AND order_id = ?", itemID, cartID)
		if res.Error != nil {
			return fmt.Errorf("failed to remove cart item %s: %w", itemID, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NewNotFound("order item", itemID)
		}
		return recomputeTotal(tx, cartID)
	})
}

// ClearCart deletes every line of the cart and zeroes its total.
func (r *GORMOrderRepository) ClearCart(cartID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderItem{}, "order_id = ?", cartID).Error; err != nil {
			return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
		}
		err := tx.Model(&models.Order{}).Where("id = ?", cartID).
			Update("total_amount", 0).Error
		if err != nil {
			return fmt.Errorf("failed to reset cart total for %s: %w", cartID, err)
		}
		return nil
	})
}

// CheckoutCart transitions the user's cart to pending inside one
// transaction: every referenced inventory bucket is conditionally
// decremented, then the order is stamped with shipping/payment details
// and checkout_at. Any failure rolls the whole transition back, leaving
// stock and order untouched. Only orders in cart status are reachable,
// so a checked-out order cannot be checked out again.
func (r *GORMOrderRepository) CheckoutCart(userID string, info models.CheckoutInfo) (*models.Order, error) {
	var orderID string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Order
		err := tx.Preload("Items").
			First(&cart, "user_id = ? AND status = ?", userID, models.StatusCart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrEmptyCart
			}
			return fmt.Errorf("failed to load cart for user %s: %w", userID, err)
		}
		if len(cart.Items) == 0 {
			return apperrors.ErrEmptyCart
		}

		for _, item := range cart.Items {
			if err := decrementInventory(tx, item.InventoryID, item.Quantity); err != nil {
				return err
			}
		}

		now := time.Now()
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", cart.ID, models.StatusCart).
			Updates(map[string]interface{}{
				"status":           models.StatusPending,
				"shipping_address": info.ShippingAddress,
				"payment_method":   info.PaymentMethod,
				"bank_name":        info.BankName,
				"virtual_account":  info.VirtualAccount,
				"checkout_at":      now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to transition order %s to pending: %w", cart.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			// A concurrent checkout moved the cart out from under us.
			return apperrors.ErrConflict
		}
		orderID = cart.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(orderID)
}

// GetByID retrieves an order with items fully resolved.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := cartPreloads(r.db).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("order", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// UpdateStatus moves a placed order to a new fulfillment status. When
// sellerID is set the update only reaches orders containing that
// seller's products; another seller's order looks absent to the caller.
func (r *GORMOrderRepository) UpdateStatus(id, status, sellerID string) error {
	query := r.db.Model(&models.Order{}).
		Where("id = ? AND status <> ?", id, models.StatusCart)
	if sellerID != "" {
		query = query.Where("id IN (?)", sellerOrderIDs(r.db, sellerID))
	}
	res := query.Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("order", id)
	}
	return nil
}

// ListOrders retrieves orders matching the filter, newest first, with
// items fully resolved.
func (r *GORMOrderRepository) ListOrders(filter OrderFilter) ([]models.Order, error) {
	query := cartPreloads(r.db).Order("created_at DESC")
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ExcludeCart {
		query = query.Where("status <> ?", models.StatusCart)
	}
	if filter.SellerID != "" {
		query = query.Where("id IN (?)", sellerOrderIDs(r.db, filter.SellerID))
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// TopSellingVariants returns the seller's best-selling variants by units
// sold across placed orders.
func (r *GORMOrderRepository) TopSellingVariants(sellerID string, limit int) ([]VariantSales, error) {
	var rows []VariantSales
	err := r.db.
		Table("order_items oi").
		Select("pv.id AS product_variant_id, p.name AS product_name, "+
			"SUM(oi.quantity) AS total_quantity, SUM(oi.subtotal) AS total_revenue, "+
			"COUNT(DISTINCT o.user_id) AS unique_buyers").
		Joins("JOIN orders o ON oi.order_id = o.id").
		Joins("JOIN product_variants pv ON oi.product_variant_id = pv.id").
		Joins("JOIN products p ON pv.product_id = p.id").
		Where("p.seller_id = ? AND o.status <> ?", sellerID, models.StatusCart).
		Group("pv.id, p.name").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build sales report for seller %s: %w", sellerID, err)
	}
	return rows, nil
}

// BuyerBreakdown returns the seller's top buyers by total spend across
// placed orders.
func (r *GORMOrderRepository) BuyerBreakdown(sellerID string, limit int) ([]BuyerSales, error) {
	var rows []BuyerSales
	err := r.db.
		Table("orders o").
		Select("u.id AS user_id, u.name AS user_name, u.email AS user_email, "+
			"COUNT(DISTINCT o.id) AS total_orders, SUM(o.total_amount) AS total_spent").
		Joins("JOIN order_items oi ON o.id = oi.order_id").
		Joins("JOIN product_variants pv ON oi.product_variant_id = pv.id").
		Joins("JOIN products p ON pv.product_id = p.id").
		Joins("JOIN users u ON o.user_id = u.id").
		Where("p.seller_id = ? AND o.status <> ?", sellerID, models.StatusCart).
		Group("u.id, u.name, u.email").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build buyer breakdown for seller %s: %w", sellerID, err)
	}
	return rows, nil
}

// BuyerOrderLines returns every purchased line of one buyer that belongs
// to the seller's products.
func (r *GORMOrderRepository) BuyerOrderLines(sellerID, buyerID string) ([]BuyerOrderLine, error) {
	var rows []BuyerOrderLine
	err := r.db.
		Table("orders o").
		Select("o.id AS order_id, o.status, o.total_amount, oi.quantity, oi.price, "+
			"oi.subtotal, p.name AS product_name, pv.color, pv.sku").
		Joins("JOIN order_items oi ON o.id = oi.order_id").
		Joins("JOIN product_variants pv ON oi.product_variant_id = pv.id").
		Joins("JOIN products p ON pv.product_id = p.id").
		Where("p.seller_id = ? AND o.user_id = ? AND o.status <> ?", sellerID, buyerID, models.StatusCart).
		Order("o.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer %s orders for seller %s: %w", buyerID, sellerID, err)
	}
	return rows, nil
}

// recomputeTotal sets the order's total_amount to the sum of its items'
// subtotals, the single source of truth after every cart mutation.
func recomputeTotal(tx *gorm.DB, orderID string) error {
	err := tx.Model(&models.Order{}).Where("id = ?", orderID).
		Update("total_amount", tx.Session(&gorm.Session{NewDB: true}).
			Table("order_items").
			Select("COALESCE(SUM(subtotal), 0)").
			Where("order_id = ?", orderID)).Error
	if err != nil {
		return fmt.Errorf("failed to recompute total for order %s: %w", orderID, err)
	}
	return nil
}
