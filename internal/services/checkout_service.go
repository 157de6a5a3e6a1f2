package services

import (
	"fmt"
	"log"
	"time"

	"lapak/internal/apperrors"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/pkg/rabbitmq"
)

// OrderEventPublisher publishes order.placed events after the checkout
// transaction commits. *rabbitmq.Client satisfies it.
type OrderEventPublisher interface {
	PublishOrderPlaced(event rabbitmq.OrderPlacedEvent) error
}

// CheckoutService drives the cart-to-order transition: stock-validated,
// atomic, with notification fan-out scheduled only after the commit.
type CheckoutService struct {
	orderRepo repositories.OrderRepository
	notifier  *NotificationService
	publisher OrderEventPublisher // May be nil when no broker is configured
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(orderRepo repositories.OrderRepository, notifier *NotificationService, publisher OrderEventPublisher) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		notifier:  notifier,
		publisher: publisher,
	}
}

// Checkout transitions the user's cart to pending. Preconditions are
// checked in order: a non-empty cart, then stock sufficiency per line.
// The decrement and the status transition commit as one unit; the
// notification fan-out is dispatched afterwards and can never fail the
// checkout.
func (s *CheckoutService) Checkout(userID string, info models.CheckoutInfo) (*models.Order, error) {
	if info.ShippingAddress == "" {
		return nil, apperrors.NewValidation("shipping_address", "is required")
	}
	if info.PaymentMethod == "" {
		return nil, apperrors.NewValidation("payment_method", "is required")
	}

	order, err := s.orderRepo.CheckoutCart(userID, info)
	if err != nil {
		return nil, err
	}

	s.dispatchOrderPlaced(order)
	return order, nil
}

// dispatchOrderPlaced hands the committed order to the notification
// pipeline: through the broker when one is configured, otherwise
// directly in a goroutine. Failures are logged, never propagated.
func (s *CheckoutService) dispatchOrderPlaced(order *models.Order) {
	if s.publisher != nil {
		err := s.publisher.PublishOrderPlaced(rabbitmq.OrderPlacedEvent{
			OrderID:  order.ID,
			UserID:   order.UserID,
			PlacedAt: time.Now(),
		})
		if err == nil {
			return
		}
		log.Printf("Warning: failed to publish order placed event for order %s: %v", order.ID, err)
	}
	go func(orderID string) {
		if err := s.notifier.NotifyNewOrder(orderID); err != nil {
			log.Printf("Warning: direct notification fan-out failed for order %s: %v", orderID, err)
		}
	}(order.ID)
}

// UpdateOrderStatus moves a placed order to a new fulfillment status and
// tells the buyer. Invoked by the fulfillment flow, not by checkout.
// sellerID scopes the update to orders containing the acting seller's
// products; pass "" for an unscoped (admin) update.
func (s *CheckoutService) UpdateOrderStatus(sellerID, orderID, status string) error {
	if !models.ValidStatuses[status] || status == models.StatusCart {
		return apperrors.NewValidation("status", fmt.Sprintf("invalid order status: %s", status))
	}

	if err := s.orderRepo.UpdateStatus(orderID, status, sellerID); err != nil {
		return err
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("failed to reload order %s after status update: %w", orderID, err)
	}
	if err := s.notifier.NotifyOrderStatusUpdate(order, status); err != nil {
		log.Printf("Warning: failed to notify user about status update for order %s: %v", orderID, err)
	}
	return nil
}
