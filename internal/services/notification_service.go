package services

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// notificationInboxLimit caps how many notifications an inbox listing returns.
const notificationInboxLimit = 10

// dispatchMaxAttempts and dispatchBackoff bound the retry loop the
// order-placed dispatcher runs before giving up on a fan-out.
const (
	dispatchMaxAttempts = 3
	dispatchBackoff     = 2 * time.Second
)

// NotificationService derives per-seller order summaries from placed
// orders and manages the seller and user notification inboxes.
type NotificationService struct {
	orderRepo repositories.OrderRepository
	notifRepo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(orderRepo repositories.OrderRepository, notifRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{
		orderRepo: orderRepo,
		notifRepo: notifRepo,
	}
}

// Inbox bundles a notification listing with the owner's unread count.
type Inbox struct {
	Data        interface{} `json:"data"`
	TotalUnread int64       `json:"total_unread"`
}

// sellerGroup accumulates one seller's share of an order.
type sellerGroup struct {
	itemCount   int
	totalAmount float64
}

// NotifyNewOrder groups the order's items by the seller owning each
// item's product and creates one SellerNotification per seller, plus a
// single UserNotification summarizing the whole order for the buyer.
// Items whose variant/product chain cannot be resolved are skipped with
// a warning so one broken reference never silences the other sellers.
func (s *NotificationService) NotifyNewOrder(orderID string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("failed to load order %s for notification: %w", orderID, err)
	}

	groups := make(map[string]*sellerGroup)
	for _, item := range order.Items {
		if item.ProductVariant == nil || item.ProductVariant.Product == nil ||
			item.ProductVariant.Product.SellerID == "" {
			log.Printf("Warning: missing seller chain for order item %s, skipping", item.ID)
			continue
		}
		sellerID := item.ProductVariant.Product.SellerID
		group, ok := groups[sellerID]
		if !ok {
			group = &sellerGroup{}
			groups[sellerID] = group
		}
		group.itemCount++ // Line count, not summed quantities
		group.totalAmount += item.Subtotal
	}

	var firstErr error
	totalItems := 0
	totalAmount := 0.0
	for sellerID, group := range groups {
		totalItems += group.itemCount
		totalAmount += group.totalAmount

		notification := &models.SellerNotification{
			SellerID: sellerID,
			OrderID:  order.ID,
			Title:    "New Order Received",
			Message: fmt.Sprintf("You have received a new order with %d item(s) worth Rp %s",
				group.itemCount, formatRupiah(group.totalAmount)),
		}
		if err := s.notifRepo.CreateSellerNotification(notification); err != nil {
			log.Printf("Error creating notification for seller %s on order %s: %v", sellerID, order.ID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	userNotification := &models.UserNotification{
		UserID:  order.UserID,
		OrderID: order.ID,
		Title:   "Order Confirmation",
		Message: fmt.Sprintf("Your order with %d item(s) worth Rp %s has been received by the seller.",
			totalItems, formatRupiah(totalAmount)),
	}
	if err := s.notifRepo.CreateUserNotification(userNotification); err != nil {
		log.Printf("Error creating order confirmation for user %s on order %s: %v", order.UserID, order.ID, err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// HandleOrderPlaced is the broker consumer entry point. It retries the
// fan-out a bounded number of times with backoff, then acknowledges by
// returning nil so a poison order cannot wedge the queue.
func (s *NotificationService) HandleOrderPlaced(orderID string) error {
	var err error
	for attempt := 1; attempt <= dispatchMaxAttempts; attempt++ {
		if err = s.NotifyNewOrder(orderID); err == nil {
			return nil
		}
		log.Printf("Notification fan-out attempt %d/%d failed for order %s: %v",
			attempt, dispatchMaxAttempts, orderID, err)
		if attempt < dispatchMaxAttempts {
			time.Sleep(dispatchBackoff * time.Duration(attempt))
		}
	}
	log.Printf("Giving up on notification fan-out for order %s: %v", orderID, err)
	return nil
}

// NotifyOrderStatusUpdate tells the buyer their order moved to a new
// status. Called by the fulfillment flow.
func (s *NotificationService) NotifyOrderStatusUpdate(order *models.Order, newStatus string) error {
	notification := &models.UserNotification{
		UserID:  order.UserID,
		OrderID: order.ID,
		Title:   "Order Status Update",
		Message: fmt.Sprintf("Your order status has been updated to: %s", newStatus),
	}
	if err := s.notifRepo.CreateUserNotification(notification); err != nil {
		return fmt.Errorf("failed to create status update notification for order %s: %w", order.ID, err)
	}
	return nil
}

// GetSellerInbox returns the seller's latest notifications and unread count.
func (s *NotificationService) GetSellerInbox(sellerID string) (*Inbox, error) {
	notifications, err := s.notifRepo.ListSellerNotifications(sellerID, notificationInboxLimit)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifRepo.CountUnreadSeller(sellerID)
	if err != nil {
		return nil, err
	}
	return &Inbox{Data: notifications, TotalUnread: unread}, nil
}

// GetUserInbox returns the user's latest notifications and unread count.
func (s *NotificationService) GetUserInbox(userID string) (*Inbox, error) {
	notifications, err := s.notifRepo.ListUserNotifications(userID, notificationInboxLimit)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifRepo.CountUnreadUser(userID)
	if err != nil {
		return nil, err
	}
	return &Inbox{Data: notifications, TotalUnread: unread}, nil
}

// MarkSellerNotificationRead flags a seller's notification as read.
func (s *NotificationService) MarkSellerNotificationRead(id, sellerID string) (*models.SellerNotification, error) {
	return s.notifRepo.MarkSellerNotificationRead(id, sellerID)
}

// MarkUserNotificationRead flags a user's notification as read.
func (s *NotificationService) MarkUserNotificationRead(id, userID string) (*models.UserNotification, error) {
	return s.notifRepo.MarkUserNotificationRead(id, userID)
}

// DeleteSellerNotification removes a seller's notification.
func (s *NotificationService) DeleteSellerNotification(id, sellerID string) error {
	return s.notifRepo.DeleteSellerNotification(id, sellerID)
}

// DeleteUserNotification removes a user's notification.
func (s *NotificationService) DeleteUserNotification(id, userID string) error {
	return s.notifRepo.DeleteUserNotification(id, userID)
}

// formatRupiah renders a whole-rupiah amount with Indonesian digit
// grouping: 200000 -> "200.000".
func formatRupiah(amount float64) string {
	digits := strconv.FormatInt(int64(math.Round(amount)), 10)
	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	if negative {
		return "-" + string(out)
	}
	return string(out)
}
