package repositories

import "lapak/internal/models"

// NotificationRepository defines the interface for seller and user
// notification data access. Reads and writes are ownership-scoped: a
// notification can only be read back, marked or deleted by the seller or
// user it was addressed to.
type NotificationRepository interface {
	CreateSellerNotification(n *models.SellerNotification) error
	CreateUserNotification(n *models.UserNotification) error
	ListSellerNotifications(sellerID string, limit int) ([]models.SellerNotification, error)
	ListUserNotifications(userID string, limit int) ([]models.UserNotification, error)
	CountUnreadSeller(sellerID string) (int64, error)
	CountUnreadUser(userID string) (int64, error)
	MarkSellerNotificationRead(id, sellerID string) (*models.SellerNotification, error)
	MarkUserNotificationRead(id, userID string) (*models.UserNotification, error)
	DeleteSellerNotification(id, sellerID string) error
	DeleteUserNotification(id, userID string) error
}
