package repositories

import (
	"fmt"

	"lapak/internal/apperrors"
	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMNotificationRepository is a GORM implementation of NotificationRepository.
type GORMNotificationRepository struct {
	db *gorm.DB
}

// NewGORMNotificationRepository creates a new instance of GORMNotificationRepository.
func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{
		db: db,
	}
}

// CreateSellerNotification stores a new notification for a seller.
func (r *GORMNotificationRepository) CreateSellerNotification(n *models.SellerNotification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if err := r.db.Create(n).Error; err != nil {
		return fmt.Errorf("failed to create seller notification: %w", err)
	}
	return nil
}

// CreateUserNotification stores a new notification for a user.
func (r *GORMNotificationRepository) CreateUserNotification(n *models.UserNotification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if err := r.db.Create(n).Error; err != nil {
		return fmt.Errorf("failed to create user notification: %w", err)
	}
	return nil
}

// ListSellerNotifications returns the seller's latest notifications.
func (r *GORMNotificationRepository) ListSellerNotifications(sellerID string, limit int) ([]models.SellerNotification, error) {
	var notifications []models.SellerNotification
	err := r.db.Where("seller_id = ?", sellerID).
		Order("created_at DESC").Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for seller %s: %w", sellerID, err)
	}
	return notifications, nil
}

// ListUserNotifications returns the user's latest notifications.
func (r *GORMNotificationRepository) ListUserNotifications(userID string, limit int) ([]models.UserNotification, error) {
	var notifications []models.UserNotification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %s: %w", userID, err)
	}
	return notifications, nil
}

// CountUnreadSeller counts the seller's unread notifications.
func (r *GORMNotificationRepository) CountUnreadSeller(sellerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.SellerNotification{}).
		Where("seller_id = ? AND is_read = ?", sellerID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications for seller %s: %w", sellerID, err)
	}
	return count, nil
}

// CountUnreadUser counts the user's unread notifications.
func (r *GORMNotificationRepository) CountUnreadUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications for user %s: %w", userID, err)
	}
	return count, nil
}

// MarkSellerNotificationRead flags a seller notification as read and
// returns it. NotFound covers both a missing id and someone else's
// notification.
func (r *GORMNotificationRepository) MarkSellerNotificationRead(id, sellerID string) (*models.SellerNotification, error) {
	res := r.db.Model(&models.SellerNotification{}).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Update("is_read", true)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to mark seller notification %s read: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NewNotFound("notification", id)
	}
	var n models.SellerNotification
	if err := r.db.First(&n, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload seller notification %s: %w", id, err)
	}
	return &n, nil
}

// MarkUserNotificationRead flags a user notification as read and returns it.
func (r *GORMNotificationRepository) MarkUserNotificationRead(id, userID string) (*models.UserNotification, error) {
	res := r.db.Model(&models.UserNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to mark user notification %s read: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NewNotFound("notification", id)
	}
	var n models.UserNotification
	if err := r.db.First(&n, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload user notification %s: %w", id, err)
	}
	return &n, nil
}

// DeleteSellerNotification removes a seller's notification.
func (r *GORMNotificationRepository) DeleteSellerNotification(id, sellerID string) error {
	res := r.db.Delete(&models.SellerNotification{}, "id = ? AND seller_id = ?", id, sellerID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete seller notification %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("notification", id)
	}
	return nil
}

// DeleteUserNotification removes a user's notification.
func (r *GORMNotificationRepository) DeleteUserNotification(id, userID string) error {
	res := r.db.Delete(&models.UserNotification{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user notification %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("notification", id)
	}
	return nil
}
