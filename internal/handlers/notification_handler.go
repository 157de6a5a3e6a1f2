package handlers

import (
	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles the seller and user notification inboxes.
type NotificationHandler struct {
	service *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

// RegisterRoutes registers the notification routes with the Fiber app.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notifRoutes := router.Group("/notifications")
	sellerOnly := middleware.RequireRole(models.RoleSeller)
	notifRoutes.Get("/", sellerOnly, h.HandleGetSellerInbox)
	notifRoutes.Get("/user", h.HandleGetUserInbox)
	notifRoutes.Patch("/:id/read/user", h.HandleMarkUserRead)
	notifRoutes.Patch("/:id/read", sellerOnly, h.HandleMarkSellerRead)
	notifRoutes.Delete("/:id/user", h.HandleDeleteUserNotification)
	notifRoutes.Delete("/:id", sellerOnly, h.HandleDeleteSellerNotification)
}

// HandleGetSellerInbox returns the caller's seller notifications and
// unread count.
func (h *NotificationHandler) HandleGetSellerInbox(c *fiber.Ctx) error {
	inbox, err := h.service.GetSellerInbox(currentUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, inbox)
}

// HandleGetUserInbox returns the caller's user notifications and unread
// count.
func (h *NotificationHandler) HandleGetUserInbox(c *fiber.Ctx) error {
	inbox, err := h.service.GetUserInbox(currentUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, inbox)
}

// HandleMarkSellerRead flags one of the caller's seller notifications as read.
func (h *NotificationHandler) HandleMarkSellerRead(c *fiber.Ctx) error {
	notification, err := h.service.MarkSellerNotificationRead(c.Params("id"), currentUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, notification)
}

// HandleMarkUserRead flags one of the caller's user notifications as read.
func (h *NotificationHandler) HandleMarkUserRead(c *fiber.Ctx) error {
	notification, err := h.service.MarkUserNotificationRead(c.Params("id"), currentUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, notification)
}

// HandleDeleteSellerNotification removes one of the caller's seller
// notifications.
func (h *NotificationHandler) HandleDeleteSellerNotification(c *fiber.Ctx) error {
	if err := h.service.DeleteSellerNotification(c.Params("id"), currentUserID(c)); err != nil {
		return errorResponse(c, err)
	}
	return messageResponse(c, fiber.StatusOK, "Notification deleted", nil)
}

// HandleDeleteUserNotification removes one of the caller's user
// notifications.
func (h *NotificationHandler) HandleDeleteUserNotification(c *fiber.Ctx) error {
	if err := h.service.DeleteUserNotification(c.Params("id"), currentUserID(c)); err != nil {
		return errorResponse(c, err)
	}
	return messageResponse(c, fiber.StatusOK, "Notification deleted", nil)
}
