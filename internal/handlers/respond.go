package handlers

import (
	"errors"
	"fmt"
	"log"

	"lapak/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validate checks request structs against their validate tags.
var validate = validator.New()

// currentUserID returns the authenticated user's ID placed in the
// request locals by the JWT middleware.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

// currentRole returns the authenticated user's role.
func currentRole(c *fiber.Ctx) string {
	if role, ok := c.Locals("role").(string); ok {
		return role
	}
	return ""
}

// dataResponse writes the success envelope around data.
func dataResponse(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// messageResponse writes the success envelope with a message and
// optional data.
func messageResponse(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{
		"status":  "success",
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// errorResponse maps an error from the service layer onto the HTTP
// error envelope. Anything outside the taxonomy becomes a 500 with the
// detail logged and suppressed from the client.
func errorResponse(c *fiber.Ctx, err error) error {
	var validationErr *apperrors.ValidationError
	var notFoundErr *apperrors.NotFoundError
	var stockErr *apperrors.InsufficientStockError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   validationErr.Error(),
		})
	case errors.As(err, &fieldErrs):
		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   details,
		})
	case errors.Is(err, apperrors.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cart is empty",
		})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Insufficient stock",
			"error":   stockErr.Error(),
		})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": notFoundErr.Error(),
		})
	case errors.Is(err, apperrors.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "error",
			"message": "Conflicting concurrent update, please retry",
		})
	default:
		log.Printf("Unexpected error handling %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
		})
	}
}
