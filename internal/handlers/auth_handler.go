package handlers

import (
	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// RegisterRoutes registers the public auth routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
}

// RegisterProtectedRoutes registers auth routes that require a token.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/user", h.HandleGetUser)
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user seller admin"`
}

// HandleRegister creates a new account.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return errorResponse(c, err)
	}

	user := &models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	if err := h.service.RegisterUser(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}
	return messageResponse(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user and returns a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return errorResponse(c, err)
	}

	token, err := h.service.LoginUser(req.Username, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid credentials",
		})
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"token": token})
}

// HandleGetUser returns the authenticated user's profile.
func (h *AuthHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.service.GetUser(currentUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, user)
}
