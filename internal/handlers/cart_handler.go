package handlers

import (
	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the cart, checkout and order
// history surface under /order.
type CartHandler struct {
	cartService     *services.CartService
	checkoutService *services.CheckoutService
	queryService    *services.OrderQueryService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService, checkoutService *services.CheckoutService, queryService *services.OrderQueryService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
		queryService:    queryService,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/order")
	orderRoutes.Get("/", h.HandleGetOrCreateCart)
	orderRoutes.Post("/", h.HandleAddToCart)
	orderRoutes.Patch("/items/:id/quantity", h.HandleUpdateItemQuantity)
	orderRoutes.Delete("/items/:id", h.HandleRemoveItem)
	orderRoutes.Delete("/clear", h.HandleClearCart)
	orderRoutes.Post("/checkout", h.HandleCheckout)
	orderRoutes.Get("/orders", h.HandleGetUserOrders)

	sellerOnly := middleware.RequireRole(models.RoleSeller)
	orderRoutes.Get("/seller", sellerOnly, h.HandleGetSellerOrders)
	orderRoutes.Get("/seller/report", sellerOnly, h.HandleGetSellerSalesReport)
	orderRoutes.Get("/seller/buyers/:id", sellerOnly, h.HandleGetBuyerOrderDetails)
	orderRoutes.Patch("/:id/status", sellerOnly, h.HandleUpdateOrderStatus)
}

// HandleGetOrCreateCart returns the caller's active cart, creating one
// if needed.
func (h *CartHandler) HandleGetOrCreateCart(c *fiber.Ctx) error {
	cart, err := h.cartService.GetOrCreateCart(currentUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, cart)
}

// AddToCartRequest is the body of POST /order.
type AddToCartRequest struct {
	VariantID   string `json:"variant_id" validate:"required"`
	InventoryID string `json:"inventory_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
}

// HandleAddToCart adds an item to the caller's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return errorResponse(c, err)
	}

	cart, err := h.cartService.AddItem(currentUserID(c), req.VariantID, req.InventoryID, req.Quantity)
	if err != nil {
		return errorResponse(c, err)
	}
	return messageResponse(c, fiber.StatusOK, "Item added to cart successfully", cart)
}

// UpdateQuantityRequest is the body of PATCH /order/items/:id/quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// HandleUpdateItemQuantity sets the quantity of a cart line.
func (h *CartHandler) HandleUpdateItemQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return errorResponse(c, err)
	}

	cart, err := h.cartService.UpdateItemQuantity(currentUserID(c), c.Params("id"), req.Quantity)
	if err != nil {
		return errorResponse(c, err)
	}
	return messageResponse(c, fiber.StatusOK, "Order item quantity updated", cart)
}

// HandleRemoveItem deletes a line from the caller's cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart, err := h.cartService.RemoveItem(currentUserID(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return messageResponse(c, fiber.StatusOK, "Order item removed successfully", cart)
}

// HandleClearCart empties the caller's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	cart, err := h.cartService.Clear(currentUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return messageResponse(c, fiber.StatusOK, "Cart cleared successfully", cart)
}

// CheckoutRequest is the body of POST /order/checkout.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	PaymentMethod   string `json:"payment_method" validate:"required"`
	BankName        string `json:"bank_name" validate:"omitempty"`
	VirtualAccount  string `json:"virtual_account" validate:"omitempty"`
}

// HandleCheckout transitions the caller's cart into a placed order.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return errorResponse(c, err)
	}

	order, err := h.checkoutService.Checkout(currentUserID(c), models.CheckoutInfo{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		BankName:        req.BankName,
		VirtualAccount:  req.VirtualAccount,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, order)
}

// HandleGetUserOrders returns the caller's placed orders, newest first.
func (h *CartHandler) HandleGetUserOrders(c *fiber.Ctx) error {
	orders, err := h.queryService.GetUserOrders(currentUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, orders)
}

// HandleGetSellerOrders returns placed orders containing the caller's
// products, trimmed to the caller's lines.
func (h *CartHandler) HandleGetSellerOrders(c *fiber.Ctx) error {
	orders, err := h.queryService.GetSellerOrders(currentUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, orders)
}

// HandleGetSellerSalesReport returns the caller's sales report.
func (h *CartHandler) HandleGetSellerSalesReport(c *fiber.Ctx) error {
	report, err := h.queryService.GetSellerSalesReport(currentUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, report)
}

// HandleGetBuyerOrderDetails returns one buyer's purchases of the
// caller's products.
func (h *CartHandler) HandleGetBuyerOrderDetails(c *fiber.Ctx) error {
	lines, err := h.queryService.GetBuyerOrderDetails(currentUserID(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, lines)
}

// UpdateStatusRequest is the body of PATCH /order/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus advances a placed order's fulfillment status.
func (h *CartHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return errorResponse(c, err)
	}

	// Sellers may only touch orders containing their own products;
	// admins update unscoped.
	sellerID := currentUserID(c)
	if currentRole(c) == models.RoleAdmin {
		sellerID = ""
	}
	if err := h.checkoutService.UpdateOrderStatus(sellerID, c.Params("id"), req.Status); err != nil {
		return errorResponse(c, err)
	}
	return messageResponse(c, fiber.StatusOK, "Order status updated", nil)
}
