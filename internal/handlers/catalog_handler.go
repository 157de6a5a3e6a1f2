package handlers

import (
	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for products and variants.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	sellerOnly := middleware.RequireRole(models.RoleSeller)
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", sellerOnly, h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/:id/variants", sellerOnly, h.HandleCreateVariant)
}

// HandleListProducts lists products, optionally filtered by seller,
// category or name.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(repositories.ProductFilter{
		SellerID:   c.Query("seller_id"),
		CategoryID: c.Query("category_id"),
		Name:       c.Query("name"),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, products)
}

// HandleGetProduct returns one product with variants and inventories.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusOK, product)
}

// CreateProductRequest is the body of POST /products.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	CategoryID  string `json:"category_id" validate:"omitempty"`
}

// HandleCreateProduct lists a new product for the authenticated seller.
func (h *CatalogHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return errorResponse(c, err)
	}

	product, err := h.service.CreateProduct(currentUserID(c), &models.Product{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, product)
}

// CreateVariantRequest is the body of POST /products/:id/variants.
type CreateVariantRequest struct {
	Color       string  `json:"color" validate:"omitempty,max=50"`
	Image       string  `json:"image" validate:"omitempty,max=255"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Inventories []struct {
		Size     string `json:"size" validate:"required,max=20"`
		Quantity int    `json:"quantity" validate:"gte=0"`
	} `json:"inventories" validate:"required,min=1,dive"`
}

// HandleCreateVariant adds a variant with inventory buckets to one of
// the caller's products. The SKU is generated server-side.
func (h *CatalogHandler) HandleCreateVariant(c *fiber.Ctx) error {
	var req CreateVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return errorResponse(c, err)
	}

	inventories := make([]models.Inventory, 0, len(req.Inventories))
	for _, inv := range req.Inventories {
		inventories = append(inventories, models.Inventory{
			Size:     inv.Size,
			Quantity: inv.Quantity,
		})
	}

	variant, err := h.service.CreateVariant(currentUserID(c), c.Params("id"), &models.ProductVariant{
		Color: req.Color,
		Image: req.Image,
		Price: req.Price,
	}, inventories)
	if err != nil {
		return errorResponse(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, variant)
}
