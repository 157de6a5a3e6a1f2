package repositories

import "lapak/internal/models"

// OrderFilter narrows order listings. Zero-valued fields are ignored.
type OrderFilter struct {
	UserID      string
	SellerID    string // Orders containing at least one of this seller's products
	Status      string
	ExcludeCart bool // Drop active carts from the result (history views)
}

// VariantSales is one row of a seller's top-selling-variants report.
type VariantSales struct {
	ProductVariantID string  `json:"product_variant_id"`
	ProductName      string  `json:"product_name"`
	TotalQuantity    int     `json:"total_quantity"`
	TotalRevenue     float64 `json:"total_revenue"`
	UniqueBuyers     int     `json:"unique_buyers"`
}

// BuyerSales is one row of a seller's buyer-breakdown report.
type BuyerSales struct {
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name"`
	UserEmail   string  `json:"user_email"`
	TotalOrders int     `json:"total_orders"`
	TotalSpent  float64 `json:"total_spent"`
}

// BuyerOrderLine is one purchased line of a given buyer, scoped to one
// seller's products.
type BuyerOrderLine struct {
	OrderID     string  `json:"order_id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
	ProductName string  `json:"product_name"`
	Color       string  `json:"color"`
	SKU         string  `json:"sku"`
}

// OrderRepository defines the interface for order data access. Cart
// mutations and the checkout transition run as transactions inside the
// implementation so the total-amount invariant and the all-or-nothing
// stock decrement hold regardless of caller behavior.
type OrderRepository interface {
	GetOrCreateCart(userID string) (*models.Order, error)
	GetActiveCart(userID string) (*models.Order, error)
	AddCartItem(cartID, variantID, inventoryID string, quantity int, unitPrice float64) error
	UpdateItemQuantity(cartID, itemID string, quantity int) error
	RemoveItem(cartID, itemID string) error
	ClearCart(cartID string) error
	CheckoutCart(userID string, info models.CheckoutInfo) (*models.Order, error)
	GetByID(id string) (*models.Order, error)
	// UpdateStatus advances a placed order. A non-empty sellerID scopes
	// the update to orders containing that seller's products.
	UpdateStatus(id, status, sellerID string) error
	ListOrders(filter OrderFilter) ([]models.Order, error)
	TopSellingVariants(sellerID string, limit int) ([]VariantSales, error)
	BuyerBreakdown(sellerID string, limit int) ([]BuyerSales, error)
	BuyerOrderLines(sellerID, buyerID string) ([]BuyerOrderLine, error)
}
