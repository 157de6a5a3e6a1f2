package repositories

import "lapak/internal/models"

// ProductFilter narrows product listings. Zero-valued fields are ignored,
// so callers build exactly the query they need without assembling SQL.
type ProductFilter struct {
	SellerID   string
	CategoryID string
	Name       string // Substring match on product name
}

// CatalogRepository defines the interface for product, variant and
// inventory data access. The cart and checkout flows read variants and
// inventory buckets through it; DecrementInventory is the one write the
// checkout transition performs against stock.
type CatalogRepository interface {
	ListProducts(filter ProductFilter) ([]models.Product, error)
	GetProduct(id string) (*models.Product, error)
	CreateProduct(product *models.Product) error
	GetVariant(id string) (*models.ProductVariant, error)
	CreateVariant(variant *models.ProductVariant, inventories []models.Inventory) error
	GetInventory(id string) (*models.Inventory, error)
	DecrementInventory(inventoryID string, amount int) error
}
