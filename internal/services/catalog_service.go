package services

import (
	"fmt"
	"strings"

	"lapak/internal/apperrors"
	"lapak/internal/models"
	"lapak/internal/repositories"

	"github.com/google/uuid"
)

// CatalogService handles product listings and variant/inventory
// creation. The cart and checkout flows consume the catalog read-only.
type CatalogService struct {
	catalogRepo repositories.CatalogRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalogRepo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
	}
}

// ListProducts retrieves products matching the filter.
func (s *CatalogService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.catalogRepo.ListProducts(filter)
}

// GetProduct retrieves a single product with variants and inventories.
func (s *CatalogService) GetProduct(id string) (*models.Product, error) {
	return s.catalogRepo.GetProduct(id)
}

// CreateProduct lists a new product for the seller.
func (s *CatalogService) CreateProduct(sellerID string, product *models.Product) (*models.Product, error) {
	product.SellerID = sellerID
	if err := s.catalogRepo.CreateProduct(product); err != nil {
		return nil, err
	}
	return product, nil
}

// CreateVariant adds a variant with its inventory buckets to one of the
// seller's products. The SKU is system-generated and unique.
func (s *CatalogService) CreateVariant(sellerID, productID string, variant *models.ProductVariant, inventories []models.Inventory) (*models.ProductVariant, error) {
	product, err := s.catalogRepo.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		// Another seller's product looks absent to this seller.
		return nil, apperrors.NewNotFound("product", productID)
	}

	variant.ProductID = product.ID
	variant.SKU = generateSKU(product.Name, variant.Color)
	if err := s.catalogRepo.CreateVariant(variant, inventories); err != nil {
		return nil, err
	}
	return variant, nil
}

// generateSKU builds a unique SKU from the product name, the color and
// a random suffix, e.g. "KEM-MER-1A2B3C4D".
func generateSKU(productName, color string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("%s-%s-%s", skuPrefix(productName), skuPrefix(color), suffix)
}

// skuPrefix takes the first three alphanumeric characters, uppercased.
func skuPrefix(s string) string {
	var out []rune
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			out = append(out, r)
			if len(out) == 3 {
				break
			}
		}
	}
	if len(out) == 0 {
		return "SKU"
	}
	return string(out)
}
