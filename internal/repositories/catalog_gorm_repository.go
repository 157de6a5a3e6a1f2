package repositories

import (
	"errors"
	"fmt"

	"lapak/internal/apperrors"
	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// ListProducts retrieves products matching the filter, with variants and
// their inventory buckets resolved.
func (r *GORMCatalogRepository) ListProducts(filter ProductFilter) ([]models.Product, error) {
	query := r.db.Preload("Category").Preload("Variants.Inventories")
	if filter.SellerID != "" {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a single product with its variants and inventories.
func (r *GORMCatalogRepository) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").Preload("Variants.Inventories").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("product", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// CreateProduct creates a new product in the database.
func (r *GORMCatalogRepository) CreateProduct(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetVariant retrieves a variant with its product and category resolved.
func (r *GORMCatalogRepository) GetVariant(id string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.Preload("Product.Category").First(&variant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("product variant", id)
		}
		return nil, fmt.Errorf("failed to get variant by ID %s: %w", id, err)
	}
	return &variant, nil
}

// CreateVariant creates a variant together with its inventory buckets in
// one transaction.
func (r *GORMCatalogRepository) CreateVariant(variant *models.ProductVariant, inventories []models.Inventory) error {
	if variant.ID == "" {
		variant.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(variant).Error; err != nil {
			return fmt.Errorf("failed to create variant: %w", err)
		}
		for i := range inventories {
			if inventories[i].ID == "" {
				inventories[i].ID = uuid.New().String()
			}
			inventories[i].ProductVariantID = variant.ID
			if err := tx.Create(&inventories[i]).Error; err != nil {
				return fmt.Errorf("failed to create inventory bucket: %w", err)
			}
		}
		variant.Inventories = inventories
		return nil
	})
}

// GetInventory retrieves a single inventory bucket by its ID.
func (r *GORMCatalogRepository) GetInventory(id string) (*models.Inventory, error) {
	var inventory models.Inventory
	if err := r.db.First(&inventory, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("inventory", id)
		}
		return nil, fmt.Errorf("failed to get inventory by ID %s: %w", id, err)
	}
	return &inventory, nil
}

// DecrementInventory subtracts amount from a bucket's quantity, failing
// with InsufficientStockError rather than letting it go negative.
func (r *GORMCatalogRepository) DecrementInventory(inventoryID string, amount int) error {
	return decrementInventory(r.db, inventoryID, amount)
}

// decrementInventory applies a conditional decrement on the bucket row.
// The WHERE quantity >= ? guard serializes concurrent checkouts against
// the same bucket: of two transactions racing for the last units, the
// second sees zero rows affected and fails instead of over-drawing.
func decrementInventory(tx *gorm.DB, inventoryID string, amount int) error {
	res := tx.Model(&models.Inventory{}).
		Where("id = ? AND quantity >= ?", inventoryID, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement inventory %s: %w", inventoryID, res.Error)
	}
	if res.RowsAffected == 0 {
		var inventory models.Inventory
		if err := tx.First(&inventory, "id = ?", inventoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("inventory", inventoryID)
			}
			return fmt.Errorf("failed to re-read inventory %s: %w", inventoryID, err)
		}
		return &apperrors.InsufficientStockError{
			ProductVariantID: inventory.ProductVariantID,
			Requested:        amount,
			Available:        inventory.Quantity,
		}
	}
	return nil
}
