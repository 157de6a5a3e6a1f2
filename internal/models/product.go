package models

import "gorm.io/gorm"

// Category groups products. Managed by an upstream catalog flow; this
// subsystem only reads it when resolving cart and order items.
type Category struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" validate:"required,min=3,max=100"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Product represents a product listed by a seller. Stock is not kept
// here; each variant carries its own inventory buckets per size.
type Product struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string           `json:"name" validate:"required,min=3,max=100"`
	Description string           `json:"description" validate:"omitempty,max=500"`
	SellerID    string           `json:"seller_id" gorm:"index;type:varchar(36)" validate:"required"`
	CategoryID  string           `json:"category_id" gorm:"type:varchar(36)"`
	Category    *Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Variants    []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
	gorm.Model                   // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ProductVariant is a purchasable color/SKU of a product with its own price.
type ProductVariant struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID   string      `json:"product_id" gorm:"index;type:varchar(36)" validate:"required"`
	Color       string      `json:"color" validate:"omitempty,max=50"`
	Image       string      `json:"image" validate:"omitempty,max=255"`
	Price       float64     `json:"price" validate:"required,gt=0"`
	SKU         string      `json:"sku" gorm:"uniqueIndex;type:varchar(64)"` // System-generated
	Product     *Product    `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Inventories []Inventory `json:"inventories,omitempty" gorm:"foreignKey:ProductVariantID"`
	gorm.Model              // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Inventory is the stock count for one (variant, size) pair. Its quantity
// is only ever decremented at checkout, never by cart mutations.
type Inventory struct {
	ID               string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductVariantID string `json:"product_variant_id" gorm:"index;type:varchar(36)" validate:"required"`
	Size             string `json:"size" validate:"required,max=20"`
	Quantity         int    `json:"quantity" validate:"gte=0"`
	gorm.Model              // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
