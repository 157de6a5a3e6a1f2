package models

import "time"

// Order statuses. An order starts life as the user's cart; checkout moves
// it to pending exactly once. Later statuses are driven by fulfillment.
const (
	StatusCart       = "cart"
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ValidStatuses lists every status an order may hold.
var ValidStatuses = map[string]bool{
	StatusCart:       true,
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

// Order represents a customer order. While status is "cart" it is the
// user's single mutable cart; after checkout it is immutable except for
// the status field, which fulfillment advances.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string      `json:"user_id" gorm:"index;type:varchar(36);uniqueIndex:uniq_user_active_cart,where:status = 'cart'"`
	Status          string      `json:"status" gorm:"index;type:varchar(20)"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	PaymentMethod   string      `json:"payment_method,omitempty"`
	BankName        string      `json:"bank_name,omitempty"`
	VirtualAccount  string      `json:"virtual_account,omitempty"`
	CheckoutAt      *time.Time  `json:"checkout_at,omitempty"` // Set once, on cart -> pending
	Items           []OrderItem `json:"order_items" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem is one line of an order: a quantity of one variant drawn from
// one inventory bucket. Price is a snapshot of the variant price taken
// when the line was added; subtotal is always price * quantity.
type OrderItem struct {
	ID               string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID          string          `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductVariantID string          `json:"product_variant_id" gorm:"index;type:varchar(36)"`
	InventoryID      string          `json:"inventory_id" gorm:"type:varchar(36)"`
	Quantity         int             `json:"quantity"`
	Price            float64         `json:"price"` // Variant price at add-time
	Subtotal         float64         `json:"subtotal"`
	ProductVariant   *ProductVariant `json:"product_variant,omitempty" gorm:"foreignKey:ProductVariantID"`
	Inventory        *Inventory      `json:"inventory,omitempty" gorm:"foreignKey:InventoryID"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CheckoutInfo carries the shipping and payment fields recorded on the
// order when the cart is checked out.
type CheckoutInfo struct {
	ShippingAddress string
	PaymentMethod   string
	BankName        string
	VirtualAccount  string
}
