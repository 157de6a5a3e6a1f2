package models

import "time"

// SellerNotification tells a seller about an order that includes their
// products. Created only as a side effect of an order transition; the
// only field that ever changes afterwards is IsRead.
type SellerNotification struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SellerID  string    `json:"seller_id" gorm:"index;type:varchar(36)"`
	OrderID   string    `json:"order_id" gorm:"index;type:varchar(36)"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserNotification tells a buyer about their own order: confirmation at
// checkout, and later status updates from fulfillment.
type UserNotification struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)"`
	OrderID   string    `json:"order_id" gorm:"index;type:varchar(36)"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
