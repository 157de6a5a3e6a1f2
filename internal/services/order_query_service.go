package services

import (
	"time"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// Report sizes, matching what the seller dashboard renders.
const (
	topVariantsLimit   = 5
	buyerBreakdownSize = 10
)

// BuyerInfo identifies the buyer of an order in seller-facing views.
type BuyerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SellerOrderView is one order as a seller sees it: buyer identity plus
// only the lines that belong to the seller's products.
type SellerOrderView struct {
	ID              string             `json:"id"`
	User            BuyerInfo          `json:"user"`
	Status          string             `json:"status"`
	TotalAmount     float64            `json:"total_amount"`
	ShippingAddress string             `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method"`
	BankName        string             `json:"bank_name,omitempty"`
	VirtualAccount  string             `json:"virtual_account,omitempty"`
	CheckoutAt      *time.Time         `json:"checkout_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	Items           []models.OrderItem `json:"order_items"`
}

// SalesReport aggregates a seller's sales across placed orders.
type SalesReport struct {
	TopSellingProducts []repositories.VariantSales `json:"top_selling_products"`
	BuyerBreakdown     []repositories.BuyerSales   `json:"buyer_breakdown"`
}

// OrderQueryService serves the read-side order projections: buyer
// history, seller order views and sales reports. It never writes.
type OrderQueryService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
}

// NewOrderQueryService creates a new OrderQueryService.
func NewOrderQueryService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository) *OrderQueryService {
	return &OrderQueryService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}
}

// GetUserOrders returns the buyer's placed orders, newest first, with
// items fully resolved. The active cart is excluded.
func (s *OrderQueryService) GetUserOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.ListOrders(repositories.OrderFilter{
		UserID:      userID,
		ExcludeCart: true,
	})
}

// GetSellerOrders returns every placed order containing the seller's
// products, with the item list trimmed to that seller's lines and the
// buyer identified.
func (s *OrderQueryService) GetSellerOrders(sellerID string) ([]SellerOrderView, error) {
	orders, err := s.orderRepo.ListOrders(repositories.OrderFilter{
		SellerID:    sellerID,
		ExcludeCart: true,
	})
	if err != nil {
		return nil, err
	}

	views := make([]SellerOrderView, 0, len(orders))
	for _, order := range orders {
		var sellerItems []models.OrderItem
		for _, item := range order.Items {
			if item.ProductVariant != nil && item.ProductVariant.Product != nil &&
				item.ProductVariant.Product.SellerID == sellerID {
				sellerItems = append(sellerItems, item)
			}
		}

		buyer := BuyerInfo{ID: order.UserID}
		if user, err := s.userRepo.GetByID(order.UserID); err == nil {
			buyer.Name = user.Name
			buyer.Email = user.Email
		}

		views = append(views, SellerOrderView{
			ID:              order.ID,
			User:            buyer,
			Status:          order.Status,
			TotalAmount:     order.TotalAmount,
			ShippingAddress: order.ShippingAddress,
			PaymentMethod:   order.PaymentMethod,
			BankName:        order.BankName,
			VirtualAccount:  order.VirtualAccount,
			CheckoutAt:      order.CheckoutAt,
			CreatedAt:       order.CreatedAt,
			Items:           sellerItems,
		})
	}
	return views, nil
}

// GetSellerSalesReport returns the seller's top-selling variants and
// buyer breakdown.
func (s *OrderQueryService) GetSellerSalesReport(sellerID string) (*SalesReport, error) {
	topProducts, err := s.orderRepo.TopSellingVariants(sellerID, topVariantsLimit)
	if err != nil {
		return nil, err
	}
	buyers, err := s.orderRepo.BuyerBreakdown(sellerID, buyerBreakdownSize)
	if err != nil {
		return nil, err
	}
	return &SalesReport{
		TopSellingProducts: topProducts,
		BuyerBreakdown:     buyers,
	}, nil
}

// GetBuyerOrderDetails returns one buyer's purchased lines scoped to the
// seller's products.
func (s *OrderQueryService) GetBuyerOrderDetails(sellerID, buyerID string) ([]repositories.BuyerOrderLine, error) {
	return s.orderRepo.BuyerOrderLines(sellerID, buyerID)
}
