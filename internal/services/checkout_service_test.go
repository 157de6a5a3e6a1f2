package services_test

import (
	"testing"
	"time"

	"lapak/internal/apperrors"
	"lapak/internal/models"
	"lapak/internal/services"
	"lapak/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var checkoutInfo = models.CheckoutInfo{
	ShippingAddress: "Jl. X",
	PaymentMethod:   "bank_transfer",
}

func TestCheckoutService_Checkout(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	publisher := new(MockOrderEventPublisher)
	service := services.NewCheckoutService(orderRepo, nil, publisher)

	now := time.Now()
	placed := &models.Order{
		ID:         "order-1",
		UserID:     "user-1",
		Status:     models.StatusPending,
		CheckoutAt: &now,
	}
	orderRepo.On("CheckoutCart", "user-1", checkoutInfo).Return(placed, nil).Once()
	publisher.On("PublishOrderPlaced", mock.MatchedBy(func(e rabbitmq.OrderPlacedEvent) bool {
		return e.OrderID == "order-1" && e.UserID == "user-1"
	})).Return(nil).Once()

	order, err := service.Checkout("user-1", checkoutInfo)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.NotNil(t, order.CheckoutAt)
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCheckoutService_Checkout_MissingFields(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := services.NewCheckoutService(orderRepo, nil, nil)

	_, err := service.Checkout("user-1", models.CheckoutInfo{PaymentMethod: "bank_transfer"})
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "shipping_address", validationErr.Field)

	_, err = service.Checkout("user-1", models.CheckoutInfo{ShippingAddress: "Jl. X"})
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "payment_method", validationErr.Field)

	orderRepo.AssertNotCalled(t, "CheckoutCart")
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	publisher := new(MockOrderEventPublisher)
	service := services.NewCheckoutService(orderRepo, nil, publisher)

	orderRepo.On("CheckoutCart", "user-1", checkoutInfo).Return(nil, apperrors.ErrEmptyCart).Once()

	order, err := service.Checkout("user-1", checkoutInfo)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)
	publisher.AssertNotCalled(t, "PublishOrderPlaced")
}

func TestCheckoutService_Checkout_InsufficientStock(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	publisher := new(MockOrderEventPublisher)
	service := services.NewCheckoutService(orderRepo, nil, publisher)

	stockErr := &apperrors.InsufficientStockError{ProductVariantID: "var-1", Requested: 3, Available: 1}
	orderRepo.On("CheckoutCart", "user-1", checkoutInfo).Return(nil, stockErr).Once()

	order, err := service.Checkout("user-1", checkoutInfo)
	assert.Nil(t, order)
	var gotErr *apperrors.InsufficientStockError
	assert.ErrorAs(t, err, &gotErr)
	assert.Equal(t, "var-1", gotErr.ProductVariantID)
	publisher.AssertNotCalled(t, "PublishOrderPlaced")
}

func TestCheckoutService_UpdateOrderStatus_InvalidStatus(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := services.NewCheckoutService(orderRepo, nil, nil)

	for _, status := range []string{"unknown", models.StatusCart} {
		err := service.UpdateOrderStatus("seller-1", "order-1", status)
		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	}
	orderRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestCheckoutService_UpdateOrderStatus_ScopesToSeller(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := services.NewCheckoutService(orderRepo, nil, nil)

	// The acting seller's ID reaches the repository so the update can
	// only touch orders containing that seller's products.
	orderRepo.On("UpdateStatus", "order-1", models.StatusShipped, "seller-1").
		Return(apperrors.NewNotFound("order", "order-1")).Once()

	err := service.UpdateOrderStatus("seller-1", "order-1", models.StatusShipped)
	assert.True(t, apperrors.IsNotFound(err))
	orderRepo.AssertExpectations(t)
	orderRepo.AssertNotCalled(t, "GetByID", "order-1")
}
