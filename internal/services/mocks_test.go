package services_test

import (
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/pkg/rabbitmq"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCatalogRepository is a mock implementation of repositories.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockCatalogRepository) GetProduct(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalogRepository) CreateProduct(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetVariant(id string) (*models.ProductVariant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductVariant), args.Error(1)
}

func (m *MockCatalogRepository) CreateVariant(variant *models.ProductVariant, inventories []models.Inventory) error {
	args := m.Called(variant, inventories)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetInventory(id string) (*models.Inventory, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inventory), args.Error(1)
}

func (m *MockCatalogRepository) DecrementInventory(inventoryID string, amount int) error {
	args := m.Called(inventoryID, amount)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetOrCreateCart(userID string) (*models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveCart(userID string) (*models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) AddCartItem(cartID, variantID, inventoryID string, quantity int, unitPrice float64) error {
	args := m.Called(cartID, variantID, inventoryID, quantity, unitPrice)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateItemQuantity(cartID, itemID string, quantity int) error {
	args := m.Called(cartID, itemID, quantity)
	return args.Error(0)
}

func (m *MockOrderRepository) RemoveItem(cartID, itemID string) error {
	args := m.Called(cartID, itemID)
	return args.Error(0)
}

func (m *MockOrderRepository) ClearCart(cartID string) error {
	args := m.Called(cartID)
	return args.Error(0)
}

func (m *MockOrderRepository) CheckoutCart(userID string, info models.CheckoutInfo) (*models.Order, error) {
	args := m.Called(userID, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(id, status, sellerID string) error {
	args := m.Called(id, status, sellerID)
	return args.Error(0)
}

func (m *MockOrderRepository) ListOrders(filter repositories.OrderFilter) ([]models.Order, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) TopSellingVariants(sellerID string, limit int) ([]repositories.VariantSales, error) {
	args := m.Called(sellerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.VariantSales), args.Error(1)
}

func (m *MockOrderRepository) BuyerBreakdown(sellerID string, limit int) ([]repositories.BuyerSales, error) {
	args := m.Called(sellerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.BuyerSales), args.Error(1)
}

func (m *MockOrderRepository) BuyerOrderLines(sellerID, buyerID string) ([]repositories.BuyerOrderLine, error) {
	args := m.Called(sellerID, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.BuyerOrderLine), args.Error(1)
}

// MockOrderEventPublisher is a mock implementation of services.OrderEventPublisher
type MockOrderEventPublisher struct {
	mock.Mock
}

func (m *MockOrderEventPublisher) PublishOrderPlaced(event rabbitmq.OrderPlacedEvent) error {
	args := m.Called(event)
	return args.Error(0)
}
