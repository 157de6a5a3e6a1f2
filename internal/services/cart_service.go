package services

import (
	"fmt"

	"lapak/internal/apperrors"
	"lapak/internal/models"
	"lapak/internal/repositories"
)

// CartService handles the business logic of the user's active cart: the
// single mutable order in cart status. Every operation takes the acting
// user's ID explicitly and only ever touches that user's cart.
type CartService struct {
	orderRepo   repositories.OrderRepository
	catalogRepo repositories.CatalogRepository
	userRepo    repositories.UserRepository
}

// NewCartService creates a new CartService.
func NewCartService(orderRepo repositories.OrderRepository, catalogRepo repositories.CatalogRepository, userRepo repositories.UserRepository) *CartService {
	return &CartService{
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
	}
}

// GetOrCreateCart returns the user's active cart, creating an empty one
// when none exists. It fails with NotFound only when the user itself is
// unknown, never for a missing cart.
func (s *CartService) GetOrCreateCart(userID string) (*models.Order, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.orderRepo.GetOrCreateCart(userID)
}

// AddItem puts quantity of a variant/inventory pair into the user's
// cart. The inventory bucket must belong to the variant; a line already
// holding the pair is merged, repriced at the variant's current price.
// Stock is not checked here: availability is a checkout concern.
func (s *CartService) AddItem(userID, variantID, inventoryID string, quantity int) (*models.Order, error) {
	if quantity < 1 {
		return nil, apperrors.NewValidation("quantity", "must be a positive integer")
	}

	variant, err := s.catalogRepo.GetVariant(variantID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewValidation("variant_id", "product variant not found")
		}
		return nil, fmt.Errorf("failed to resolve variant %s: %w", variantID, err)
	}

	inventory, err := s.catalogRepo.GetInventory(inventoryID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewValidation("inventory_id", "inventory not found")
		}
		return nil, fmt.Errorf("failed to resolve inventory %s: %w", inventoryID, err)
	}
	if inventory.ProductVariantID != variant.ID {
		return nil, apperrors.NewValidation("inventory_id", "inventory does not belong to the given variant")
	}

	cart, err := s.orderRepo.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.AddCartItem(cart.ID, variant.ID, inventory.ID, quantity, variant.Price); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(cart.ID)
}

// UpdateItemQuantity sets the quantity of a line in the user's active
// cart. The line must belong to that cart; otherwise NotFound.
func (s *CartService) UpdateItemQuantity(userID, itemID string, quantity int) (*models.Order, error) {
	if quantity < 1 {
		return nil, apperrors.NewValidation("quantity", "must be a positive integer")
	}
	cart, err := s.orderRepo.GetActiveCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateItemQuantity(cart.ID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(cart.ID)
}

// RemoveItem deletes a line from the user's active cart.
func (s *CartService) RemoveItem(userID, itemID string) (*models.Order, error) {
	cart, err := s.orderRepo.GetActiveCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.RemoveItem(cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(cart.ID)
}

// Clear empties the user's active cart.
func (s *CartService) Clear(userID string) (*models.Order, error) {
	cart, err := s.orderRepo.GetActiveCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.ClearCart(cart.ID); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(cart.ID)
}
