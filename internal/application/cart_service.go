package application

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"go.uber.org/zap"

	"github.com/PawsProtect/service-welfare/internal/domain/shop"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// AddToCartRequest names the product to add.
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// CartDTO is the response representation of a cart.
type CartDTO struct {
	Items      []shop.Item `json:"items"`
	TotalMinor int64       `json:"total_minor"`
	Message    string      `json:"message,omitempty"`
}

const cartLockStripes = 64

// CartService handles the product list and per-user carts.
type CartService struct {
	products *shop.Catalog
	carts    shop.CartRepository
	deps     Deps
	locks    [cartLockStripes]sync.Mutex
}

// NewCartService creates a new CartService.
func NewCartService(products *shop.Catalog, carts shop.CartRepository, deps Deps) *CartService {
	return &CartService{products: products, carts: carts, deps: deps.withDefaults()}
}

// ListProducts returns the shop catalog.
func (s *CartService) ListProducts() []shop.Product { return s.products.All() }

// GetCart returns the user's cart, empty if none is stored.
func (s *CartService) GetCart(ctx context.Context, userID string) (*CartDTO, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCartDTO(cart, ""), nil
}

// AddItem puts one unit of a product in the user's cart.
//
// The read-modify-write is serialized per user inside this process only.
// Replicas sharing a store can still lose a concurrent add.
func (s *CartService) AddItem(ctx context.Context, userID string, req AddToCartRequest) (*CartDTO, error) {
	product, err := s.products.FindByID(req.ProductID)
	if err != nil {
		return nil, err
	}
	unlock := s.lock(userID)
	defer unlock()

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Add(product)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	s.deps.Logger.Debug("cart item added", zap.String("user_id", userID), zap.String("product_id", product.ID))
	return toCartDTO(cart, fmt.Sprintf("%s has been added to your cart.", product.Name)), nil
}

// RemoveItem drops a product line from the user's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*CartDTO, error) {
	unlock := s.lock(userID)
	defer unlock()

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	removed, ok := cart.Remove(productID)
	if !ok {
		return nil, domain.NewNotFoundError("cart item", productID)
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return toCartDTO(cart, fmt.Sprintf("%s has been removed from your cart.", removed.Name)), nil
}

// lock takes the stripe owning userID's cart.
func (s *CartService) lock(userID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	mu := &s.locks[h.Sum32()%cartLockStripes]
	mu.Lock()
	return mu.Unlock
}

func toCartDTO(c *shop.Cart, message string) *CartDTO {
	return &CartDTO{Items: c.Items(), TotalMinor: c.TotalMinor(), Message: message}
}
