package repository

import (
	"context"
	"errors"

	"github.com/PawsProtect/service-welfare/internal/docstore"
	"github.com/PawsProtect/service-welfare/internal/domain/shop"
)

type cartDocument struct {
	Items []shop.Item `mapstructure:"items" validate:"dive"`
}

// CartRepository stores one cart document per user, keyed by user id.
type CartRepository struct {
	store docstore.Store
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(store docstore.Store) *CartRepository {
	return &CartRepository{store: store}
}

func (r *CartRepository) Get(ctx context.Context, ownerID string) (*shop.Cart, error) {
	doc, err := r.store.Get(ctx, docstore.Carts, ownerID)
	if errors.Is(err, docstore.ErrNotFound) {
		return shop.NewCart(ownerID), nil
	}
	if err != nil {
		return nil, storeError("cart", ownerID, err)
	}
	m, err := decodeDocument[cartDocument](doc)
	if err != nil {
		return nil, err
	}
	return shop.ReconstructCart(ownerID, m.Items), nil
}

func (r *CartRepository) Save(ctx context.Context, cart *shop.Cart) error {
	items := make([]map[string]any, 0, len(cart.Items()))
	for _, it := range cart.Items() {
		items = append(items, map[string]any{
			"product_id":  it.ProductID,
			"name":        it.Name,
			"price_minor": it.PriceMinor,
			"quantity":    it.Quantity,
		})
	}
	if err := r.store.Put(ctx, docstore.Carts, cart.OwnerID(), map[string]any{"items": items}); err != nil {
		return storeError("cart", cart.OwnerID(), err)
	}
	return nil
}
