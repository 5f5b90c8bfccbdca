package shop

import (
	"context"
	"fmt"
	"strings"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// Product is an item of the static shop catalog. Prices are in minor units.
type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	PriceMinor  int64   `json:"price_minor" yaml:"price_minor"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Description string  `json:"description" yaml:"description"`
	ImageURL    string  `json:"image_url" yaml:"image_url"`
}

// Validate checks a catalog entry.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product requires id and name")
	}
	if p.PriceMinor < 0 {
		return fmt.Errorf("product %s has a negative price", p.ID)
	}
	return nil
}

// Item is one line of a cart.
type Item struct {
	ProductID  string `json:"product_id" mapstructure:"product_id"`
	Name       string `json:"name" mapstructure:"name"`
	PriceMinor int64  `json:"price_minor" mapstructure:"price_minor"`
	Quantity   int    `json:"quantity" mapstructure:"quantity"`
}

// Cart is the per-user shopping cart, keyed by the owner's user id.
type Cart struct {
	ownerID string
	items   []Item
}

// NewCart returns an empty cart for owner.
func NewCart(ownerID string) *Cart {
	return &Cart{ownerID: ownerID, items: []Item{}}
}

// ReconstructCart rebuilds a Cart from persistence.
func ReconstructCart(ownerID string, items []Item) *Cart {
	c := NewCart(ownerID)
	c.items = append(c.items, items...)
	return c
}

func (c *Cart) OwnerID() string { return c.ownerID }

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item { return append([]Item{}, c.items...) }

// Add puts one unit of product in the cart, merging with an existing line.
func (c *Cart) Add(p Product) Item {
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return c.items[i]
		}
	}
	item := Item{ProductID: p.ID, Name: p.Name, PriceMinor: p.PriceMinor, Quantity: 1}
	c.items = append(c.items, item)
	return item
}

// Remove drops the line for productID and reports whether one existed.
func (c *Cart) Remove(productID string) (Item, bool) {
	for i, it := range c.items {
		if it.ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return it, true
		}
	}
	return Item{}, false
}

// TotalMinor sums price times quantity over every line.
func (c *Cart) TotalMinor() int64 {
	var total int64
	for _, it := range c.items {
		total += it.PriceMinor * int64(it.Quantity)
	}
	return total
}

// Catalog is the static product list.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

// NewCatalog validates products and rejects duplicate ids.
func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{products: make([]Product, 0, len(products)), byID: make(map[string]Product, len(products))}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %s", p.ID)
		}
		c.byID[p.ID] = p
		c.products = append(c.products, p)
	}
	return c, nil
}

// All returns the products in catalog order.
func (c *Catalog) All() []Product { return append([]Product{}, c.products...) }

// FindByID returns a product or a NotFound error.
func (c *Catalog) FindByID(id string) (Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return Product{}, domain.NewNotFoundError("product", id)
	}
	return p, nil
}

// CartRepository persists carts, one document per owner.
type CartRepository interface {
	// Get returns the owner's cart, or an empty one when none is stored.
	Get(ctx context.Context, ownerID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
}
