package adoption

import (
	"fmt"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// Catalog is the immutable, ordered collection of adoptable animals.
type Catalog struct {
	animals []*Animal
	byID    map[string]*Animal
}

// NewCatalog builds a catalog, rejecting duplicate IDs.
func NewCatalog(animals []*Animal) (*Catalog, error) {
	byID := make(map[string]*Animal, len(animals))
	for _, a := range animals {
		if _, dup := byID[a.ID()]; dup {
			return nil, fmt.Errorf("duplicate animal id %q in catalog", a.ID())
		}
		byID[a.ID()] = a
	}
	ordered := make([]*Animal, len(animals))
	copy(ordered, animals)
	return &Catalog{animals: ordered, byID: byID}, nil
}

// All returns the catalog entries in catalog order.
func (c *Catalog) All() []*Animal {
	out := make([]*Animal, len(c.animals))
	copy(out, c.animals)
	return out
}

// Len returns the number of animals.
func (c *Catalog) Len() int { return len(c.animals) }

// FindByID returns the animal or a NotFoundError.
func (c *Catalog) FindByID(id string) (*Animal, error) {
	a, ok := c.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("Animal", id)
	}
	return a, nil
}

// Filter applies FilterAnimals to the whole catalog.
func (c *Catalog) Filter(criteria Criteria) []*Animal {
	return FilterAnimals(c.animals, criteria)
}
