package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

var (
	food = Product{ID: "1", Name: "Premium Pet Food", PriceMinor: 999, Rating: 4.5}
	bed  = Product{ID: "2", Name: "Pet Bed Deluxe", PriceMinor: 4999, Rating: 4.8}
)

func TestCart_AddMergesAndRemoves(t *testing.T) {
	c := NewCart("u1")
	c.Add(food)
	c.Add(bed)
	item := c.Add(food)

	assert.Equal(t, 2, item.Quantity)
	assert.Len(t, c.Items(), 2)
	assert.Equal(t, int64(999*2+4999), c.TotalMinor())

	removed, ok := c.Remove("1")
	require.True(t, ok)
	assert.Equal(t, "Premium Pet Food", removed.Name)
	assert.Equal(t, []Item{{ProductID: "2", Name: "Pet Bed Deluxe", PriceMinor: 4999, Quantity: 1}}, c.Items())

	_, ok = c.Remove("missing")
	assert.False(t, ok)
}

func TestCatalog(t *testing.T) {
	cat, err := NewCatalog([]Product{food, bed})
	require.NoError(t, err)

	p, err := cat.FindByID("2")
	require.NoError(t, err)
	assert.Equal(t, bed, p)

	_, err = cat.FindByID("9")
	assert.True(t, domain.IsNotFound(err))

	_, err = NewCatalog([]Product{food, food})
	assert.Error(t, err)
}
