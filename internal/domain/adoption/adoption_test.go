package adoption

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

func TestNewAnimal_Normalizes(t *testing.T) {
	a, err := NewAnimal(AnimalParams{
		ID: "9", Name: "Pepper", Species: " Dog ", Age: 4, Size: "Extra-Large", Gender: "FEMALE",
		SpecialNeeds: true, SpecialNeedsDetail: domain.Some("partially blind"),
	})
	require.NoError(t, err)

	assert.Equal(t, Species("dog"), a.Species())
	assert.Equal(t, SizeXLarge, a.Size())
	assert.Equal(t, GenderFemale, a.Gender())
	assert.Equal(t, "partially blind", a.SpecialNeedsDetail().OrElse(""))
}

func TestNewAnimal_Rejects(t *testing.T) {
	_, err := NewAnimal(AnimalParams{ID: "", Species: "dog", Size: "small"})
	assert.True(t, domain.IsValidation(err))

	_, err = NewAnimal(AnimalParams{ID: "1", Species: "dog", Age: -1, Size: "small"})
	assert.True(t, domain.IsValidation(err))

	_, err = NewAnimal(AnimalParams{ID: "1", Species: "dog", Size: "tiny"})
	assert.True(t, domain.IsValidation(err))

	_, err = NewAnimal(AnimalParams{ID: "1", Species: "all", Size: "small"})
	assert.True(t, domain.IsValidation(err))
}

func TestToggleFavorite_IsItsOwnInverse(t *testing.T) {
	start := NewFavorites("1", "3")

	added, action := ToggleFavorite(start, "5")
	assert.Equal(t, FavoriteAdded, action)
	assert.True(t, added.Contains("5"))
	assert.False(t, start.Contains("5"), "input set must not be modified")

	back, action := ToggleFavorite(added, "5")
	assert.Equal(t, FavoriteRemoved, action)
	assert.Equal(t, start, back)

	removed, _ := ToggleFavorite(start, "1")
	restored, _ := ToggleFavorite(removed, "1")
	assert.Equal(t, start, restored)
}

func TestFavorites_IDsFollowCatalogOrder(t *testing.T) {
	catalog := shelterCatalog(t)
	f := NewFavorites("zz", "6", "2")
	assert.Equal(t, []string{"2", "6", "zz"}, f.IDs(catalog))
}

func TestCatalog(t *testing.T) {
	catalog, err := NewCatalog(shelterCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, 8, catalog.Len())

	a, err := catalog.FindByID("3")
	require.NoError(t, err)
	assert.Equal(t, 5, a.Age())

	_, err = catalog.FindByID("99")
	assert.True(t, domain.IsNotFound(err))

	dup := shelterCatalog(t)
	_, err = NewCatalog(append(dup, dup[0]))
	assert.Error(t, err)
}

func TestNewRequest(t *testing.T) {
	animal := mustAnimal(t, "1", "dog", 3, "large", false)
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	req, err := NewRequest(animal, " Priya ", "priya@example.com", "+1 555 0100", now)
	require.NoError(t, err)
	assert.Equal(t, "Priya", req.AdopterName())
	assert.Equal(t, "pet-1", req.AnimalName())
	assert.Equal(t, RequestPending, req.Status())
	assert.Equal(t, now, req.RequestedAt())

	_, err = NewRequest(animal, "Priya", "", "+1 555 0100", now)
	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "email", de.Field)

	_, err = NewRequest(nil, "Priya", "p@example.com", "1", now)
	assert.True(t, domain.IsValidation(err))
}
