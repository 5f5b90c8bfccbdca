package adoption

import (
	"fmt"
	"strings"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// DefaultMaxAge is the age ceiling of the age-range slider.
const DefaultMaxAge = 15

// NeedCategory is a special-needs sub-category selectable in the filters.
type NeedCategory string

const (
	NeedMedical    NeedCategory = "medical"
	NeedBehavioral NeedCategory = "behavioral"
	NeedSenior     NeedCategory = "senior"
)

// ParseNeedCategory normalizes a need label.
func ParseNeedCategory(s string) (NeedCategory, error) {
	switch n := NeedCategory(strings.ToLower(strings.TrimSpace(s))); n {
	case NeedMedical, NeedBehavioral, NeedSenior:
		return n, nil
	}
	return "", fmt.Errorf("unknown special-needs category %q", s)
}

// AgeRange is an inclusive [Min, Max] age window in years.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether age lies within the range, both ends inclusive.
func (r AgeRange) Contains(age int) bool {
	return r.Min <= age && age <= r.Max
}

// Criteria is the user's current filter selection. The filter engine never
// mutates it.
type Criteria struct {
	Species      Species                   `json:"species"`
	AgeRange     AgeRange                  `json:"age_range"`
	Sizes        map[Size]struct{}         `json:"-"`
	SpecialNeeds map[NeedCategory]struct{} `json:"-"`
}

// DefaultCriteria is the cleared filter state: everything passes.
func DefaultCriteria(maxAge int) Criteria {
	return Criteria{
		Species:      SpeciesAll,
		AgeRange:     AgeRange{Min: 0, Max: maxAge},
		Sizes:        map[Size]struct{}{},
		SpecialNeeds: map[NeedCategory]struct{}{},
	}
}

// NewCriteria builds criteria from raw selections and validates them against maxAge.
func NewCriteria(species string, ageMin, ageMax int, sizes, needs []string, maxAge int) (Criteria, error) {
	c := DefaultCriteria(maxAge)

	if s := NormalizeSpecies(species); s != "" {
		c.Species = s
	}
	c.AgeRange = AgeRange{Min: ageMin, Max: ageMax}

	for _, raw := range sizes {
		size, err := ParseSize(raw)
		if err != nil {
			return Criteria{}, domain.NewFieldValidationError("size", err.Error())
		}
		c.Sizes[size] = struct{}{}
	}
	for _, raw := range needs {
		need, err := ParseNeedCategory(raw)
		if err != nil {
			return Criteria{}, domain.NewFieldValidationError("special_needs", err.Error())
		}
		c.SpecialNeeds[need] = struct{}{}
	}

	if err := c.Validate(maxAge); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

// Validate checks 0 <= Min <= Max <= maxAge.
func (c Criteria) Validate(maxAge int) error {
	if c.AgeRange.Min < 0 || c.AgeRange.Max > maxAge {
		return domain.NewFieldValidationError("age_range",
			fmt.Sprintf("age range must lie within [0, %d]", maxAge))
	}
	if c.AgeRange.Min > c.AgeRange.Max {
		return domain.NewFieldValidationError("age_range", "age range lower bound exceeds upper bound")
	}
	return nil
}

// HasSize reports whether size is selected. Case differences are ignored
// because sizes are normalized on parse.
func (c Criteria) HasSize(size Size) bool {
	_, ok := c.Sizes[size]
	return ok
}

// WantsSpecialNeeds reports whether any special-needs sub-category is selected.
func (c Criteria) WantsSpecialNeeds() bool {
	return len(c.SpecialNeeds) > 0
}
