package adoption

import (
	"fmt"
	"strings"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// Species is the normalized animal category used by the species filter.
type Species string

// SpeciesAll disables the species predicate.
const SpeciesAll Species = "all"

// NormalizeSpecies lower-cases and trims a species label.
func NormalizeSpecies(s string) Species {
	return Species(strings.ToLower(strings.TrimSpace(s)))
}

// Size is the enumerated body size of an animal.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeXLarge Size = "xlarge"
)

// ParseSize normalizes a size label. "extra-large" and "extra large" map to xlarge.
func ParseSize(s string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return SizeSmall, nil
	case "medium":
		return SizeMedium, nil
	case "large":
		return SizeLarge, nil
	case "xlarge", "extra-large", "extra large", "x-large":
		return SizeXLarge, nil
	}
	return "", fmt.Errorf("unknown size %q", s)
}

// Gender is the enumerated gender of an animal.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// ParseGender normalizes a gender label; anything unrecognized is unknown.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	}
	return GenderUnknown
}

// Animal is a read-only adoption catalog entry.
type Animal struct {
	id                 string
	name               string
	species            Species
	breed              string
	age                int
	size               Size
	gender             Gender
	specialNeeds       bool
	specialNeedsDetail domain.Optional[string]
	imageURL           string
}

// AnimalParams carries the raw fields of a catalog entry.
type AnimalParams struct {
	ID                 string
	Name               string
	Species            string
	Breed              string
	Age                int
	Size               string
	Gender             string
	SpecialNeeds       bool
	SpecialNeedsDetail domain.Optional[string]
	ImageURL           string
}

// NewAnimal validates and normalizes a catalog entry.
func NewAnimal(p AnimalParams) (*Animal, error) {
	if strings.TrimSpace(p.ID) == "" {
		return nil, domain.NewFieldValidationError("id", "animal id is required")
	}
	species := NormalizeSpecies(p.Species)
	if species == "" || species == SpeciesAll {
		return nil, domain.NewFieldValidationError("species", fmt.Sprintf("invalid species %q for animal %s", p.Species, p.ID))
	}
	if p.Age < 0 {
		return nil, domain.NewFieldValidationError("age", fmt.Sprintf("age must be non-negative for animal %s", p.ID))
	}
	size, err := ParseSize(p.Size)
	if err != nil {
		return nil, domain.NewFieldValidationError("size", err.Error())
	}

	return &Animal{
		id:                 p.ID,
		name:               p.Name,
		species:            species,
		breed:              p.Breed,
		age:                p.Age,
		size:               size,
		gender:             ParseGender(p.Gender),
		specialNeeds:       p.SpecialNeeds,
		specialNeedsDetail: p.SpecialNeedsDetail,
		imageURL:           p.ImageURL,
	}, nil
}

func (a *Animal) ID() string { return a.id }
func (a *Animal) Name() string { return a.name }
func (a *Animal) Species() Species { return a.species }
func (a *Animal) Breed() string { return a.breed }
func (a *Animal) Age() int { return a.age }
func (a *Animal) Size() Size { return a.size }
func (a *Animal) Gender() Gender { return a.gender }
func (a *Animal) SpecialNeeds() bool { return a.specialNeeds }
func (a *Animal) ImageURL() string { return a.imageURL }

// SpecialNeedsDetail is present only for animals whose source record carries it.
func (a *Animal) SpecialNeedsDetail() domain.Optional[string] { return a.specialNeedsDetail }
