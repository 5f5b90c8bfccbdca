// Package seed loads the static catalog: adoptable animals, partner clinics
// with their availability templates, and shop products.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PawsProtect/service-welfare/internal/domain/adoption"
	"github.com/PawsProtect/service-welfare/internal/domain/shop"
	"github.com/PawsProtect/service-welfare/internal/domain/veterinary"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

//go:embed default.yaml
var defaultSeed []byte

type animalSeed struct {
	ID                 string `yaml:"id"`
	Name               string `yaml:"name"`
	Species            string `yaml:"species"`
	Breed              string `yaml:"breed"`
	Age                int    `yaml:"age"`
	Size               string `yaml:"size"`
	Gender             string `yaml:"gender"`
	SpecialNeeds       bool   `yaml:"special_needs"`
	SpecialNeedsDetail string `yaml:"special_needs_detail"`
	ImageURL           string `yaml:"image_url"`
}

type slotSeed struct {
	Offset *int     `yaml:"offset"`
	Date   string   `yaml:"date"`
	Times  []string `yaml:"times"`
}

type clinicSeed struct {
	ID           string     `yaml:"id"`
	Name         string     `yaml:"name"`
	Address      string     `yaml:"address"`
	Phone        string     `yaml:"phone"`
	Hours        string     `yaml:"hours"`
	Services     []string   `yaml:"services"`
	ImageURL     string     `yaml:"image_url"`
	Availability []slotSeed `yaml:"availability"`
}

type file struct {
	Animals  []animalSeed   `yaml:"animals"`
	Clinics  []clinicSeed   `yaml:"clinics"`
	Products []shop.Product `yaml:"products"`
}

// Data is the validated static catalog.
type Data struct {
	Animals   *adoption.Catalog
	Clinics   []veterinary.Clinic
	Templates veterinary.TemplateSet
	Products  *shop.Catalog
}

// Clinic returns the clinic with id.
func (d *Data) Clinic(id string) (veterinary.Clinic, error) {
	for _, c := range d.Clinics {
		if c.ID == id {
			return c, nil
		}
	}
	return veterinary.Clinic{}, domain.NewNotFoundError("clinic", id)
}

// Load reads the seed file at path, or the embedded default when path is
// empty.
func Load(path string) (*Data, error) {
	raw := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}
	return Parse(raw)
}

// Parse decodes and validates a seed document. Unknown keys are rejected.
func Parse(raw []byte) (*Data, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	animals := make([]*adoption.Animal, 0, len(f.Animals))
	for _, a := range f.Animals {
		detail := domain.None[string]()
		if a.SpecialNeedsDetail != "" {
			detail = domain.Some(a.SpecialNeedsDetail)
		}
		animal, err := adoption.NewAnimal(adoption.AnimalParams{
			ID:                 a.ID,
			Name:               a.Name,
			Species:            a.Species,
			Breed:              a.Breed,
			Age:                a.Age,
			Size:               a.Size,
			Gender:             a.Gender,
			SpecialNeeds:       a.SpecialNeeds,
			SpecialNeedsDetail: detail,
			ImageURL:           a.ImageURL,
		})
		if err != nil {
			return nil, fmt.Errorf("seed animal %s: %w", a.ID, err)
		}
		animals = append(animals, animal)
	}
	catalog, err := adoption.NewCatalog(animals)
	if err != nil {
		return nil, fmt.Errorf("seed animals: %w", err)
	}

	data := &Data{Animals: catalog, Templates: veterinary.TemplateSet{}}
	for _, c := range f.Clinics {
		clinic := veterinary.Clinic{
			ID: c.ID, Name: c.Name, Address: c.Address, Phone: c.Phone,
			Hours: c.Hours, Services: c.Services, ImageURL: c.ImageURL,
		}
		if err := clinic.Validate(); err != nil {
			return nil, fmt.Errorf("seed clinic: %w", err)
		}
		if _, dup := data.Templates[c.ID]; dup {
			return nil, fmt.Errorf("seed clinic %s declared twice", c.ID)
		}
		tmpl, err := toTemplate(c)
		if err != nil {
			return nil, err
		}
		data.Clinics = append(data.Clinics, clinic)
		data.Templates[c.ID] = tmpl
	}

	products, err := shop.NewCatalog(f.Products)
	if err != nil {
		return nil, fmt.Errorf("seed products: %w", err)
	}
	data.Products = products
	return data, nil
}

func toTemplate(c clinicSeed) (veterinary.AvailabilityTemplate, error) {
	tmpl := veterinary.AvailabilityTemplate{ClinicID: c.ID}
	for i, s := range c.Availability {
		entry := veterinary.TemplateEntry{OffsetDays: s.Offset, Times: s.Times}
		if s.Date != "" {
			d, err := veterinary.ParseDate(s.Date)
			if err != nil {
				return tmpl, fmt.Errorf("seed clinic %s entry %d: %w", c.ID, i, err)
			}
			entry.Date = d
		}
		if entry.Times == nil {
			entry.Times = []string{}
		}
		tmpl.Entries = append(tmpl.Entries, entry)
	}
	// Unmixed tables keep their spacing on every day, so materializing
	// against any one day catches colliding entries up front.
	if _, err := tmpl.Materialize(veterinary.CalendarDate{Year: 2000, Month: 1, Day: 1}); err != nil {
		return tmpl, fmt.Errorf("seed clinic %s: %w", c.ID, err)
	}
	return tmpl, nil
}
