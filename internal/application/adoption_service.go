package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/PawsProtect/service-welfare/internal/domain/adoption"
	"github.com/PawsProtect/service-welfare/internal/metrics"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// FilterState distinguishes an empty result from a non-empty one.
type FilterState string

const (
	FilterResults   FilterState = "results"
	FilterNoMatches FilterState = "no_matches"
)

// FilterQuery is the raw filter selection. Nil ages mean the default bound.
type FilterQuery struct {
	Species string
	AgeMin  *int
	AgeMax  *int
	Sizes   []string
	Needs   []string
}

// AnimalDTO is the response representation of a catalog animal.
type AnimalDTO struct {
	ID                 string                  `json:"id"`
	Name               string                  `json:"name"`
	Species            string                  `json:"species"`
	Breed              string                  `json:"breed"`
	Age                int                     `json:"age"`
	Size               string                  `json:"size"`
	Gender             string                  `json:"gender"`
	SpecialNeeds       bool                    `json:"special_needs"`
	SpecialNeedsDetail domain.Optional[string] `json:"special_needs_detail"`
	ImageURL           string                  `json:"image_url"`
}

// FilterResultDTO is the result of a catalog filter.
type FilterResultDTO struct {
	Animals  []AnimalDTO `json:"animals"`
	Total    int         `json:"total"`
	State    FilterState `json:"state"`
	Criteria CriteriaDTO `json:"criteria"`
}

// CriteriaDTO echoes the effective criteria.
type CriteriaDTO struct {
	Species      string   `json:"species"`
	AgeMin       int      `json:"age_min"`
	AgeMax       int      `json:"age_max"`
	Sizes        []string `json:"sizes"`
	SpecialNeeds []string `json:"special_needs"`
}

// ToggleFavoriteRequest carries the client's favorites set and the animal to toggle.
type ToggleFavoriteRequest struct {
	Favorites []string `json:"favorites"`
	AnimalID  string   `json:"animal_id" binding:"required"`
}

// FavoritesDTO is the favorites set after a toggle.
type FavoritesDTO struct {
	Favorites []string                `json:"favorites"`
	Action    adoption.FavoriteAction `json:"action"`
	Message   string                  `json:"message"`
}

// AdoptionRequestInput holds the adoption form.
type AdoptionRequestInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AdoptionRequestDTO is the response representation of an adoption request.
type AdoptionRequestDTO struct {
	ID           string    `json:"id"`
	AnimalID     string    `json:"animal_id"`
	AnimalName   string    `json:"animal_name"`
	AdopterName  string    `json:"adopter_name"`
	AdopterEmail string    `json:"adopter_email"`
	AdopterPhone string    `json:"adopter_phone"`
	Status       string    `json:"status"`
	RequestedAt  time.Time `json:"requested_at"`
}

// AdoptionService handles catalog browsing and adoption requests.
type AdoptionService struct {
	catalog  *adoption.Catalog
	requests adoption.RequestRepository
	maxAge   int
	deps     Deps
}

// NewAdoptionService creates a new AdoptionService.
func NewAdoptionService(catalog *adoption.Catalog, requests adoption.RequestRepository, maxAge int, deps Deps) *AdoptionService {
	if maxAge <= 0 {
		maxAge = adoption.DefaultMaxAge
	}
	return &AdoptionService{catalog: catalog, requests: requests, maxAge: maxAge, deps: deps.withDefaults()}
}

// FilterAnimals applies the query to the catalog.
func (s *AdoptionService) FilterAnimals(q FilterQuery) (*FilterResultDTO, error) {
	ageMin, ageMax := 0, s.maxAge
	if q.AgeMin != nil {
		ageMin = *q.AgeMin
	}
	if q.AgeMax != nil {
		ageMax = *q.AgeMax
	}
	criteria, err := adoption.NewCriteria(q.Species, ageMin, ageMax, q.Sizes, q.Needs, s.maxAge)
	if err != nil {
		return nil, err
	}

	matched := s.catalog.Filter(criteria)
	s.deps.Metrics.RecordFilterResult(len(matched))

	result := &FilterResultDTO{
		Animals:  make([]AnimalDTO, len(matched)),
		Total:    len(matched),
		State:    FilterResults,
		Criteria: toCriteriaDTO(criteria),
	}
	for i, a := range matched {
		result.Animals[i] = toAnimalDTO(a)
	}
	if len(matched) == 0 {
		result.State = FilterNoMatches
	}
	return result, nil
}

// GetAnimal returns one catalog animal.
func (s *AdoptionService) GetAnimal(id string) (*AnimalDTO, error) {
	a, err := s.catalog.FindByID(id)
	if err != nil {
		return nil, err
	}
	dto := toAnimalDTO(a)
	return &dto, nil
}

// ToggleFavorite flips membership of an animal in the caller's favorites.
func (s *AdoptionService) ToggleFavorite(req ToggleFavoriteRequest) (*FavoritesDTO, error) {
	a, err := s.catalog.FindByID(req.AnimalID)
	if err != nil {
		return nil, err
	}
	favorites, action := adoption.ToggleFavorite(adoption.NewFavorites(req.Favorites...), a.ID())

	message := fmt.Sprintf("%s added to favorites", a.Name())
	if action == adoption.FavoriteRemoved {
		message = fmt.Sprintf("%s removed from favorites", a.Name())
	}
	return &FavoritesDTO{
		Favorites: favorites.IDs(s.catalog.All()),
		Action:    action,
		Message:   message,
	}, nil
}

// RequestAdoption records an adoption request for a catalog animal.
func (s *AdoptionService) RequestAdoption(ctx context.Context, animalID string, in AdoptionRequestInput) (dto *AdoptionRequestDTO, err error) {
	defer func() { s.deps.Metrics.RecordAdoptionRequest(metrics.Outcome(err, domain.IsValidation)) }()

	animal, err := s.catalog.FindByID(animalID)
	if err != nil {
		return nil, err
	}
	req, err := adoption.NewRequest(animal, in.Name, in.Email, in.Phone, s.deps.Clock.Now())
	if err != nil {
		return nil, err
	}
	id, err := s.requests.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to save adoption request: %w", err)
	}
	saved := adoption.ReconstructRequest(id, req.AnimalID(), req.AnimalName(), req.AdopterName(),
		req.AdopterEmail(), req.AdopterPhone(), req.Status(), req.RequestedAt())

	s.deps.Logger.Info("adoption requested",
		zap.String("request_id", id),
		zap.String("animal_id", animalID),
	)
	result := toAdoptionRequestDTO(saved)
	s.deps.publishEvent(ctx, EventAdoptionRequested, animalID, result)
	return &result, nil
}

// ListAdoptionRequests returns every request, newest first.
func (s *AdoptionService) ListAdoptionRequests(ctx context.Context) ([]AdoptionRequestDTO, error) {
	reqs, err := s.requests.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AdoptionRequestDTO, len(reqs))
	for i, r := range reqs {
		out[i] = toAdoptionRequestDTO(r)
	}
	return out, nil
}

func toAnimalDTO(a *adoption.Animal) AnimalDTO {
	return AnimalDTO{
		ID:                 a.ID(),
		Name:               a.Name(),
		Species:            string(a.Species()),
		Breed:              a.Breed(),
		Age:                a.Age(),
		Size:               string(a.Size()),
		Gender:             string(a.Gender()),
		SpecialNeeds:       a.SpecialNeeds(),
		SpecialNeedsDetail: a.SpecialNeedsDetail(),
		ImageURL:           a.ImageURL(),
	}
}

func toCriteriaDTO(c adoption.Criteria) CriteriaDTO {
	dto := CriteriaDTO{
		Species:      string(c.Species),
		AgeMin:       c.AgeRange.Min,
		AgeMax:       c.AgeRange.Max,
		Sizes:        []string{},
		SpecialNeeds: []string{},
	}
	for _, size := range []adoption.Size{adoption.SizeSmall, adoption.SizeMedium, adoption.SizeLarge, adoption.SizeXLarge} {
		if c.HasSize(size) {
			dto.Sizes = append(dto.Sizes, string(size))
		}
	}
	for _, need := range []adoption.NeedCategory{adoption.NeedMedical, adoption.NeedBehavioral, adoption.NeedSenior} {
		if _, ok := c.SpecialNeeds[need]; ok {
			dto.SpecialNeeds = append(dto.SpecialNeeds, string(need))
		}
	}
	return dto
}

func toAdoptionRequestDTO(r *adoption.Request) AdoptionRequestDTO {
	return AdoptionRequestDTO{
		ID:           r.ID(),
		AnimalID:     r.AnimalID(),
		AnimalName:   r.AnimalName(),
		AdopterName:  r.AdopterName(),
		AdopterEmail: r.AdopterEmail(),
		AdopterPhone: r.AdopterPhone(),
		Status:       string(r.Status()),
		RequestedAt:  r.RequestedAt(),
	}
}
