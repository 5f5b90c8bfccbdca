package repository

import (
	"context"
	"time"

	"github.com/PawsProtect/service-welfare/internal/docstore"
	"github.com/PawsProtect/service-welfare/internal/domain/adoption"
)

type adoptionRequestDocument struct {
	AnimalID     string    `mapstructure:"animalId" validate:"required"`
	AnimalName   string    `mapstructure:"animalName"`
	AdopterName  string    `mapstructure:"adopterName" validate:"required"`
	AdopterEmail string    `mapstructure:"adopterEmail" validate:"required"`
	AdopterPhone string    `mapstructure:"adopterPhone"`
	Status       string    `mapstructure:"status"`
	RequestedAt  time.Time `mapstructure:"requestedAt" validate:"required"`
}

// AdoptionRequestRepository stores requests in the adoptionRequests collection.
type AdoptionRequestRepository struct {
	store docstore.Store
}

// NewAdoptionRequestRepository creates a new AdoptionRequestRepository.
func NewAdoptionRequestRepository(store docstore.Store) *AdoptionRequestRepository {
	return &AdoptionRequestRepository{store: store}
}

func (r *AdoptionRequestRepository) Create(ctx context.Context, req *adoption.Request) (string, error) {
	id, err := r.store.Create(ctx, docstore.AdoptionRequests, map[string]any{
		"animalId":     req.AnimalID(),
		"animalName":   req.AnimalName(),
		"adopterName":  req.AdopterName(),
		"adopterEmail": req.AdopterEmail(),
		"adopterPhone": req.AdopterPhone(),
		"status":       string(req.Status()),
		"requestedAt":  docstore.FormatTime(req.RequestedAt()),
	})
	if err != nil {
		return "", storeError("adoption request", "", err)
	}
	return id, nil
}

func (r *AdoptionRequestRepository) ListNewestFirst(ctx context.Context) ([]*adoption.Request, error) {
	docs, err := r.store.Query(ctx, docstore.Query{Collection: docstore.AdoptionRequests, OrderBy: "requestedAt", Desc: true})
	if err != nil {
		return nil, storeError("adoption request", "", err)
	}
	out := make([]*adoption.Request, 0, len(docs))
	for _, doc := range docs {
		m, err := decodeDocument[adoptionRequestDocument](doc)
		if err != nil {
			return nil, err
		}
		status := adoption.RequestStatus(m.Status)
		if status == "" {
			status = adoption.RequestPending
		}
		out = append(out, adoption.ReconstructRequest(
			doc.ID, m.AnimalID, m.AnimalName, m.AdopterName, m.AdopterEmail, m.AdopterPhone, status, m.RequestedAt,
		))
	}
	return out, nil
}
