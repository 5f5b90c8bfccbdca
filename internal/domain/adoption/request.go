package adoption

import (
	"context"
	"strings"
	"time"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// RequestStatus is the review state of an adoption request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "Pending"
	RequestApproved RequestStatus = "Approved"
	RequestRejected RequestStatus = "Rejected"
)

// Request is a user's application to adopt a catalog animal.
type Request struct {
	id           string
	animalID     string
	animalName   string
	adopterName  string
	adopterEmail string
	adopterPhone string
	status       RequestStatus
	requestedAt  time.Time
}

// NewRequest validates an adoption request for animal.
func NewRequest(animal *Animal, adopterName, adopterEmail, adopterPhone string, now time.Time) (*Request, error) {
	if animal == nil {
		return nil, domain.NewFieldValidationError("animal", "missing pet information")
	}
	if strings.TrimSpace(adopterName) == "" {
		return nil, domain.NewFieldValidationError("name", "adopter name is required")
	}
	if strings.TrimSpace(adopterEmail) == "" {
		return nil, domain.NewFieldValidationError("email", "adopter email is required")
	}
	if strings.TrimSpace(adopterPhone) == "" {
		return nil, domain.NewFieldValidationError("phone", "adopter phone is required")
	}
	return &Request{
		animalID:     animal.ID(),
		animalName:   animal.Name(),
		adopterName:  strings.TrimSpace(adopterName),
		adopterEmail: strings.TrimSpace(adopterEmail),
		adopterPhone: strings.TrimSpace(adopterPhone),
		status:       RequestPending,
		requestedAt:  now.UTC(),
	}, nil
}

// ReconstructRequest rebuilds a Request from persistence (no validation).
func ReconstructRequest(id, animalID, animalName, adopterName, adopterEmail, adopterPhone string, status RequestStatus, requestedAt time.Time) *Request {
	return &Request{
		id:           id,
		animalID:     animalID,
		animalName:   animalName,
		adopterName:  adopterName,
		adopterEmail: adopterEmail,
		adopterPhone: adopterPhone,
		status:       status,
		requestedAt:  requestedAt,
	}
}

func (r *Request) ID() string { return r.id }
func (r *Request) AnimalID() string { return r.animalID }
func (r *Request) AnimalName() string { return r.animalName }
func (r *Request) AdopterName() string { return r.adopterName }
func (r *Request) AdopterEmail() string { return r.adopterEmail }
func (r *Request) AdopterPhone() string { return r.adopterPhone }
func (r *Request) Status() RequestStatus { return r.status }
func (r *Request) RequestedAt() time.Time { return r.requestedAt }

// RequestRepository persists adoption requests.
type RequestRepository interface {
	// Create stores the request and returns its assigned ID.
	Create(ctx context.Context, req *Request) (string, error)
	// ListNewestFirst returns all requests ordered by requestedAt descending.
	ListNewestFirst(ctx context.Context) ([]*Request, error)
}
