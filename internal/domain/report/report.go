package report

import (
	"context"
	"strings"
	"time"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// Status is the triage state of a report.
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
)

// Reporter identifies the signed-in user who filed a report.
type Reporter struct {
	UID   string
	Email string
}

// Fields is the raw input of the report form.
type Fields struct {
	AnimalType  string
	Condition   string
	Location    string
	Description string
}

// Validate fails fast on the first missing field, in form order.
func (f Fields) Validate() error {
	switch {
	case strings.TrimSpace(f.AnimalType) == "":
		return domain.NewFieldValidationError("animal_type", "animal type is required")
	case strings.TrimSpace(f.Condition) == "":
		return domain.NewFieldValidationError("condition", "condition is required")
	case strings.TrimSpace(f.Location) == "":
		return domain.NewFieldValidationError("location", "location is required")
	case strings.TrimSpace(f.Description) == "":
		return domain.NewFieldValidationError("description", "description is required")
	}
	return nil
}

// Report is a sighting of an animal in distress.
type Report struct {
	id          string
	animalType  string
	condition   string
	location    string
	description string
	photoURL    domain.Optional[string]
	reporter    Reporter
	status      Status
	timestamp   time.Time
}

// NewReport creates a pending report. The photo, if any, must already be
// uploaded.
func NewReport(fields Fields, photoURL domain.Optional[string], reporter Reporter, now time.Time) (*Report, error) {
	if strings.TrimSpace(reporter.UID) == "" {
		return nil, domain.NewUnauthorizedError("you must be logged in to submit a report")
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	return &Report{
		animalType:  strings.TrimSpace(fields.AnimalType),
		condition:   strings.TrimSpace(fields.Condition),
		location:    strings.TrimSpace(fields.Location),
		description: strings.TrimSpace(fields.Description),
		photoURL:    photoURL,
		reporter:    reporter,
		status:      StatusPending,
		timestamp:   now.UTC(),
	}, nil
}

// Reconstruct rebuilds a Report from persistence.
func Reconstruct(id string, fields Fields, photoURL domain.Optional[string], reporter Reporter, status Status, timestamp time.Time) *Report {
	return &Report{
		id:          id,
		animalType:  fields.AnimalType,
		condition:   fields.Condition,
		location:    fields.Location,
		description: fields.Description,
		photoURL:    photoURL,
		reporter:    reporter,
		status:      status,
		timestamp:   timestamp,
	}
}

// Getters.
func (r *Report) ID() string { return r.id }
func (r *Report) AnimalType() string { return r.animalType }
func (r *Report) Condition() string { return r.condition }
func (r *Report) Location() string { return r.location }
func (r *Report) Description() string { return r.description }
func (r *Report) PhotoURL() domain.Optional[string] { return r.photoURL }
func (r *Report) Reporter() Reporter { return r.reporter }
func (r *Report) Status() Status { return r.status }
func (r *Report) Timestamp() time.Time { return r.timestamp }

// SetID records the store-assigned identifier.
func (r *Report) SetID(id string) { r.id = id }

// Repository persists reports.
type Repository interface {
	Create(ctx context.Context, r *Report) (string, error)
	// ListNewestFirst returns every report ordered by timestamp descending.
	ListNewestFirst(ctx context.Context) ([]*Report, error)
	Delete(ctx context.Context, id string) error
}
