package user

import (
	"context"
	"strings"

	"github.com/PawsProtect/service-welfare/internal/platform/auth"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// Profile is a registered user as stored in the users collection. The ID is
// the identity provider's subject.
type Profile struct {
	ID           string
	Name         string
	Email        string
	Role         auth.Role
	Phone        domain.Optional[string]
	ProfileImage domain.Optional[string]
}

// NewProfile validates a profile. Unknown roles fall back to public.
func NewProfile(id, name, email, role string, phone, image domain.Optional[string]) (*Profile, error) {
	switch {
	case strings.TrimSpace(id) == "":
		return nil, domain.NewFieldValidationError("id", "user id is required")
	case strings.TrimSpace(email) == "":
		return nil, domain.NewFieldValidationError("email", "email is required")
	}
	return &Profile{
		ID:           id,
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		Role:         auth.ParseRole(role),
		Phone:        phone,
		ProfileImage: image,
	}, nil
}

// Repository persists profiles keyed by user id.
type Repository interface {
	Put(ctx context.Context, p *Profile) error
	Get(ctx context.Context, id string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	// FindByEmails returns the stored profiles keyed by email. Emails with
	// no profile are absent from the map.
	FindByEmails(ctx context.Context, emails []string) (map[string]*Profile, error)
}

// Stats is the admin dashboard summary.
type Stats struct {
	Users            int64 `json:"users"`
	Reports          int64 `json:"reports"`
	AdoptionRequests int64 `json:"adoption_requests"`
	Appointments     int64 `json:"appointments"`
	Posts            int64 `json:"posts"`
	Discussions      int64 `json:"discussions"`
}
