package repository

import (
	"context"

	"github.com/PawsProtect/service-welfare/internal/docstore"
	"github.com/PawsProtect/service-welfare/internal/domain/user"
	"github.com/PawsProtect/service-welfare/internal/platform/auth"
)

type userDocument struct {
	ID           string  `mapstructure:"id"`
	Name         string  `mapstructure:"name"`
	Email        string  `mapstructure:"email" validate:"required"`
	Role         string  `mapstructure:"role"`
	Phone        *string `mapstructure:"phone"`
	ProfileImage *string `mapstructure:"profileImage"`
}

// UserRepository stores profiles in the users collection under the
// identity provider's subject id.
type UserRepository struct {
	store docstore.Store
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Put(ctx context.Context, p *user.Profile) error {
	err := r.store.Put(ctx, docstore.Users, p.ID, map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"email":        p.Email,
		"role":         string(p.Role),
		"phone":        nullable(p.Phone),
		"profileImage": nullable(p.ProfileImage),
	})
	if err != nil {
		return storeError("user", p.ID, err)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*user.Profile, error) {
	doc, err := r.store.Get(ctx, docstore.Users, id)
	if err != nil {
		return nil, storeError("user", id, err)
	}
	return toUserDomain(doc)
}

func (r *UserRepository) List(ctx context.Context) ([]*user.Profile, error) {
	docs, err := r.store.Query(ctx, docstore.Query{Collection: docstore.Users, OrderBy: "name"})
	if err != nil {
		return nil, storeError("user", "", err)
	}
	return toUserDomains(docs)
}

func (r *UserRepository) FindByEmails(ctx context.Context, emails []string) (map[string]*user.Profile, error) {
	out := make(map[string]*user.Profile, len(emails))
	if len(emails) == 0 {
		return out, nil
	}
	docs, err := r.store.Query(ctx, docstore.Query{Collection: docstore.Users, Filters: []docstore.Filter{docstore.In("email", emails...)}})
	if err != nil {
		return nil, storeError("user", "", err)
	}
	profiles, err := toUserDomains(docs)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		// First stored profile wins when an email is registered twice.
		if _, seen := out[p.Email]; !seen {
			out[p.Email] = p
		}
	}
	return out, nil
}

func toUserDomains(docs []docstore.Document) ([]*user.Profile, error) {
	out := make([]*user.Profile, 0, len(docs))
	for _, doc := range docs {
		p, err := toUserDomain(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func toUserDomain(doc docstore.Document) (*user.Profile, error) {
	m, err := decodeDocument[userDocument](doc)
	if err != nil {
		return nil, err
	}
	return &user.Profile{
		ID:           doc.ID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         auth.ParseRole(m.Role),
		Phone:        optionalString(m.Phone),
		ProfileImage: optionalString(m.ProfileImage),
	}, nil
}

// StatsRepository counts documents for the admin dashboard.
type StatsRepository struct {
	store docstore.Store
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(store docstore.Store) *StatsRepository {
	return &StatsRepository{store: store}
}

// Stats counts every collection shown on the dashboard.
func (r *StatsRepository) Stats(ctx context.Context) (user.Stats, error) {
	var s user.Stats
	targets := []struct {
		collection string
		dst        *int64
	}{
		{docstore.Users, &s.Users},
		{docstore.Reports, &s.Reports},
		{docstore.AdoptionRequests, &s.AdoptionRequests},
		{docstore.Appointments, &s.Appointments},
		{docstore.Posts, &s.Posts},
		{docstore.Discussions, &s.Discussions},
	}
	for _, t := range targets {
		n, err := r.store.Count(ctx, t.collection)
		if err != nil {
			return user.Stats{}, storeError(t.collection, "", err)
		}
		*t.dst = n
	}
	return s, nil
}
