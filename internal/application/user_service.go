package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/PawsProtect/service-welfare/internal/domain/user"
	"github.com/PawsProtect/service-welfare/internal/platform/auth"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// StatsReader counts documents for the admin dashboard.
type StatsReader interface {
	Stats(ctx context.Context) (user.Stats, error)
}

// UserDTO is the response representation of a profile.
type UserDTO struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Email        string                  `json:"email"`
	Role         string                  `json:"role"`
	Phone        domain.Optional[string] `json:"phone"`
	ProfileImage domain.Optional[string] `json:"profile_image"`
}

// RegisterUserInput is a user registration announced by the identity provider.
type RegisterUserInput struct {
	UserID       string  `json:"user_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"profile_image"`
}

// UserService handles profiles and the admin dashboard.
type UserService struct {
	users user.Repository
	stats StatsReader
	deps  Deps
}

// NewUserService creates a new UserService.
func NewUserService(users user.Repository, stats StatsReader, deps Deps) *UserService {
	return &UserService{users: users, stats: stats, deps: deps.withDefaults()}
}

// Me returns the caller's stored profile. A caller whose registration has
// not been ingested yet gets the profile carried by their token.
func (s *UserService) Me(ctx context.Context, id auth.Identity) (*UserDTO, error) {
	p, err := s.users.Get(ctx, id.UserID.String())
	if domain.IsNotFound(err) {
		dto := UserDTO{
			ID:           id.UserID.String(),
			Name:         id.DisplayName,
			Email:        id.Email,
			Role:         string(id.Role),
			Phone:        domain.None[string](),
			ProfileImage: domain.None[string](),
		}
		return &dto, nil
	}
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(p)
	return &dto, nil
}

// RegisterUser stores or replaces a profile.
func (s *UserService) RegisterUser(ctx context.Context, in RegisterUserInput) (*UserDTO, error) {
	p, err := user.NewProfile(in.UserID, in.Name, in.Email, in.Role, domain.FromPtr(in.Phone), domain.FromPtr(in.ProfileImage))
	if err != nil {
		return nil, err
	}
	if err := s.users.Put(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	s.deps.Logger.Info("user registered", zap.String("user_id", p.ID), zap.String("role", string(p.Role)))
	dto := toUserDTO(p)
	return &dto, nil
}

// ListUsers returns every profile.
func (s *UserService) ListUsers(ctx context.Context) ([]UserDTO, error) {
	profiles, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, len(profiles))
	for i, p := range profiles {
		out[i] = toUserDTO(p)
	}
	return out, nil
}

// Stats returns the dashboard counts.
func (s *UserService) Stats(ctx context.Context) (*user.Stats, error) {
	st, err := s.stats.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func toUserDTO(p *user.Profile) UserDTO {
	return UserDTO{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		Role:         string(p.Role),
		Phone:        p.Phone,
		ProfileImage: p.ProfileImage,
	}
}
