package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/PawsProtect/service-welfare/internal/domain/community"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// CreatePostRequest holds the event post form.
type CreatePostRequest struct {
	Title    string  `json:"title"`
	Date     string  `json:"date"`
	Address  string  `json:"address"`
	ImageURL *string `json:"image_url"`
}

// PostDTO is the response representation of an event post.
type PostDTO struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Date      string                  `json:"date"`
	Address   string                  `json:"address"`
	ImageURL  domain.Optional[string] `json:"image_url"`
	CreatedAt time.Time               `json:"created_at"`
}

// CreateDiscussionRequest holds the discussion form. Tags are comma separated.
type CreateDiscussionRequest struct {
	Title       string `json:"title"`
	Tags        string `json:"tags"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// DiscussionDTO is the response representation of a discussion.
type DiscussionDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Tags        []string  `json:"tags"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Replies     int       `json:"replies"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommunityService handles event posts and discussions.
type CommunityService struct {
	repo community.Repository
	deps Deps
}

// NewCommunityService creates a new CommunityService.
func NewCommunityService(repo community.Repository, deps Deps) *CommunityService {
	return &CommunityService{repo: repo, deps: deps.withDefaults()}
}

func (s *CommunityService) CreatePost(ctx context.Context, req CreatePostRequest) (*PostDTO, error) {
	p, err := community.NewPost(req.Title, req.Date, req.Address, domain.FromPtr(req.ImageURL), s.deps.Clock.Now())
	if err != nil {
		return nil, err
	}
	id, err := s.repo.CreatePost(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}
	p.SetID(id)
	s.deps.Logger.Info("post created", zap.String("post_id", id))
	dto := toPostDTO(p)
	return &dto, nil
}

func (s *CommunityService) ListPosts(ctx context.Context) ([]PostDTO, error) {
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PostDTO, len(posts))
	for i, p := range posts {
		out[i] = toPostDTO(p)
	}
	return out, nil
}

func (s *CommunityService) CreateDiscussion(ctx context.Context, req CreateDiscussionRequest) (*DiscussionDTO, error) {
	d, err := community.NewDiscussion(req.Title, req.Tags, req.Author, req.Description, s.deps.Clock.Now())
	if err != nil {
		return nil, err
	}
	id, err := s.repo.CreateDiscussion(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("failed to save discussion: %w", err)
	}
	d.SetID(id)
	s.deps.Logger.Info("discussion started", zap.String("discussion_id", id))
	dto := toDiscussionDTO(d)
	return &dto, nil
}

func (s *CommunityService) ListDiscussions(ctx context.Context) ([]DiscussionDTO, error) {
	discussions, err := s.repo.ListDiscussions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DiscussionDTO, len(discussions))
	for i, d := range discussions {
		out[i] = toDiscussionDTO(d)
	}
	return out, nil
}

func toPostDTO(p *community.Post) PostDTO {
	return PostDTO{
		ID:        p.ID(),
		Title:     p.Title(),
		Date:      p.Date(),
		Address:   p.Address(),
		ImageURL:  p.ImageURL(),
		CreatedAt: p.CreatedAt(),
	}
}

func toDiscussionDTO(d *community.Discussion) DiscussionDTO {
	return DiscussionDTO{
		ID:          d.ID(),
		Title:       d.Title(),
		Tags:        d.Tags(),
		Author:      d.Author(),
		Description: d.Description(),
		Replies:     d.Replies(),
		CreatedAt:   d.CreatedAt(),
	}
}
