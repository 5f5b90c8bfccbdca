package repository

import (
	"context"
	"time"

	"github.com/PawsProtect/service-welfare/internal/docstore"
	"github.com/PawsProtect/service-welfare/internal/domain/community"
)

type postDocument struct {
	Title     string    `mapstructure:"title" validate:"required"`
	Date      string    `mapstructure:"date"`
	Address   string    `mapstructure:"address"`
	ImageURL  *string   `mapstructure:"imageUrl"`
	CreatedAt time.Time `mapstructure:"createdAt" validate:"required"`
}

type discussionDocument struct {
	Title       string    `mapstructure:"title" validate:"required"`
	Tags        []string  `mapstructure:"tags"`
	Author      string    `mapstructure:"author" validate:"required"`
	Description string    `mapstructure:"description"`
	Replies     int       `mapstructure:"replies" validate:"gte=0"`
	CreatedAt   time.Time `mapstructure:"createdAt" validate:"required"`
}

// CommunityRepository stores posts and discussions.
type CommunityRepository struct {
	store docstore.Store
}

// NewCommunityRepository creates a new CommunityRepository.
func NewCommunityRepository(store docstore.Store) *CommunityRepository {
	return &CommunityRepository{store: store}
}

func (r *CommunityRepository) CreatePost(ctx context.Context, p *community.Post) (string, error) {
	id, err := r.store.Create(ctx, docstore.Posts, map[string]any{
		"title":     p.Title(),
		"date":      p.Date(),
		"address":   p.Address(),
		"imageUrl":  nullable(p.ImageURL()),
		"createdAt": docstore.FormatTime(p.CreatedAt()),
	})
	if err != nil {
		return "", storeError("post", "", err)
	}
	return id, nil
}

func (r *CommunityRepository) ListPosts(ctx context.Context) ([]*community.Post, error) {
	docs, err := r.store.Query(ctx, docstore.Query{Collection: docstore.Posts, OrderBy: "createdAt", Desc: true})
	if err != nil {
		return nil, storeError("post", "", err)
	}
	out := make([]*community.Post, 0, len(docs))
	for _, doc := range docs {
		m, err := decodeDocument[postDocument](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, community.ReconstructPost(doc.ID, m.Title, m.Date, m.Address, optionalString(m.ImageURL), m.CreatedAt))
	}
	return out, nil
}

func (r *CommunityRepository) CreateDiscussion(ctx context.Context, d *community.Discussion) (string, error) {
	id, err := r.store.Create(ctx, docstore.Discussions, map[string]any{
		"title":       d.Title(),
		"tags":        d.Tags(),
		"author":      d.Author(),
		"description": d.Description(),
		"replies":     d.Replies(),
		"createdAt":   docstore.FormatTime(d.CreatedAt()),
	})
	if err != nil {
		return "", storeError("discussion", "", err)
	}
	return id, nil
}

func (r *CommunityRepository) ListDiscussions(ctx context.Context) ([]*community.Discussion, error) {
	docs, err := r.store.Query(ctx, docstore.Query{Collection: docstore.Discussions, OrderBy: "createdAt", Desc: true})
	if err != nil {
		return nil, storeError("discussion", "", err)
	}
	out := make([]*community.Discussion, 0, len(docs))
	for _, doc := range docs {
		m, err := decodeDocument[discussionDocument](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, community.ReconstructDiscussion(doc.ID, m.Title, m.Tags, m.Author, m.Description, m.Replies, m.CreatedAt))
	}
	return out, nil
}
