package community

import (
	"context"
	"strings"
	"time"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// Post is a community event announcement.
type Post struct {
	id        string
	title     string
	date      string
	address   string
	imageURL  domain.Optional[string]
	createdAt time.Time
}

// NewPost validates and creates an event post. Date is free text as entered.
func NewPost(title, date, address string, imageURL domain.Optional[string], now time.Time) (*Post, error) {
	switch {
	case strings.TrimSpace(title) == "":
		return nil, domain.NewFieldValidationError("title", "title is required")
	case strings.TrimSpace(date) == "":
		return nil, domain.NewFieldValidationError("date", "date is required")
	case strings.TrimSpace(address) == "":
		return nil, domain.NewFieldValidationError("address", "address is required")
	}
	return &Post{
		title:     strings.TrimSpace(title),
		date:      strings.TrimSpace(date),
		address:   strings.TrimSpace(address),
		imageURL:  imageURL,
		createdAt: now.UTC(),
	}, nil
}

// ReconstructPost rebuilds a Post from persistence.
func ReconstructPost(id, title, date, address string, imageURL domain.Optional[string], createdAt time.Time) *Post {
	return &Post{id: id, title: title, date: date, address: address, imageURL: imageURL, createdAt: createdAt}
}

func (p *Post) ID() string { return p.id }
func (p *Post) Title() string { return p.title }
func (p *Post) Date() string { return p.date }
func (p *Post) Address() string { return p.address }
func (p *Post) ImageURL() domain.Optional[string] { return p.imageURL }
func (p *Post) CreatedAt() time.Time { return p.createdAt }
func (p *Post) SetID(id string) { p.id = id }

// Discussion is a community discussion thread.
type Discussion struct {
	id          string
	title       string
	tags        []string
	author      string
	description string
	replies     int
	createdAt   time.Time
}

// SplitTags turns a comma separated tag list into trimmed, non-empty tags.
func SplitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// NewDiscussion starts a thread with no replies.
func NewDiscussion(title, rawTags, author, description string, now time.Time) (*Discussion, error) {
	switch {
	case strings.TrimSpace(title) == "":
		return nil, domain.NewFieldValidationError("title", "title is required")
	case strings.TrimSpace(author) == "":
		return nil, domain.NewFieldValidationError("author", "please provide your name")
	}
	return &Discussion{
		title:       strings.TrimSpace(title),
		tags:        SplitTags(rawTags),
		author:      strings.TrimSpace(author),
		description: strings.TrimSpace(description),
		createdAt:   now.UTC(),
	}, nil
}

// ReconstructDiscussion rebuilds a Discussion from persistence.
func ReconstructDiscussion(id, title string, tags []string, author, description string, replies int, createdAt time.Time) *Discussion {
	if tags == nil {
		tags = []string{}
	}
	return &Discussion{
		id:          id,
		title:       title,
		tags:        tags,
		author:      author,
		description: description,
		replies:     replies,
		createdAt:   createdAt,
	}
}

func (d *Discussion) ID() string { return d.id }
func (d *Discussion) Title() string { return d.title }
func (d *Discussion) Tags() []string { return append([]string(nil), d.tags...) }
func (d *Discussion) Author() string { return d.author }
func (d *Discussion) Description() string { return d.description }
func (d *Discussion) Replies() int { return d.replies }
func (d *Discussion) CreatedAt() time.Time { return d.createdAt }
func (d *Discussion) SetID(id string) { d.id = id }

// Repository persists posts and discussions.
type Repository interface {
	CreatePost(ctx context.Context, p *Post) (string, error)
	ListPosts(ctx context.Context) ([]*Post, error)
	CreateDiscussion(ctx context.Context, d *Discussion) (string, error)
	ListDiscussions(ctx context.Context) ([]*Discussion, error)
}
