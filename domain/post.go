package domain

import (
	"context"
	"time"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is representing the Post data struct
type Post struct {
	ID         string     // Server assigned identifier
	Title      string     // Post title
	Content    string     // Markdown body
	Summary    string     // Short teaser shown in listings
	Status     PostStatus // draft or published
	CategoryID int64      // Owning category, 0 when unset
	CreatedAt  time.Time  // Creation timestamp
	UpdatedAt  time.Time  // Last update timestamp
	ViewCount  int64      // Number of views
	LikeCount  int64      // Number of likes
}

// WithMetric returns a copy of p carrying the counts of m.
func (p Post) WithMetric(m PostMetric) Post {
	p.ViewCount = m.ViewCount
	p.LikeCount = m.LikeCount
	return p
}

// PostInput is the payload of a create (empty ID) or update.
type PostInput struct {
	ID         string     `validate:"omitempty,max=64"`
	Title      string     `validate:"required,max=200"`
	Content    string     `validate:"required"`
	Summary    string     `validate:"max=500"`
	Status     PostStatus `validate:"required,oneof=draft published"`
	CategoryID int64      `validate:"gte=0"`
}

// PostMetric is the authoritative counter state of a post as returned by the gateway.
type PostMetric struct {
	PostID    string
	ViewCount int64
	LikeCount int64
}

// PostFilters is the criteria set of a post query surface. Zero values mean "any".
type PostFilters struct {
	Keyword     string
	Status      PostStatus
	CategoryID  int64
	CreatedFrom string // yyyy-mm-dd or RFC 3339
	CreatedTo   string
	UpdatedFrom string
	UpdatedTo   string
}

// PostProjection is anything holding a local copy of posts that must follow counter
// changes.
type PostProjection interface {
	ApplyMetric(m PostMetric)
}

// PostGateway is the remote contract for posts.
type PostGateway interface {
	// FetchPosts returns the unpaged collection.
	FetchPosts(ctx context.Context) ([]Post, error)
	// QueryPosts returns one window of the filtered collection.
	QueryPosts(ctx context.Context, req PageRequest[PostFilters]) (Page[Post], error)
	// SavePost creates the post when in.ID is empty and updates it otherwise.
	SavePost(ctx context.Context, in PostInput) (Post, error)
	DeletePost(ctx context.Context, id string) error

	RecordView(ctx context.Context, id string) (PostMetric, error)
	Like(ctx context.Context, id string) (PostMetric, error)
	Unlike(ctx context.Context, id string) (PostMetric, error)
}
