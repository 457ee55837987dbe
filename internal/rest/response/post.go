package response

import (
	"time"

	"github.com/Guyuepp/blog-client/domain"
)

const timeLayout = "2006-01-02 15:04:05"

type Post struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Summary    string `json:"summary"`
	Status     string `json:"status"`
	CategoryID int64  `json:"category_id"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	ViewCount  int64  `json:"view_count"`
	LikeCount  int64  `json:"like_count"`
}

// NewPostFromDomain: Domain -> Response
func NewPostFromDomain(p *domain.Post) Post {
	return Post{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Summary:    p.Summary,
		Status:     string(p.Status),
		CategoryID: p.CategoryID,
		CreatedAt:  formatTime(p.CreatedAt),
		UpdatedAt:  formatTime(p.UpdatedAt),
		ViewCount:  p.ViewCount,
		LikeCount:  p.LikeCount,
	}
}

func NewPosts(posts []domain.Post) []Post {
	res := make([]Post, len(posts))
	for i := range posts {
		res[i] = NewPostFromDomain(&posts[i])
	}
	return res
}

type Metric struct {
	PostID    string `json:"post_id"`
	ViewCount int64  `json:"view_count"`
	LikeCount int64  `json:"like_count"`
}

type Like struct {
	Metric
	Liked   bool `json:"liked"`
	Changed bool `json:"changed"`
}

func NewMetric(m domain.PostMetric) Metric {
	return Metric{PostID: m.PostID, ViewCount: m.ViewCount, LikeCount: m.LikeCount}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
