package model

import (
	"time"

	"github.com/Guyuepp/blog-client/domain"
)

// Envelope is the uniform response wrapper of the remote API.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type Post struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Summary    string `json:"summary"`
	Status     string `json:"status"`
	CategoryID int64  `json:"category_id"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	ViewCount  *int64 `json:"view_count,omitempty"`
	LikeCount  *int64 `json:"like_count,omitempty"`
}

func (m *Post) ToDomain() domain.Post {
	p := domain.Post{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Content,
		Summary:    m.Summary,
		Status:     domain.PostStatus(m.Status),
		CategoryID: m.CategoryID,
		CreatedAt:  parseTime(m.CreatedAt),
		UpdatedAt:  parseTime(m.UpdatedAt),
	}
	if m.ViewCount != nil {
		p.ViewCount = *m.ViewCount
	}
	if m.LikeCount != nil {
		p.LikeCount = *m.LikeCount
	}
	return p
}

func NewPostFromDomain(p *domain.Post) Post {
	views, likes := p.ViewCount, p.LikeCount
	return Post{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Summary:    p.Summary,
		Status:     string(p.Status),
		CategoryID: p.CategoryID,
		CreatedAt:  formatTime(p.CreatedAt),
		UpdatedAt:  formatTime(p.UpdatedAt),
		ViewCount:  &views,
		LikeCount:  &likes,
	}
}

type PostSave struct {
	ID         string `json:"id,omitempty"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Summary    string `json:"summary"`
	Status     string `json:"status"`
	CategoryID int64  `json:"category_id"`
}

func NewPostSave(in domain.PostInput) PostSave {
	return PostSave{
		ID:         in.ID,
		Title:      in.Title,
		Content:    in.Content,
		Summary:    in.Summary,
		Status:     string(in.Status),
		CategoryID: in.CategoryID,
	}
}

type PostMetric struct {
	PostID    string `json:"post_id"`
	ViewCount int64  `json:"view_count"`
	LikeCount int64  `json:"like_count"`
}

func (m PostMetric) ToDomain() domain.PostMetric {
	return domain.PostMetric{PostID: m.PostID, ViewCount: m.ViewCount, LikeCount: m.LikeCount}
}

type Page[T any] struct {
	Records  []T   `json:"records"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// PageToDomain converts a wire page using conv for each record.
func PageToDomain[W any, T any](p Page[W], conv func(*W) T) domain.Page[T] {
	res := domain.Page[T]{
		Records:  make([]T, len(p.Records)),
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	for i := range p.Records {
		res.Records[i] = conv(&p.Records[i])
	}
	return res
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
