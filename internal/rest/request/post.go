package request

import "github.com/Guyuepp/blog-client/domain"

type PostFilters struct {
	Keyword     string `json:"keyword"`
	Status      string `json:"status" binding:"omitempty,oneof=draft published"`
	CategoryID  int64  `json:"category_id" binding:"gte=0"`
	CreatedFrom string `json:"created_from"`
	CreatedTo   string `json:"created_to"`
	UpdatedFrom string `json:"updated_from"`
	UpdatedTo   string `json:"updated_to"`
}

// ToDomain: Request -> Domain
func (r *PostFilters) ToDomain() domain.PostFilters {
	return domain.PostFilters{
		Keyword:     r.Keyword,
		Status:      domain.PostStatus(r.Status),
		CategoryID:  r.CategoryID,
		CreatedFrom: r.CreatedFrom,
		CreatedTo:   r.CreatedTo,
		UpdatedFrom: r.UpdatedFrom,
		UpdatedTo:   r.UpdatedTo,
	}
}

type CategoryFilters struct {
	Keyword string `json:"keyword"`
	Slug    string `json:"slug"`
}

func (r *CategoryFilters) ToDomain() domain.CategoryFilters {
	return domain.CategoryFilters{Keyword: r.Keyword, Slug: r.Slug}
}

type Post struct {
	ID         string `json:"id"`                          // empty for CREATE
	Title      string `json:"title" binding:"required"`    // for SAVE
	Content    string `json:"content" binding:"required"`  // for SAVE
	Summary    string `json:"summary"`                     // for SAVE
	Status     string `json:"status" binding:"required"`   // for SAVE
	CategoryID int64  `json:"category_id" binding:"gte=0"` // for SAVE
}

func (r *Post) ToDomain() domain.PostInput {
	return domain.PostInput{
		ID:         r.ID,
		Title:      r.Title,
		Content:    r.Content,
		Summary:    r.Summary,
		Status:     domain.PostStatus(r.Status),
		CategoryID: r.CategoryID,
	}
}

type Category struct {
	ID          int64  `json:"id"` // 0 for CREATE
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

func (r *Category) ToDomain() domain.CategoryInput {
	return domain.CategoryInput{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Icon:        r.Icon,
		Color:       r.Color,
	}
}
