package model

import "github.com/Guyuepp/blog-client/domain"

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
}

func (m *Category) ToDomain() domain.Category {
	return domain.Category{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Icon:        m.Icon,
		Color:       m.Color,
	}
}

func NewCategoryFromDomain(c *domain.Category) Category {
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
	}
}

type CategorySave struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
}

func NewCategorySave(in domain.CategoryInput) CategorySave {
	return CategorySave{
		ID:          in.ID,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
	}
}
