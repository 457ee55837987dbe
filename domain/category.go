package domain

import "context"

// Category groups posts.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Icon        string
	Color       string
}

// CategoryInput is the payload of a create (zero ID) or update.
type CategoryInput struct {
	ID          int64  `validate:"gte=0"`
	Name        string `validate:"required,max=64"`
	Slug        string `validate:"required,max=64"`
	Description string `validate:"max=255"`
	Icon        string `validate:"max=64"`
	Color       string `validate:"max=32"`
}

// CategoryFilters is the criteria set of the admin category surface.
type CategoryFilters struct {
	Keyword string
	Slug    string
}

type CategoryGateway interface {
	FetchCategories(ctx context.Context) ([]Category, error)
	QueryCategories(ctx context.Context, req PageRequest[CategoryFilters]) (Page[Category], error)
	SaveCategory(ctx context.Context, in CategoryInput) (Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
