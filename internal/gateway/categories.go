package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/gateway/model"
)

func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	res, err := call[[]model.Category](ctx, c, request{op: "categories.list", method: http.MethodGet, path: "/categories"})
	if err != nil {
		return nil, err
	}
	cats := make([]domain.Category, len(res))
	for i := range res {
		cats[i] = res[i].ToDomain()
	}
	return cats, nil
}

func (c *Client) QueryCategories(ctx context.Context, req domain.PageRequest[domain.CategoryFilters]) (domain.Page[domain.Category], error) {
	q := pageQuery(req.Page, req.PageSize)
	setIfNotEmpty(q, "keyword", req.Filters.Keyword)
	setIfNotEmpty(q, "slug", req.Filters.Slug)

	res, err := call[model.Page[model.Category]](ctx, c, request{op: "categories.page", method: http.MethodGet, path: "/categories/page", query: q})
	if err != nil {
		return domain.Page[domain.Category]{}, err
	}
	return model.PageToDomain(res, (*model.Category).ToDomain), nil
}

func (c *Client) SaveCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error) {
	res, err := call[model.Category](ctx, c, request{
		op:     "categories.save",
		method: http.MethodPost,
		path:   "/categories",
		body:   model.NewCategorySave(in),
		auth:   true,
	})
	if err != nil {
		return domain.Category{}, err
	}
	return res.ToDomain(), nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	_, err := call[struct{}](ctx, c, request{
		op:     "categories.delete",
		method: http.MethodDelete,
		path:   "/categories/" + strconv.FormatInt(id, 10),
		auth:   true,
	})
	return err
}
