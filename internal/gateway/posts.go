package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/gateway/model"
)

func (c *Client) FetchPosts(ctx context.Context) ([]domain.Post, error) {
	res, err := call[[]model.Post](ctx, c, request{op: "posts.list", method: http.MethodGet, path: "/posts"})
	if err != nil {
		return nil, err
	}
	posts := make([]domain.Post, len(res))
	for i := range res {
		posts[i] = res[i].ToDomain()
	}
	return posts, nil
}

func (c *Client) QueryPosts(ctx context.Context, req domain.PageRequest[domain.PostFilters]) (domain.Page[domain.Post], error) {
	q := pageQuery(req.Page, req.PageSize)
	f := req.Filters
	setIfNotEmpty(q, "keyword", f.Keyword)
	setIfNotEmpty(q, "status", string(f.Status))
	if f.CategoryID > 0 {
		q.Set("category_id", strconv.FormatInt(f.CategoryID, 10))
	}
	setIfNotEmpty(q, "created_from", f.CreatedFrom)
	setIfNotEmpty(q, "created_to", f.CreatedTo)
	setIfNotEmpty(q, "updated_from", f.UpdatedFrom)
	setIfNotEmpty(q, "updated_to", f.UpdatedTo)

	res, err := call[model.Page[model.Post]](ctx, c, request{op: "posts.page", method: http.MethodGet, path: "/posts/page", query: q})
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}
	return model.PageToDomain(res, (*model.Post).ToDomain), nil
}

func (c *Client) SavePost(ctx context.Context, in domain.PostInput) (domain.Post, error) {
	res, err := call[model.Post](ctx, c, request{
		op:     "posts.save",
		method: http.MethodPost,
		path:   "/posts",
		body:   model.NewPostSave(in),
		auth:   true,
	})
	if err != nil {
		return domain.Post{}, err
	}
	return res.ToDomain(), nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	_, err := call[struct{}](ctx, c, request{
		op:     "posts.delete",
		method: http.MethodDelete,
		path:   "/posts/" + url.PathEscape(id),
		auth:   true,
	})
	return err
}

func (c *Client) RecordView(ctx context.Context, id string) (domain.PostMetric, error) {
	return c.metric(ctx, "posts.view", id, "view")
}

func (c *Client) Like(ctx context.Context, id string) (domain.PostMetric, error) {
	return c.metric(ctx, "posts.like", id, "like")
}

func (c *Client) Unlike(ctx context.Context, id string) (domain.PostMetric, error) {
	return c.metric(ctx, "posts.unlike", id, "unlike")
}

func (c *Client) metric(ctx context.Context, op, id, action string) (domain.PostMetric, error) {
	res, err := call[model.PostMetric](ctx, c, request{
		op:     op,
		method: http.MethodPost,
		path:   "/posts/" + url.PathEscape(id) + "/" + action,
		body:   struct{}{},
	})
	if err != nil {
		return domain.PostMetric{}, err
	}
	return res.ToDomain(), nil
}
