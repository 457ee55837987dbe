package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/gateway/model"
)

func (c *Client) FetchConfigs(ctx context.Context) ([]domain.Config, error) {
	res, err := call[[]model.Config](ctx, c, request{op: "configs.list", method: http.MethodGet, path: "/configs"})
	if err != nil {
		return nil, err
	}
	configs := make([]domain.Config, len(res))
	for i := range res {
		configs[i] = res[i].ToDomain()
	}
	return configs, nil
}

func (c *Client) UpdateConfig(ctx context.Context, key, value string, typ domain.ConfigType) (domain.Config, error) {
	res, err := call[model.Config](ctx, c, request{
		op:     "configs.update",
		method: http.MethodPost,
		path:   "/configs/" + url.PathEscape(key),
		body:   model.ConfigUpdate{Value: value, Type: string(typ)},
		auth:   true,
	})
	if err != nil {
		return domain.Config{}, err
	}
	return res.ToDomain(), nil
}
