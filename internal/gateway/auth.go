package gateway

import (
	"context"
	"net/http"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/gateway/model"
)

func (c *Client) Login(ctx context.Context, cred domain.Credentials) (string, error) {
	res, err := call[model.LoginResult](ctx, c, request{
		op:     "auth.login",
		method: http.MethodPost,
		path:   "/auth/login",
		body:   model.LoginRequest{Username: cred.Username, Password: cred.Password},
	})
	if err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", domain.ErrUnauthorized
	}
	return res.Token, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := call[struct{}](ctx, c, request{
		op:     "auth.logout",
		method: http.MethodPost,
		path:   "/auth/logout",
		body:   struct{}{},
		auth:   true,
	})
	return err
}

func (c *Client) CheckSession(ctx context.Context) (bool, error) {
	res, err := call[model.SessionResult](ctx, c, request{
		op:     "auth.session",
		method: http.MethodGet,
		path:   "/auth/session",
		auth:   true,
	})
	if err != nil {
		return false, err
	}
	return res.LoggedIn, nil
}
