// Package gateway is the HTTP implementation of domain.Gateway against the blog API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/gateway/model"
	"github.com/Guyuepp/blog-client/internal/observability"
)

const (
	DefaultBaseURL = "/api"
	DefaultTimeout = 15 * time.Second

	headerRequestID = "X-Request-ID"
	headerClientID  = "X-Client-ID"
)

// Client talks to the remote blog API. Every response is an envelope
// {code, message, data}; a non-2xx status or a non-zero code is a failure.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   domain.TokenSource
	clientID string
}

var _ domain.Gateway = (*Client)(nil)

// NewClient will create a gateway client for baseURL. tokens may be nil for a client
// that never authenticates.
func NewClient(baseURL string, timeout time.Duration, tokens domain.TokenSource) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		tokens:   tokens,
		clientID: uuid.NewString(),
	}
}

// ClientID identifies this client instance in request headers.
func (c *Client) ClientID() string {
	return c.clientID
}

type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	auth   bool

	// raw bodies (multipart) bypass JSON encoding
	raw         io.Reader
	contentType string
}

func call[T any](ctx context.Context, c *Client, r request) (res T, err error) {
	done := observability.TrackGateway(r.op)
	defer func() { done(err) }()

	var body io.Reader
	contentType := r.contentType
	switch {
	case r.raw != nil:
		body = r.raw
	case r.body != nil:
		data, err := json.Marshal(r.body)
		if err != nil {
			return res, fmt.Errorf("encode %s request: %w", r.op, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return res, fmt.Errorf("build %s request: %w", r.op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())
	req.Header.Set(headerClientID, c.clientID)
	if r.auth && c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return res, fmt.Errorf("%s: %w", r.op, err)
	}
	defer resp.Body.Close()

	var env model.Envelope[T]
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)
	if decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return res, &domain.GatewayError{Status: resp.StatusCode}
		}
		return res, fmt.Errorf("decode %s response: %w", r.op, decodeErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || env.Code != 0 {
		logrus.Debugf("gateway %s failed: status=%d code=%d message=%q", r.op, resp.StatusCode, env.Code, env.Message)
		return res, &domain.GatewayError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}
	return env.Data, nil
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if pageSize > 0 {
		q.Set("page_size", fmt.Sprint(pageSize))
	}
	return q
}
