// Package memory is an in-process domain.Gateway holding its data in maps. It backs
// offline mode and tests.
package memory

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Guyuepp/blog-client/domain"
)

type Gateway struct {
	mu         sync.Mutex
	posts      map[string]domain.Post
	categories map[int64]domain.Category
	configs    []domain.Config
	users      map[string]string
	sessions   map[string]bool
	tokens     domain.TokenSource
	nextCatID  int64
	failures   map[string]error
	now        func() time.Time
}

var _ domain.Gateway = (*Gateway)(nil)

// New will create an empty gateway accepting the given username/password pairs. tokens
// supplies the bearer token for authenticated calls, as the HTTP client would send it.
func New(users map[string]string, tokens domain.TokenSource) *Gateway {
	if users == nil {
		users = map[string]string{}
	}
	return &Gateway{
		posts:      make(map[string]domain.Post),
		categories: make(map[int64]domain.Category),
		users:      users,
		sessions:   make(map[string]bool),
		tokens:     tokens,
		nextCatID:  1,
		failures:   make(map[string]error),
		now:        time.Now,
	}
}

// Fail makes every subsequent call of op return err until cleared with a nil err.
// Operation names match the HTTP client's ("posts.like", "configs.list", ...).
func (g *Gateway) Fail(op string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		delete(g.failures, op)
		return
	}
	g.failures[op] = err
}

// PutPost stores p as is, bypassing validation.
func (g *Gateway) PutPost(p domain.Post) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.posts[p.ID] = p
}

// PutCategory stores c as is.
func (g *Gateway) PutCategory(c domain.Category) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.categories[c.ID] = c
	if c.ID >= g.nextCatID {
		g.nextCatID = c.ID + 1
	}
}

// PutConfig stores or replaces c.
func (g *Gateway) PutConfig(c domain.Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.putConfigLocked(c)
}

func (g *Gateway) putConfigLocked(c domain.Config) {
	for i := range g.configs {
		if g.configs[i].Key == c.Key {
			g.configs[i] = c
			return
		}
	}
	g.configs = append(g.configs, c)
}

func (g *Gateway) fail(op string) error {
	return g.failures[op]
}

func (g *Gateway) authorized(ctx context.Context) bool {
	if g.tokens == nil {
		return false
	}
	return g.sessions[g.tokens.Token(ctx)]
}

func unauthorized() error {
	return &domain.GatewayError{Status: 401, Code: 401, Message: "Unauthorized"}
}

func notFound(what string) error {
	return &domain.GatewayError{Status: 404, Code: 404, Message: what + " not found"}
}

func (g *Gateway) sortedPostsLocked() []domain.Post {
	res := make([]domain.Post, 0, len(g.posts))
	for _, p := range g.posts {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res
}

func (g *Gateway) FetchPosts(ctx context.Context) ([]domain.Post, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("posts.list"); err != nil {
		return nil, err
	}
	return g.sortedPostsLocked(), nil
}

func (g *Gateway) QueryPosts(ctx context.Context, req domain.PageRequest[domain.PostFilters]) (domain.Page[domain.Post], error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("posts.page"); err != nil {
		return domain.Page[domain.Post]{}, err
	}

	f := req.Filters
	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))
	matched := make([]domain.Post, 0)
	for _, p := range g.sortedPostsLocked() {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(p.Title), keyword) &&
			!strings.Contains(strings.ToLower(p.Summary), keyword) &&
			!strings.Contains(strings.ToLower(p.Content), keyword) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.CategoryID > 0 && p.CategoryID != f.CategoryID {
			continue
		}
		if !inRange(p.CreatedAt, f.CreatedFrom, f.CreatedTo) || !inRange(p.UpdatedAt, f.UpdatedFrom, f.UpdatedTo) {
			continue
		}
		matched = append(matched, p)
	}
	return window(matched, req.Page, req.PageSize), nil
}

// inRange compares on the calendar day, both bounds inclusive.
func inRange(t time.Time, from, to string) bool {
	day := t.UTC().Format(time.DateOnly)
	if from != "" && day < dayOf(from) {
		return false
	}
	if to != "" && day > dayOf(to) {
		return false
	}
	return true
}

func dayOf(s string) string {
	if len(s) >= len(time.DateOnly) {
		return s[:len(time.DateOnly)]
	}
	return s
}

func window[T any](all []T, page, pageSize int) domain.Page[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	start := (page - 1) * pageSize
	records := []T{}
	if start < len(all) {
		end := min(start+pageSize, len(all))
		records = append(records, all[start:end]...)
	}
	return domain.Page[T]{Records: records, Total: int64(len(all)), Page: page, PageSize: pageSize}
}

func (g *Gateway) SavePost(ctx context.Context, in domain.PostInput) (domain.Post, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("posts.save"); err != nil {
		return domain.Post{}, err
	}
	if !g.authorized(ctx) {
		return domain.Post{}, unauthorized()
	}

	now := g.now().UTC()
	p := domain.Post{ID: in.ID, CreatedAt: now}
	if in.ID != "" {
		existing, ok := g.posts[in.ID]
		if !ok {
			return domain.Post{}, notFound("post")
		}
		p = existing
	} else {
		p.ID = uuid.NewString()
	}
	p.Title = in.Title
	p.Content = in.Content
	p.Summary = in.Summary
	p.Status = in.Status
	p.CategoryID = in.CategoryID
	p.UpdatedAt = now
	g.posts[p.ID] = p
	return p, nil
}

func (g *Gateway) DeletePost(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("posts.delete"); err != nil {
		return err
	}
	if !g.authorized(ctx) {
		return unauthorized()
	}
	if _, ok := g.posts[id]; !ok {
		return notFound("post")
	}
	delete(g.posts, id)
	return nil
}

func (g *Gateway) RecordView(ctx context.Context, id string) (domain.PostMetric, error) {
	return g.bump("posts.view", id, 1, 0)
}

func (g *Gateway) Like(ctx context.Context, id string) (domain.PostMetric, error) {
	return g.bump("posts.like", id, 0, 1)
}

func (g *Gateway) Unlike(ctx context.Context, id string) (domain.PostMetric, error) {
	return g.bump("posts.unlike", id, 0, -1)
}

func (g *Gateway) bump(op, id string, views, likes int64) (domain.PostMetric, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail(op); err != nil {
		return domain.PostMetric{}, err
	}
	p, ok := g.posts[id]
	if !ok {
		return domain.PostMetric{}, notFound("post")
	}
	p.ViewCount += views
	p.LikeCount = max(p.LikeCount+likes, 0)
	g.posts[id] = p
	return domain.PostMetric{PostID: id, ViewCount: p.ViewCount, LikeCount: p.LikeCount}, nil
}

func (g *Gateway) sortedCategoriesLocked() []domain.Category {
	res := make([]domain.Category, 0, len(g.categories))
	for _, c := range g.categories {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

func (g *Gateway) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("categories.list"); err != nil {
		return nil, err
	}
	return g.sortedCategoriesLocked(), nil
}

func (g *Gateway) QueryCategories(ctx context.Context, req domain.PageRequest[domain.CategoryFilters]) (domain.Page[domain.Category], error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("categories.page"); err != nil {
		return domain.Page[domain.Category]{}, err
	}
	keyword := strings.ToLower(strings.TrimSpace(req.Filters.Keyword))
	slug := strings.ToLower(strings.TrimSpace(req.Filters.Slug))
	matched := make([]domain.Category, 0)
	for _, c := range g.sortedCategoriesLocked() {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(c.Name), keyword) &&
			!strings.Contains(strings.ToLower(c.Description), keyword) {
			continue
		}
		if slug != "" && !strings.Contains(strings.ToLower(c.Slug), slug) {
			continue
		}
		matched = append(matched, c)
	}
	return window(matched, req.Page, req.PageSize), nil
}

func (g *Gateway) SaveCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("categories.save"); err != nil {
		return domain.Category{}, err
	}
	if !g.authorized(ctx) {
		return domain.Category{}, unauthorized()
	}
	id := in.ID
	if id == 0 {
		id = g.nextCatID
		g.nextCatID++
	} else if _, ok := g.categories[id]; !ok {
		return domain.Category{}, notFound("category")
	}
	c := domain.Category{
		ID:          id,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
	}
	g.categories[id] = c
	return c, nil
}

func (g *Gateway) DeleteCategory(ctx context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("categories.delete"); err != nil {
		return err
	}
	if !g.authorized(ctx) {
		return unauthorized()
	}
	if _, ok := g.categories[id]; !ok {
		return notFound("category")
	}
	delete(g.categories, id)
	return nil
}

func (g *Gateway) FetchConfigs(ctx context.Context) ([]domain.Config, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("configs.list"); err != nil {
		return nil, err
	}
	return append([]domain.Config(nil), g.configs...), nil
}

func (g *Gateway) UpdateConfig(ctx context.Context, key, value string, typ domain.ConfigType) (domain.Config, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("configs.update"); err != nil {
		return domain.Config{}, err
	}
	if !g.authorized(ctx) {
		return domain.Config{}, unauthorized()
	}
	c := domain.Config{Key: key, Value: value, Type: typ}
	if c.Type == "" {
		c.Type = domain.ConfigWebsiteSettings
		for _, existing := range g.configs {
			if existing.Key == key {
				c.Type = existing.Type
			}
		}
	}
	g.putConfigLocked(c)
	return c, nil
}

func (g *Gateway) UploadAssets(ctx context.Context, files []domain.AssetFile, folder string) ([]domain.UploadedAsset, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("assets.upload"); err != nil {
		return nil, err
	}
	if !g.authorized(ctx) {
		return nil, unauthorized()
	}
	if len(files) == 0 {
		return nil, domain.ErrBadParamInput
	}
	res := make([]domain.UploadedAsset, 0, len(files))
	for i, f := range files {
		var size int64
		if f.Reader != nil {
			n, err := io.Copy(io.Discard, f.Reader)
			if err != nil {
				return nil, err
			}
			size = n
		}
		rel := strconv.Itoa(i) + "-" + f.Name
		if folder != "" {
			rel = strings.Trim(folder, "/") + "/" + rel
		}
		res = append(res, domain.UploadedAsset{
			OriginalName: f.Name,
			URL:          "/uploads/" + rel,
			RelativePath: rel,
			Size:         size,
		})
	}
	return res, nil
}

func (g *Gateway) Login(ctx context.Context, cred domain.Credentials) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("auth.login"); err != nil {
		return "", err
	}
	if pw, ok := g.users[cred.Username]; !ok || pw != cred.Password {
		return "", unauthorized()
	}
	token := uuid.NewString()
	g.sessions[token] = true
	return token, nil
}

func (g *Gateway) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("auth.logout"); err != nil {
		return err
	}
	if g.tokens != nil {
		delete(g.sessions, g.tokens.Token(ctx))
	}
	return nil
}

func (g *Gateway) CheckSession(ctx context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("auth.session"); err != nil {
		return false, err
	}
	return g.authorized(ctx), nil
}

// Expire drops every session, as a server-side expiry would.
func (g *Gateway) Expire() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions = make(map[string]bool)
}
