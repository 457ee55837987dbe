// Package catalog holds the bulk (unpaged) collections of posts, categories and configs
// shared by every screen, and performs the CRUD mutations that change them.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/blog-client/domain"
)

// Gateway is the part of the remote API the catalog needs.
type Gateway interface {
	domain.PostGateway
	domain.CategoryGateway
	domain.ConfigGateway
	domain.AssetGateway
}

type Service struct {
	gateway  Gateway
	validate *validator.Validate
	notifier domain.Notifier
	group    singleflight.Group

	mu         sync.RWMutex
	posts      []domain.Post
	categories []domain.Category
	configs    []domain.Config
	loaded     bool

	// metricSeq numbers every applied metric. recent keeps the latest metric per post
	// that a refresh in flight may not have seen yet.
	metricSeq uint64
	recent    map[string]sequencedMetric
}

type sequencedMetric struct {
	seq    uint64
	metric domain.PostMetric
}

var _ domain.PostProjection = (*Service)(nil)

// NewService will create an empty catalog. Call Refresh to load it.
func NewService(g Gateway, v *validator.Validate, n domain.Notifier) *Service {
	if v == nil {
		v = validator.New()
	}
	return &Service{
		gateway:  g,
		validate: v,
		notifier: n,
		recent:   make(map[string]sequencedMetric),
	}
}

type bulk struct {
	posts      []domain.Post
	categories []domain.Category
	configs    []domain.Config
}

// Refresh reloads the three collections concurrently and replaces them wholesale once
// all of them arrived. Concurrent calls share one round trip. On failure nothing is
// replaced. Metrics applied while the refresh was in flight are re-applied to the new
// posts, so a counter update is never rolled back to the older fetched counts.
func (s *Service) Refresh(ctx context.Context) error {
	_, err, _ := s.group.Do("bulk", func() (any, error) {
		s.mu.RLock()
		issued := s.metricSeq
		s.mu.RUnlock()

		var b bulk
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			b.posts, err = s.gateway.FetchPosts(gctx)
			return err
		})
		g.Go(func() (err error) {
			b.categories, err = s.gateway.FetchCategories(gctx)
			return err
		})
		g.Go(func() (err error) {
			b.configs, err = s.gateway.FetchConfigs(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		s.mu.Lock()
		for id, r := range s.recent {
			if r.seq <= issued {
				delete(s.recent, id)
				continue
			}
			if idx := slices.IndexFunc(b.posts, func(p domain.Post) bool { return p.ID == id }); idx >= 0 {
				b.posts[idx] = b.posts[idx].WithMetric(r.metric)
			}
		}
		s.posts = b.posts
		s.categories = b.categories
		s.configs = b.configs
		s.loaded = true
		s.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		logrus.Errorf("failed to refresh catalog: %v", err)
		return err
	}
	return nil
}

// Loaded reports whether at least one refresh completed.
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Service) Posts() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

func (s *Service) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

func (s *Service) Configs() []domain.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.configs)
}

// FindPost returns the bulk copy of post id.
func (s *Service) FindPost(id string) (domain.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Post{}, false
}

// ConfigValue returns the value of the site config key.
func (s *Service) ConfigValue(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.LookupConfig(s.configs, key)
}

// ApplyMetric sets the counts of the bulk copy of the post to the authoritative values.
func (s *Service) ApplyMetric(m domain.PostMetric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metricSeq++
	s.recent[m.PostID] = sequencedMetric{seq: s.metricSeq, metric: m}
	idx := slices.IndexFunc(s.posts, func(p domain.Post) bool { return p.ID == m.PostID })
	if idx < 0 {
		return
	}
	next := slices.Clone(s.posts)
	next[idx] = next[idx].WithMetric(m)
	s.posts = next
}

func (s *Service) SavePost(ctx context.Context, in domain.PostInput) (domain.Post, error) {
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return domain.Post{}, s.fail("posts.save", fmt.Errorf("%w: %v", domain.ErrBadParamInput, err), "Failed to save post")
	}
	saved, err := s.gateway.SavePost(ctx, in)
	if err != nil {
		return domain.Post{}, s.fail("posts.save", err, "Failed to save post")
	}
	return saved, s.refreshAfter(ctx, "posts.save")
}

func (s *Service) DeletePost(ctx context.Context, id string) error {
	if id == "" {
		return s.fail("posts.delete", domain.ErrBadParamInput, "Failed to delete post")
	}
	if err := s.gateway.DeletePost(ctx, id); err != nil {
		return s.fail("posts.delete", err, "Failed to delete post")
	}
	return s.refreshAfter(ctx, "posts.delete")
}

func (s *Service) SaveCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error) {
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return domain.Category{}, s.fail("categories.save", fmt.Errorf("%w: %v", domain.ErrBadParamInput, err), "Failed to save category")
	}
	saved, err := s.gateway.SaveCategory(ctx, in)
	if err != nil {
		return domain.Category{}, s.fail("categories.save", err, "Failed to save category")
	}
	return saved, s.refreshAfter(ctx, "categories.save")
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return s.fail("categories.delete", domain.ErrBadParamInput, "Failed to delete category")
	}
	if err := s.gateway.DeleteCategory(ctx, id); err != nil {
		return s.fail("categories.delete", err, "Failed to delete category")
	}
	return s.refreshAfter(ctx, "categories.delete")
}

// UpdateConfig writes one site setting, keeping its current type.
func (s *Service) UpdateConfig(ctx context.Context, key, value string) (domain.Config, error) {
	if key == "" {
		return domain.Config{}, s.fail("configs.update", domain.ErrBadParamInput, "Failed to update setting")
	}
	var typ domain.ConfigType
	s.mu.RLock()
	for _, c := range s.configs {
		if c.Key == key {
			typ = c.Type
		}
	}
	s.mu.RUnlock()

	saved, err := s.gateway.UpdateConfig(ctx, key, value, typ)
	if err != nil {
		return domain.Config{}, s.fail("configs.update", err, "Failed to update setting")
	}
	return saved, s.refreshAfter(ctx, "configs.update")
}

// UploadAssets stores files on the server. Uploads do not touch the bulk collections.
func (s *Service) UploadAssets(ctx context.Context, files []domain.AssetFile, folder string) ([]domain.UploadedAsset, error) {
	if len(files) == 0 {
		return nil, s.fail("assets.upload", domain.ErrBadParamInput, "No files to upload")
	}
	res, err := s.gateway.UploadAssets(ctx, files, folder)
	if err != nil {
		return nil, s.fail("assets.upload", err, "Failed to upload files")
	}
	return res, nil
}

// RefreshError reports a mutation the server accepted whose follow-up refresh failed.
// The bulk collections still hold the state from before the mutation.
type RefreshError struct {
	Op  string
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("refresh after %s: %v", e.Op, e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// Committed reports whether err still means the mutation itself succeeded.
func Committed(err error) bool {
	var re *RefreshError
	return err == nil || errors.As(err, &re)
}

// refreshAfter mirrors a successful mutation locally by reloading the collections.
func (s *Service) refreshAfter(ctx context.Context, op string) error {
	if err := s.Refresh(ctx); err != nil {
		return s.fail(op, &RefreshError{Op: op, Err: err}, "Saved, but reloading data failed")
	}
	return nil
}

func (s *Service) fail(source string, err error, fallback string) error {
	if s.notifier != nil {
		s.notifier.Notify(domain.Notice{
			Level:   domain.NoticeError,
			Source:  source,
			Message: domain.Message(err, fallback),
			At:      time.Now(),
		})
	}
	return err
}
