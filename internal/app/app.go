// Package app wires the state core of the client together and exposes the operations
// the renderer and the CLI drive.
package app

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/config"
	"github.com/Guyuepp/blog-client/internal/notice"
	"github.com/Guyuepp/blog-client/internal/usecase/catalog"
	"github.com/Guyuepp/blog-client/internal/usecase/metrics"
	"github.com/Guyuepp/blog-client/internal/usecase/navigation"
	"github.com/Guyuepp/blog-client/internal/usecase/preferences"
	"github.com/Guyuepp/blog-client/internal/usecase/query"
	"github.com/Guyuepp/blog-client/internal/usecase/session"
	"github.com/Guyuepp/blog-client/internal/workers"
)

type App struct {
	Notices     *notice.Feed
	State       domain.ClientStateRepository
	Gateway     domain.Gateway
	Catalog     *catalog.Service
	Session     *session.Service
	Preferences *preferences.Service
	Metrics     *metrics.Synchronizer
	Router      *navigation.Router

	PublicSearch    *query.PostController
	AdminPosts      *query.PostController
	AdminCategories *query.CategoryController

	viewWorker domain.ViewTrackWorker
}

// New builds the client from its configuration, its persisted state and the gateway.
func New(cfg *config.Config, state domain.ClientStateRepository, gw domain.Gateway) *App {
	v := validator.New()
	feed := notice.NewFeed(notice.DefaultCapacity)

	cat := catalog.NewService(gw, v, feed)
	sess := session.NewService(gw, state, v)
	prefs := preferences.NewService(state, preferences.Policy{
		FollowSystem: cfg.ThemeFollowSystem,
		SystemTheme:  domain.Theme(cfg.SystemTheme),
	})
	syncer := metrics.NewSynchronizer(gw, state, metrics.Options{
		SwallowViewErrors: cfg.SwallowViewErrors,
		Notifier:          feed,
		Source:            cat,
	})
	router := navigation.NewRouter(sess, cat, navigation.Options{
		StartURL:  cfg.StartURL,
		Activator: syncer,
		Notifier:  feed,
	})

	a := &App{
		Notices:     feed,
		State:       state,
		Gateway:     gw,
		Catalog:     cat,
		Session:     sess,
		Preferences: prefs,
		Metrics:     syncer,
		Router:      router,

		PublicSearch: query.NewController(gw.QueryPosts, query.Options[domain.PostFilters]{
			Surface:   "public-search",
			Defaults:  query.PublicSearchDefaults(0),
			PageSize:  query.PublicSearchPageSize,
			PageSizes: query.PublicSearchPageSizes,
			Notifier:  feed,
		}),
		AdminPosts: query.NewController(gw.QueryPosts, query.Options[domain.PostFilters]{
			Surface:   "admin-posts",
			PageSize:  query.AdminPostPageSize,
			PageSizes: query.AdminPostPageSizes,
			Notifier:  feed,
		}),
		AdminCategories: query.NewController(gw.QueryCategories, query.Options[domain.CategoryFilters]{
			Surface:   "admin-categories",
			PageSize:  query.AdminCatPageSize,
			PageSizes: query.AdminCatPageSizes,
			Notifier:  feed,
		}),
	}

	syncer.Register(cat)
	syncer.Register(router)
	syncer.Register(query.AsPostProjection(a.PublicSearch))
	syncer.Register(query.AsPostProjection(a.AdminPosts))

	if cfg.ViewTracking == "async" {
		a.viewWorker = workers.NewViewTrackWorker(syncer, syncer.ViewFailed)
		syncer.UseWorker(a.viewWorker)
	}
	return a
}

// Start loads preferences, starts the view worker and bootstraps the router. A failed
// bulk load is reported but leaves the client usable.
func (a *App) Start(ctx context.Context) error {
	a.Preferences.Init(ctx)
	if a.viewWorker != nil {
		go a.viewWorker.Start(ctx)
	}
	err := a.Router.Bootstrap(ctx)
	a.Preferences.ApplySiteConfig(ctx, a.Catalog.Configs())
	if err != nil {
		logrus.Errorf("bootstrap finished with errors: %v", err)
	}
	return err
}

// Login signs in through the router and refreshes the admin surfaces that were loaded
// before.
func (a *App) Login(ctx context.Context, cred domain.Credentials) bool {
	if !a.Router.Login(ctx, cred) {
		return false
	}
	a.reloadIfLoaded(ctx, a.AdminPosts.Snapshot().Generation, a.AdminPosts.Reload)
	a.reloadIfLoaded(ctx, a.AdminCategories.Snapshot().Generation, a.AdminCategories.Reload)
	return true
}

func (a *App) Logout(ctx context.Context) {
	a.Router.Logout(ctx)
}

// SavePost saves the editor content, returns to the post list and reloads it.
func (a *App) SavePost(ctx context.Context, in domain.PostInput) (domain.Post, error) {
	saved, err := a.Router.SavePost(ctx, in)
	if saved.ID != "" {
		a.reloadIfLoaded(ctx, a.AdminPosts.Snapshot().Generation, a.AdminPosts.Reload)
	}
	return saved, err
}

// DeletePost deletes a post and reloads the post list. The list is reloaded even when
// the bulk refresh after the delete failed, since the server already removed the post.
func (a *App) DeletePost(ctx context.Context, id string) error {
	err := a.Catalog.DeletePost(ctx, id)
	if !catalog.Committed(err) {
		return err
	}
	a.reloadIfLoaded(ctx, a.AdminPosts.Snapshot().Generation, a.AdminPosts.Reload)
	return err
}

func (a *App) SaveCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error) {
	saved, err := a.Catalog.SaveCategory(ctx, in)
	if err != nil && saved.ID == 0 {
		return domain.Category{}, err
	}
	a.reloadIfLoaded(ctx, a.AdminCategories.Snapshot().Generation, a.AdminCategories.Reload)
	return saved, err
}

func (a *App) DeleteCategory(ctx context.Context, id int64) error {
	err := a.Catalog.DeleteCategory(ctx, id)
	if !catalog.Committed(err) {
		return err
	}
	a.reloadIfLoaded(ctx, a.AdminCategories.Snapshot().Generation, a.AdminCategories.Reload)
	return err
}

// UpdateConfig writes a site setting; a changed site language is applied at once.
func (a *App) UpdateConfig(ctx context.Context, key, value string) (domain.Config, error) {
	saved, err := a.Catalog.UpdateConfig(ctx, key, value)
	if saved.Key != "" {
		a.Preferences.ApplySiteConfig(ctx, a.Catalog.Configs())
	}
	return saved, err
}

func (a *App) reloadIfLoaded(ctx context.Context, generation uint64, reload func(context.Context) error) {
	if generation == 0 {
		return
	}
	if err := reload(ctx); err != nil {
		logrus.Warnf("failed to reload query surface: %v", err)
	}
}
