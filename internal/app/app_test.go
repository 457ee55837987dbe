package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/app"
	"github.com/Guyuepp/blog-client/internal/config"
	"github.com/Guyuepp/blog-client/internal/gateway/memory"
	"github.com/Guyuepp/blog-client/internal/repository"
	memstore "github.com/Guyuepp/blog-client/internal/repository/memory"
	"github.com/Guyuepp/blog-client/internal/usecase/navigation"
)

var admin = domain.Credentials{Username: "admin", Password: "admin"}

func newApp(t *testing.T, startURL string) (*app.App, *memory.Gateway) {
	t.Helper()
	state := repository.NewClientStateRepository(memstore.NewStore())
	gw := memory.New(nil, state)
	memory.Seed(gw)
	a := app.New(&config.Config{
		StartURL:          startURL,
		ViewTracking:      "sync",
		SwallowViewErrors: true,
		SystemTheme:       "light",
	}, state, gw)
	require.NoError(t, a.Start(context.Background()))
	return a, gw
}

func TestHomeFrame(t *testing.T) {
	a, _ := newApp(t, "/")
	f := a.Render(context.Background())

	assert.Equal(t, domain.ViewHome, f.View)
	assert.Len(t, f.Posts, 3, "home lists published posts only")
	assert.Len(t, f.Categories, 5)
	assert.Len(t, f.Configs, 5)
	assert.Nil(t, f.Dashboard)
	assert.Nil(t, f.PublicSearch)
	assert.Equal(t, domain.ThemeLight, f.Theme)
	assert.Equal(t, domain.LanguageZH, f.Language)
	assert.Empty(t, f.Notices)
}

func TestDeepLinkRecordsOneViewPerActivation(t *testing.T) {
	a, _ := newApp(t, "/?post=1")
	ctx := context.Background()

	f := a.Render(ctx)
	require.Equal(t, domain.ViewPostDetail, f.View)
	require.NotNil(t, f.ActivePost)
	assert.Equal(t, int64(1), f.ActivePost.ViewCount)
	assert.Equal(t, "/?post=1", f.ShareURL)
	assert.False(t, f.Liked)

	// Re-rendering the same activation records nothing.
	f = a.Render(ctx)
	assert.Equal(t, int64(1), f.ActivePost.ViewCount)

	cached, ok := a.Catalog.FindPost("1")
	require.True(t, ok)
	assert.Equal(t, int64(1), cached.ViewCount)

	// Back and reopen is a new activation.
	a.Router.Back()
	a.Router.OpenPost(cached, domain.ViewHome, navigation.OpenOptions{})
	f = a.Render(ctx)
	assert.Equal(t, int64(2), f.ActivePost.ViewCount)
}

func TestLikeReachesEveryProjection(t *testing.T) {
	a, _ := newApp(t, "/?post=2")
	ctx := context.Background()
	a.Render(ctx)

	require.NoError(t, a.Router.Navigate(domain.ViewPostSearch))
	search := a.Render(ctx).PublicSearch
	require.NotNil(t, search)
	require.NotEmpty(t, search.Records)

	res, err := a.Metrics.ToggleLike(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Metric.LikeCount)

	cached, _ := a.Catalog.FindPost("2")
	assert.Equal(t, int64(1), cached.LikeCount)

	for _, p := range a.PublicSearch.Snapshot().Records {
		if p.ID == "2" {
			assert.Equal(t, int64(1), p.LikeCount)
		}
	}

	a.Router.OpenPost(cached, domain.ViewPostSearch, navigation.OpenOptions{})
	f := a.Render(ctx)
	assert.True(t, f.Liked)
	assert.Equal(t, int64(1), f.ActivePost.LikeCount)
}

func TestBrowseCategoryResetsSearch(t *testing.T) {
	a, _ := newApp(t, "/")
	ctx := context.Background()

	a.Router.BrowseCategory(5)
	f := a.Render(ctx)
	require.NotNil(t, f.PublicSearch)
	assert.Equal(t, int64(5), f.PublicSearch.Applied.CategoryID)
	require.Len(t, f.PublicSearch.Records, 1)
	assert.Equal(t, "1", f.PublicSearch.Records[0].ID)

	a.PublicSearch.EditDraft(func(p *domain.PostFilters) {
		p.CategoryID = 0
		p.Keyword = "frameworks"
	})
	require.NoError(t, a.PublicSearch.Apply(ctx))
	assert.Equal(t, "2", a.PublicSearch.Snapshot().Records[0].ID)

	// Browsing the same category again starts over.
	a.Router.BrowseCategory(5)
	f = a.Render(ctx)
	assert.Equal(t, int64(5), f.PublicSearch.Applied.CategoryID)
	assert.Empty(t, f.PublicSearch.Applied.Keyword)
}

func TestAdminFlow(t *testing.T) {
	a, _ := newApp(t, "/")
	ctx := context.Background()

	require.NoError(t, a.Router.Navigate(domain.ViewAdminPosts))
	f := a.Render(ctx)
	assert.Equal(t, domain.ViewLogin, f.View)
	assert.Nil(t, f.AdminPosts)

	require.True(t, a.Login(ctx, admin))
	f = a.Render(ctx)
	require.Equal(t, domain.ViewAdminDashboard, f.View)
	require.NotNil(t, f.Dashboard)
	assert.Equal(t, 4, f.Dashboard.Total)
	assert.Equal(t, 1, f.Dashboard.Drafts)

	require.NoError(t, a.Router.Navigate(domain.ViewAdminPosts))
	f = a.Render(ctx)
	require.NotNil(t, f.AdminPosts)
	assert.Equal(t, int64(4), f.AdminPosts.Total)

	a.Router.OpenEditor(nil)
	saved, err := a.SavePost(ctx, domain.PostInput{Title: "Fresh", Content: "body", Status: domain.PostStatusDraft})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, int64(5), a.AdminPosts.Snapshot().Total)
	assert.Equal(t, domain.ViewAdminPosts, a.Router.Screen().View)

	require.NoError(t, a.DeletePost(ctx, saved.ID))
	assert.Equal(t, int64(4), a.AdminPosts.Snapshot().Total)
	_, ok := a.Catalog.FindPost(saved.ID)
	assert.False(t, ok)

	a.Logout(ctx)
	assert.Equal(t, domain.ViewHome, a.Render(ctx).View)
}

func TestDeleteReloadsListWhenBulkRefreshFails(t *testing.T) {
	a, gw := newApp(t, "/")
	ctx := context.Background()
	require.True(t, a.Login(ctx, admin))
	require.NoError(t, a.Router.Navigate(domain.ViewAdminPosts))
	f := a.Render(ctx)
	require.NotNil(t, f.AdminPosts)
	require.Equal(t, int64(4), f.AdminPosts.Total)
	id := f.AdminPosts.Records[0].ID

	boom := errors.New("boom")
	gw.Fail("posts.list", boom)
	err := a.DeletePost(ctx, id)
	require.ErrorIs(t, err, boom)

	snap := a.AdminPosts.Snapshot()
	assert.Equal(t, int64(3), snap.Total)
	for _, p := range snap.Records {
		assert.NotEqual(t, id, p.ID)
	}
}

func TestDeleteCategoryReloadsListWhenBulkRefreshFails(t *testing.T) {
	a, gw := newApp(t, "/")
	ctx := context.Background()
	require.True(t, a.Login(ctx, admin))
	require.NoError(t, a.Router.Navigate(domain.ViewAdminCategories))
	f := a.Render(ctx)
	require.NotNil(t, f.AdminCategories)
	require.Equal(t, int64(5), f.AdminCategories.Total)

	gw.Fail("categories.list", errors.New("boom"))
	require.Error(t, a.DeleteCategory(ctx, 3))
	assert.Equal(t, int64(4), a.AdminCategories.Snapshot().Total)
}

func TestSiteLanguageOverridesStoredChoice(t *testing.T) {
	a, _ := newApp(t, "/")
	ctx := context.Background()
	require.True(t, a.Login(ctx, admin))

	_, err := a.UpdateConfig(ctx, domain.ConfigKeyLanguage, "en")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEN, a.Preferences.Language())
}

func TestBootstrapFailureIsReportedOnce(t *testing.T) {
	state := repository.NewClientStateRepository(memstore.NewStore())
	gw := memory.New(nil, state)
	gw.Fail("configs.list", &domain.GatewayError{Status: 503, Code: 503})
	a := app.New(&config.Config{StartURL: "/", ViewTracking: "sync", SwallowViewErrors: true}, state, gw)

	require.Error(t, a.Start(context.Background()))
	f := a.Render(context.Background())
	assert.Equal(t, domain.ViewHome, f.View)
	require.Len(t, f.Notices, 1)
	assert.Equal(t, "Failed to load data, make sure the server is running", f.Notices[0].Message)
	assert.Empty(t, a.Render(context.Background()).Notices)
}
