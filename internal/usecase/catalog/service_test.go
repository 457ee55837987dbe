package catalog_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/gateway/memory"
	"github.com/Guyuepp/blog-client/internal/notice"
	"github.com/Guyuepp/blog-client/internal/repository"
	memstore "github.com/Guyuepp/blog-client/internal/repository/memory"
	"github.com/Guyuepp/blog-client/internal/usecase/catalog"
)

type fixture struct {
	gw      *memory.Gateway
	feed    *notice.Feed
	catalog *catalog.Service
}

func newFixture(t *testing.T, loggedIn bool) *fixture {
	t.Helper()
	state := repository.NewClientStateRepository(memstore.NewStore())
	gw := memory.New(nil, state)
	memory.Seed(gw)
	if loggedIn {
		token, err := gw.Login(context.Background(), domain.Credentials{Username: "admin", Password: "admin"})
		require.NoError(t, err)
		require.NoError(t, state.SetToken(context.Background(), token))
	}
	feed := notice.NewFeed(0)
	return &fixture{gw: gw, feed: feed, catalog: catalog.NewService(gw, nil, feed)}
}

func TestRefreshLoadsAllCollections(t *testing.T) {
	f := newFixture(t, false)
	assert.False(t, f.catalog.Loaded())

	require.NoError(t, f.catalog.Refresh(context.Background()))
	assert.True(t, f.catalog.Loaded())
	assert.Len(t, f.catalog.Posts(), 4)
	assert.Len(t, f.catalog.Categories(), 5)
	assert.Len(t, f.catalog.Configs(), 5)

	lang, ok := f.catalog.ConfigValue(domain.ConfigKeyLanguage)
	assert.True(t, ok)
	assert.Equal(t, "zh", lang)

	p, ok := f.catalog.FindPost("2")
	require.True(t, ok)
	assert.Equal(t, int64(4), p.CategoryID)
	_, ok = f.catalog.FindPost("nope")
	assert.False(t, ok)
}

func TestRefreshFailureKeepsPreviousCollections(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	require.NoError(t, f.catalog.Refresh(ctx))

	f.gw.PutPost(domain.Post{ID: "5", Title: "New", Status: domain.PostStatusPublished})
	f.gw.Fail("categories.list", errors.New("timeout"))
	require.Error(t, f.catalog.Refresh(ctx))

	// Partial results are not applied.
	assert.Len(t, f.catalog.Posts(), 4)
	assert.True(t, f.catalog.Loaded())
	assert.Empty(t, f.feed.Drain())
}

// pausingGateway holds FetchPosts after the posts were read until release is closed.
type pausingGateway struct {
	*memory.Gateway
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func (g *pausingGateway) FetchPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := g.Gateway.FetchPosts(ctx)
	g.once.Do(func() { close(g.read) })
	<-g.release
	return posts, err
}

func TestRefreshKeepsMetricAppliedWhileInFlight(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	gw := &pausingGateway{Gateway: f.gw, read: make(chan struct{}), release: make(chan struct{})}
	svc := catalog.NewService(gw, nil, f.feed)

	done := make(chan error, 1)
	go func() { done <- svc.Refresh(ctx) }()
	<-gw.read

	m, err := f.gw.Like(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, int64(1), m.LikeCount)
	svc.ApplyMetric(m)

	close(gw.release)
	require.NoError(t, <-done)

	p, ok := svc.FindPost("1")
	require.True(t, ok)
	assert.Equal(t, int64(1), p.LikeCount)

	// Later refreshes take the server counts again.
	_, err = f.gw.Like(ctx, "1")
	require.NoError(t, err)
	require.NoError(t, svc.Refresh(ctx))
	p, _ = svc.FindPost("1")
	assert.Equal(t, int64(2), p.LikeCount)
}

func TestReadersReturnCopies(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.catalog.Refresh(context.Background()))

	posts := f.catalog.Posts()
	posts[0].Title = "changed"
	assert.NotEqual(t, "changed", f.catalog.Posts()[0].Title)
}

func TestApplyMetricPatchesBulkCopy(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.catalog.Refresh(context.Background()))

	f.catalog.ApplyMetric(domain.PostMetric{PostID: "1", ViewCount: 77, LikeCount: 8})
	f.catalog.ApplyMetric(domain.PostMetric{PostID: "unknown", ViewCount: 1})

	p, ok := f.catalog.FindPost("1")
	require.True(t, ok)
	assert.Equal(t, int64(77), p.ViewCount)
	assert.Equal(t, int64(8), p.LikeCount)
	assert.Len(t, f.catalog.Posts(), 4)
}

func TestSavePost(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.catalog.Refresh(ctx))

	in := domain.PostInput{
		Title:      faker.Sentence(),
		Content:    faker.Paragraph(),
		Status:     domain.PostStatusPublished,
		CategoryID: 3,
	}
	saved, err := f.catalog.SavePost(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	got, ok := f.catalog.FindPost(saved.ID)
	require.True(t, ok)
	assert.Equal(t, in.Title, got.Title)
	assert.Len(t, f.catalog.Posts(), 5)
}

func TestSavePostValidation(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.catalog.SavePost(context.Background(), domain.PostInput{Title: "no content", Status: "archived"})
	require.ErrorIs(t, err, domain.ErrBadParamInput)

	notices := f.feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, "posts.save", notices[0].Source)
	assert.Equal(t, "Failed to save post", notices[0].Message)
}

func TestMutationWithoutSessionSurfacesServerMessage(t *testing.T) {
	f := newFixture(t, false)
	err := f.catalog.DeletePost(context.Background(), "1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	notices := f.feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, "Unauthorized", notices[0].Message)
}

func TestRefreshFailureAfterSaveReturnsSavedEntity(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.catalog.Refresh(ctx))
	f.gw.Fail("configs.list", errors.New("timeout"))

	saved, err := f.catalog.SaveCategory(ctx, domain.CategoryInput{Name: "Ops", Slug: "ops"})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "refresh after categories.save"))
	assert.Equal(t, int64(6), saved.ID)
	assert.True(t, catalog.Committed(err))

	// The stale collections stay until a refresh succeeds.
	assert.Len(t, f.catalog.Categories(), 5)
	notices := f.feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, "Saved, but reloading data failed", notices[0].Message)
}

func TestCommitted(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.catalog.Refresh(ctx))

	assert.True(t, catalog.Committed(nil))

	err := f.catalog.DeletePost(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, catalog.Committed(err), "a rejected delete changed nothing")

	boom := errors.New("boom")
	f.gw.Fail("posts.list", boom)
	err = f.catalog.DeletePost(ctx, "3")
	require.ErrorIs(t, err, boom)
	assert.True(t, catalog.Committed(err), "the server removed the post")
}

func TestDeleteCategory(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.catalog.Refresh(ctx))

	require.ErrorIs(t, f.catalog.DeleteCategory(ctx, 0), domain.ErrBadParamInput)
	require.ErrorIs(t, f.catalog.DeleteCategory(ctx, 99), domain.ErrNotFound)
	require.NoError(t, f.catalog.DeleteCategory(ctx, 3))
	assert.Len(t, f.catalog.Categories(), 4)
}

func TestUpdateConfigKeepsType(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.catalog.Refresh(ctx))

	saved, err := f.catalog.UpdateConfig(ctx, domain.ConfigKeyAuthorName, "Someone")
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigPersonalInfo, saved.Type)

	v, ok := f.catalog.ConfigValue(domain.ConfigKeyAuthorName)
	require.True(t, ok)
	assert.Equal(t, "Someone", v)

	_, err = f.catalog.UpdateConfig(ctx, "", "x")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestUploadAssets(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.catalog.UploadAssets(ctx, nil, "")
	require.ErrorIs(t, err, domain.ErrBadParamInput)

	res, err := f.catalog.UploadAssets(ctx, []domain.AssetFile{{Name: "a.png", Reader: strings.NewReader("png")}}, "covers")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "covers/0-a.png", res[0].RelativePath)
	assert.Equal(t, int64(3), res[0].Size)
}
