package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/repository"
	"github.com/Guyuepp/blog-client/internal/repository/memory"
)

type brokenStore struct{}

var errDisk = errors.New("disk I/O error")

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errDisk
}

func (brokenStore) Set(context.Context, string, string) error {
	return errDisk
}

func (brokenStore) Delete(context.Context, string) error {
	return errDisk
}

func TestClientStateRepository(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := repository.NewClientStateRepository(store)

	assert.Empty(t, repo.Token(ctx))
	require.NoError(t, repo.SetToken(ctx, "tok"))
	assert.Equal(t, "tok", repo.Token(ctx))
	require.NoError(t, repo.ClearToken(ctx))
	assert.Empty(t, repo.Token(ctx))

	_, ok := repo.Theme(ctx)
	assert.False(t, ok)
	require.NoError(t, store.Set(ctx, domain.KeyTheme, "neon"))
	_, ok = repo.Theme(ctx)
	assert.False(t, ok, "unknown stored theme reads as absent")
	assert.ErrorIs(t, repo.SetTheme(ctx, "neon"), domain.ErrBadParamInput)
	require.NoError(t, repo.SetTheme(ctx, domain.ThemeCream))
	theme, ok := repo.Theme(ctx)
	assert.True(t, ok)
	assert.Equal(t, domain.ThemeCream, theme)

	require.NoError(t, repo.SetLanguage(ctx, "de"))
	lang, ok := repo.Language(ctx)
	assert.True(t, ok)
	assert.Equal(t, domain.LanguageZH, lang)

	liked, err := repo.IsLiked(ctx, "7")
	require.NoError(t, err)
	assert.False(t, liked)
	require.NoError(t, repo.MarkLiked(ctx, "7"))
	raw, err := store.Get(ctx, "douzhan-post-liked-7")
	require.NoError(t, err)
	assert.Equal(t, "1", raw)
	liked, err = repo.IsLiked(ctx, "7")
	require.NoError(t, err)
	assert.True(t, liked)
	require.NoError(t, repo.UnmarkLiked(ctx, "7"))
	liked, err = repo.IsLiked(ctx, "7")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestClientStateRepositoryStoreFailures(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewClientStateRepository(brokenStore{})

	assert.Empty(t, repo.Token(ctx))
	_, ok := repo.Language(ctx)
	assert.False(t, ok)
	_, err := repo.IsLiked(ctx, "1")
	assert.Error(t, err)
	assert.Error(t, repo.MarkLiked(ctx, "1"))
}
