package repository

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-client/domain"
)

const likeMarkValue = "1"

// clientStateRepository gives typed access to the persisted client state held in a
// KV store.
type clientStateRepository struct {
	store domain.KVStore
}

var _ domain.ClientStateRepository = (*clientStateRepository)(nil)
var _ domain.TokenSource = (*clientStateRepository)(nil)

func NewClientStateRepository(store domain.KVStore) *clientStateRepository {
	return &clientStateRepository{store: store}
}

// get returns "" for a missing key; other store failures are logged and read as absent.
func (r *clientStateRepository) get(ctx context.Context, key string) (string, bool) {
	v, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logrus.Warnf("failed to read %s from client state: %v", key, err)
		}
		return "", false
	}
	return v, true
}

func (r *clientStateRepository) Token(ctx context.Context) string {
	v, _ := r.get(ctx, domain.KeyAuthToken)
	return v
}

func (r *clientStateRepository) SetToken(ctx context.Context, token string) error {
	return r.store.Set(ctx, domain.KeyAuthToken, token)
}

func (r *clientStateRepository) ClearToken(ctx context.Context) error {
	return r.store.Delete(ctx, domain.KeyAuthToken)
}

func (r *clientStateRepository) Theme(ctx context.Context) (domain.Theme, bool) {
	v, ok := r.get(ctx, domain.KeyTheme)
	if !ok {
		return "", false
	}
	t := domain.Theme(v)
	if !t.Valid() {
		return "", false
	}
	return t, true
}

func (r *clientStateRepository) SetTheme(ctx context.Context, t domain.Theme) error {
	if !t.Valid() {
		return domain.ErrBadParamInput
	}
	return r.store.Set(ctx, domain.KeyTheme, string(t))
}

func (r *clientStateRepository) Language(ctx context.Context) (domain.Language, bool) {
	v, ok := r.get(ctx, domain.KeyLanguage)
	if !ok || v == "" {
		return "", false
	}
	return domain.ResolveLanguage(v), true
}

func (r *clientStateRepository) SetLanguage(ctx context.Context, l domain.Language) error {
	return r.store.Set(ctx, domain.KeyLanguage, string(domain.ResolveLanguage(string(l))))
}

func (r *clientStateRepository) IsLiked(ctx context.Context, postID string) (bool, error) {
	v, err := r.store.Get(ctx, domain.KeyLikeMarkPrefix+postID)
	if errors.Is(err, domain.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == likeMarkValue, nil
}

func (r *clientStateRepository) MarkLiked(ctx context.Context, postID string) error {
	return r.store.Set(ctx, domain.KeyLikeMarkPrefix+postID, likeMarkValue)
}

func (r *clientStateRepository) UnmarkLiked(ctx context.Context, postID string) error {
	return r.store.Delete(ctx, domain.KeyLikeMarkPrefix+postID)
}
