package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/blog-client/domain"
)

const (
	// KeyClientState is the hash holding every persisted key of one client profile.
	KeyClientState = "blogclient:state:%s"
)

type stateStore struct {
	client *redis.Client
	key    string
}

var _ domain.KVStore = (*stateStore)(nil)

// NewStateStore will create a KV store keeping the state of profile in one redis hash,
// so several client instances can share it.
func NewStateStore(client *redis.Client, profile string) *stateStore {
	return &stateStore{
		client: client,
		key:    fmt.Sprintf(KeyClientState, profile),
	}
}

func (s *stateStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *stateStore) Set(ctx context.Context, key, value string) error {
	return s.client.HSet(ctx, s.key, key, value).Err()
}

func (s *stateStore) Delete(ctx context.Context, key string) error {
	return s.client.HDel(ctx, s.key, key).Err()
}
