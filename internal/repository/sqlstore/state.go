// Package sqlstore keeps the persisted client state in a relational table through gorm.
// Both the mysql and the sqlite dialectors are supported.
package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/repository/sqlstore/model"
)

type stateStore struct {
	DB      *gorm.DB
	profile string
}

var _ domain.KVStore = (*stateStore)(nil)

// NewStateStore will create a KV store over db scoped to profile.
func NewStateStore(db *gorm.DB, profile string) *stateStore {
	return &stateStore{DB: db, profile: profile}
}

// Migrate creates the state table when missing.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.StateEntry{})
}

func (s *stateStore) Get(ctx context.Context, key string) (string, error) {
	var entry model.StateEntry
	err := s.DB.WithContext(ctx).
		Where("profile = ? AND state_key = ?", s.profile, key).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (s *stateStore) Set(ctx context.Context, key, value string) error {
	entry := model.StateEntry{
		Profile:   s.profile,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile"}, {Name: "state_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *stateStore) Delete(ctx context.Context, key string) error {
	return s.DB.WithContext(ctx).
		Where("profile = ? AND state_key = ?", s.profile, key).
		Delete(&model.StateEntry{}).Error
}
