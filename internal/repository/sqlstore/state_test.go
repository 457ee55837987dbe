package sqlstore_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/repository/sqlstore"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestGet(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := sqlstore.NewStateStore(gdb, "default")

	rows := sqlmock.NewRows([]string{"profile", "state_key", "value", "updated_at"}).
		AddRow("default", domain.KeyTheme, "dark", time.Now())
	mock.ExpectQuery("SELECT \\* FROM `client_state` WHERE profile = \\? AND state_key = \\?").
		WillReturnRows(rows)

	v, err := store.Get(context.Background(), domain.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissingKey(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := sqlstore.NewStateStore(gdb, "default")

	mock.ExpectQuery("SELECT \\* FROM `client_state`").
		WillReturnRows(sqlmock.NewRows([]string{"profile", "state_key", "value", "updated_at"}))

	_, err := store.Get(context.Background(), domain.KeyAuthToken)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFailure(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := sqlstore.NewStateStore(gdb, "default")

	mock.ExpectQuery("SELECT \\* FROM `client_state`").WillReturnError(sql.ErrConnDone)

	_, err := store.Get(context.Background(), domain.KeyAuthToken)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetUpserts(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := sqlstore.NewStateStore(gdb, "default")

	mock.ExpectExec("INSERT INTO `client_state` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(context.Background(), domain.KeyLanguage, "en"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := sqlstore.NewStateStore(gdb, "default")

	mock.ExpectExec("DELETE FROM `client_state` WHERE profile = \\? AND state_key = \\?").
		WithArgs("default", domain.KeyAuthToken).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), domain.KeyAuthToken))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRoundTrip(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "state.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, sqlstore.Migrate(gdb))

	ctx := context.Background()
	a := sqlstore.NewStateStore(gdb, "a")
	b := sqlstore.NewStateStore(gdb, "b")

	require.NoError(t, a.Set(ctx, domain.KeyTheme, "dark"))
	require.NoError(t, a.Set(ctx, domain.KeyTheme, "cream"))
	v, err := a.Get(ctx, domain.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "cream", v)

	_, err = b.Get(ctx, domain.KeyTheme)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, a.Delete(ctx, domain.KeyTheme))
	_, err = a.Get(ctx, domain.KeyTheme)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}
