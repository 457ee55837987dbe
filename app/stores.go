package main

import (
	"context"
	"fmt"
	"net"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/config"
	"github.com/Guyuepp/blog-client/internal/repository/memory"
	myRedisStore "github.com/Guyuepp/blog-client/internal/repository/redis"
	"github.com/Guyuepp/blog-client/internal/repository/sqlstore"
)

const (
	stateProfile       = "default"
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

// openStore opens the persisted client state backend named by cfg.StateDriver. The
// returned close func releases its connections.
func openStore(ctx context.Context, cfg *config.Config) (domain.KVStore, func(), error) {
	switch cfg.StateDriver {
	case "memory":
		return memory.NewStore(), func() {}, nil
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite state %s: %w", cfg.SQLitePath, err)
		}
		return gormStore(db)
	case "mysql":
		db, err := openMySQL(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return gormStore(db)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.CacheAddress(),
			Password: cfg.Cache.Pass,
			DB:       cfg.Cache.DB,
		})
		if _, err := client.Ping(ctx).Result(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to open connection to cache: %w", err)
		}
		return myRedisStore.NewStateStore(client, stateProfile), func() {
			if err := client.Close(); err != nil {
				logrus.Errorf("got error when closing the cache connection: %v", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown state driver %q", cfg.StateDriver)
	}
}

func openMySQL(d config.Database) (*gorm.DB, error) {
	port := d.Port
	if port == "" {
		port = "3306"
	}
	dsnCfg := mysqlDriver.NewConfig()
	dsnCfg.User = d.User
	dsnCfg.Passwd = d.Pass
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = net.JoinHostPort(d.Host, port)
	dsnCfg.DBName = d.Name
	dsnCfg.ParseTime = true
	dsnCfg.Loc = time.UTC
	dsn := dsnCfg.FormatDSN()

	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < dbMaxRetry; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			logrus.Warnf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				err = dbErr
				logrus.Warnf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			if err = sqlDB.Ping(); err == nil {
				break
			}
			logrus.Warnf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}
		time.Sleep(dbRetryIntervalSec * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("could not connect to database after retries: %w", err)
	}
	return db, nil
}

func gormStore(db *gorm.DB) (domain.KVStore, func(), error) {
	if err := sqlstore.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate client state: %w", err)
	}
	return sqlstore.NewStateStore(db, stateProfile), func() {
		sqlDB, err := db.DB()
		if err != nil {
			logrus.Errorf("got error when getting sql.DB from gorm.DB: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			logrus.Errorf("got error when closing the DB connection: %v", err)
		}
	}, nil
}
