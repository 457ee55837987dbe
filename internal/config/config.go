// Package config loads the client configuration from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultAPIBaseURL     = "http://localhost:8080/api"
	defaultAPITimeout     = 15
	defaultStateDriver    = "sqlite"
	defaultSQLitePath     = "blog-client.db"
	defaultCacheDB        = 0
	defaultControlAddress = "127.0.0.1:9090"
	defaultContextTimeout = 30
	defaultStartURL       = "/"
)

type Database struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

type Cache struct {
	Host string
	Port string
	Pass string
	DB   int `validate:"gte=0,lte=15"`
}

type Config struct {
	APIBaseURL string        `validate:"required"`
	APITimeout time.Duration `validate:"gt=0"`

	StateDriver string `validate:"oneof=memory sqlite mysql redis"`
	SQLitePath  string `validate:"required_if=StateDriver sqlite"`
	Database    Database
	Cache       Cache

	ControlAddress string        `validate:"required,hostname_port"`
	ContextTimeout time.Duration `validate:"gt=0"`
	StartURL       string

	ViewTracking      string `validate:"oneof=sync async"`
	SwallowViewErrors bool
	ThemeFollowSystem bool
	SystemTheme       string `validate:"oneof=light dark"`

	LogLevel  string `validate:"oneof=trace debug info warn warning error"`
	LogFormat string `validate:"oneof=text json"`
	Offline   bool
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded, using the environment only")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds and validates the configuration from getenv. Unparsable values fall
// back to their defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		APIBaseURL: orDefault(getenv("API_BASE_URL"), defaultAPIBaseURL),
		APITimeout: seconds(getenv, "API_TIMEOUT", defaultAPITimeout),

		StateDriver: strings.ToLower(orDefault(getenv("STATE_DRIVER"), defaultStateDriver)),
		SQLitePath:  orDefault(getenv("STATE_SQLITE_PATH"), defaultSQLitePath),
		Database: Database{
			Host: getenv("DATABASE_HOST"),
			Port: getenv("DATABASE_PORT"),
			User: getenv("DATABASE_USER"),
			Pass: getenv("DATABASE_PASS"),
			Name: getenv("DATABASE_NAME"),
		},
		Cache: Cache{
			Host: getenv("CACHE_HOST"),
			Port: getenv("CACHE_PORT"),
			Pass: getenv("CACHE_PASS"),
			DB:   integer(getenv, "CACHE_DB", defaultCacheDB),
		},

		ControlAddress: orDefault(getenv("CONTROL_ADDRESS"), defaultControlAddress),
		ContextTimeout: seconds(getenv, "CONTEXT_TIMEOUT", defaultContextTimeout),
		StartURL:       orDefault(getenv("START_URL"), defaultStartURL),

		ViewTracking:      strings.ToLower(orDefault(getenv("VIEW_TRACKING"), "sync")),
		SwallowViewErrors: boolean(getenv, "SWALLOW_VIEW_ERRORS", true),
		ThemeFollowSystem: boolean(getenv, "THEME_FOLLOW_SYSTEM", true),
		SystemTheme:       strings.ToLower(orDefault(getenv("SYSTEM_THEME"), "light")),

		LogLevel:  strings.ToLower(orDefault(getenv("LOG_LEVEL"), "info")),
		LogFormat: strings.ToLower(orDefault(getenv("LOG_FORMAT"), "text")),
		Offline:   boolean(getenv, "OFFLINE", false),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.StateDriver == "mysql" && (c.Database.Host == "" || c.Database.Name == "") {
		return fmt.Errorf("invalid configuration: DATABASE_HOST and DATABASE_NAME are required for the mysql state driver")
	}
	if c.StateDriver == "redis" && c.Cache.Host == "" {
		return fmt.Errorf("invalid configuration: CACHE_HOST is required for the redis state driver")
	}
	return nil
}

// CacheAddress is the redis host:port.
func (c *Config) CacheAddress() string {
	port := c.Cache.Port
	if port == "" {
		port = "6379"
	}
	return c.Cache.Host + ":" + port
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func integer(getenv func(string) string, key string, def int) int {
	raw := getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %d", key, def)
		return def
	}
	return v
}

func seconds(getenv func(string) string, key string, def int) time.Duration {
	v := integer(getenv, key, def)
	if v <= 0 {
		logrus.Warnf("%s must be positive, using default %d", key, def)
		v = def
	}
	return time.Duration(v) * time.Second
}

func boolean(getenv func(string) string, key string, def bool) bool {
	raw := getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %t", key, def)
		return def
	}
	return v
}
