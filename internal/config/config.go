// Package config loads runtime configuration for the prayer-planner binaries.
//
// Values come from the process environment, optionally seeded from a .env
// file. The merge priority is: CLI flags > environment > defaults. User-facing
// prayer and Ramadan settings are not configuration; they live in the store.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // PRAYER_TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"

	"github.com/smokyabdulrahman/prayer-planner/internal/store"
)

const dataDirName = "prayer-planner"

// Environment variable names.
const (
	EnvStore       = "PRAYER_STORE"
	EnvDataDir     = "PRAYER_DATA_DIR"
	EnvSQLitePath  = "PRAYER_SQLITE_PATH"
	EnvRedisURL    = "PRAYER_REDIS_URL"
	EnvPostgresURL = "PRAYER_POSTGRES_URL"
	EnvAPIURL      = "PRAYER_API_URL"
	EnvAPITimeout  = "PRAYER_API_TIMEOUT"
	EnvGeoTimeout  = "PRAYER_GEO_TIMEOUT"
	EnvTimezone    = "PRAYER_TIMEZONE"
	EnvLogLevel    = "PRAYER_LOG_LEVEL"
	EnvLogFormat   = "PRAYER_LOG_FORMAT"
	EnvHTTPAddr    = "PRAYER_HTTP_ADDR"
)

// Config holds all runtime settings.
type Config struct {
	Store       string
	DataDir     string
	SQLitePath  string
	RedisURL    string
	PostgresURL string

	APIURL     string // empty means the Al Adhan default
	APITimeout time.Duration
	GeoTimeout time.Duration

	Timezone string // IANA name; empty means the system zone

	LogLevel  string
	LogFormat string

	HTTPAddr string
}

// Defaults returns a Config with every default applied except DataDir, which
// depends on the environment.
func Defaults() Config {
	return Config{
		Store:      store.DriverFile,
		APITimeout: 5 * time.Second,
		GeoTimeout: 5 * time.Second,
		LogLevel:   "warn",
		LogFormat:  "text",
		HTTPAddr:   "127.0.0.1:8080",
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment and builds a Config from it. Missing files are ignored;
// a malformed file is an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	d := Defaults()

	dataDir := getEnv(EnvDataDir, "")
	if dataDir == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	cfg := &Config{
		Store:       strings.ToLower(getEnv(EnvStore, d.Store)),
		DataDir:     dataDir,
		SQLitePath:  getEnv(EnvSQLitePath, ""),
		RedisURL:    getEnv(EnvRedisURL, ""),
		PostgresURL: getEnv(EnvPostgresURL, ""),
		APIURL:      getEnv(EnvAPIURL, ""),
		APITimeout:  getDurationEnv(EnvAPITimeout, d.APITimeout),
		GeoTimeout:  getDurationEnv(EnvGeoTimeout, d.GeoTimeout),
		Timezone:    getEnv(EnvTimezone, ""),
		LogLevel:    getEnv(EnvLogLevel, d.LogLevel),
		LogFormat:   getEnv(EnvLogFormat, d.LogFormat),
		HTTPAddr:    getEnv(EnvHTTPAddr, d.HTTPAddr),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that cannot be clamped into something sensible.
func (c *Config) Validate() error {
	switch c.Store {
	case store.DriverMemory, store.DriverFile, store.DriverSQLite:
	case store.DriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("%s=redis requires %s", EnvStore, EnvRedisURL)
		}
	case store.DriverPostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("%s=postgres requires %s", EnvStore, EnvPostgresURL)
		}
	default:
		return fmt.Errorf("invalid %s %q: must be one of memory, file, sqlite, redis, postgres", EnvStore, c.Store)
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimezone, c.Timezone, err)
		}
	}
	return nil
}

// Location returns the configured time zone, or time.Local when none is set.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// StoreOptions maps the configuration onto store.Open options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Driver:      c.Store,
		Dir:         c.DataDir,
		SQLitePath:  c.SQLitePath,
		RedisURL:    c.RedisURL,
		PostgresURL: c.PostgresURL,
	}
}

// Dir returns the data directory path.
// It respects $XDG_DATA_HOME if set, otherwise uses ~/.local/share/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, dataDirName), nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv accepts Go durations ("3s") or a bare number of seconds.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
