package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/prayer-planner/internal/store"
)

// clearEnv blanks every variable the package reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvStore, EnvDataDir, EnvSQLitePath, EnvRedisURL, EnvPostgresURL,
		EnvAPIURL, EnvAPITimeout, EnvGeoTimeout, EnvTimezone,
		EnvLogLevel, EnvLogFormat, EnvHTTPAddr,
	} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func TestDefaults(t *testing.T) {
	d := Defaults()

	assert.Equal(t, store.DriverFile, d.Store)
	assert.Equal(t, 5*time.Second, d.APITimeout)
	assert.Equal(t, 5*time.Second, d.GeoTimeout)
	assert.Equal(t, "warn", d.LogLevel)
	assert.Equal(t, "text", d.LogFormat)
	assert.Equal(t, "127.0.0.1:8080", d.HTTPAddr)
	assert.Empty(t, d.DataDir)
	assert.Empty(t, d.Timezone)
}

func TestDir_XDGDataHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-test")

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-test", "prayer-planner"), dir)
}

func TestDir_FallbackToHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")

	dir, err := Dir()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "prayer-planner"), dir)
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, store.DriverFile, cfg.Store)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_DATA_HOME"), "prayer-planner"), cfg.DataDir)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, time.Local, cfg.Location())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvStore, "SQLite")
	t.Setenv(EnvDataDir, "/var/lib/prayer")
	t.Setenv(EnvSQLitePath, "/var/lib/prayer/kv.db")
	t.Setenv(EnvAPIURL, "http://localhost:9000/v1")
	t.Setenv(EnvAPITimeout, "3s")
	t.Setenv(EnvGeoTimeout, "2")
	t.Setenv(EnvTimezone, "Asia/Muscat")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvHTTPAddr, ":9090")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, store.DriverSQLite, cfg.Store)
	assert.Equal(t, "/var/lib/prayer", cfg.DataDir)
	assert.Equal(t, "http://localhost:9000/v1", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, 2*time.Second, cfg.GeoTimeout)
	assert.Equal(t, "Asia/Muscat", cfg.Location().String())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ":9090", cfg.HTTPAddr)

	opts := cfg.StoreOptions()
	assert.Equal(t, store.Options{
		Driver:     store.DriverSQLite,
		Dir:        "/var/lib/prayer",
		SQLitePath: "/var/lib/prayer/kv.db",
	}, opts)
}

func TestFromEnv_BadDurationUsesDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPITimeout, "soon")
	t.Setenv(EnvGeoTimeout, "-4s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, 5*time.Second, cfg.GeoTimeout)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown store", env: map[string]string{EnvStore: "etcd"}},
		{name: "redis without url", env: map[string]string{EnvStore: "redis"}},
		{name: "postgres without url", env: map[string]string{EnvStore: "postgres"}},
		{name: "bad timezone", env: map[string]string{EnvTimezone: "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PRAYER_STORE=memory\nPRAYER_LOG_LEVEL=error\n"), 0o644))
	// godotenv never overrides a variable that is present, even when empty.
	os.Unsetenv(EnvStore)
	os.Unsetenv(EnvLogLevel)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, store.DriverMemory, cfg.Store)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, store.DriverFile, cfg.Store)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvStore, "sqlite")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PRAYER_STORE=memory\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, store.DriverSQLite, cfg.Store)
}
