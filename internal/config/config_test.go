package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server:   ServerConfig{Port: 8080, MaxUploadBytes: 1 << 20},
		Auth:     AuthConfig{JWTSecret: "0123456789abcdef0123456789abcdef", TokenTTL: time.Hour},
		Storage:  StorageConfig{BaseURL: "https://example.supabase.co", Bucket: "intloko"},
		Geocoder: GeocoderConfig{Provider: "Nominatim", Country: "za", Debounce: 300 * time.Millisecond, MinQueryLength: 3},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, GeocoderNominatim, cfg.Geocoder.Provider)
}

func TestValidate_GoogleNeedsKey(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Geocoder.Provider = "google"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geocoder.api_key")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Auth.JWTSecret = "short"
	cfg.Geocoder.Provider = "bing"
	cfg.Geocoder.Country = "zaf"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"server.port", "auth.jwt_secret", "geocoder.provider", "geocoder.country"} {
		assert.Contains(t, err.Error(), want)
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/intloko?sslmode=disable")
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("STORAGE_BASE_URL", "https://example.supabase.co")
	t.Setenv("STORAGE_SERVICE_KEY", "service-key")
	t.Setenv("GEOCODER_PROVIDER", "nominatim")
}

// unsetForTest removes key for the rest of the test and restores it after.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "9090")
	unsetForTest(t, "REDIS_URL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "intloko", cfg.Storage.Bucket)
	assert.Equal(t, 300*time.Millisecond, cfg.Geocoder.Debounce)
	assert.Equal(t, 3, cfg.Geocoder.MinQueryLength)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV_FILE", "")
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")
	setRequiredEnv(t)
	t.Setenv("STORAGE_BUCKET", "from-environment")
	unsetForTest(t, "REDIS_URL")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("STORAGE_BUCKET=from-dotenv\nREDIS_URL=localhost:6379\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-environment", cfg.Storage.Bucket)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_ExplicitEnvFileMissing(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.env")
}

func TestLoad_YAMLThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("ENV_FILE", "")
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "7070")
	unsetForTest(t, "REDIS_URL")

	path := filepath.Join(dir, "service.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 6060\nredis:\n  addr: cache:6379\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
}
