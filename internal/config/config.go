package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Geocoder GeocoderConfig `yaml:"geocoder"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"APP_PORT"                env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES" env-default:"20971520"`
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_URL"                env-required:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns"     env:"DATABASE_MAX_OPEN_CONNS"     env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns"     env:"DATABASE_MAX_IDLE_CONNS"     env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"  env:"DATABASE_CONN_MAX_LIFETIME"  env-default:"1h"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"DATABASE_CONN_MAX_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds staff session token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"intloko-admin"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"24h"`
}

// StorageConfig points at the hosted object storage API.
type StorageConfig struct {
	BaseURL    string        `yaml:"base_url"    env:"STORAGE_BASE_URL"    env-required:"true"`
	ServiceKey string        `yaml:"service_key" env:"STORAGE_SERVICE_KEY" env-required:"true"`
	Bucket     string        `yaml:"bucket"      env:"STORAGE_BUCKET"      env-default:"intloko"`
	Timeout    time.Duration `yaml:"timeout"     env:"STORAGE_TIMEOUT"     env-default:"30s"`
}

// GeocoderConfig selects and configures the place-suggestion service.
type GeocoderConfig struct {
	Provider       string        `yaml:"provider"         env:"GEOCODER_PROVIDER"         env-default:"google"`
	APIKey         string        `yaml:"api_key"          env:"GEOCODER_API_KEY"`
	BaseURL        string        `yaml:"base_url"         env:"GEOCODER_BASE_URL"`
	UserAgent      string        `yaml:"user_agent"       env:"GEOCODER_USER_AGENT"       env-default:"intloko-admin/1.0"`
	Country        string        `yaml:"country"          env:"GEOCODER_COUNTRY"          env-default:"za"`
	Debounce       time.Duration `yaml:"debounce"         env:"GEOCODER_DEBOUNCE"         env-default:"300ms"`
	MinQueryLength int           `yaml:"min_query_length" env:"GEOCODER_MIN_QUERY_LENGTH" env-default:"3"`
	SessionIdle    time.Duration `yaml:"session_idle"     env:"GEOCODER_SESSION_IDLE"     env-default:"10m"`
	Timeout        time.Duration `yaml:"timeout"          env:"GEOCODER_TIMEOUT"          env-default:"10s"`
}

// RedisConfig configures the geocoder result cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `yaml:"addr"      env:"REDIS_URL"`
	Password string        `yaml:"password"  env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db"        env:"REDIS_DB"        env-default:"0"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" env-default:"24h"`
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
