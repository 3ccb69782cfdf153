package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Remote      RemoteConfig
	Local       LocalConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Gate        GateConfig
	Snapshot    SnapshotConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// RemoteConfig points at the hosted table store. The URL is either the
// REST endpoint (http/https) or a postgres:// DSN for direct access.
type RemoteConfig struct {
	URL             string
	Key             string
	Timeout         time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
}

type LocalConfig struct {
	Path   string
	Bucket string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
	UserKey  string
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type GateConfig struct {
	Passcode string
}

type SnapshotConfig struct {
	Enabled  bool
	Interval time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults so the service boots on the local store with no env at all.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "alphadate"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Remote: RemoteConfig{
			URL:             firstEnv("REMOTE_URL", "SUPABASE_URL"),
			Key:             firstEnv("REMOTE_KEY", "SUPABASE_ANON_KEY"),
			Timeout:         getDuration("REMOTE_TIMEOUT", 10*time.Second),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 2),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
		},
		Local: LocalConfig{
			Path:   getString("LOCAL_STORE_PATH", "./data/local.db"),
			Bucket: getString("LOCAL_STORE_BUCKET", "local"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
			UserKey:  getString("REDIS_CURRENT_USER_KEY", "doublea:currentUser"),
		},
		JWT: JWTConfig{
			Secret: getString("JWT_SECRET", "change-me"),
			Issuer: getString("JWT_ISSUER", "alphadate"),
			TTL:    getDuration("JWT_TTL", 30*24*time.Hour),
		},
		Gate: GateConfig{
			Passcode: getString("PASSCODE", "1423"),
		},
		Snapshot: SnapshotConfig{
			Enabled:  getBool("SNAPSHOT_ENABLED", true),
			Interval: getDuration("SNAPSHOT_INTERVAL", 5*time.Minute),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 15*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Configured reports whether both the endpoint URL and the access key are set.
func (r RemoteConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != "" && strings.TrimSpace(r.Key) != ""
}

// IsPostgres is true when the remote URL is a postgres DSN rather than a REST endpoint.
func (r RemoteConfig) IsPostgres() bool {
	u := strings.ToLower(strings.TrimSpace(r.URL))
	return strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://")
}

func (c *Config) validate() error {
	if len(c.Gate.Passcode) != 4 || strings.Trim(c.Gate.Passcode, "0123456789") != "" {
		return fmt.Errorf("PASSCODE must be exactly 4 digits")
	}
	if c.Remote.Configured() && !c.Remote.IsPostgres() {
		u := strings.ToLower(c.Remote.URL)
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("REMOTE_URL must be an http(s) endpoint or a postgres DSN")
		}
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return ""
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
