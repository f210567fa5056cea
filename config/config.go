package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Store drivers
const (
	StoreDriverSupabase = "supabase"
	StoreDriverPostgres = "postgres"
	// StoreDriverMemory keeps every table in process; meant for demos and local runs.
	StoreDriverMemory = "memory"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Supabase SupabaseConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Reniec   ReniecConfig
	Cache    CacheConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port              string
	Env               string
	LogLevel          string
	CORSAllowedOrigin string
	HTTPClientTimeout time.Duration
}

type StoreConfig struct {
	Driver string
}

type SupabaseConfig struct {
	URL       string
	AnonKey   string
	JWTSecret string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type ReniecConfig struct {
	BaseURL  string
	APIToken string
}

type CacheConfig struct {
	QueryTTL time.Duration
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

// IsDevelopment reports whether the app runs with APP_ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// RedisEnabled reports whether a Redis host is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "http://localhost:5173")
	v.SetDefault("STORE_DRIVER", StoreDriverSupabase)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("RENIEC_BASE_URL", "https://api.apis.net.pe")
	v.SetDefault("SESSION_COOKIE_NAME", "sid")

	// The .env file is optional, environment variables alone are enough.
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Port:              v.GetString("APP_PORT"),
			Env:               v.GetString("APP_ENV"),
			LogLevel:          v.GetString("LOG_LEVEL"),
			CORSAllowedOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
			HTTPClientTimeout: parseDuration(v.GetString("HTTP_CLIENT_TIMEOUT"), 15*time.Second),
		},
		Store: StoreConfig{
			Driver: v.GetString("STORE_DRIVER"),
		},
		Supabase: SupabaseConfig{
			URL:       v.GetString("SUPABASE_URL"),
			AnonKey:   v.GetString("SUPABASE_ANON_KEY"),
			JWTSecret: v.GetString("SUPABASE_JWT_SECRET"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: parseDuration(v.GetString("JWT_ACCESS_EXPIRY"), time.Hour),
		},
		Reniec: ReniecConfig{
			BaseURL:  v.GetString("RENIEC_BASE_URL"),
			APIToken: v.GetString("RENIEC_API_TOKEN"),
		},
		Cache: CacheConfig{
			QueryTTL: parseDuration(v.GetString("QUERY_CACHE_TTL"), 5*time.Minute),
		},
		Session: SessionConfig{
			CookieName: v.GetString("SESSION_COOKIE_NAME"),
			TTL:        parseDuration(v.GetString("SESSION_TTL"), 7*24*time.Hour),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverSupabase:
		if c.Supabase.URL == "" || c.Supabase.AnonKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_ANON_KEY are required for the supabase driver")
		}
	case StoreDriverPostgres:
		if c.DB.Host == "" || c.DB.Name == "" {
			return errors.New("DB_HOST and DB_NAME are required for the postgres driver")
		}
		if c.JWT.Secret == "" {
			return errors.New("JWT_SECRET is required for the postgres driver")
		}
	case StoreDriverMemory:
		if c.JWT.Secret == "" {
			return errors.New("JWT_SECRET is required for the memory driver")
		}
	default:
		return errors.New("STORE_DRIVER must be one of: supabase, postgres, memory")
	}
	return nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
