package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverMemory   = "memory"
)

type Config struct {
	App          AppConfig
	Store        StoreConfig
	Database     DatabaseConfig
	Mongo        MongoConfig
	Redis        RedisConfig
	JWT          JWTConfig
	OAuth2Google OAuth2GoogleConfig
	SMTP         SMTPConfig
	Payroll      PayrollConfig
	Bootstrap    BootstrapConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	FrontendURL    string
	AllowedOrigins []string
}

func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

type StoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig is optional. An empty Addr selects the in-memory token store.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
}

// OAuth2GoogleConfig is optional. Google sign-in is disabled when ClientID is empty.
type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func (o OAuth2GoogleConfig) Enabled() bool {
	return o.ClientID != ""
}

// SMTPConfig is optional. Mail is logged and dropped when Host is empty.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type PayrollConfig struct {
	// Workers bounds the per-employee fan-out of a run. 1 processes sequentially.
	Workers            int
	StaleRunAfter      time.Duration
	StaleCheckInterval time.Duration
}

type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	} else if err != nil {
		slog.Info("no .env file found, reading configuration from environment")
	}

	config := &Config{}
	p := &parser{}

	// Application configuration
	config.App = AppConfig{
		Port:           p.int("APP_PORT", 8080),
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS"),
	}

	config.Store = StoreConfig{
		Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
	}

	// Database configuration
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     p.int("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(p.int("DB_MAX_CONNS", 25)),
		MinConns: int32(p.int("DB_MIN_CONNS", 5)),
	}

	config.Mongo = MongoConfig{
		URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database: getEnv("MONGO_DB", "payroll"),
	}

	// Redis configuration
	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Username: getEnv("REDIS_USERNAME", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       p.int("REDIS_DB", 0),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration:  p.duration("JWT_ACCESS_EXPIRATION_TIME", time.Hour),
		RefreshExpiration: p.duration("JWT_REFRESH_EXPIRATION_TIME", 168*time.Hour),
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// SMTP configuration
	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     p.int("SMTP_PORT", 587),
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@payroll.local"),
		FromName: getEnv("SMTP_FROM_NAME", "Payroll"),
	}

	config.Payroll = PayrollConfig{
		Workers:            p.int("PAYROLL_WORKERS", 1),
		StaleRunAfter:      p.duration("STALE_RUN_AFTER", 15*time.Minute),
		StaleCheckInterval: p.duration("STALE_RUN_CHECK_INTERVAL", 5*time.Minute),
	}

	config.Bootstrap = BootstrapConfig{
		AdminEmail:    getEnv("BOOTSTRAP_ADMIN_EMAIL", ""),
		AdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
	}

	if p.err != nil {
		return nil, p.err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreDriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of: %s, %s, %s", StoreDriverPostgres, StoreDriverMongo, StoreDriverMemory)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}

	if c.OAuth2Google.Enabled() {
		if c.OAuth2Google.ClientSecret == "" {
			return fmt.Errorf("CLIENT_SECRET is required when CLIENT_ID is set")
		}
		if c.OAuth2Google.RedirectURL == "" {
			return fmt.Errorf("REDIRECT_URL is required when CLIENT_ID is set")
		}
		if len(c.OAuth2Google.Scopes) == 0 {
			return fmt.Errorf("SCOPES is required when CLIENT_ID is set")
		}
	}

	if c.Payroll.Workers < 1 {
		return fmt.Errorf("PAYROLL_WORKERS must be at least 1")
	}

	if (c.Bootstrap.AdminEmail == "") != (c.Bootstrap.AdminPassword == "") {
		return fmt.Errorf("BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD must be set together")
	}

	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto a slog level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parser keeps the first typed-parse error so Load can report it once.
type parser struct {
	err error
}

func (p *parser) int(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
