package config

import (
	"fmt"
	"strconv"
	"time"

	"starforge/internal/shared/utils"

	"github.com/joho/godotenv"
)

const (
	CatalogSourcePostgres = "postgres"
	CatalogSourceFile     = "file"
	CatalogSourceRemote   = "remote"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Frontend   FrontendConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
	Generation GenerationConfig
	Catalog    CatalogConfig
	Export     ExportConfig
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type ServerConfig struct {
	Port         string
	URL          string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
	CookieSecure    bool
	CookieSameSite  string
}

type FrontendConfig struct {
	URL            string
	AllowedOrigins []string
	CORSDebug      bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

type GenerationConfig struct {
	MaxOrbits         int
	MaxWorlds         int
	MaxStarsPerSystem int
	CacheTTL          time.Duration
}

type CatalogConfig struct {
	Source       string
	PresetsPath  string
	RemoteURL    string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	Timeout      time.Duration
}

type ExportConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

func load() (*Config, error) {
	generation, err := loadGenerationConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server:     loadServerConfig(),
		Database:   loadDatabaseConfig(),
		Redis:      loadRedisConfig(),
		Auth:       loadAuthConfig(),
		Frontend:   loadFrontendConfig(),
		Logging:    loadLoggingConfig(),
		RateLimit:  loadRateLimitConfig(),
		Generation: generation,
		Catalog:    loadCatalogConfig(),
		Export:     loadExportConfig(),
	}

	return config, nil
}

func loadRedisConfig() RedisConfig {
	enabled := utils.GetEnv("REDIS_ENABLED", "true") == "true"
	db, _ := strconv.Atoi(utils.GetEnv("REDIS_DB", "0"))

	return RedisConfig{
		Enabled:  enabled,
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func loadServerConfig() ServerConfig {
	readTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_READ_TIMEOUT_SECONDS", "15"))
	writeTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_WRITE_TIMEOUT_SECONDS", "30"))
	idleTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_IDLE_TIMEOUT_SECONDS", "60"))

	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		URL:          utils.GetEnv("SERVER_URL", "http://localhost:8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	maxOpenConns, _ := strconv.Atoi(utils.GetEnv("DB_MAX_OPEN_CONNS", "25"))
	maxIdleConns, _ := strconv.Atoi(utils.GetEnv("DB_MAX_IDLE_CONNS", "5"))
	connMaxLifetime, _ := strconv.Atoi(utils.GetEnv("DB_CONN_MAX_LIFETIME_MINUTES", "5"))

	return DatabaseConfig{
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "starforge"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: time.Duration(connMaxLifetime) * time.Minute,
		MigrationsPath:  utils.GetEnv("DB_MIGRATIONS_PATH", "migrations"),
	}
}

func loadAuthConfig() AuthConfig {
	tokenExpiration, _ := strconv.Atoi(utils.GetEnv("JWT_EXPIRATION_HOURS", "24"))

	return AuthConfig{
		JWTSecret:       utils.GetEnv("JWT_SECRET", ""),
		TokenExpiration: time.Duration(tokenExpiration) * time.Hour,
		CookieSecure:    utils.GetEnv("ENVIRONMENT", "development") == "production",
		CookieSameSite:  utils.GetEnv("COOKIE_SAME_SITE", "lax"),
	}
}

func loadFrontendConfig() FrontendConfig {
	url := utils.GetEnv("FRONTEND_URL", "http://localhost:3000")

	return FrontendConfig{
		URL:            url,
		AllowedOrigins: utils.GetEnvList("CORS_ALLOWED_ORIGINS", []string{url}),
		CORSDebug:      utils.GetEnv("CORS_DEBUG", "") == "true",
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")
	format := utils.GetEnv("LOG_FORMAT", "text")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		Format:     format,
		JSONFormat: environment == "production" || format == "json",
	}
}

func loadRateLimitConfig() RateLimitConfig {
	enabled := utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true"
	requestsPerSecond, _ := strconv.ParseFloat(utils.GetEnv("RATE_LIMIT_REQUESTS_PER_SECOND", "5"), 64)
	burstSize, _ := strconv.Atoi(utils.GetEnv("RATE_LIMIT_BURST_SIZE", "10"))

	return RateLimitConfig{
		Enabled:           enabled,
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         burstSize,
		TrustProxy:        utils.GetEnv("RATE_LIMIT_TRUST_PROXY", "false") == "true",
	}
}

func loadGenerationConfig() (GenerationConfig, error) {
	maxOrbits, err := strconv.Atoi(utils.GetEnv("GENERATION_MAX_ORBITS", "32"))
	if err != nil {
		return GenerationConfig{}, fmt.Errorf("GENERATION_MAX_ORBITS: %w", err)
	}
	maxWorlds, err := strconv.Atoi(utils.GetEnv("GENERATION_MAX_WORLDS", "16"))
	if err != nil {
		return GenerationConfig{}, fmt.Errorf("GENERATION_MAX_WORLDS: %w", err)
	}
	maxStars, err := strconv.Atoi(utils.GetEnv("GENERATION_MAX_STARS", "4"))
	if err != nil {
		return GenerationConfig{}, fmt.Errorf("GENERATION_MAX_STARS: %w", err)
	}
	cacheTTL, err := time.ParseDuration(utils.GetEnv("GENERATION_CACHE_TTL", "24h"))
	if err != nil {
		return GenerationConfig{}, fmt.Errorf("GENERATION_CACHE_TTL: %w", err)
	}

	return GenerationConfig{
		MaxOrbits:         maxOrbits,
		MaxWorlds:         maxWorlds,
		MaxStarsPerSystem: maxStars,
		CacheTTL:          cacheTTL,
	}, nil
}

func loadCatalogConfig() CatalogConfig {
	timeout, _ := strconv.Atoi(utils.GetEnv("CATALOG_TIMEOUT_SECONDS", "10"))

	return CatalogConfig{
		Source:       utils.GetEnv("CATALOG_SOURCE", CatalogSourcePostgres),
		PresetsPath:  utils.GetEnv("CATALOG_PRESETS_PATH", "data/presets.yaml"),
		RemoteURL:    utils.GetEnv("CATALOG_REMOTE_URL", ""),
		TokenURL:     utils.GetEnv("CATALOG_TOKEN_URL", ""),
		ClientID:     utils.GetEnv("CATALOG_CLIENT_ID", ""),
		ClientSecret: utils.GetEnv("CATALOG_CLIENT_SECRET", ""),
		Scopes:       utils.GetEnvList("CATALOG_SCOPES", []string{"catalog:read"}),
		Timeout:      time.Duration(timeout) * time.Second,
	}
}

func loadExportConfig() ExportConfig {
	return ExportConfig{
		Enabled:         utils.GetEnv("EXPORT_ENABLED", "false") == "true",
		Endpoint:        utils.GetEnv("EXPORT_ENDPOINT", "localhost:9000"),
		AccessKeyID:     utils.GetEnv("EXPORT_ACCESS_KEY_ID", ""),
		SecretAccessKey: utils.GetEnv("EXPORT_SECRET_ACCESS_KEY", ""),
		Bucket:          utils.GetEnv("EXPORT_BUCKET", "star-systems"),
		UseSSL:          utils.GetEnv("EXPORT_USE_SSL", "false") == "true",
	}
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}

	if c.Generation.MaxOrbits < 1 || c.Generation.MaxWorlds < 1 {
		return fmt.Errorf("GENERATION_MAX_ORBITS and GENERATION_MAX_WORLDS must be positive")
	}

	if c.Generation.MaxWorlds > c.Generation.MaxOrbits {
		return fmt.Errorf("GENERATION_MAX_WORLDS cannot exceed GENERATION_MAX_ORBITS")
	}

	if c.Generation.MaxStarsPerSystem < 1 {
		return fmt.Errorf("GENERATION_MAX_STARS must be positive")
	}

	switch c.Catalog.Source {
	case CatalogSourcePostgres:
	case CatalogSourceFile:
		if c.Catalog.PresetsPath == "" {
			return fmt.Errorf("CATALOG_PRESETS_PATH is required for the file catalog")
		}
	case CatalogSourceRemote:
		if c.Catalog.RemoteURL == "" || c.Catalog.TokenURL == "" {
			return fmt.Errorf("CATALOG_REMOTE_URL and CATALOG_TOKEN_URL are required for the remote catalog")
		}
		if c.Catalog.ClientID == "" || c.Catalog.ClientSecret == "" {
			return fmt.Errorf("CATALOG_CLIENT_ID and CATALOG_CLIENT_SECRET are required for the remote catalog")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.Catalog.Source)
	}

	if c.Export.Enabled {
		if c.Export.Endpoint == "" || c.Export.Bucket == "" {
			return fmt.Errorf("EXPORT_ENDPOINT and EXPORT_BUCKET are required when export is enabled")
		}
		if c.Export.AccessKeyID == "" || c.Export.SecretAccessKey == "" {
			return fmt.Errorf("EXPORT_ACCESS_KEY_ID and EXPORT_SECRET_ACCESS_KEY are required when export is enabled")
		}
	}

	return nil
}

// DSN is the lib/pq keyword/value connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}
