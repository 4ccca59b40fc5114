// Package config provides configuration management and environment variable handling for the application
package config

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/vendor-campaigns/utils"
)

// DefaultSessionSecret is the insecure development secret; rejected in production
const DefaultSessionSecret = "change_me"

// ProductionConfig holds all configuration for production environment
type ProductionConfig struct {
	Database   DatabaseConfig   `json:"database"`
	Server     ServerConfig     `json:"server"`
	Security   SecurityConfig   `json:"security"`
	Session    SessionConfig    `json:"session"`
	OAuth      OAuthConfig      `json:"oauth"`
	Catalog    CatalogConfig    `json:"catalog"`
	Admin      AdminConfig      `json:"admin"`
	Logging    LoggingConfig    `json:"logging"`
	Metrics    MetricsConfig    `json:"metrics"`
	Cache      CacheConfig      `json:"cache"`
	Deployment DeploymentConfig `json:"deployment"`
}

type DatabaseConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Name            string        `json:"name"`
	User            string        `json:"user"`
	Password        string        `json:"password"`
	SSLMode         string        `json:"ssl_mode"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time"`
	SlowQueryTime   time.Duration `json:"slow_query_time"`
	AutoMigrate     bool          `json:"auto_migrate"`
}

// DSN returns the key/value connection string used by gorm
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the postgres:// form used by golang-migrate
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

type ServerConfig struct {
	Host              string        `json:"host"`
	Port              int           `json:"port"`
	ReadTimeout       time.Duration `json:"read_timeout"`
	WriteTimeout      time.Duration `json:"write_timeout"`
	IdleTimeout       time.Duration `json:"idle_timeout"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout"`
	BodyLimit         int           `json:"body_limit"`
	ProxyHeader       string        `json:"proxy_header"`
	EnableCompression bool          `json:"enable_compression"`
}

type SecurityConfig struct {
	// CORS
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowCredentials bool     `json:"allow_credentials"`

	// Rate Limiting
	AuthRateLimit   int           `json:"auth_rate_limit"`   // requests per window
	GlobalRateLimit int           `json:"global_rate_limit"` // requests per window
	RateLimitWindow time.Duration `json:"rate_limit_window"`

	// Content Security
	CSPPolicy      string `json:"csp_policy"`
	XFrameOptions  string `json:"x_frame_options"`
	ReferrerPolicy string `json:"referrer_policy"`
}

type SessionConfig struct {
	Secret     string        `json:"-"`
	CookieName string        `json:"cookie_name"`
	TTL        time.Duration `json:"ttl"`
	Secure     bool          `json:"secure"`
	SameSite   string        `json:"same_site"`
	Issuer     string        `json:"issuer"`
}

// OAuthConfig holds the Basalam SSO client settings
type OAuthConfig struct {
	ClientID       string        `json:"client_id"`
	ClientSecret   string        `json:"-"`
	RedirectURI    string        `json:"redirect_uri"`
	Scopes         string        `json:"scopes"`
	AuthorizeURL   string        `json:"authorize_url"`
	TokenURL       string        `json:"token_url"`
	ProfileURL     string        `json:"profile_url"`
	TokenTimeout   time.Duration `json:"token_timeout"`
	ProfileTimeout time.Duration `json:"profile_timeout"`
}

// CatalogConfig holds the remote product API settings
type CatalogConfig struct {
	VendorsURL string        `json:"vendors_url"`
	Timeout    time.Duration `json:"timeout"`
	FailSoft   bool          `json:"fail_soft"`
	RateLimit  float64       `json:"rate_limit"` // outbound requests per second, 0 disables
	RateBurst  int           `json:"rate_burst"`
	CacheTTL   time.Duration `json:"cache_ttl"`
}

// AdminConfig identifies administrators by a single profile field
type AdminConfig struct {
	Phones     []string `json:"phones"`
	PhoneField string   `json:"phone_field"`
}

// IsAdminPhone reports whether phone is in the configured allow-list
func (a AdminConfig) IsAdminPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}
	return slices.Contains(a.Phones, phone)
}

type LoggingConfig struct {
	Level      string `json:"level"`  // debug, info, warn, error
	Output     string `json:"output"` // stdout, file, both
	FilePath   string `json:"file_path"`
	MaxSize    int    `json:"max_size"` // MB
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
	Compress   bool   `json:"compress"`

	EnableAccessLog bool `json:"enable_access_log"`
}

type MetricsConfig struct {
	Enabled        bool   `json:"enabled"`
	PrometheusPath string `json:"prometheus_path"`
}

type CacheConfig struct {
	Enabled         bool          `json:"enabled"`
	Provider        string        `json:"provider"` // redis
	RedisURL        string        `json:"redis_url"`
	RedisDB         int           `json:"redis_db"`
	RedisPrefix     string        `json:"redis_prefix"`
	DefaultTTL      time.Duration `json:"default_ttl"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
}

type DeploymentConfig struct {
	Environment string `json:"environment"`
	Version     string `json:"version"`
	CommitHash  string `json:"commit_hash"`
	BuildTime   string `json:"build_time"`
}

// IsProduction reports whether APP_ENV is production
func (d DeploymentConfig) IsProduction() bool {
	return strings.EqualFold(d.Environment, "production")
}

// IsDevelopment reports whether APP_ENV is development or local
func (d DeploymentConfig) IsDevelopment() bool {
	return d.Environment == "development" || d.Environment == "local"
}

// LoadProductionConfig loads and validates configuration from environment variables
func LoadProductionConfig() (*ProductionConfig, error) {
	// Load environment variables from .env file
	if err := loadEnvFile(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := FromEnv()

	// Validate the loaded configuration
	if err := ValidateProductionConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv builds the configuration from the process environment without validating it
func FromEnv() *ProductionConfig {
	return &ProductionConfig{
		Database: DatabaseConfig{
			Host:            getEnvString("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnvString("DB_NAME", "vendor_campaigns"),
			User:            getEnvString("DB_USER", "postgres"),
			Password:        getEnvString("DB_PASSWORD", "postgres"),
			SSLMode:         getEnvString("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
			SlowQueryTime:   getEnvDuration("DB_SLOW_QUERY_TIME", 1*time.Second),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Server: ServerConfig{
			Host:              getEnvString("SERVER_HOST", "0.0.0.0"),
			Port:              getEnvInt("SERVER_PORT", 5000),
			ReadTimeout:       getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:       getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout:   getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			BodyLimit:         getEnvInt("SERVER_BODY_LIMIT", 4*1024*1024), // 4MB
			ProxyHeader:       getEnvString("SERVER_PROXY_HEADER", ""),
			EnableCompression: getEnvBool("SERVER_ENABLE_COMPRESSION", true),
		},
		Security: SecurityConfig{
			AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localtest.ir:5000"}),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
			AuthRateLimit:    getEnvInt("AUTH_RATE_LIMIT", 20),
			GlobalRateLimit:  getEnvInt("GLOBAL_RATE_LIMIT", 600),
			RateLimitWindow:  getEnvDuration("RATE_LIMIT_WINDOW", 1*time.Minute),
			CSPPolicy:        getEnvString("CSP_POLICY", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:"),
			XFrameOptions:    getEnvString("X_FRAME_OPTIONS", "DENY"),
			ReferrerPolicy:   getEnvString("REFERRER_POLICY", "strict-origin-when-cross-origin"),
		},
		Session: SessionConfig{
			Secret:     getEnvString("SESSION_SECRET", getEnvString("FLASK_SECRET", DefaultSessionSecret)),
			CookieName: getEnvString("SESSION_COOKIE_NAME", utils.SessionCookieName),
			TTL:        getEnvDuration("SESSION_TTL", utils.SessionTTL),
			Secure:     getEnvBool("SESSION_COOKIE_SECURE", false),
			SameSite:   getEnvString("SESSION_COOKIE_SAMESITE", "Lax"),
			Issuer:     getEnvString("SESSION_ISSUER", "vendor-campaigns"),
		},
		OAuth: OAuthConfig{
			ClientID:       getEnvString("BASALAM_CLIENT_ID", ""),
			ClientSecret:   getEnvString("BASALAM_CLIENT_SECRET", ""),
			RedirectURI:    getEnvString("BASALAM_REDIRECT_URI", "http://localtest.ir:5000/auth/callback"),
			Scopes:         getEnvString("BASALAM_SCOPES", "customer.profile.read vendor.product.read"),
			AuthorizeURL:   getEnvString("BASALAM_AUTHORIZE_URL", "https://basalam.com/accounts/sso"),
			TokenURL:       getEnvString("BASALAM_TOKEN_URL", "https://auth.basalam.com/oauth/token"),
			ProfileURL:     getEnvString("BASALAM_PROFILE_URL", "https://core.basalam.com/v3/users/me"),
			TokenTimeout:   getEnvDuration("BASALAM_TOKEN_TIMEOUT", utils.TokenExchangeTimeout),
			ProfileTimeout: getEnvDuration("BASALAM_PROFILE_TIMEOUT", utils.ProfileFetchTimeout),
		},
		Catalog: CatalogConfig{
			VendorsURL: getEnvString("CATALOG_VENDORS_URL", "https://core.basalam.com/v3/vendors"),
			Timeout:    getEnvDuration("CATALOG_TIMEOUT", utils.CatalogFetchTimeout),
			FailSoft:   getEnvBool("CATALOG_FAIL_SOFT", true),
			RateLimit:  getEnvFloat("CATALOG_RATE_LIMIT", 10),
			RateBurst:  getEnvInt("CATALOG_RATE_BURST", 20),
			CacheTTL:   getEnvDuration("CATALOG_CACHE_TTL", 2*time.Minute),
		},
		Admin: AdminConfig{
			Phones:     getEnvStringSlice("ADMIN_PHONES", []string{}),
			PhoneField: getEnvString("ADMIN_PHONE_FIELD", "mobile"),
		},
		Logging: LoggingConfig{
			Level:           getEnvString("LOG_LEVEL", "info"),
			Output:          getEnvString("LOG_OUTPUT", "stdout"),
			FilePath:        getEnvString("LOG_FILE_PATH", "logs/app.log"),
			MaxSize:         getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups:      getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAge:          getEnvInt("LOG_MAX_AGE", 30),
			Compress:        getEnvBool("LOG_COMPRESS", true),
			EnableAccessLog: getEnvBool("LOG_ENABLE_ACCESS_LOG", true),
		},
		Metrics: MetricsConfig{
			Enabled:        getEnvBool("METRICS_ENABLED", true),
			PrometheusPath: getEnvString("METRICS_PATH", "/metrics"),
		},
		Cache: CacheConfig{
			Enabled:         getEnvBool("CACHE_ENABLED", false),
			Provider:        getEnvString("CACHE_PROVIDER", "redis"),
			RedisURL:        getEnvString("CACHE_REDIS_URL", "redis://localhost:6379/0"),
			RedisDB:         getEnvInt("CACHE_REDIS_DB", 0),
			RedisPrefix:     getEnvString("CACHE_REDIS_PREFIX", "vc:"),
			DefaultTTL:      getEnvDuration("CACHE_DEFAULT_TTL", 5*time.Minute),
			CleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", 30*time.Second),
		},
		Deployment: DeploymentConfig{
			Environment: getEnvString("APP_ENV", "development"),
			Version:     getEnvString("VERSION", "1.0.0"),
			CommitHash:  getEnvString("COMMIT_HASH", "unknown"),
			BuildTime:   getEnvString("BUILD_TIME", "unknown"),
		},
	}
}

// loadEnvFile loads environment variables from an env file if it exists
func loadEnvFile(envFile string) error {
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		return nil
	}

	file, err := os.Open(envFile)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", envFile, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		// Remove quotes if present
		if len(value) >= 2 && ((value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'')) {
			value = value[1 : len(value)-1]
		}

		// Real environment wins over the file
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", envFile, err)
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, item := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// ValidateProductionConfig validates the production configuration
func ValidateProductionConfig(cfg *ProductionConfig) error {
	var errors []string

	// Validate database configuration
	if cfg.Database.Host == "" {
		errors = append(errors, "DB_HOST is required")
	}
	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		errors = append(errors, "DB_PORT must be between 1 and 65535")
	}
	if cfg.Database.Name == "" {
		errors = append(errors, "DB_NAME is required")
	}
	if cfg.Database.User == "" {
		errors = append(errors, "DB_USER is required")
	}

	// Validate server configuration
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errors = append(errors, "SERVER_PORT must be between 1 and 65535")
	}
	if cfg.Server.ReadTimeout <= 0 {
		errors = append(errors, "SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		errors = append(errors, "SERVER_WRITE_TIMEOUT must be positive")
	}

	// Validate session configuration
	if cfg.Session.Secret == "" {
		errors = append(errors, "SESSION_SECRET is required")
	}
	if cfg.Session.TTL <= 0 {
		errors = append(errors, "SESSION_TTL must be positive")
	}
	if cfg.Session.CookieName == "" {
		errors = append(errors, "SESSION_COOKIE_NAME is required")
	}

	// Validate OAuth and catalog endpoints
	for name, raw := range map[string]string{
		"BASALAM_AUTHORIZE_URL": cfg.OAuth.AuthorizeURL,
		"BASALAM_TOKEN_URL":     cfg.OAuth.TokenURL,
		"BASALAM_PROFILE_URL":   cfg.OAuth.ProfileURL,
		"BASALAM_REDIRECT_URI":  cfg.OAuth.RedirectURI,
		"CATALOG_VENDORS_URL":   cfg.Catalog.VendorsURL,
	} {
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, fmt.Sprintf("%s must be an absolute URL", name))
		}
	}
	if cfg.Catalog.RateLimit < 0 {
		errors = append(errors, "CATALOG_RATE_LIMIT must not be negative")
	}
	if cfg.Admin.PhoneField == "" {
		errors = append(errors, "ADMIN_PHONE_FIELD is required")
	}

	// Insecure development defaults are rejected in production
	if cfg.Deployment.IsProduction() {
		if cfg.Session.Secret == DefaultSessionSecret || len(cfg.Session.Secret) < 32 {
			errors = append(errors, "SESSION_SECRET must be at least 32 characters long and not the default in production")
		}
		if cfg.OAuth.ClientID == "" || cfg.OAuth.ClientSecret == "" {
			errors = append(errors, "BASALAM_CLIENT_ID and BASALAM_CLIENT_SECRET are required in production")
		}
		if cfg.Database.Password == "" {
			errors = append(errors, "DB_PASSWORD is required in production")
		}
	}

	// Validate logging configuration
	if cfg.Logging.Level != "" {
		validLevels := []string{"debug", "info", "warn", "error"}
		if !slices.Contains(validLevels, cfg.Logging.Level) {
			errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %v", validLevels))
		}
	}
	switch cfg.Logging.Output {
	case "", "stdout", "file", "both":
	default:
		errors = append(errors, "LOG_OUTPUT must be one of: stdout, file, both")
	}

	// Validate cache configuration if enabled
	if cfg.Cache.Enabled {
		if cfg.Cache.Provider == "redis" && cfg.Cache.RedisURL == "" {
			errors = append(errors, "CACHE_REDIS_URL is required when cache is enabled with redis provider")
		}
	}

	// Return validation errors if any
	if len(errors) > 0 {
		slices.Sort(errors)
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}
