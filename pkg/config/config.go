package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. PODSITE_SERVER_PORT
const EnvPrefix = "PODSITE"

var (
	once    sync.Once
	initErr error

	configFile = filepath.Clean("./config/settings.yaml")
)

// placeholder values that must never reach production
var placeholders = []string{
	"YOUR_KEY_HERE",
	"YOUR_SECRET_HERE",
	"YOUR_API_KEY",
	"changeme",
	"CHANGEME",
	"",
}

// Init initializes the configuration system once per process
func Init() error {
	once.Do(func() {
		initErr = Load()
	})
	return initErr
}

// Load reads defaults, the settings file and environment overrides into viper.
// Unlike Init it runs every time it is called.
func Load() error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine; defaults and env vars apply
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SetConfigFile overrides the settings file location (used by --config)
func SetConfigFile(path string) {
	if path != "" {
		configFile = filepath.Clean(path)
	}
}

// GetConfig returns the current configuration as a struct
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// Validate checks the configuration and fills in corrected values where a
// zero value would break the server.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path is not configured")
	}

	if isPlaceholder(c.Auth.JWTSecret) {
		if c.IsProduction() {
			return fmt.Errorf("invalid JWT secret: cannot use placeholder values in production")
		}
		slog.Warn("JWT secret is using a placeholder value, admin tokens are insecure")
	}

	if c.Auth.DevBypass && c.IsProduction() {
		return fmt.Errorf("auth dev bypass cannot be enabled in production")
	}

	if c.YouTube.APIKey != "" && isPlaceholder(c.YouTube.APIKey) && c.IsProduction() {
		return fmt.Errorf("invalid YouTube API key: cannot use placeholder values in production")
	}

	if c.YouTube.RetryAttempts < 0 {
		c.YouTube.RetryAttempts = 0
	}
	if c.YouTube.SyncInterval < 0 {
		c.YouTube.SyncInterval = 0
	}
	if c.YouTube.MaxResults <= 0 || c.YouTube.MaxResults > 50 {
		c.YouTube.MaxResults = 50
	}

	if c.Site.LatestEpisodes <= 0 {
		c.Site.LatestEpisodes = 6
	}
	if c.Site.FeaturedGuests <= 0 {
		c.Site.FeaturedGuests = 6
	}
	if c.Site.RelatedEpisodes <= 0 {
		c.Site.RelatedEpisodes = 3
	}
	if c.Site.RecentApps <= 0 {
		c.Site.RecentApps = 5
	}

	return nil
}

func isPlaceholder(v string) bool {
	return slices.Contains(placeholders, v)
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 64*1024)

	// Database defaults
	viper.SetDefault("database.path", "./data/podsite.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.enable_wal", true)
	viper.SetDefault("database.enable_foreign_keys", true)
	viper.SetDefault("database.log_queries", false)

	// YouTube defaults
	viper.SetDefault("youtube.api_key", "")
	viper.SetDefault("youtube.channel_id", "")
	viper.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")
	viper.SetDefault("youtube.timeout", 10*time.Second)
	viper.SetDefault("youtube.retry_attempts", 3)
	viper.SetDefault("youtube.rate_limit", 5)
	viper.SetDefault("youtube.max_results", 50)
	viper.SetDefault("youtube.sync_interval", 0)

	// Auth defaults
	viper.SetDefault("auth.jwt_secret", "changeme")
	viper.SetDefault("auth.issuer", "podsite")
	viper.SetDefault("auth.token_ttl", 24*time.Hour)
	viper.SetDefault("auth.dev_bypass", false)
	viper.SetDefault("auth.dev_token", "")
	viper.SetDefault("auth.admin_emails", []string{})

	// Cache defaults
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.memory.default_ttl", 5*time.Minute)
	viper.SetDefault("cache.memory.cleanup_interval", 5*time.Minute)
	viper.SetDefault("cache.memory.max_entries", 1000)
	viper.SetDefault("cache.api.episode_ttl", 10*time.Minute)
	viper.SetDefault("cache.api.guest_ttl", 30*time.Minute)
	viper.SetDefault("cache.api.stats_ttl", 5*time.Minute)

	// Rate limiting defaults, requests per minute
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.endpoints", map[string]int{
		"default": 120,
		"forms":   10,
		"admin":   60,
	})

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.cors_methods", []string{"GET", "POST", "PUT", "OPTIONS"})
	viper.SetDefault("security.cors_headers", []string{"Content-Type", "Authorization"})
	viper.SetDefault("security.enable_recovery", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.file_path", "")
	viper.SetDefault("logging.requests", true)

	// Site defaults
	viper.SetDefault("site.latest_episodes", 6)
	viper.SetDefault("site.featured_guests", 6)
	viper.SetDefault("site.related_episodes", 3)
	viper.SetDefault("site.recent_applications", 5)
}
