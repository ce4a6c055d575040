package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string          `mapstructure:"environment"`
	Server       ServerConfig    `mapstructure:"server"`
	Database     DatabaseConfig  `mapstructure:"database"`
	YouTube      YouTubeConfig   `mapstructure:"youtube"`
	Auth         AuthConfig      `mapstructure:"auth"`
	Cache        CacheConfig     `mapstructure:"cache"`
	RateLimiting RateLimitConfig `mapstructure:"rate_limiting"`
	Security     SecurityConfig  `mapstructure:"security"`
	Logging      LoggingConfig   `mapstructure:"logging"`
	Site         SiteConfig      `mapstructure:"site"`
}

// IsProduction reports whether the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	EnableWAL             bool          `mapstructure:"enable_wal"`
	EnableForeignKeys     bool          `mapstructure:"enable_foreign_keys"`
	LogQueries            bool          `mapstructure:"log_queries"`
}

// YouTubeConfig contains YouTube Data API settings used by episode sync
type YouTubeConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	ChannelID     string        `mapstructure:"channel_id"`
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RateLimit     int           `mapstructure:"rate_limit"`
	MaxResults    int           `mapstructure:"max_results"`
	SyncInterval  time.Duration `mapstructure:"sync_interval"` // 0 disables background sync
}

// Enabled reports whether sync has the credentials it needs
func (y YouTubeConfig) Enabled() bool {
	return y.APIKey != "" && y.ChannelID != ""
}

// AuthConfig contains admin token settings
type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret"`
	Issuer      string        `mapstructure:"issuer"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	DevBypass   bool          `mapstructure:"dev_bypass"`
	DevToken    string        `mapstructure:"dev_token"`
	AdminEmails []string      `mapstructure:"admin_emails"`
}

// CacheConfig contains cache settings
type CacheConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	Memory  MemoryCacheConfig `mapstructure:"memory"`
	API     APICacheConfig    `mapstructure:"api"`
}

// MemoryCacheConfig contains in-memory cache settings
type MemoryCacheConfig struct {
	DefaultTTL      time.Duration `mapstructure:"default_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	MaxEntries      int           `mapstructure:"max_entries"`
}

// APICacheConfig contains API response cache settings
type APICacheConfig struct {
	EpisodeTTL time.Duration `mapstructure:"episode_ttl"`
	GuestTTL   time.Duration `mapstructure:"guest_ttl"`
	StatsTTL   time.Duration `mapstructure:"stats_ttl"`
}

// RateLimitConfig contains rate limiting settings, in requests per minute
type RateLimitConfig struct {
	Enabled   bool           `mapstructure:"enabled"`
	Endpoints map[string]int `mapstructure:"endpoints"`
}

// PerMinute returns the configured limit for an endpoint group, falling back to "default"
func (r RateLimitConfig) PerMinute(group string) int {
	if n, ok := r.Endpoints[group]; ok && n > 0 {
		return n
	}
	if n, ok := r.Endpoints["default"]; ok && n > 0 {
		return n
	}
	return 120
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS     bool     `mapstructure:"enable_cors"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
	CORSMethods    []string `mapstructure:"cors_methods"`
	CORSHeaders    []string `mapstructure:"cors_headers"`
	EnableRecovery bool     `mapstructure:"enable_recovery"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	FilePath string `mapstructure:"file_path"`
	Requests bool   `mapstructure:"requests"`
}

// SiteConfig contains presentation defaults for the public listings
type SiteConfig struct {
	LatestEpisodes  int `mapstructure:"latest_episodes"`
	FeaturedGuests  int `mapstructure:"featured_guests"`
	RelatedEpisodes int `mapstructure:"related_episodes"`
	RecentApps      int `mapstructure:"recent_applications"`
}
