package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useConfigFile(t *testing.T, content string) {
	t.Helper()
	viper.Reset()
	prev := configFile
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	configFile = path
	t.Cleanup(func() {
		configFile = prev
		viper.Reset()
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "load from settings file",
			content: `
server:
  host: "127.0.0.1"
  port: 8081
database:
  path: "./test.db"
youtube:
  channel_id: "UC123"
`,
			check: func(t *testing.T) {
				assert.Equal(t, 8081, GetInt("server.port"))
				assert.Equal(t, "./test.db", GetString("database.path"))
				assert.Equal(t, "UC123", GetString("youtube.channel_id"))
			},
		},
		{
			name: "environment variable override",
			content: `
server:
  port: 8081
`,
			env: map[string]string{"PODSITE_SERVER_PORT": "9090"},
			check: func(t *testing.T) {
				assert.Equal(t, 9090, GetInt("server.port"))
			},
		},
		{
			name: "missing settings file uses defaults",
			check: func(t *testing.T) {
				assert.Equal(t, 8080, GetInt("server.port"))
				assert.Equal(t, "./data/podsite.db", GetString("database.path"))
				assert.Equal(t, 10*time.Minute, GetDuration("cache.api.episode_ttl"))
				assert.True(t, GetBool("rate_limiting.enabled"))
			},
		},
		{
			name: "placeholder secret rejected in production",
			content: `
environment: production
`,
			wantErr: true,
		},
		{
			name: "production with real secret",
			content: `
environment: production
auth:
  jwt_secret: "s3cr3t-value-for-tests"
`,
		},
		{
			name:    "malformed settings file",
			content: "server: [port",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfigFile(t, tt.content)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func TestGetConfig(t *testing.T) {
	useConfigFile(t, `
rate_limiting:
  endpoints:
    forms: 3
`)
	require.NoError(t, Load())

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 3, cfg.RateLimiting.PerMinute("forms"))
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.YouTube.Enabled())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				Server:   ServerConfig{Host: "localhost", Port: 8080},
				Database: DatabaseConfig{Path: "./data/podsite.db"},
			},
		},
		{
			name: "invalid port",
			config: &Config{
				Server:   ServerConfig{Port: 0},
				Database: DatabaseConfig{Path: "./data/podsite.db"},
			},
			wantErr: true,
		},
		{
			name: "empty database path",
			config: &Config{
				Server: ServerConfig{Port: 8080},
			},
			wantErr: true,
		},
		{
			name: "dev bypass in production",
			config: &Config{
				Environment: "production",
				Server:      ServerConfig{Port: 8080},
				Database:    DatabaseConfig{Path: "./x.db"},
				Auth:        AuthConfig{JWTSecret: "real-secret", DevBypass: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateFillsSiteDefaults(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Path: ":memory:"},
		YouTube:  YouTubeConfig{MaxResults: 500, RetryAttempts: -1},
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 6, cfg.Site.LatestEpisodes)
	assert.Equal(t, 6, cfg.Site.FeaturedGuests)
	assert.Equal(t, 3, cfg.Site.RelatedEpisodes)
	assert.Equal(t, 5, cfg.Site.RecentApps)
	assert.Equal(t, 50, cfg.YouTube.MaxResults)
	assert.Equal(t, 0, cfg.YouTube.RetryAttempts)
}

func TestRateLimitConfig_PerMinute(t *testing.T) {
	r := RateLimitConfig{Endpoints: map[string]int{"default": 30, "forms": 0}}
	assert.Equal(t, 30, r.PerMinute("forms"))
	assert.Equal(t, 30, r.PerMinute("unknown"))
	assert.Equal(t, 120, RateLimitConfig{}.PerMinute("x"))
}
