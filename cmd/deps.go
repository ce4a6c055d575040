package cmd

import (
	"fmt"

	"github.com/killallgit/practitioners-pod/api/types"
	"github.com/killallgit/practitioners-pod/internal/database"
	"github.com/killallgit/practitioners-pod/internal/services/episodes"
	"github.com/killallgit/practitioners-pod/internal/services/youtube"
	"github.com/killallgit/practitioners-pod/pkg/config"
)

// openDatabase opens the configured database and brings its schema up to date
func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// videoSource returns a YouTube client when sync is configured, otherwise nil
func videoSource(cfg *config.Config) episodes.VideoSource {
	if !cfg.YouTube.Enabled() {
		return nil
	}
	return youtube.NewClient(youtube.Config{
		APIKey:            cfg.YouTube.APIKey,
		ChannelID:         cfg.YouTube.ChannelID,
		BaseURL:           cfg.YouTube.BaseURL,
		Timeout:           cfg.YouTube.Timeout,
		MaxRetries:        cfg.YouTube.RetryAttempts,
		RequestsPerSecond: cfg.YouTube.RateLimit,
		MaxResults:        cfg.YouTube.MaxResults,
	})
}

// openDependencies opens the database and builds every service on top of it.
// The returned func closes the database.
func openDependencies(cfg *config.Config) (*types.Dependencies, func(), error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("configuration not loaded")
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	deps, err := types.NewDependencies(db, cfg, videoSource(cfg))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return deps, func() { _ = db.Close() }, nil
}
