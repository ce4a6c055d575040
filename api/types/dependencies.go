package types

import (
	"fmt"

	"github.com/killallgit/practitioners-pod/internal/database"
	"github.com/killallgit/practitioners-pod/internal/services/admin"
	"github.com/killallgit/practitioners-pod/internal/services/applications"
	"github.com/killallgit/practitioners-pod/internal/services/auth"
	"github.com/killallgit/practitioners-pod/internal/services/cache"
	"github.com/killallgit/practitioners-pod/internal/services/contact"
	"github.com/killallgit/practitioners-pod/internal/services/episodes"
	"github.com/killallgit/practitioners-pod/internal/services/guests"
	"github.com/killallgit/practitioners-pod/internal/services/newsletter"
	"github.com/killallgit/practitioners-pod/pkg/config"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB     *database.DB
	Config *config.Config
	Cache  cache.Cache

	Episodes     *episodes.Service
	Guests       *guests.Service
	Applications *applications.Service
	Contact      *contact.Service
	Newsletter   *newsletter.Service
	Admin        *admin.Service
	Auth         *auth.Service
}

// NewDependencies builds every service on top of db. source may be nil when
// YouTube sync is not configured.
func NewDependencies(db *database.DB, cfg *config.Config, source episodes.VideoSource) (*Dependencies, error) {
	authService, err := auth.NewService(auth.Config{
		Secret:      cfg.Auth.JWTSecret,
		Issuer:      cfg.Auth.Issuer,
		DefaultTTL:  cfg.Auth.TokenTTL,
		AdminEmails: cfg.Auth.AdminEmails,
	})
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	authService.SetDevAuth(cfg.Auth.DevBypass, cfg.Auth.DevToken)

	episodeService := episodes.NewService(episodes.NewRepository(db.DB), source)
	guestService := guests.NewService(guests.NewRepository(db.DB))
	applicationService := applications.NewService(applications.NewRepository(db.DB))
	contactService := contact.NewService(contact.NewRepository(db.DB))
	newsletterService := newsletter.NewService(newsletter.NewRepository(db.DB))

	return &Dependencies{
		DB:           db,
		Config:       cfg,
		Episodes:     episodeService,
		Guests:       guestService,
		Applications: applicationService,
		Contact:      contactService,
		Newsletter:   newsletterService,
		Admin: admin.NewService(applicationService, guestService, episodeService,
			contactService, newsletterService, cfg.Site.RecentApps),
		Auth: authService,
	}, nil
}

// Site returns the listing defaults, falling back to the built-in sizes when
// no configuration is attached
func (d *Dependencies) Site() config.SiteConfig {
	site := config.SiteConfig{LatestEpisodes: 6, FeaturedGuests: 6, RelatedEpisodes: 3, RecentApps: 5}
	if d.Config == nil {
		return site
	}
	if d.Config.Site.LatestEpisodes > 0 {
		site.LatestEpisodes = d.Config.Site.LatestEpisodes
	}
	if d.Config.Site.FeaturedGuests > 0 {
		site.FeaturedGuests = d.Config.Site.FeaturedGuests
	}
	if d.Config.Site.RelatedEpisodes > 0 {
		site.RelatedEpisodes = d.Config.Site.RelatedEpisodes
	}
	if d.Config.Site.RecentApps > 0 {
		site.RecentApps = d.Config.Site.RecentApps
	}
	return site
}
