package types

import (
	"github.com/killallgit/practitioners-pod/internal/models"
	"github.com/killallgit/practitioners-pod/internal/services/admin"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`   // Error code
	Details any    `json:"details,omitempty"` // Additional error details
}

// SubmitResponse acknowledges a form submission
type SubmitResponse struct {
	Success bool   `json:"success"`
	ID      uint   `json:"id,omitempty"`
	UUID    string `json:"uuid,omitempty"`
}

// NewsletterResponse acknowledges a subscription change
type NewsletterResponse struct {
	Success bool   `json:"success"`
	Outcome string `json:"outcome,omitempty" enums:"created,reactivated,unsubscribed"`
}

// DirectoryQuery echoes the effective directory query
type DirectoryQuery struct {
	Search string `json:"search"`
	Topic  string `json:"topic"`
	Sort   string `json:"sort"`
}

// DirectoryResponse is the filtered and sorted episode listing
type DirectoryResponse struct {
	Episodes []models.Episode `json:"episodes"`
	Topics   []string         `json:"topics"`
	Count    int              `json:"count"` // episodes in this result
	Total    int              `json:"total"` // episodes in the catalogue
	Query    DirectoryQuery   `json:"query"`
}

// EpisodesResponse is a plain episode list
type EpisodesResponse struct {
	Episodes []models.Episode `json:"episodes"`
	Count    int              `json:"count"`
}

// EpisodeResponse is a single episode with its related episodes
type EpisodeResponse struct {
	Episode models.Episode   `json:"episode"`
	Related []models.Episode `json:"related"`
}

// TopicsResponse lists the distinct episode topics
type TopicsResponse struct {
	Topics []string `json:"topics"`
}

// GuestsResponse is a guest list
type GuestsResponse struct {
	Guests []models.Guest `json:"guests"`
	Count  int            `json:"count"`
}

// StatsResponse holds the public catalogue figures
type StatsResponse struct {
	Episodes   int64 `json:"episodes"`
	Guests     int64 `json:"guests"`
	TotalViews int64 `json:"total_views"`
}

// Pagination describes one page of an admin listing
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ApplicationsResponse is a page of guest applications
type ApplicationsResponse struct {
	Applications []models.GuestApplication `json:"applications"`
	Pagination   Pagination                `json:"pagination"`
}

// MessagesResponse is a page of contact messages
type MessagesResponse struct {
	Messages   []models.ContactMessage `json:"messages"`
	Pagination Pagination              `json:"pagination"`
}

// DashboardResponse wraps the admin overview
type DashboardResponse struct {
	Dashboard *admin.Dashboard `json:"dashboard"`
}

// SyncResponse reports a YouTube sync
type SyncResponse struct {
	Fetched   int `json:"fetched"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
}
