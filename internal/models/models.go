package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Episode represents a published show episode, sourced from the YouTube channel
type Episode struct {
	gorm.Model
	YouTubeID     string    `json:"youtube_id" gorm:"column:youtube_id;uniqueIndex;not null"`
	Title         string    `json:"title" gorm:"not null"`
	Description   string    `json:"description" gorm:"type:text"`
	EpisodeNumber int       `json:"episode_number" gorm:"uniqueIndex;not null"`
	PublishedAt   time.Time `json:"published_at" gorm:"index"`
	Duration      string    `json:"duration"` // Display form, "01:02:03" or "45:10" under an hour
	ThumbnailURL  string    `json:"thumbnail_url"`
	ViewCount     int64     `json:"view_count" gorm:"default:0"`

	Topics datatypes.JSONSlice[string] `json:"topics"`

	ShowNotes  string `json:"show_notes,omitempty" gorm:"type:text"`
	Transcript string `json:"transcript,omitempty" gorm:"type:text"`

	GuestID *uint  `json:"guest_id,omitempty" gorm:"index"`
	Guest   *Guest `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}

// Guest represents a person who appeared on the show
type Guest struct {
	gorm.Model
	Name        string                      `json:"name" gorm:"not null"`
	Title       string                      `json:"title"`
	Company     string                      `json:"company"`
	Bio         string                      `json:"bio,omitempty" gorm:"type:text"`
	HeadshotURL string                      `json:"headshot_url,omitempty"`
	LinkedinURL string                      `json:"linkedin_url,omitempty"`
	TwitterURL  string                      `json:"twitter_url,omitempty"`
	Expertise   datatypes.JSONSlice[string] `json:"expertise"`
	Episodes    []Episode                   `json:"episodes,omitempty" gorm:"foreignKey:GuestID"`
}

// All returns every model managed by migrations, in dependency order.
func All() []any {
	return []any{
		&Guest{},
		&Episode{},
		&GuestApplication{},
		&ContactMessage{},
		&NewsletterSubscriber{},
	}
}
