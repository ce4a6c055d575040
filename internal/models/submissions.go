package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ApplicationStatus tracks a guest application through review
type ApplicationStatus string

const (
	ApplicationStatusNew       ApplicationStatus = "NEW"
	ApplicationStatusReviewing ApplicationStatus = "REVIEWING"
	ApplicationStatusAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationStatusDeclined  ApplicationStatus = "DECLINED"
)

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusNew, ApplicationStatusReviewing, ApplicationStatusAccepted, ApplicationStatusDeclined:
		return true
	}
	return false
}

// GuestApplication is a request from someone who wants to appear on the show
type GuestApplication struct {
	gorm.Model
	UUID               string                      `json:"uuid" gorm:"uniqueIndex"`
	Name               string                      `json:"name" gorm:"not null"`
	Email              string                      `json:"email" gorm:"not null;index"`
	Phone              string                      `json:"phone"`
	LinkedinURL        string                      `json:"linkedin_url"`
	TwitterURL         *string                     `json:"twitter_url,omitempty"`
	CurrentRole        string                      `json:"current_role"`
	Company            string                      `json:"company"`
	YearsOfExperience  int                         `json:"years_of_experience"`
	Expertise          datatypes.JSONSlice[string] `json:"expertise"`
	Achievements       datatypes.JSONSlice[string] `json:"achievements"`
	ReasonForGuest     string                      `json:"reason_for_guest" gorm:"type:text"`
	UniqueInsights     string                      `json:"unique_insights" gorm:"type:text"`
	TopicsToDiscuss    datatypes.JSONSlice[string] `json:"topics_to_discuss"`
	PreviousExperience *string                     `json:"previous_experience,omitempty" gorm:"type:text"`
	PreferredTimeframe string                      `json:"preferred_timeframe"`
	Timezone           string                      `json:"timezone"`
	RecordingFormat    string                      `json:"recording_format"` // video|audio-only
	Status             ApplicationStatus           `json:"status" gorm:"default:NEW;index"`
}

// BeforeCreate assigns the public UUID
func (a *GuestApplication) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = ApplicationStatusNew
	}
	return nil
}

// MessageStatus tracks whether a contact message has been handled
type MessageStatus string

const (
	MessageStatusNew      MessageStatus = "new"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusArchived MessageStatus = "archived"
)

// ContactMessage is a submission of the contact form
type ContactMessage struct {
	gorm.Model
	Name    string        `json:"name" gorm:"not null"`
	Email   string        `json:"email" gorm:"not null"`
	Subject string        `json:"subject"`
	Message string        `json:"message" gorm:"type:text"`
	Status  MessageStatus `json:"status" gorm:"default:new;index"`
}

// NewsletterSubscriber is an email address signed up for the newsletter
type NewsletterSubscriber struct {
	gorm.Model
	Email  string  `json:"email" gorm:"uniqueIndex;not null"`
	Name   *string `json:"name,omitempty"`
	Active bool    `json:"active" gorm:"not null"`
}
