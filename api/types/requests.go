package types

import "github.com/killallgit/practitioners-pod/internal/models"

// ContactRequest is the body of POST /api/v1/contact
type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=2" example:"Ada Lovelace"`
	Email   string `json:"email" binding:"required,email" example:"ada@example.com"`
	Subject string `json:"subject" binding:"required,min=1" example:"Sponsorship"`
	Message string `json:"message" binding:"required,min=20" example:"I would like to talk about sponsoring an episode."`
}

// ToModel converts the request to a contact message
func (r ContactRequest) ToModel() *models.ContactMessage {
	return &models.ContactMessage{
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.Subject,
		Message: r.Message,
	}
}

// NewsletterRequest is the body of the newsletter subscribe and unsubscribe routes
type NewsletterRequest struct {
	Email string `json:"email" binding:"required,email" example:"ada@example.com"`
	Name  string `json:"name,omitempty" example:"Ada"`
}

// ApplicationRequest is the body of POST /api/v1/applications
type ApplicationRequest struct {
	Name               string   `json:"name" binding:"required,min=2"`
	Email              string   `json:"email" binding:"required,email"`
	Phone              string   `json:"phone" binding:"required,min=10"`
	LinkedinURL        string   `json:"linkedinUrl" binding:"required,url"`
	TwitterURL         string   `json:"twitterUrl,omitempty" binding:"omitempty,url"`
	CurrentRole        string   `json:"currentRole" binding:"required,min=2"`
	Company            string   `json:"company" binding:"required,min=2"`
	YearsOfExperience  int      `json:"yearsOfExperience" binding:"required,min=1"`
	Expertise          []string `json:"expertise" binding:"required"`
	Achievements       []string `json:"achievements" binding:"required"`
	ReasonForGuest     string   `json:"reasonForGuest" binding:"required,min=50"`
	UniqueInsights     string   `json:"uniqueInsights" binding:"required,min=50"`
	TopicsToDiscuss    []string `json:"topicsToDiscuss" binding:"required"`
	PreviousExperience string   `json:"previousExperience,omitempty"`
	PreferredTimeframe string   `json:"preferredTimeframe" binding:"required,min=1"`
	Timezone           string   `json:"timezone" binding:"required,min=1"`
	RecordingFormat    string   `json:"recordingFormat" binding:"required,oneof=video audio-only" enums:"video,audio-only"`
}

// ToModel converts the request to a guest application. Empty optional
// strings are stored as NULL.
func (r ApplicationRequest) ToModel() *models.GuestApplication {
	return &models.GuestApplication{
		Name:               r.Name,
		Email:              r.Email,
		Phone:              r.Phone,
		LinkedinURL:        r.LinkedinURL,
		TwitterURL:         optional(r.TwitterURL),
		CurrentRole:        r.CurrentRole,
		Company:            r.Company,
		YearsOfExperience:  r.YearsOfExperience,
		Expertise:          r.Expertise,
		Achievements:       r.Achievements,
		ReasonForGuest:     r.ReasonForGuest,
		UniqueInsights:     r.UniqueInsights,
		TopicsToDiscuss:    r.TopicsToDiscuss,
		PreviousExperience: optional(r.PreviousExperience),
		PreferredTimeframe: r.PreferredTimeframe,
		Timezone:           r.Timezone,
		RecordingFormat:    r.RecordingFormat,
	}
}

// StatusUpdateRequest is the body of PUT /api/v1/admin/applications/:id/status
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required" enums:"NEW,REVIEWING,ACCEPTED,DECLINED"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
