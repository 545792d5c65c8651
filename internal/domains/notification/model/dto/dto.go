package dto

import "bilateral/infras/mail"

type MailConfig struct {
	HasAPIKey      bool   `json:"has_api_key"`
	FromEmail      string `json:"from_email"`
	OrganizerEmail string `json:"organizer_email"`
}

// TestEmailResponse reports the outcome of a sample notice together with the mail setup
// it was sent with. The API key itself is never echoed.
type TestEmailResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Receipt *mail.Receipt `json:"receipt,omitempty"`
	Config  MailConfig    `json:"config"`
}
