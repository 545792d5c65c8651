package mail

//go:generate go run go.uber.org/mock/mockgen -source=./mail.go -destination=./mocks/mail_mock.go -package=mocks

import (
	"bilateral/config"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	sgMail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	ErrNotConfigured = errors.New("mail api key is not configured")
	ErrRejected      = errors.New("mail provider rejected the message")
)

type Envelope struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers a single message.
type Mailer interface {
	Configured() bool
	Send(ctx context.Context, envelope Envelope) (Receipt, error)
}

// Receipt is what the provider answered.
type Receipt struct {
	StatusCode int    `json:"status_code"`
	MessageID  string `json:"message_id,omitempty"`
}

type sendgridMailer struct {
	apiKey    string
	fromName  string
	fromEmail string
}

func New(config *config.Config) Mailer {
	mailConfig := config.External.Mail

	if mailConfig.APIKey == "" {
		log.Warn().Msg("No mail API key configured, e-mail notices are disabled")
	}

	return &sendgridMailer{
		apiKey:    mailConfig.APIKey,
		fromName:  mailConfig.FromName,
		fromEmail: mailConfig.FromEmail,
	}
}

func (m *sendgridMailer) Configured() bool {
	return m.apiKey != ""
}

func (m *sendgridMailer) Send(ctx context.Context, envelope Envelope) (Receipt, error) {
	if !m.Configured() {
		return Receipt{}, ErrNotConfigured
	}

	from := sgMail.NewEmail(m.fromName, m.fromEmail)
	to := sgMail.NewEmail(envelope.ToName, envelope.ToEmail)
	message := sgMail.NewSingleEmail(from, envelope.Subject, to, envelope.Text, envelope.HTML)

	client := sendgrid.NewSendClient(m.apiKey)

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("to", envelope.ToEmail).Msg("Failed to send e-mail via SendGrid")

		return Receipt{}, fmt.Errorf("failed to send e-mail: %w", err)
	}

	receipt := Receipt{StatusCode: response.StatusCode}
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		receipt.MessageID = ids[0]
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		log.Error().
			Int("status", response.StatusCode).
			Str("body", response.Body).
			Str("to", envelope.ToEmail).
			Msg("SendGrid returned a non-success status")

		return receipt, fmt.Errorf("%w: status %d", ErrRejected, response.StatusCode)
	}

	log.Info().
		Int("status", response.StatusCode).
		Str("to", envelope.ToEmail).
		Str("subject", envelope.Subject).
		Msg("E-mail sent")

	return receipt, nil
}
