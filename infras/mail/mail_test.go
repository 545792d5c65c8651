package mail_test

import (
	"bilateral/config"
	"bilateral/infras/mail"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendWithoutAPIKey(t *testing.T) {
	mailer := mail.New(&config.Config{})

	assert.False(t, mailer.Configured())

	_, err := mailer.Send(context.Background(), mail.Envelope{ToEmail: "organizer@x.org", Subject: "hi"})
	assert.ErrorIs(t, err, mail.ErrNotConfigured)
}

func TestConfiguredWithAPIKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.Mail.APIKey = "SG.test"

	assert.True(t, mail.New(cfg).Configured())
}
