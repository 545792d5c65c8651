package notifier

import (
	"bilateral/config"
	"bilateral/infras/mail"
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	displayDateFormat  = "Monday, January 2, 2006"
	displayClockFormat = "3:04 PM"
)

var ErrEmailNotConfigured = errors.New("e-mail notifier is not configured")

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type emailContent struct {
	EventTitle string
	Date       string
	StartTime  string
	EndTime    string
	Name       string
	Email      string
	Country    string
}

// EmailChannel mails every notice to the organizer.
type EmailChannel struct {
	mailer     mail.Mailer
	organizer  string
	eventTitle string
}

func NewEmailChannel(cfg *config.Config, mailer mail.Mailer) *EmailChannel {
	return &EmailChannel{
		mailer:     mailer,
		organizer:  cfg.External.Mail.OrganizerEmail,
		eventTitle: cfg.External.Mail.EventTitle,
	}
}

// Configured reports whether both the provider credential and the organizer address are set.
func (c *EmailChannel) Configured() bool {
	return c.mailer.Configured() && c.organizer != ""
}

func (c *EmailChannel) Name() string {
	return "email"
}

func (c *EmailChannel) Deliver(ctx context.Context, notice Notice) error {
	_, err := c.Send(ctx, notice)

	return err
}

// Send renders and mails the notice synchronously and returns the provider receipt.
func (c *EmailChannel) Send(ctx context.Context, notice Notice) (mail.Receipt, error) {
	if !c.Configured() {
		return mail.Receipt{}, ErrEmailNotConfigured
	}

	envelope, err := c.Render(notice)
	if err != nil {
		return mail.Receipt{}, err
	}

	receipt, err := c.mailer.Send(ctx, envelope)
	if err != nil {
		return receipt, fmt.Errorf("failed to mail %s notice: %w", notice.Kind, err)
	}

	log.Info().Str("kind", string(notice.Kind)).Str("slotId", notice.Slot.ID).Msg("Booking notice e-mailed to organizer")

	return receipt, nil
}

// Render builds the organizer e-mail for a notice.
func (c *EmailChannel) Render(notice Notice) (mail.Envelope, error) {
	content := emailContent{
		EventTitle: c.eventTitle,
		Date:       notice.Slot.Date.Format(displayDateFormat),
		StartTime:  displayClock(notice.Slot.StartTime),
		EndTime:    displayClock(notice.Slot.EndTime),
		Name:       notice.Attendee.Name,
		Email:      notice.Attendee.Email,
		Country:    notice.Attendee.Country,
	}

	subject := fmt.Sprintf("New Booking: EU-%s Meeting - %s", content.Country, content.Date)
	name := "booked.html"

	if notice.Kind == Cancelled {
		subject = fmt.Sprintf("Booking Cancelled: EU-%s Meeting - %s", content.Country, content.Date)
		name = "cancelled.html"
	}

	var html bytes.Buffer
	if err := templates.ExecuteTemplate(&html, name, content); err != nil {
		return mail.Envelope{}, fmt.Errorf("failed to render %s: %w", name, err)
	}

	return mail.Envelope{
		ToEmail: c.organizer,
		Subject: subject,
		Text:    plainText(notice.Kind, content),
		HTML:    html.String(),
	}, nil
}

func plainText(kind Kind, content emailContent) string {
	var b strings.Builder

	if kind == Cancelled {
		b.WriteString("A meeting slot has been cancelled and is now available for booking.\n\n")
	} else {
		b.WriteString("A new meeting slot has been booked with the EU delegation.\n\n")
	}

	fmt.Fprintf(&b, "Date: %s\n", content.Date)
	fmt.Fprintf(&b, "Time: %s - %s\n", content.StartTime, content.EndTime)
	fmt.Fprintf(&b, "Attendees: EU - %s\n\n", content.Country)
	fmt.Fprintf(&b, "Name: %s\n", content.Name)
	fmt.Fprintf(&b, "Email: %s\n", content.Email)
	fmt.Fprintf(&b, "Country: %s\n", content.Country)

	return b.String()
}

// displayClock turns "14:00" into "2:00 PM". Unparseable values are returned unchanged.
func displayClock(clock string) string {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return clock
	}

	return parsed.Format(displayClockFormat)
}
