package service

import (
	"bilateral/config"
	"bilateral/infras/otel"
	bookingModel "bilateral/internal/domains/booking/model"
	"bilateral/internal/domains/booking/notifier"
	"bilateral/internal/domains/notification/model/dto"
	slotModel "bilateral/internal/domains/slot/model"
	"bilateral/shared/constant"
	"bilateral/shared/failure"
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type Notification interface {
	SendTestEmail(ctx context.Context) (dto.TestEmailResponse, error)
}

type serviceImpl struct {
	email *notifier.EmailChannel
	cfg   *config.Config
	otel  otel.Otel
}

func New(email *notifier.EmailChannel, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		email: email,
		cfg:   cfg,
		otel:  otel,
	}
}

func sampleNotice() notifier.Notice {
	return notifier.Notice{
		Kind: notifier.Booked,
		Attendee: bookingModel.Attendee{
			Name:    "Test User",
			Email:   "test@example.com",
			Country: "Test Country",
		},
		Slot: slotModel.Slot{
			ID:        "test-slot-id",
			Date:      time.Date(2025, time.January, 26, 0, 0, 0, 0, time.UTC),
			StartTime: "14:00",
			EndTime:   "15:00",
		},
	}
}

// SendTestEmail mails a sample booking notice to the organizer synchronously. The
// response is filled in on failure too, so callers can show the mail setup.
func (s *serviceImpl) SendTestEmail(ctx context.Context) (res dto.TestEmailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendTestEmail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	mailConfig := s.cfg.External.Mail

	res.Config = dto.MailConfig{
		HasAPIKey:      mailConfig.APIKey != "",
		FromEmail:      mailConfig.FromEmail,
		OrganizerEmail: mailConfig.OrganizerEmail,
	}

	receipt, err := s.email.Send(ctx, sampleNotice())
	if err != nil {
		log.Error().Err(err).Msg("failed to send test e-mail")

		res.Error = err.Error()
		if receipt.StatusCode != 0 {
			res.Receipt = &receipt
		}

		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	res.Success = true
	res.Receipt = &receipt

	return res, nil
}
