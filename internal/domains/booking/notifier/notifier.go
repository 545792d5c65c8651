package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"bilateral/config"
	"bilateral/infras/kafka"
	"bilateral/infras/mail"
	"bilateral/infras/otel"
	"bilateral/internal/domains/booking/model"
	slotModel "bilateral/internal/domains/slot/model"
	"bilateral/shared/constant"
	"bilateral/shared/timezone"
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Kind string

const (
	Booked    Kind = "booked"
	Cancelled Kind = "cancelled"
)

// Notice is one booking state change.
type Notice struct {
	Kind     Kind
	Attendee model.Attendee
	Slot     slotModel.Slot
	// At is when Notify was called.
	At time.Time
}

// Notifier reports booking state changes out of band. Notify never blocks on delivery
// and never reports a failure back to the caller.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, attendee model.Attendee, slot slotModel.Slot)
	// Wait blocks until every in-flight delivery has finished.
	Wait()
}

// Channel delivers a notice to one destination.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, notice Notice) error
}

// Dispatcher delivers each notice to every channel in the background. A channel sees
// notices one at a time, in the order Notify was called.
type Dispatcher struct {
	channels []Channel
	otel     otel.Otel
	wg       sync.WaitGroup

	mu    sync.Mutex
	tails []chan struct{}
}

// New builds the dispatcher from what is configured. The log channel is always present.
func New(cfg *config.Config, mailer mail.Mailer, kafkaClient kafka.Client, otel otel.Otel) Notifier {
	channels := []Channel{NewLogChannel()}

	email := NewEmailChannel(cfg, mailer)
	if email.Configured() {
		channels = append(channels, email)
	} else {
		log.Warn().
			Bool("hasApiKey", mailer.Configured()).
			Str("organizerEmail", cfg.External.Mail.OrganizerEmail).
			Msg("E-mail notifier not configured, booking notices will not be e-mailed")
	}

	if kafkaClient.Enabled() {
		channels = append(channels, NewEventChannel(cfg, kafkaClient))
	}

	return NewDispatcher(otel, channels...)
}

func NewDispatcher(otel otel.Otel, channels ...Channel) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		otel:     otel,
		tails:    make([]chan struct{}, len(channels)),
	}
}

func (d *Dispatcher) Notify(ctx context.Context, kind Kind, attendee model.Attendee, slot slotModel.Slot) {
	notice := Notice{Kind: kind, Attendee: attendee, Slot: slot, At: timezone.Now()}
	detached := context.WithoutCancel(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	for i, channel := range d.channels {
		prev := d.tails[i]
		done := make(chan struct{})
		d.tails[i] = done

		d.wg.Add(1)

		go func() {
			defer d.wg.Done()
			defer close(done)

			if prev != nil {
				<-prev
			}

			d.deliver(detached, channel, notice)
		}()
	}
}

func (d *Dispatcher) deliver(ctx context.Context, channel Channel, notice Notice) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelNotifierScopeName, constant.OtelNotifierScopeName+"."+channel.Name())
	defer scope.End()

	scope.SetAttribute(constant.OtelSlotIDAttribute, notice.Slot.ID)
	scope.SetAttribute("notice.kind", string(notice.Kind))

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("channel", channel.Name()).Msg("Notifier channel panicked")
		}
	}()

	if err := channel.Deliver(ctx, notice); err != nil {
		scope.TraceError(err)

		log.Error().
			Err(err).
			Str("channel", channel.Name()).
			Str("kind", string(notice.Kind)).
			Str("slotId", notice.Slot.ID).
			Msg("Failed to deliver booking notice")
	}
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
