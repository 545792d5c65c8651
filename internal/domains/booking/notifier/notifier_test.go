package notifier_test

import (
	"bilateral/config"
	"bilateral/infras/kafka"
	kafkaMocks "bilateral/infras/kafka/mocks"
	"bilateral/infras/mail"
	mailMocks "bilateral/infras/mail/mocks"
	"bilateral/infras/otel/mocks"
	"bilateral/internal/domains/booking/model"
	"bilateral/internal/domains/booking/notifier"
	notifierMocks "bilateral/internal/domains/booking/notifier/mocks"
	slotModel "bilateral/internal/domains/slot/model"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleSlot() slotModel.Slot {
	return slotModel.Slot{
		ID:        "slot-1",
		Date:      time.Date(2025, time.January, 26, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00",
		EndTime:   "15:00",
	}
}

func sampleAttendee() model.Attendee {
	return model.Attendee{Name: "Ana", Email: "ana@x.com", Country: "Chile"}
}

func mailConfig() *config.Config {
	cfg := &config.Config{}
	cfg.External.Mail.OrganizerEmail = "organizer@eu.delegation"
	cfg.External.Mail.EventTitle = "Trade Committee Bilateral"
	cfg.Kafka.BookingTopic = "booking-events"

	return cfg
}

func TestEmailChannel_Render(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	channel := notifier.NewEmailChannel(mailConfig(), mailMocks.NewMockMailer(ctrl))

	tests := []struct {
		name        string
		kind        notifier.Kind
		subject     string
		htmlContain string
	}{
		{
			name:        "booked",
			kind:        notifier.Booked,
			subject:     "New Booking: EU-Chile Meeting - Sunday, January 26, 2025",
			htmlContain: "New Meeting Booked",
		},
		{
			name:        "cancelled",
			kind:        notifier.Cancelled,
			subject:     "Booking Cancelled: EU-Chile Meeting - Sunday, January 26, 2025",
			htmlContain: "Now Available for Booking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := channel.Render(notifier.Notice{Kind: tt.kind, Attendee: sampleAttendee(), Slot: sampleSlot()})
			require.NoError(t, err)

			assert.Equal(t, tt.subject, envelope.Subject)
			assert.Equal(t, "organizer@eu.delegation", envelope.ToEmail)
			assert.Contains(t, envelope.HTML, tt.htmlContain)
			assert.Contains(t, envelope.HTML, "Trade Committee Bilateral")
			assert.Contains(t, envelope.HTML, "2:00 PM")
			assert.Contains(t, envelope.HTML, "3:00 PM")
			assert.Contains(t, envelope.Text, "Time: 2:00 PM - 3:00 PM")
			assert.Contains(t, envelope.Text, "Email: ana@x.com")
		})
	}
}

func TestEmailChannel_RenderEscapesAttendee(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	channel := notifier.NewEmailChannel(mailConfig(), mailMocks.NewMockMailer(ctrl))

	attendee := sampleAttendee()
	attendee.Name = "<script>alert(1)</script>"

	envelope, err := channel.Render(notifier.Notice{Kind: notifier.Booked, Attendee: attendee, Slot: sampleSlot()})
	require.NoError(t, err)

	assert.False(t, strings.Contains(envelope.HTML, "<script>"))
}

func TestEmailChannel_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notice := notifier.Notice{Kind: notifier.Booked, Attendee: sampleAttendee(), Slot: sampleSlot()}

	t.Run("not configured without organizer", func(t *testing.T) {
		mailer := mailMocks.NewMockMailer(ctrl)
		mailer.EXPECT().Configured().Return(true).AnyTimes()

		channel := notifier.NewEmailChannel(&config.Config{}, mailer)

		_, err := channel.Send(context.Background(), notice)
		assert.ErrorIs(t, err, notifier.ErrEmailNotConfigured)
	})

	t.Run("not configured without api key", func(t *testing.T) {
		mailer := mailMocks.NewMockMailer(ctrl)
		mailer.EXPECT().Configured().Return(false).AnyTimes()

		channel := notifier.NewEmailChannel(mailConfig(), mailer)

		assert.False(t, channel.Configured())
		assert.ErrorIs(t, channel.Deliver(context.Background(), notice), notifier.ErrEmailNotConfigured)
	})

	t.Run("sends to organizer", func(t *testing.T) {
		mailer := mailMocks.NewMockMailer(ctrl)
		mailer.EXPECT().Configured().Return(true).AnyTimes()
		mailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, envelope mail.Envelope) (mail.Receipt, error) {
				assert.Equal(t, "organizer@eu.delegation", envelope.ToEmail)

				return mail.Receipt{StatusCode: 202, MessageID: "m-1"}, nil
			})

		channel := notifier.NewEmailChannel(mailConfig(), mailer)

		receipt, err := channel.Send(context.Background(), notice)
		require.NoError(t, err)
		assert.Equal(t, "m-1", receipt.MessageID)
	})

	t.Run("provider failure", func(t *testing.T) {
		mailer := mailMocks.NewMockMailer(ctrl)
		mailer.EXPECT().Configured().Return(true).AnyTimes()
		mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(mail.Receipt{StatusCode: 400}, mail.ErrRejected)

		channel := notifier.NewEmailChannel(mailConfig(), mailer)

		_, err := channel.Send(context.Background(), notice)
		assert.ErrorIs(t, err, mail.ErrRejected)
	})
}

var noticeAt = time.Date(2025, time.January, 20, 9, 30, 0, 0, time.UTC)

func TestEventChannel_Deliver(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)
	client.EXPECT().
		SendMessages(gomock.Any(), "booking-events", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			require.Len(t, messages, 1)
			assert.Equal(t, "slot-1", messages[0].Key)
			assert.Equal(t, "booking.cancelled", messages[0].Headers["event-type"])

			event, ok := messages[0].Value.(notifier.Event)
			require.True(t, ok)
			assert.Equal(t, "2025-01-26", event.Date)
			assert.Equal(t, "Chile", event.Country)
			assert.Equal(t, noticeAt, event.OccurredAt)

			return nil
		})

	channel := notifier.NewEventChannel(mailConfig(), client)

	err := channel.Deliver(context.Background(), notifier.Notice{
		Kind: notifier.Cancelled, Attendee: sampleAttendee(), Slot: sampleSlot(), At: noticeAt,
	})
	assert.NoError(t, err)
}

func TestEventChannel_DeliverFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)
	client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(kafka.ErrNoBrokers)

	channel := notifier.NewEventChannel(mailConfig(), client)

	err := channel.Deliver(context.Background(), notifier.Notice{Kind: notifier.Booked, Slot: sampleSlot()})
	assert.ErrorIs(t, err, kafka.ErrNoBrokers)
}

func TestDispatcher_FailuresAreSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := notifierMocks.NewMockChannel(ctrl)
	failing.EXPECT().Name().Return("failing").AnyTimes()
	failing.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

	var delivered atomic.Int32

	working := notifierMocks.NewMockChannel(ctrl)
	working.EXPECT().Name().Return("working").AnyTimes()
	working.EXPECT().
		Deliver(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, notice notifier.Notice) error {
			assert.Equal(t, notifier.Booked, notice.Kind)
			delivered.Add(1)

			return nil
		})

	tracer := mocks.NewRecorder()
	dispatcher := notifier.NewDispatcher(tracer, failing, working)

	ctx, cancel := context.WithCancel(context.Background())
	dispatcher.Notify(ctx, notifier.Booked, sampleAttendee(), sampleSlot())
	cancel()

	dispatcher.Wait()

	assert.Equal(t, int32(1), delivered.Load())
	assert.ElementsMatch(t, []string{"notifier.failing", "notifier.working"}, tracer.Spans())

	require.Len(t, tracer.Errors(), 1)
	assert.EqualError(t, tracer.Errors()[0], "smtp down")
}

func TestDispatcher_DetachesFromRequestContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	channel := notifierMocks.NewMockChannel(ctrl)
	channel.EXPECT().Name().Return("ctx").AnyTimes()
	channel.EXPECT().
		Deliver(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ notifier.Notice) error {
			assert.NoError(t, ctx.Err())

			return nil
		})

	dispatcher := notifier.NewDispatcher(mocks.NewOtel(), channel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dispatcher.Notify(ctx, notifier.Cancelled, sampleAttendee(), sampleSlot())
	dispatcher.Wait()
}

// recordingChannel holds back booked notices until release is closed.
type recordingChannel struct {
	release chan struct{}
	mu      sync.Mutex
	kinds   []notifier.Kind
}

func (c *recordingChannel) Name() string { return "recording" }

func (c *recordingChannel) Deliver(_ context.Context, notice notifier.Notice) error {
	if notice.Kind == notifier.Booked {
		<-c.release
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.kinds = append(c.kinds, notice.Kind)

	return nil
}

func (c *recordingChannel) recorded() []notifier.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]notifier.Kind(nil), c.kinds...)
}

func TestDispatcher_KeepsNotifyOrderPerChannel(t *testing.T) {
	channel := &recordingChannel{release: make(chan struct{})}
	dispatcher := notifier.NewDispatcher(mocks.NewOtel(), channel)

	dispatcher.Notify(context.Background(), notifier.Booked, sampleAttendee(), sampleSlot())
	dispatcher.Notify(context.Background(), notifier.Cancelled, sampleAttendee(), sampleSlot())

	assert.Never(t, func() bool { return len(channel.recorded()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	close(channel.release)
	dispatcher.Wait()

	assert.Equal(t, []notifier.Kind{notifier.Booked, notifier.Cancelled}, channel.recorded())
}

func TestDispatcher_StampsNotices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	before := time.Now()

	channel := notifierMocks.NewMockChannel(ctrl)
	channel.EXPECT().Name().Return("stamp").AnyTimes()
	channel.EXPECT().
		Deliver(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, notice notifier.Notice) error {
			assert.False(t, notice.At.Before(before))

			return nil
		})

	dispatcher := notifier.NewDispatcher(mocks.NewOtel(), channel)
	dispatcher.Notify(context.Background(), notifier.Booked, sampleAttendee(), sampleSlot())
	dispatcher.Wait()
}

func TestNew_WithoutCollaborators(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mailer := mailMocks.NewMockMailer(ctrl)
	mailer.EXPECT().Configured().Return(false).AnyTimes()

	client := kafkaMocks.NewMockClient(ctrl)
	client.EXPECT().Enabled().Return(false)

	n := notifier.New(&config.Config{}, mailer, client, mocks.NewOtel())

	n.Notify(context.Background(), notifier.Booked, sampleAttendee(), sampleSlot())
	n.Wait()
}
