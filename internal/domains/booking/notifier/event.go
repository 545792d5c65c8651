package notifier

import (
	"bilateral/config"
	"bilateral/infras/kafka"
	"bilateral/shared/timezone"
	"context"
	"fmt"
	"time"
)

const headerEventType = "event-type"

// Event is the JSON document published for every booking state change.
type Event struct {
	Type       string    `json:"type"`
	SlotID     string    `json:"slot_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Country    string    `json:"country,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func EventType(kind Kind) string {
	return "booking." + string(kind)
}

type eventChannel struct {
	client kafka.Client
	topic  string
}

// NewEventChannel publishes notices keyed by slot id. The dispatcher hands notices over in
// Notify order, so events for one slot land on their partition in that order.
func NewEventChannel(cfg *config.Config, client kafka.Client) Channel {
	return &eventChannel{
		client: client,
		topic:  cfg.Kafka.BookingTopic,
	}
}

func (c *eventChannel) Name() string {
	return "kafka"
}

func (c *eventChannel) Deliver(ctx context.Context, notice Notice) error {
	event := Event{
		Type:       EventType(notice.Kind),
		SlotID:     notice.Slot.ID,
		Date:       notice.Slot.DateString(),
		StartTime:  notice.Slot.StartTime,
		EndTime:    notice.Slot.EndTime,
		Name:       notice.Attendee.Name,
		Email:      notice.Attendee.Email,
		Country:    notice.Attendee.Country,
		OccurredAt: notice.At,
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = timezone.Now()
	}

	err := c.client.SendMessages(ctx, c.topic, kafka.Message{
		Key:     notice.Slot.ID,
		Value:   event,
		Headers: map[string]string{headerEventType: event.Type},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	return nil
}
