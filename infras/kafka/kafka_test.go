package kafka_test

import (
	"bilateral/config"
	"bilateral/infras/kafka"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:     "slot-1",
		Value:   map[string]string{"type": "booking.booked"},
		Headers: map[string]string{"event-type": "booking.booked"},
	}

	out, err := msg.ToKafkaMessage("booking-events")
	require.NoError(t, err)

	assert.Equal(t, "booking-events", out.Topic)
	assert.Equal(t, []byte("slot-1"), out.Key)
	assert.JSONEq(t, `{"type":"booking.booked"}`, string(out.Value))
	require.Len(t, out.Headers, 1)
	assert.Equal(t, "event-type", out.Headers[0].Key)
	assert.Equal(t, []byte("booking.booked"), out.Headers[0].Value)
}

func TestMessage_ToKafkaMessageRejectsUnencodable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage("booking-events")
	assert.Error(t, err)
}

func TestNewWithoutBrokersIsDisabled(t *testing.T) {
	client := kafka.New(&config.Config{})

	assert.False(t, client.Enabled())
	assert.ErrorIs(t, client.SendMessages(context.Background(), "booking-events", kafka.Message{Key: "k"}), kafka.ErrNoBrokers)
	assert.NoError(t, client.Close())
}
