package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisBrokerRejectsBadURL(t *testing.T) {
	_, err := NewRedisBroker(Config{URL: "not-a-url"}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}

func TestPublishOpensBreakerAfterFailures(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	b := newBroker(client, zerolog.Nop())

	for i := 0; i < 5; i++ {
		err := b.Publish(context.Background(), "bookings.events", map[string]string{"type": "booking.created"})
		require.Error(t, err)
	}

	err := b.Publish(context.Background(), "bookings.events", map[string]string{"type": "booking.created"})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestPublishRejectsUnmarshalable(t *testing.T) {
	b := newBroker(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), zerolog.Nop())
	err := b.Publish(context.Background(), "bookings.events", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal message")
}
