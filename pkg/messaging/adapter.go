package messaging

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Consume subscribes to channel and feeds every message to handler until
// ctx is cancelled or the subscription closes. Handler errors are logged
// and processing continues.
func Consume(ctx context.Context, broker Broker, channel string, handler Handler) error {
	msgChan, err := broker.Subscribe(ctx, channel)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgChan:
			if !ok {
				return nil
			}
			if err := handler(ctx, msg); err != nil {
				log.Error().Err(err).Str("channel", channel).Msg("Failed to handle message")
			}
		}
	}
}
