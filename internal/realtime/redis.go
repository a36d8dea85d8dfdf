package realtime

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis publishes events on a pub/sub channel.
type Redis struct {
	client  *redis.Client
	channel string
}

func NewRedis(client *redis.Client, channel string) *Redis {
	return &Redis{client: client, channel: channel}
}

func (r *Redis) Broadcast(ctx context.Context, event string, payload any) error {
	msg, err := encode(r.channel, event, payload)
	if err != nil {
		return fmt.Errorf("broadcast encode: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, msg).Err(); err != nil {
		return fmt.Errorf("broadcast: %w", err)
	}
	return nil
}
