// Package push delivers best-effort real-time notifications to connected
// listeners over Redis pub/sub. The durable notification record is the source
// of truth; anything published here is an optimization for clients that are
// online at the moment of dispatch.
package push

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// UserTopic returns the pub/sub topic for a single user.
func UserTopic(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// TeamTopic returns the pub/sub topic for a whole team.
func TeamTopic(teamID int64) string {
	return fmt.Sprintf("team:%d", teamID)
}

// Redis is a pub/sub backed push channel.
type Redis struct {
	client *redis.Client
}

func NewRedis(addr string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Publish sends a message to all current subscribers of the topic.
// Fire-and-forget: there is no delivery guarantee for offline listeners.
func (r *Redis) Publish(ctx context.Context, topic, message string) error {
	if err := r.client.Publish(ctx, topic, message).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe opens a subscription on the topic. The caller must Close it.
func (r *Redis) Subscribe(ctx context.Context, topic string) *redis.PubSub {
	return r.client.Subscribe(ctx, topic)
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
