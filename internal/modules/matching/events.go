// README: Match event publishing. Every successful driver_accept is
// published so an out-of-process consumer (notifications, analytics) can
// observe matches without the engine itself persisting any match state.
package matching

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const eventsChannel = "matching:events"

// eventPublisher is the interface Engine depends on for outbound match
// notifications.
type eventPublisher interface {
	Publish(MatchEvent)
}

type noopPublisher struct{}

func (noopPublisher) Publish(MatchEvent) {}

// RedisPublisher publishes MatchEvents on a Redis pub/sub channel.
// Publish failures are swallowed: event delivery is best-effort and never
// fails a driver_accept call. Each publish runs synchronously with a 200ms
// timeout, so a slow Redis can delay driver_accept by up to that long.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher wraps an existing Redis client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

type wireEvent struct {
	DriverID  string    `json:"driver_id"`
	RiderID   string    `json:"rider_id"`
	MatchedAt time.Time `json:"matched_at"`
}

func (p *RedisPublisher) Publish(evt MatchEvent) {
	payload, err := json.Marshal(wireEvent{
		DriverID:  evt.DriverID.String(),
		RiderID:   evt.RiderID.String(),
		MatchedAt: evt.MatchedAt,
	})
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = p.client.Publish(ctx, eventsChannel, payload).Err()
}
