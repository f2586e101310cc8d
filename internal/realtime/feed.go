package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "changes:"

// RedisFeed fans committed change events out through Redis Pub/Sub so
// every API instance can serve realtime subscribers.
type RedisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) *RedisFeed {
	if client == nil {
		return nil
	}
	return &RedisFeed{client: client}
}

func (f *RedisFeed) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, channelPrefix+event.Table, payload).Err()
}

// Pump forwards feed events into the hub until the context ends.
func (f *RedisFeed) Pump(ctx context.Context, hub *Hub) {
	sub := f.client.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			hub.Broadcast(event)
		}
	}
}
