// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channel names for published events.
const (
	ChannelPollCreated = "societly.poll.created"
	ChannelPollClosed  = "societly.poll.closed"
)

// PollEvent is the payload published when a poll is created or closed.
type PollEvent struct {
	PollID    string    `json:"poll_id"`
	SocietyID string    `json:"society_id"`
	Title     string    `json:"title"`
	EndDate   time.Time `json:"end_date"`
}

// Dispatcher delivers poll lifecycle events to interested consumers.
// Implementations must be fire-and-forget: they never block the caller and
// delivery failure never fails the triggering operation.
type Dispatcher interface {
	PollCreated(event PollEvent)
	PollClosed(event PollEvent)
}

// Noop discards all events. Used when no redis address is configured and in
// tests.
type Noop struct{}

func (Noop) PollCreated(PollEvent) {}
func (Noop) PollClosed(PollEvent)  {}

// RedisDispatcher publishes events to redis pub/sub channels.
type RedisDispatcher struct {
	client *redis.Client
}

// NewRedisDispatcher connects to redis and verifies the connection.
func NewRedisDispatcher(ctx context.Context, addr string) (*RedisDispatcher, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,

		// Timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	slog.Info("connected to redis", "addr", addr)

	return &RedisDispatcher{client: client}, nil
}

func (d *RedisDispatcher) PollCreated(event PollEvent) {
	d.publish(ChannelPollCreated, event)
}

func (d *RedisDispatcher) PollClosed(event PollEvent) {
	d.publish(ChannelPollClosed, event)
}

// publish runs on a detached goroutine with its own deadline. A failed
// publish is logged and dropped; it must never surface to the caller.
func (d *RedisDispatcher) publish(channel string, event PollEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		payload, err := json.Marshal(event)
		if err != nil {
			slog.Error("failed to marshal poll event", "channel", channel, "error", err)
			return
		}

		if err := d.client.Publish(ctx, channel, payload).Err(); err != nil {
			slog.Warn("failed to publish poll event", "channel", channel, "poll_id", event.PollID, "error", err)
		}
	}()
}

// Close releases the redis connection.
func (d *RedisDispatcher) Close() error {
	return d.client.Close()
}
