// Package notifications publishes blog lifecycle events to Redis.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"blogicum/internal/middleware"
	"blogicum/internal/observability"

	"github.com/redis/go-redis/v9"
)

// EventsChannel is the pub/sub channel every blog event goes to.
const EventsChannel = "blog:events"

const (
	PostCreated    = "post_created"
	PostUpdated    = "post_updated"
	PostDeleted    = "post_deleted"
	CommentCreated = "comment_created"
	CommentUpdated = "comment_updated"
	CommentDeleted = "comment_deleted"
)

// Event describes one successful mutation.
type Event struct {
	Type       string    `json:"type"`
	PostID     uint      `json:"post_id"`
	CommentID  uint      `json:"comment_id,omitempty"`
	ActorID    uint      `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier publishes events into Redis. A nil client turns it into a no-op.
type Notifier struct {
	rdb *redis.Client
	now func() time.Time
}

// NewNotifier creates a Notifier using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb, now: time.Now}
}

// Publish sends ev to EventsChannel, stamping OccurredAt when unset.
func (n *Notifier) Publish(ctx context.Context, ev Event) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = n.now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := n.rdb.Publish(ctx, EventsChannel, payload).Err(); err != nil {
		observability.EventsPublished.WithLabelValues(ev.Type, "error").Inc()
		return err
	}
	observability.EventsPublished.WithLabelValues(ev.Type, "ok").Inc()
	return nil
}

// PublishAsync publishes without blocking the caller. Failures are logged.
func (n *Notifier) PublishAsync(ctx context.Context, ev Event) {
	if n == nil || n.rdb == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := n.Publish(ctx, ev); err != nil {
			middleware.Logger.WarnContext(ctx, "event publish failed",
				slog.String("event", ev.Type),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Subscribe delivers decoded events to onEvent until ctx is done. Undecodable
// payloads are skipped.
func (n *Notifier) Subscribe(ctx context.Context, onEvent func(Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, EventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", EventsChannel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					middleware.Logger.Warn("skipping malformed event", slog.String("error", err.Error()))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in event subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())),
							)
						}
					}()
					onEvent(ev)
				}()
			}
		}
	}()

	return nil
}
