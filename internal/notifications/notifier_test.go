package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_NilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.Publish(context.Background(), Event{Type: PostCreated, PostID: 1}))
	assert.NoError(t, n.Subscribe(context.Background(), func(Event) {}))
	n.PublishAsync(context.Background(), Event{Type: PostCreated})

	var none *Notifier
	assert.NoError(t, none.Publish(context.Background(), Event{}))
}

func TestNotifier_PublishAndSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	n := NewNotifier(rdb)
	n.now = func() time.Time { return time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 4)
	require.NoError(t, n.Subscribe(ctx, func(ev Event) { events <- ev }))

	mr.Publish(EventsChannel, "not json")
	require.NoError(t, n.Publish(ctx, Event{Type: CommentCreated, PostID: 3, CommentID: 9, ActorID: 2}))

	select {
	case ev := <-events:
		assert.Equal(t, CommentCreated, ev.Type)
		assert.Equal(t, uint(3), ev.PostID)
		assert.Equal(t, uint(9), ev.CommentID)
		assert.Equal(t, uint(2), ev.ActorID)
		assert.Equal(t, 2026, ev.OccurredAt.Year())
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestNotifier_PublishAsync(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 1)
	require.NoError(t, n.Subscribe(ctx, func(ev Event) { events <- ev }))

	reqCtx, reqCancel := context.WithCancel(context.Background())
	n.PublishAsync(reqCtx, Event{Type: PostDeleted, PostID: 5})
	reqCancel()

	select {
	case ev := <-events:
		assert.Equal(t, PostDeleted, ev.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("async event not delivered")
	}
}
