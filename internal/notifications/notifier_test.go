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

func TestNotifier_PublishUser_NilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishUser(context.Background(), 1, "test payload"))
	assert.NoError(t, n.PublishBroadcast(context.Background(), "test payload"))
	assert.NoError(t, n.StartPatternSubscriber(context.Background(), nil))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		userID   uint
		expected string
	}{
		{1, "notifications:user:1"},
		{100, "notifications:user:100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, UserChannel(tt.userID))
	}
}

func TestNotifier_PatternSubscriberRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type received struct {
		channel string
		payload string
	}
	got := make(chan received, 4)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(channel, payload string) {
		got <- received{channel, payload}
	}))

	assert.Eventually(t, func() bool {
		require.NoError(t, n.PublishUser(ctx, 9, "accepted"))
		select {
		case msg := <-got:
			return msg.channel == "notifications:user:9" && msg.payload == "accepted"
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestNotifier_SubscriberStopsOnCancel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())

	got := make(chan string, 4)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(_, payload string) {
		got <- payload
	}))

	cancel()
	time.Sleep(50 * time.Millisecond)

	_ = n.PublishUser(context.Background(), 9, "after cancel")
	select {
	case payload := <-got:
		t.Fatalf("expected no message after cancel, got %q", payload)
	case <-time.After(100 * time.Millisecond):
	}
}
