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

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(7, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(7, nil)
	require.NoError(t, err)
	other, err := hub.Register(8, nil)
	require.NoError(t, err)

	hub.Broadcast(7, `{"type":"notification"}`)

	assert.Equal(t, `{"type":"notification"}`, string(<-clientA.Send))
	assert.Equal(t, `{"type":"notification"}`, string(<-clientB.Send))
	assert.Empty(t, other.Send)

	assert.True(t, hub.IsOnline(7))
	hub.UnregisterClient(clientA)
	assert.True(t, hub.IsOnline(7))
	hub.UnregisterClient(clientB)
	assert.False(t, hub.IsOnline(7))
}

func TestHub_BroadcastToOfflineUserIsDropped(t *testing.T) {
	hub := NewHub()
	// No connections joined: the push is simply dropped.
	hub.Broadcast(42, "lost in the void")
	assert.False(t, hub.IsOnline(42))
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(1, nil)
		require.NoError(t, err)
	}
	_, err := hub.Register(1, nil)
	assert.Error(t, err)

	// A different user is unaffected.
	_, err = hub.Register(2, nil)
	assert.NoError(t, err)
}

func TestHub_UnregisterUnknownClientIsSafe(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, 99)
	hub.UnregisterClient(client) // never registered
	assert.False(t, hub.IsOnline(99))
}

func TestHub_StartWiringForwardsUserChannel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	notifier := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, notifier))

	client, err := hub.Register(12, nil)
	require.NoError(t, err)

	// Give the pattern subscriber a moment to attach.
	assert.Eventually(t, func() bool {
		require.NoError(t, notifier.PublishUser(ctx, 12, "hello"))
		select {
		case msg := <-client.Send:
			return string(msg) == "hello"
		default:
			return false
		}
	}, testEventuallyTimeout, testPollInterval)
}

func TestTrySend_FullBufferDropsAndCounts(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(3, nil)
	require.NoError(t, err)

	for i := 0; i < cap(client.Send); i++ {
		client.Send <- []byte("fill")
	}

	// Buffer is full: message is dropped, no panic, no block.
	done := make(chan struct{})
	go func() {
		client.TrySend([]byte("overflow"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(testEventuallyTimeout):
		t.Fatal("TrySend blocked on full buffer")
	}
}

func TestHub_ShutdownClearsConnections(t *testing.T) {
	hub := NewHub()
	_, err := hub.Register(5, nil)
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))
	assert.False(t, hub.IsOnline(5))
}
