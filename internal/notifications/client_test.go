package notifications

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_HandleFrame_JoinAck(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(7, nil)
	require.NoError(t, err)

	client.handleFrame([]byte(`{"type":"join"}`))

	select {
	case raw := <-client.Send:
		var ack struct {
			Type    string `json:"type"`
			Payload struct {
				UserID uint `json:"userId"`
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(raw, &ack))
		assert.Equal(t, "joined", ack.Type)
		assert.Equal(t, uint(7), ack.Payload.UserID)
	default:
		t.Fatal("expected a joined ack on the send queue")
	}
}

func TestClient_HandleFrame_IgnoresUnknownAndMalformed(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(8, nil)
	require.NoError(t, err)

	client.handleFrame([]byte(`{"type":"subscribe","payload":{"userId":999}}`))
	client.handleFrame([]byte(`not json`))

	assert.Empty(t, client.Send)
}

func TestClient_HandleFrame_JoinOnFullQueueDoesNotBlock(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(9, nil)
	require.NoError(t, err)

	for i := 0; i < cap(client.Send); i++ {
		client.Send <- []byte("fill")
	}

	// Ack is dropped like any other frame under backpressure.
	client.handleFrame([]byte(`{"type":"join"}`))
	assert.Len(t, client.Send, cap(client.Send))
}

func TestDroppedNoticeShape(t *testing.T) {
	var f frame
	require.NoError(t, json.Unmarshal(droppedNotice, &f))
	assert.Equal(t, "notifications-dropped", f.Type)
	assert.Contains(t, string(f.Payload), "slow-consumer")
}
