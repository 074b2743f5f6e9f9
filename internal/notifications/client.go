package notifications

import (
	"encoding/json"
	"log"
	"time"

	"investkoree/internal/observability"

	"github.com/gofiber/websocket/v2"
)

// Pump tuning. Notification sockets are nearly write-only: a browser sends a
// single join frame and then only answers pings, so inbound frames are tiny
// and the outbound queue short. A consumer that falls a full queue behind is
// told to re-fetch over HTTP rather than buffered without bound.
const (
	writeTimeout  = 5 * time.Second
	pongTimeout   = 75 * time.Second
	pingInterval  = pongTimeout * 2 / 3
	maxFrameSize  = 4096
	sendQueueSize = 64
)

// droppedNotice is queued in place of frames lost to backpressure so the
// client knows there is a gap and can reload its list.
var droppedNotice = []byte(`{"type":"notifications-dropped","payload":{"reason":"slow-consumer"}}`)

// WSHub is the subset of hub behavior a client needs.
type WSHub interface {
	UnregisterClient(c *Client)
	Name() string
}

// frame is the envelope exchanged over a notification socket.
type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client owns one websocket connection for one authenticated user.
type Client struct {
	Hub    WSHub
	Conn   *websocket.Conn
	UserID uint

	// Send is the outbound queue drained by WritePump.
	Send chan []byte
}

// NewClient wraps a connection for the given user.
func NewClient(hub WSHub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		UserID: userID,
		Send:   make(chan []byte, sendQueueSize),
	}
}

// ReadPump consumes inbound frames until the connection drops, refreshing the
// read deadline on every pong. Runs on the connection's own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.UnregisterClient(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxFrameSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket read error (user %d): %v", c.UserID, err)
			}
			return
		}
		c.handleFrame(raw)
	}
}

// handleFrame dispatches one inbound envelope. The subscription is pinned to
// the authenticated user, so "join" names no channel; the ack only tells the
// client its stream is live. Unknown types are ignored.
func (c *Client) handleFrame(raw []byte) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		log.Printf("websocket: malformed frame from user %d", c.UserID)
		return
	}
	if f.Type != "join" {
		return
	}

	payload, _ := json.Marshal(map[string]uint{"userId": c.UserID})
	ack, _ := json.Marshal(frame{Type: "joined", Payload: payload})
	c.TrySend(ack)
}

// WritePump drains the send queue onto the wire and keeps the connection
// alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend enqueues without blocking. When the queue is full the frame is
// dropped and a dropped-notice is queued best-effort so the client knows to
// re-fetch its notification list over HTTP.
func (c *Client) TrySend(msg []byte) {
	defer func() {
		if r := recover(); r != nil {
			observability.WebSocketBackpressureDrops.WithLabelValues(c.Hub.Name(), "closed").Inc()
		}
	}()

	select {
	case c.Send <- msg:
		return
	default:
	}

	observability.WebSocketBackpressureDrops.WithLabelValues(c.Hub.Name(), "full").Inc()
	log.Printf("websocket: user %d fell behind, dropping frame", c.UserID)

	select {
	case c.Send <- droppedNotice:
	default:
		// Queue still full with the notice pending; the reload hint is lost too.
	}
}
