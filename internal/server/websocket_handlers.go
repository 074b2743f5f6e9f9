package server

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"investkoree/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const wsTicketTTL = 30 * time.Second

// IssueWSTicket handles POST /api/ws/ticket. Browsers cannot set an
// Authorization header on a WebSocket upgrade, so the client trades its JWT
// for a short-lived single-use ticket it passes as a query parameter.
func (s *Server) IssueWSTicket(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if s.redis == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(fmt.Errorf("ticket store unavailable")))
	}

	ticket := uuid.NewString()
	key := fmt.Sprintf("ws_ticket:%s", ticket)
	if err := s.redis.Set(c.Context(), key, strconv.FormatUint(uint64(userID), 10), wsTicketTTL).Err(); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"ticket":     ticket,
		"expires_in": int(wsTicketTTL.Seconds()),
	})
}

// WebsocketHandler returns a websocket handler that registers connections
// with the Hub. Authentication is handled by route middleware and userID is
// read from connection locals. The client's channel is its own user ID: a
// "join" frame is acknowledged but cannot subscribe to anyone else's channel.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}
		uid, ok := userIDVal.(uint)
		if !ok {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		// Register connection with scaling guardrails
		client, err := s.hub.Register(uid, conn)
		if err != nil {
			log.Printf("WebSocket Notification: Failed to register user %d: %v", uid, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		defer s.hub.UnregisterClient(client)

		// Start pumps; frame handling (join/ack) lives on the client.
		go client.WritePump()
		client.ReadPump()
	})
}
