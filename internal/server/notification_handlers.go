package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /adminpost/notifications/:userId: the user's
// notifications newest first. Fetching also mirrors the list to the user's
// live sessions so every open tab shows the same state.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	list, err := s.notificationService.ListForUser(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// MarkNotificationsRead handles PUT /adminpost/notifications/read/:userId.
// Responds 404 when there was nothing unread, so clients can distinguish a
// no-op from a real state change.
func (s *Server) MarkNotificationsRead(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	list, err := s.notificationService.MarkAllRead(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(list)
}
