package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetLatestPosts handles GET /founderpost/latestposts: all published posts,
// newest first. Served through the cache since this backs the landing page.
func (s *Server) GetLatestPosts(c *fiber.Ctx) error {
	posts, err := s.founderPostService.Latest(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetProjectDetail handles GET /founderpost/projectdetail/:id.
func (s *Server) GetProjectDetail(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	post, err := s.founderPostService.ProjectDetail(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetMyPosts handles GET /api/userposts: the authenticated founder's own
// published posts.
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	posts, err := s.founderPostService.ListByUser(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}
