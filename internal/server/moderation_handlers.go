package server

import (
	"log/slog"
	"mime/multipart"
	"strconv"

	"investkoree/internal/models"

	"github.com/gofiber/fiber/v2"
)

type decisionRequest struct {
	PostID uint `json:"postId"`
	UserID uint `json:"userId"`
}

// AcceptPost handles POST /adminpost/accept: promotes a pending post into the
// published set. If the request carries fresh multipart files they are stored
// and re-attached to the published entity after the accept commits; a failure
// in that last step is reported in the response but does not undo the accept.
func (s *Server) AcceptPost(c *fiber.Ctx) error {
	ctx := c.Context()

	var req decisionRequest
	form, formErr := c.MultipartForm()
	if formErr == nil {
		req.PostID = uintFormValue(form, "postId")
		req.UserID = uintFormValue(form, "userId")
	} else if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("postId is required"))
	}

	founder, err := s.moderationService.Accept(ctx, req.PostID, req.UserID)
	if err != nil {
		return respondError(c, err)
	}

	// Re-run the upload gate against any files supplied with the decision.
	if form != nil {
		fileSet, gateErr := s.uploadService.Collect(form)
		if gateErr == nil && !fileSet.Empty() {
			stored, storeErr := s.uploadService.Store(ctx, fileSet)
			if storeErr == nil {
				storeErr = s.moderationService.AttachFiles(ctx, founder, stored)
			}
			if storeErr != nil {
				gateErr = storeErr
			}
		}
		if gateErr != nil {
			slog.WarnContext(ctx, "accepted post file re-attach failed",
				"post_id", founder.ID, "error", gateErr)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"post":    founder,
				"warning": "Post accepted, but attaching files failed: " + gateErr.Error(),
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(founder)
}

// DenyPost handles POST /adminpost/deny: destroys a pending post and notifies
// the submitter.
func (s *Server) DenyPost(c *fiber.Ctx) error {
	var req decisionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("postId is required"))
	}

	notification, err := s.moderationService.Deny(c.Context(), req.PostID, req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Post denied",
		"notification": notification,
	})
}

// ReconcilePosts handles POST /adminpost/reconcile: removes queue entries
// whose promotion committed but whose queue delete was interrupted.
func (s *Server) ReconcilePosts(c *fiber.Ctx) error {
	report, err := s.moderationService.Reconcile(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(report)
}

func uintFormValue(form *multipart.Form, key string) uint {
	v, err := strconv.ParseUint(formValue(form, key), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
