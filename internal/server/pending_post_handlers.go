package server

import (
	"mime/multipart"

	"investkoree/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePendingPost handles POST /adminpost/pendingpost: a multipart
// submission of a funding proposal together with its supporting documents.
// Files pass the upload gate (size, type, count) before anything durable
// happens; the response is the stored queue entry.
func (s *Server) CreatePendingPost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Expected multipart form data"))
	}

	fileSet, err := s.uploadService.Collect(form)
	if err != nil {
		return respondError(c, err)
	}

	stored, err := s.uploadService.Store(ctx, fileSet)
	if err != nil {
		return respondError(c, err)
	}

	post := &models.PendingPost{
		BusinessName:             formValue(form, "businessName"),
		Email:                    formValue(form, "email"),
		Address:                  formValue(form, "address"),
		Phone:                    formValue(form, "phone"),
		BusinessCategory:         formValue(form, "businessCategory"),
		BusinessSector:           formValue(form, "businessSector"),
		InvestmentDuration:       formValue(form, "investmentDuration"),
		SecurityOption:           formValue(form, "securityOption"),
		OtherSecurityOption:      formValue(form, "otherSecurityOption"),
		DocumentationOption:      formValue(form, "documentationOption"),
		OtherDocumentationOption: formValue(form, "otherDocumentationOption"),
		Assets:                   formValue(form, "assets"),
		Revenue:                  formValue(form, "revenue"),
		FundingAmount:            formValue(form, "fundingAmount"),
		FundingHelp:              formValue(form, "fundingHelp"),
		ReturnPlan:               formValue(form, "returnPlan"),
		BusinessSafety:           formValue(form, "businessSafety"),
		AdditionalComments:       formValue(form, "additionalComments"),
		ProjectedROI:             formValue(form, "projectedROI"),
		MinInvestment:            formValue(form, "minInvestment"),
		BusinessPictures:         stored.BusinessPictures,
		NidFile:                  stored.NidFile,
		TinFile:                  stored.TinFile,
		TaxFile:                  stored.TaxFile,
		TradeLicenseFile:         stored.TradeLicenseFile,
		BankStatementFile:        stored.BankStatementFile,
		SecurityFile:             stored.SecurityFile,
		FinancialFile:            stored.FinancialFile,
		UserID:                   userID,
	}

	created, err := s.moderationService.SubmitPending(ctx, post)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(created)
}

// GetPendingPosts handles GET /adminpost/pending: the full moderation queue.
func (s *Server) GetPendingPosts(c *fiber.Ctx) error {
	posts, err := s.moderationService.ListPending(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPendingPost handles GET /adminpost/pending/:id.
func (s *Server) GetPendingPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	post, err := s.moderationService.GetPending(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}
