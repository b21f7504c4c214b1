package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/export"
	"github.com/spec-kit/issue-tracker/internal/service"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// IssuesHandler manages issue endpoints.
type IssuesHandler struct {
	service *service.IssueService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issueService *service.IssueService) *IssuesHandler {
	return &IssuesHandler{service: issueService}
}

// List handles GET /api/issues.
func (h *IssuesHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token, authorization denied.")
	}

	issues, err := h.service.List(c.Context(), actor)
	if err != nil {
		return err
	}

	items := make([]dto.IssueResponse, 0, len(issues))
	for i := range issues {
		items = append(items, dto.IssueView(&issues[i]))
	}
	return c.JSON(items)
}

// Get handles GET /api/issues/:id.
func (h *IssuesHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token, authorization denied.")
	}

	issue, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.IssueView(issue))
}

// Create handles POST /api/issues.
func (h *IssuesHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token, authorization denied.")
	}

	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	issue, err := h.service.Create(c.Context(), actor, service.IssueCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Department:  req.Department,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.IssueView(issue))
}

// Update handles PUT /api/issues/:id.
func (h *IssuesHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token, authorization denied.")
	}

	var req dto.UpdateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	issue, err := h.service.Update(c.Context(), actor, c.Params("id"), req.Fields())
	if err != nil {
		return err
	}
	return c.JSON(dto.IssueView(issue))
}

// Delete handles DELETE /api/issues/:id.
func (h *IssuesHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token, authorization denied.")
	}

	if err := h.service.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Issue deleted"})
}

// Export handles GET /api/issues/admin/export/issues.
func (h *IssuesHandler) Export(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token, authorization denied.")
	}

	data, err := h.service.ExportCSV(c.Context(), actor)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename+`"`)
	return c.Send(data)
}
