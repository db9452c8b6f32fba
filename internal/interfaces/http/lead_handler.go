package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
	"github.com/monicajeon28/gmcruise-api/internal/application/lead"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// LeadHandler handles manual lead intake and pipeline advancement.
type LeadHandler struct {
	uc *lead.UseCase
}

// NewLeadHandler builds the handler.
func NewLeadHandler(uc *lead.UseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// Create registers a lead from the back office. The phone is normalized and
// deduplicated; a duplicate gets 409.
// POST /api/leads
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Advance moves a lead along the pipeline. Illegal transitions get 409.
// POST /api/leads/:id/advance
func (h *LeadHandler) Advance(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	var in dto.AdvanceLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Advance(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID returns the lead.
// GET /api/leads/:id
func (h *LeadHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List returns leads, optionally filtered by ?status=.
// GET /api/leads
func (h *LeadHandler) List(c *fiber.Ctx) error {
	status := entity.LeadStatus(c.Query("status"))
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.List(c.Context(), status, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
