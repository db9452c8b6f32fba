package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
	"github.com/monicajeon28/gmcruise-api/internal/application/partner"
)

// PartnerHandler handles contract approval, profiles and referral links.
type PartnerHandler struct {
	uc *partner.UseCase
}

// NewPartnerHandler builds the handler.
func NewPartnerHandler(uc *partner.UseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// ApproveContract creates the partner's user account and affiliate profile in
// one transaction (back-office contract approval).
// POST /api/partners/contracts
func (h *PartnerHandler) ApproveContract(c *fiber.Ctx) error {
	var in dto.ApproveContractRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Email == "" || in.Password == "" || in.ProfileType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password and profileType are required"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password must be at least 8 characters"})
	}
	out, err := h.uc.ApproveContract(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetProfile returns an affiliate profile.
// GET /api/partners/profiles/:id
func (h *PartnerHandler) GetProfile(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	out, err := h.uc.GetProfile(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAgents returns the agents under a branch manager.
// GET /api/partners/profiles/:id/agents
func (h *PartnerHandler) ListAgents(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	out, err := h.uc.ListAgents(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListLinks returns the referral links attributed to a profile (either leg).
// GET /api/partners/profiles/:id/links
func (h *PartnerHandler) ListLinks(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	out, err := h.uc.ListLinks(c.Context(), id, c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GenerateLinks creates a batch of referral links. Large batches are inserted
// in chunks, each in its own transaction.
// POST /api/partners/links
func (h *PartnerHandler) GenerateLinks(c *fiber.Ctx) error {
	var in dto.GenerateLinksRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.GenerateLinks(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// TrackClick bumps a link's click counter. Public: click tracking happens
// before any login.
// POST /api/links/:code/click
func (h *PartnerHandler) TrackClick(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code required"})
	}
	if err := h.uc.TrackClick(c.Context(), code); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
