package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
	"github.com/monicajeon28/gmcruise-api/internal/application/settlement"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// SettlementHandler handles monthly settlement summaries and approval.
type SettlementHandler struct {
	uc *settlement.UseCase
}

// NewSettlementHandler builds the handler.
func NewSettlementHandler(uc *settlement.UseCase) *SettlementHandler {
	return &SettlementHandler{uc: uc}
}

// Summary returns the per-beneficiary breakdown for a period. Admins see
// everyone; partners are restricted to their own rows.
// GET /api/settlements/:period/summary
func (h *SettlementHandler) Summary(c *fiber.Ctx) error {
	period, err := entity.ParsePeriod(c.Params("period"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period must be YYYY-MM"})
	}
	profileID := ""
	if GetRole(c) != entity.RoleAdmin {
		profileID = GetProfileID(c)
		if profileID == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no affiliate profile"})
		}
	}
	out, err := h.uc.Summarize(c.Context(), period, profileID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve closes the period: PENDING -> APPROVED with recomputed totals, and
// marks the period's entries settled. A second approval gets 409.
// POST /api/settlements/:period/approve
func (h *SettlementHandler) Approve(c *fiber.Ctx) error {
	period, err := entity.ParsePeriod(c.Params("period"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period must be YYYY-MM"})
	}
	out, err := h.uc.Approve(c.Context(), period, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Entries returns the individual ledger entries behind a period's summary.
// ?unsettled=true restricts to entries a future approval would pick up.
// GET /api/settlements/:period/entries
func (h *SettlementHandler) Entries(c *fiber.Ctx) error {
	period, err := entity.ParsePeriod(c.Params("period"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period must be YYYY-MM"})
	}
	out, err := h.uc.ListEntries(c.Context(), period, c.QueryBool("unsettled"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByPeriod returns the settlement row for a period.
// GET /api/settlements/:period
func (h *SettlementHandler) GetByPeriod(c *fiber.Ctx) error {
	period, err := entity.ParsePeriod(c.Params("period"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period must be YYYY-MM"})
	}
	out, err := h.uc.Get(c.Context(), period)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List returns settlements, newest period first.
// GET /api/settlements
func (h *SettlementHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 24)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
