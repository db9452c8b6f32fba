package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monicajeon28/gmcruise-api/internal/application/commerce"
	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// SaleHandler handles sale review: preview, confirm, reject, read.
type SaleHandler struct {
	uc *commerce.ConfirmSaleUseCase
}

// NewSaleHandler builds the handler.
func NewSaleHandler(uc *commerce.ConfirmSaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Preview returns the commission breakdown a confirmation would write,
// without persisting anything.
// GET /api/sales/:id/preview
func (h *SaleHandler) Preview(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	out, err := h.uc.Preview(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Confirm moves the sale PENDING -> CONFIRMED and writes its ledger entries.
// Exactly-once: a concurrent confirmation loses the status race and gets 409.
// POST /api/sales/:id/confirm
func (h *SaleHandler) Confirm(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	out, err := h.uc.Confirm(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject moves the sale PENDING -> REJECTED and voids any ledger entries.
// POST /api/sales/:id/reject
func (h *SaleHandler) Reject(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	if err := h.uc.Reject(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID returns the sale and its ledger entries.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	out, err := h.uc.GetSale(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List returns sales, optionally filtered by ?status=.
// GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	status := entity.SaleStatus(c.Query("status"))
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.ListSales(c.Context(), status, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
