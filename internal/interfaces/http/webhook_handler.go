package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monicajeon28/gmcruise-api/internal/application/commerce"
	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
)

// WebhookHandler receives payment-gateway callbacks. Public endpoint; the
// gateway does not carry our JWTs. Deliveries are deduplicated on order code,
// so retries are safe.
type WebhookHandler struct {
	uc *commerce.WebhookUseCase
}

// NewWebhookHandler builds the handler.
func NewWebhookHandler(uc *commerce.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

// PaymentConfirmed registers a gateway-confirmed purchase: upserts the lead
// and creates the PENDING sale. Replays return 200 with created=false.
// POST /api/webhooks/payment-confirmed
func (h *WebhookHandler) PaymentConfirmed(c *fiber.Ctx) error {
	var in dto.PaymentWebhookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.HandlePaymentConfirmed(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	if out.Created {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}
