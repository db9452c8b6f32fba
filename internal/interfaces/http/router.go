package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/monicajeon28/gmcruise-api/internal/application/auth"
	"github.com/monicajeon28/gmcruise-api/internal/application/commerce"
	"github.com/monicajeon28/gmcruise-api/internal/application/lead"
	"github.com/monicajeon28/gmcruise-api/internal/application/partner"
	"github.com/monicajeon28/gmcruise-api/internal/application/settlement"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	WebhookUC    *commerce.WebhookUseCase
	SaleUC       *commerce.ConfirmSaleUseCase
	SettlementUC *settlement.UseCase
	LeadUC       *lead.UseCase
	PartnerUC    *partner.UseCase
	JWTSecret    string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Payment gateway callbacks (public; deduplicated on order code)
	webhookHandler := NewWebhookHandler(deps.WebhookUC)
	api.Post("/webhooks/payment-confirmed", webhookHandler.PaymentConfirmed)

	// Click tracking (public)
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	api.Post("/links/:code/click", partnerHandler.TrackClick)

	// Protected routes (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Sales review (admin)
	sales := protected.Group("/sales", adminOnly)
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/preview", saleHandler.Preview)
	sales.Post("/:id/confirm", saleHandler.Confirm)
	sales.Post("/:id/reject", saleHandler.Reject)

	// Settlements (summary visible to partners, approval admin-only)
	settlements := protected.Group("/settlements")
	settlementHandler := NewSettlementHandler(deps.SettlementUC)
	settlements.Get("/", adminOnly, settlementHandler.List)
	settlements.Get("/:period", adminOnly, settlementHandler.GetByPeriod)
	settlements.Get("/:period/summary", settlementHandler.Summary)
	settlements.Get("/:period/entries", adminOnly, settlementHandler.Entries)
	settlements.Post("/:period/approve", adminOnly, settlementHandler.Approve)

	// Leads (back office and partners)
	leads := protected.Group("/leads")
	leadHandler := NewLeadHandler(deps.LeadUC)
	leads.Post("/", leadHandler.Create)
	leads.Get("/", leadHandler.List)
	leads.Get("/:id", leadHandler.GetByID)
	leads.Post("/:id/advance", leadHandler.Advance)

	// Partner network (admin for contracts, any partner for links)
	partners := protected.Group("/partners")
	partners.Post("/contracts", adminOnly, partnerHandler.ApproveContract)
	partners.Get("/profiles/:id", partnerHandler.GetProfile)
	partners.Get("/profiles/:id/agents", partnerHandler.ListAgents)
	partners.Get("/profiles/:id/links", partnerHandler.ListLinks)
	partners.Post("/links", partnerHandler.GenerateLinks)
}
