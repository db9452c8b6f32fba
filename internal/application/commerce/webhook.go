package commerce

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
	"github.com/monicajeon28/gmcruise-api/pkg/metrics"
	"github.com/monicajeon28/gmcruise-api/pkg/phone"
)

// WebhookUseCase handles payment-confirmation deliveries from the gateway.
// Deliveries are idempotent on the external order code: a replay returns the
// existing sale and never inserts a second row. The lead is created or
// backfilled by normalized phone in the same transaction as the sale.
type WebhookUseCase struct {
	txRunner    TxRunner
	saleRepo    repository.SaleRepository
	leadRepo    repository.LeadRepository
	linkRepo    repository.LinkRepository
	profileRepo repository.ProfileRepository
}

// NewWebhookUseCase builds the use case.
func NewWebhookUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	leadRepo repository.LeadRepository,
	linkRepo repository.LinkRepository,
	profileRepo repository.ProfileRepository,
) *WebhookUseCase {
	return &WebhookUseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		leadRepo:    leadRepo,
		linkRepo:    linkRepo,
		profileRepo: profileRepo,
	}
}

// HandlePaymentConfirmed processes one webhook delivery.
func (uc *WebhookUseCase) HandlePaymentConfirmed(ctx context.Context, in dto.PaymentWebhookRequest) (*dto.PaymentWebhookResponse, error) {
	if in.OrderCode == "" || in.SaleAmount < 0 || in.CostAmount < 0 || in.CostAmount > in.SaleAmount {
		metrics.WebhookDeliveries.WithLabelValues("error").Inc()
		return nil, domain.ErrInvalidInput
	}

	// Replay check before any write.
	existing, err := uc.saleRepo.GetByOrderCode(ctx, in.OrderCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.WebhookDeliveries.WithLabelValues("replay").Inc()
		return &dto.PaymentWebhookResponse{SaleID: existing.ID, LeadID: existing.LeadID, Created: false}, nil
	}

	// Attribution from the referral link, read-only, outside the tx.
	var managerID, agentID, linkID string
	if in.LinkCode != "" {
		link, err := uc.linkRepo.GetByCode(ctx, in.LinkCode)
		if err != nil {
			return nil, err
		}
		if link != nil {
			linkID = link.ID
			managerID = link.ManagerProfileID
			agentID = link.AgentProfileID
		}
	}

	normalized := phone.Normalize(in.CustomerPhone)
	now := time.Now()
	provenance := entity.Provenance{
		Source:        entity.ProvenanceWebhookImport,
		ExternalTxnID: in.TransactionID,
	}

	var saleID, leadID string
	created := false
	err = uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.LedgerRepository,
		leadRepo repository.LeadRepository,
	) error {
		// Gateways send whatever the customer typed; only a valid number
		// becomes a lead dedup key. The sale still records fine without one.
		if phone.Valid(normalized) {
			id, err := uc.upsertLead(ctx, leadRepo, normalized, in.CustomerName, managerID, agentID, linkID, provenance, now)
			if err != nil {
				return err
			}
			leadID = id
		}

		sale := &entity.Sale{
			ID:               uuid.New().String(),
			OrderCode:        in.OrderCode,
			ProductCode:      in.ProductCode,
			SaleAmount:       in.SaleAmount,
			CostAmount:       in.CostAmount,
			Headcount:        in.Headcount,
			Status:           entity.SaleStatusPending,
			ManagerProfileID: managerID,
			AgentProfileID:   agentID,
			LeadID:           leadID,
			Provenance:       provenance,
			SaleDate:         now,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		saleID = sale.ID
		created = true
		return nil
	})
	if err != nil {
		// Two deliveries raced past the replay check; the unique constraint on
		// order_code caught the loser. Treat it as a replay.
		if errors.Is(err, domain.ErrDuplicate) {
			if existing, lookupErr := uc.saleRepo.GetByOrderCode(ctx, in.OrderCode); lookupErr == nil && existing != nil {
				metrics.WebhookDeliveries.WithLabelValues("replay").Inc()
				return &dto.PaymentWebhookResponse{SaleID: existing.ID, LeadID: existing.LeadID, Created: false}, nil
			}
		}
		metrics.WebhookDeliveries.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.WebhookDeliveries.WithLabelValues("created").Inc()
	return &dto.PaymentWebhookResponse{SaleID: saleID, LeadID: leadID, Created: created}, nil
}

// upsertLead finds the lead by normalized phone, backfills attribution and
// advances it to PURCHASED; creates it when none exists. Leads already in a
// terminal state keep their status (nothing to advance).
func (uc *WebhookUseCase) upsertLead(
	ctx context.Context,
	leadRepo repository.LeadRepository,
	normalizedPhone, name, managerID, agentID, linkID string,
	provenance entity.Provenance,
	now time.Time,
) (string, error) {
	lead, err := leadRepo.GetByPhone(ctx, normalizedPhone)
	if err != nil {
		return "", err
	}
	if lead == nil {
		lead = &entity.Lead{
			ID:               uuid.New().String(),
			CustomerName:     name,
			CustomerPhone:    normalizedPhone,
			Status:           entity.LeadStatusPurchased,
			ManagerProfileID: managerID,
			AgentProfileID:   agentID,
			LinkID:           linkID,
			Provenance:       provenance,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := leadRepo.Create(ctx, lead); err != nil {
			return "", err
		}
		return lead.ID, nil
	}

	changed := false
	if lead.ManagerProfileID == "" && managerID != "" {
		lead.ManagerProfileID = managerID
		changed = true
	}
	if lead.AgentProfileID == "" && agentID != "" {
		lead.AgentProfileID = agentID
		changed = true
	}
	if lead.CustomerName == "" && name != "" {
		lead.CustomerName = name
		changed = true
	}
	if changed {
		lead.UpdatedAt = now
		if err := leadRepo.Update(ctx, lead); err != nil {
			return "", err
		}
	}
	if lead.Status.CanTransition(entity.LeadStatusPurchased) {
		if _, err := leadRepo.TransitionStatus(ctx, lead.ID, lead.Status, entity.LeadStatusPurchased); err != nil {
			return "", err
		}
	}
	return lead.ID, nil
}
