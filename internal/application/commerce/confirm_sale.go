package commerce

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/commission"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
	"github.com/monicajeon28/gmcruise-api/pkg/metrics"
)

// ConfirmSaleUseCase drives the PENDING -> CONFIRMED | REJECTED transitions.
// Confirmation is the sole trigger for ledger generation; the compare-and-swap
// on the status column makes concurrent confirmations of the same sale
// resolve to exactly one winner, so entries are written exactly once.
type ConfirmSaleUseCase struct {
	txRunner    TxRunner
	saleRepo    repository.SaleRepository
	ledgerRepo  repository.LedgerRepository
	profileRepo repository.ProfileRepository
	rates       commission.Rates
}

// NewConfirmSaleUseCase builds the use case.
func NewConfirmSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	ledgerRepo repository.LedgerRepository,
	profileRepo repository.ProfileRepository,
	rates commission.Rates,
) *ConfirmSaleUseCase {
	return &ConfirmSaleUseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		ledgerRepo:  ledgerRepo,
		profileRepo: profileRepo,
		rates:       rates,
	}
}

// Preview computes the commission breakdown for a sale without writing
// anything. The calculator is pure, so the drafts returned here are exactly
// the rows Confirm will persist.
func (uc *ConfirmSaleUseCase) Preview(ctx context.Context, saleID string) (*dto.BreakdownResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	breakdown, err := uc.breakdownFor(ctx, sale)
	if err != nil {
		return nil, err
	}

	resp := &dto.BreakdownResponse{
		NetRevenue:         breakdown.NetRevenue,
		BranchCommission:   breakdown.BranchCommission,
		OverrideCommission: breakdown.OverrideCommission,
		SalesCommission:    breakdown.SalesCommission,
		TotalWithholding:   breakdown.TotalWithholding,
		HQRetained:         breakdown.HQRetained,
	}
	for _, d := range breakdown.Entries {
		resp.Entries = append(resp.Entries, dto.LedgerEntryResponse{
			SaleID:            sale.ID,
			ProfileID:         d.ProfileID,
			Type:              string(d.Type),
			Amount:            d.Amount,
			WithholdingAmount: d.WithholdingAmount,
			NetPayable:        d.Amount - d.WithholdingAmount,
		})
	}
	return resp, nil
}

// Confirm transitions the sale PENDING -> CONFIRMED and writes one ledger row
// per non-zero leg, all in a single transaction. A sale that is not PENDING
// (already confirmed, rejected or cancelled) returns ErrConflict.
func (uc *ConfirmSaleUseCase) Confirm(ctx context.Context, saleID string) (*dto.ConfirmSaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !sale.Status.CanTransition(entity.SaleStatusConfirmed) {
		return nil, domain.ErrConflict
	}

	// Breakdown is computed before the transaction; it only depends on the
	// immutable sale amounts and the beneficiary rates.
	breakdown, err := uc.breakdownFor(ctx, sale)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var written []*entity.LedgerEntry
	err = uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		ledgerRepo repository.LedgerRepository,
		_ repository.LeadRepository,
	) error {
		ok, err := saleRepo.TransitionStatus(ctx, sale.ID, entity.SaleStatusPending, entity.SaleStatusConfirmed, now)
		if err != nil {
			return err
		}
		if !ok {
			// lost the race with a concurrent confirm/reject
			return domain.ErrConflict
		}
		for _, d := range breakdown.Entries {
			e := &entity.LedgerEntry{
				ID:                uuid.New().String(),
				SaleID:            sale.ID,
				ProfileID:         d.ProfileID,
				Type:              d.Type,
				Amount:            d.Amount,
				WithholdingAmount: d.WithholdingAmount,
				CreatedAt:         now,
			}
			if err := ledgerRepo.Create(ctx, e); err != nil {
				return err
			}
			written = append(written, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SalesConfirmed.Inc()
	for _, e := range written {
		metrics.LedgerEntriesCreated.WithLabelValues(string(e.Type)).Inc()
	}

	sale.Status = entity.SaleStatusConfirmed
	sale.ConfirmedAt = &now
	resp := &dto.ConfirmSaleResponse{Sale: toSaleResponse(sale)}
	for _, e := range written {
		resp.Entries = append(resp.Entries, toLedgerResponse(e))
	}
	return resp, nil
}

// Reject transitions the sale PENDING -> REJECTED. Entries that exist for the
// sale (generated before a rejection won a race) are voided, never deleted.
func (uc *ConfirmSaleUseCase) Reject(ctx context.Context, saleID string) error {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if !sale.Status.CanTransition(entity.SaleStatusRejected) {
		return domain.ErrConflict
	}

	err = uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		ledgerRepo repository.LedgerRepository,
		_ repository.LeadRepository,
	) error {
		ok, err := saleRepo.TransitionStatus(ctx, sale.ID, entity.SaleStatusPending, entity.SaleStatusRejected, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}
		_, err = ledgerRepo.VoidBySale(ctx, sale.ID)
		return err
	})
	if err != nil {
		return err
	}
	metrics.SalesRejected.Inc()
	return nil
}

// GetSale returns a sale with its ledger entries.
func (uc *ConfirmSaleUseCase) GetSale(ctx context.Context, saleID string) (*dto.ConfirmSaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.ledgerRepo.ListBySale(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ConfirmSaleResponse{Sale: toSaleResponse(sale)}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toLedgerResponse(e))
	}
	return resp, nil
}

// ListSales lists sales, optionally filtered by status.
func (uc *ConfirmSaleUseCase) ListSales(ctx context.Context, status entity.SaleStatus, limit, offset int) ([]dto.SaleResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	sales, err := uc.saleRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// breakdownFor applies per-profile rate overrides and runs the calculator.
func (uc *ConfirmSaleUseCase) breakdownFor(ctx context.Context, sale *entity.Sale) (*commission.Breakdown, error) {
	in := commission.Input{
		SaleAmount:       sale.SaleAmount,
		CostAmount:       sale.CostAmount,
		ManagerProfileID: sale.ManagerProfileID,
		AgentProfileID:   sale.AgentProfileID,
	}
	if sale.ManagerProfileID != "" {
		p, err := uc.profileRepo.GetByID(ctx, sale.ManagerProfileID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			in.BranchRateOverride = p.BranchRate
		}
	}
	if sale.AgentProfileID != "" {
		p, err := uc.profileRepo.GetByID(ctx, sale.AgentProfileID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			in.AgentRateOverride = p.AgentRate
		}
	}
	return commission.Calculate(in, uc.rates)
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:               s.ID,
		OrderCode:        s.OrderCode,
		ProductCode:      s.ProductCode,
		SaleAmount:       s.SaleAmount,
		CostAmount:       s.CostAmount,
		NetRevenue:       s.NetRevenue(),
		Headcount:        s.Headcount,
		Status:           string(s.Status),
		ManagerProfileID: s.ManagerProfileID,
		AgentProfileID:   s.AgentProfileID,
		LeadID:           s.LeadID,
		SaleDate:         s.SaleDate.Format("2006-01-02"),
	}
	if s.ConfirmedAt != nil {
		resp.ConfirmedAt = s.ConfirmedAt.Format(time.RFC3339)
	}
	return resp
}

func toLedgerResponse(e *entity.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:                e.ID,
		SaleID:            e.SaleID,
		ProfileID:         e.ProfileID,
		Type:              string(e.Type),
		Amount:            e.Amount,
		WithholdingAmount: e.WithholdingAmount,
		NetPayable:        e.NetPayable(),
		IsSettled:         e.IsSettled,
		IsVoided:          e.IsVoided,
	}
}
