package settlement

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
	"github.com/monicajeon28/gmcruise-api/pkg/metrics"
)

const summaryCacheKeyPrefix = "settlement:summary:"

// UseCase aggregates ledger entries into monthly payable statements and owns
// the PENDING -> APPROVED transition.
type UseCase struct {
	txRunner       TxRunner
	settlementRepo repository.SettlementRepository
	ledgerRepo     repository.LedgerRepository
	profileRepo    repository.ProfileRepository
	cache          SummaryCache
}

// NewUseCase builds the settlement use case. cache may be nil (no caching).
func NewUseCase(
	txRunner TxRunner,
	settlementRepo repository.SettlementRepository,
	ledgerRepo repository.LedgerRepository,
	profileRepo repository.ProfileRepository,
	cache SummaryCache,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		settlementRepo: settlementRepo,
		ledgerRepo:     ledgerRepo,
		profileRepo:    profileRepo,
		cache:          cache,
	}
}

// Summarize produces the period's three-view payable statement (HQ, branch
// managers, sales agents). Re-running it for an approved period reproduces the
// same totals: settled entries stay in the aggregation. With no profile filter
// the result is served read-through from the cache.
func (uc *UseCase) Summarize(ctx context.Context, period entity.Period, profileID string) (*dto.SettlementSummaryResponse, error) {
	cacheable := uc.cache != nil && profileID == ""
	cacheKey := summaryCacheKeyPrefix + period.String()
	if cacheable {
		if raw, ok := uc.cache.Get(ctx, cacheKey); ok {
			var cached dto.SettlementSummaryResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	resp, err := uc.buildSummary(ctx, uc.settlementRepo, uc.ledgerRepo, period, profileID)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if raw, err := json.Marshal(resp); err == nil {
			uc.cache.Set(ctx, cacheKey, raw)
		}
	}
	return resp, nil
}

// Approve finalizes the period: CAS PENDING -> APPROVED with the recomputed
// totals, then flips is_settled on every aggregated entry, atomically. A
// period with zero entries approves fine (empty statement, monthly cadence
// stays simple). Re-approval returns ErrAlreadySettled.
func (uc *UseCase) Approve(ctx context.Context, period entity.Period, approverID string) (*dto.SettlementResponse, error) {
	now := time.Now()
	var approved *entity.Settlement

	err := uc.txRunner.RunSettlement(ctx, func(
		settlementRepo repository.SettlementRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		s, err := uc.ensureForPeriod(ctx, settlementRepo, period, now)
		if err != nil {
			return err
		}
		if s.Status != entity.SettlementStatusPending {
			return domain.ErrAlreadySettled
		}

		// Totals come from the ledger inside the same transaction, never from
		// the cache.
		start, end := period.Bounds()
		rows, err := ledgerRepo.SummarizeForPeriod(ctx, start, end, "")
		if err != nil {
			return err
		}
		var gross, withholding int64
		for _, r := range rows {
			gross += r.Gross
			withholding += r.Withholding
		}

		ok, err := settlementRepo.Approve(ctx, s.ID, approverID, gross, withholding, gross-withholding, now)
		if err != nil {
			return err
		}
		if !ok {
			// a concurrent admin approved first
			return domain.ErrAlreadySettled
		}
		if _, err := ledgerRepo.MarkSettledForPeriod(ctx, s.ID, start, end); err != nil {
			return err
		}

		s.Status = entity.SettlementStatusApproved
		s.ApproverID = approverID
		s.GrossTotal = gross
		s.WithholdingTotal = withholding
		s.NetPayableTotal = gross - withholding
		s.ApprovedAt = &now
		approved = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SettlementsApproved.Inc()
	if uc.cache != nil {
		uc.cache.Delete(ctx, summaryCacheKeyPrefix+period.String())
	}
	return toSettlementResponse(approved), nil
}

// ListEntries returns the individual ledger entries behind a period's
// summary, the drill-down view of the aggregated totals. onlyUnsettled
// restricts to entries a future approval would pick up.
func (uc *UseCase) ListEntries(ctx context.Context, period entity.Period, onlyUnsettled bool) ([]dto.LedgerEntryResponse, error) {
	start, end := period.Bounds()
	entries, err := uc.ledgerRepo.ListForPeriod(ctx, start, end, onlyUnsettled)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerEntryResponse{
			ID:                e.ID,
			SaleID:            e.SaleID,
			ProfileID:         e.ProfileID,
			Type:              string(e.Type),
			Amount:            e.Amount,
			WithholdingAmount: e.WithholdingAmount,
			NetPayable:        e.NetPayable(),
			IsSettled:         e.IsSettled,
			IsVoided:          e.IsVoided,
		})
	}
	return out, nil
}

// Get returns the settlement row for a period, nil status PENDING if none
// exists yet.
func (uc *UseCase) Get(ctx context.Context, period entity.Period) (*dto.SettlementResponse, error) {
	s, err := uc.settlementRepo.GetByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSettlementResponse(s), nil
}

// List returns settlement rows, newest first.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]dto.SettlementResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 24
	}
	list, err := uc.settlementRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SettlementResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSettlementResponse(s))
	}
	return out, nil
}

// ensureForPeriod fetches or lazily creates the period's PENDING settlement.
func (uc *UseCase) ensureForPeriod(ctx context.Context, repo repository.SettlementRepository, period entity.Period, now time.Time) (*entity.Settlement, error) {
	s, err := repo.GetByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	s = &entity.Settlement{
		ID:        uuid.New().String(),
		Period:    period,
		Status:    entity.SettlementStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, s); err != nil {
		if err == domain.ErrDuplicate {
			// another request created it between Get and Create
			return repo.GetByPeriod(ctx, period)
		}
		return nil, err
	}
	return s, nil
}

func (uc *UseCase) buildSummary(
	ctx context.Context,
	settlementRepo repository.SettlementRepository,
	ledgerRepo repository.LedgerRepository,
	period entity.Period,
	profileID string,
) (*dto.SettlementSummaryResponse, error) {
	start, end := period.Bounds()
	rows, err := ledgerRepo.SummarizeForPeriod(ctx, start, end, profileID)
	if err != nil {
		return nil, err
	}

	status := entity.SettlementStatusPending
	if s, err := settlementRepo.GetByPeriod(ctx, period); err != nil {
		return nil, err
	} else if s != nil {
		status = s.Status
	}
	settled := status == entity.SettlementStatusApproved

	resp := &dto.SettlementSummaryResponse{
		Period: period.String(),
		Status: string(status),
	}

	// The branch-manager view combines direct branch commission and override
	// commission per profile; agents keep their withholding deduction.
	managerRows := map[string]*dto.PayoutRow{}
	agentRows := map[string]*dto.PayoutRow{}

	for _, r := range rows {
		resp.GrossTotal += r.Gross
		resp.WithholdingTotal += r.Withholding

		switch r.Type {
		case entity.LedgerTypeHQShare:
			resp.HQ = append(resp.HQ, dto.PayoutRow{
				Role:       "HQ",
				Gross:      r.Gross,
				NetPayable: r.Gross,
				Settled:    settled,
			})
		case entity.LedgerTypeBranchCommission, entity.LedgerTypeOverrideCommission:
			row := managerRows[r.ProfileID]
			if row == nil {
				row = &dto.PayoutRow{Role: entity.ProfileTypeBranchManager, ProfileID: r.ProfileID, Settled: settled}
				managerRows[r.ProfileID] = row
			}
			row.Gross += r.Gross
			row.Withholding += r.Withholding
			row.NetPayable = row.Gross - row.Withholding
		case entity.LedgerTypeSalesCommission:
			row := agentRows[r.ProfileID]
			if row == nil {
				row = &dto.PayoutRow{Role: entity.ProfileTypeSalesAgent, ProfileID: r.ProfileID, Settled: settled}
				agentRows[r.ProfileID] = row
			}
			row.Gross += r.Gross
			row.Withholding += r.Withholding
			row.NetPayable = row.Gross - row.Withholding
		}
	}
	resp.NetPayableTotal = resp.GrossTotal - resp.WithholdingTotal

	fill := func(row *dto.PayoutRow) error {
		p, err := uc.profileRepo.GetByID(ctx, row.ProfileID)
		if err != nil {
			return err
		}
		if p != nil {
			row.ProfileCode = p.Code
			row.BankName = p.BankName
			row.BankAccount = p.BankAccount
			row.BankHolder = p.BankHolder
		}
		return nil
	}
	for _, row := range managerRows {
		if err := fill(row); err != nil {
			return nil, err
		}
		resp.BranchManagers = append(resp.BranchManagers, *row)
	}
	for _, row := range agentRows {
		if err := fill(row); err != nil {
			return nil, err
		}
		resp.SalesAgents = append(resp.SalesAgents, *row)
	}
	// stable export order regardless of map iteration
	sort.Slice(resp.BranchManagers, func(i, j int) bool { return resp.BranchManagers[i].ProfileID < resp.BranchManagers[j].ProfileID })
	sort.Slice(resp.SalesAgents, func(i, j int) bool { return resp.SalesAgents[i].ProfileID < resp.SalesAgents[j].ProfileID })
	return resp, nil
}

func toSettlementResponse(s *entity.Settlement) *dto.SettlementResponse {
	resp := &dto.SettlementResponse{
		ID:               s.ID,
		Period:           s.Period.String(),
		Status:           string(s.Status),
		ApproverID:       s.ApproverID,
		GrossTotal:       s.GrossTotal,
		WithholdingTotal: s.WithholdingTotal,
		NetPayableTotal:  s.NetPayableTotal,
	}
	if s.ApprovedAt != nil {
		resp.ApprovedAt = s.ApprovedAt.Format(time.RFC3339)
	}
	return resp
}
