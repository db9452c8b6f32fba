package repository

import (
	"context"
	"time"

	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// LedgerSummaryRow is one aggregated (beneficiary, type) bucket for a period.
type LedgerSummaryRow struct {
	ProfileID   string // empty for HQ
	Type        entity.LedgerEntryType
	Gross       int64
	Withholding int64
	EntryCount  int64
}

// LedgerRepository is the persistence port for the append-only commission
// ledger. There is no Update and no Delete: entries only ever flip is_settled
// (settlement approval) or is_voided (sale rejected after a race).
type LedgerRepository interface {
	Create(ctx context.Context, e *entity.LedgerEntry) error
	ListBySale(ctx context.Context, saleID string) ([]*entity.LedgerEntry, error)
	// VoidBySale flips is_voided on every entry of the sale; returns the count.
	VoidBySale(ctx context.Context, saleID string) (int64, error)
	// SummarizeForPeriod aggregates non-voided entries whose parent sale is
	// CONFIRMED with confirmed_at in [start, end), grouped by beneficiary and
	// type. profileID filters to one beneficiary when non-empty. Settled
	// entries are included (historical reporting stays reproducible).
	SummarizeForPeriod(ctx context.Context, start, end time.Time, profileID string) ([]*LedgerSummaryRow, error)
	// ListForPeriod returns the individual entries behind SummarizeForPeriod.
	ListForPeriod(ctx context.Context, start, end time.Time, onlyUnsettled bool) ([]*entity.LedgerEntry, error)
	// MarkSettledForPeriod flips is_settled and stamps settlement_id on every
	// unsettled, non-voided entry of the period; returns the count.
	MarkSettledForPeriod(ctx context.Context, settlementID string, start, end time.Time) (int64, error)
}
