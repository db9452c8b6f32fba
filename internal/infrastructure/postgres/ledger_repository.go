package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implements LedgerRepository (usable with pool or tx). The table
// is append-only: no UPDATE ever touches amount, type or beneficiary.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository builds the adapter. Pass a pool or a tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create inserts one ledger entry.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ledger_entries (id, sale_id, profile_id, entry_type, amount, withholding_amount,
		                            is_settled, is_voided, settlement_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.SaleID, nullIfEmpty(e.ProfileID), string(e.Type), e.Amount, e.WithholdingAmount,
		e.IsSettled, e.IsVoided, nullIfEmpty(e.SettlementID), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListBySale returns every entry of a sale, voided included.
func (r *LedgerRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, sale_id, profile_id, entry_type, amount, withholding_amount,
		       is_settled, is_voided, settlement_id, created_at
		FROM ledger_entries WHERE sale_id = $1 ORDER BY created_at, id`
	return r.list(ctx, query, saleID)
}

// VoidBySale flips is_voided on every entry of the sale.
func (r *LedgerRepo) VoidBySale(ctx context.Context, saleID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `UPDATE ledger_entries SET is_voided = TRUE WHERE sale_id = $1`, saleID)
	if err != nil {
		return 0, fmt.Errorf("void ledger entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SummarizeForPeriod aggregates non-voided entries of CONFIRMED sales whose
// confirmation falls in [start, end), grouped by beneficiary and type.
func (r *LedgerRepo) SummarizeForPeriod(ctx context.Context, start, end time.Time, profileID string) ([]*repository.LedgerSummaryRow, error) {
	query := `
		SELECT COALESCE(e.profile_id, ''), e.entry_type,
		       COALESCE(SUM(e.amount), 0), COALESCE(SUM(e.withholding_amount), 0), COUNT(*)
		FROM ledger_entries e
		JOIN sales s ON s.id = e.sale_id
		WHERE s.status = 'CONFIRMED'
		  AND s.confirmed_at >= $1 AND s.confirmed_at < $2
		  AND e.is_voided = FALSE
		  AND ($3 = '' OR e.profile_id = $3)
		GROUP BY e.profile_id, e.entry_type
		ORDER BY e.profile_id NULLS FIRST, e.entry_type`
	rows, err := r.q.Query(ctx, query, start, end, profileID)
	if err != nil {
		return nil, fmt.Errorf("summarize ledger: %w", err)
	}
	defer rows.Close()

	var out []*repository.LedgerSummaryRow
	for rows.Next() {
		var row repository.LedgerSummaryRow
		var entryType string
		if err := rows.Scan(&row.ProfileID, &entryType, &row.Gross, &row.Withholding, &row.EntryCount); err != nil {
			return nil, fmt.Errorf("scan ledger summary: %w", err)
		}
		row.Type = entity.LedgerEntryType(entryType)
		out = append(out, &row)
	}
	return out, rows.Err()
}

// ListForPeriod returns the individual entries of the period.
func (r *LedgerRepo) ListForPeriod(ctx context.Context, start, end time.Time, onlyUnsettled bool) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT e.id, e.sale_id, e.profile_id, e.entry_type, e.amount, e.withholding_amount,
		       e.is_settled, e.is_voided, e.settlement_id, e.created_at
		FROM ledger_entries e
		JOIN sales s ON s.id = e.sale_id
		WHERE s.status = 'CONFIRMED'
		  AND s.confirmed_at >= $1 AND s.confirmed_at < $2
		  AND e.is_voided = FALSE
		  AND ($3 = FALSE OR e.is_settled = FALSE)
		ORDER BY e.created_at, e.id`
	return r.list(ctx, query, start, end, onlyUnsettled)
}

// MarkSettledForPeriod flips is_settled and stamps settlement_id on the
// period's unsettled, non-voided entries.
func (r *LedgerRepo) MarkSettledForPeriod(ctx context.Context, settlementID string, start, end time.Time) (int64, error) {
	query := `
		UPDATE ledger_entries e
		SET is_settled = TRUE, settlement_id = $1
		FROM sales s
		WHERE s.id = e.sale_id
		  AND s.status = 'CONFIRMED'
		  AND s.confirmed_at >= $2 AND s.confirmed_at < $3
		  AND e.is_voided = FALSE
		  AND e.is_settled = FALSE`
	tag, err := r.q.Exec(ctx, query, settlementID, start, end)
	if err != nil {
		return 0, fmt.Errorf("mark ledger settled: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *LedgerRepo) list(ctx context.Context, query string, args ...any) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var out []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var entryType string
		var profileID, settlementID *string
		if err := rows.Scan(&e.ID, &e.SaleID, &profileID, &entryType, &e.Amount, &e.WithholdingAmount,
			&e.IsSettled, &e.IsVoided, &settlementID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Type = entity.LedgerEntryType(entryType)
		e.ProfileID = derefStr(profileID)
		e.SettlementID = derefStr(settlementID)
		out = append(out, &e)
	}
	return out, rows.Err()
}
