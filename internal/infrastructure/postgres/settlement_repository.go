package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
)

var _ repository.SettlementRepository = (*SettlementRepo)(nil)

// SettlementRepo implements SettlementRepository (usable with pool or tx).
type SettlementRepo struct {
	q Querier
}

// NewSettlementRepository builds the adapter. Pass a pool or a tx (Querier).
func NewSettlementRepository(q Querier) *SettlementRepo {
	return &SettlementRepo{q: q}
}

// Create inserts a settlement; (year, month) is unique.
func (r *SettlementRepo) Create(ctx context.Context, s *entity.Settlement) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO settlements (id, period_year, period_month, status, approver_id,
		                         gross_total, withholding_total, net_payable_total,
		                         approved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Period.Year, int(s.Period.Month), string(s.Status), nullIfEmpty(s.ApproverID),
		s.GrossTotal, s.WithholdingTotal, s.NetPayableTotal,
		s.ApprovedAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert settlement: %w", err)
	}
	return nil
}

// GetByID returns the settlement or nil.
func (r *SettlementRepo) GetByID(ctx context.Context, id string) (*entity.Settlement, error) {
	return r.getOne(ctx, `SELECT `+settlementColumns+` FROM settlements WHERE id = $1`, id)
}

// GetByPeriod returns the period's settlement or nil.
func (r *SettlementRepo) GetByPeriod(ctx context.Context, p entity.Period) (*entity.Settlement, error) {
	return r.getOne(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE period_year = $1 AND period_month = $2`,
		p.Year, int(p.Month))
}

// Approve compare-and-swaps PENDING -> APPROVED with the final totals.
func (r *SettlementRepo) Approve(ctx context.Context, id, approverID string, gross, withholding, netPayable int64, at time.Time) (bool, error) {
	query := `
		UPDATE settlements
		SET status            = 'APPROVED',
		    approver_id       = $2,
		    gross_total       = $3,
		    withholding_total = $4,
		    net_payable_total = $5,
		    approved_at       = $6,
		    updated_at        = $6
		WHERE id = $1 AND status = 'PENDING'`
	tag, err := r.q.Exec(ctx, query, id, approverID, gross, withholding, netPayable, at)
	if err != nil {
		return false, fmt.Errorf("approve settlement: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List returns settlements, newest period first.
func (r *SettlementRepo) List(ctx context.Context, limit, offset int) ([]*entity.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements
		ORDER BY period_year DESC, period_month DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

const settlementColumns = `id, period_year, period_month, status, approver_id,
	       gross_total, withholding_total, net_payable_total,
	       approved_at, created_at, updated_at`

func (r *SettlementRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Settlement, error) {
	s, err := scanSettlement(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settlement: %w", err)
	}
	return s, nil
}

func scanSettlement(row pgx.Row) (*entity.Settlement, error) {
	var s entity.Settlement
	var year, month int
	var status string
	var approverID *string
	err := row.Scan(
		&s.ID, &year, &month, &status, &approverID,
		&s.GrossTotal, &s.WithholdingTotal, &s.NetPayableTotal,
		&s.ApprovedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Period = entity.Period{Year: year, Month: time.Month(month)}
	s.Status = entity.SettlementStatus(status)
	s.ApproverID = derefStr(approverID)
	return &s, nil
}
