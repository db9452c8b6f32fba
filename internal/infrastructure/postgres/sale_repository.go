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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implements SaleRepository (usable with pool or tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the adapter. Pass a pool or a tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, order_code, product_code, sale_amount, cost_amount, headcount, status,
	       manager_profile_id, agent_profile_id, lead_id,
	       prov_source, prov_external_txn_id, prov_operator_id, prov_trip_code,
	       sale_date, confirmed_at, created_at, updated_at`

// Create inserts the sale. order_code carries a unique constraint; a replayed
// webhook that races past the application dedup check lands here as ErrDuplicate.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, order_code, product_code, sale_amount, cost_amount, headcount, status,
		                   manager_profile_id, agent_profile_id, lead_id,
		                   prov_source, prov_external_txn_id, prov_operator_id, prov_trip_code,
		                   sale_date, confirmed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.OrderCode, sale.ProductCode, sale.SaleAmount, sale.CostAmount, sale.Headcount, string(sale.Status),
		nullIfEmpty(sale.ManagerProfileID), nullIfEmpty(sale.AgentProfileID), nullIfEmpty(sale.LeadID),
		string(sale.Provenance.Source), nullIfEmpty(sale.Provenance.ExternalTxnID),
		nullIfEmpty(sale.Provenance.OperatorID), nullIfEmpty(sale.Provenance.TripCode),
		sale.SaleDate, sale.ConfirmedAt, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID returns the sale or nil when absent.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetByOrderCode returns the sale for an external order code or nil.
func (r *SaleRepo) GetByOrderCode(ctx context.Context, orderCode string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE order_code = $1`, orderCode)
}

// TransitionStatus compare-and-swaps the status column. confirmed_at is only
// stamped on the transition into CONFIRMED.
func (r *SaleRepo) TransitionStatus(ctx context.Context, id string, from, to entity.SaleStatus, at time.Time) (bool, error) {
	query := `
		UPDATE sales
		SET status       = $3,
		    confirmed_at = CASE WHEN $3 = 'CONFIRMED' THEN $4 ELSE confirmed_at END,
		    updated_at   = $4
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, query, id, string(from), string(to), at)
	if err != nil {
		return false, fmt.Errorf("transition sale status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List returns sales ordered by sale date, newest first. status filters when
// non-empty.
func (r *SaleRepo) List(ctx context.Context, status entity.SaleStatus, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE ($1 = '' OR status = $1)
		ORDER BY sale_date DESC, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) getOne(ctx context.Context, query string, arg any) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var status, provSource string
	var managerID, agentID, leadID, txnID, operatorID, tripCode *string
	err := row.Scan(
		&s.ID, &s.OrderCode, &s.ProductCode, &s.SaleAmount, &s.CostAmount, &s.Headcount, &status,
		&managerID, &agentID, &leadID,
		&provSource, &txnID, &operatorID, &tripCode,
		&s.SaleDate, &s.ConfirmedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = entity.SaleStatus(status)
	s.ManagerProfileID = derefStr(managerID)
	s.AgentProfileID = derefStr(agentID)
	s.LeadID = derefStr(leadID)
	s.Provenance = entity.Provenance{
		Source:        entity.ProvenanceSource(provSource),
		ExternalTxnID: derefStr(txnID),
		OperatorID:    derefStr(operatorID),
		TripCode:      derefStr(tripCode),
	}
	return &s, nil
}
