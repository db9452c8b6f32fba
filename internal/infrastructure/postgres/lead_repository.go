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

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implements LeadRepository (usable with pool or tx).
type LeadRepo struct {
	q Querier
}

// NewLeadRepository builds the adapter. Pass a pool or a tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

const leadColumns = `id, customer_name, customer_phone, status,
	       manager_profile_id, agent_profile_id, link_id,
	       prov_source, prov_external_txn_id, prov_operator_id, prov_trip_code,
	       created_at, updated_at`

// Create inserts the lead; customer_phone is unique.
func (r *LeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	query := `
		INSERT INTO leads (id, customer_name, customer_phone, status,
		                   manager_profile_id, agent_profile_id, link_id,
		                   prov_source, prov_external_txn_id, prov_operator_id, prov_trip_code,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		lead.ID, lead.CustomerName, lead.CustomerPhone, string(lead.Status),
		nullIfEmpty(lead.ManagerProfileID), nullIfEmpty(lead.AgentProfileID), nullIfEmpty(lead.LinkID),
		string(lead.Provenance.Source), nullIfEmpty(lead.Provenance.ExternalTxnID),
		nullIfEmpty(lead.Provenance.OperatorID), nullIfEmpty(lead.Provenance.TripCode),
		lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID returns the lead or nil.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	return r.getOne(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
}

// GetByPhone looks up by normalized phone; nil when absent.
func (r *LeadRepo) GetByPhone(ctx context.Context, normalizedPhone string) (*entity.Lead, error) {
	return r.getOne(ctx, `SELECT `+leadColumns+` FROM leads WHERE customer_phone = $1`, normalizedPhone)
}

// TransitionStatus compare-and-swaps the status column.
func (r *LeadRepo) TransitionStatus(ctx context.Context, id string, from, to entity.LeadStatus) (bool, error) {
	query := `UPDATE leads SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, query, id, string(from), string(to), time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("transition lead: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Update persists name and attribution fields (webhook backfill path).
func (r *LeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET customer_name      = $2,
		    manager_profile_id = $3,
		    agent_profile_id   = $4,
		    link_id            = $5,
		    updated_at         = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		lead.ID, lead.CustomerName,
		nullIfEmpty(lead.ManagerProfileID), nullIfEmpty(lead.AgentProfileID), nullIfEmpty(lead.LinkID),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStatus returns leads in the status, newest first. Empty status lists all.
func (r *LeadRepo) ListByStatus(ctx context.Context, status entity.LeadStatus, limit, offset int) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var out []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

func (r *LeadRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Lead, error) {
	lead, err := scanLead(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var lead entity.Lead
	var status, provSource string
	var managerID, agentID, linkID, provTxnID, provOpID, provTrip *string
	err := row.Scan(
		&lead.ID, &lead.CustomerName, &lead.CustomerPhone, &status,
		&managerID, &agentID, &linkID,
		&provSource, &provTxnID, &provOpID, &provTrip,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	lead.Status = entity.LeadStatus(status)
	lead.ManagerProfileID = derefStr(managerID)
	lead.AgentProfileID = derefStr(agentID)
	lead.LinkID = derefStr(linkID)
	lead.Provenance = entity.Provenance{
		Source:        entity.ProvenanceSource(provSource),
		ExternalTxnID: derefStr(provTxnID),
		OperatorID:    derefStr(provOpID),
		TripCode:      derefStr(provTrip),
	}
	return &lead, nil
}
