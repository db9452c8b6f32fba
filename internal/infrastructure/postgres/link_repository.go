package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
)

var _ repository.LinkRepository = (*LinkRepo)(nil)

// LinkRepo implements LinkRepository (usable with pool or tx).
type LinkRepo struct {
	q Querier
}

// NewLinkRepository builds the adapter. Pass a pool or a tx (Querier).
func NewLinkRepository(q Querier) *LinkRepo {
	return &LinkRepo{q: q}
}

const linkColumns = `id, code, manager_profile_id, agent_profile_id, campaign, click_count, created_at`

// CreateBatch inserts a chunk of links with pgx's batch API. Callers wrap
// each chunk in its own transaction.
func (r *LinkRepo) CreateBatch(ctx context.Context, links []*entity.AffiliateLink) error {
	if len(links) == 0 {
		return nil
	}
	query := `
		INSERT INTO affiliate_links (id, code, manager_profile_id, agent_profile_id, campaign, click_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	batch := &pgx.Batch{}
	for _, l := range links {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		batch.Queue(query,
			l.ID, l.Code,
			nullIfEmpty(l.ManagerProfileID), nullIfEmpty(l.AgentProfileID),
			nullIfEmpty(l.Campaign), l.ClickCount, l.CreatedAt,
		)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for range links {
		if _, err := results.Exec(); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert link batch: %w", err)
		}
	}
	return nil
}

// GetByCode looks up a link by its slug; nil when absent.
func (r *LinkRepo) GetByCode(ctx context.Context, code string) (*entity.AffiliateLink, error) {
	l, err := scanLink(r.q.QueryRow(ctx,
		`SELECT `+linkColumns+` FROM affiliate_links WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get link: %w", err)
	}
	return l, nil
}

// IncrementClick bumps the click counter atomically.
func (r *LinkRepo) IncrementClick(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE affiliate_links SET click_count = click_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment click: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByProfile returns links attributed to the profile (either leg).
func (r *LinkRepo) ListByProfile(ctx context.Context, profileID string, limit, offset int) ([]*entity.AffiliateLink, error) {
	query := `SELECT ` + linkColumns + ` FROM affiliate_links
		WHERE manager_profile_id = $1 OR agent_profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, profileID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	var out []*entity.AffiliateLink
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanLink(row pgx.Row) (*entity.AffiliateLink, error) {
	var l entity.AffiliateLink
	var managerID, agentID, campaign *string
	err := row.Scan(&l.ID, &l.Code, &managerID, &agentID, &campaign, &l.ClickCount, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.ManagerProfileID = derefStr(managerID)
	l.AgentProfileID = derefStr(agentID)
	l.Campaign = derefStr(campaign)
	return &l, nil
}
