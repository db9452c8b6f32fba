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

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implements ProfileRepository (usable with pool or tx).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository builds the adapter. Pass a pool or a tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

const profileColumns = `id, user_id, type, code, status, manager_profile_id,
	       branch_rate, agent_rate, bank_name, bank_account, bank_holder,
	       created_at, updated_at`

// Create inserts the profile; the affiliate code is unique.
func (r *ProfileRepo) Create(ctx context.Context, p *entity.AffiliateProfile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO affiliate_profiles (id, user_id, type, code, status, manager_profile_id,
		                                branch_rate, agent_rate, bank_name, bank_account, bank_holder,
		                                created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.Type, p.Code, p.Status, nullIfEmpty(p.ManagerProfileID),
		p.BranchRate, p.AgentRate,
		nullIfEmpty(p.BankName), nullIfEmpty(p.BankAccount), nullIfEmpty(p.BankHolder),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByID returns the profile or nil.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.AffiliateProfile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM affiliate_profiles WHERE id = $1`, id)
}

// GetByCode looks up by affiliate code; nil when absent.
func (r *ProfileRepo) GetByCode(ctx context.Context, code string) (*entity.AffiliateProfile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM affiliate_profiles WHERE code = $1`, code)
}

// GetByUserID returns the user's profile or nil (users own at most one).
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.AffiliateProfile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM affiliate_profiles WHERE user_id = $1`, userID)
}

// ListByManager returns the agents under a branch manager.
func (r *ProfileRepo) ListByManager(ctx context.Context, managerProfileID string) ([]*entity.AffiliateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM affiliate_profiles
		WHERE manager_profile_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, managerProfileID)
	if err != nil {
		return nil, fmt.Errorf("list profiles by manager: %w", err)
	}
	defer rows.Close()

	var out []*entity.AffiliateProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update persists status, manager link, rate overrides and bank fields.
func (r *ProfileRepo) Update(ctx context.Context, p *entity.AffiliateProfile) error {
	query := `
		UPDATE affiliate_profiles
		SET status             = $2,
		    manager_profile_id = $3,
		    branch_rate        = $4,
		    agent_rate         = $5,
		    bank_name          = $6,
		    bank_account       = $7,
		    bank_holder        = $8,
		    updated_at         = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Status, nullIfEmpty(p.ManagerProfileID),
		p.BranchRate, p.AgentRate,
		nullIfEmpty(p.BankName), nullIfEmpty(p.BankAccount), nullIfEmpty(p.BankHolder),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProfileRepo) getOne(ctx context.Context, query string, args ...any) (*entity.AffiliateProfile, error) {
	p, err := scanProfile(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*entity.AffiliateProfile, error) {
	var p entity.AffiliateProfile
	var managerID, bankName, bankAccount, bankHolder *string
	err := row.Scan(
		&p.ID, &p.UserID, &p.Type, &p.Code, &p.Status, &managerID,
		&p.BranchRate, &p.AgentRate, &bankName, &bankAccount, &bankHolder,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ManagerProfileID = derefStr(managerID)
	p.BankName = derefStr(bankName)
	p.BankAccount = derefStr(bankAccount)
	p.BankHolder = derefStr(bankHolder)
	return &p, nil
}
