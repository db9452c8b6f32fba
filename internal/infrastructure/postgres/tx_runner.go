package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/monicajeon28/gmcruise-api/internal/application/commerce"
	"github.com/monicajeon28/gmcruise-api/internal/application/partner"
	"github.com/monicajeon28/gmcruise-api/internal/application/settlement"
	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
)

// Ensure TxRunner implements every application transaction port.
var _ commerce.TxRunner = (*TxRunner)(nil)
var _ settlement.TxRunner = (*TxRunner)(nil)
var _ partner.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner with the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run starts a transaction, executes fn with sale/ledger/lead repos bound to
// the tx, and commits or rolls back.
func (r *TxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	ledgerRepo repository.LedgerRepository,
	leadRepo repository.LeadRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSaleRepository(tx), NewLedgerRepository(tx), NewLeadRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSettlement starts a transaction with settlement and ledger repos
// (approval: status CAS plus is_settled flip).
func (r *TxRunner) RunSettlement(ctx context.Context, fn func(
	settlementRepo repository.SettlementRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSettlementRepository(tx), NewLedgerRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPartner starts a transaction with user and profile repos (contract
// approval writes both rows or neither).
func (r *TxRunner) RunPartner(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewProfileRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLinks starts a transaction with the link repo (one chunk of a batch insert).
func (r *TxRunner) RunLinks(ctx context.Context, fn func(linkRepo repository.LinkRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLinkRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
