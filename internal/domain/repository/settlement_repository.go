package repository

import (
	"context"
	"time"

	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// SettlementRepository is the persistence port for monthly settlements.
type SettlementRepository interface {
	// Create inserts a PENDING settlement for the period. Returns
	// domain.ErrDuplicate when the period already has one (unique on period).
	Create(ctx context.Context, s *entity.Settlement) error
	GetByID(ctx context.Context, id string) (*entity.Settlement, error)
	GetByPeriod(ctx context.Context, p entity.Period) (*entity.Settlement, error)
	// Approve performs the compare-and-swap PENDING -> APPROVED, stamping
	// approver, totals and timestamp. Returns false when the settlement was
	// not PENDING (concurrent approval), which callers map to ErrAlreadySettled.
	Approve(ctx context.Context, id, approverID string, gross, withholding, netPayable int64, at time.Time) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Settlement, error)
}
