package repository

import (
	"context"

	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// LeadRepository is the persistence port for Lead.
type LeadRepository interface {
	// Create inserts the lead. Returns domain.ErrDuplicate when the normalized
	// phone already exists.
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	GetByPhone(ctx context.Context, normalizedPhone string) (*entity.Lead, error)
	// TransitionStatus compare-and-swaps the status column; false when the
	// lead was not in `from`.
	TransitionStatus(ctx context.Context, id string, from, to entity.LeadStatus) (bool, error)
	// Update persists attribution and name changes (webhook backfill).
	Update(ctx context.Context, lead *entity.Lead) error
	ListByStatus(ctx context.Context, status entity.LeadStatus, limit, offset int) ([]*entity.Lead, error)
}
