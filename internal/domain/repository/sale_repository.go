package repository

import (
	"context"
	"time"

	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// SaleRepository is the persistence port for Sale.
type SaleRepository interface {
	// Create inserts the sale. Returns domain.ErrDuplicate when the external
	// order code already exists (webhook replay).
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetByOrderCode(ctx context.Context, orderCode string) (*entity.Sale, error)
	// TransitionStatus performs a compare-and-swap on the status column:
	// UPDATE ... WHERE id AND status=from. Returns false when zero rows were
	// touched (the sale was not in `from`), which callers map to ErrConflict.
	TransitionStatus(ctx context.Context, id string, from, to entity.SaleStatus, at time.Time) (bool, error)
	List(ctx context.Context, status entity.SaleStatus, limit, offset int) ([]*entity.Sale, error)
}
