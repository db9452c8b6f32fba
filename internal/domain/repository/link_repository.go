package repository

import (
	"context"

	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// LinkRepository is the persistence port for affiliate referral links.
type LinkRepository interface {
	// CreateBatch inserts a chunk of links. Callers run each chunk in its own
	// transaction to bound lock duration (see partner.GenerateLinks).
	CreateBatch(ctx context.Context, links []*entity.AffiliateLink) error
	GetByCode(ctx context.Context, code string) (*entity.AffiliateLink, error)
	IncrementClick(ctx context.Context, id string) error
	ListByProfile(ctx context.Context, profileID string, limit, offset int) ([]*entity.AffiliateLink, error)
}
