package repository

import (
	"context"

	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// ProfileRepository is the persistence port for AffiliateProfile.
type ProfileRepository interface {
	// Create inserts the profile. Returns domain.ErrDuplicate when the
	// affiliate code is taken.
	Create(ctx context.Context, p *entity.AffiliateProfile) error
	GetByID(ctx context.Context, id string) (*entity.AffiliateProfile, error)
	GetByCode(ctx context.Context, code string) (*entity.AffiliateProfile, error)
	GetByUserID(ctx context.Context, userID string) (*entity.AffiliateProfile, error)
	ListByManager(ctx context.Context, managerProfileID string) ([]*entity.AffiliateProfile, error)
	Update(ctx context.Context, p *entity.AffiliateProfile) error
}
