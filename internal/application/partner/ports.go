package partner

import (
	"context"

	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
)

// TxRunner executes fn with user and profile repositories bound to one
// transaction (contract approval creates both rows or neither).
type TxRunner interface {
	RunPartner(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		profileRepo repository.ProfileRepository,
	) error) error
	// RunLinks runs one chunk of a batch link insert in its own transaction.
	RunLinks(ctx context.Context, fn func(linkRepo repository.LinkRepository) error) error
}
