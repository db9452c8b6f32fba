package settlement

import (
	"context"

	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
)

// TxRunner executes fn with settlement and ledger repositories bound to one
// transaction. Approval (status CAS + is_settled flip) must be atomic.
type TxRunner interface {
	RunSettlement(ctx context.Context, fn func(
		settlementRepo repository.SettlementRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}

// SummaryCache is the read-through cache for period summaries. Implementations
// own the TTL; a miss is (nil, false). Staleness is acceptable here, the cache
// never feeds approval math.
type SummaryCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}
