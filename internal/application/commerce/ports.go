package commerce

import (
	"context"

	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
)

// TxRunner executes fn with sale, ledger and lead repositories bound to one
// database transaction. Any error from fn rolls the whole write back; a sale
// confirmation writes all of its ledger entries or none of them.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		ledgerRepo repository.LedgerRepository,
		leadRepo repository.LeadRepository,
	) error) error
}
