package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

func TestSaleTransitions(t *testing.T) {
	assert.True(t, entity.SaleStatusPending.CanTransition(entity.SaleStatusConfirmed))
	assert.True(t, entity.SaleStatusPending.CanTransition(entity.SaleStatusRejected))
	assert.True(t, entity.SaleStatusPending.CanTransition(entity.SaleStatusCancelled))

	// CONFIRMED and REJECTED are terminal
	assert.False(t, entity.SaleStatusConfirmed.CanTransition(entity.SaleStatusRejected))
	assert.False(t, entity.SaleStatusConfirmed.CanTransition(entity.SaleStatusPending))
	assert.False(t, entity.SaleStatusRejected.CanTransition(entity.SaleStatusConfirmed))
	assert.True(t, entity.SaleStatusConfirmed.Terminal())
	assert.True(t, entity.SaleStatusRejected.Terminal())
	assert.False(t, entity.SaleStatusPending.Terminal())
}

func TestLeadTransitions_HappyPath(t *testing.T) {
	path := []entity.LeadStatus{
		entity.LeadStatusNew,
		entity.LeadStatusContacted,
		entity.LeadStatusQualified,
		entity.LeadStatusConverted,
		entity.LeadStatusPurchased,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, path[i].CanTransition(path[i+1]), "%s -> %s", path[i], path[i+1])
	}
}

func TestLeadTransitions_NoBackwardMoves(t *testing.T) {
	assert.False(t, entity.LeadStatusQualified.CanTransition(entity.LeadStatusNew))
	assert.False(t, entity.LeadStatusConverted.CanTransition(entity.LeadStatusContacted))
	assert.False(t, entity.LeadStatusPurchased.CanTransition(entity.LeadStatusConverted))
}

func TestLeadTransitions_LostCancelledFromAnyLiveState(t *testing.T) {
	live := []entity.LeadStatus{
		entity.LeadStatusNew,
		entity.LeadStatusContacted,
		entity.LeadStatusQualified,
		entity.LeadStatusConverted,
	}
	for _, from := range live {
		assert.True(t, from.CanTransition(entity.LeadStatusLost), "from %s", from)
		assert.True(t, from.CanTransition(entity.LeadStatusCancelled), "from %s", from)
	}

	// terminals stay terminal
	for _, terminal := range []entity.LeadStatus{entity.LeadStatusPurchased, entity.LeadStatusLost, entity.LeadStatusCancelled} {
		assert.True(t, terminal.Terminal())
	}
}

func TestLeadTransitions_WebhookJumpToPurchased(t *testing.T) {
	// a purchase webhook may move any live lead straight to PURCHASED
	for _, from := range []entity.LeadStatus{entity.LeadStatusNew, entity.LeadStatusContacted, entity.LeadStatusQualified} {
		assert.True(t, from.CanTransition(entity.LeadStatusPurchased), "from %s", from)
	}
}

func TestSettlementTransitions(t *testing.T) {
	assert.True(t, entity.SettlementStatusPending.CanTransition(entity.SettlementStatusApproved))
	assert.False(t, entity.SettlementStatusApproved.CanTransition(entity.SettlementStatusPending))
	assert.False(t, entity.SettlementStatusApproved.CanTransition(entity.SettlementStatusApproved))
}

func TestPeriod(t *testing.T) {
	p, err := entity.ParsePeriod("2026-08")
	assert.NoError(t, err)
	assert.Equal(t, "2026-08", p.String())

	start, end := p.Bounds()
	assert.Equal(t, "2026-08-01", start.Format("2006-01-02"))
	assert.Equal(t, "2026-09-01", end.Format("2006-01-02"))

	_, err = entity.ParsePeriod("08/2026")
	assert.Error(t, err)
}

func TestProvenanceValid(t *testing.T) {
	assert.True(t, entity.Provenance{Source: entity.ProvenanceWebhookImport}.Valid())
	assert.True(t, entity.Provenance{Source: entity.ProvenanceTripAssignment}.Valid())
	assert.False(t, entity.Provenance{Source: "csv-import"}.Valid())
	assert.False(t, entity.Provenance{}.Valid())
}
