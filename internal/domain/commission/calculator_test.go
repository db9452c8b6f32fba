package commission_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/commission"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// These vectors mirror settled production ledgers. If any of them fails, the
// split or the truncation policy changed and newly generated entries would no
// longer match historically settled totals.
// ──────────────────────────────────────────────────────────────────────────────

func defaultRates() commission.Rates {
	return commission.Rates{
		Branch:       decimal.RequireFromString("0.10"),
		Agent:        decimal.RequireFromString("0.05"),
		BranchDirect: decimal.RequireFromString("0.15"),
		Withholding:  decimal.RequireFromString("0.033"),
	}
}

func TestCalculate_ManagerAndAgent(t *testing.T) {
	b, err := commission.Calculate(commission.Input{
		SaleAmount:       1_000_000,
		CostAmount:       700_000,
		ManagerProfileID: "mgr-1",
		AgentProfileID:   "agt-1",
	}, defaultRates())
	require.NoError(t, err)

	assert.Equal(t, int64(300_000), b.NetRevenue)
	assert.Equal(t, int64(30_000), b.OverrideCommission)
	assert.Equal(t, int64(15_000), b.SalesCommission)
	assert.Equal(t, int64(495), b.TotalWithholding) // 15,000 * 0.033 truncated
	assert.Equal(t, int64(0), b.BranchCommission)
	assert.Equal(t, int64(255_000), b.HQRetained)

	require.Len(t, b.Entries, 3)
	assert.Equal(t, entity.LedgerTypeOverrideCommission, b.Entries[0].Type)
	assert.Equal(t, "mgr-1", b.Entries[0].ProfileID)
	assert.Equal(t, entity.LedgerTypeSalesCommission, b.Entries[1].Type)
	assert.Equal(t, "agt-1", b.Entries[1].ProfileID)
	assert.Equal(t, int64(495), b.Entries[1].WithholdingAmount)
	assert.Equal(t, int64(14_505), (&entity.LedgerEntry{Amount: b.Entries[1].Amount, WithholdingAmount: b.Entries[1].WithholdingAmount}).NetPayable())
	assert.Equal(t, entity.LedgerTypeHQShare, b.Entries[2].Type)
	assert.Equal(t, "", b.Entries[2].ProfileID)
}

func TestCalculate_ManagerOnlyDirectSale(t *testing.T) {
	b, err := commission.Calculate(commission.Input{
		SaleAmount:       1_000_000,
		CostAmount:       700_000,
		ManagerProfileID: "mgr-1",
	}, defaultRates())
	require.NoError(t, err)

	assert.Equal(t, int64(45_000), b.BranchCommission) // 15%, absorbs the agent share
	assert.Equal(t, int64(0), b.SalesCommission)
	assert.Equal(t, int64(0), b.TotalWithholding)
	assert.Equal(t, int64(0), b.OverrideCommission)
	assert.Equal(t, int64(255_000), b.HQRetained)
	require.Len(t, b.Entries, 2)
	assert.Equal(t, entity.LedgerTypeBranchCommission, b.Entries[0].Type)
}

func TestCalculate_HouseSale(t *testing.T) {
	b, err := commission.Calculate(commission.Input{
		SaleAmount: 500_000,
		CostAmount: 400_000,
	}, defaultRates())
	require.NoError(t, err)

	assert.Equal(t, int64(100_000), b.HQRetained)
	require.Len(t, b.Entries, 1)
	assert.Equal(t, entity.LedgerTypeHQShare, b.Entries[0].Type)
	assert.Equal(t, int64(100_000), b.Entries[0].Amount)
}

func TestCalculate_AgentOnly(t *testing.T) {
	b, err := commission.Calculate(commission.Input{
		SaleAmount:     1_000_000,
		CostAmount:     700_000,
		AgentProfileID: "agt-1",
	}, defaultRates())
	require.NoError(t, err)

	assert.Equal(t, int64(15_000), b.SalesCommission)
	assert.Equal(t, int64(495), b.TotalWithholding)
	assert.Equal(t, int64(285_000), b.HQRetained)
	require.Len(t, b.Entries, 2)
}

func TestCalculate_RateOverrides(t *testing.T) {
	branch := decimal.RequireFromString("0.12")
	agent := decimal.RequireFromString("0.07")
	b, err := commission.Calculate(commission.Input{
		SaleAmount:         1_000_000,
		CostAmount:         700_000,
		ManagerProfileID:   "mgr-1",
		AgentProfileID:     "agt-1",
		BranchRateOverride: &branch,
		AgentRateOverride:  &agent,
	}, defaultRates())
	require.NoError(t, err)

	assert.Equal(t, int64(36_000), b.OverrideCommission)
	assert.Equal(t, int64(21_000), b.SalesCommission)
	assert.Equal(t, int64(693), b.TotalWithholding) // 21,000 * 0.033
}

func TestCalculate_TruncationIsFloor(t *testing.T) {
	// net = 99,999; agent leg = 4,999.95 -> 4,999; withholding = 164.967 -> 164
	b, err := commission.Calculate(commission.Input{
		SaleAmount:     99_999,
		CostAmount:     0,
		AgentProfileID: "agt-1",
	}, defaultRates())
	require.NoError(t, err)

	assert.Equal(t, int64(4_999), b.SalesCommission)
	assert.Equal(t, int64(164), b.TotalWithholding)
}

func TestCalculate_Conservation(t *testing.T) {
	rates := defaultRates()
	cases := []commission.Input{
		{SaleAmount: 1, CostAmount: 0, ManagerProfileID: "m", AgentProfileID: "a"},
		{SaleAmount: 999_999, CostAmount: 1, ManagerProfileID: "m", AgentProfileID: "a"},
		{SaleAmount: 1_234_567, CostAmount: 765_432, ManagerProfileID: "m"},
		{SaleAmount: 88_888_888, CostAmount: 11_111_111, AgentProfileID: "a"},
		{SaleAmount: 700_000, CostAmount: 700_000, ManagerProfileID: "m", AgentProfileID: "a"},
	}
	for _, in := range cases {
		b, err := commission.Calculate(in, rates)
		require.NoError(t, err)

		var sum int64
		for _, e := range b.Entries {
			sum += e.Amount
		}
		assert.Equal(t, b.NetRevenue, sum, "money created or destroyed for %+v", in)
		assert.Equal(t, b.NetRevenue, in.SaleAmount-in.CostAmount)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	in := commission.Input{
		SaleAmount:       1_000_000,
		CostAmount:       654_321,
		ManagerProfileID: "mgr-1",
		AgentProfileID:   "agt-1",
	}
	first, err := commission.Calculate(in, defaultRates())
	require.NoError(t, err)
	second, err := commission.Calculate(in, defaultRates())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculate_InvalidInput(t *testing.T) {
	rates := defaultRates()

	_, err := commission.Calculate(commission.Input{SaleAmount: -1}, rates)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = commission.Calculate(commission.Input{SaleAmount: 100, CostAmount: -5}, rates)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// cost above sale would mean negative net revenue; rejected, never clamped
	_, err = commission.Calculate(commission.Input{SaleAmount: 100, CostAmount: 200}, rates)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCalculate_RatesAboveNetRevenueRejected(t *testing.T) {
	rates := defaultRates()

	// Overrides whose sum passes 100% would draft entries paying out more
	// than net revenue; rejected before any draft is produced.
	branch := decimal.RequireFromString("0.90")
	agent := decimal.RequireFromString("0.70")
	_, err := commission.Calculate(commission.Input{
		SaleAmount:         1_000_000,
		CostAmount:         700_000,
		ManagerProfileID:   "mgr-1",
		AgentProfileID:     "agt-1",
		BranchRateOverride: &branch,
		AgentRateOverride:  &agent,
	}, rates)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Same for a single oversized override on a direct manager sale.
	direct := decimal.RequireFromString("1.50")
	_, err = commission.Calculate(commission.Input{
		SaleAmount:         1_000_000,
		CostAmount:         700_000,
		ManagerProfileID:   "mgr-1",
		BranchRateOverride: &direct,
	}, rates)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Exactly 100% is fine: everything pays out, HQ retains zero.
	half := decimal.RequireFromString("0.50")
	b, err := commission.Calculate(commission.Input{
		SaleAmount:         1_000_000,
		CostAmount:         700_000,
		ManagerProfileID:   "mgr-1",
		AgentProfileID:     "agt-1",
		BranchRateOverride: &half,
		AgentRateOverride:  &half,
	}, rates)
	require.NoError(t, err)
	assert.Equal(t, int64(0), b.HQRetained)
	require.Len(t, b.Entries, 2)
	assert.Equal(t, b.NetRevenue, b.Entries[0].Amount+b.Entries[1].Amount)
}

func TestCalculate_ZeroNetRevenue(t *testing.T) {
	b, err := commission.Calculate(commission.Input{
		SaleAmount:       700_000,
		CostAmount:       700_000,
		ManagerProfileID: "m",
		AgentProfileID:   "a",
	}, defaultRates())
	require.NoError(t, err)
	assert.Empty(t, b.Entries) // no non-zero legs, nothing to write
	assert.Equal(t, int64(0), b.HQRetained)
}
