package commerce_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monicajeon28/gmcruise-api/internal/application/commerce"
	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/commission"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

func testRates() commission.Rates {
	return commission.Rates{
		Branch:       decimal.RequireFromString("0.10"),
		Agent:        decimal.RequireFromString("0.05"),
		BranchDirect: decimal.RequireFromString("0.15"),
		Withholding:  decimal.RequireFromString("0.033"),
	}
}

func newConfirmFixture() (*commerce.ConfirmSaleUseCase, *fakeSaleRepo, *fakeLedgerRepo, *fakeProfileRepo) {
	saleRepo := newFakeSaleRepo()
	ledgerRepo := &fakeLedgerRepo{}
	leadRepo := newFakeLeadRepo()
	profileRepo := newFakeProfileRepo()
	tx := &fakeTxRunner{saleRepo: saleRepo, ledgerRepo: ledgerRepo, leadRepo: leadRepo}
	uc := commerce.NewConfirmSaleUseCase(tx, saleRepo, ledgerRepo, profileRepo, testRates())
	return uc, saleRepo, ledgerRepo, profileRepo
}

func pendingSale(id string) *entity.Sale {
	now := time.Now()
	return &entity.Sale{
		ID:               id,
		OrderCode:        "ORD-" + id,
		ProductCode:      "CRUISE-7N",
		SaleAmount:       1_000_000,
		CostAmount:       700_000,
		Headcount:        2,
		Status:           entity.SaleStatusPending,
		ManagerProfileID: "mgr-1",
		AgentProfileID:   "agt-1",
		SaleDate:         now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestConfirm_WritesLedgerEntries(t *testing.T) {
	uc, saleRepo, ledgerRepo, _ := newConfirmFixture()
	require.NoError(t, saleRepo.Create(context.Background(), pendingSale("s1")))

	resp, err := uc.Confirm(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, string(entity.SaleStatusConfirmed), resp.Sale.Status)
	assert.NotEmpty(t, resp.Sale.ConfirmedAt)
	// agent sale: override + sales commission + HQ share
	require.Len(t, resp.Entries, 3)

	byType := map[string]int64{}
	for _, e := range resp.Entries {
		byType[e.Type] = e.Amount
	}
	assert.Equal(t, int64(30_000), byType[string(entity.LedgerTypeOverrideCommission)])
	assert.Equal(t, int64(15_000), byType[string(entity.LedgerTypeSalesCommission)])
	assert.Equal(t, int64(255_000), byType[string(entity.LedgerTypeHQShare)])

	persisted, err := ledgerRepo.ListBySale(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, persisted, 3)
}

func TestConfirm_SecondConfirmConflicts(t *testing.T) {
	uc, saleRepo, ledgerRepo, _ := newConfirmFixture()
	require.NoError(t, saleRepo.Create(context.Background(), pendingSale("s1")))

	_, err := uc.Confirm(context.Background(), "s1")
	require.NoError(t, err)

	_, err = uc.Confirm(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// no extra entries were written
	persisted, err := ledgerRepo.ListBySale(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, persisted, 3)
}

func TestConfirm_ConcurrentConfirmsWriteOnce(t *testing.T) {
	uc, saleRepo, ledgerRepo, _ := newConfirmFixture()
	require.NoError(t, saleRepo.Create(context.Background(), pendingSale("s1")))

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Confirm(context.Background(), "s1")
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrConflict)
		}
	}
	assert.Equal(t, 1, okCount, "exactly one confirmation wins")

	persisted, err := ledgerRepo.ListBySale(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, persisted, 3, "entries written exactly once")
}

func TestConfirm_NotFound(t *testing.T) {
	uc, _, _, _ := newConfirmFixture()
	_, err := uc.Confirm(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_AppliesProfileRateOverrides(t *testing.T) {
	uc, saleRepo, _, profileRepo := newConfirmFixture()

	branchRate := decimal.RequireFromString("0.12")
	agentRate := decimal.RequireFromString("0.07")
	require.NoError(t, profileRepo.Create(context.Background(), &entity.AffiliateProfile{
		ID: "mgr-1", Type: entity.ProfileTypeBranchManager, Status: entity.ProfileStatusActive, BranchRate: &branchRate,
	}))
	require.NoError(t, profileRepo.Create(context.Background(), &entity.AffiliateProfile{
		ID: "agt-1", Type: entity.ProfileTypeSalesAgent, Status: entity.ProfileStatusActive, AgentRate: &agentRate,
	}))
	require.NoError(t, saleRepo.Create(context.Background(), pendingSale("s1")))

	resp, err := uc.Confirm(context.Background(), "s1")
	require.NoError(t, err)

	byType := map[string]int64{}
	for _, e := range resp.Entries {
		byType[e.Type] = e.Amount
	}
	assert.Equal(t, int64(36_000), byType[string(entity.LedgerTypeOverrideCommission)])
	assert.Equal(t, int64(21_000), byType[string(entity.LedgerTypeSalesCommission)])
}

func TestReject_VoidsExistingEntries(t *testing.T) {
	uc, saleRepo, ledgerRepo, _ := newConfirmFixture()
	sale := pendingSale("s1")
	require.NoError(t, saleRepo.Create(context.Background(), sale))

	// an entry that was generated before the rejection
	require.NoError(t, ledgerRepo.Create(context.Background(), &entity.LedgerEntry{
		ID: "e1", SaleID: "s1", Type: entity.LedgerTypeSalesCommission, Amount: 15_000,
	}))

	require.NoError(t, uc.Reject(context.Background(), "s1"))

	stored, err := saleRepo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusRejected, stored.Status)

	entries, err := ledgerRepo.ListBySale(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, entries, 1, "entries are voided, never deleted")
	assert.True(t, entries[0].IsVoided)
}

func TestReject_ConfirmedSaleConflicts(t *testing.T) {
	uc, saleRepo, _, _ := newConfirmFixture()
	require.NoError(t, saleRepo.Create(context.Background(), pendingSale("s1")))

	_, err := uc.Confirm(context.Background(), "s1")
	require.NoError(t, err)

	err = uc.Reject(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPreview_DoesNotPersist(t *testing.T) {
	uc, saleRepo, ledgerRepo, _ := newConfirmFixture()
	require.NoError(t, saleRepo.Create(context.Background(), pendingSale("s1")))

	resp, err := uc.Preview(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, int64(300_000), resp.NetRevenue)
	assert.Equal(t, int64(30_000), resp.OverrideCommission)
	assert.Equal(t, int64(15_000), resp.SalesCommission)
	assert.Equal(t, int64(495), resp.TotalWithholding)
	assert.Equal(t, int64(255_000), resp.HQRetained)

	persisted, err := ledgerRepo.ListBySale(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, persisted)

	stored, err := saleRepo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPending, stored.Status)
}
