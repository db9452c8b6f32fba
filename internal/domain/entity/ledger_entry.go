package entity

import "time"

// LedgerEntryType identifies the beneficiary leg of a commission split.
type LedgerEntryType string

const (
	LedgerTypeHQShare            LedgerEntryType = "HQ_SHARE"
	LedgerTypeBranchCommission   LedgerEntryType = "BRANCH_COMMISSION"
	LedgerTypeOverrideCommission LedgerEntryType = "OVERRIDE_COMMISSION"
	LedgerTypeSalesCommission    LedgerEntryType = "SALES_COMMISSION"
)

// LedgerEntry is one append-only record of a commission amount owed to one
// beneficiary for one sale. After creation only two mutations are permitted:
// IsSettled flips to true when a settlement is approved, and IsVoided flips to
// true when a sale is rejected after entries were mistakenly generated.
// Entries are never deleted.
type LedgerEntry struct {
	ID                string
	SaleID            string
	ProfileID         string // empty for HQ_SHARE (headquarters has no affiliate profile)
	Type              LedgerEntryType
	Amount            int64 // whole won
	WithholdingAmount int64 // 3.3% freelance withholding, agent legs only
	IsSettled         bool
	IsVoided          bool
	SettlementID      string // set when aggregated into an approved settlement
	CreatedAt         time.Time
}

// NetPayable returns Amount - WithholdingAmount.
func (e *LedgerEntry) NetPayable() int64 {
	return e.Amount - e.WithholdingAmount
}
