// Package commission holds the pure breakdown calculator: sale amounts in,
// per-beneficiary ledger drafts out. No persistence, no side effects, so the
// back office can preview a breakdown before confirming a sale and get the
// exact rows that confirmation will write.
package commission

import (
	"github.com/shopspring/decimal"

	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// Rates are decimal fractions of net revenue. See config.CommissionConfig for
// the documented defaults (branch 0.10, agent 0.05, branch direct 0.15,
// withholding 0.033).
type Rates struct {
	Branch       decimal.Decimal
	Agent        decimal.Decimal
	BranchDirect decimal.Decimal
	Withholding  decimal.Decimal
}

// Input to the calculator. Amounts are whole won. Profile IDs are empty when
// the corresponding party is not attached to the sale. The optional rate
// overrides come from the beneficiary profiles and replace the configured
// default for that leg.
type Input struct {
	SaleAmount         int64
	CostAmount         int64
	ManagerProfileID   string
	AgentProfileID     string
	BranchRateOverride *decimal.Decimal
	AgentRateOverride  *decimal.Decimal
}

// Draft is one ledger entry to be written, tagged with beneficiary and type.
type Draft struct {
	ProfileID         string // empty for the HQ leg
	Type              entity.LedgerEntryType
	Amount            int64
	WithholdingAmount int64
}

// Breakdown is the deterministic result of splitting one sale's net revenue.
//
// The manager's leg lands in OverrideCommission on agent sales
// (OVERRIDE_COMMISSION at the branch rate) and in BranchCommission on direct
// manager sales (BRANCH_COMMISSION at the higher direct rate, absorbing the
// agent share). HQRetained is the remainder, so
// BranchCommission + OverrideCommission + SalesCommission + HQRetained ==
// NetRevenue always holds exactly.
type Breakdown struct {
	NetRevenue         int64
	BranchCommission   int64
	OverrideCommission int64
	SalesCommission    int64
	TotalWithholding   int64
	HQRetained         int64
	Entries            []Draft
}

// Calculate splits a sale's net revenue across beneficiaries.
//
// Only non-zero legs produce drafts; a sale with neither manager nor agent is
// a valid house sale and yields the single HQ draft for the full net revenue.
// Every leg is truncated to whole won (floor). Truncation rather than rounding
// is deliberate policy: settled historical ledgers were produced this way and
// must reproduce bit-for-bit.
func Calculate(in Input, rates Rates) (*Breakdown, error) {
	if in.SaleAmount < 0 || in.CostAmount < 0 || in.CostAmount > in.SaleAmount {
		return nil, domain.ErrInvalidInput
	}

	net := in.SaleAmount - in.CostAmount
	netDec := decimal.NewFromInt(net)

	b := &Breakdown{NetRevenue: net}

	hasManager := in.ManagerProfileID != ""
	hasAgent := in.AgentProfileID != ""

	switch {
	case hasManager && hasAgent:
		branchRate := pick(in.BranchRateOverride, rates.Branch)
		agentRate := pick(in.AgentRateOverride, rates.Agent)
		b.OverrideCommission = truncWon(netDec.Mul(branchRate))
		b.SalesCommission = truncWon(netDec.Mul(agentRate))
		b.TotalWithholding = truncWon(decimal.NewFromInt(b.SalesCommission).Mul(rates.Withholding))
	case hasManager:
		// Direct branch-manager sale: the manager's rate absorbs the agent share.
		branchRate := pick(in.BranchRateOverride, rates.BranchDirect)
		b.BranchCommission = truncWon(netDec.Mul(branchRate))
	case hasAgent:
		agentRate := pick(in.AgentRateOverride, rates.Agent)
		b.SalesCommission = truncWon(netDec.Mul(agentRate))
		b.TotalWithholding = truncWon(decimal.NewFromInt(b.SalesCommission).Mul(rates.Withholding))
	}

	b.HQRetained = net - b.BranchCommission - b.OverrideCommission - b.SalesCommission
	if b.HQRetained < 0 {
		// Combined effective rates above 100% would pay out more than net
		// revenue. Misconfigured defaults and profile overrides both land here.
		return nil, domain.ErrInvalidInput
	}

	if b.OverrideCommission > 0 {
		b.Entries = append(b.Entries, Draft{
			ProfileID: in.ManagerProfileID,
			Type:      entity.LedgerTypeOverrideCommission,
			Amount:    b.OverrideCommission,
		})
	}
	if b.BranchCommission > 0 {
		b.Entries = append(b.Entries, Draft{
			ProfileID: in.ManagerProfileID,
			Type:      entity.LedgerTypeBranchCommission,
			Amount:    b.BranchCommission,
		})
	}
	if b.SalesCommission > 0 {
		b.Entries = append(b.Entries, Draft{
			ProfileID:         in.AgentProfileID,
			Type:              entity.LedgerTypeSalesCommission,
			Amount:            b.SalesCommission,
			WithholdingAmount: b.TotalWithholding,
		})
	}
	if b.HQRetained > 0 {
		b.Entries = append(b.Entries, Draft{
			Type:   entity.LedgerTypeHQShare,
			Amount: b.HQRetained,
		})
	}

	return b, nil
}

// truncWon floors a decimal amount to whole won. All amounts here are
// non-negative, so Truncate(0) is floor.
func truncWon(d decimal.Decimal) int64 {
	return d.Truncate(0).IntPart()
}

func pick(override *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return def
}
