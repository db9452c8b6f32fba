package entity

import "time"

// SaleStatus closed set of sale states.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusConfirmed SaleStatus = "CONFIRMED" // terminal; sole trigger for ledger generation
	SaleStatusRejected  SaleStatus = "REJECTED"  // terminal; never generates ledger entries
	SaleStatusCancelled SaleStatus = "CANCELLED" // terminal
)

// saleTransitions is the allowed transition table. Absent key = terminal state.
var saleTransitions = map[SaleStatus][]SaleStatus{
	SaleStatusPending: {SaleStatusConfirmed, SaleStatusRejected, SaleStatusCancelled},
}

// CanTransition reports whether from -> to is an allowed sale transition.
func (s SaleStatus) CanTransition(to SaleStatus) bool {
	for _, next := range saleTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the state admits no further transitions.
func (s SaleStatus) Terminal() bool {
	return len(saleTransitions[s]) == 0
}

// Sale is one transaction record, immutable once confirmed except for the
// status flag itself. NetRevenue is derived (SaleAmount - CostAmount) and
// recomputed, never stored independently, so the invariant cannot drift.
type Sale struct {
	ID               string
	OrderCode        string // external payment-gateway order code; webhook dedup key (unique)
	ProductCode      string
	SaleAmount       int64 // whole won
	CostAmount       int64
	Headcount        int
	Status           SaleStatus
	ManagerProfileID string // empty when no branch manager is attached
	AgentProfileID   string // empty when no sales agent is attached
	LeadID           string
	Provenance       Provenance
	SaleDate         time.Time
	ConfirmedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NetRevenue returns SaleAmount - CostAmount.
func (s *Sale) NetRevenue() int64 {
	return s.SaleAmount - s.CostAmount
}
