package entity

import (
	"fmt"
	"time"
)

// SettlementStatus closed set of settlement states.
type SettlementStatus string

const (
	SettlementStatusPending  SettlementStatus = "PENDING"
	SettlementStatusApproved SettlementStatus = "APPROVED" // terminal for the period
)

// CanTransition reports whether from -> to is allowed. Approval is the only
// transition; APPROVED is terminal.
func (s SettlementStatus) CanTransition(to SettlementStatus) bool {
	return s == SettlementStatusPending && to == SettlementStatusApproved
}

// Period is a settlement month (year + month).
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses "2026-08" into a Period.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("parse period %q: %w", s, err)
	}
	return PeriodOf(t), nil
}

// String renders "2026-08".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Bounds returns the half-open UTC interval [start, end) of the period.
func (p Period) Bounds() (time.Time, time.Time) {
	start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Settlement aggregates a period's ledger entries into a payable statement.
// One row per period; approving it is terminal and flips IsSettled on every
// aggregated entry.
type Settlement struct {
	ID               string
	Period           Period
	Status           SettlementStatus
	ApproverID       string // admin user who approved; empty while pending
	GrossTotal       int64
	WithholdingTotal int64
	NetPayableTotal  int64
	ApprovedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
