package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile types and states.
const (
	ProfileTypeBranchManager = "BRANCH_MANAGER"
	ProfileTypeSalesAgent    = "SALES_AGENT"

	ProfileStatusActive   = "ACTIVE"
	ProfileStatusInactive = "INACTIVE"
)

// AffiliateProfile is a partner in the sales network, owned 1:1 by a User and
// created at contract approval. A SALES_AGENT points to at most one active
// BRANCH_MANAGER (ManagerProfileID), the override-commission recipient.
//
// BranchRate/AgentRate optionally override the configured default rates for
// this profile's sales; nil means use the defaults.
type AffiliateProfile struct {
	ID               string
	UserID           string
	Type             string // BRANCH_MANAGER | SALES_AGENT
	Code             string // affiliate code, unique
	Status           string // ACTIVE | INACTIVE
	ManagerProfileID string // agents only
	BranchRate       *decimal.Decimal
	AgentRate        *decimal.Decimal

	// Payout destination for the settlement export.
	BankName    string
	BankAccount string
	BankHolder  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the profile may receive new commission.
func (p *AffiliateProfile) IsActive() bool {
	return p.Status == ProfileStatusActive
}
