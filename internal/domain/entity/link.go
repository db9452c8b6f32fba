package entity

import "time"

// AffiliateLink is a trackable referral link attributing leads to a partner.
// Generated in batches by the back office (chunked, see partner.GenerateLinks).
type AffiliateLink struct {
	ID               string
	Code             string // short unique slug embedded in the URL
	ManagerProfileID string
	AgentProfileID   string
	Campaign         string
	ClickCount       int64
	CreatedAt        time.Time
}
