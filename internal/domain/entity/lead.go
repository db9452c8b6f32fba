package entity

import "time"

// LeadStatus closed set of lead states.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusQualified LeadStatus = "QUALIFIED"
	LeadStatusConverted LeadStatus = "CONVERTED"
	LeadStatusPurchased LeadStatus = "PURCHASED"
	LeadStatusLost      LeadStatus = "LOST"
	LeadStatusCancelled LeadStatus = "CANCELLED"
)

// leadTransitions: the happy path advances monotonically; LOST/CANCELLED are
// reachable from any non-terminal state. A purchase webhook may also jump a
// lead straight to PURCHASED from any live state.
var leadTransitions = map[LeadStatus][]LeadStatus{
	LeadStatusNew:       {LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusPurchased, LeadStatusLost, LeadStatusCancelled},
	LeadStatusContacted: {LeadStatusQualified, LeadStatusConverted, LeadStatusPurchased, LeadStatusLost, LeadStatusCancelled},
	LeadStatusQualified: {LeadStatusConverted, LeadStatusPurchased, LeadStatusLost, LeadStatusCancelled},
	LeadStatusConverted: {LeadStatusPurchased, LeadStatusLost, LeadStatusCancelled},
}

// CanTransition reports whether from -> to is an allowed lead transition.
func (s LeadStatus) CanTransition(to LeadStatus) bool {
	for _, next := range leadTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the state admits no further transitions.
func (s LeadStatus) Terminal() bool {
	return len(leadTransitions[s]) == 0
}

// Lead is a prospective or converted customer attributed to an affiliate link
// or partner. CustomerPhone holds the normalized number and is the natural
// dedup key across repeated submissions.
type Lead struct {
	ID               string
	CustomerName     string
	CustomerPhone    string // normalized (pkg/phone), unique
	Status           LeadStatus
	ManagerProfileID string
	AgentProfileID   string
	LinkID           string
	Provenance       Provenance
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
