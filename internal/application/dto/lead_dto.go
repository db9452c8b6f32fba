package dto

// CreateLeadRequest manual lead intake from the back office.
type CreateLeadRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	LinkCode      string `json:"linkCode,omitempty"`
	ManagerCode   string `json:"managerCode,omitempty"`
	AgentCode     string `json:"agentCode,omitempty"`
}

// AdvanceLeadRequest moves a lead to the given status.
type AdvanceLeadRequest struct {
	Status string `json:"status"`
}

// LeadResponse is the API view of a lead.
type LeadResponse struct {
	ID               string `json:"id"`
	CustomerName     string `json:"customerName"`
	CustomerPhone    string `json:"customerPhone"`
	Status           string `json:"status"`
	ManagerProfileID string `json:"managerProfileId,omitempty"`
	AgentProfileID   string `json:"agentProfileId,omitempty"`
	LinkID           string `json:"linkId,omitempty"`
	Source           string `json:"source"`
	CreatedAt        string `json:"createdAt"`
}
