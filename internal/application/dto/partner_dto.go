package dto

// ApproveContractRequest creates the partner's user account and affiliate
// profile in one step (back-office contract approval).
type ApproveContractRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	ProfileType string `json:"profileType"` // BRANCH_MANAGER | SALES_AGENT
	Code        string `json:"code"`        // affiliate code; generated when empty
	ManagerCode string `json:"managerCode,omitempty"` // required for agents
	BankName    string `json:"bankName,omitempty"`
	BankAccount string `json:"bankAccount,omitempty"`
	BankHolder  string `json:"bankHolder,omitempty"`
}

// ProfileResponse is the API view of an affiliate profile.
type ProfileResponse struct {
	ID               string `json:"id"`
	UserID           string `json:"userId"`
	Type             string `json:"type"`
	Code             string `json:"code"`
	Status           string `json:"status"`
	ManagerProfileID string `json:"managerProfileId,omitempty"`
	BankName         string `json:"bankName,omitempty"`
	BankAccount      string `json:"bankAccount,omitempty"`
	BankHolder       string `json:"bankHolder,omitempty"`
}

// GenerateLinksRequest asks for a batch of referral links.
type GenerateLinksRequest struct {
	Count       int    `json:"count"`
	Campaign    string `json:"campaign,omitempty"`
	ManagerCode string `json:"managerCode,omitempty"`
	AgentCode   string `json:"agentCode,omitempty"`
}

// LinkResponse is the API view of a referral link.
type LinkResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Campaign string `json:"campaign,omitempty"`
	Clicks   int64  `json:"clicks"`
}

// GenerateLinksResponse returns the created batch.
type GenerateLinksResponse struct {
	Links []LinkResponse `json:"links"`
}
