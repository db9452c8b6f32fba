package dto

// PayoutRow is one beneficiary line of the settlement export, consumed by the
// external spreadsheet collaborator.
type PayoutRow struct {
	Role        string `json:"role"` // HQ | BRANCH_MANAGER | SALES_AGENT
	ProfileID   string `json:"profileId,omitempty"`
	ProfileCode string `json:"profileCode,omitempty"`
	Gross       int64  `json:"gross"`
	Withholding int64  `json:"withholding"`
	NetPayable  int64  `json:"netPayable"`
	BankName    string `json:"bankName,omitempty"`
	BankAccount string `json:"bankAccount,omitempty"`
	BankHolder  string `json:"bankHolder,omitempty"`
	Settled     bool   `json:"settled"`
}

// SettlementSummaryResponse groups a period's totals per role.
type SettlementSummaryResponse struct {
	Period           string      `json:"period"`
	Status           string      `json:"status"`
	GrossTotal       int64       `json:"grossTotal"`
	WithholdingTotal int64       `json:"withholdingTotal"`
	NetPayableTotal  int64       `json:"netPayableTotal"`
	HQ               []PayoutRow `json:"hq"`
	BranchManagers   []PayoutRow `json:"branchManagers"`
	SalesAgents      []PayoutRow `json:"salesAgents"`
}

// SettlementResponse is the API view of a settlement row.
type SettlementResponse struct {
	ID               string `json:"id"`
	Period           string `json:"period"`
	Status           string `json:"status"`
	ApproverID       string `json:"approverId,omitempty"`
	GrossTotal       int64  `json:"grossTotal"`
	WithholdingTotal int64  `json:"withholdingTotal"`
	NetPayableTotal  int64  `json:"netPayableTotal"`
	ApprovedAt       string `json:"approvedAt,omitempty"`
}
