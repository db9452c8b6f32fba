package dto

// PaymentWebhookRequest is the payload the payment gateway posts on
// confirmation. Amounts are whole won.
type PaymentWebhookRequest struct {
	OrderCode     string `json:"orderCode"`
	TransactionID string `json:"transactionId"`
	ProductCode   string `json:"productCode"`
	SaleAmount    int64  `json:"saleAmount"`
	CostAmount    int64  `json:"costAmount"`
	Headcount     int    `json:"headcount"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	LinkCode      string `json:"linkCode,omitempty"`
}

// PaymentWebhookResponse reports what the delivery did. Replays return the
// existing sale with created=false.
type PaymentWebhookResponse struct {
	SaleID  string `json:"saleId"`
	LeadID  string `json:"leadId,omitempty"`
	Created bool   `json:"created"`
}

// SaleResponse is the API view of a sale.
type SaleResponse struct {
	ID               string `json:"id"`
	OrderCode        string `json:"orderCode"`
	ProductCode      string `json:"productCode"`
	SaleAmount       int64  `json:"saleAmount"`
	CostAmount       int64  `json:"costAmount"`
	NetRevenue       int64  `json:"netRevenue"`
	Headcount        int    `json:"headcount"`
	Status           string `json:"status"`
	ManagerProfileID string `json:"managerProfileId,omitempty"`
	AgentProfileID   string `json:"agentProfileId,omitempty"`
	LeadID           string `json:"leadId,omitempty"`
	SaleDate         string `json:"saleDate"`
	ConfirmedAt      string `json:"confirmedAt,omitempty"`
}

// LedgerEntryResponse is the API view of one ledger row.
type LedgerEntryResponse struct {
	ID                string `json:"id"`
	SaleID            string `json:"saleId"`
	ProfileID         string `json:"profileId,omitempty"`
	Type              string `json:"type"`
	Amount            int64  `json:"amount"`
	WithholdingAmount int64  `json:"withholdingAmount"`
	NetPayable        int64  `json:"netPayable"`
	IsSettled         bool   `json:"isSettled"`
	IsVoided          bool   `json:"isVoided"`
}

// BreakdownResponse previews a commission split without persisting anything.
type BreakdownResponse struct {
	NetRevenue         int64                 `json:"netRevenue"`
	BranchCommission   int64                 `json:"branchCommission"`
	OverrideCommission int64                 `json:"overrideCommission"`
	SalesCommission    int64                 `json:"salesCommission"`
	TotalWithholding   int64                 `json:"totalWithholding"`
	HQRetained         int64                 `json:"hqRetained"`
	Entries            []LedgerEntryResponse `json:"entries"`
}

// ConfirmSaleResponse returns the confirmed sale plus the entries written.
type ConfirmSaleResponse struct {
	Sale    SaleResponse          `json:"sale"`
	Entries []LedgerEntryResponse `json:"entries"`
}
