package dto

// CreateTransactionRequest represents the API request for recording a
// transaction. Cost is a decimal amount string and may be negative for
// refunds. Date uses the 2006-01-02 layout.
type CreateTransactionRequest struct {
	Name     string `json:"name" binding:"required"`
	Cost     string `json:"cost" binding:"required"`
	Category string `json:"category" binding:"required"`
	Date     string `json:"date" binding:"required"`
}

// CreateTransactionResponse reports the owning category's budget state after
// the transaction accrued. Budget is "unlimited" for Uncategorized and the
// notice is omitted in that case.
type CreateTransactionResponse struct {
	TotalBudget string `json:"totalbudget"`
	Spent       string `json:"spent"`
	Notice      string `json:"notice,omitempty"`
}

// UpdateRequest represents the API request for editing one field of a
// transaction or recurring payment. Table selects the record kind; exactly
// one of the new-value fields decides what changes.
type UpdateRequest struct {
	Table       string  `json:"table" binding:"required,oneof=transactions recurringpayments"`
	ID          uint64  `json:"id" binding:"required"`
	NewName     *string `json:"new-name,omitempty"`
	OldCost     *string `json:"old-cost,omitempty"`
	NewCost     *string `json:"new-cost,omitempty"`
	Category    *string `json:"category,omitempty"`
	OldCategory *string `json:"old-category,omitempty"`
	NewCategory *string `json:"new-category,omitempty"`
	Cost        *string `json:"cost,omitempty"`
	NewDate     *string `json:"new-date,omitempty"`
}

// UpdateResponse echoes the id of the edited record
type UpdateResponse struct {
	ID    uint64 `json:"id"`
	Spent string `json:"spent,omitempty"`
}

// TransactionResponse represents one transaction in API responses
type TransactionResponse struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Cost     string `json:"cost"`
	Category string `json:"category"`
	Date     string `json:"date"`
}
