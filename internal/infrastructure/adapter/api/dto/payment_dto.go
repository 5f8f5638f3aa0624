package dto

// CreatePaymentRequest represents the API request for creating a recurring
// payment. DueDate uses the 2006-01-02 layout.
type CreatePaymentRequest struct {
	Name     string `json:"name" binding:"required"`
	Cost     string `json:"cost" binding:"required"`
	Category string `json:"category" binding:"required"`
	DueDate  string `json:"date" binding:"required"`
}

// CreatePaymentResponse echoes the id of the created payment
type CreatePaymentResponse struct {
	ID uint64 `json:"id"`
}

// PaymentResponse represents one recurring payment in API responses
type PaymentResponse struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Cost     string `json:"cost"`
	Category string `json:"category"`
	DueDate  string `json:"due_date"`
}
