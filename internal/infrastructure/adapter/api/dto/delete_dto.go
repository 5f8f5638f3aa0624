package dto

// DeleteCategoryRequest represents the API request for deleting a budget
// category. NewCategory names the replacement and is mandatory when the
// category still owns transactions.
type DeleteCategoryRequest struct {
	Category    string `json:"category" binding:"required"`
	NewCategory string `json:"new-category,omitempty"`
}

// DeleteRecordRequest represents the API request for deleting a transaction
// or recurring payment by id
type DeleteRecordRequest struct {
	ID uint64 `json:"id" binding:"required"`
}

// DeleteResponse confirms which record was removed
type DeleteResponse struct {
	ID uint64 `json:"id"`
}
