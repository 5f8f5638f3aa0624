package dto

// CreateCategoryRequest represents the API request for creating a budget
// category. Budget is a decimal amount string such as "200.00".
type CreateCategoryRequest struct {
	Name   string `json:"name" binding:"required"`
	Budget string `json:"budget" binding:"required"`
}

// UpdateCategoryBudgetRequest represents the API request for replacing a
// category's budget ceiling
type UpdateCategoryBudgetRequest struct {
	Category string `json:"category" binding:"required"`
	Budget   string `json:"budget" binding:"required"`
}

// CategoryResponse represents one budget category in API responses. Budget
// is "unlimited" for the reserved Uncategorized category.
type CategoryResponse struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Budget string `json:"totalbudget"`
	Spent  string `json:"spent"`
}

// UpdateCategoryBudgetResponse echoes the spend total so the client can
// evaluate the new budget immediately
type UpdateCategoryBudgetResponse struct {
	Spent  string `json:"spent"`
	Notice string `json:"notice,omitempty"`
}
