package dto

// OverviewEntry is one of the month's largest transactions
type OverviewEntry struct {
	Name string `json:"name"`
	Cost string `json:"cost"`
	Date string `json:"date"`
}

// OverviewResponse summarizes one calendar month of spending
type OverviewResponse struct {
	Sum        string          `json:"sum"`
	Top        []OverviewEntry `json:"top_3"`
	BeginRange string          `json:"begin_range"`
	EndRange   string          `json:"end_range"`
}

// QueryResponse carries the rows of one of the user's tables
type QueryResponse struct {
	Rows interface{} `json:"rows"`
}

// ResetResponse confirms a completed wipe
type ResetResponse struct {
	Success int `json:"success"`
}
