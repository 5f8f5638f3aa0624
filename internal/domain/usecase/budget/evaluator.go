package budget

import (
	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
)

// Notice is the highest threshold a category's spending has crossed
type Notice int

const (
	// NoticeNone means spending is below every threshold
	NoticeNone Notice = iota
	// NoticeOver50 means at least half the budget is spent
	NoticeOver50
	// NoticeOver75 means at least three quarters of the budget is spent
	NoticeOver75
	// NoticeOver100 means the budget is overspent
	NoticeOver100
)

// String returns the wire name of the notice
func (n Notice) String() string {
	switch n {
	case NoticeOver100:
		return "over_budget"
	case NoticeOver75:
		return "over_75"
	case NoticeOver50:
		return "over_50"
	default:
		return "none"
	}
}

// Message returns the user-facing text for the notice, empty for none
func (n Notice) Message() string {
	switch n {
	case NoticeOver100:
		return "You have overspent this category's budget!"
	case NoticeOver75:
		return "You have spent over 75% of this category's budget."
	case NoticeOver50:
		return "You have spent over 50% of this category's budget."
	default:
		return ""
	}
}

// Report is the result of evaluating a category's spending against its budget
type Report struct {
	Remaining int64 // cents; negative when overspent
	Notice    Notice
}

// FormattedRemaining returns the remaining budget as a decimal string
func (r Report) FormattedRemaining() string {
	return entity.FormatCents(r.Remaining)
}

// Evaluate computes the remaining budget and the single highest-tier notice
// for a category. Thresholds: strictly over the budget raises the overspend
// notice; at or above 75% and 50% raise the lower tiers. Pure function;
// the caller guarantees totalBudget > 0 and never evaluates the unbounded
// Uncategorized category.
func Evaluate(totalBudget, spent int64) Report {
	report := Report{Remaining: totalBudget - spent}

	// Integer cents make the threshold checks exact without division.
	switch {
	case spent > totalBudget:
		report.Notice = NoticeOver100
	case 4*spent >= 3*totalBudget:
		report.Notice = NoticeOver75
	case 2*spent >= totalBudget:
		report.Notice = NoticeOver50
	default:
		report.Notice = NoticeNone
	}

	return report
}
