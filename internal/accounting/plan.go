package accounting

import "github.com/alexanderramin/punch/internal/domain"

// NextPlannedBreak looks up the entry of plan that follows scopeCount breaks
// already taken in the current scope. ok is false once the plan is exhausted.
func NextPlannedBreak(plan domain.BreakPlan, scopeCount int) (entry domain.BreakPlanEntry, ok bool) {
	return plan.At(scopeCount)
}

// RemainingBreaks returns how many planned breaks are left after scopeCount.
func RemainingBreaks(plan domain.BreakPlan, scopeCount int) int {
	if scopeCount < 0 {
		scopeCount = 0
	}
	if scopeCount >= len(plan) {
		return 0
	}
	return len(plan) - scopeCount
}
