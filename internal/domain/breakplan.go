package domain

import (
	"fmt"
	"strings"
)

// BreakPlanEntry is one planned break in the ordered plan.
type BreakPlanEntry struct {
	Label   string
	Minutes int
	Kind    BreakKind
}

// DisplayLabel renders the entry as "Lunch (30 min)".
func (e BreakPlanEntry) DisplayLabel() string {
	return PlanLabel(e.Label, e.Minutes)
}

// BreakPlan is the ordered sequence of breaks a worker may take per scope.
type BreakPlan []BreakPlanEntry

// DefaultBreakPlan is 15 -> 30 (lunch) -> 15.
var DefaultBreakPlan = BreakPlan{
	{Label: "Break 1", Minutes: 15, Kind: BreakKindBreak},
	{Label: "Lunch", Minutes: 30, Kind: BreakKindLunch},
	{Label: "Break 2", Minutes: 15, Kind: BreakKindBreak},
}

// At returns the entry for a zero-based index. ok is false once the plan is
// exhausted or the index is negative.
func (p BreakPlan) At(index int) (entry BreakPlanEntry, ok bool) {
	if index < 0 || index >= len(p) {
		return BreakPlanEntry{}, false
	}
	return p[index], true
}

// ForSequence returns the entry selected by a 1-based sequence number.
func (p BreakPlan) ForSequence(seq int) (BreakPlanEntry, bool) {
	return p.At(seq - 1)
}

// Summary renders the planned minutes, e.g. "15 / 30 / 15".
func (p BreakPlan) Summary() string {
	parts := make([]string, len(p))
	for i, e := range p {
		parts[i] = fmt.Sprintf("%d", e.Minutes)
	}
	return strings.Join(parts, " / ")
}

// PlanLabel formats a break label with its planned length.
func PlanLabel(label string, minutes int) string {
	return fmt.Sprintf("%s (%d min)", label, minutes)
}
