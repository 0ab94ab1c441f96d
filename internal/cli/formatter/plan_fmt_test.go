package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/ledger"
)

func TestNextBreakText(t *testing.T) {
	lunch := domain.DefaultBreakPlan[1]
	active := domain.BreakRecord{Label: "Break 1", PlannedMinutes: 15, Sequence: 1}

	tests := []struct {
		name string
		nb   ledger.NextBreak
		want string
	}{
		{"off", ledger.NextBreak{Status: domain.StatusOff}, "Next break: —"},
		{"next", ledger.NextBreak{Status: domain.StatusWorking, Next: &lunch, Plan: domain.DefaultBreakPlan}, "Next break: Lunch (30 min) · plan: 15 / 30 / 15"},
		{"exhausted", ledger.NextBreak{Status: domain.StatusWorking, Exhausted: true}, "Next break: none (plan complete)"},
		{"on break", ledger.NextBreak{Status: domain.StatusOnBreak, Active: &active}, "On break: Break 1 (15 min)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextBreakText(tt.nb))
			assert.Equal(t, tt.want, stripANSI(NextBreakStyled(tt.nb)))
		})
	}
}

func TestFormatPlan_States(t *testing.T) {
	lunch := domain.DefaultBreakPlan[1]
	nb := ledger.NextBreak{
		Status:    domain.StatusWorking,
		Next:      &lunch,
		Sequence:  2,
		Taken:     1,
		Remaining: 2,
		Plan:      domain.DefaultBreakPlan,
	}
	out := stripANSI(FormatPlan(nb, domain.BreakScopeSession))

	assert.Contains(t, out, "BREAK PLAN")
	assert.Regexp(t, `Break 1\s+break\s+15\s+taken`, out)
	assert.Regexp(t, `Lunch\s+lunch\s+30\s+next`, out)
	assert.Regexp(t, `Break 2\s+break\s+15\s+planned`, out)
	assert.Contains(t, out, "2 breaks left of 3. Plan restarts every clock-in.")

	day := stripANSI(FormatPlan(nb, domain.BreakScopeDay))
	assert.Contains(t, day, "Plan restarts every calendar day.")
}

func TestFormatPlan_RemainingFooter(t *testing.T) {
	lastBreak := domain.DefaultBreakPlan[2]
	tests := []struct {
		name string
		nb   ledger.NextBreak
		want string
		not  string
	}{
		{
			name: "clocked out hides the count",
			nb:   ledger.NextBreak{Status: domain.StatusOff, Plan: domain.DefaultBreakPlan},
			want: "Plan restarts every clock-in.",
			not:  "left of",
		},
		{
			name: "one left",
			nb: ledger.NextBreak{
				Status: domain.StatusWorking, Next: &lastBreak, Sequence: 3, Taken: 2,
				Remaining: 1, Plan: domain.DefaultBreakPlan,
			},
			want: "1 break left of 3.",
		},
		{
			name: "exhausted",
			nb: ledger.NextBreak{
				Status: domain.StatusWorking, Sequence: 4, Taken: 3, Exhausted: true,
				Plan: domain.DefaultBreakPlan,
			},
			want: "0 breaks left of 3.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := stripANSI(FormatPlan(tt.nb, domain.BreakScopeSession))
			assert.Contains(t, out, tt.want)
			if tt.not != "" {
				assert.NotContains(t, out, tt.not)
			}
		})
	}
}
