package snapshot

import (
	"strings"
	"time"

	"github.com/alexanderramin/punch/internal/domain"
)

// legacyState is the document written by the browser version of the tracker
// under the "tt_v1" key. Instants are millisecond epochs; entries are stored
// newest first and discriminated by Type.
type legacyState struct {
	Entries       []legacyEntry `json:"entries"`
	ActiveSession *legacyActive `json:"activeSession"`
	ActiveBreak   *legacyActive `json:"activeBreak"`
	BreakIndex    *float64      `json:"breakIndex"`
}

type legacyEntry struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	SessionID      string   `json:"sessionId"`
	StartMs        *float64 `json:"startMs"`
	EndMs          *float64 `json:"endMs"`
	TsMs           *float64 `json:"tsMs"`
	Minutes        *float64 `json:"minutes"`
	PlannedMinutes *float64 `json:"plannedMinutes"`
	Label          string   `json:"label"`
	Kind           string   `json:"kind"`
}

type legacyActive struct {
	ID             string   `json:"id"`
	SessionID      string   `json:"sessionId"`
	StartMs        *float64 `json:"startMs"`
	PlannedMinutes *float64 `json:"plannedMinutes"`
	Label          string   `json:"label"`
	Kind           string   `json:"kind"`
}

func fromMillis(ms *float64) time.Time {
	if ms == nil || *ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(*ms))
}

func intOr(v *float64, fallback int) int {
	if v == nil {
		return fallback
	}
	return int(*v)
}

// trimPlanSuffix turns "Break 1 (15 min)" back into "Break 1".
func trimPlanSuffix(label string) string {
	if !strings.HasSuffix(label, " min)") {
		return label
	}
	if i := strings.LastIndex(label, " ("); i > 0 {
		return label[:i]
	}
	return label
}

// migrateLegacy converts a legacy document into domain contents. Sequence
// numbers of closed breaks are left for Normalize to assign; the open break
// takes its position from breakIndex.
func migrateLegacy(st legacyState) (domain.Timesheet, []string) {
	var ts domain.Timesheet
	var problems []string

	for _, e := range st.Entries {
		switch e.Type {
		case "work":
			end := fromMillis(e.EndMs)
			ts.Sessions = append(ts.Sessions, domain.WorkSession{
				ID:    e.SessionID,
				Start: fromMillis(e.StartMs),
				End:   &end,
			})
		case "break":
			end := fromMillis(e.EndMs)
			ts.Breaks = append(ts.Breaks, domain.BreakRecord{
				ID:             e.ID,
				SessionID:      e.SessionID,
				Start:          fromMillis(e.StartMs),
				End:            &end,
				PlannedMinutes: intOr(e.PlannedMinutes, 0),
				ActualMinutes:  intOr(e.Minutes, 0),
				Label:          trimPlanSuffix(e.Label),
				Kind:           domain.BreakKind(e.Kind),
			})
		case "event":
			ts.Events = append(ts.Events, domain.EventEntry{
				ID:    e.ID,
				At:    fromMillis(e.TsMs),
				Label: e.Label,
			})
		default:
			problems = append(problems, "skipped legacy entry of unknown type "+e.Type)
		}
	}

	if st.ActiveSession != nil {
		ts.Sessions = append(ts.Sessions, domain.WorkSession{
			ID:    st.ActiveSession.ID,
			Start: fromMillis(st.ActiveSession.StartMs),
		})
	}
	if st.ActiveBreak != nil {
		ab := st.ActiveBreak
		ts.Breaks = append(ts.Breaks, domain.BreakRecord{
			ID:             ab.ID,
			SessionID:      ab.SessionID,
			Start:          fromMillis(ab.StartMs),
			PlannedMinutes: intOr(ab.PlannedMinutes, 0),
			Sequence:       intOr(st.BreakIndex, 0) + 1,
			Label:          trimPlanSuffix(ab.Label),
			Kind:           domain.BreakKind(ab.Kind),
		})
	}
	return ts, problems
}
