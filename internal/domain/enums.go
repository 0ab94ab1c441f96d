package domain

// ClockStatus is the derived state of the timeclock.
type ClockStatus string

const (
	StatusOff     ClockStatus = "off"
	StatusWorking ClockStatus = "working"
	StatusOnBreak ClockStatus = "on_break"
)

type BreakKind string

const (
	BreakKindBreak BreakKind = "break"
	BreakKindLunch BreakKind = "lunch"
)

// ClockOutPolicy decides what clocking out does while a break is open.
type ClockOutPolicy string

const (
	ClockOutReject     ClockOutPolicy = "reject"
	ClockOutForceClose ClockOutPolicy = "force_close"
)

// BreakScope is the boundary at which break sequencing starts over.
type BreakScope string

const (
	BreakScopeSession BreakScope = "session"
	BreakScopeDay     BreakScope = "day"
)

// ValidClockOutPolicies is the canonical set of accepted clock-out policies.
var ValidClockOutPolicies = map[string]bool{
	"reject": true, "force_close": true,
}

// ValidBreakScopes is the canonical set of accepted break scopes.
var ValidBreakScopes = map[string]bool{
	"session": true, "day": true,
}

// ValidBreakKinds is the canonical set of accepted break kinds.
var ValidBreakKinds = map[string]bool{
	"break": true, "lunch": true,
}
