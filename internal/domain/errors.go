package domain

import "errors"

// Precondition violations returned by timeclock commands. None of them change
// stored state.
var (
	ErrAlreadyActive      = errors.New("already clocked in")
	ErrNoActiveSession    = errors.New("not clocked in")
	ErrBreakAlreadyActive = errors.New("already on a break, end it first")
	ErrNoActiveBreak      = errors.New("not on a break")
	ErrPlanExhausted      = errors.New("all planned breaks used")
	ErrBreakStillOpen     = errors.New("end the break first")
	ErrRecentWork         = errors.New("recent work overlaps the demo session")
)

// IsPrecondition reports whether err is one of the user-recoverable
// timeclock precondition errors.
func IsPrecondition(err error) bool {
	for _, target := range []error{
		ErrAlreadyActive, ErrNoActiveSession, ErrBreakAlreadyActive,
		ErrNoActiveBreak, ErrPlanExhausted, ErrBreakStillOpen, ErrRecentWork,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
