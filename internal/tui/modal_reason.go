package tui

// ReasonModal is the interruption-reason prompt shown when a loggable
// session is stopped manually. Enter commits the session with the selected
// reason; esc cancels the stop entirely and the timer resumes.
type ReasonModal struct {
	reasons []string
	cursor  int
}

func newReasonModal(reasons []string) *ReasonModal {
	return &ReasonModal{reasons: reasons}
}
