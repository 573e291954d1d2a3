package domain

// Timer is an independent countdown a cook starts for a step.
// RemainingSeconds never exceeds DurationSeconds.
type Timer struct {
	ID               string
	Name             string
	StepIndex        int
	DurationSeconds  int
	RemainingSeconds int
	IsActive         bool
	IsComplete       bool
}

// Paused reports whether the timer was stopped before running out.
func (t Timer) Paused() bool {
	return !t.IsActive && !t.IsComplete
}
