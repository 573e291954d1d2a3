package engine

import "github.com/hammamikhairi/ottostep/internal/domain"

// Snapshot is a point-in-time copy of the session for renderers. Steps
// are shared with the engine and must be treated as read-only.
type Snapshot struct {
	ID        string
	State     domain.SessionState
	Steps     []domain.Step
	Current   int
	Completed []int // ascending
	Timers    []domain.Timer
	Settings  domain.Settings
}

// Snapshot returns the current session state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		ID:        e.id,
		State:     e.state,
		Steps:     e.steps,
		Current:   e.current,
		Completed: sortedKeys(e.completed),
		Timers:    e.timers.List(),
		Settings:  e.settings,
	}
}

// CurrentStep returns the step the snapshot points at.
func (s Snapshot) CurrentStep() (domain.Step, bool) {
	if s.Current < 0 || s.Current >= len(s.Steps) {
		return domain.Step{}, false
	}
	return s.Steps[s.Current], true
}

// IsCompleted reports whether step index was marked complete.
func (s Snapshot) IsCompleted(index int) bool {
	for _, c := range s.Completed {
		if c == index {
			return true
		}
	}
	return false
}

// Progress returns how many steps are complete out of the total.
func (s Snapshot) Progress() (done, total int) {
	return len(s.Completed), len(s.Steps)
}

// RunningTimers returns the timers still counting down.
func (s Snapshot) RunningTimers() []domain.Timer {
	var out []domain.Timer
	for _, t := range s.Timers {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out
}
