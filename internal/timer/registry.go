// Package timer holds the cook's countdown timers and the ticker that
// drives them.
package timer

import (
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/logger"
)

// RegistryOption configures the registry.
type RegistryOption func(*Registry)

// WithIDGenerator replaces the uuid-based timer ID generator.
func WithIDGenerator(fn func() string) RegistryOption {
	return func(r *Registry) {
		r.newID = fn
	}
}

// Registry owns a set of independent countdown timers. All methods are
// safe for concurrent use; Tick updates the whole set under one lock so
// readers never see a half-advanced set.
type Registry struct {
	mu     sync.Mutex
	timers []*domain.Timer // creation order
	newID  func() string
	log    *logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *logger.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		newID: uuid.NewString,
		log:   log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create starts a new running timer. Names need not be unique.
func (r *Registry) Create(name string, durationMinutes, stepIndex int) domain.Timer {
	secs := durationMinutes * 60
	if secs < 0 {
		secs = 0
	}

	t := &domain.Timer{
		ID:               r.newID(),
		Name:             name,
		StepIndex:        stepIndex,
		DurationSeconds:  secs,
		RemainingSeconds: secs,
		IsActive:         true,
	}

	r.mu.Lock()
	r.timers = append(r.timers, t)
	r.mu.Unlock()

	r.log.Debug("created timer %s (%s, %ds)", t.ID, t.Name, secs)
	return *t
}

// Tick advances every running timer by one second. Timers that reach zero
// stop and are returned as completion events. Finished timers are left
// alone, so a timer completes exactly once.
func (r *Registry) Tick() []domain.Timer {
	r.mu.Lock()
	var done []domain.Timer
	for _, t := range r.timers {
		if !t.IsActive || t.RemainingSeconds <= 0 {
			continue
		}
		t.RemainingSeconds--
		if t.RemainingSeconds == 0 {
			t.IsActive = false
			t.IsComplete = true
			done = append(done, *t)
		}
	}
	r.mu.Unlock()

	for _, t := range done {
		r.log.Debug("timer %s (%s) complete", t.ID, t.Name)
	}
	return done
}

// Toggle pauses a running timer or resumes a paused one. Unknown and
// finished timers are left alone. Reports whether anything changed.
func (r *Registry) Toggle(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.find(id)
	if t == nil || t.IsComplete {
		return false
	}
	t.IsActive = !t.IsActive
	r.log.Debug("timer %s active=%v", id, t.IsActive)
	return true
}

// Remove deletes a timer whatever its state. Reports whether it existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.timers {
		if t.ID == id {
			r.timers = append(r.timers[:i], r.timers[i+1:]...)
			r.log.Debug("removed timer %s (%s)", id, t.Name)
			return true
		}
	}
	return false
}

// Get returns a copy of the timer with the given id.
func (r *Registry) Get(id string) (domain.Timer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t := r.find(id); t != nil {
		return *t, true
	}
	return domain.Timer{}, false
}

// List returns copies of all timers in creation order.
func (r *Registry) List() []domain.Timer {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Timer, len(r.timers))
	for i, t := range r.timers {
		out[i] = *t
	}
	return out
}

// Len returns the number of timers, finished ones included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Clear drops every timer.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timers = nil
}

// find must be called with r.mu held.
func (r *Registry) find(id string) *domain.Timer {
	for _, t := range r.timers {
		if t.ID == id {
			return t
		}
	}
	return nil
}
