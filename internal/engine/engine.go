// Package engine implements the cooking session state machine.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/logger"
	"github.com/hammamikhairi/ottostep/internal/timer"
)

// DefaultAdvanceDelay is how long auto-advance waits after a step is
// marked complete.
const DefaultAdvanceDelay = 1500 * time.Millisecond

// ScheduleFunc runs fn once after d and returns a function that cancels
// it. time.AfterFunc is the production implementation.
type ScheduleFunc func(d time.Duration, fn func()) (cancel func())

// Option configures the engine.
type Option func(*Engine)

// WithSettings sets the initial settings.
func WithSettings(s domain.Settings) Option {
	return func(e *Engine) {
		e.settings = s
	}
}

// WithNarrator sets who speaks step instructions when voice is enabled.
func WithNarrator(n domain.Narrator) Option {
	return func(e *Engine) {
		e.narrator = n
	}
}

// WithNotifier sets who is told when a timer runs out.
func WithNotifier(n domain.TimerNotifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithOnComplete sets the callback fired once when the last step is done.
func WithOnComplete(fn func()) Option {
	return func(e *Engine) {
		e.onComplete = fn
	}
}

// WithOnExit sets the callback fired whenever the session is exited.
func WithOnExit(fn func()) Option {
	return func(e *Engine) {
		e.onExit = fn
	}
}

// WithAdvanceDelay sets the auto-advance delay.
func WithAdvanceDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.advanceDelay = d
	}
}

// WithTickInterval sets the timer tick interval.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.tickInterval = d
	}
}

// WithScheduler replaces time.AfterFunc for the deferred auto-advance.
func WithScheduler(fn ScheduleFunc) Option {
	return func(e *Engine) {
		e.schedule = fn
	}
}

// WithTimerIDs replaces the timer ID generator.
func WithTimerIDs(fn func() string) Option {
	return func(e *Engine) {
		e.timerIDs = fn
	}
}

// Engine is a single cooking session: the step pointer, the set of
// completed steps, and the cook's timers. Transitions are serialized;
// collaborators and callbacks run after the engine lock is released.
type Engine struct {
	log          *logger.Logger
	narrator     domain.Narrator
	notifier     domain.TimerNotifier
	onComplete   func()
	onExit       func()
	advanceDelay time.Duration
	tickInterval time.Duration
	schedule     ScheduleFunc
	timerIDs     func() string

	mu        sync.Mutex
	id        string
	steps     []domain.Step
	current   int
	completed map[int]bool
	state     domain.SessionState
	settings  domain.Settings
	timers    *timer.Registry
	driver    *timer.Driver
	runCtx    context.Context

	// pending auto-advance; gen invalidates stale deferred calls.
	gen           uint64
	cancelPending func()
}

// New creates an inactive engine.
func New(log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		log:          log,
		advanceDelay: DefaultAdvanceDelay,
		tickInterval: time.Second,
		settings:     domain.DefaultSettings(),
		completed:    make(map[int]bool),
		runCtx:       context.Background(),
		schedule: func(d time.Duration, fn func()) func() {
			t := time.AfterFunc(d, fn)
			return func() { t.Stop() }
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	var regOpts []timer.RegistryOption
	if e.timerIDs != nil {
		regOpts = append(regOpts, timer.WithIDGenerator(e.timerIDs))
	}
	e.timers = timer.NewRegistry(log.Named("timers"), regOpts...)
	e.driver = timer.NewDriver(tickerFunc(e.tick), log.Named("driver"), timer.WithTickInterval(e.tickInterval))
	return e
}

// Start begins a session over steps. An empty list is refused with
// domain.ErrNoSteps and the engine stays inactive. Starting again while
// active restarts from the first step.
func (e *Engine) Start(ctx context.Context, steps []domain.Step) error {
	if len(steps) == 0 {
		e.log.Warn("refusing to start a session with no steps")
		return domain.ErrNoSteps
	}

	e.driver.Stop()

	e.mu.Lock()
	e.id = uuid.NewString()
	e.steps = steps
	e.current = 0
	e.completed = make(map[int]bool)
	e.state = domain.SessionActive
	e.runCtx = ctx
	e.timers.Clear()
	e.invalidatePendingLocked()
	narrate := e.narrationLocked()
	id := e.id
	e.mu.Unlock()

	e.driver.Start(ctx)
	e.log.Info("started session %s with %d steps", id[:8], len(steps))
	narrate()
	return nil
}

// Next moves to the following step. Reports whether the step changed.
// On the last step it does nothing; it neither wraps nor completes.
func (e *Engine) Next() bool {
	e.mu.Lock()
	e.invalidatePendingLocked()
	changed, narrate := e.moveLocked(e.current + 1)
	e.mu.Unlock()

	narrate()
	return changed
}

// Previous moves to the preceding step. Reports whether the step changed.
func (e *Engine) Previous() bool {
	e.mu.Lock()
	e.invalidatePendingLocked()
	changed, narrate := e.moveLocked(e.current - 1)
	e.mu.Unlock()

	narrate()
	return changed
}

// GoTo jumps to step index. Out-of-range indexes are ignored.
func (e *Engine) GoTo(index int) bool {
	e.mu.Lock()
	e.invalidatePendingLocked()
	changed, narrate := e.moveLocked(index)
	e.mu.Unlock()

	narrate()
	return changed
}

// MarkComplete records the current step as done. On the last step the
// session completes and the completion callback fires. Otherwise the
// session moves on: immediately, or after the advance delay when
// auto-advance is on. Reports whether the session just completed.
func (e *Engine) MarkComplete() bool {
	e.mu.Lock()
	if e.state != domain.SessionActive {
		e.mu.Unlock()
		return false
	}

	idx := e.current
	e.completed[idx] = true
	e.invalidatePendingLocked()

	if idx == len(e.steps)-1 {
		e.state = domain.SessionCompleted
		id := e.id
		cb := e.onComplete
		e.mu.Unlock()

		e.driver.Stop()
		e.log.Info("session %s completed", id[:8])
		if cb != nil {
			cb()
		}
		return true
	}

	if e.settings.AutoAdvance {
		gen := e.gen
		e.cancelPending = e.schedule(e.advanceDelay, func() {
			e.deferredAdvance(gen, idx)
		})
		e.mu.Unlock()
		e.log.Debug("step %d complete, auto-advancing in %s", idx+1, e.advanceDelay)
		return false
	}

	_, narrate := e.moveLocked(idx + 1)
	e.mu.Unlock()
	narrate()
	return false
}

// deferredAdvance is the auto-advance callback. It only acts if nothing
// has happened since it was scheduled: same generation, still active, and
// still on the step that was completed.
func (e *Engine) deferredAdvance(gen uint64, from int) {
	e.mu.Lock()
	if gen != e.gen || e.state != domain.SessionActive || e.current != from {
		e.mu.Unlock()
		e.log.Debug("dropping stale auto-advance from step %d", from+1)
		return
	}
	e.cancelPending = nil
	_, narrate := e.moveLocked(from + 1)
	e.mu.Unlock()

	narrate()
}

// Exit leaves the session from any state. Completed steps and timers are
// kept for inspection; the tick driver stops.
func (e *Engine) Exit() {
	e.mu.Lock()
	prev := e.state
	e.state = domain.SessionInactive
	e.invalidatePendingLocked()
	narrator := e.narrator
	cb := e.onExit
	e.mu.Unlock()

	e.driver.Stop()
	if narrator != nil {
		narrator.Stop()
	}
	e.log.Info("session exited (was %s)", prev)
	if cb != nil {
		cb()
	}
}

// UpdateSettings merges patch into the current settings.
func (e *Engine) UpdateSettings(patch domain.SettingsPatch) domain.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.settings = patch.Apply(e.settings)
	e.log.Debug("settings updated: %+v", e.settings)
	return e.settings
}

// Settings returns the current settings.
func (e *Engine) Settings() domain.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// State returns the session lifecycle state.
func (e *Engine) State() domain.SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// CurrentStep returns the step the cook is on.
func (e *Engine) CurrentStep() (domain.Step, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current < 0 || e.current >= len(e.steps) {
		return domain.Step{}, false
	}
	return e.steps[e.current], true
}

// ── Timers ───────────────────────────────────────────────────────

// StartTimer starts a countdown for the current step using its estimated
// time. Steps without a time, or whose time rounds to zero minutes, get no
// timer.
func (e *Engine) StartTimer() (domain.Timer, bool) {
	e.mu.Lock()
	if e.state != domain.SessionActive {
		e.mu.Unlock()
		return domain.Timer{}, false
	}
	step := e.steps[e.current]
	e.mu.Unlock()

	if step.Minutes() <= 0 {
		e.log.Debug("step %d has no time, not starting a timer", step.Index+1)
		return domain.Timer{}, false
	}
	return e.StartTimerFor(fmt.Sprintf("Step %d", step.Index+1), step.Minutes(), step.Index)
}

// StartTimerFor starts a named countdown of minutes for stepIndex.
func (e *Engine) StartTimerFor(name string, minutes, stepIndex int) (domain.Timer, bool) {
	if e.State() != domain.SessionActive {
		return domain.Timer{}, false
	}
	t := e.timers.Create(name, minutes, stepIndex)
	e.log.Info("timer %q started (%s)", name, timer.FormatSpoken(t.DurationSeconds))
	return t, true
}

// ToggleTimer pauses or resumes a timer. Finished or unknown timers are ignored.
func (e *Engine) ToggleTimer(id string) bool {
	return e.timers.Toggle(id)
}

// RemoveTimer deletes a timer. Unknown ids are ignored.
func (e *Engine) RemoveTimer(id string) bool {
	return e.timers.Remove(id)
}

// Timers returns all timers in creation order.
func (e *Engine) Timers() []domain.Timer {
	return e.timers.List()
}

// tick is the driver's target. Ticks are dropped unless the session is
// active; the timer set is advanced under the engine lock so a concurrent
// Exit cannot interleave with it.
func (e *Engine) tick() []domain.Timer {
	e.mu.Lock()
	if e.state != domain.SessionActive {
		e.mu.Unlock()
		return nil
	}
	done := e.timers.Tick()
	sound := e.settings.SoundEnabled
	notifier := e.notifier
	ctx := e.runCtx
	e.mu.Unlock()

	for _, t := range done {
		e.log.Info("timer %q done", t.Name)
		if !sound || notifier == nil {
			continue
		}
		if err := notifier.TimerDone(ctx, t.ID, t.Name); err != nil {
			e.log.Error("notifying timer %s: %v", t.ID, err)
		}
	}
	return done
}

// ── Internals ────────────────────────────────────────────────────

// moveLocked sets the step pointer if index is valid and the session is
// active. It returns whether the step changed and a narration thunk to
// run once the lock is released. Must be called with e.mu held.
func (e *Engine) moveLocked(index int) (bool, func()) {
	if e.state != domain.SessionActive || index < 0 || index >= len(e.steps) || index == e.current {
		return false, func() {}
	}
	e.current = index
	e.log.Debug("moved to step %d/%d", index+1, len(e.steps))
	return true, e.narrationLocked()
}

// narrationLocked captures what to say about the current step. Must be
// called with e.mu held.
func (e *Engine) narrationLocked() func() {
	if !e.settings.VoiceEnabled || e.narrator == nil || e.state != domain.SessionActive {
		return func() {}
	}
	narrator := e.narrator
	ctx := e.runCtx
	idx := e.current
	text := e.steps[idx].Instruction
	return func() {
		if err := narrator.Narrate(ctx, idx, text); err != nil {
			e.log.Warn("narrating step %d: %v", idx+1, err)
		}
	}
}

// invalidatePendingLocked cancels any scheduled auto-advance. Must be
// called with e.mu held.
func (e *Engine) invalidatePendingLocked() {
	e.gen++
	if e.cancelPending != nil {
		e.cancelPending()
		e.cancelPending = nil
	}
}

// tickerFunc adapts a function to timer.Ticker.
type tickerFunc func() []domain.Timer

func (f tickerFunc) Tick() []domain.Timer { return f() }

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
