// Package input maps key presses and typed commands onto session
// transitions.
package input

import (
	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/logger"
)

// Action is what a key or command asks the session to do.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrevious
	ActionComplete
	ActionExit
	ActionStartTimer
	ActionToggleTimer
	ActionRemoveTimer
	ActionToggleVoice
	ActionToggleAutoAdvance
	ActionToggleSound
	ActionToggleCompact
	ActionToggleTips
)

var actionNames = map[Action]string{
	ActionNone:              "none",
	ActionNext:              "next",
	ActionPrevious:          "previous",
	ActionComplete:          "complete",
	ActionExit:              "exit",
	ActionStartTimer:        "start_timer",
	ActionToggleTimer:       "toggle_timer",
	ActionRemoveTimer:       "remove_timer",
	ActionToggleVoice:       "toggle_voice",
	ActionToggleAutoAdvance: "toggle_auto_advance",
	ActionToggleSound:       "toggle_sound",
	ActionToggleCompact:     "toggle_compact",
	ActionToggleTips:        "toggle_tips",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Session is the part of the engine the adapter drives.
type Session interface {
	State() domain.SessionState
	Next() bool
	Previous() bool
	MarkComplete() bool
	Exit()
	StartTimer() (domain.Timer, bool)
	ToggleTimer(id string) bool
	RemoveTimer(id string) bool
	Timers() []domain.Timer
	Settings() domain.Settings
	UpdateSettings(patch domain.SettingsPatch) domain.Settings
}

// Binding ties key names, as reported by the terminal, to an action.
type Binding struct {
	Keys   []string
	Action Action
	Help   string
}

// DefaultBindings is the key map. Space arrives as " " from the terminal
// and as "space" from some emulators.
var DefaultBindings = []Binding{
	{[]string{"right", " ", "space"}, ActionNext, "next step"},
	{[]string{"left"}, ActionPrevious, "previous step"},
	{[]string{"enter"}, ActionComplete, "mark done"},
	{[]string{"esc"}, ActionExit, "exit"},
	{[]string{"t"}, ActionStartTimer, "start timer"},
	{[]string{"p"}, ActionToggleTimer, "pause/resume timer"},
	{[]string{"x"}, ActionRemoveTimer, "clear finished timer"},
	{[]string{"v"}, ActionToggleVoice, "voice"},
	{[]string{"a"}, ActionToggleAutoAdvance, "auto-advance"},
	{[]string{"s"}, ActionToggleSound, "sound"},
	{[]string{"c"}, ActionToggleCompact, "compact"},
	{[]string{"h"}, ActionToggleTips, "tips"},
}

// Adapter translates input into session calls. Input is ignored unless the
// session is active.
type Adapter struct {
	session Session
	keys    map[string]Action
	log     *logger.Logger
}

// NewAdapter creates an adapter over session using bindings. A nil
// bindings slice uses DefaultBindings.
func NewAdapter(session Session, bindings []Binding, log *logger.Logger) *Adapter {
	if bindings == nil {
		bindings = DefaultBindings
	}
	keys := make(map[string]Action)
	for _, b := range bindings {
		for _, k := range b.Keys {
			keys[k] = b.Action
		}
	}
	return &Adapter{session: session, keys: keys, log: log}
}

// Resolve returns the action bound to key, or ActionNone.
func (a *Adapter) Resolve(key string) Action {
	return a.keys[key]
}

// HandleKey resolves key and performs its action. It reports the action
// taken and whether anything happened.
func (a *Adapter) HandleKey(key string) (Action, bool) {
	action := a.Resolve(key)
	if action == ActionNone {
		return ActionNone, false
	}
	return action, a.Perform(action)
}

// Perform runs action against the session.
func (a *Adapter) Perform(action Action) bool {
	if a.session.State() != domain.SessionActive {
		a.log.Debug("input: %s ignored, session not active", action)
		return false
	}
	a.log.Debug("input: %s", action)

	switch action {
	case ActionNext:
		return a.session.Next()
	case ActionPrevious:
		return a.session.Previous()
	case ActionComplete:
		return a.session.MarkComplete()
	case ActionExit:
		a.session.Exit()
		return true
	case ActionStartTimer:
		_, ok := a.session.StartTimer()
		return ok
	case ActionToggleTimer:
		if t, ok := newest(a.session.Timers(), func(t domain.Timer) bool { return !t.IsComplete }); ok {
			return a.session.ToggleTimer(t.ID)
		}
	case ActionRemoveTimer:
		if t, ok := newest(a.session.Timers(), func(t domain.Timer) bool { return t.IsComplete }); ok {
			return a.session.RemoveTimer(t.ID)
		}
	case ActionToggleVoice, ActionToggleAutoAdvance, ActionToggleSound, ActionToggleCompact, ActionToggleTips:
		a.session.UpdateSettings(togglePatch(action, a.session.Settings()))
		return true
	}
	return false
}

func togglePatch(action Action, s domain.Settings) domain.SettingsPatch {
	var p domain.SettingsPatch
	switch action {
	case ActionToggleVoice:
		p.VoiceEnabled = domain.Bool(!s.VoiceEnabled)
	case ActionToggleAutoAdvance:
		p.AutoAdvance = domain.Bool(!s.AutoAdvance)
	case ActionToggleSound:
		p.SoundEnabled = domain.Bool(!s.SoundEnabled)
	case ActionToggleCompact:
		p.CompactMode = domain.Bool(!s.CompactMode)
	case ActionToggleTips:
		p.ShowTips = domain.Bool(!s.ShowTips)
	}
	return p
}

// newest returns the most recently created timer matching keep.
func newest(timers []domain.Timer, keep func(domain.Timer) bool) (domain.Timer, bool) {
	for i := len(timers) - 1; i >= 0; i-- {
		if keep(timers[i]) {
			return timers[i], true
		}
	}
	return domain.Timer{}, false
}
