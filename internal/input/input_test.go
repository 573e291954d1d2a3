package input

import (
	"sync"
	"testing"

	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/logger"
)

// ── Mock session ─────────────────────────────────────────────────

type mockSession struct {
	mu       sync.Mutex
	state    domain.SessionState
	calls    []string
	timers   []domain.Timer
	settings domain.Settings
}

func newMockSession(state domain.SessionState) *mockSession {
	return &mockSession{state: state, settings: domain.DefaultSettings()}
}

func (m *mockSession) record(call string) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
}

func (m *mockSession) State() domain.SessionState { return m.state }
func (m *mockSession) Next() bool                 { m.record("next"); return true }
func (m *mockSession) Previous() bool             { m.record("previous"); return true }
func (m *mockSession) MarkComplete() bool         { m.record("complete"); return true }
func (m *mockSession) Exit()                      { m.record("exit") }
func (m *mockSession) StartTimer() (domain.Timer, bool) {
	m.record("start_timer")
	return domain.Timer{}, true
}
func (m *mockSession) ToggleTimer(id string) bool { m.record("toggle:" + id); return true }
func (m *mockSession) RemoveTimer(id string) bool { m.record("remove:" + id); return true }
func (m *mockSession) Timers() []domain.Timer     { return m.timers }
func (m *mockSession) Settings() domain.Settings  { return m.settings }
func (m *mockSession) UpdateSettings(p domain.SettingsPatch) domain.Settings {
	m.record("settings")
	m.settings = p.Apply(m.settings)
	return m.settings
}

func (m *mockSession) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func newTestAdapter(t *testing.T, state domain.SessionState) (*Adapter, *mockSession) {
	t.Helper()
	s := newMockSession(state)
	return NewAdapter(s, nil, logger.New(logger.LevelOff, nil)), s
}

// ── Tests ────────────────────────────────────────────────────────

func TestHandleKeyNavigation(t *testing.T) {
	tests := []struct {
		key    string
		action Action
		call   string
	}{
		{"right", ActionNext, "next"},
		{" ", ActionNext, "next"},
		{"space", ActionNext, "next"},
		{"left", ActionPrevious, "previous"},
		{"enter", ActionComplete, "complete"},
		{"esc", ActionExit, "exit"},
		{"t", ActionStartTimer, "start_timer"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			a, s := newTestAdapter(t, domain.SessionActive)
			action, ok := a.HandleKey(tt.key)
			if action != tt.action || !ok {
				t.Errorf("HandleKey(%q) = %s, %v; want %s, true", tt.key, action, ok, tt.action)
			}
			calls := s.getCalls()
			if len(calls) != 1 || calls[0] != tt.call {
				t.Errorf("calls = %v, want [%s]", calls, tt.call)
			}
		})
	}
}

func TestKeysIgnoredWhenNotActive(t *testing.T) {
	for _, state := range []domain.SessionState{domain.SessionInactive, domain.SessionCompleted} {
		a, s := newTestAdapter(t, state)
		for _, key := range []string{"right", "left", "enter", "esc", "t", "v"} {
			if _, ok := a.HandleKey(key); ok {
				t.Errorf("%s: key %q handled", state, key)
			}
		}
		if calls := s.getCalls(); len(calls) != 0 {
			t.Errorf("%s: calls = %v, want none", state, calls)
		}
	}
}

func TestUnboundKey(t *testing.T) {
	a, s := newTestAdapter(t, domain.SessionActive)
	if action, ok := a.HandleKey("z"); action != ActionNone || ok {
		t.Errorf("HandleKey(z) = %s, %v", action, ok)
	}
	if len(s.getCalls()) != 0 {
		t.Error("unbound key reached the session")
	}
}

func TestSettingToggles(t *testing.T) {
	a, s := newTestAdapter(t, domain.SessionActive)

	a.HandleKey("a")
	a.HandleKey("v")
	a.HandleKey("s")
	a.HandleKey("c")
	a.HandleKey("h")

	got := s.Settings()
	want := domain.Settings{
		VoiceEnabled: true,
		ShowTips:     false,
		AutoAdvance:  true,
		SoundEnabled: false,
		CompactMode:  true,
	}
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}

	a.HandleKey("a")
	if s.Settings().AutoAdvance {
		t.Error("second toggle should turn auto-advance off")
	}
}

func TestTimerKeysPickNewest(t *testing.T) {
	a, s := newTestAdapter(t, domain.SessionActive)
	s.timers = []domain.Timer{
		{ID: "t1", IsComplete: true},
		{ID: "t2", IsActive: true},
		{ID: "t3", IsComplete: true},
		{ID: "t4", IsActive: false}, // paused
	}

	a.HandleKey("p")
	a.HandleKey("x")

	calls := s.getCalls()
	want := []string{"toggle:t4", "remove:t3"}
	if len(calls) != 2 || calls[0] != want[0] || calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestTimerKeysWithoutTimers(t *testing.T) {
	a, s := newTestAdapter(t, domain.SessionActive)
	if _, ok := a.HandleKey("p"); ok {
		t.Error("toggle with no timers should do nothing")
	}
	if _, ok := a.HandleKey("x"); ok {
		t.Error("remove with no finished timers should do nothing")
	}
	if len(s.getCalls()) != 0 {
		t.Errorf("calls = %v", s.getCalls())
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Action
	}{
		{"next", ActionNext},
		{"N", ActionNext},
		{"back", ActionPrevious},
		{"prev", ActionPrevious},
		{"done", ActionComplete},
		{"", ActionComplete},
		{"   ", ActionComplete},
		{"quit", ActionExit},
		{"timer", ActionStartTimer},
		{"start timer", ActionStartTimer},
		{"pause", ActionToggleTimer},
		{"dismiss", ActionRemoveTimer},
		{"auto-advance", ActionToggleAutoAdvance},
		{"mute", ActionToggleSound},
		{"compact", ActionToggleCompact},
		{"tips", ActionToggleTips},
		{"voice", ActionToggleVoice},
		{"what now", ActionNone},
	}

	for _, tt := range tests {
		if got := ParseCommand(tt.input); got != tt.want {
			t.Errorf("ParseCommand(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestHandleCommand(t *testing.T) {
	a, s := newTestAdapter(t, domain.SessionActive)

	if action, ok := a.HandleCommand("next"); action != ActionNext || !ok {
		t.Errorf("HandleCommand(next) = %s, %v", action, ok)
	}
	if _, ok := a.HandleCommand("gibberish"); ok {
		t.Error("unknown command handled")
	}
	if calls := s.getCalls(); len(calls) != 1 || calls[0] != "next" {
		t.Errorf("calls = %v", calls)
	}
}

func TestActionString(t *testing.T) {
	if ActionToggleAutoAdvance.String() != "toggle_auto_advance" {
		t.Errorf("got %s", ActionToggleAutoAdvance)
	}
	if Action(99).String() != "unknown" {
		t.Errorf("got %s", Action(99))
	}
}
