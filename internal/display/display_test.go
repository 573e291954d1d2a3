package display

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/engine"
	"github.com/hammamikhairi/ottostep/internal/input"
)

func intPtr(v int) *int { return &v }

func testSnapshot() engine.Snapshot {
	return engine.Snapshot{
		State: domain.SessionActive,
		Steps: []domain.Step{
			{ID: "step-0", Index: 0, Instruction: "Dice the onion.", Difficulty: domain.DifficultyEasy},
			{
				ID:                   "step-1",
				Index:                1,
				Instruction:          "Saute the garlic.",
				EstimatedTimeMinutes: intPtr(2),
				Temperature:          intPtr(350),
				Techniques:           []string{"sautéing"},
				Tips:                 []string{"Heat the pan first"},
				Warnings:             []string{"Garlic burns fast"},
				Equipment:            []string{"skillet"},
				Difficulty:           domain.DifficultyMedium,
				NextStepPrep:         "Prep the next thing",
			},
		},
		Current:   1,
		Completed: []int{0},
		Settings:  domain.DefaultSettings(),
	}
}

func TestRenderStep(t *testing.T) {
	out := RenderStep(testSnapshot(), 100)

	for _, want := range []string{
		"Step 2/2", "~2 min", "350°", "medium",
		"Saute the garlic.", "Garlic burns fast",
		"Tip: Heat the pan first", "Equipment: skillet", "Technique: sautéing", "Next: Prep the next thing",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderStepCompactAndTips(t *testing.T) {
	s := testSnapshot()
	s.Settings.CompactMode = true
	out := RenderStep(s, 100)
	for _, gone := range []string{"Tip:", "Equipment:", "Technique:", "Next:"} {
		if strings.Contains(out, gone) {
			t.Errorf("compact mode should hide %q", gone)
		}
	}
	if !strings.Contains(out, "Garlic burns fast") {
		t.Error("warnings must survive compact mode")
	}

	s = testSnapshot()
	s.Settings.ShowTips = false
	out = RenderStep(s, 100)
	if strings.Contains(out, "Tip:") {
		t.Error("tips shown with ShowTips off")
	}
	if !strings.Contains(out, "Equipment: skillet") {
		t.Error("equipment should still show")
	}
}

func TestStepHeaderDoneMark(t *testing.T) {
	s := testSnapshot()
	s.Current = 0
	step, _ := s.CurrentStep()
	if h := stepHeader(s, step); !strings.Contains(h, "✓") {
		t.Errorf("completed step header = %q", h)
	}
	s.Current = 1
	step, _ = s.CurrentStep()
	if h := stepHeader(s, step); strings.Contains(h, "✓") {
		t.Errorf("open step header = %q", h)
	}
}

func TestRenderProgress(t *testing.T) {
	out := renderProgress(testSnapshot(), 80)
	if !strings.Contains(out, "1/2 done") {
		t.Errorf("progress = %q", out)
	}
	if !strings.Contains(out, "●") || !strings.Contains(out, "◉") {
		t.Errorf("progress dots = %q", out)
	}

	s := testSnapshot()
	s.Steps = make([]domain.Step, 60)
	if out := renderProgress(s, 80); !strings.Contains(out, "░") {
		t.Errorf("long recipe should render a bar: %q", out)
	}

	if renderProgress(engine.Snapshot{}, 80) != "" {
		t.Error("empty snapshot should render nothing")
	}
}

func TestRenderTimers(t *testing.T) {
	timers := []domain.Timer{
		{Name: "Step 1", RemainingSeconds: 125, DurationSeconds: 300, IsActive: true},
		{Name: "Step 2", RemainingSeconds: 60, DurationSeconds: 60},
		{Name: "Step 3", IsComplete: true, DurationSeconds: 60},
	}
	out := RenderTimers(timers, 120)
	for _, want := range []string{"Step 1: ", "2:05", "Step 2: 1:00 (paused)", "Step 3: DONE!"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
	if RenderTimers(nil, 80) != "" {
		t.Error("no timers should render nothing")
	}
}

func TestWindowTitle(t *testing.T) {
	s := testSnapshot()
	if got := windowTitle(s); got != "OttoStep" {
		t.Errorf("title = %q", got)
	}
	s.Timers = []domain.Timer{{Name: "Rice", RemainingSeconds: 90, IsActive: true}, {Name: "Eggs", IsComplete: true}}
	if got := windowTitle(s); got != "OttoStep | Rice: 1:30 | Eggs: DONE!" {
		t.Errorf("title = %q", got)
	}
}

func TestRenderBanner(t *testing.T) {
	out := RenderBanner(120, "Garlic Butter Pasta")
	if !strings.Contains(out, "Garlic Butter Pasta") {
		t.Error("subtitle missing")
	}
	if !strings.HasPrefix(out, " ") {
		t.Error("banner should be centred")
	}
}

// ── Model ────────────────────────────────────────────────────────

type fakeSession struct {
	snap engine.Snapshot
}

func (f *fakeSession) Snapshot() engine.Snapshot { return f.snap }

type fakeKeys struct {
	session *fakeSession
	pressed []string
}

func (f *fakeKeys) HandleKey(k string) (input.Action, bool) {
	f.pressed = append(f.pressed, k)
	if k == "esc" {
		f.session.snap.State = domain.SessionInactive
		return input.ActionExit, true
	}
	return input.ActionNone, false
}

func TestModelRoutesKeysAndQuitsOnExit(t *testing.T) {
	sess := &fakeSession{snap: testSnapshot()}
	keys := &fakeKeys{session: sess}
	m := newModel(sess, keys, input.DefaultBindings)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if cmd != nil {
		t.Error("active session should keep running")
	}
	m = next.(model)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command after exit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if len(keys.pressed) != 2 || keys.pressed[0] != "right" || keys.pressed[1] != "esc" {
		t.Errorf("pressed = %v", keys.pressed)
	}
}

func TestModelHelpToggleAndAlert(t *testing.T) {
	sess := &fakeSession{snap: testSnapshot()}
	keys := &fakeKeys{session: sess}
	m := newModel(sess, keys, input.DefaultBindings)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = next.(model)
	if !m.help.ShowAll {
		t.Error("? should expand help")
	}
	if len(keys.pressed) != 0 {
		t.Error("help key should not reach the session")
	}

	next, _ = m.Update(alertMsg{text: "[Timer] Step 1 is up.", at: time.Now()})
	m = next.(model)
	if !strings.Contains(m.View(), "[Timer] Step 1 is up.") {
		t.Error("alert not rendered")
	}

	next, _ = m.Update(alertMsg{text: "old", at: time.Now().Add(-time.Minute)})
	m = next.(model)
	next, _ = m.Update(refreshMsg(time.Now()))
	if next.(model).alert != "" {
		t.Error("stale alert should clear on refresh")
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := newKeyMap(input.DefaultBindings)
	if got := len(km.ShortHelp()); got != 5 {
		t.Errorf("short help = %d bindings, want 5", got)
	}
	total := 0
	for _, col := range km.FullHelp() {
		total += len(col)
	}
	if total != len(input.DefaultBindings)+1 {
		t.Errorf("full help = %d bindings, want %d", total, len(input.DefaultBindings)+1)
	}
}

func TestNewUIBindings(t *testing.T) {
	sess := &fakeSession{snap: testSnapshot()}
	keys := &fakeKeys{session: sess}

	if u := NewUI(sess, keys); len(u.bindings) != len(input.DefaultBindings) {
		t.Fatalf("default bindings = %d, want %d", len(u.bindings), len(input.DefaultBindings))
	}

	custom := []input.Binding{
		{Keys: []string{"n"}, Action: input.ActionNext, Help: "next step"},
		{Keys: []string{"q"}, Action: input.ActionExit, Help: "quit"},
	}
	u := NewUI(sess, keys, WithBindings(custom))
	km := newKeyMap(u.bindings)
	if got := len(km.ShortHelp()); got != len(custom)+1 {
		t.Fatalf("short help = %d bindings, want %d", got, len(custom)+1)
	}
	if got := km.ShortHelp()[1].Help().Desc; got != "quit" {
		t.Errorf("second binding help = %q, want quit", got)
	}
}
