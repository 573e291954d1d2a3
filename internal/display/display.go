// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] renders a session snapshot: the current step card, a progress
// row, the timer status bar and a key help footer. Key presses go through
// an [input.Adapter]; the UI never mutates the session itself.
package display

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/engine"
	"github.com/hammamikhairi/ottostep/internal/input"
)

// RefreshInterval is how often the view re-reads the session between
// key presses, so timers count down on screen.
const RefreshInterval = 250 * time.Millisecond

// alertTTL is how long a timer alert stays under the step card.
const alertTTL = 6 * time.Second

// Session is what the UI reads.
type Session interface {
	Snapshot() engine.Snapshot
}

// KeyHandler performs the action bound to a key.
type KeyHandler interface {
	HandleKey(key string) (input.Action, bool)
}

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may call
// [UI.Alert] at any time; alerts sent before the program starts or after
// it stops are dropped.
type UI struct {
	session  Session
	keys     KeyHandler
	bindings []input.Binding
	program  *tea.Program
	running  atomic.Bool
	opts     []tea.ProgramOption
}

// Option configures the UI.
type Option func(*UI)

// WithProgramOptions passes options through to tea.NewProgram. Tests use
// it to swap input and output.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(u *UI) {
		u.opts = append(u.opts, opts...)
	}
}

// WithBindings sets the bindings shown in the help footer. Defaults to
// input.DefaultBindings.
func WithBindings(b []input.Binding) Option {
	return func(u *UI) {
		u.bindings = b
	}
}

// NewUI creates the display.
func NewUI(session Session, keys KeyHandler, opts ...Option) *UI {
	u := &UI{
		session:  session,
		keys:     keys,
		bindings: input.DefaultBindings,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Run starts the Bubble Tea event loop. Blocks until the session leaves
// the active state or the user presses ctrl+c.
func (u *UI) Run() (engine.Snapshot, error) {
	m := newModel(u.session, u.keys, u.bindings)
	u.program = tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, u.opts...)...)
	u.running.Store(true)
	final, err := u.program.Run()
	u.running.Store(false)

	if fm, ok := final.(model); ok {
		return fm.snap, err
	}
	return u.session.Snapshot(), err
}

// Alert flashes text under the step card. Thread-safe.
func (u *UI) Alert(text string) {
	if u.program == nil || !u.running.Load() {
		return
	}
	go u.program.Send(alertMsg{text: text, at: time.Now()})
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	session Session
	keys    KeyHandler
	keyMap  keyMap
	help    help.Model
	snap    engine.Snapshot
	alert   string
	alertAt time.Time
	width   int
}

type (
	refreshMsg time.Time
	alertMsg   struct {
		text string
		at   time.Time
	}
)

func newModel(session Session, keys KeyHandler, bindings []input.Binding) model {
	return model{
		session: session,
		keys:    keys,
		keyMap:  newKeyMap(bindings),
		help:    help.New(),
		snap:    session.Snapshot(),
		width:   80,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(refreshCmd(), tea.SetWindowTitle(windowTitle(m.snap)))
}

func refreshCmd() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		m.keys.HandleKey(msg.String())
		return m.refresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case alertMsg:
		m.alert, m.alertAt = msg.text, msg.at
		return m, nil

	case refreshMsg:
		if m.alert != "" && time.Since(m.alertAt) > alertTTL {
			m.alert = ""
		}
		next, cmd := m.refresh()
		if cmd != nil {
			return next, cmd
		}
		return next, tea.Batch(refreshCmd(), tea.SetWindowTitle(windowTitle(next.(model).snap)))
	}
	return m, nil
}

// refresh re-reads the session and quits once it is no longer active.
func (m model) refresh() (tea.Model, tea.Cmd) {
	m.snap = m.session.Snapshot()
	if m.snap.State != domain.SessionActive {
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	if bar := RenderTimers(m.snap.Timers, m.width); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n\n")
	}

	b.WriteString(RenderStep(m.snap, m.width))
	b.WriteByte('\n')

	if m.alert != "" {
		b.WriteString(timerDoneStyle.Render("  " + m.alert))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(renderProgress(m.snap, m.width))
	b.WriteString("  ")
	b.WriteString(settingsLine(m.snap.Settings))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keyMap))
	return b.String()
}

// ── Key map ──────────────────────────────────────────────────────

// keyMap adapts input bindings to bubbles/help.
type keyMap struct {
	bindings []key.Binding
	help     key.Binding
}

func newKeyMap(bindings []input.Binding) keyMap {
	km := keyMap{
		help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	}
	for _, b := range bindings {
		km.bindings = append(km.bindings, key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(keyLabel(b.Keys[0]), b.Help),
		))
	}
	return km
}

// ShortHelp shows navigation only.
func (k keyMap) ShortHelp() []key.Binding {
	n := min(len(k.bindings), 4)
	return append(append([]key.Binding{}, k.bindings[:n]...), k.help)
}

// FullHelp shows every binding in columns of four.
func (k keyMap) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for i := 0; i < len(k.bindings); i += 4 {
		cols = append(cols, k.bindings[i:min(i+4, len(k.bindings))])
	}
	return append(cols, []key.Binding{k.help})
}

func keyLabel(k string) string {
	switch k {
	case "right":
		return "→"
	case "left":
		return "←"
	case " ":
		return "space"
	}
	return k
}
