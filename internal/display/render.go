package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/engine"
	"github.com/hammamikhairi/ottostep/internal/timer"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	timerRunStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	timerDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	timerPausedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#71717a")).
				Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	// BannerStyle is muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	tipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1)

	doneMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#86efac"))
)

// ── Step card ────────────────────────────────────────────────────

// RenderStep draws the current step. Compact mode keeps the header,
// instruction and warnings; tips, equipment and techniques are dropped.
// Tips also follow the ShowTips setting.
func RenderStep(s engine.Snapshot, width int) string {
	step, ok := s.CurrentStep()
	if !ok {
		return secondaryStyle.Render("No step.")
	}

	var lines []string
	lines = append(lines, stepStyle.Render(stepHeader(s, step)))

	inner := max(width-4, 20)
	lines = append(lines, primaryStyle.Width(inner).Render(step.Instruction))

	for _, w := range step.Warnings {
		lines = append(lines, warnStyle.Width(inner).Render("! "+w))
	}

	if !s.Settings.CompactMode {
		if s.Settings.ShowTips {
			for _, tip := range step.Tips {
				lines = append(lines, tipStyle.Width(inner).Render("Tip: "+tip))
			}
		}
		if len(step.Equipment) > 0 {
			lines = append(lines, secondaryStyle.Render("Equipment: "+strings.Join(step.Equipment, ", ")))
		}
		if len(step.Techniques) > 0 {
			lines = append(lines, secondaryStyle.Render("Technique: "+strings.Join(step.Techniques, ", ")))
		}
		if step.NextStepPrep != "" {
			lines = append(lines, secondaryStyle.Italic(true).Render("Next: "+step.NextStepPrep))
		}
	}

	return cardStyle.Width(max(width-2, 24)).Render(strings.Join(lines, "\n"))
}

// stepHeader reads like "Step 2/8 · ~5 min · 350° · medium ✓".
func stepHeader(s engine.Snapshot, step domain.Step) string {
	parts := []string{fmt.Sprintf("Step %d/%d", s.Current+1, len(s.Steps))}
	if step.HasTime() {
		parts = append(parts, fmt.Sprintf("~%d min", step.Minutes()))
	}
	if step.Temperature != nil {
		parts = append(parts, fmt.Sprintf("%d°", *step.Temperature))
	}
	parts = append(parts, step.Difficulty.String())

	header := strings.Join(parts, " · ")
	if s.IsCompleted(s.Current) {
		header += " " + doneMarkStyle.Render("✓")
	}
	return header
}

// ── Progress ─────────────────────────────────────────────────────

func renderProgress(s engine.Snapshot, width int) string {
	done, total := s.Progress()
	if total == 0 {
		return ""
	}

	label := fmt.Sprintf(" %d/%d done", done, total)
	barW := max(min(width-len(label)-2, 40), 5)

	var b strings.Builder
	if total > barW/2 {
		// Too many steps for one dot each.
		filled := barW * done / total
		b.WriteString(doneMarkStyle.Render(strings.Repeat("█", filled)))
		b.WriteString(sepStyle.Render(strings.Repeat("░", barW-filled)))
		return b.String() + secondaryStyle.Render(label)
	}

	for i := range total {
		if i > 0 {
			b.WriteString(" ")
		}
		switch {
		case s.IsCompleted(i):
			b.WriteString(doneMarkStyle.Render("●"))
		case i == s.Current:
			b.WriteString(stepStyle.Render("◉"))
		default:
			b.WriteString(sepStyle.Render("○"))
		}
	}
	return b.String() + secondaryStyle.Render(label)
}

// ── Timer bar ────────────────────────────────────────────────────

func RenderTimers(timers []domain.Timer, width int) string {
	if len(timers) == 0 {
		return ""
	}

	parts := make([]string, 0, len(timers))
	for _, t := range timers {
		switch {
		case t.IsComplete:
			parts = append(parts, timerDoneStyle.Render(t.Name+": DONE!"))
		case t.Paused():
			parts = append(parts, timerPausedStyle.Render(t.Name+": "+timer.FormatClock(t.RemainingSeconds)+" (paused)"))
		default:
			parts = append(parts, labelStyle.Render(t.Name+": ")+timerRunStyle.Render(timer.FormatClock(t.RemainingSeconds)))
		}
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "
	if width <= 0 {
		width = 80
	}
	return barBg.Width(width).Render(content)
}

// windowTitle puts running timers in the terminal title so they stay
// visible when the window is in the background.
func windowTitle(s engine.Snapshot) string {
	if len(s.Timers) == 0 {
		return "OttoStep"
	}
	p := make([]string, 0, len(s.Timers))
	for _, t := range s.Timers {
		switch {
		case t.IsComplete:
			p = append(p, t.Name+": DONE!")
		case t.Paused():
			p = append(p, t.Name+": paused")
		default:
			p = append(p, t.Name+": "+timer.FormatClock(t.RemainingSeconds))
		}
	}
	return "OttoStep | " + strings.Join(p, " | ")
}

// settingsLine shows the toggles in compact form, e.g. "voice:off auto:on".
func settingsLine(st domain.Settings) string {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	return secondaryStyle.Render(fmt.Sprintf("voice:%s auto:%s sound:%s tips:%s",
		onOff(st.VoiceEnabled), onOff(st.AutoAdvance), onOff(st.SoundEnabled), onOff(st.ShowTips)))
}
