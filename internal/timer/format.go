package timer

import "fmt"

// FormatClock renders seconds as "m:ss", or "h:mm:ss" past an hour.
func FormatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatSpoken returns a human-friendly duration for narration and
// notifications. Rounds to the nearest minute once there's at least 1
// minute left.
func FormatSpoken(secs int) string {
	if secs < 60 {
		if secs == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", secs)
	}
	m := (secs + 30) / 60
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
