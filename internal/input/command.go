package input

import (
	"regexp"
	"strings"
)

type commandRule struct {
	regex  *regexp.Regexp
	action Action
}

// commandRules serve plain mode, where the cook types a word per line
// instead of pressing keys.
var commandRules = []commandRule{
	{regexp.MustCompile(`(?i)^(next|n|forward|skip)$`), ActionNext},
	{regexp.MustCompile(`(?i)^(back|b|prev|previous)$`), ActionPrevious},
	{regexp.MustCompile(`(?i)^(done|d|complete|finished)$`), ActionComplete},
	{regexp.MustCompile(`(?i)^(quit|exit|q|stop)$`), ActionExit},
	{regexp.MustCompile(`(?i)^(timer|start timer|t)$`), ActionStartTimer},
	{regexp.MustCompile(`(?i)^(pause|resume|p)$`), ActionToggleTimer},
	{regexp.MustCompile(`(?i)^(dismiss|clear|ok|x)$`), ActionRemoveTimer},
	{regexp.MustCompile(`(?i)^voice$`), ActionToggleVoice},
	{regexp.MustCompile(`(?i)^(auto|auto[- ]advance)$`), ActionToggleAutoAdvance},
	{regexp.MustCompile(`(?i)^(sound|mute)$`), ActionToggleSound},
	{regexp.MustCompile(`(?i)^compact$`), ActionToggleCompact},
	{regexp.MustCompile(`(?i)^tips$`), ActionToggleTips},
}

// ParseCommand maps a typed line to an action. A bare Enter marks the step
// done, matching the enter key.
func ParseCommand(line string) Action {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ActionComplete
	}
	for _, rule := range commandRules {
		if rule.regex.MatchString(trimmed) {
			return rule.action
		}
	}
	return ActionNone
}

// HandleCommand parses line and performs the resulting action.
func (a *Adapter) HandleCommand(line string) (Action, bool) {
	action := ParseCommand(line)
	if action == ActionNone {
		a.log.Debug("input: unrecognized command %q", line)
		return ActionNone, false
	}
	return action, a.Perform(action)
}
