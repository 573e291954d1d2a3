// Package annotate turns free-text recipe instructions into structured
// steps. It is heuristic: a handful of regular expressions and an ordered
// keyword rule table. Nothing here fails; a pattern that does not match
// simply leaves its field empty.
package annotate

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/ottostep/internal/domain"
)

var (
	// Longer unit spellings come first so "minutes" never stops at "min".
	timePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(hours?|hrs?|minutes?|mins?|seconds?|secs?)\b`)

	// A bare number is not a temperature; it needs a degree sign, the word
	// "degrees", or an uppercase unit letter glued to the digits ("350F").
	// Lowercase "2c" is a quantity of cups.
	tempPattern = regexp.MustCompile(`(\d+)(?:\s*°\s*[fFcC]?|\s*(?i:degrees?)|[FC]\b)`)
)

// Hint texts for the following step.
const (
	HintPreheat  = "Start preheating now so it's ready for the next step."
	HintPrepNext = "Prep the ingredients for the next step while this one cooks."
)

// Annotate builds the step at position index from its instruction text.
// all is the full instruction list; it is only consulted for the next-step
// hint. Annotate is pure and deterministic.
func Annotate(instruction string, index int, all []string) domain.Step {
	step := domain.Step{
		ID:          domain.StepID(index),
		Index:       index,
		Instruction: instruction,
		Difficulty:  domain.DifficultyEasy,
	}
	if strings.TrimSpace(instruction) == "" {
		return step
	}

	step.EstimatedTimeMinutes = extractMinutes(instruction)
	step.Temperature = extractTemperature(instruction)

	lower := strings.ToLower(instruction)
	p := applyRules(lower)
	step.Techniques = p.techniques
	step.Tips = p.tips
	step.Warnings = p.warnings
	step.Equipment = p.equipment

	if p.difficulty != nil {
		step.Difficulty = *p.difficulty
	} else {
		step.Difficulty = classify(lower)
	}

	step.NextStepPrep = nextStepHint(step, index, all)
	return step
}

// Build annotates every instruction, preserving order and position.
// An empty list yields an empty, non-nil slice.
func Build(instructions []string) []domain.Step {
	steps := make([]domain.Step, 0, len(instructions))
	for i, text := range instructions {
		steps = append(steps, Annotate(text, i, instructions))
	}
	return steps
}

// extractMinutes returns the last duration phrase in text as whole minutes.
// Trailing phrases usually describe the step itself ("... then simmer for
// 10 minutes").
func extractMinutes(text string) *int {
	matches := timePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	last := matches[len(matches)-1]

	n, err := strconv.ParseFloat(last[1], 64)
	if err != nil {
		return nil
	}

	unit := strings.ToLower(last[2])
	switch {
	case strings.HasPrefix(unit, "h"):
		n *= 60
	case strings.HasPrefix(unit, "s"):
		n /= 60
	}

	minutes := int(math.Round(n))
	return &minutes
}

// extractTemperature returns the first temperature-looking number. The
// unit is not kept; source text is not reliable about F versus C.
func extractTemperature(text string) *int {
	m := tempPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// nextStepHint looks one instruction ahead. At most one hint; first match wins.
func nextStepHint(step domain.Step, index int, all []string) string {
	if index < 0 || index >= len(all)-1 {
		return ""
	}
	next := strings.ToLower(all[index+1])

	switch {
	case strings.Contains(next, "preheat"):
		return HintPreheat
	case strings.Contains(next, "add") && step.Minutes() > 3:
		return HintPrepNext
	}
	return ""
}
