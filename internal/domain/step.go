// Package domain defines the core types and interfaces for the cooking
// session. All other packages depend on domain; domain depends on nothing.
package domain

import "fmt"

// Difficulty grades how demanding a step is.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// String returns a human-readable difficulty.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// MarshalText lets Difficulty serialize as its name.
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Step is one annotated recipe instruction. Steps are built once when a
// recipe is loaded and never change afterwards.
type Step struct {
	ID                   string     `yaml:"id"`
	Index                int        `yaml:"index"`
	Instruction          string     `yaml:"instruction"`
	EstimatedTimeMinutes *int       `yaml:"estimated_time_minutes,omitempty"`
	Temperature          *int       `yaml:"temperature,omitempty"`
	Techniques           []string   `yaml:"techniques,omitempty"`
	Tips                 []string   `yaml:"tips,omitempty"`
	Warnings             []string   `yaml:"warnings,omitempty"`
	Equipment            []string   `yaml:"equipment,omitempty"`
	Difficulty           Difficulty `yaml:"difficulty"`
	NextStepPrep         string     `yaml:"next_step_prep,omitempty"`
}

// StepID returns the stable identifier for the step at the given position.
func StepID(index int) string {
	return fmt.Sprintf("step-%d", index)
}

// Minutes returns the estimated time, or 0 when none was found.
func (s Step) Minutes() int {
	if s.EstimatedTimeMinutes == nil {
		return 0
	}
	return *s.EstimatedTimeMinutes
}

// HasTime reports whether a duration was extracted for the step.
func (s Step) HasTime() bool { return s.EstimatedTimeMinutes != nil }
