package annotate

import (
	"slices"
	"strings"
	"testing"

	"github.com/hammamikhairi/ottostep/internal/domain"
)

func TestExtractMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
		found bool
	}{
		{"Bake for 1 hour", 60, true},
		{"Simmer for 90 seconds", 2, true},
		{"Mix for 2 minutes, then rest for 10 minutes", 10, true},
		{"Roast 1.5 hours until golden", 90, true},
		{"Rest 45 secs", 1, true},
		{"Cook 3 mins per side", 3, true},
		{"Bake 2 hrs", 120, true},
		{"Braise for 1 hour, then uncover and cook 20 minutes more", 20, true},
		{"Stir until thick", 0, false},
		{"Serve immediately", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			step := Annotate(tt.input, 0, []string{tt.input})
			if step.HasTime() != tt.found {
				t.Fatalf("HasTime = %v, want %v", step.HasTime(), tt.found)
			}
			if tt.found && *step.EstimatedTimeMinutes != tt.want {
				t.Fatalf("EstimatedTimeMinutes = %d, want %d", *step.EstimatedTimeMinutes, tt.want)
			}
		})
	}
}

func TestExtractTemperature(t *testing.T) {
	tests := []struct {
		input string
		want  int
		found bool
	}{
		{"Preheat oven to 350°F", 350, true},
		{"Heat oil to 180°C", 180, true},
		{"Preheat the oven to 400 degrees", 400, true},
		{"Bake at 425F on the middle rack", 425, true},
		{"Roast at 200 °c, then 180°C", 200, true},
		{"Bake for 1 hour", 0, false},
		{"Add 2 cups of flour", 0, false},
		{"Add 2c flour", 0, false},
		{"Whisk in 1c milk", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			step := Annotate(tt.input, 0, nil)
			if (step.Temperature != nil) != tt.found {
				t.Fatalf("temperature found = %v, want %v", step.Temperature != nil, tt.found)
			}
			if tt.found && *step.Temperature != tt.want {
				t.Fatalf("Temperature = %d, want %d", *step.Temperature, tt.want)
			}
		})
	}
}

func TestRulesAreAdditive(t *testing.T) {
	step := Annotate("Sauté garlic in hot oil", 0, nil)

	if !slices.Contains(step.Techniques, "sautéing") {
		t.Errorf("techniques = %v, want sautéing", step.Techniques)
	}
	if !hasWarning(step, "garlic") {
		t.Errorf("warnings = %v, want a garlic warning", step.Warnings)
	}
	if !hasWarning(step, "oil") {
		t.Errorf("warnings = %v, want a hot oil warning", step.Warnings)
	}
	if !slices.Contains(step.Equipment, "skillet") {
		t.Errorf("equipment = %v, want skillet", step.Equipment)
	}
}

func TestRuleOrderAndSets(t *testing.T) {
	step := Annotate("Boil the pasta, then simmer the sauce and whisk in the cream", 0, nil)

	wantTech := []string{"boiling", "simmering", "whisking"}
	if !slices.Equal(step.Techniques, wantTech) {
		t.Fatalf("techniques = %v, want %v", step.Techniques, wantTech)
	}
	if !hasWarning(step, "curdle") {
		t.Fatalf("warnings = %v, want dairy warning", step.Warnings)
	}

	// Two knife words still give one technique and one set of equipment.
	knife := Annotate("Chop the onion and dice the carrot", 0, nil)
	if len(knife.Techniques) != 1 || knife.Techniques[0] != "knife work" {
		t.Fatalf("techniques = %v, want [knife work]", knife.Techniques)
	}
	if !slices.Equal(knife.Equipment, []string{"chef's knife", "cutting board"}) {
		t.Fatalf("equipment = %v", knife.Equipment)
	}
}

func TestDairyNeedsHeat(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Melt butter over high heat", true},
		{"Warm the milk until it steams", true},
		{"Simmer with the cream for 5 minutes", true},
		{"Stir the cheese into the hot pasta", true},
		{"Heat the yogurt gently", true},
		{"Cream the butter and sugar", false},
		{"Grate the cheese", false},
		{"Pour in the milk", false},
		{"Bring the water to a boil", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			step := Annotate(tt.input, 0, nil)
			if got := hasWarning(step, "curdle"); got != tt.want {
				t.Fatalf("curdle warning = %v, want %v (warnings %v)", got, tt.want, step.Warnings)
			}
		})
	}
}

func TestMeltingChocolate(t *testing.T) {
	step := Annotate("Melt the chocolate with the butter", 0, nil)
	if !hasWarning(step, "scorch") {
		t.Errorf("warnings = %v, want chocolate warning", step.Warnings)
	}
	if len(step.Tips) == 0 || !strings.Contains(step.Tips[0], "double boiler") {
		t.Errorf("tips = %v, want double boiler tip", step.Tips)
	}
}

func TestSeasonIsTipOnly(t *testing.T) {
	step := Annotate("Season to taste", 0, nil)
	if len(step.Techniques) != 0 {
		t.Errorf("techniques = %v, want none", step.Techniques)
	}
	if len(step.Tips) != 1 {
		t.Errorf("tips = %v, want exactly one", step.Tips)
	}
	if step.Warnings != nil {
		t.Errorf("warnings = %v, want nil", step.Warnings)
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Difficulty
	}{
		{"Flambé", domain.DifficultyHard},
		{"Julienne the carrots", domain.DifficultyHard},
		{"Braise the short ribs", domain.DifficultyMedium},
		{"Whisk the eggs", domain.DifficultyMedium},
		{"Finely chop the parsley", domain.DifficultyMedium},
		{"Mince the shallot", domain.DifficultyMedium},
		{"Chop the onion", domain.DifficultyEasy},
		{"Fold in the egg whites", domain.DifficultyMedium},
		{"Serve warm", domain.DifficultyEasy},
		// A rule-set difficulty wins over the keyword fallback.
		{"Mince the garlic and flambé", domain.DifficultyMedium},
		{"Chop the parsley and julienne the carrots", domain.DifficultyEasy},
		{"Fry the eggs", domain.DifficultyMedium},
		{"Sauté the onions", domain.DifficultyMedium},
		// Later rules overwrite earlier ones: sauté sets medium, then chopping sets easy.
		{"Fry the onion, then chop the herbs", domain.DifficultyEasy},
		{"Saute the leeks, then finely dice the chives", domain.DifficultyMedium},
		{"Boil the potatoes", domain.DifficultyEasy},
		{"Simmer until reduced", domain.DifficultyMedium},
		{"Beat the eggs and fold in the flour", domain.DifficultyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Annotate(tt.input, 0, nil).Difficulty; got != tt.want {
				t.Fatalf("difficulty = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNextStepHint(t *testing.T) {
	tests := []struct {
		name  string
		all   []string
		index int
		want  string
	}{
		{"preheat next", []string{"Chop the onion", "Preheat oven to 350°F"}, 0, HintPreheat},
		{"add next with long step", []string{"Simmer for 10 minutes", "Add the peas"}, 0, HintPrepNext},
		{"add next with short step", []string{"Simmer for 2 minutes", "Add the peas"}, 0, ""},
		{"add next without time", []string{"Stir well", "Add the peas"}, 0, ""},
		{"preheat wins over add", []string{"Simmer for 10 minutes", "Preheat the oven and add the rack"}, 0, HintPreheat},
		{"last step", []string{"Chop", "Preheat oven"}, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := Annotate(tt.all[tt.index], tt.index, tt.all)
			if step.NextStepPrep != tt.want {
				t.Fatalf("NextStepPrep = %q, want %q", step.NextStepPrep, tt.want)
			}
		})
	}
}

func TestEmptyInstruction(t *testing.T) {
	for _, in := range []string{"", "   "} {
		step := Annotate(in, 2, []string{"a", "b", in, "Preheat oven"})
		if step.ID != "step-2" || step.Index != 2 {
			t.Fatalf("id = %s index = %d", step.ID, step.Index)
		}
		if step.Difficulty != domain.DifficultyEasy {
			t.Fatalf("difficulty = %s, want easy", step.Difficulty)
		}
		if step.HasTime() || step.Temperature != nil || step.Techniques != nil ||
			step.Tips != nil || step.Warnings != nil || step.Equipment != nil || step.NextStepPrep != "" {
			t.Fatalf("expected bare step, got %+v", step)
		}
	}
}

func TestBuild(t *testing.T) {
	if got := Build(nil); got == nil || len(got) != 0 {
		t.Fatalf("Build(nil) = %v, want empty slice", got)
	}

	instructions := []string{"Preheat oven to 375°F", "Whisk eggs", "Bake 25 minutes"}
	steps := Build(instructions)
	if len(steps) != len(instructions) {
		t.Fatalf("len = %d, want %d", len(steps), len(instructions))
	}
	for i, s := range steps {
		if s.Index != i || s.ID != domain.StepID(i) || s.Instruction != instructions[i] {
			t.Errorf("step %d = %+v", i, s)
		}
	}
}

func TestAnnotateIsDeterministic(t *testing.T) {
	all := []string{"Sauté the onions for 5 minutes", "Add the garlic"}
	a := Annotate(all[0], 0, all)
	b := Annotate(all[0], 0, all)
	if !slices.Equal(a.Techniques, b.Techniques) || !slices.Equal(a.Tips, b.Tips) ||
		a.NextStepPrep != b.NextStepPrep || a.Difficulty != b.Difficulty {
		t.Fatalf("annotations differ: %+v vs %+v", a, b)
	}
	// Mutating one result must not leak into the shared rule table.
	a.Tips[0] = "changed"
	if c := Annotate(all[0], 0, all); c.Tips[0] == "changed" {
		t.Fatal("rule table was mutated through a returned step")
	}
}

func hasWarning(step domain.Step, substr string) bool {
	for _, w := range step.Warnings {
		if strings.Contains(strings.ToLower(w), substr) {
			return true
		}
	}
	return false
}
