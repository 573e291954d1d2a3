package annotate

import (
	"strings"

	"github.com/hammamikhairi/ottostep/internal/domain"
)

// patch is what a rule contributes to a step. Slices are appended in rule
// order; a non-nil difficulty overwrites whatever an earlier rule set.
type patch struct {
	techniques []string
	tips       []string
	warnings   []string
	equipment  []string
	difficulty *domain.Difficulty
}

// rule fires when match reports true for the lowercase instruction.
type rule struct {
	name   string
	match  func(lower string) bool
	effect func(lower string) patch
}

// rules is evaluated top to bottom and every matching rule fires. Keep the
// order stable: later difficulty assignments win.
//
//	saute, boil, simmer, knife, whisk, fold, season,
//	garlic, hot-oil, dairy, chocolate
var rules = []rule{
	{
		name:  "saute",
		match: containsAny("sauté", "saute", "fry"),
		effect: fixed(patch{
			techniques: []string{"sautéing"},
			tips:       []string{"Heat the pan before adding oil, then keep the food moving."},
			equipment:  []string{"skillet"},
			difficulty: difficulty(domain.DifficultyMedium),
		}),
	},
	{
		name:  "boil",
		match: containsAny("boil"),
		effect: fixed(patch{
			techniques: []string{"boiling"},
			tips:       []string{"Salt the water once it reaches a rolling boil."},
			equipment:  []string{"large pot"},
		}),
	},
	{
		name:  "simmer",
		match: containsAny("simmer"),
		effect: fixed(patch{
			techniques: []string{"simmering"},
			tips:       []string{"Keep it at gentle bubbles; a hard boil will toughen it."},
			equipment:  []string{"saucepan"},
		}),
	},
	{
		name:  "knife",
		match: containsAny("chop", "dice", "mince"),
		effect: func(lower string) patch {
			p := patch{
				techniques: []string{"knife work"},
				tips:       []string{"A sharp knife is safer than a dull one. Curl your fingertips under."},
				equipment:  []string{"chef's knife", "cutting board"},
				difficulty: difficulty(domain.DifficultyEasy),
			}
			if strings.Contains(lower, "mince") || strings.Contains(lower, "finely") {
				p.difficulty = difficulty(domain.DifficultyMedium)
			}
			return p
		},
	},
	{
		name:  "whisk",
		match: containsAny("whisk", "beat"),
		effect: fixed(patch{
			techniques: []string{"whisking"},
			tips:       []string{"Whisk in a figure-eight to work in air quickly."},
			equipment:  []string{"whisk", "mixing bowl"},
		}),
	},
	{
		name:  "fold",
		match: containsAny("fold"),
		effect: fixed(patch{
			techniques: []string{"folding"},
			tips:       []string{"Cut down the middle and turn the bowl; don't stir or you'll lose the air."},
			equipment:  []string{"spatula"},
			difficulty: difficulty(domain.DifficultyMedium),
		}),
	},
	{
		name:  "season",
		match: containsAny("season", "salt"),
		effect: fixed(patch{
			tips: []string{"Taste as you go and adjust the seasoning at the end."},
		}),
	},
	{
		name:  "garlic",
		match: containsAny("garlic"),
		effect: fixed(patch{
			warnings: []string{"Watch the garlic closely. It burns quickly and turns bitter."},
		}),
	},
	{
		name: "hot-oil",
		match: func(lower string) bool {
			if strings.Contains(lower, "hot oil") || strings.Contains(lower, "heat oil") || strings.Contains(lower, "heat the oil") {
				return true
			}
			return strings.Contains(lower, "oil") && strings.Contains(lower, "smok")
		},
		effect: fixed(patch{
			warnings: []string{"Hot oil can smoke and spatter. Lower the heat if it starts smoking."},
		}),
	},
	{
		name: "dairy",
		match: func(lower string) bool {
			return containsAny(dairyWords...)(lower) && containsAny(heatWords...)(lower)
		},
		effect: fixed(patch{
			warnings: []string{"Keep dairy below a boil or it may curdle."},
		}),
	},
	{
		name: "chocolate",
		match: func(lower string) bool {
			return strings.Contains(lower, "chocolate") && strings.Contains(lower, "melt")
		},
		effect: fixed(patch{
			tips:      []string{"Melt chocolate gently over a double boiler, stirring often."},
			warnings:  []string{"Chocolate scorches easily. Take it off the heat while a few lumps remain."},
			equipment: []string{"double boiler"},
		}),
	},
}

// Dairy only curdles on the heat; "cream the butter and sugar" is safe.
var (
	dairyWords = []string{"cream", "milk", "butter", "cheese", "yogurt", "yoghurt"}
	heatWords  = []string{"heat", "boil", "simmer", "melt", "warm", "hot", "stove", "cook"}
)

// Fallback keyword lists used only when no rule set a difficulty.
var (
	complexKeywords = []string{"julienne", "brunoise", "chiffonade", "emulsify", "flambé", "flambe", "confit", "sous vide", "soufflé", "souffle"}
	mediumKeywords  = []string{"sauté", "saute", "braise", "reduce", "whisk", "fold", "temper", "sear", "poach"}
)

// applyRules runs the whole table against lower and merges the patches.
func applyRules(lower string) patch {
	var out patch
	for _, r := range rules {
		if !r.match(lower) {
			continue
		}
		p := r.effect(lower)
		out.techniques = appendUnique(out.techniques, p.techniques...)
		out.equipment = appendUnique(out.equipment, p.equipment...)
		out.tips = append(out.tips, p.tips...)
		out.warnings = append(out.warnings, p.warnings...)
		if p.difficulty != nil {
			out.difficulty = p.difficulty
		}
	}
	return out
}

// classify grades a step from its vocabulary alone.
func classify(lower string) domain.Difficulty {
	switch {
	case containsAny(complexKeywords...)(lower):
		return domain.DifficultyHard
	case containsAny(mediumKeywords...)(lower):
		return domain.DifficultyMedium
	default:
		return domain.DifficultyEasy
	}
}

func containsAny(words ...string) func(string) bool {
	return func(s string) bool {
		for _, w := range words {
			if strings.Contains(s, w) {
				return true
			}
		}
		return false
	}
}

func fixed(p patch) func(string) patch {
	return func(string) patch { return p }
}

func difficulty(d domain.Difficulty) *domain.Difficulty { return &d }

// appendUnique appends items not already present, keeping first-seen order.
func appendUnique(dst []string, items ...string) []string {
	for _, it := range items {
		seen := false
		for _, d := range dst {
			if d == it {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, it)
		}
	}
	return dst
}
