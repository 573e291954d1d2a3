package domain

// Recipe is the input the session is built from. Instructions are free
// text; everything structured about a step comes from annotation.
type Recipe struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Servings     int      `yaml:"servings"`
	Ingredients  []string `yaml:"ingredients"`
	Instructions []string `yaml:"instructions"`
	Tags         []string `yaml:"tags"`
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID          string
	Name        string
	Description string
	Tags        []string
	StepCount   int
}
