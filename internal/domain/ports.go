package domain

import "context"

// RecipeSource provides recipes. Implementations can be in-memory,
// file-based, or API-backed.
type RecipeSource interface {
	List(ctx context.Context) ([]RecipeSummary, error)
	Get(ctx context.Context, id string) (*Recipe, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
}

// Narrator speaks a step's instruction. Implementations cancel any
// in-flight utterance before speaking the new one.
type Narrator interface {
	Narrate(ctx context.Context, stepIndex int, text string) error
	Stop()
}

// TimerNotifier is told when a timer runs out. Implementations can ring a
// chime, print to the terminal, or raise a system notification.
type TimerNotifier interface {
	TimerDone(ctx context.Context, timerID, timerName string) error
}
