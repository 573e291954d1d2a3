// Package speech provides narration and timer alert implementations.
package speech

import (
	"context"

	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/logger"
)

// Compile-time interface check.
var _ domain.Narrator = (*NoOp)(nil)

// NoOp is a narrator that does nothing. Used when TTS is unavailable.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a silent narrator.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Narrate logs what would have been said.
func (n *NoOp) Narrate(ctx context.Context, stepIndex int, text string) error {
	n.log.Debug("speech no-op: would say step %d: %q", stepIndex+1, text)
	return nil
}

// Stop does nothing.
func (n *NoOp) Stop() {}
