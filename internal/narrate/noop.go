package narrate

import (
	"context"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// NoOp is the narrator used when speech is not configured.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a disabled narrator.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Read returns domain.ErrNotConfigured.
func (n *NoOp) Read(_ context.Context, recipe *domain.Recipe) error {
	if recipe != nil {
		n.log.Debug("narration disabled; not reading recipe %d", recipe.ID)
	}
	return domain.ErrNotConfigured
}

// Stop does nothing.
func (n *NoOp) Stop() {}

// Enabled reports false.
func (n *NoOp) Enabled() bool { return false }
