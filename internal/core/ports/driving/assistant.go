package driving

import (
	"context"

	"github.com/redline-labs/redline-cli/internal/core/domain"
)

// AssistantService accepts structured directives from the assistant
// collaborator and applies them to the review session.
type AssistantService interface {
	// Dispatch applies one directive. Returns
	// domain.ErrUnsupportedAction for unrecognised types and
	// domain.ErrRateLimited when directives arrive too fast.
	Dispatch(ctx context.Context, action domain.AssistantAction) error
}
