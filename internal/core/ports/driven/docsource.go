package driven

import (
	"context"

	"github.com/redline-labs/redline-cli/internal/core/domain"
)

// DocumentSource loads the review bundle for a session. The bundle is
// produced externally (a similarity checker export) and is read-only
// to the core.
type DocumentSource interface {
	// Load reads the bundle. Returns domain.ErrBundleInvalid for
	// content that cannot be parsed.
	Load(ctx context.Context) (*domain.ReviewBundle, error)

	// Watch invokes fn each time the underlying bundle changes,
	// until the context is cancelled. Highlight injection is
	// asynchronous in the external layer, so changes may arrive well
	// after Load.
	Watch(ctx context.Context, fn func()) error
}
