package driving

import (
	"github.com/redline-labs/redline-cli/internal/core/domain"
)

// PlacementService runs the point-annotation placement interaction:
// Idle -> Placing -> (Committed | Cancelled).
type PlacementService interface {
	// Begin starts a placement from a pointer click. It returns false
	// without changing state when the click target suppresses
	// placement or the container rectangle is degenerate.
	Begin(click domain.PlacementClick) bool

	// Placing reports whether a placement is in progress.
	Placing() bool

	// CommitQuickmark creates a quickmark annotation at the active
	// point. Returns domain.ErrNoActivePlacement when idle.
	CommitQuickmark() (domain.PointAnnotation, error)

	// CommitComment creates a comment-anchored annotation and its
	// comment entity with a shared id.
	CommitComment() (domain.PointAnnotation, domain.Comment, error)

	// CommitText creates a free-text annotation with default size and
	// colour, editable afterwards by external components.
	CommitText() (domain.PointAnnotation, error)

	// Cancel discards the in-progress placement without creating any
	// entity. Idle cancels are a no-op.
	Cancel()
}
