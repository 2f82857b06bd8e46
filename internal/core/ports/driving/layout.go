package driving

import (
	"github.com/redline-labs/redline-cli/internal/core/domain"
)

// LayoutService publishes the margin layout for comment cards: one
// entry per measurable comment, ordered by document position, with no
// two cards' vertical extents overlapping.
type LayoutService interface {
	// Positions returns the most recently published layout.
	Positions() []domain.CardLayout

	// Subscribe registers a listener invoked after each published
	// layout. The returned function removes the listener.
	Subscribe(fn func()) (unsubscribe func())

	// Reconcile runs a measurement pass immediately, bypassing the
	// debounce. Missing elements are skipped; a missing container
	// leaves the previous layout untouched.
	Reconcile()

	// Close cancels any pending debounce and removes all resize
	// observers.
	Close()
}

// GeometryService computes the visual primitives drawn over the
// document: the connector line for the selected comment and the
// locator dot for an in-progress placement.
type GeometryService interface {
	// Connector returns the line from the selected comment's anchor
	// to its card, or false when no selected comment with a point
	// annotation and a known card rectangle exists.
	Connector() (domain.ConnectorLine, bool)

	// Locator returns the active placement dot, or false when no
	// placement is in progress.
	Locator() (domain.LocatorDot, bool)
}
