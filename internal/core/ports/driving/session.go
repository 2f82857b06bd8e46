package driving

import (
	"github.com/redline-labs/redline-cli/internal/core/domain"
)

// ReviewSession is the single authoritative state for one
// document-viewing session: navigation, tabs, inclusion set, colour
// map, comments, and point annotations.
//
// All mutators are synchronous and atomic. They are total functions
// over the current state: unknown ids are silent no-ops and no
// operation panics. Mutations notify subscribed listeners before
// returning.
type ReviewSession interface {
	// Document returns the document under review.
	Document() domain.Document

	// MatchCards returns the session's match cards in bundle order.
	MatchCards() []domain.MatchCard

	// MatchCard returns the card with the given id.
	MatchCard(id string) (domain.MatchCard, bool)

	// Highlights returns the externally detected highlights.
	Highlights() []domain.Highlight

	// SetBundle replaces the read-only bundle data (document,
	// highlights, match cards). Reviewer-owned state is untouched.
	SetBundle(bundle *domain.ReviewBundle)

	// Navigation returns the current navigation state.
	Navigation() domain.NavigationState

	// SetNavigation shallow-merges the patch into the navigation
	// state. No validation is performed; callers are responsible for
	// consistency.
	SetNavigation(patch domain.NavigationPatch)

	// SelectMatch selects a match on a card. The highlight id is
	// captured from the card's match list when the index is in range;
	// an out-of-range index keeps the previous highlight id while the
	// source id, index, and navigation source are still set.
	SelectMatch(sourceID string, matchIndex int, source domain.NavigationSource)

	// ClearSelection resets navigation to its zero state.
	ClearSelection()

	// Tabs returns the current tab state.
	Tabs() domain.TabState

	// SetTabState shallow-merges the patch into the tab state.
	SetTabState(patch domain.TabPatch)

	// ToggleSourceInclusion toggles exclusion-set membership for the
	// source id. The operation is self-inverse.
	ToggleSourceInclusion(id string)

	// IsSourceExcluded reports exclusion-set membership.
	IsSourceExcluded(id string) bool

	// ExcludedSourceIDs returns the excluded ids in sorted order.
	ExcludedSourceIDs() []string

	// HoverHighlight records the hovered highlight; empty clears it.
	HoverHighlight(id string)

	// HoveredHighlightID returns the hovered highlight id.
	HoveredHighlightID() string

	// AssignColors deterministically assigns palette colours to the
	// ids by input order, overwriting any existing mapping for them.
	AssignColors(ids []string)

	// ColorFor returns the assigned colour for an id.
	ColorFor(id string) (string, bool)

	// AddComment appends a comment. A unique id is generated when
	// none is supplied and both timestamps are stamped to now.
	// The stored comment is returned.
	AddComment(input domain.Comment) domain.Comment

	// UpdateComment merges the patch into the matching comment and
	// refreshes UpdatedAt. Unknown ids are a no-op.
	UpdateComment(id string, patch domain.CommentPatch)

	// DeleteComment removes the comment. If it was selected, the
	// selection is cleared. Unknown ids are a no-op.
	DeleteComment(id string)

	// Comments returns all comments in insertion order.
	Comments() []domain.Comment

	// Comment returns the comment with the given id.
	Comment(id string) (domain.Comment, bool)

	// SelectComment records the selected comment; empty clears it.
	SelectComment(id string)

	// SelectedCommentID returns the selected comment id.
	SelectedCommentID() string

	// ToggleSidebar flips sidebar visibility.
	ToggleSidebar()

	// SetSidebarVisible sets sidebar visibility.
	SetSidebarVisible(visible bool)

	// SidebarVisible returns sidebar visibility.
	SidebarVisible() bool

	// SetActiveAnnotationPoint records the transient placement state.
	SetActiveAnnotationPoint(pos domain.AnnotationPosition, actionBar domain.Point)

	// ClearAnnotationState clears the transient placement state.
	ClearAnnotationState()

	// AnnotationState returns the transient placement state.
	AnnotationState() domain.AnnotationState

	// AddPointAnnotation stores an annotation, generating an id when
	// none is supplied, and returns the stored annotation.
	AddPointAnnotation(a domain.PointAnnotation) domain.PointAnnotation

	// PointAnnotations returns annotations in insertion order.
	PointAnnotations() []domain.PointAnnotation

	// Subscribe registers a listener invoked synchronously after each
	// mutation. The returned function removes the listener.
	Subscribe(fn func()) (unsubscribe func())
}
