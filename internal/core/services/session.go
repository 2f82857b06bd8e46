package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driving"
)

// Ensure Session implements the interface.
var _ driving.ReviewSession = (*Session)(nil)

// Session is the single source of truth for one document-viewing
// session. It owns navigation, tabs, the exclusion set, the colour
// map, comments, and point annotations; the bundle data (document,
// highlights, match cards) is read-only input it merely holds.
//
// Every mutator runs atomically under one mutex and then notifies
// listeners synchronously. Mutators are total: unknown ids are silent
// no-ops and nothing panics.
type Session struct {
	mu sync.Mutex

	document   domain.Document
	highlights []domain.Highlight
	matchCards []domain.MatchCard
	cardsByID  map[string]int

	navigation domain.NavigationState
	tabs       domain.TabState

	excluded map[string]struct{}
	colors   map[string]string
	palette  domain.Palette

	hoveredHighlightID string

	comments          []domain.Comment
	selectedCommentID string

	annotations     []domain.PointAnnotation
	annotationState domain.AnnotationState

	sidebarVisible bool

	listeners  map[int]func()
	nextListen int

	// now and newID are injectable for deterministic tests.
	now   func() time.Time
	newID func() string
}

// NewSession creates a session over the given bundle. A nil bundle
// yields an empty session; nil settings use defaults.
func NewSession(bundle *domain.ReviewBundle, settings *domain.AppSettings) *Session {
	if settings == nil {
		settings = domain.DefaultAppSettings()
	}
	s := &Session{
		cardsByID: make(map[string]int),
		excluded:  make(map[string]struct{}),
		colors:    make(map[string]string),
		palette:   settings.Palette,

		sidebarVisible: settings.SidebarVisible,

		listeners: make(map[int]func()),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	if bundle != nil {
		s.setBundleLocked(bundle)
	}
	return s
}

// SetClock overrides the session clock. Intended for tests.
func (s *Session) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// setBundleLocked installs bundle data. Caller holds the lock or has
// exclusive access during construction.
func (s *Session) setBundleLocked(bundle *domain.ReviewBundle) {
	s.document = bundle.Document
	s.highlights = append([]domain.Highlight(nil), bundle.Highlights...)
	s.matchCards = append([]domain.MatchCard(nil), bundle.MatchCards...)
	s.cardsByID = make(map[string]int, len(s.matchCards))
	for i := range s.matchCards {
		s.cardsByID[s.matchCards[i].ID] = i
	}
}

// SetBundle replaces the bundle data. Reviewer-owned state (comments,
// annotations, exclusions, navigation) is deliberately untouched; a
// stale SelectedHighlightID after a bundle swap is accepted behaviour.
func (s *Session) SetBundle(bundle *domain.ReviewBundle) {
	if bundle == nil {
		return
	}
	s.mu.Lock()
	s.setBundleLocked(bundle)
	s.mu.Unlock()
	s.notify()
}

// Document returns the document under review.
func (s *Session) Document() domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

// MatchCards returns the match cards in bundle order.
func (s *Session) MatchCards() []domain.MatchCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.MatchCard(nil), s.matchCards...)
}

// MatchCard returns the card with the given id.
func (s *Session) MatchCard(id string) (domain.MatchCard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.cardsByID[id]
	if !ok {
		return domain.MatchCard{}, false
	}
	return s.matchCards[i], true
}

// Highlights returns the externally detected highlights.
func (s *Session) Highlights() []domain.Highlight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Highlight(nil), s.highlights...)
}

// Navigation returns the current navigation state.
func (s *Session) Navigation() domain.NavigationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigation
}

// SetNavigation shallow-merges the patch into the navigation state.
// No validation: clearing the highlight when the source changes is the
// caller's duty, not an enforced invariant.
func (s *Session) SetNavigation(patch domain.NavigationPatch) {
	s.mu.Lock()
	if patch.SelectedSourceID != nil {
		s.navigation.SelectedSourceID = *patch.SelectedSourceID
	}
	if patch.SelectedMatchIndex != nil {
		s.navigation.SelectedMatchIndex = *patch.SelectedMatchIndex
	}
	if patch.SelectedHighlightID != nil {
		s.navigation.SelectedHighlightID = *patch.SelectedHighlightID
	}
	if patch.Source != nil {
		s.navigation.Source = *patch.Source
	}
	s.mu.Unlock()
	s.notify()
}

// SelectMatch selects a match on a card. The highlight id is captured
// from the card's match list when the index is in range. An
// out-of-range index keeps the previous highlight id; source id,
// index, and navigation source are set regardless of bounds.
func (s *Session) SelectMatch(sourceID string, matchIndex int, source domain.NavigationSource) {
	s.mu.Lock()
	if i, ok := s.cardsByID[sourceID]; ok {
		if m, ok := s.matchCards[i].MatchAt(matchIndex); ok {
			s.navigation.SelectedHighlightID = m.HighlightID
		}
	}
	s.navigation.SelectedSourceID = sourceID
	s.navigation.SelectedMatchIndex = matchIndex
	s.navigation.Source = source
	s.mu.Unlock()
	s.notify()
}

// ClearSelection resets navigation to its zero state.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	s.navigation = domain.NavigationState{}
	s.mu.Unlock()
	s.notify()
}

// Tabs returns the current tab state.
func (s *Session) Tabs() domain.TabState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tabs
}

// SetTabState shallow-merges the patch into the tab state.
func (s *Session) SetTabState(patch domain.TabPatch) {
	s.mu.Lock()
	if patch.PrimaryTab != nil {
		s.tabs.PrimaryTab = *patch.PrimaryTab
	}
	if patch.SecondaryTab != nil {
		s.tabs.SecondaryTab = *patch.SecondaryTab
	}
	if patch.ShowSimilarityHighlights != nil {
		s.tabs.ShowSimilarityHighlights = *patch.ShowSimilarityHighlights
	}
	s.mu.Unlock()
	s.notify()
}

// ToggleSourceInclusion toggles exclusion-set membership for the id.
// Applying it twice restores the original set.
func (s *Session) ToggleSourceInclusion(id string) {
	s.mu.Lock()
	if _, ok := s.excluded[id]; ok {
		delete(s.excluded, id)
	} else {
		s.excluded[id] = struct{}{}
	}
	s.mu.Unlock()
	s.notify()
}

// IsSourceExcluded reports exclusion-set membership. Absence means
// "included".
func (s *Session) IsSourceExcluded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.excluded[id]
	return ok
}

// ExcludedSourceIDs returns the excluded ids in sorted order.
func (s *Session) ExcludedSourceIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.excluded))
	for id := range s.excluded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HoverHighlight records the hovered highlight; empty clears it.
func (s *Session) HoverHighlight(id string) {
	s.mu.Lock()
	s.hoveredHighlightID = id
	s.mu.Unlock()
	s.notify()
}

// HoveredHighlightID returns the hovered highlight id.
func (s *Session) HoveredHighlightID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hoveredHighlightID
}

// AssignColors assigns palette colours to the ids by cycling the
// palette in input order. Existing mappings for the given ids are
// overwritten; the result is deterministic with respect to input
// order only.
func (s *Session) AssignColors(ids []string) {
	s.mu.Lock()
	for id, color := range s.palette.Assign(ids) {
		s.colors[id] = color
	}
	s.mu.Unlock()
	s.notify()
}

// ColorFor returns the assigned colour for an id.
func (s *Session) ColorFor(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	color, ok := s.colors[id]
	return color, ok
}

// AddComment appends a comment in insertion order. A unique id is
// generated when none is supplied and CreatedAt/UpdatedAt are both
// stamped to now.
func (s *Session) AddComment(input domain.Comment) domain.Comment {
	s.mu.Lock()
	if input.ID == "" {
		input.ID = s.newID()
	}
	now := s.now()
	input.CreatedAt = now
	input.UpdatedAt = now
	s.comments = append(s.comments, input)
	s.mu.Unlock()
	s.notify()
	return input
}

// UpdateComment merges the patch into the matching comment and
// refreshes UpdatedAt. Unknown ids are a no-op.
func (s *Session) UpdateComment(id string, patch domain.CommentPatch) {
	s.mu.Lock()
	updated := false
	for i := range s.comments {
		if s.comments[i].ID != id {
			continue
		}
		c := &s.comments[i]
		if patch.Content != nil {
			c.Content = *patch.Content
		}
		if patch.Text != nil {
			c.Text = *patch.Text
		}
		if patch.Page != nil {
			c.Page = *patch.Page
		}
		if patch.StartOffset != nil {
			c.StartOffset = *patch.StartOffset
		}
		if patch.EndOffset != nil {
			c.EndOffset = *patch.EndOffset
		}
		if patch.Source != nil {
			c.Source = *patch.Source
		}
		c.UpdatedAt = s.now()
		updated = true
		break
	}
	s.mu.Unlock()
	if updated {
		s.notify()
	}
}

// DeleteComment removes the comment and clears the selection if it
// referenced the deleted comment. Unknown ids are a no-op.
func (s *Session) DeleteComment(id string) {
	s.mu.Lock()
	deleted := false
	for i := range s.comments {
		if s.comments[i].ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			deleted = true
			break
		}
	}
	if deleted && s.selectedCommentID == id {
		s.selectedCommentID = ""
	}
	s.mu.Unlock()
	if deleted {
		s.notify()
	}
}

// Comments returns all comments in insertion order.
func (s *Session) Comments() []domain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Comment(nil), s.comments...)
}

// Comment returns the comment with the given id.
func (s *Session) Comment(id string) (domain.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID == id {
			return s.comments[i], true
		}
	}
	return domain.Comment{}, false
}

// SelectComment records the selected comment; empty clears it.
func (s *Session) SelectComment(id string) {
	s.mu.Lock()
	s.selectedCommentID = id
	s.mu.Unlock()
	s.notify()
}

// SelectedCommentID returns the selected comment id.
func (s *Session) SelectedCommentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCommentID
}

// ToggleSidebar flips sidebar visibility.
func (s *Session) ToggleSidebar() {
	s.mu.Lock()
	s.sidebarVisible = !s.sidebarVisible
	s.mu.Unlock()
	s.notify()
}

// SetSidebarVisible sets sidebar visibility.
func (s *Session) SetSidebarVisible(visible bool) {
	s.mu.Lock()
	s.sidebarVisible = visible
	s.mu.Unlock()
	s.notify()
}

// SidebarVisible returns sidebar visibility.
func (s *Session) SidebarVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarVisible
}

// SetActiveAnnotationPoint records the transient placement state: the
// normalised point and the raw pixel position for the action menu.
func (s *Session) SetActiveAnnotationPoint(pos domain.AnnotationPosition, actionBar domain.Point) {
	s.mu.Lock()
	s.annotationState = domain.AnnotationState{
		ActivePoint: &pos,
		ActionBar:   &actionBar,
	}
	s.mu.Unlock()
	s.notify()
}

// ClearAnnotationState clears the transient placement state.
func (s *Session) ClearAnnotationState() {
	s.mu.Lock()
	s.annotationState = domain.AnnotationState{}
	s.mu.Unlock()
	s.notify()
}

// AnnotationState returns the transient placement state.
func (s *Session) AnnotationState() domain.AnnotationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.annotationState
}

// AddPointAnnotation stores an annotation in insertion order,
// generating an id when none is supplied.
func (s *Session) AddPointAnnotation(a domain.PointAnnotation) domain.PointAnnotation {
	s.mu.Lock()
	if a.ID == "" {
		a.ID = s.newID()
	}
	s.annotations = append(s.annotations, a)
	s.mu.Unlock()
	s.notify()
	return a
}

// PointAnnotations returns annotations in insertion order.
func (s *Session) PointAnnotations() []domain.PointAnnotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.PointAnnotation(nil), s.annotations...)
}

// Subscribe registers a listener invoked synchronously after each
// mutation. The returned function removes the listener and is safe to
// call more than once.
func (s *Session) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextListen
	s.nextListen++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// notify invokes listeners outside the lock so they can read session
// state without deadlocking.
func (s *Session) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
