package services

import (
	"github.com/google/uuid"

	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driving"
)

// Defaults for free-text annotations.
const (
	// DefaultTextSize is the initial size of a text annotation.
	DefaultTextSize = 14

	// DefaultTextColor is the initial colour of a text annotation.
	DefaultTextColor = "#1F2937"
)

// Ensure Placer implements the interface.
var _ driving.PlacementService = (*Placer)(nil)

// Placer runs the point-annotation placement interaction. The
// transient state (active point, action menu position) lives in the
// session's AnnotationState, so Placer itself is stateless between
// calls: Placing is derived, not stored.
type Placer struct {
	session driving.ReviewSession

	// newID is injectable for deterministic tests.
	newID func() string
}

// NewPlacer creates a placement service over the session.
func NewPlacer(session driving.ReviewSession) *Placer {
	return &Placer{
		session: session,
		newID:   func() string { return uuid.New().String() },
	}
}

// Begin starts a placement from a pointer click. The click is
// suppressed when it targets an existing annotation, input, or button,
// or when the container rectangle is degenerate. On success the
// normalised point and the raw pixel position for the action menu are
// recorded in the session.
func (p *Placer) Begin(click domain.PlacementClick) bool {
	if !click.Target.BeginsPlacement() {
		return false
	}
	pos, ok := click.Normalise()
	if !ok {
		return false
	}
	p.session.SetActiveAnnotationPoint(pos, click.Viewport)
	return true
}

// Placing reports whether a placement is in progress.
func (p *Placer) Placing() bool {
	return p.session.AnnotationState().Active()
}

// CommitQuickmark creates a quickmark annotation at the active point.
// No comment entity is created.
func (p *Placer) CommitQuickmark() (domain.PointAnnotation, error) {
	pos, err := p.activePoint()
	if err != nil {
		return domain.PointAnnotation{}, err
	}
	a := p.session.AddPointAnnotation(domain.PointAnnotation{
		Type:     domain.AnnotationQuickmark,
		Position: pos,
	})
	p.session.ClearAnnotationState()
	return a, nil
}

// CommitComment creates a comment-anchored annotation and its comment
// entity in one step. The two share an id: the annotation's CommentID
// equals the comment's ID. This dual write is the invariant linking
// annotation markers to the comment list.
func (p *Placer) CommitComment() (domain.PointAnnotation, domain.Comment, error) {
	pos, err := p.activePoint()
	if err != nil {
		return domain.PointAnnotation{}, domain.Comment{}, err
	}
	id := p.newID()
	a := p.session.AddPointAnnotation(domain.PointAnnotation{
		Type:      domain.AnnotationComment,
		Position:  pos,
		CommentID: id,
	})
	c := p.session.AddComment(domain.Comment{
		ID:   id,
		Type: domain.CommentPoint,
		Page: pos.Page,
	})
	p.session.ClearAnnotationState()
	return a, c, nil
}

// CommitText creates a free-text annotation with default size and
// colour. The text is edited afterwards by external components.
func (p *Placer) CommitText() (domain.PointAnnotation, error) {
	pos, err := p.activePoint()
	if err != nil {
		return domain.PointAnnotation{}, err
	}
	a := p.session.AddPointAnnotation(domain.PointAnnotation{
		Type:      domain.AnnotationText,
		Position:  pos,
		TextSize:  DefaultTextSize,
		TextColor: DefaultTextColor,
	})
	p.session.ClearAnnotationState()
	return a, nil
}

// Cancel discards the in-progress placement without creating any
// entity. Cancelling while idle is a no-op.
func (p *Placer) Cancel() {
	if !p.session.AnnotationState().Active() {
		return
	}
	p.session.ClearAnnotationState()
}

// activePoint returns the pending placement position.
func (p *Placer) activePoint() (domain.AnnotationPosition, error) {
	state := p.session.AnnotationState()
	if state.ActivePoint == nil {
		return domain.AnnotationPosition{}, domain.ErrNoActivePlacement
	}
	return *state.ActivePoint, nil
}
