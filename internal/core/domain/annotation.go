package domain

// AnnotationType identifies the kind of point annotation.
type AnnotationType string

// Recognised annotation types.
const (
	// AnnotationQuickmark is a bare marker with no comment.
	AnnotationQuickmark AnnotationType = "quickmark"

	// AnnotationComment anchors a comment entity to a point.
	AnnotationComment AnnotationType = "comment"

	// AnnotationText is free text placed directly on the page.
	AnnotationText AnnotationType = "text"
)

// IsValid returns true if the annotation type is recognised.
func (t AnnotationType) IsValid() bool {
	switch t {
	case AnnotationQuickmark, AnnotationComment, AnnotationText:
		return true
	default:
		return false
	}
}

// AnnotationPosition is a normalised position on a page. Percentages
// are relative to the document container, so the position survives
// scrolling and resizing.
type AnnotationPosition struct {
	// XPercent is the horizontal position in [0, 100].
	XPercent float64

	// YPercent is the vertical position in [0, 100].
	YPercent float64

	// Page is the 1-based page number.
	Page int
}

// PointAnnotation is a reviewer-placed marker at a normalised position.
// Annotations are created on a placement commit and never mutated in
// place afterwards.
type PointAnnotation struct {
	// ID is the unique identifier for the annotation.
	ID string

	// Type is the annotation kind.
	Type AnnotationType

	// Position is where the marker sits on the page.
	Position AnnotationPosition

	// Content is the free text for AnnotationText markers.
	Content string

	// CommentID links to the comment entity. Set exactly when
	// Type == AnnotationComment.
	CommentID string

	// TextSize is the display size for AnnotationText markers.
	TextSize int

	// TextColor is the display colour for AnnotationText markers.
	TextColor string
}

// AnnotationState is the transient state of an in-progress placement
// interaction. It is cleared on commit, cancel, or outside click.
type AnnotationState struct {
	// ActivePoint is the normalised position of the pending placement,
	// nil when no placement is in progress.
	ActivePoint *AnnotationPosition

	// ActionBar is the raw pixel position for the action menu, nil
	// when no placement is in progress.
	ActionBar *Point
}

// Active reports whether a placement interaction is in progress.
func (s AnnotationState) Active() bool {
	return s.ActivePoint != nil
}
