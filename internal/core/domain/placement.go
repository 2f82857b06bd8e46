package domain

// TargetKind classifies what a pointer click landed on. Placement only
// begins on document content; other targets suppress the interaction.
type TargetKind string

// Recognised click targets.
const (
	// TargetContent is the document content area.
	TargetContent TargetKind = "content"

	// TargetAnnotation is an existing annotation marker.
	TargetAnnotation TargetKind = "annotation"

	// TargetInput is a text input element.
	TargetInput TargetKind = "input"

	// TargetButton is a button element.
	TargetButton TargetKind = "button"
)

// BeginsPlacement reports whether a click on this target starts a
// placement interaction.
func (k TargetKind) BeginsPlacement() bool {
	return k == TargetContent
}

// PlacementClick is the raw input for starting a placement: the
// pointer's viewport position, the document container's viewport
// rectangle, the page under the pointer, and what was clicked.
type PlacementClick struct {
	// Viewport is the pointer position in viewport pixels.
	Viewport Point

	// Container is the document container's viewport rectangle.
	Container Rect

	// Page is the 1-based page number under the pointer.
	Page int

	// Target classifies the clicked element.
	Target TargetKind
}

// Normalise converts the click to a percentage-of-container position,
// independent of scroll offset and container size. Returns false when
// the container rectangle is degenerate.
func (c PlacementClick) Normalise() (AnnotationPosition, bool) {
	if c.Container.Width <= 0 || c.Container.Height <= 0 {
		return AnnotationPosition{}, false
	}
	return AnnotationPosition{
		XPercent: (c.Viewport.X - c.Container.X) / c.Container.Width * 100,
		YPercent: (c.Viewport.Y - c.Container.Y) / c.Container.Height * 100,
		Page:     c.Page,
	}, true
}
