package driven

// ElementKind identifies which rendered element an ElementRef addresses.
type ElementKind string

// Recognised element kinds.
const (
	// ElementContainer is the document content root.
	ElementContainer ElementKind = "container"

	// ElementHighlight is a highlight span, addressed by comment id.
	ElementHighlight ElementKind = "highlight"

	// ElementCard is a comment card, addressed by comment id.
	ElementCard ElementKind = "card"
)

// ElementRef addresses one rendered element in the external layer.
type ElementRef struct {
	Kind ElementKind
	ID   string
}

// HighlightRef addresses the highlight span owned by a comment.
func HighlightRef(commentID string) ElementRef {
	return ElementRef{Kind: ElementHighlight, ID: commentID}
}

// CardRef addresses a comment's card.
func CardRef(commentID string) ElementRef {
	return ElementRef{Kind: ElementCard, ID: commentID}
}

// Metrics is a measured element's vertical extent relative to the
// document content container.
type Metrics struct {
	// Top is the offset from the container top, accumulated across
	// positioned ancestors so it is independent of scroll position.
	Top float64

	// Height is the rendered height of the element.
	Height float64
}

// LayoutOracle reads the layout of externally rendered elements.
// The reconciliation algorithm depends only on this interface, keeping
// it pure and testable against synthetic measurements.
//
// Measure returns domain.ErrNoContainer when the content root is
// absent and domain.ErrElementMissing when the addressed element has
// not been rendered yet. Both are benign for callers that can retry on
// the next trigger.
type LayoutOracle interface {
	// Measure returns the element's extent relative to the container.
	Measure(ref ElementRef) (Metrics, error)

	// ObserveResize registers a callback fired whenever the element's
	// rendered size changes. The returned function removes the
	// observer; implementations must tolerate double removal.
	ObserveResize(ref ElementRef, fn func()) (unsubscribe func())

	// ContainerSize returns the current pixel size of the content
	// root, or false when it is absent.
	ContainerSize() (width, height float64, ok bool)
}
