package domain

// Point is a position in container pixel space.
type Point struct {
	X float64
	Y float64
}

// Size is the pixel size of the document container.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle in container pixel space.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// CenterY returns the vertical centre of the rectangle.
func (r Rect) CenterY() float64 {
	return r.Y + r.Height/2
}

// CardLayout is the computed margin position for one comment card.
// Top is the vertical offset within the margin column and Height the
// measured card height used for collision resolution.
type CardLayout struct {
	ID     string
	Top    float64
	Height float64
}

// ConnectorLine is a straight line from a selected comment's anchor
// point to its card in the margin.
type ConnectorLine struct {
	From Point
	To   Point
}

// LocatorDot marks the active placement point while a placement
// interaction is in progress.
type LocatorDot struct {
	At Point
}

// ToPixels converts a normalised annotation position to container
// pixel space against the current container size.
func (p AnnotationPosition) ToPixels(container Size) Point {
	return Point{
		X: p.XPercent / 100 * container.Width,
		Y: p.YPercent / 100 * container.Height,
	}
}
