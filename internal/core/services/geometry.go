package services

import (
	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driven"
	"github.com/redline-labs/redline-cli/internal/core/ports/driving"
)

// Margin column geometry. The column sits to the right of the content
// container; the connector attaches a fixed inset from a card's left
// edge, vertically centred on the card.
const (
	// MarginGutter separates the content container from the column.
	MarginGutter = 16.0

	// MarginColumnWidth is the fixed width of the comment column.
	MarginColumnWidth = 240.0

	// ConnectorCardInset is the horizontal attach offset from a
	// card's left edge.
	ConnectorCardInset = 8.0
)

// Ensure Geometry implements the interface.
var _ driving.GeometryService = (*Geometry)(nil)

// Geometry maps session and layout state to the visual primitives
// drawn over the document. Only the single currently selected comment
// renders a connector; the locator dot renders whenever a placement is
// in progress, independent of comment selection.
type Geometry struct {
	session driving.ReviewSession
	layout  driving.LayoutService
	oracle  driven.LayoutOracle
}

// NewGeometry creates a geometry service.
func NewGeometry(session driving.ReviewSession, layout driving.LayoutService, oracle driven.LayoutOracle) *Geometry {
	return &Geometry{session: session, layout: layout, oracle: oracle}
}

// Connector returns the line from the selected comment's anchor point
// to its card. It reports false when there is no selected comment, the
// comment has no point annotation, the card is not in the current
// layout, or the container is absent.
func (g *Geometry) Connector() (domain.ConnectorLine, bool) {
	selected := g.session.SelectedCommentID()
	if selected == "" {
		return domain.ConnectorLine{}, false
	}

	var anchor *domain.AnnotationPosition
	for _, a := range g.session.PointAnnotations() {
		if a.Type == domain.AnnotationComment && a.CommentID == selected {
			pos := a.Position
			anchor = &pos
			break
		}
	}
	if anchor == nil {
		return domain.ConnectorLine{}, false
	}

	card, ok := g.cardRect(selected)
	if !ok {
		return domain.ConnectorLine{}, false
	}

	width, height, ok := g.oracle.ContainerSize()
	if !ok {
		return domain.ConnectorLine{}, false
	}

	return domain.ConnectorLine{
		From: anchor.ToPixels(domain.Size{Width: width, Height: height}),
		To:   domain.Point{X: card.X + ConnectorCardInset, Y: card.CenterY()},
	}, true
}

// Locator returns the dot at the active placement point while a
// placement interaction is in progress.
func (g *Geometry) Locator() (domain.LocatorDot, bool) {
	state := g.session.AnnotationState()
	if state.ActivePoint == nil {
		return domain.LocatorDot{}, false
	}
	width, height, ok := g.oracle.ContainerSize()
	if !ok {
		return domain.LocatorDot{}, false
	}
	return domain.LocatorDot{
		At: state.ActivePoint.ToPixels(domain.Size{Width: width, Height: height}),
	}, true
}

// cardRect derives a comment card's rectangle from the published
// layout and the container size.
func (g *Geometry) cardRect(commentID string) (domain.Rect, bool) {
	width, _, ok := g.oracle.ContainerSize()
	if !ok {
		return domain.Rect{}, false
	}
	for _, p := range g.layout.Positions() {
		if p.ID == commentID {
			return domain.Rect{
				X:      width + MarginGutter,
				Y:      p.Top,
				Width:  MarginColumnWidth,
				Height: p.Height,
			}, true
		}
	}
	return domain.Rect{}, false
}
