// Package tui provides the interactive review terminal interface.
// It implements a driving adapter following hexagonal architecture
// principles.
package tui

import (
	"github.com/redline-labs/redline-cli/internal/adapters/driven/layout/text"
	"github.com/redline-labs/redline-cli/internal/core/ports/driven"
	"github.com/redline-labs/redline-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI. This
// provides a single injection point for dependency injection.
type Ports struct {
	// Session is the authoritative review state.
	Session driving.ReviewSession

	// Placement runs the point-annotation interaction.
	Placement driving.PlacementService

	// Layout publishes the comment margin layout.
	Layout driving.LayoutService

	// Geometry computes connector and locator primitives.
	Geometry driving.GeometryService

	// Source loads and watches the review bundle.
	Source driven.DocumentSource

	// Oracle is the text layout oracle the review view feeds with the
	// wrapped document, comment anchors, and rendered card heights.
	Oracle *text.Oracle
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSession
	}
	if p.Placement == nil {
		return ErrMissingPlacementService
	}
	if p.Layout == nil {
		return ErrMissingLayoutService
	}
	if p.Geometry == nil {
		return ErrMissingGeometryService
	}
	if p.Source == nil {
		return ErrMissingDocumentSource
	}
	return nil
}
