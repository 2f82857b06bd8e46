// Package domain defines the core business entities for Redline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A paginated document under review
//   - Highlight: A matched or commented span of document text
//   - MatchCard: A detected external source with matched spans
//   - PointAnnotation: A reviewer-placed marker on a page
//   - Comment: A reviewer comment anchored to a span or a point
//   - NavigationState: The current selection within match cards
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
