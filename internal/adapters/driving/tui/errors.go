package tui

import "errors"

// ErrMissingSession is returned when the review session is not provided.
var ErrMissingSession = errors.New("tui: review session is required")

// ErrMissingLayoutService is returned when the layout service is not provided.
var ErrMissingLayoutService = errors.New("tui: layout service is required")

// ErrMissingGeometryService is returned when the geometry service is not provided.
var ErrMissingGeometryService = errors.New("tui: geometry service is required")

// ErrMissingPlacementService is returned when the placement service is not provided.
var ErrMissingPlacementService = errors.New("tui: placement service is required")

// ErrMissingDocumentSource is returned when the document source is not provided.
var ErrMissingDocumentSource = errors.New("tui: document source is required")
