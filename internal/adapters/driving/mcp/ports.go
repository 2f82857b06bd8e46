package mcp

import (
	"github.com/redline-labs/redline-cli/internal/core/ports/driven"
	"github.com/redline-labs/redline-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP
// server. This provides a single injection point for dependency
// injection.
type Ports struct {
	// Assistant dispatches structured directives to the session.
	Assistant driving.AssistantService

	// Session is read for resources and list-style tools.
	Session driving.ReviewSession

	// Source, when set, reloads the session on bundle rewrites so
	// injected highlights reach long-lived assistant sessions.
	Source driven.DocumentSource
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	if p.Session == nil {
		return ErrMissingSession
	}
	return nil
}
