// Package mcp provides an MCP (Model Context Protocol) server adapter
// for redline. It lets an AI assistant read the review state and apply
// structured directives to a live review session.
package mcp

import "errors"

// ErrMissingAssistantService is returned when the assistant service is not provided.
var ErrMissingAssistantService = errors.New("mcp: assistant service is required")

// ErrMissingSession is returned when the review session is not provided.
var ErrMissingSession = errors.New("mcp: review session is required")
