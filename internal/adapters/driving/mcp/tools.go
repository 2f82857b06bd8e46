package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/redline-labs/redline-cli/internal/core/domain"
)

// AddCommentInput is the input schema for the add_comment tool.
type AddCommentInput struct {
	Content     string `json:"content" jsonschema:"the comment body"`
	Text        string `json:"text,omitempty" jsonschema:"the document text the comment is anchored to"`
	Page        int    `json:"page,omitempty" jsonschema:"the 1-based page number of the anchor"`
	StartOffset int    `json:"start_offset,omitempty" jsonschema:"the rune offset of the anchored span start"`
	EndOffset   int    `json:"end_offset,omitempty" jsonschema:"the rune offset one past the anchored span end"`
	Label       string `json:"label,omitempty" jsonschema:"a short description shown as the comment source"`
}

// AddSummaryCommentInput is the input schema for the add_summary_comment tool.
type AddSummaryCommentInput struct {
	Content string `json:"content" jsonschema:"the summary comment body"`
	Label   string `json:"label,omitempty" jsonschema:"a short description shown as the comment source"`
}

// ShowSourceInput is the input schema for the show_source tool.
type ShowSourceInput struct {
	SourceID   string `json:"source_id" jsonschema:"the match card id to navigate to"`
	MatchIndex int    `json:"match_index,omitempty" jsonschema:"the matched span index on the card (default 0)"`
}

// NavigateTabInput is the input schema for the navigate_tab tool.
type NavigateTabInput struct {
	Tab string `json:"tab" jsonschema:"the tab to activate"`
}

// DispatchOutput reports the result of a dispatched directive.
type DispatchOutput struct {
	Status string `json:"status"`
}

// ListCommentsInput is the input schema for the list_comments tool.
type ListCommentsInput struct {
	Type string `json:"type,omitempty" jsonschema:"filter by comment type: inline, point or summary"`
}

// CommentOutput is one comment in the list_comments output.
type CommentOutput struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
	Text    string `json:"text,omitempty"`
	Page    int    `json:"page,omitempty"`
	Source  string `json:"source,omitempty"`
}

// ListCommentsOutput is the output schema for the list_comments tool.
type ListCommentsOutput struct {
	Comments []CommentOutput `json:"comments"`
	Count    int             `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_comment",
		Description: "Add an inline comment anchored to a document span",
	}, s.handleAddComment)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_summary_comment",
		Description: "Add a document-level summary comment",
	}, s.handleAddSummaryComment)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "show_source",
		Description: "Navigate the review to a matched source span",
	}, s.handleShowSource)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "navigate_tab",
		Description: "Switch the active review tab",
	}, s.handleNavigateTab)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_comments",
		Description: "List the comments on the review session",
	}, s.handleListComments)
}

// handleAddComment handles the add_comment tool invocation.
func (s *Server) handleAddComment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddCommentInput,
) (*mcp.CallToolResult, DispatchOutput, error) {
	err := s.ports.Assistant.Dispatch(ctx, domain.AssistantAction{
		Type:  domain.ActionAddComment,
		Label: input.Label,
		Payload: map[string]any{
			"content":      input.Content,
			"text":         input.Text,
			"page":         input.Page,
			"start_offset": input.StartOffset,
			"end_offset":   input.EndOffset,
		},
	})
	if err != nil {
		return nil, DispatchOutput{}, err
	}
	return nil, DispatchOutput{Status: "comment added"}, nil
}

// handleAddSummaryComment handles the add_summary_comment tool invocation.
func (s *Server) handleAddSummaryComment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddSummaryCommentInput,
) (*mcp.CallToolResult, DispatchOutput, error) {
	err := s.ports.Assistant.Dispatch(ctx, domain.AssistantAction{
		Type:    domain.ActionAddSummaryComment,
		Label:   input.Label,
		Payload: map[string]any{"content": input.Content},
	})
	if err != nil {
		return nil, DispatchOutput{}, err
	}
	return nil, DispatchOutput{Status: "summary comment added"}, nil
}

// handleShowSource handles the show_source tool invocation.
func (s *Server) handleShowSource(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ShowSourceInput,
) (*mcp.CallToolResult, DispatchOutput, error) {
	err := s.ports.Assistant.Dispatch(ctx, domain.AssistantAction{
		Type: domain.ActionShowSource,
		Payload: map[string]any{
			"source_id":   input.SourceID,
			"match_index": input.MatchIndex,
		},
	})
	if err != nil {
		return nil, DispatchOutput{}, err
	}
	return nil, DispatchOutput{Status: "navigated"}, nil
}

// handleNavigateTab handles the navigate_tab tool invocation.
func (s *Server) handleNavigateTab(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NavigateTabInput,
) (*mcp.CallToolResult, DispatchOutput, error) {
	err := s.ports.Assistant.Dispatch(ctx, domain.AssistantAction{
		Type:    domain.ActionNavigateTab,
		Payload: map[string]any{"tab": input.Tab},
	})
	if err != nil {
		return nil, DispatchOutput{}, err
	}
	return nil, DispatchOutput{Status: "tab changed"}, nil
}

// handleListComments handles the list_comments tool invocation.
func (s *Server) handleListComments(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListCommentsInput,
) (*mcp.CallToolResult, ListCommentsOutput, error) {
	comments := s.ports.Session.Comments()

	output := ListCommentsOutput{Comments: []CommentOutput{}}
	for _, c := range comments {
		if input.Type != "" && string(c.Type) != input.Type {
			continue
		}
		output.Comments = append(output.Comments, CommentOutput{
			ID:      c.ID,
			Type:    string(c.Type),
			Content: c.Content,
			Text:    c.Text,
			Page:    c.Page,
			Source:  c.Source,
		})
	}
	output.Count = len(output.Comments)

	return nil, output, nil
}
