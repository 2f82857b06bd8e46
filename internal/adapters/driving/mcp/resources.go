package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for redline resources.
	uriScheme = "redline://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "document",
		Name:        "document",
		Description: "Plain text of the document under review",
		MIMEType:    "text/plain",
	}, s.handleDocumentResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "Matched sources with similarity scores and inclusion state",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "navigation",
		Name:        "navigation",
		Description: "Current navigation and tab state of the review",
		MIMEType:    "application/json",
	}, s.handleNavigationResource)
}

// handleDocumentResource returns the document text, one page per block.
func (s *Server) handleDocumentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	doc := s.ports.Session.Document()

	var b strings.Builder
	for i, page := range doc.Pages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "--- page %d ---\n", page.Number)
		b.WriteString(page.Content)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     b.String(),
		}},
	}, nil
}

// handleSourcesResource returns the match cards as JSON.
func (s *Server) handleSourcesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type cardInfo struct {
		ID                string  `json:"id"`
		SourceName        string  `json:"source_name"`
		SimilarityPercent float64 `json:"similarity_percent"`
		IsCited           bool    `json:"is_cited"`
		IntegrityIssue    bool    `json:"integrity_issue"`
		MatchCount        int     `json:"match_count"`
		Excluded          bool    `json:"excluded"`
	}

	cards := s.ports.Session.MatchCards()
	infos := make([]cardInfo, len(cards))
	for i, card := range cards {
		infos[i] = cardInfo{
			ID:                card.ID,
			SourceName:        card.SourceName,
			SimilarityPercent: card.SimilarityPercent,
			IsCited:           card.IsCited,
			IntegrityIssue:    card.AcademicIntegrityIssue,
			MatchCount:        len(card.Matches),
			Excluded:          s.ports.Session.IsSourceExcluded(card.ID),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleNavigationResource returns the navigation and tab state.
func (s *Server) handleNavigationResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	nav := s.ports.Session.Navigation()
	tabs := s.ports.Session.Tabs()

	state := map[string]any{
		"selected_source_id":    nav.SelectedSourceID,
		"selected_match_index":  nav.SelectedMatchIndex,
		"selected_highlight_id": nav.SelectedHighlightID,
		"navigation_source":     string(nav.Source),
		"primary_tab":           tabs.PrimaryTab,
		"secondary_tab":         tabs.SecondaryTab,
		"selected_comment_id":   s.ports.Session.SelectedCommentID(),
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling navigation: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
