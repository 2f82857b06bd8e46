package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redline-labs/redline-cli/internal/core/domain"
)

func TestServer_handleAddComment(t *testing.T) {
	ctx := context.Background()
	ports, session := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	input := AddCommentInput{
		Content:     "needs a citation",
		Text:        "first page",
		Page:        1,
		StartOffset: 0,
		EndOffset:   10,
		Label:       "citation check",
	}
	_, output, err := server.handleAddComment(ctx, nil, input)
	require.NoError(t, err)
	assert.Equal(t, "comment added", output.Status)

	comments := session.Comments()
	require.Len(t, comments, 1)
	assert.Equal(t, domain.CommentInline, comments[0].Type)
	assert.Equal(t, "needs a citation", comments[0].Content)
	assert.Equal(t, 1, comments[0].Page)
	assert.Equal(t, 10, comments[0].EndOffset)
	assert.Equal(t, "citation check", comments[0].Source)
}

func TestServer_handleAddSummaryComment(t *testing.T) {
	ctx := context.Background()
	ports, session := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleAddSummaryComment(ctx, nil, AddSummaryCommentInput{
		Content: "overall solid work",
	})
	require.NoError(t, err)
	assert.Equal(t, "summary comment added", output.Status)

	comments := session.Comments()
	require.Len(t, comments, 1)
	assert.Equal(t, domain.CommentSummary, comments[0].Type)
}

func TestServer_handleShowSource(t *testing.T) {
	ctx := context.Background()
	ports, session := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleShowSource(ctx, nil, ShowSourceInput{
		SourceID: "mc1",
	})
	require.NoError(t, err)
	assert.Equal(t, "navigated", output.Status)

	nav := session.Navigation()
	assert.Equal(t, "mc1", nav.SelectedSourceID)
	assert.Equal(t, "h1", nav.SelectedHighlightID)
}

func TestServer_handleShowSource_MissingSourceID(t *testing.T) {
	ctx := context.Background()
	ports, _ := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleShowSource(ctx, nil, ShowSourceInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServer_handleNavigateTab(t *testing.T) {
	ctx := context.Background()
	ports, session := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleNavigateTab(ctx, nil, NavigateTabInput{Tab: "writing"})
	require.NoError(t, err)
	assert.Equal(t, "tab changed", output.Status)
	assert.Equal(t, "writing", session.Tabs().PrimaryTab)
}

func TestServer_handleNavigateTab_MissingTab(t *testing.T) {
	ctx := context.Background()
	ports, _ := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleNavigateTab(ctx, nil, NavigateTabInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServer_handleListComments(t *testing.T) {
	ctx := context.Background()
	ports, session := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	session.AddComment(domain.Comment{Type: domain.CommentInline, Content: "inline one", Page: 1})
	session.AddComment(domain.Comment{Type: domain.CommentSummary, Content: "summary one"})

	_, output, err := server.handleListComments(ctx, nil, ListCommentsInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)

	_, output, err = server.handleListComments(ctx, nil, ListCommentsInput{Type: "summary"})
	require.NoError(t, err)
	require.Equal(t, 1, output.Count)
	assert.Equal(t, "summary one", output.Comments[0].Content)
}
