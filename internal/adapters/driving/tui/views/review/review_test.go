package review

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redline-labs/redline-cli/internal/adapters/driven/layout/text"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/messages"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/styles"
	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/services"
)

type fixture struct {
	session *services.Session
	layout  *services.Reconciler
	view    *View
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	bundle := &domain.ReviewBundle{
		Document: domain.Document{
			ID:    "doc-1",
			Title: "Fixture Document",
			Pages: []domain.Page{
				{Number: 1, Content: "alpha beta gamma delta epsilon zeta eta theta"},
				{Number: 2, Content: "second page content"},
			},
		},
		Highlights: []domain.Highlight{
			{ID: "h1", Page: 1, StartOffset: 0, EndOffset: 10, Text: "alpha beta", SourceID: "mc1"},
		},
		MatchCards: []domain.MatchCard{
			{ID: "mc1", SourceName: "Journal A", SimilarityPercent: 40,
				Matches: []domain.Match{{HighlightID: "h1"}}},
		},
	}

	session := services.NewSession(bundle, domain.DefaultAppSettings())
	oracle := text.NewOracle()
	reconciler := services.NewReconciler(session, oracle, &domain.MarginSettings{
		CardGap:           2,
		DefaultCardHeight: 3,
		DebounceInterval:  -1,
	})
	t.Cleanup(reconciler.Close)

	view := NewView(
		styles.DefaultStyles(),
		nil,
		session,
		services.NewPlacer(session),
		reconciler,
		services.NewGeometry(session, reconciler, oracle),
		oracle,
	)
	view.SetDimensions(80, 24)

	return &fixture{session: session, layout: reconciler, view: view}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_WrapsDocument(t *testing.T) {
	f := newFixture(t)

	require.NotEmpty(t, f.view.Lines())
	// Both pages are present with a separator row between them.
	all := f.view.Lines()
	assert.Contains(t, all[0], "alpha")
	assert.Contains(t, all[len(all)-1], "content")
}

func TestView_CursorMovement(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, 0, f.view.Cursor())
	f.view, _ = f.view.Update(keyMsg("j"))
	assert.Equal(t, 1, f.view.Cursor())
	f.view, _ = f.view.Update(keyMsg("k"))
	assert.Equal(t, 0, f.view.Cursor())
	// Clamped at the top.
	f.view, _ = f.view.Update(keyMsg("k"))
	assert.Equal(t, 0, f.view.Cursor())
}

func TestView_AddInlineComment(t *testing.T) {
	f := newFixture(t)

	f.view, _ = f.view.Update(keyMsg("c"))

	list := f.session.Comments()
	require.Len(t, list, 1)
	assert.Equal(t, domain.CommentInline, list[0].Type)
	assert.Equal(t, 1, list[0].Page)
	assert.Equal(t, list[0].ID, f.session.SelectedCommentID())
}

func TestView_PlacementFlow_Quickmark(t *testing.T) {
	f := newFixture(t)

	f.view, _ = f.view.Update(keyMsg("a"))
	require.True(t, f.session.AnnotationState().Active())

	f.view, _ = f.view.Update(keyMsg("m"))
	assert.False(t, f.session.AnnotationState().Active())

	anns := f.session.PointAnnotations()
	require.Len(t, anns, 1)
	assert.Equal(t, domain.AnnotationQuickmark, anns[0].Type)
	assert.Empty(t, f.session.Comments())
}

func TestView_PlacementFlow_Comment(t *testing.T) {
	f := newFixture(t)

	f.view, _ = f.view.Update(keyMsg("a"))
	f.view, _ = f.view.Update(keyMsg("c"))

	anns := f.session.PointAnnotations()
	list := f.session.Comments()
	require.Len(t, anns, 1)
	require.Len(t, list, 1)
	assert.Equal(t, anns[0].CommentID, list[0].ID)
}

func TestView_PlacementFlow_CommentAnchorsToPlacedRow(t *testing.T) {
	f := newFixture(t)
	f.view.SetDimensions(55, 24) // narrow pane, page one wraps to several rows

	f.view, _ = f.view.Update(keyMsg("j"))
	require.Equal(t, 1, f.view.Cursor())

	f.view, _ = f.view.Update(keyMsg("a"))
	f.view, _ = f.view.Update(keyMsg("c"))

	list := f.session.Comments()
	require.Len(t, list, 1)

	offsets := text.WrapOffsets("alpha beta gamma delta epsilon zeta eta theta", 20)
	require.Greater(t, len(offsets), 1)
	assert.Equal(t, offsets[1], list[0].StartOffset)
	assert.Greater(t, list[0].EndOffset, list[0].StartOffset)

	// The margin card reconciles to the placed row, not the page start.
	positions := f.layout.Positions()
	require.Len(t, positions, 1)
	assert.Equal(t, 1.0, positions[0].Top)
}

func TestView_PlacementFlow_Cancel(t *testing.T) {
	f := newFixture(t)

	f.view, _ = f.view.Update(keyMsg("a"))
	require.True(t, f.session.AnnotationState().Active())

	f.view, _ = f.view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.session.AnnotationState().Active())
	assert.Empty(t, f.session.PointAnnotations())
	assert.Empty(t, f.session.Comments())
}

func TestView_DeleteSelectedComment(t *testing.T) {
	f := newFixture(t)

	f.view, _ = f.view.Update(keyMsg("c"))
	require.Len(t, f.session.Comments(), 1)

	f.view, _ = f.view.Update(keyMsg("d"))
	assert.Empty(t, f.session.Comments())
	assert.Empty(t, f.session.SelectedCommentID())
}

func TestView_SourceSelectedMovesCursor(t *testing.T) {
	f := newFixture(t)

	f.view, _ = f.view.Update(keyMsg("j"))
	f.view, _ = f.view.Update(keyMsg("j"))
	require.NotEqual(t, 0, f.view.Cursor())

	f.session.SelectMatch("mc1", 0, domain.NavigationSourceCard)
	f.view, _ = f.view.Update(messages.SourceSelected{SourceID: "mc1", MatchIndex: 0})
	// h1 starts at offset 0 on page 1, the first row.
	assert.Equal(t, 0, f.view.Cursor())
}

func TestView_RenderIncludesMarginCard(t *testing.T) {
	f := newFixture(t)

	f.view, _ = f.view.Update(keyMsg("c"))
	out := f.view.View()
	assert.Contains(t, out, "Fixture Document")
	assert.Contains(t, out, "New comment")
}

func TestView_RenderError(t *testing.T) {
	f := newFixture(t)

	f.view, _ = f.view.Update(messages.BundleLoaded{Err: assert.AnError})
	assert.Contains(t, f.view.View(), "Error")
}
