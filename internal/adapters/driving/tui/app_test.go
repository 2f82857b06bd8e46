package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redline-labs/redline-cli/internal/adapters/driven/layout/text"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/messages"
	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/services"
)

// stubSource is an in-memory document source for tests.
type stubSource struct {
	bundle *domain.ReviewBundle
	err    error
}

func (s *stubSource) Load(_ context.Context) (*domain.ReviewBundle, error) {
	return s.bundle, s.err
}

func (s *stubSource) Watch(ctx context.Context, _ func()) error {
	<-ctx.Done()
	return ctx.Err()
}

func testBundle() *domain.ReviewBundle {
	return &domain.ReviewBundle{
		Document: domain.Document{
			ID:    "doc-1",
			Title: "Test Document",
			Pages: []domain.Page{
				{Number: 1, Content: "alpha beta gamma delta epsilon zeta"},
			},
		},
		Highlights: []domain.Highlight{
			{ID: "h1", Page: 1, StartOffset: 0, EndOffset: 10, Text: "alpha beta", SourceID: "mc1"},
		},
		MatchCards: []domain.MatchCard{
			{
				ID:                "mc1",
				SourceName:        "Journal A",
				SimilarityPercent: 40,
				Matches:           []domain.Match{{HighlightID: "h1"}},
			},
			{ID: "mc2", SourceName: "Journal B", SimilarityPercent: 10},
		},
	}
}

func testPorts(t *testing.T) *Ports {
	t.Helper()

	session := services.NewSession(testBundle(), domain.DefaultAppSettings())
	oracle := text.NewOracle()
	reconciler := services.NewReconciler(session, oracle, &domain.MarginSettings{
		CardGap:           2,
		DefaultCardHeight: 3,
		DebounceInterval:  -1,
	})
	t.Cleanup(reconciler.Close)

	return &Ports{
		Session:   session,
		Placement: services.NewPlacer(session),
		Layout:    reconciler,
		Geometry:  services.NewGeometry(session, reconciler, oracle),
		Source:    &stubSource{bundle: testBundle()},
		Oracle:    oracle,
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(testPorts(t))
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

func TestNewApp_ValidatesPorts(t *testing.T) {
	_, err := NewApp(&Ports{})
	assert.ErrorIs(t, err, ErrMissingSession)

	ports := testPorts(t)
	ports.Layout = nil
	_, err = NewApp(ports)
	assert.ErrorIs(t, err, ErrMissingLayoutService)
}

func TestApp_StartsOnSources(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, messages.ViewSources, app.CurrentView())
}

func TestApp_BundleLoaded_AssignsColors(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.BundleLoaded{Bundle: testBundle()})
	app = model.(*App)

	require.NoError(t, app.Err())
	color1, ok := app.ports.Session.ColorFor("mc1")
	require.True(t, ok)
	color2, ok := app.ports.Session.ColorFor("mc2")
	require.True(t, ok)
	assert.NotEqual(t, color1, color2)
}

func TestApp_BundleLoaded_Error(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.BundleLoaded{Err: assert.AnError})
	app = model.(*App)

	assert.Equal(t, assert.AnError, app.Err())
}

func TestApp_TabCyclesViews(t *testing.T) {
	app := newTestApp(t)

	keyTab := tea.KeyMsg{Type: tea.KeyTab}
	model, _ := app.Update(keyTab)
	app = model.(*App)
	assert.Equal(t, messages.ViewReview, app.CurrentView())

	model, _ = app.Update(keyTab)
	app = model.(*App)
	assert.Equal(t, messages.ViewComments, app.CurrentView())

	model, _ = app.Update(keyTab)
	app = model.(*App)
	assert.Equal(t, messages.ViewSources, app.CurrentView())
}

func TestApp_HelpAndBack(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	app = model.(*App)
	assert.Equal(t, messages.ViewHelp, app.CurrentView())

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	assert.Equal(t, messages.ViewSources, app.CurrentView())
}

func TestApp_HelpRendersKeymapBindings(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	app = model.(*App)

	out := app.View()
	assert.Contains(t, out, "annotate")
	assert.Contains(t, out, "next view")
	assert.Contains(t, out, "quit")
}

func TestApp_SourceSelectedSwitchesToReview(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.SourceSelected{SourceID: "mc1", MatchIndex: 0})
	app = model.(*App)
	assert.Equal(t, messages.ViewReview, app.CurrentView())
}

func TestApp_QuitKey(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_ViewRendersBeforeReady(t *testing.T) {
	app, err := NewApp(testPorts(t))
	require.NoError(t, err)
	assert.Contains(t, app.View(), "Initialising")
}

func TestApp_ViewRendersSources(t *testing.T) {
	app := newTestApp(t)
	out := app.View()
	assert.Contains(t, out, "Sources")
	assert.Contains(t, out, "Journal A")
}
