package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/keymap"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/messages"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/styles"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/views/comments"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/views/review"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/views/sources"
	"github.com/redline-labs/redline-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings shared across views.
	keymap *keymap.KeyMap

	// sourcesView is the match-card list component.
	sourcesView *sources.View

	// reviewView is the document pane component.
	reviewView *review.View

	// commentsView is the comment list component.
	commentsView *comments.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is where esc from help returns to.
	previousView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		sourcesView:  sources.NewView(s, km, ports.Session),
		reviewView:   review.NewView(s, km, ports.Session, ports.Placement, ports.Layout, ports.Geometry, ports.Oracle),
		commentsView: comments.NewView(s, km, ports.Session),
		currentView:  messages.ViewSources,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("redline - Document Review"),
		a.loadBundle(),
	)
}

// loadBundle returns a command that loads the review bundle.
func (a *App) loadBundle() tea.Cmd {
	return func() tea.Msg {
		bundle, err := a.ports.Source.Load(a.ctx)
		return messages.BundleLoaded{Bundle: bundle, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.sourcesView.SetDimensions(msg.Width, msg.Height)
		a.reviewView.SetDimensions(msg.Width, msg.Height)
		a.commentsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global bindings
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keymap.Help):
			if a.currentView != messages.ViewHelp {
				a.previousView = a.currentView
				a.currentView = messages.ViewHelp
				return a, nil
			}
		case key.Matches(msg, a.keymap.NextView):
			a.cycleView()
			return a, nil
		}

		switch a.currentView {
		case messages.ViewSources:
			a.sourcesView, cmd = a.sourcesView.Update(msg)
			return a, cmd
		case messages.ViewReview:
			a.reviewView, cmd = a.reviewView.Update(msg)
			return a, cmd
		case messages.ViewComments:
			a.commentsView, cmd = a.commentsView.Update(msg)
			return a, cmd
		case messages.ViewHelp:
			if key.Matches(msg, a.keymap.Back) {
				a.currentView = a.previousView
			}
			return a, nil
		}
		return a, nil

	case messages.BundleLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			logger.Warn("Bundle load failed: %v", msg.Err)
			a.reviewView, cmd = a.reviewView.Update(msg)
			return a, cmd
		}
		a.err = nil
		a.ports.Session.SetBundle(msg.Bundle)
		a.assignCardColors()
		a.reviewView, cmd = a.reviewView.Update(msg)
		return a, cmd

	case messages.BundleChanged:
		return a, a.loadBundle()

	case messages.SourceSelected:
		a.currentView = messages.ViewReview
		a.reviewView, cmd = a.reviewView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewSources:
			a.sourcesView, cmd = a.sourcesView.Update(msg)
		case messages.ViewReview:
			a.reviewView, cmd = a.reviewView.Update(msg)
		case messages.ViewComments, messages.ViewHelp:
			// These views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewSources:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
	case messages.ViewReview:
		a.reviewView, cmd = a.reviewView.Update(msg)
	case messages.ViewComments:
		a.commentsView, cmd = a.commentsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// cycleView rotates sources -> review -> comments -> sources.
func (a *App) cycleView() {
	switch a.currentView {
	case messages.ViewSources:
		a.currentView = messages.ViewReview
	case messages.ViewReview:
		a.currentView = messages.ViewComments
	case messages.ViewComments, messages.ViewHelp:
		a.currentView = messages.ViewSources
	}
}

// assignCardColors assigns palette colours to match cards in bundle
// order so card list and document highlights agree.
func (a *App) assignCardColors() {
	cards := a.ports.Session.MatchCards()
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	a.ports.Session.AssignColors(ids)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSources:
		return a.sourcesView.View()
	case messages.ViewReview:
		return a.reviewView.View()
	case messages.ViewComments:
		return a.commentsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.sourcesView.View()
	}
}

// viewHelp renders the help view from the keymap's binding groups.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n")

	for _, group := range a.keymap.FullHelp() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application. The bundle watcher feeds reload
// messages into the program until the context is cancelled.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()
	go func() {
		err := a.ports.Source.Watch(ctx, func() {
			p.Send(messages.BundleChanged{})
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("Bundle watch stopped: %v", err)
		}
	}()

	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.sourcesView.SetDimensions(width, height)
	a.reviewView.SetDimensions(width, height)
	a.commentsView.SetDimensions(width, height)
}
