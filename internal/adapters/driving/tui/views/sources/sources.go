// Package sources provides the match-card list view for the TUI.
package sources

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/keymap"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/messages"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/styles"
	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driving"
)

// View is the match-card list. It drives selection, match cycling, and
// the inclusion set on the review session.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	session driving.ReviewSession

	selected int
	width    int
	height   int
	err      error
}

// NewView creates a new sources view.
func NewView(s *styles.Styles, km *keymap.KeyMap, session driving.ReviewSession) *View {
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:  s,
		keymap:  km,
		session: session,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the sources view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	cards := v.session.MatchCards()

	switch {
	case key.Matches(msg, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case key.Matches(msg, v.keymap.Down):
		if v.selected < len(cards)-1 {
			v.selected++
		}
	case key.Matches(msg, v.keymap.ToggleInclude):
		if card, ok := v.currentCard(cards); ok {
			v.session.ToggleSourceInclusion(card.ID)
		}
	case key.Matches(msg, v.keymap.NextMatch):
		return v, v.cycleMatch(cards, 1)
	case key.Matches(msg, v.keymap.PrevMatch):
		return v, v.cycleMatch(cards, -1)
	case key.Matches(msg, v.keymap.Select):
		if card, ok := v.currentCard(cards); ok {
			v.session.SelectMatch(card.ID, 0, domain.NavigationSourceCard)
			return v, func() tea.Msg {
				return messages.SourceSelected{SourceID: card.ID, MatchIndex: 0}
			}
		}
	}

	return v, nil
}

// cycleMatch moves the match index on the currently selected card,
// wrapping at both ends.
func (v *View) cycleMatch(cards []domain.MatchCard, step int) tea.Cmd {
	card, ok := v.currentCard(cards)
	if !ok || len(card.Matches) == 0 {
		return nil
	}

	nav := v.session.Navigation()
	index := 0
	if nav.SelectedSourceID == card.ID {
		index = (nav.SelectedMatchIndex + step + len(card.Matches)) % len(card.Matches)
	}
	v.session.SelectMatch(card.ID, index, domain.NavigationSourceCard)
	return func() tea.Msg {
		return messages.SourceSelected{SourceID: card.ID, MatchIndex: index}
	}
}

func (v *View) currentCard(cards []domain.MatchCard) (domain.MatchCard, bool) {
	if v.selected < 0 || v.selected >= len(cards) {
		return domain.MatchCard{}, false
	}
	return cards[v.selected], true
}

// View renders the sources view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Sources"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	cards := v.session.MatchCards()
	if len(cards) == 0 {
		b.WriteString(v.styles.Muted.Render("No matched sources in this bundle."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	for i := range cards {
		b.WriteString(v.renderCard(i, &cards[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderCard renders a single match card line.
func (v *View) renderCard(index int, card *domain.MatchCard) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := card.SourceName
	if name == "" {
		name = card.ID
	}

	if v.session.IsSourceExcluded(card.ID) {
		return v.styles.Excluded.Render(fmt.Sprintf("%s○ %5.1f%%  %s  [excluded]",
			indicator, card.SimilarityPercent, name))
	}

	swatch := "●"
	if color, ok := v.session.ColorFor(card.ID); ok {
		swatch = v.styles.HighlightStyle(color).Render("●")
	}

	var flags []string
	if card.IsCited {
		flags = append(flags, "cited")
	}
	if card.AcademicIntegrityIssue {
		flags = append(flags, v.styles.Warning.Render("integrity"))
	}
	flagStr := ""
	if len(flags) > 0 {
		flagStr = " (" + strings.Join(flags, ", ") + ")"
	}

	line := fmt.Sprintf("%s%s %5.1f%%  %s  [%d matches]%s",
		indicator, swatch, card.SimilarityPercent, name, len(card.Matches), flagStr)

	if index == v.selected {
		return v.styles.Selected.Render(line)
	}
	return line
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[enter] open  [x] include/exclude  [n/p] cycle matches  [tab] review  [?] help  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// SelectedIndex returns the currently selected card index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
