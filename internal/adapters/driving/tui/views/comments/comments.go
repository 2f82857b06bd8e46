// Package comments provides the comment list sidebar for the TUI.
package comments

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/keymap"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/styles"
	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driving"
)

// View is the comment list. Selection here drives the session's
// selected comment, which the review pane's connector follows.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	session driving.ReviewSession

	selected int
	width    int
	height   int
}

// NewView creates a new comments view.
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

// Update handles messages for the comments view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	list := v.session.Comments()

	switch {
	case key.Matches(msg, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
		v.syncSelection(list)
	case key.Matches(msg, v.keymap.Down):
		if v.selected < len(list)-1 {
			v.selected++
		}
		v.syncSelection(list)
	case key.Matches(msg, v.keymap.Select):
		v.syncSelection(list)
	case key.Matches(msg, v.keymap.Delete):
		if v.selected < len(list) {
			v.session.DeleteComment(list[v.selected].ID)
			if v.selected > 0 {
				v.selected--
			}
		}
	case key.Matches(msg, v.keymap.Back):
		v.session.SelectComment("")
	}

	return v, nil
}

// syncSelection mirrors the cursor into the session's selected comment.
func (v *View) syncSelection(list []domain.Comment) {
	if v.selected >= 0 && v.selected < len(list) {
		v.session.SelectComment(list[v.selected].ID)
	}
}

// View renders the comments view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Comments"))
	b.WriteString("\n\n")

	list := v.session.Comments()
	if len(list) == 0 {
		b.WriteString(v.styles.Muted.Render("No comments yet."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	selectedID := v.session.SelectedCommentID()
	for i := range list {
		b.WriteString(v.renderComment(i, &list[i], selectedID))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderComment renders a single comment line.
func (v *View) renderComment(index int, c *domain.Comment, selectedID string) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	marker := " "
	if c.ID == selectedID {
		marker = "*"
	}

	content := c.Content
	maxLen := v.width - 24
	if maxLen < 16 {
		maxLen = 16
	}
	if len(content) > maxLen {
		content = content[:maxLen-3] + "..."
	}

	line := fmt.Sprintf("%s%s [%-7s] p%-3d %s", indicator, marker, c.Type, c.Page, content)
	if index == v.selected {
		return v.styles.Selected.Render(line)
	}
	if c.Type == domain.CommentSummary {
		return v.styles.Subtitle.Render(line)
	}
	return v.styles.Normal.Render(line)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[enter] select  [d] delete  [esc] clear  [tab] review  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// SelectedIndex returns the cursor position (for testing).
func (v *View) SelectedIndex() int {
	return v.selected
}
