// Package review provides the document pane with the comment margin.
// The document is rendered on the left; comment cards are laid out on
// the right from the reconciled margin positions, with connector and
// locator glyphs drawn between them.
package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/redline-labs/redline-cli/internal/adapters/driven/layout/text"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/keymap"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/messages"
	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui/styles"
	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driving"
)

// marginWidth is the column width reserved for comment cards.
const marginWidth = 32

// gutterWidth separates the document pane from the margin column.
const gutterWidth = 3

// cardFrameRows is the rows a card's border and padding add beyond its
// wrapped content.
const cardFrameRows = 2

// lineMeta maps one rendered document row back to its page and rune
// offset so the cursor can anchor comments and placements.
type lineMeta struct {
	page   int
	offset int
}

// View is the review pane. It feeds the text layout oracle with the
// wrapped document, comment anchors, and card heights, and renders the
// margin from the layout service's reconciled positions.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	session   driving.ReviewSession
	placement driving.PlacementService
	layout    driving.LayoutService
	geometry  driving.GeometryService
	oracle    *text.Oracle

	lines  []string
	meta   []lineMeta
	cursor int
	scroll int
	width  int
	height int
	err    error
	status string

	// placeAnchor is the span under the cursor when the current
	// placement began, so a committed comment anchors to the row the
	// point was placed on rather than to the page start.
	placeAnchor lineMeta
	placeLen    int
}

// NewView creates a new review view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.ReviewSession,
	placement driving.PlacementService,
	layout driving.LayoutService,
	geometry driving.GeometryService,
	oracle *text.Oracle,
) *View {
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:    s,
		keymap:    km,
		session:   session,
		placement: placement,
		layout:    layout,
		geometry:  geometry,
		oracle:    oracle,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.rebuild()
	return nil
}

// Update handles messages for the review view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.BundleLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.rebuild()
		return v, nil

	case messages.SourceSelected:
		v.moveCursorToSelection()
		return v, nil

	case messages.LayoutPublished:
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// SetDimensions sets the view dimensions and re-wraps the document.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.rebuild()
}

// docWidth returns the column width of the document pane.
func (v *View) docWidth() int {
	w := v.width - marginWidth - gutterWidth
	if w < 20 {
		w = 20
	}
	return w
}

// rebuild re-wraps the document, refreshes the oracle's inputs, and
// runs a reconcile pass so the margin reflects the new geometry.
func (v *View) rebuild() {
	doc := v.session.Document()
	width := v.docWidth()

	v.lines = nil
	v.meta = nil
	for pi, page := range doc.Pages {
		offsets := text.WrapOffsets(page.Content, width)
		wrapped := text.WrapLines(page.Content, width)
		for li, line := range wrapped {
			v.lines = append(v.lines, line)
			v.meta = append(v.meta, lineMeta{page: page.Number, offset: offsets[li]})
		}
		if pi < len(doc.Pages)-1 {
			for i := 0; i < text.PageSeparatorRows; i++ {
				v.lines = append(v.lines, "")
				v.meta = append(v.meta, lineMeta{page: page.Number, offset: len([]rune(page.Content))})
			}
		}
	}

	if v.cursor >= len(v.lines) {
		v.cursor = len(v.lines) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}

	v.oracle.SetDocument(&doc, width)
	v.syncOracleComments()
	v.layout.Reconcile()
}

// syncOracleComments feeds anchored comments and card heights to the
// oracle so the reconciler can measure them.
func (v *View) syncOracleComments() {
	for _, c := range v.session.Comments() {
		if c.Type == domain.CommentSummary {
			continue
		}
		v.oracle.SetAnchor(c.ID, c.Page, c.StartOffset, c.EndOffset)
		v.oracle.SetCardHeight(c.ID, float64(v.cardRows(&c)))
	}
}

// cardRows returns the rendered row height for a comment's card.
func (v *View) cardRows(c *domain.Comment) int {
	content := c.Content
	if content == "" {
		content = " "
	}
	return len(text.WrapLines(content, marginWidth-4)) + cardFrameRows
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		v.ensureVisible()
	case key.Matches(msg, v.keymap.Down):
		if v.cursor < len(v.lines)-1 {
			v.cursor++
		}
		v.ensureVisible()
	case key.Matches(msg, v.keymap.Annotate):
		v.beginPlacement()
	case key.Matches(msg, v.keymap.Quickmark):
		v.commitQuickmark()
	case key.Matches(msg, v.keymap.Comment):
		if v.placement.Placing() {
			v.commitComment()
		} else {
			v.addInlineComment()
		}
	case key.Matches(msg, v.keymap.Text):
		v.commitText()
	case key.Matches(msg, v.keymap.Back):
		if v.placement.Placing() {
			v.placement.Cancel()
			v.status = "placement cancelled"
			return v, nil
		}
		v.session.ClearSelection()
	case key.Matches(msg, v.keymap.Delete):
		v.deleteSelectedComment()
	case key.Matches(msg, v.keymap.Sidebar):
		v.session.ToggleSidebar()
	case key.Matches(msg, v.keymap.Relayout):
		v.layout.Reconcile()
	}

	return v, nil
}

// ensureVisible scrolls the viewport to keep the cursor on screen.
func (v *View) ensureVisible() {
	visible := v.docRows()
	if visible <= 0 {
		return
	}
	if v.cursor < v.scroll {
		v.scroll = v.cursor
	}
	if v.cursor >= v.scroll+visible {
		v.scroll = v.cursor - visible + 1
	}
}

// docRows returns the number of document rows that fit on screen,
// leaving room for the title and help footer.
func (v *View) docRows() int {
	return v.height - 4
}

// beginPlacement synthesises a placement click at the cursor row.
func (v *View) beginPlacement() {
	if len(v.meta) == 0 || v.cursor >= len(v.meta) {
		return
	}

	w, h, ok := v.oracle.ContainerSize()
	if !ok {
		v.status = "document not ready"
		return
	}

	m := v.meta[v.cursor]
	click := domain.PlacementClick{
		Viewport:  domain.Point{X: 0, Y: float64(v.cursor)},
		Container: domain.Rect{X: 0, Y: 0, Width: w, Height: h},
		Page:      m.page,
		Target:    domain.TargetContent,
	}
	if v.placement.Begin(click) {
		v.placeAnchor = m
		v.placeLen = len([]rune(v.lines[v.cursor]))
		v.status = "placing: [m]ark  [c]omment  [t]ext  [esc] cancel"
	}
}

func (v *View) commitQuickmark() {
	if _, err := v.placement.CommitQuickmark(); err == nil {
		v.status = "quickmark placed"
	}
}

func (v *View) commitComment() {
	ann, comment, err := v.placement.CommitComment()
	if err != nil {
		return
	}
	// Persist the begin-time span into the comment so rebuilds
	// re-anchor it to the placed row, not the page start.
	start := v.placeAnchor.offset
	end := start + v.placeLen
	v.session.UpdateComment(comment.ID, domain.CommentPatch{
		StartOffset: &start,
		EndOffset:   &end,
	})
	comment.StartOffset = start
	comment.EndOffset = end
	v.oracle.SetAnchor(comment.ID, ann.Position.Page, start, end)
	v.oracle.SetCardHeight(comment.ID, float64(v.cardRows(&comment)))
	v.layout.Reconcile()
	v.status = "comment placed"
}

func (v *View) commitText() {
	if _, err := v.placement.CommitText(); err == nil {
		v.status = "text annotation placed"
	}
}

// addInlineComment anchors a comment to the cursor line.
func (v *View) addInlineComment() {
	if len(v.meta) == 0 || v.cursor >= len(v.meta) {
		return
	}

	m := v.meta[v.cursor]
	lineLen := len([]rune(v.lines[v.cursor]))
	comment := v.session.AddComment(domain.Comment{
		Type:        domain.CommentInline,
		Content:     "New comment",
		Text:        v.lines[v.cursor],
		Page:        m.page,
		StartOffset: m.offset,
		EndOffset:   m.offset + lineLen,
	})
	v.session.SelectComment(comment.ID)

	v.oracle.SetAnchor(comment.ID, comment.Page, comment.StartOffset, comment.EndOffset)
	v.oracle.SetCardHeight(comment.ID, float64(v.cardRows(&comment)))
	v.layout.Reconcile()
	v.status = "comment added"
}

func (v *View) deleteSelectedComment() {
	id := v.session.SelectedCommentID()
	if id == "" {
		return
	}
	v.session.DeleteComment(id)
	v.oracle.RemoveAnchor(id)
	v.oracle.RemoveCard(id)
	v.layout.Reconcile()
	v.status = "comment deleted"
}

// moveCursorToSelection jumps the cursor to the selected highlight.
func (v *View) moveCursorToSelection() {
	nav := v.session.Navigation()
	if nav.SelectedHighlightID == "" {
		return
	}
	for _, h := range v.session.Highlights() {
		if h.ID != nav.SelectedHighlightID {
			continue
		}
		row := v.rowForOffset(h.Page, h.StartOffset)
		if row >= 0 {
			v.cursor = row
			v.ensureVisible()
		}
		return
	}
}

// rowForOffset returns the rendered row containing the page offset.
func (v *View) rowForOffset(page, offset int) int {
	row := -1
	for i, m := range v.meta {
		if m.page != page {
			continue
		}
		if m.offset > offset {
			break
		}
		row = i
	}
	return row
}

// View renders the review pane.
func (v *View) View() string {
	var b strings.Builder

	doc := v.session.Document()
	title := doc.Title
	if title == "" {
		title = "Review"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("Loading document..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	margin := v.renderMargin()
	connectorRow, hasConnector := v.connectorRow()
	locatorRow, hasLocator := v.locatorRow()

	visible := v.docRows()
	docWidth := v.docWidth()
	for i := v.scroll; i < len(v.lines) && i < v.scroll+visible; i++ {
		line := v.renderDocLine(i, docWidth)

		gutter := strings.Repeat(" ", gutterWidth)
		if hasConnector && i == connectorRow {
			gutter = v.styles.Connector.Render("──▶")
		} else if hasLocator && i == locatorRow {
			gutter = v.styles.Locator.Render(" ◉ ")
		}

		marginLine := ""
		if i < len(margin) {
			marginLine = margin[i]
		}

		b.WriteString(line)
		b.WriteString(gutter)
		b.WriteString(marginLine)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderDocLine renders one document row padded to the pane width.
func (v *View) renderDocLine(row, width int) string {
	line := v.lines[row]
	if len([]rune(line)) > width {
		line = string([]rune(line)[:width])
	}
	padded := line + strings.Repeat(" ", width-len([]rune(line)))

	if row == v.cursor {
		return v.styles.Selected.Render(padded)
	}
	if style, ok := v.highlightStyleForRow(row); ok {
		return style.Render(padded)
	}
	return v.styles.Normal.Render(padded)
}

// highlightStyleForRow returns the palette style when the row overlaps
// a highlight from an included source.
func (v *View) highlightStyleForRow(row int) (lipgloss.Style, bool) {
	if row >= len(v.meta) {
		return lipgloss.Style{}, false
	}
	m := v.meta[row]
	lineStart := m.offset
	lineEnd := lineStart + len([]rune(v.lines[row]))

	for _, h := range v.session.Highlights() {
		if h.Page != m.page || h.SourceID == "" {
			continue
		}
		if v.session.IsSourceExcluded(h.SourceID) {
			continue
		}
		if h.StartOffset >= lineEnd || h.EndOffset <= lineStart {
			continue
		}
		color, _ := v.session.ColorFor(h.SourceID)
		return v.styles.HighlightStyle(color), true
	}
	return lipgloss.Style{}, false
}

// renderMargin lays the comment cards into a row buffer using the
// reconciled positions.
func (v *View) renderMargin() []string {
	positions := v.layout.Positions()
	if len(positions) == 0 {
		return nil
	}

	rows := len(v.lines)
	for _, p := range positions {
		if end := int(p.Top + p.Height); end > rows {
			rows = end
		}
	}
	margin := make([]string, rows)

	selected := v.session.SelectedCommentID()
	for _, p := range positions {
		comment, ok := v.session.Comment(p.ID)
		if !ok {
			continue
		}

		style := v.styles.Card
		if p.ID == selected {
			style = style.BorderForeground(v.styles.Theme().Primary)
		}
		card := style.Width(marginWidth - 2).Render(comment.Content)
		for i, line := range strings.Split(card, "\n") {
			row := int(p.Top) + i
			if row >= 0 && row < len(margin) {
				margin[row] = line
			}
		}
	}
	return margin
}

// connectorRow maps the geometry service's connector to a margin row.
func (v *View) connectorRow() (int, bool) {
	line, ok := v.geometry.Connector()
	if !ok {
		return 0, false
	}
	return int(line.From.Y), true
}

// locatorRow maps the active placement dot to a document row.
func (v *View) locatorRow() (int, bool) {
	dot, ok := v.geometry.Locator()
	if !ok {
		return 0, false
	}
	return int(dot.At.Y), true
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	if v.status != "" {
		return v.styles.Help.Render(v.status)
	}
	return v.styles.Help.Render("[j/k] move  [a] annotate  [c] comment  [d] delete  [tab] sources  [?] help  [q] quit")
}

// Cursor returns the cursor row (for testing).
func (v *View) Cursor() int {
	return v.cursor
}

// Lines returns the wrapped document rows (for testing).
func (v *View) Lines() []string {
	return v.lines
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
