// Package text implements the layout oracle over wrapped terminal
// text. Vertical units are terminal rows: a highlight's Top is the row
// its anchored span starts on, computed from the page's word-wrapped
// lines, so margin reconciliation tracks the actual document render.
package text

import (
	"strings"
	"sync"

	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driven"
)

// Ensure Oracle implements the interface.
var _ driven.LayoutOracle = (*Oracle)(nil)

// pageSeparatorRows is the blank rows rendered between pages.
const pageSeparatorRows = 1

// anchor is a comment's span in document coordinates.
type anchor struct {
	page        int
	startOffset int
	endOffset   int
}

// wrappedPage is one page's content broken into display lines.
type wrappedPage struct {
	number   int
	firstRow int
	// lineStarts[i] is the rune offset of line i within the page.
	lineStarts []int
}

// Oracle measures highlight and card rows against a word-wrapped
// rendering of the document. The driving surface feeds it the document,
// the wrap width, comment anchors, and rendered card heights.
type Oracle struct {
	mu           sync.Mutex
	width        int
	pages        []wrappedPage
	totalRows    int
	anchors      map[string]anchor
	cardHeights  map[string]float64
	observers    map[driven.ElementRef]map[int]func()
	nextObserver int
}

// NewOracle creates an oracle with no document. Measure reports
// domain.ErrNoContainer until SetDocument is called with a positive
// width.
func NewOracle() *Oracle {
	return &Oracle{
		anchors:     make(map[string]anchor),
		cardHeights: make(map[string]float64),
		observers:   make(map[driven.ElementRef]map[int]func()),
	}
}

// SetDocument installs the document wrapped to the given column width.
// Calling it again re-wraps, e.g. after a terminal resize.
func (o *Oracle) SetDocument(doc *domain.Document, width int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.width = width
	o.pages = nil
	o.totalRows = 0
	if doc == nil || width <= 0 {
		return
	}

	row := 0
	for _, page := range doc.Pages {
		starts := wrapLineStarts(page.Content, width)
		o.pages = append(o.pages, wrappedPage{
			number:     page.Number,
			firstRow:   row,
			lineStarts: starts,
		})
		row += len(starts) + pageSeparatorRows
	}
	if row > 0 {
		row -= pageSeparatorRows
	}
	o.totalRows = row
}

// SetAnchor registers the span a comment is anchored to.
func (o *Oracle) SetAnchor(commentID string, page, startOffset, endOffset int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.anchors[commentID] = anchor{page: page, startOffset: startOffset, endOffset: endOffset}
}

// RemoveAnchor forgets a comment's span, typically after deletion.
func (o *Oracle) RemoveAnchor(commentID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.anchors, commentID)
}

// SetCardHeight records the rendered row height of a comment's card
// and fires any resize observers when the height changed.
func (o *Oracle) SetCardHeight(commentID string, rows float64) {
	o.mu.Lock()
	prev, had := o.cardHeights[commentID]
	o.cardHeights[commentID] = rows
	var fns []func()
	if !had || prev != rows {
		for _, fn := range o.observers[driven.CardRef(commentID)] {
			fns = append(fns, fn)
		}
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// RemoveCard forgets a comment's card height.
func (o *Oracle) RemoveCard(commentID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.cardHeights, commentID)
}

// Measure returns row metrics for the addressed element.
func (o *Oracle) Measure(ref driven.ElementRef) (driven.Metrics, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.width <= 0 || len(o.pages) == 0 {
		return driven.Metrics{}, domain.ErrNoContainer
	}

	switch ref.Kind {
	case driven.ElementContainer:
		return driven.Metrics{Top: 0, Height: float64(o.totalRows)}, nil
	case driven.ElementHighlight:
		a, ok := o.anchors[ref.ID]
		if !ok {
			return driven.Metrics{}, domain.ErrElementMissing
		}
		return o.measureSpan(a)
	case driven.ElementCard:
		h, ok := o.cardHeights[ref.ID]
		if !ok {
			return driven.Metrics{}, domain.ErrElementMissing
		}
		return driven.Metrics{Height: h}, nil
	default:
		return driven.Metrics{}, domain.ErrElementMissing
	}
}

func (o *Oracle) measureSpan(a anchor) (driven.Metrics, error) {
	page, ok := o.pageByNumber(a.page)
	if !ok {
		return driven.Metrics{}, domain.ErrElementMissing
	}

	startLine := lineOfOffset(page.lineStarts, a.startOffset)
	endLine := startLine
	if a.endOffset > a.startOffset {
		endLine = lineOfOffset(page.lineStarts, a.endOffset-1)
	}
	return driven.Metrics{
		Top:    float64(page.firstRow + startLine),
		Height: float64(endLine - startLine + 1),
	}, nil
}

func (o *Oracle) pageByNumber(number int) (wrappedPage, bool) {
	for _, p := range o.pages {
		if p.number == number {
			return p, true
		}
	}
	return wrappedPage{}, false
}

// ObserveResize registers a resize callback for the element.
func (o *Oracle) ObserveResize(ref driven.ElementRef, fn func()) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.observers[ref] == nil {
		o.observers[ref] = make(map[int]func())
	}
	id := o.nextObserver
	o.nextObserver++
	o.observers[ref][id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.observers[ref], id)
	}
}

// ContainerSize returns the wrapped document extent in columns and
// rows, or false before a document is installed.
func (o *Oracle) ContainerSize() (width, height float64, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.width <= 0 || len(o.pages) == 0 {
		return 0, 0, false
	}
	return float64(o.width), float64(o.totalRows), true
}

// wrapLineStarts word-wraps content to width columns and returns the
// rune offset each display line starts at. The offsets cover the
// original content, so span offsets from the bundle map directly onto
// lines. An empty page still occupies one line.
func wrapLineStarts(content string, width int) []int {
	runes := []rune(content)
	if len(runes) == 0 {
		return []int{0}
	}

	starts := []int{0}
	lineStart := 0
	lastSpace := -1
	col := 0

	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
			lineStart = i + 1
			lastSpace = -1
			col = 0
			continue
		}
		col++
		if r == ' ' {
			lastSpace = i
		}
		if col > width {
			// Break after the last space on the line, or hard-break
			// mid-word when none fits.
			breakAt := i
			if lastSpace > lineStart {
				breakAt = lastSpace + 1
			}
			starts = append(starts, breakAt)
			lineStart = breakAt
			lastSpace = -1
			col = i - breakAt + 1
		}
	}

	return starts
}

// PageSeparatorRows is the number of blank rows between pages, shared
// with renderers so their rows line up with measured rows.
const PageSeparatorRows = pageSeparatorRows

// WrapOffsets returns the rune offset each wrapped display line starts
// at, using the same break points Measure uses.
func WrapOffsets(content string, width int) []int {
	return wrapLineStarts(content, width)
}

// WrapLines word-wraps content to width columns using the same break
// points Measure uses, so rendered rows line up with measured rows.
func WrapLines(content string, width int) []string {
	runes := []rune(content)
	starts := wrapLineStarts(content, width)
	lines := make([]string, len(starts))
	for i, start := range starts {
		end := len(runes)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		line := string(runes[start:end])
		// Break points keep the separator with the preceding line;
		// trim it so rows do not end in stray whitespace.
		lines[i] = strings.TrimRight(line, " \n")
	}
	return lines
}

// lineOfOffset returns the index of the line containing the rune
// offset. Offsets past the end land on the last line.
func lineOfOffset(lineStarts []int, offset int) int {
	line := 0
	for i, start := range lineStarts {
		if start > offset {
			break
		}
		line = i
	}
	return line
}
