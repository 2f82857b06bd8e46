package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driven"
)

func testDocument() *domain.Document {
	return &domain.Document{
		ID:    "doc-1",
		Title: "Test",
		Pages: []domain.Page{
			// Wraps at width 10 into "alpha beta " / "gamma " / "delta".
			{Number: 1, Content: "alpha beta gamma delta"},
			{Number: 2, Content: "second page"},
		},
	}
}

func TestOracle_NoDocument(t *testing.T) {
	o := NewOracle()

	_, err := o.Measure(driven.HighlightRef("c1"))
	assert.ErrorIs(t, err, domain.ErrNoContainer)

	_, _, ok := o.ContainerSize()
	assert.False(t, ok)
}

func TestOracle_ContainerSize(t *testing.T) {
	o := NewOracle()
	o.SetDocument(testDocument(), 10)

	w, h, ok := o.ContainerSize()
	require.True(t, ok)
	assert.Equal(t, 10.0, w)
	// Page 1 wraps to 3 lines, one separator row, page 2 is 2 lines.
	assert.Equal(t, 6.0, h)
}

func TestOracle_MeasureHighlight(t *testing.T) {
	o := NewOracle()
	o.SetDocument(testDocument(), 10)

	// "gamma" starts at rune offset 11 on page 1, which is line 1.
	o.SetAnchor("c1", 1, 11, 16)
	m, err := o.Measure(driven.HighlightRef("c1"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Top)
	assert.Equal(t, 1.0, m.Height)
}

func TestOracle_MeasureHighlight_MultiLineSpan(t *testing.T) {
	o := NewOracle()
	o.SetDocument(testDocument(), 10)

	// "gamma delta" spans lines 1 and 2.
	o.SetAnchor("c1", 1, 11, 22)
	m, err := o.Measure(driven.HighlightRef("c1"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Top)
	assert.Equal(t, 2.0, m.Height)
}

func TestOracle_MeasureHighlight_SecondPage(t *testing.T) {
	o := NewOracle()
	o.SetDocument(testDocument(), 10)

	// Page 1 occupies rows 0-2, row 3 is the separator, page 2
	// starts at row 4. "page" starts at offset 7, line 1 of page 2.
	o.SetAnchor("c2", 2, 7, 11)
	m, err := o.Measure(driven.HighlightRef("c2"))
	require.NoError(t, err)
	assert.Equal(t, 5.0, m.Top)
}

func TestOracle_MeasureHighlight_UnknownAnchor(t *testing.T) {
	o := NewOracle()
	o.SetDocument(testDocument(), 10)

	_, err := o.Measure(driven.HighlightRef("missing"))
	assert.ErrorIs(t, err, domain.ErrElementMissing)
}

func TestOracle_MeasureHighlight_UnknownPage(t *testing.T) {
	o := NewOracle()
	o.SetDocument(testDocument(), 10)

	o.SetAnchor("c1", 9, 0, 4)
	_, err := o.Measure(driven.HighlightRef("c1"))
	assert.ErrorIs(t, err, domain.ErrElementMissing)
}

func TestOracle_MeasureCard(t *testing.T) {
	o := NewOracle()
	o.SetDocument(testDocument(), 10)

	_, err := o.Measure(driven.CardRef("c1"))
	assert.ErrorIs(t, err, domain.ErrElementMissing)

	o.SetCardHeight("c1", 4)
	m, err := o.Measure(driven.CardRef("c1"))
	require.NoError(t, err)
	assert.Equal(t, 4.0, m.Height)

	o.RemoveCard("c1")
	_, err = o.Measure(driven.CardRef("c1"))
	assert.ErrorIs(t, err, domain.ErrElementMissing)
}

func TestOracle_MeasureContainer(t *testing.T) {
	o := NewOracle()
	o.SetDocument(testDocument(), 10)

	m, err := o.Measure(driven.ElementRef{Kind: driven.ElementContainer})
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Top)
	assert.Equal(t, 6.0, m.Height)
}

func TestOracle_RemoveAnchor(t *testing.T) {
	o := NewOracle()
	o.SetDocument(testDocument(), 10)

	o.SetAnchor("c1", 1, 0, 5)
	o.RemoveAnchor("c1")
	_, err := o.Measure(driven.HighlightRef("c1"))
	assert.ErrorIs(t, err, domain.ErrElementMissing)
}

func TestOracle_SetCardHeight_FiresObserverOnChange(t *testing.T) {
	o := NewOracle()
	o.SetDocument(testDocument(), 10)

	fired := 0
	unsub := o.ObserveResize(driven.CardRef("c1"), func() { fired++ })

	o.SetCardHeight("c1", 3)
	assert.Equal(t, 1, fired)

	// Same height does not fire.
	o.SetCardHeight("c1", 3)
	assert.Equal(t, 1, fired)

	o.SetCardHeight("c1", 5)
	assert.Equal(t, 2, fired)

	unsub()
	o.SetCardHeight("c1", 7)
	assert.Equal(t, 2, fired)
}

func TestOracle_Rewrap(t *testing.T) {
	o := NewOracle()
	o.SetDocument(testDocument(), 10)
	o.SetAnchor("c1", 1, 11, 16)

	m, err := o.Measure(driven.HighlightRef("c1"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Top)

	// Wide enough that page 1 fits on one line.
	o.SetDocument(testDocument(), 80)
	m, err = o.Measure(driven.HighlightRef("c1"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Top)
}

func TestWrapLines(t *testing.T) {
	lines := WrapLines("alpha beta gamma delta", 10)
	assert.Equal(t, []string{"alpha beta", "gamma", "delta"}, lines)

	lines = WrapLines("one\ntwo", 10)
	assert.Equal(t, []string{"one", "two"}, lines)

	assert.Equal(t, []string{""}, WrapLines("", 10))
}

func TestWrapLineStarts(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		width   int
		want    []int
	}{
		{name: "empty page", content: "", width: 10, want: []int{0}},
		{name: "fits on one line", content: "short", width: 10, want: []int{0}},
		{name: "word wrap", content: "alpha beta gamma delta", width: 10, want: []int{0, 11, 17}},
		{name: "explicit newline", content: "one\ntwo", width: 10, want: []int{0, 4}},
		{name: "hard break long word", content: "abcdefghijkl", width: 5, want: []int{0, 5, 10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, wrapLineStarts(tc.content, tc.width))
		})
	}
}
