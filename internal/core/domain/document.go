package domain

// Document represents a paginated document under review.
// It is produced by an external rendering layer and is read-only
// to the review core.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title.
	Title string

	// Author is the document author as reported by the bundle.
	Author string

	// Pages holds the page contents in reading order.
	Pages []Page
}

// Page is a single page of document text.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Content is the plain text of the page.
	Content string
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Highlight is a span of document text associated with a match or a
// comment. Highlights are rendered by the external layer; the core only
// reads their layout, never their content.
type Highlight struct {
	// ID is the unique identifier for the highlight.
	ID string

	// Page is the 1-based page number the span lives on.
	Page int

	// StartOffset is the rune offset of the span start within the page.
	StartOffset int

	// EndOffset is the rune offset one past the span end.
	EndOffset int

	// Text is the highlighted text, kept for display only.
	Text string

	// SourceID links to the MatchCard that produced this highlight,
	// empty for comment-owned highlights.
	SourceID string

	// CommentID links to the owning comment, empty for match highlights.
	CommentID string
}

// ReviewBundle is everything a document source loads for one review
// session: the document plus its externally detected highlights and
// match cards.
type ReviewBundle struct {
	Document   Document
	Highlights []Highlight
	MatchCards []MatchCard
}
