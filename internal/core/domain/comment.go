package domain

import "time"

// CommentType identifies how a comment was created.
type CommentType string

// Recognised comment types.
const (
	// CommentInline anchors to a text selection span.
	CommentInline CommentType = "inline"

	// CommentPoint anchors to a point annotation.
	CommentPoint CommentType = "point"

	// CommentSummary is a document-level comment with no anchor.
	CommentSummary CommentType = "summary"
)

// IsValid returns true if the comment type is recognised.
func (t CommentType) IsValid() bool {
	switch t {
	case CommentInline, CommentPoint, CommentSummary:
		return true
	default:
		return false
	}
}

// Comment is a reviewer comment. A placement-origin comment always has
// exactly one PointAnnotation with a matching CommentID; comments from
// other flows (text selection, summary, assistant) have none.
type Comment struct {
	// ID is the unique identifier for the comment.
	ID string

	// Type records how the comment was created.
	Type CommentType

	// Content is the comment body.
	Content string

	// Text is the document text the comment was anchored to, empty
	// for point and summary comments.
	Text string

	// Position is a legacy numeric position. It is superseded by live
	// layout measurement and kept only for bundles that carry it.
	Position float64

	// Page is the 1-based page number the comment belongs to.
	Page int

	// StartOffset is the rune offset of the anchored span start.
	StartOffset int

	// EndOffset is the rune offset one past the anchored span end.
	EndOffset int

	// CreatedAt is when the comment was created.
	CreatedAt time.Time

	// UpdatedAt is when the comment was last modified.
	UpdatedAt time.Time

	// Source optionally names where the comment came from, e.g. an
	// assistant directive label.
	Source string
}

// CommentPatch is a partial comment for merging into an existing one.
// Nil fields are left untouched.
type CommentPatch struct {
	Content     *string
	Text        *string
	Page        *int
	StartOffset *int
	EndOffset   *int
	Source      *string
}
