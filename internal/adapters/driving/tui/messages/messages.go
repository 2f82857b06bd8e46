// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm
// architecture.
package messages

import (
	"github.com/redline-labs/redline-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSources is the match-card list.
	ViewSources ViewType = iota
	// ViewReview is the document pane with the comment margin.
	ViewReview
	// ViewComments is the comment list sidebar.
	ViewComments
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSources:
		return "sources"
	case ViewReview:
		return "review"
	case ViewComments:
		return "comments"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// BundleLoaded carries the parsed review bundle, or the load error.
type BundleLoaded struct {
	Bundle *domain.ReviewBundle
	Err    error
}

// BundleChanged signals that the bundle file changed on disk and
// should be reloaded.
type BundleChanged struct{}

// SourceSelected signals a match card was chosen from the list.
type SourceSelected struct {
	SourceID   string
	MatchIndex int
}

// LayoutPublished signals the margin layout was recomputed.
type LayoutPublished struct{}

// CommentSaved signals a comment edit finished.
type CommentSaved struct {
	Comment domain.Comment
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
