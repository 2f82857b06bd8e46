package domain

// NavigationSource records which surface initiated the current
// selection, so views can avoid echoing a selection back at its origin.
type NavigationSource string

// Recognised navigation sources.
const (
	// NavigationSourceCard means the selection came from a match card.
	NavigationSourceCard NavigationSource = "card"

	// NavigationSourceHighlight means the selection came from clicking
	// a highlight in the document.
	NavigationSourceHighlight NavigationSource = "highlight"

	// NavigationSourceNone means no selection is active.
	NavigationSourceNone NavigationSource = ""
)

// IsValid returns true if the navigation source is recognised.
func (s NavigationSource) IsValid() bool {
	switch s {
	case NavigationSourceCard, NavigationSourceHighlight, NavigationSourceNone:
		return true
	default:
		return false
	}
}

// NavigationState is the current selection within the match cards.
//
// SelectedHighlightID is captured at selection time from the selected
// card's match list. It is not live-recomputed: if the card list
// mutates afterwards the field goes stale, which is accepted behaviour.
// Empty strings mean "no selection".
type NavigationState struct {
	// SelectedSourceID is the id of the selected match card.
	SelectedSourceID string

	// SelectedMatchIndex is the index into the selected card's matches.
	// It is always >= 0; a cleared selection resets it to 0.
	SelectedMatchIndex int

	// SelectedHighlightID is the highlight of the selected match.
	SelectedHighlightID string

	// Source records which surface initiated the selection.
	Source NavigationSource
}

// NavigationPatch is a partial NavigationState for shallow merging.
// Nil fields are left untouched. Callers are responsible for keeping
// the merged state consistent; SetNavigation performs no validation.
type NavigationPatch struct {
	SelectedSourceID    *string
	SelectedMatchIndex  *int
	SelectedHighlightID *string
	Source              *NavigationSource
}

// TabState holds pure view-mode flags. There are no cross-entity
// invariants here.
type TabState struct {
	// PrimaryTab is the active top-level tab.
	PrimaryTab string

	// SecondaryTab is the active tab within the primary tab.
	SecondaryTab string

	// ShowSimilarityHighlights toggles match highlight rendering.
	ShowSimilarityHighlights bool
}

// TabPatch is a partial TabState for shallow merging.
type TabPatch struct {
	PrimaryTab               *string
	SecondaryTab             *string
	ShowSimilarityHighlights *bool
}
