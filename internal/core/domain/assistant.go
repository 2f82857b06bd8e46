package domain

// AssistantActionType identifies a structured directive from the
// assistant collaborator.
type AssistantActionType string

// Recognised assistant action types.
const (
	// ActionAddComment adds an inline comment.
	ActionAddComment AssistantActionType = "add_comment"

	// ActionAddSummaryComment adds a document-level summary comment.
	ActionAddSummaryComment AssistantActionType = "add_summary_comment"

	// ActionDraftComment drafts comment text without committing it.
	ActionDraftComment AssistantActionType = "draft_comment"

	// ActionHighlightText selects a match by source id and index.
	ActionHighlightText AssistantActionType = "highlight_text"

	// ActionShowSource navigates to a match card.
	ActionShowSource AssistantActionType = "show_source"

	// ActionNavigateTab switches the active tab.
	ActionNavigateTab AssistantActionType = "navigate_tab"
)

// IsValid returns true if the action type is recognised.
func (t AssistantActionType) IsValid() bool {
	switch t {
	case ActionAddComment, ActionAddSummaryComment, ActionDraftComment,
		ActionHighlightText, ActionShowSource, ActionNavigateTab:
		return true
	default:
		return false
	}
}

// AssistantAction is a structured directive produced by the assistant
// proxy. Only the logical contract is defined here; the proxy's wire
// format is an adapter concern.
type AssistantAction struct {
	// Type is the directive kind.
	Type AssistantActionType

	// Label is a human-readable description of the directive.
	Label string

	// Payload carries type-specific fields such as "content", "page",
	// "source_id" or "match_index".
	Payload map[string]any
}
