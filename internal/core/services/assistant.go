package services

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driving"
	"github.com/redline-labs/redline-cli/internal/logger"
)

// Ensure AssistantDispatcher implements the interface.
var _ driving.AssistantService = (*AssistantDispatcher)(nil)

// AssistantDispatcher maps assistant directives onto session
// operations. The assistant proxy may stream directives in bursts, so
// dispatch is rate limited.
type AssistantDispatcher struct {
	session driving.ReviewSession
	limiter *rate.Limiter
}

// NewAssistantDispatcher creates a dispatcher over the session.
// Nil settings use defaults.
func NewAssistantDispatcher(session driving.ReviewSession, settings *domain.AssistantSettings) *AssistantDispatcher {
	cfg := domain.DefaultAppSettings().Assistant
	if settings != nil {
		cfg = *settings
	}
	return &AssistantDispatcher{
		session: session,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
	}
}

// Dispatch applies one directive to the session.
func (d *AssistantDispatcher) Dispatch(_ context.Context, action domain.AssistantAction) error {
	if !d.limiter.Allow() {
		return domain.ErrRateLimited
	}

	switch action.Type {
	case domain.ActionAddComment:
		d.session.AddComment(domain.Comment{
			Type:        domain.CommentInline,
			Content:     payloadString(action.Payload, "content"),
			Text:        payloadString(action.Payload, "text"),
			Page:        payloadInt(action.Payload, "page"),
			StartOffset: payloadInt(action.Payload, "start_offset"),
			EndOffset:   payloadInt(action.Payload, "end_offset"),
			Source:      action.Label,
		})
		return nil

	case domain.ActionAddSummaryComment:
		d.session.AddComment(domain.Comment{
			Type:    domain.CommentSummary,
			Content: payloadString(action.Payload, "content"),
			Source:  action.Label,
		})
		return nil

	case domain.ActionDraftComment:
		// Drafting happens entirely in the assistant surface; the
		// session has nothing to record until the draft is committed
		// as an add_comment directive.
		logger.Debug("assistant: draft directive %q acknowledged", action.Label)
		return nil

	case domain.ActionHighlightText, domain.ActionShowSource:
		sourceID := payloadString(action.Payload, "source_id")
		if sourceID == "" {
			return domain.ErrInvalidInput
		}
		d.session.SelectMatch(sourceID, payloadInt(action.Payload, "match_index"), domain.NavigationSourceCard)
		return nil

	case domain.ActionNavigateTab:
		tab := payloadString(action.Payload, "tab")
		if tab == "" {
			return domain.ErrInvalidInput
		}
		d.session.SetTabState(domain.TabPatch{PrimaryTab: &tab})
		return nil

	default:
		return domain.ErrUnsupportedAction
	}
}

// payloadString reads a string payload field, empty when absent.
func payloadString(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

// payloadInt reads an integer payload field. JSON decoding produces
// float64, so both forms are accepted.
func payloadInt(payload map[string]any, key string) int {
	switch v := payload[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
