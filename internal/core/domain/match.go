package domain

// Match links a match card to one highlighted span in the document.
type Match struct {
	// HighlightID identifies the highlight for this matched span.
	HighlightID string
}

// MatchCard represents a detected external source with a similarity
// percentage and one or more matched spans. Cards are immutable within
// a session except for inclusion state, which the session tracks
// separately in its exclusion set.
type MatchCard struct {
	// ID is the unique identifier for the card.
	ID string

	// SourceName is the display name of the external source.
	SourceName string

	// SimilarityPercent is the similarity score in [0, 100].
	SimilarityPercent float64

	// IsCited reports whether the source is cited in the document.
	IsCited bool

	// AcademicIntegrityIssue flags sources the checker considers
	// problematic regardless of citation.
	AcademicIntegrityIssue bool

	// Matches are the spans this source matched, in document order.
	Matches []Match
}

// MatchAt returns the match at the given index and true, or a zero
// Match and false when the index is out of range.
func (c *MatchCard) MatchAt(index int) (Match, bool) {
	if index < 0 || index >= len(c.Matches) {
		return Match{}, false
	}
	return c.Matches[index], true
}
