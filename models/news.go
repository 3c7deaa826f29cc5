package models

// Sentinel source labels for synthesized news candidates.
const (
	SourceSystemAnalysis = "System Analysis"
	SourceMarketData     = "Market Data"
	SourceExternal       = "External Source"
)

// NewsCandidate is a news article (or a synthesized item) considered for
// relevance to a holding. Synthesized items have the same shape as real ones
// but carry a fixed source label.
type NewsCandidate struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Source      string  `json:"source"`
	URL         *string `json:"url"`
	PublishedAt string  `json:"published_at,omitempty"`
}

// IsSynthetic reports whether the candidate was produced by the fallback
// builder rather than fetched from a news provider.
func (c NewsCandidate) IsSynthetic() bool {
	return c.Source == SourceSystemAnalysis
}
