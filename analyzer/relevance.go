package analyzer

import (
	"strings"

	"portfolio-pulse/models"
	"portfolio-pulse/observability"
)

// RelevanceScore measures textual overlap between a holding and an article.
// Scoring is additive over case-insensitive substring checks:
//
//	+2 if the holding name or ticker appears in the title
//	+1 if the holding name or ticker appears in the title or description
//	+1 if the holding sector is known and appears in title+description
//
// A title match intentionally satisfies both of the first two checks, so
// title matches outscore description-only matches.
func RelevanceScore(h models.Holding, c models.NewsCandidate) int {
	name := strings.ToLower(h.Name)
	ticker := strings.ToLower(h.Ticker)
	title := strings.ToLower(c.Title)
	description := strings.ToLower(c.Description)
	combined := title + " " + description

	score := 0

	if strings.Contains(title, name) || strings.Contains(title, ticker) {
		score += 2
	}
	if strings.Contains(title, name) || strings.Contains(title, ticker) ||
		strings.Contains(description, name) || strings.Contains(description, ticker) {
		score++
	}
	if h.Sector != nil && *h.Sector != "" && strings.Contains(combined, strings.ToLower(*h.Sector)) {
		score++
	}

	return score
}

// FilterRelevant discards candidates with relevance score 0, preserving the
// provider's return order for the survivors. Zero survivors is the intended
// outcome when nothing matches; precision over recall.
func FilterRelevant(h models.Holding, candidates []models.NewsCandidate) []models.NewsCandidate {
	metrics := observability.GetMetrics()

	kept := make([]models.NewsCandidate, 0, len(candidates))
	for _, c := range candidates {
		score := RelevanceScore(h, c)
		metrics.RecordRelevance(score == 0)
		if score > 0 {
			kept = append(kept, c)
		}
	}
	return kept
}
