package analyzer

import (
	"strings"

	"portfolio-pulse/models"
)

// PositiveKeywords and NegativeKeywords are the fixed sentiment lexicons.
// They are exported so tests can assert on exact membership and scoring math.
var PositiveKeywords = []string{
	"growth", "profit", "increase", "rise", "up", "gain", "positive",
	"success", "launch", "partnership", "acquisition", "beat", "exceeds",
	"surpass", "improvement", "innovation", "progress", "win", "award",
}

var NegativeKeywords = []string{
	"loss", "decline", "decrease", "fall", "down", "drop", "negative",
	"failure", "lawsuit", "investigation", "fine", "penalty", "miss",
	"below", "concern", "risk", "threat", "weak", "cut", "layoff",
}

// ClassifyImpact maps a candidate list to an impact label.
//
// A lone fallback item (source "System Analysis") is classified from its
// price-comparison title. Otherwise every candidate's title and description
// is scanned against the two lexicons; the larger hit count wins and ties,
// including an empty list, are Neutral.
func ClassifyImpact(candidates []models.NewsCandidate) models.Impact {
	if len(candidates) == 0 {
		return models.ImpactNeutral
	}

	if len(candidates) == 1 && candidates[0].IsSynthetic() {
		title := strings.ToLower(candidates[0].Title)
		switch {
		case strings.Contains(title, "above your average"):
			return models.ImpactPositive
		case strings.Contains(title, "below your average"):
			return models.ImpactNegative
		default:
			return models.ImpactNeutral
		}
	}

	positiveCount := 0
	negativeCount := 0

	for _, c := range candidates {
		text := strings.ToLower(c.Title + " " + c.Description)

		for _, keyword := range PositiveKeywords {
			if strings.Contains(text, keyword) {
				positiveCount++
			}
		}
		for _, keyword := range NegativeKeywords {
			if strings.Contains(text, keyword) {
				negativeCount++
			}
		}
	}

	switch {
	case positiveCount > negativeCount:
		return models.ImpactPositive
	case negativeCount > positiveCount:
		return models.ImpactNegative
	default:
		return models.ImpactNeutral
	}
}
