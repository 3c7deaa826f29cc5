package models

import (
	"time"

	"github.com/google/uuid"
)

// Impact is the sentiment verdict for a holding.
type Impact string

const (
	ImpactPositive Impact = "Positive"
	ImpactNegative Impact = "Negative"
	ImpactNeutral  Impact = "Neutral"
)

// HoldingAnalysis is the per-holding analysis result. It is created once by
// the portfolio analyzer and never mutated afterwards.
type HoldingAnalysis struct {
	Stock          string          `json:"stock"`
	Ticker         string          `json:"ticker"`
	Sector         *string         `json:"sector"`
	NewsSummary    string          `json:"news_summary"`
	Impact         Impact          `json:"impact"`
	AdditionalNews []NewsCandidate `json:"additional_news"`
}

// PortfolioReport is the full analysis for one run: one HoldingAnalysis per
// input holding, in input order, plus a creation timestamp.
type PortfolioReport struct {
	ID        uuid.UUID         `json:"id"`
	Stocks    []HoldingAnalysis `json:"stocks"`
	Timestamp time.Time         `json:"timestamp"`
}

// ImpactCounts returns the number of holdings per impact label.
func (r *PortfolioReport) ImpactCounts() map[Impact]int {
	counts := make(map[Impact]int, 3)
	for _, s := range r.Stocks {
		counts[s.Impact]++
	}
	return counts
}

// SectorCounts returns the number of holdings per sector. Holdings without a
// sector are grouped under "Unknown".
func (r *PortfolioReport) SectorCounts() map[string]int {
	counts := make(map[string]int)
	for _, s := range r.Stocks {
		sector := "Unknown"
		if s.Sector != nil && *s.Sector != "" {
			sector = *s.Sector
		}
		counts[sector]++
	}
	return counts
}

// Commentary is the optional model-generated narrative for a report. It is
// advisory output only and never feeds back into impact classification.
type Commentary struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	Risks           []string `json:"risks"`
	Opportunities   []string `json:"opportunities"`
}
