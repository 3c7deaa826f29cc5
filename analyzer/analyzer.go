package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"portfolio-pulse/models"
	"portfolio-pulse/observability"
)

// RetrievalSource provides news candidates for a holding. Implemented by
// RetrievalAdapter; stubbed in tests.
type RetrievalSource interface {
	Fetch(ctx context.Context, h models.Holding) []models.NewsCandidate
}

// PortfolioAnalyzer runs the full analysis pipeline over a holding list.
// Holdings are processed sequentially in input order; a failure inside one
// holding's analysis never aborts the batch.
type PortfolioAnalyzer struct {
	retrieval     RetrievalSource
	news          NewsSearchService // sector fallback lookups; may be nil
	maxAdditional int
	sectorLimit   int
	now           func() time.Time
}

// NewPortfolioAnalyzer creates a PortfolioAnalyzer. news may be nil, in
// which case the sector-news fallback is skipped.
func NewPortfolioAnalyzer(retrieval RetrievalSource, news NewsSearchService, maxAdditional, sectorLimit int) *PortfolioAnalyzer {
	if maxAdditional < 0 {
		maxAdditional = 4
	}
	if sectorLimit <= 0 {
		sectorLimit = 10
	}
	return &PortfolioAnalyzer{
		retrieval:     retrieval,
		news:          news,
		maxAdditional: maxAdditional,
		sectorLimit:   sectorLimit,
		now:           time.Now,
	}
}

// Analyze produces one HoldingAnalysis per input holding, in input order,
// and stamps the report with the current time.
func (p *PortfolioAnalyzer) Analyze(ctx context.Context, holdings []models.Holding) *models.PortfolioReport {
	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()

	results := make([]models.HoldingAnalysis, 0, len(holdings))
	for _, h := range holdings {
		results = append(results, p.analyzeHolding(ctx, h))
	}

	metrics.RecordAnalysisRun("ok", timer.Seconds())

	return &models.PortfolioReport{
		ID:        uuid.New(),
		Stocks:    results,
		Timestamp: p.now(),
	}
}

// analyzeHolding retrieves, filters and classifies news for one holding.
// A panic inside retrieval degrades to a Neutral result so the batch
// always completes.
func (p *PortfolioAnalyzer) analyzeHolding(ctx context.Context, h models.Holding) (result models.HoldingAnalysis) {
	metrics := observability.GetMetrics()

	defer func() {
		if r := recover(); r != nil {
			observability.WithTicker(h.Ticker).Error("holding analysis failed, degrading to neutral", "panic", r)
			result = models.HoldingAnalysis{
				Stock:          h.Name,
				Ticker:         h.Ticker,
				Sector:         h.Sector,
				NewsSummary:    fmt.Sprintf("No significant news found for %s", h.Name),
				Impact:         models.ImpactNeutral,
				AdditionalNews: []models.NewsCandidate{},
			}
			metrics.RecordImpact(string(models.ImpactNeutral))
		}
	}()

	candidates := p.retrieval.Fetch(ctx, h)

	// Lower-priority sector lookup when the company-level attempt came up
	// completely empty.
	if len(candidates) == 0 && h.Sector != nil && *h.Sector != "" && p.news != nil {
		sectorNews, err := p.news.GetSectorNews(ctx, *h.Sector, p.sectorLimit)
		if err != nil {
			observability.WithTicker(h.Ticker).Warn("sector news lookup failed", "sector", *h.Sector, "error", err)
		} else {
			candidates = sectorNews
		}
	}

	impact := ClassifyImpact(candidates)
	metrics.RecordImpact(string(impact))

	summary := fmt.Sprintf("No significant news found for %s", h.Name)
	additional := []models.NewsCandidate{}
	if len(candidates) > 0 {
		summary = candidates[0].Title
		if len(candidates) > 1 {
			end := 1 + p.maxAdditional
			if end > len(candidates) {
				end = len(candidates)
			}
			additional = candidates[1:end]
		}
	}

	return models.HoldingAnalysis{
		Stock:          h.Name,
		Ticker:         h.Ticker,
		Sector:         h.Sector,
		NewsSummary:    summary,
		Impact:         impact,
		AdditionalNews: additional,
	}
}
