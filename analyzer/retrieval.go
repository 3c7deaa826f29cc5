package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"portfolio-pulse/models"
	"portfolio-pulse/observability"
)

// RetrievalAdapter fetches news candidates for a holding. It tries the
// richer market feed first, then the primary news search API with relevance
// filtering, and finally the fallback builder. It never fails the caller:
// transport and parse errors are logged and degrade to the next step.
type RetrievalAdapter struct {
	news     NewsSearchService // nil when no API key is configured
	feed     MarketFeedService // nil when the market feed is disabled
	fallback *FallbackBuilder
	pageSize int
	now      func() time.Time
}

// NewRetrievalAdapter creates a RetrievalAdapter. Either service may be nil;
// the corresponding steps are skipped.
func NewRetrievalAdapter(news NewsSearchService, feed MarketFeedService, fallback *FallbackBuilder, pageSize int) *RetrievalAdapter {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &RetrievalAdapter{
		news:     news,
		feed:     feed,
		fallback: fallback,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// Fetch returns news candidates for a holding. The result is never empty:
// when every provider comes up short a single synthesized item is returned.
func (a *RetrievalAdapter) Fetch(ctx context.Context, h models.Holding) []models.NewsCandidate {
	log := observability.WithTicker(h.Ticker)

	if a.feed != nil {
		if candidates, ok := a.fetchFromFeed(ctx, h); ok {
			return candidates
		}
	}

	if a.news != nil {
		query := fmt.Sprintf("%s %s", h.Name, h.Ticker)
		if h.Sector != nil && *h.Sector != "" {
			query += fmt.Sprintf(" AND (%s)", *h.Sector)
		}

		articles, err := a.news.GetNews(ctx, query, a.pageSize)
		if err != nil {
			log.Warn("news search failed, degrading to fallback item", "error", err)
			return []models.NewsCandidate{a.fallback.Build(h, true)}
		}

		if relevant := FilterRelevant(h, articles); len(relevant) > 0 {
			return relevant
		}
		log.Debug("no relevant articles survived filtering", "fetched", len(articles))
	}

	return []models.NewsCandidate{a.fallback.Build(h, false)}
}

// fetchFromFeed runs the market feed steps: company news first, then a
// single synthesized quote item from raw market data. ok is false when the
// feed produced nothing usable and the caller should try the search API.
func (a *RetrievalAdapter) fetchFromFeed(ctx context.Context, h models.Holding) ([]models.NewsCandidate, bool) {
	log := observability.WithTicker(h.Ticker)

	items, err := a.feed.GetCompanyNews(ctx, h.Ticker, h.Name)
	if err != nil {
		log.Warn("market feed news lookup failed", "error", err)
		return nil, false
	}

	if len(items) > 0 {
		candidates := make([]models.NewsCandidate, 0, len(items))
		for _, item := range items {
			if item.Source == "" {
				item.Source = models.SourceExternal
			}
			candidates = append(candidates, item)
		}
		return candidates, true
	}

	md, err := a.feed.GetMarketData(ctx, h.Ticker)
	if err != nil {
		log.Warn("market data lookup failed", "error", err)
		return nil, false
	}
	if !md.HasPrice() {
		return nil, false
	}

	item := models.NewsCandidate{
		Title: fmt.Sprintf("%s (%s) current price: %s", h.Name, h.Ticker, md.CurrentPrice.String()),
		Description: fmt.Sprintf("Open: %s | High: %s | Low: %s | Volume: %d",
			decimalOr(md.Open, "N/A"), decimalOr(md.High, "N/A"), decimalOr(md.Low, "N/A"), md.Volume),
		Source:      models.SourceMarketData,
		URL:         nil,
		PublishedAt: a.now().UTC().Format(time.RFC3339),
	}
	return []models.NewsCandidate{item}, true
}

func decimalOr(d *decimal.Decimal, fallback string) string {
	if d == nil {
		return fallback
	}
	return d.String()
}
