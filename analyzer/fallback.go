package analyzer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"portfolio-pulse/models"
	"portfolio-pulse/observability"
)

var oneHundred = decimal.NewFromInt(100)

// FallbackBuilder synthesizes a single "System Analysis" news item for a
// holding when no real news is available. It always succeeds.
type FallbackBuilder struct {
	hasAPIKey bool
	now       func() time.Time
}

// NewFallbackBuilder creates a FallbackBuilder. hasAPIKey selects between
// the no-credential wording and the price-comparison wording.
func NewFallbackBuilder(hasAPIKey bool) *FallbackBuilder {
	return &FallbackBuilder{
		hasAPIKey: hasAPIKey,
		now:       time.Now,
	}
}

// Build synthesizes the fallback item for a holding. errored indicates the
// news fetch itself failed rather than returning no relevant results.
func (b *FallbackBuilder) Build(h models.Holding, errored bool) models.NewsCandidate {
	metrics := observability.GetMetrics()

	var title, description, reason string

	switch {
	case errored:
		title = fmt.Sprintf("%s (%s)", h.Name, h.Ticker)
		description = "Please check your API key or network connection."
		reason = "fetch_error"

	case !b.hasAPIKey:
		title = fmt.Sprintf("Using basic market data for %s (%s)", h.Name, h.Ticker)
		description = "No NewsAPI key provided. Set NEWS_API_KEY to enable live news analysis."
		reason = "no_api_key"

	case h.HasPrices():
		current := *h.CurrentPrice
		average := *h.AveragePrice

		switch current.Cmp(average) {
		case 1:
			pct := current.Sub(average).Div(average).Mul(oneHundred)
			title = fmt.Sprintf("%s is trading %s%% above your average buy price", h.Name, pct.StringFixed(2))
		case -1:
			pct := average.Sub(current).Div(average).Mul(oneHundred)
			title = fmt.Sprintf("%s is trading %s%% below your average buy price", h.Name, pct.StringFixed(2))
		default:
			title = fmt.Sprintf("%s is trading at your average buy price", h.Name)
		}
		description = fmt.Sprintf("Current price: %s | Average buy price: %s", current.String(), average.String())
		reason = "price_comparison"

	case h.CurrentPrice != nil:
		title = fmt.Sprintf("Current price of %s: %s", h.Name, h.CurrentPrice.String())
		description = "No price change data available."
		reason = "price_only"

	default:
		title = fmt.Sprintf("Basic information for %s (%s)", h.Name, h.Ticker)
		description = fmt.Sprintf("Sector: %s", h.SectorOr("Unknown"))
		if h.Quantity != nil {
			description += fmt.Sprintf(" | Quantity held: %s", h.Quantity.String())
		}
		reason = "basic_info"
	}

	metrics.RecordFallbackItem(reason)

	return models.NewsCandidate{
		Title:       title,
		Description: description,
		Source:      models.SourceSystemAnalysis,
		URL:         nil,
		PublishedAt: b.now().UTC().Format(time.RFC3339),
	}
}
