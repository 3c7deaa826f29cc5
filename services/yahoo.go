package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"portfolio-pulse/models"
	"portfolio-pulse/observability"
)

// YahooFinanceService is the richer multi-source provider: it serves both
// company news (search endpoint) and raw market data (chart endpoint)
// without requiring a credential.
type YahooFinanceService struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewYahooFinanceService creates a new YahooFinanceService instance
func NewYahooFinanceService() *YahooFinanceService {
	return &YahooFinanceService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://query1.finance.yahoo.com",
		userAgent:  "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	}
}

// searchResponse represents the Yahoo Finance search response
type searchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
		Type                string `json:"type"`
	} `json:"news"`
}

// GetCompanyNews returns recent news headlines for a ticker from the Yahoo
// Finance search endpoint. Descriptions are not available in list view.
func (s *YahooFinanceService) GetCompanyNews(ctx context.Context, ticker, name string) ([]models.NewsCandidate, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerMarketFeed, "search")
	timer := metrics.NewTimer()

	candidates, err := WithCircuitBreaker(ctx, BreakerMarketFeed, func() ([]models.NewsCandidate, error) {
		params := url.Values{}
		params.Set("q", ticker)
		params.Set("newsCount", "10")
		params.Set("quotesCount", "0")

		req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/v1/finance/search?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", s.userAgent)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch company news: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("Yahoo Finance search returned status %d", resp.StatusCode)
		}

		var searchResp searchResponse
		if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
			return nil, fmt.Errorf("failed to decode search response: %w", err)
		}

		items := make([]models.NewsCandidate, 0, len(searchResp.News))
		for _, n := range searchResp.News {
			if n.Title == "" {
				continue
			}
			publishedAt := ""
			if n.ProviderPublishTime > 0 {
				publishedAt = time.Unix(n.ProviderPublishTime, 0).UTC().Format(time.RFC3339)
			}
			items = append(items, models.NewsCandidate{
				Title:       n.Title,
				Source:      n.Publisher,
				URL:         urlPtr(n.Link),
				PublishedAt: publishedAt,
			})
		}

		return items, nil
	})

	metrics.RecordExternalAPIDuration(BreakerMarketFeed, "search", timer.Seconds())
	if err != nil {
		metrics.RecordExternalAPIError(BreakerMarketFeed, "search", "request_failed")
		return nil, err
	}

	return candidates, nil
}

// chartResponse represents the Yahoo Finance chart response
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetMarketData returns a current-day OHLCV snapshot for a ticker
func (s *YahooFinanceService) GetMarketData(ctx context.Context, ticker string) (*models.MarketData, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerMarketFeed, "chart")
	timer := metrics.NewTimer()

	data, err := WithCircuitBreaker(ctx, BreakerMarketFeed, func() (*models.MarketData, error) {
		endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", s.baseURL, url.PathEscape(ticker))

		req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", s.userAgent)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch market data: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("Yahoo Finance chart returned status %d", resp.StatusCode)
		}

		var chartResp chartResponse
		if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
			return nil, fmt.Errorf("failed to decode chart response: %w", err)
		}

		if chartResp.Chart.Error != nil {
			return nil, fmt.Errorf("Yahoo Finance chart error: %s", chartResp.Chart.Error.Description)
		}
		if len(chartResp.Chart.Result) == 0 {
			return nil, fmt.Errorf("no chart result for ticker %s", ticker)
		}

		result := chartResp.Chart.Result[0]
		md := &models.MarketData{
			Ticker:   ticker,
			Currency: result.Meta.Currency,
			Exchange: result.Meta.ExchangeName,
		}
		if result.Meta.RegularMarketPrice != 0 {
			price := decimal.NewFromFloat(result.Meta.RegularMarketPrice)
			md.CurrentPrice = &price
		}
		if result.Meta.PreviousClose != 0 {
			prev := decimal.NewFromFloat(result.Meta.PreviousClose)
			md.PreviousClose = &prev
		}

		if len(result.Indicators.Quote) > 0 {
			quote := result.Indicators.Quote[0]
			md.Open = lastDecimal(quote.Open)
			md.High = lastDecimal(quote.High)
			md.Low = lastDecimal(quote.Low)
			if v := lastInt64(quote.Volume); v != nil {
				md.Volume = *v
			}
		}

		return md, nil
	})

	metrics.RecordExternalAPIDuration(BreakerMarketFeed, "chart", timer.Seconds())
	if err != nil {
		metrics.RecordExternalAPIError(BreakerMarketFeed, "chart", "request_failed")
		return nil, err
	}

	return data, nil
}

// lastDecimal returns the last non-nil value of a sparse series as a decimal
func lastDecimal(series []*float64) *decimal.Decimal {
	for i := len(series) - 1; i >= 0; i-- {
		if series[i] != nil {
			d := decimal.NewFromFloat(*series[i])
			return &d
		}
	}
	return nil
}

// lastInt64 returns the last non-nil value of a sparse int series
func lastInt64(series []*int64) *int64 {
	for i := len(series) - 1; i >= 0; i-- {
		if series[i] != nil {
			return series[i]
		}
	}
	return nil
}
