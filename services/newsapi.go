package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"portfolio-pulse/models"
	"portfolio-pulse/observability"
)

// NewsAPIService handles communication with NewsAPI.org
type NewsAPIService struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewNewsAPIService creates a new NewsAPIService instance. requestsPerDay is
// the provider's daily quota, enforced client side so an exhausted budget
// surfaces as a fetch failure instead of a string of 429 responses.
func NewNewsAPIService(apiKey string, requestsPerDay int) *NewsAPIService {
	if requestsPerDay <= 0 {
		requestsPerDay = 100
	}
	return &NewsAPIService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://newsapi.org/v2",
		limiter:    rate.NewLimiter(rate.Every(24*time.Hour/time.Duration(requestsPerDay)), requestsPerDay),
	}
}

// NewsAPIResponse represents the response from NewsAPI
type NewsAPIResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

// GetNews returns the most recent English articles matching a query, in the
// provider's return order.
func (s *NewsAPIService) GetNews(ctx context.Context, query string, limit int) ([]models.NewsCandidate, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	if !s.limiter.Allow() {
		return nil, fmt.Errorf("NewsAPI daily request quota exhausted")
	}

	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerNewsAPI, "everything")
	timer := metrics.NewTimer()

	var candidates []models.NewsCandidate
	err := WithRetry(ctx, DefaultRetryConfig, func() error {
		params := url.Values{}
		params.Set("q", query)
		params.Set("apiKey", s.apiKey)
		params.Set("language", "en")
		params.Set("sortBy", "publishedAt")
		params.Set("pageSize", fmt.Sprintf("%d", limit))

		req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/everything?"+params.Encode(), nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch news: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("NewsAPI returned status %d", resp.StatusCode)
		}

		var newsResp NewsAPIResponse
		if err := json.NewDecoder(resp.Body).Decode(&newsResp); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}

		candidates = make([]models.NewsCandidate, 0, len(newsResp.Articles))
		for _, item := range newsResp.Articles {
			candidates = append(candidates, models.NewsCandidate{
				Title:       item.Title,
				Description: item.Description,
				Source:      item.Source.Name,
				URL:         urlPtr(item.URL),
				PublishedAt: item.PublishedAt,
			})
		}

		return nil
	})

	metrics.RecordExternalAPIDuration(BreakerNewsAPI, "everything", timer.Seconds())
	if err != nil {
		metrics.RecordExternalAPIError(BreakerNewsAPI, "everything", "request_failed")
		return nil, err
	}

	return candidates, nil
}

// GetSectorNews returns recent articles about a sector at large, each titled
// with a "Sector news: " prefix so they read as lower-priority context.
func (s *NewsAPIService) GetSectorNews(ctx context.Context, sector string, limit int) ([]models.NewsCandidate, error) {
	query := fmt.Sprintf("%s sector industry market", sector)

	candidates, err := s.GetNews(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		candidates[i].Title = "Sector news: " + candidates[i].Title
	}

	return candidates, nil
}

func urlPtr(u string) *string {
	if u == "" {
		return nil
	}
	return &u
}
