package services

import (
	"context"

	"portfolio-pulse/models"
)

// NewsSearchService defines the interface for the primary news search API
type NewsSearchService interface {
	GetNews(ctx context.Context, query string, limit int) ([]models.NewsCandidate, error)
	GetSectorNews(ctx context.Context, sector string, limit int) ([]models.NewsCandidate, error)
}

// MarketFeedService defines the interface for the richer multi-source
// news/market-data provider
type MarketFeedService interface {
	GetCompanyNews(ctx context.Context, ticker, name string) ([]models.NewsCandidate, error)
	GetMarketData(ctx context.Context, ticker string) (*models.MarketData, error)
}

// LLMService defines the interface for AI/LLM operations
type LLMService interface {
	InvokeWithPrompt(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	InvokeStructured(ctx context.Context, systemPrompt, userPrompt string, result interface{}) error
}

// Compile-time interface verification
var _ NewsSearchService = (*NewsAPIService)(nil)
var _ MarketFeedService = (*YahooFinanceService)(nil)
var _ LLMService = (*OpenAIService)(nil)
