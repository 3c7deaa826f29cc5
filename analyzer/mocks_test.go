package analyzer

import (
	"context"
	"fmt"

	"portfolio-pulse/models"
)

// stubNewsSearch is a deterministic NewsSearchService for tests
type stubNewsSearch struct {
	newsByQuery   map[string][]models.NewsCandidate
	sectorNews    []models.NewsCandidate
	newsErr       error
	sectorErr     error
	newsCalls     int
	sectorCalls   int
	lastQuery     string
	lastSector    string
	lastNewsLimit int
}

func (s *stubNewsSearch) GetNews(ctx context.Context, query string, limit int) ([]models.NewsCandidate, error) {
	s.newsCalls++
	s.lastQuery = query
	s.lastNewsLimit = limit
	if s.newsErr != nil {
		return nil, s.newsErr
	}
	return s.newsByQuery[query], nil
}

func (s *stubNewsSearch) GetSectorNews(ctx context.Context, sector string, limit int) ([]models.NewsCandidate, error) {
	s.sectorCalls++
	s.lastSector = sector
	if s.sectorErr != nil {
		return nil, s.sectorErr
	}
	items := make([]models.NewsCandidate, len(s.sectorNews))
	copy(items, s.sectorNews)
	for i := range items {
		items[i].Title = "Sector news: " + items[i].Title
	}
	return items, nil
}

// stubMarketFeed is a deterministic MarketFeedService for tests
type stubMarketFeed struct {
	news       []models.NewsCandidate
	marketData *models.MarketData
	newsErr    error
	dataErr    error
}

func (s *stubMarketFeed) GetCompanyNews(ctx context.Context, ticker, name string) ([]models.NewsCandidate, error) {
	if s.newsErr != nil {
		return nil, s.newsErr
	}
	return s.news, nil
}

func (s *stubMarketFeed) GetMarketData(ctx context.Context, ticker string) (*models.MarketData, error) {
	if s.dataErr != nil {
		return nil, s.dataErr
	}
	if s.marketData == nil {
		return nil, fmt.Errorf("no market data for %s", ticker)
	}
	return s.marketData, nil
}

// stubRetrieval is a canned RetrievalSource for aggregator tests
type stubRetrieval struct {
	byTicker map[string][]models.NewsCandidate
	panicOn  string
}

func (s *stubRetrieval) Fetch(ctx context.Context, h models.Holding) []models.NewsCandidate {
	if s.panicOn != "" && h.Ticker == s.panicOn {
		panic("retrieval blew up for " + h.Ticker)
	}
	return s.byTicker[h.Ticker]
}

// stubLLM is a canned LLMService for commentary tests
type stubLLM struct {
	response string
	err      error
	prompts  []string
}

func (s *stubLLM) InvokeWithPrompt(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.prompts = append(s.prompts, userPrompt)
	return s.response, s.err
}

func (s *stubLLM) InvokeStructured(ctx context.Context, systemPrompt, userPrompt string, result interface{}) error {
	return fmt.Errorf("not implemented")
}

func strPtr(s string) *string { return &s }
