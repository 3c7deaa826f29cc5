package analyzer

import (
	"portfolio-pulse/services"
)

// Type aliases for service interfaces - defined in services package
// These aliases allow the analyzer to reference interfaces without importing
// concrete implementations
type NewsSearchService = services.NewsSearchService
type MarketFeedService = services.MarketFeedService
type LLMService = services.LLMService
