package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// External service configurations
	NewsAPI    NewsAPIConfig
	MarketFeed MarketFeedConfig
	OpenAI     OpenAIConfig

	// Analyzer configuration
	Analyzer AnalyzerConfig

	// Report output configuration
	Report ReportConfig

	// HTTP configuration
	HTTP HTTPConfig
}

// NewsAPIConfig holds NewsAPI.org configuration
type NewsAPIConfig struct {
	APIKey         string
	PageSize       int // articles requested per query, capped at 100 by the provider
	RequestsPerDay int // free-tier daily quota, enforced client side
}

// MarketFeedConfig holds configuration for the secondary multi-source
// news/market-data provider
type MarketFeedConfig struct {
	Enabled bool
}

// OpenAIConfig holds OpenAI API configuration for the optional report commentary
type OpenAIConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// AnalyzerConfig holds analysis pipeline configuration
type AnalyzerConfig struct {
	MaxAdditionalNews int // extra headlines kept per holding after the summary
	SectorPageSize    int // sector fallback result cap
	TimeoutSeconds    int // per network call
}

// ReportConfig holds report output configuration
type ReportConfig struct {
	OutputDir string
	ChartsDir string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Addr               string
	CORSAllowedOrigins string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		NewsAPI: NewsAPIConfig{
			APIKey:         os.Getenv("NEWS_API_KEY"),
			PageSize:       getEnvInt("NEWS_API_PAGE_SIZE", 10),
			RequestsPerDay: getEnvInt("NEWS_API_REQUESTS_PER_DAY", 100),
		},
		MarketFeed: MarketFeedConfig{
			Enabled: getEnvBool("MARKET_FEED_ENABLED", true),
		},
		OpenAI: OpenAIConfig{
			APIKey:    os.Getenv("OPENAI_API_KEY"),
			Model:     getEnvString("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens: getEnvInt("OPENAI_MAX_TOKENS", 1024),
		},
		Analyzer: AnalyzerConfig{
			MaxAdditionalNews: getEnvInt("ANALYZER_MAX_ADDITIONAL_NEWS", 4),
			SectorPageSize:    getEnvInt("ANALYZER_SECTOR_PAGE_SIZE", 10),
			TimeoutSeconds:    getEnvInt("ANALYZER_TIMEOUT_SECONDS", 30),
		},
		Report: ReportConfig{
			OutputDir: getEnvString("REPORT_OUTPUT_DIR", "."),
			ChartsDir: getEnvString("REPORT_CHARTS_DIR", "visualizations"),
		},
		HTTP: HTTPConfig{
			Addr:               getEnvString("HTTP_ADDR", ":8080"),
			CORSAllowedOrigins: getEnvString("CORS_ALLOWED_ORIGINS", "*"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.NewsAPI.PageSize <= 0 || c.NewsAPI.PageSize > 100 {
		return fmt.Errorf("NEWS_API_PAGE_SIZE must be between 1 and 100, got %d", c.NewsAPI.PageSize)
	}
	if c.NewsAPI.RequestsPerDay <= 0 {
		return fmt.Errorf("NEWS_API_REQUESTS_PER_DAY must be positive, got %d", c.NewsAPI.RequestsPerDay)
	}
	if c.Analyzer.MaxAdditionalNews < 0 {
		return fmt.Errorf("ANALYZER_MAX_ADDITIONAL_NEWS must not be negative, got %d", c.Analyzer.MaxAdditionalNews)
	}
	if c.Analyzer.TimeoutSeconds <= 0 {
		return fmt.Errorf("ANALYZER_TIMEOUT_SECONDS must be positive, got %d", c.Analyzer.TimeoutSeconds)
	}
	return nil
}

// HasNewsAPI returns true if a NewsAPI credential is configured.
// Its absence is a recognized degraded mode, not an error.
func (c *Config) HasNewsAPI() bool {
	return c.NewsAPI.APIKey != ""
}

// HasMarketFeed returns true if the multi-source market feed is enabled
func (c *Config) HasMarketFeed() bool {
	return c.MarketFeed.Enabled
}

// HasOpenAI returns true if OpenAI configuration is available
func (c *Config) HasOpenAI() bool {
	return c.OpenAI.APIKey != ""
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		NewsAPI: NewsAPIConfig{
			APIKey:         "",
			PageSize:       10,
			RequestsPerDay: 100,
		},
		MarketFeed: MarketFeedConfig{
			Enabled: false,
		},
		OpenAI: OpenAIConfig{
			APIKey:    "",
			Model:     "gpt-4o-mini",
			MaxTokens: 1024,
		},
		Analyzer: AnalyzerConfig{
			MaxAdditionalNews: 4,
			SectorPageSize:    10,
			TimeoutSeconds:    30,
		},
		Report: ReportConfig{
			OutputDir: ".",
			ChartsDir: "visualizations",
		},
		HTTP: HTTPConfig{
			Addr:               ":8080",
			CORSAllowedOrigins: "*",
		},
	}
}
