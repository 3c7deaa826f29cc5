package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"portfolio-pulse/analyzer"
	"portfolio-pulse/config"
	"portfolio-pulse/observability"
	"portfolio-pulse/services"
)

func main() {
	var (
		inputPath = flag.String("input", "", "portfolio spreadsheet to analyze (.xlsx or .csv)")
		serve     = flag.Bool("serve", false, "run as an HTTP API server instead of a one-shot analysis")
		verbose   = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using environment variables")
	}

	observability.InitLogger(!*verbose)
	observability.InitMetrics(prometheus.DefaultRegisterer)

	cfg, err := config.Load()
	if err != nil {
		observability.Fatal("invalid configuration", "error", err)
	}

	app := buildApp(cfg)

	if *serve {
		runServer(app, cfg)
		return
	}

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: portfolio-pulse -input portfolio.xlsx [-serve]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	observability.Info("analyzing portfolio", "file", *inputPath)
	result, err := app.AnalyzeFile(context.Background(), *inputPath)
	if err != nil {
		observability.Fatal("analysis failed", "error", err)
	}
	if err := app.WriteReports(result); err != nil {
		observability.Fatal("failed to write reports", "error", err)
	}
}

// buildApp wires services into the analysis pipeline. Missing credentials
// disable the corresponding provider with a warning instead of aborting.
func buildApp(cfg *config.Config) *App {
	var news analyzer.NewsSearchService
	if cfg.HasNewsAPI() {
		news = services.NewNewsAPIService(cfg.NewsAPI.APIKey, cfg.NewsAPI.RequestsPerDay)
	} else {
		observability.Warn("NEWS_API_KEY not set, news search disabled")
	}

	var feed analyzer.MarketFeedService
	if cfg.HasMarketFeed() {
		feed = services.NewYahooFinanceService()
	} else {
		observability.Warn("market feed disabled by configuration")
	}

	var commentary *analyzer.CommentaryGenerator
	if cfg.HasOpenAI() {
		llm, err := services.NewOpenAIService(cfg)
		if err != nil {
			observability.Warn("failed to initialize OpenAI service, commentary disabled", "error", err)
		} else {
			commentary = analyzer.NewCommentaryGenerator(llm)
		}
	} else {
		observability.Warn("OPENAI_API_KEY not set, report commentary disabled")
	}

	fallback := analyzer.NewFallbackBuilder(cfg.HasNewsAPI())
	retrieval := analyzer.NewRetrievalAdapter(news, feed, fallback, cfg.NewsAPI.PageSize)
	pa := analyzer.NewPortfolioAnalyzer(retrieval, news, cfg.Analyzer.MaxAdditionalNews, cfg.Analyzer.SectorPageSize)

	return NewApp(cfg, pa, commentary)
}

func runServer(app *App, cfg *config.Config) {
	handler := NewAPIHandler(app, cfg)
	router := NewRouter(handler, cfg)

	observability.Info("starting HTTP server", "addr", cfg.HTTP.Addr)
	if err := http.ListenAndServe(cfg.HTTP.Addr, router); err != nil {
		observability.Fatal("server stopped", "error", err)
	}
}
