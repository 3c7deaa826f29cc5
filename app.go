package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"portfolio-pulse/analyzer"
	"portfolio-pulse/config"
	"portfolio-pulse/ingest"
	"portfolio-pulse/models"
	"portfolio-pulse/observability"
	"portfolio-pulse/report"
)

// App wires ingestion, analysis and reporting together. Services that are
// not configured are nil; the pipeline degrades instead of failing.
type App struct {
	cfg        *config.Config
	analyzer   *analyzer.PortfolioAnalyzer
	commentary *analyzer.CommentaryGenerator
}

// NewApp creates a new App
func NewApp(cfg *config.Config, pa *analyzer.PortfolioAnalyzer, cg *analyzer.CommentaryGenerator) *App {
	return &App{
		cfg:        cfg,
		analyzer:   pa,
		commentary: cg,
	}
}

// AnalysisResult bundles a finished report with its optional commentary
type AnalysisResult struct {
	Report     *models.PortfolioReport `json:"report"`
	Commentary *models.Commentary      `json:"commentary,omitempty"`
}

// AnalyzeFile loads a portfolio spreadsheet and runs the full analysis
func (a *App) AnalyzeFile(ctx context.Context, path string) (*AnalysisResult, error) {
	holdings, err := ingest.ReadPortfolio(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	return a.AnalyzeHoldings(ctx, holdings)
}

// AnalyzeUpload runs the full analysis over uploaded spreadsheet content.
// filename selects the parser by extension.
func (a *App) AnalyzeUpload(ctx context.Context, filename string, r io.Reader) (*AnalysisResult, error) {
	var holdings []models.Holding
	var err error

	switch ext := filepath.Ext(filename); ext {
	case ".xlsx", ".xlsm":
		holdings, err = ingest.ReadExcelStream(r)
	case ".csv":
		holdings, err = ingest.ReadCSV(r)
	default:
		return nil, fmt.Errorf("unsupported portfolio file format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	return a.AnalyzeHoldings(ctx, holdings)
}

// AnalyzeHoldings analyzes a holding list and, when an OpenAI key is
// configured, attaches model commentary. Commentary failures are logged and
// leave the report untouched.
func (a *App) AnalyzeHoldings(ctx context.Context, holdings []models.Holding) (*AnalysisResult, error) {
	if len(holdings) == 0 {
		return nil, fmt.Errorf("no holdings found in portfolio")
	}

	observability.Info("starting portfolio analysis", "holdings", len(holdings))
	rpt := a.analyzer.Analyze(ctx, holdings)

	result := &AnalysisResult{Report: rpt}
	if a.commentary != nil {
		commentary, err := a.commentary.Generate(ctx, rpt)
		if err != nil {
			observability.Warn("commentary generation failed, continuing without it", "error", err)
		} else {
			result.Commentary = commentary
		}
	}

	return result, nil
}

// WriteReports writes the JSON report, the Excel report and the charts to
// the configured output locations, then prints the console summary.
func (a *App) WriteReports(result *AnalysisResult) error {
	if err := os.MkdirAll(a.cfg.Report.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	jsonPath := filepath.Join(a.cfg.Report.OutputDir, "portfolio_analysis.json")
	if err := report.SaveJSON(jsonPath, result.Report); err != nil {
		return err
	}

	excelPath := filepath.Join(a.cfg.Report.OutputDir, "portfolio_analysis.xlsx")
	if err := report.SaveExcel(excelPath, result.Report, result.Commentary); err != nil {
		return err
	}

	chartsDir := filepath.Join(a.cfg.Report.OutputDir, a.cfg.Report.ChartsDir)
	if _, err := report.SaveCharts(chartsDir, result.Report); err != nil {
		observability.Warn("chart rendering failed, continuing without charts", "error", err)
	}

	report.WriteConsole(os.Stdout, result.Report, result.Commentary)
	fmt.Printf("\nResults saved to %s and %s\n", jsonPath, excelPath)

	return nil
}
