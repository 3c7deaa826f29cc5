package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"portfolio-pulse/models"
	"portfolio-pulse/observability"
)

// SaveExcel writes the report as an Excel workbook with Summary, News Impact
// and Sector Allocation sheets. When commentary is non-nil an AI Analysis
// sheet is appended.
func SaveExcel(path string, report *models.PortfolioReport, commentary *models.Commentary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, report); err != nil {
		return err
	}
	if err := writeImpactSheet(f, report); err != nil {
		return err
	}
	if err := writeSectorSheet(f, report); err != nil {
		return err
	}
	if commentary != nil {
		if err := writeCommentarySheet(f, commentary); err != nil {
			return err
		}
	}

	// Drop excelize's default sheet so Summary opens first
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	observability.Info("report saved", "format", "xlsx", "path", path, "holdings", len(report.Stocks))
	return nil
}

func writeSummarySheet(f *excelize.File, report *models.PortfolioReport) error {
	counts := report.ImpactCounts()
	rows := [][]any{
		{"Report ID", report.ID.String()},
		{"Analysis Date", report.Timestamp.Format(time.RFC3339)},
		{"Stocks Count", len(report.Stocks)},
		{"Positive", counts[models.ImpactPositive]},
		{"Negative", counts[models.ImpactNegative]},
		{"Neutral", counts[models.ImpactNeutral]},
	}
	return writeSheet(f, "Summary", rows)
}

func writeImpactSheet(f *excelize.File, report *models.PortfolioReport) error {
	rows := [][]any{{"Company", "Ticker", "Sector", "Impact", "News Summary"}}
	for _, stock := range report.Stocks {
		sector := "N/A"
		if stock.Sector != nil && *stock.Sector != "" {
			sector = *stock.Sector
		}
		rows = append(rows, []any{stock.Stock, stock.Ticker, sector, string(stock.Impact), stock.NewsSummary})
	}
	return writeSheet(f, "News Impact", rows)
}

func writeSectorSheet(f *excelize.File, report *models.PortfolioReport) error {
	counts := report.SectorCounts()
	sectors := make([]string, 0, len(counts))
	for sector := range counts {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	rows := [][]any{{"Sector", "Holdings"}}
	for _, sector := range sectors {
		rows = append(rows, []any{sector, counts[sector]})
	}
	return writeSheet(f, "Sector Allocation", rows)
}

func writeCommentarySheet(f *excelize.File, commentary *models.Commentary) error {
	rows := [][]any{{"Summary", commentary.Summary}}
	for _, r := range commentary.Recommendations {
		rows = append(rows, []any{"Recommendation", r})
	}
	for _, r := range commentary.Risks {
		rows = append(rows, []any{"Risk", r})
	}
	for _, o := range commentary.Opportunities {
		rows = append(rows, []any{"Opportunity", o})
	}
	return writeSheet(f, "AI Analysis", rows)
}

func writeSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write sheet %q row %d: %w", name, i+1, err)
		}
	}
	return nil
}
