package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"portfolio-pulse/models"
	"portfolio-pulse/observability"
)

// WriteJSON writes the report as indented JSON
func WriteJSON(w io.Writer, report *models.PortfolioReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// SaveJSON writes the report as indented JSON to a file
func SaveJSON(path string, report *models.PortfolioReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, report); err != nil {
		return err
	}

	observability.Info("report saved", "format", "json", "path", path, "holdings", len(report.Stocks))
	return nil
}
