package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"portfolio-pulse/models"
	"portfolio-pulse/observability"
)

// ReadCSVFile loads holdings from a CSV file
func ReadCSVFile(path string) ([]models.Holding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV loads holdings from CSV data. The first record is the header row.
func ReadCSV(r io.Reader) ([]models.Holding, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv has no data rows")
	}

	mapping := MapHeaders(records[0])
	if !hasIdentityColumn(mapping) {
		return nil, fmt.Errorf("csv has no recognizable name or ticker column")
	}

	holdings := RowsToHoldings(mapping, records[1:])
	observability.Info("portfolio loaded from csv",
		"rows", len(records)-1,
		"holdings", len(holdings))

	return holdings, nil
}
