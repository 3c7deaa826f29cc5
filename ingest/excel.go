package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"portfolio-pulse/models"
	"portfolio-pulse/observability"
)

// ReadPortfolio loads holdings from a spreadsheet file, dispatching on the
// file extension. Supported formats are .xlsx and .csv.
func ReadPortfolio(path string) ([]models.Holding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadExcel(path)
	case ".csv":
		return ReadCSVFile(path)
	default:
		return nil, fmt.Errorf("unsupported portfolio file format: %s", filepath.Ext(path))
	}
}

// ReadExcel loads holdings from the first sheet of an Excel workbook
func ReadExcel(path string) ([]models.Holding, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return holdingsFromWorkbook(f)
}

// ReadExcelStream loads holdings from Excel workbook bytes, as received in
// an upload
func ReadExcelStream(r io.Reader) ([]models.Holding, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return holdingsFromWorkbook(f)
}

func holdingsFromWorkbook(f *excelize.File) ([]models.Holding, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	mapping := MapHeaders(rows[0])
	if !hasIdentityColumn(mapping) {
		return nil, fmt.Errorf("sheet %q has no recognizable name or ticker column", sheets[0])
	}

	holdings := RowsToHoldings(mapping, rows[1:])
	observability.Info("portfolio loaded from workbook",
		"sheet", sheets[0],
		"rows", len(rows)-1,
		"holdings", len(holdings))

	return holdings, nil
}

func hasIdentityColumn(mapping map[int]string) bool {
	for _, field := range mapping {
		if field == fieldName || field == fieldTicker {
			return true
		}
	}
	return false
}
