package ingest

import (
	"strings"

	"github.com/shopspring/decimal"

	"portfolio-pulse/models"
)

// Canonical field names for holding spreadsheet columns.
const (
	fieldName         = "name"
	fieldTicker       = "ticker"
	fieldSector       = "sector"
	fieldQuantity     = "quantity"
	fieldAveragePrice = "average_price"
	fieldCurrentPrice = "current_price"
)

// columnVariations maps each canonical field to the header spellings seen in
// broker exports (Zerodha contract notes, registrar statements, hand-kept
// sheets). Matching is case-insensitive.
var columnVariations = map[string][]string{
	fieldName:         {"Company Name", "Name", "Stock", "Company", "Security Name", "Symbol Name", "Instrument"},
	fieldTicker:       {"Ticker", "Symbol", "Stock Symbol", "NSE Symbol", "BSE Symbol", "ISIN", "Security Code", "Tradingsymbol"},
	fieldSector:       {"Sector", "Industry", "Category", "Segment"},
	fieldQuantity:     {"Qty", "Quantity", "Shares", "Holding", "Units", "Volume", "Qty."},
	fieldAveragePrice: {"Avg. Cost", "Average Price", "Buy Price", "Cost Price", "Avg Cost", "Purchase Price", "Avg."},
	fieldCurrentPrice: {"LTP", "Last Price", "Current Price", "Market Price", "CMP", "Close Price"},
}

// MapHeaders resolves a raw header row to canonical field names. The result
// maps column index to canonical field; unrecognized columns are omitted.
// The first column matching a field wins.
func MapHeaders(headers []string) map[int]string {
	mapping := make(map[int]string)
	claimed := make(map[string]bool)

	for idx, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			continue
		}
		for field, variations := range columnVariations {
			if claimed[field] {
				continue
			}
			for _, v := range variations {
				if strings.EqualFold(header, v) {
					mapping[idx] = field
					claimed[field] = true
					break
				}
			}
		}
	}

	return mapping
}

// RowsToHoldings converts data rows to holdings using a header mapping.
// Rows missing both a name and a ticker are skipped; when only one of the
// two is present the other is inferred from it. Unparseable numeric cells
// leave the corresponding field unset rather than failing the row.
func RowsToHoldings(mapping map[int]string, rows [][]string) []models.Holding {
	holdings := make([]models.Holding, 0, len(rows))

	for _, row := range rows {
		fields := make(map[string]string)
		for idx, field := range mapping {
			if idx < len(row) {
				if value := strings.TrimSpace(row[idx]); value != "" {
					fields[field] = value
				}
			}
		}

		name := fields[fieldName]
		ticker := fields[fieldTicker]
		if name == "" && ticker == "" {
			continue
		}
		if name == "" {
			name = ticker
		}
		if ticker == "" {
			ticker = name
		}

		h := models.NewHolding(name, ticker)
		if sector, ok := fields[fieldSector]; ok {
			h.Sector = &sector
		}
		h.Quantity = parseDecimal(fields[fieldQuantity])
		h.AveragePrice = parseDecimal(fields[fieldAveragePrice])
		h.CurrentPrice = parseDecimal(fields[fieldCurrentPrice])

		holdings = append(holdings, h)
	}

	return holdings
}

// parseDecimal parses a numeric cell, tolerating thousands separators and
// currency prefixes. Returns nil when the cell is empty or not a number.
func parseDecimal(value string) *decimal.Decimal {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "₹")
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return nil
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil
	}
	return &d
}
