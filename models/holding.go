package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Holding represents one portfolio line item extracted from a spreadsheet.
// The ticker is always stored upper-cased. Optional fields are nil when the
// source sheet did not provide them; downstream logic must branch on
// presence, not on zero values.
type Holding struct {
	Name         string           `json:"name"`
	Ticker       string           `json:"ticker"`
	Sector       *string          `json:"sector,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	AveragePrice *decimal.Decimal `json:"average_price,omitempty"`
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`
}

// NewHolding creates a Holding with the ticker normalized to upper case.
func NewHolding(name, ticker string) Holding {
	return Holding{
		Name:   name,
		Ticker: strings.ToUpper(ticker),
	}
}

// HasPrices reports whether both the current price and the cost basis are known.
func (h Holding) HasPrices() bool {
	return h.CurrentPrice != nil && h.AveragePrice != nil
}

// SectorOr returns the holding's sector, or fallback when it is unknown.
func (h Holding) SectorOr(fallback string) string {
	if h.Sector == nil || *h.Sector == "" {
		return fallback
	}
	return *h.Sector
}
