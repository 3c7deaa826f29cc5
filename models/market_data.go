package models

import (
	"github.com/shopspring/decimal"
)

// MarketData holds a current-day OHLCV snapshot for a ticker from the
// market feed provider.
type MarketData struct {
	Ticker        string           `json:"ticker"`
	CurrentPrice  *decimal.Decimal `json:"current_price"`
	PreviousClose *decimal.Decimal `json:"previous_close,omitempty"`
	Open          *decimal.Decimal `json:"open,omitempty"`
	High          *decimal.Decimal `json:"high,omitempty"`
	Low           *decimal.Decimal `json:"low,omitempty"`
	Volume        int64            `json:"volume,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	Exchange      string           `json:"exchange,omitempty"`
}

// HasPrice reports whether the snapshot carries a usable current price.
func (m *MarketData) HasPrice() bool {
	return m != nil && m.CurrentPrice != nil
}
