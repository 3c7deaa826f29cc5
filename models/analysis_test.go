package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestPortfolioReport_ImpactCounts(t *testing.T) {
	report := &PortfolioReport{
		ID: uuid.New(),
		Stocks: []HoldingAnalysis{
			{Stock: "A", Ticker: "A", Impact: ImpactPositive},
			{Stock: "B", Ticker: "B", Impact: ImpactPositive},
			{Stock: "C", Ticker: "C", Impact: ImpactNegative},
			{Stock: "D", Ticker: "D", Impact: ImpactNeutral},
		},
		Timestamp: time.Now(),
	}

	counts := report.ImpactCounts()
	if counts[ImpactPositive] != 2 {
		t.Errorf("positive count = %d, want 2", counts[ImpactPositive])
	}
	if counts[ImpactNegative] != 1 {
		t.Errorf("negative count = %d, want 1", counts[ImpactNegative])
	}
	if counts[ImpactNeutral] != 1 {
		t.Errorf("neutral count = %d, want 1", counts[ImpactNeutral])
	}
}

func TestPortfolioReport_SectorCounts(t *testing.T) {
	report := &PortfolioReport{
		Stocks: []HoldingAnalysis{
			{Stock: "A", Sector: strPtr("Technology")},
			{Stock: "B", Sector: strPtr("Technology")},
			{Stock: "C", Sector: strPtr("Banking")},
			{Stock: "D", Sector: nil},
		},
	}

	counts := report.SectorCounts()
	if counts["Technology"] != 2 {
		t.Errorf("Technology count = %d, want 2", counts["Technology"])
	}
	if counts["Banking"] != 1 {
		t.Errorf("Banking count = %d, want 1", counts["Banking"])
	}
	if counts["Unknown"] != 1 {
		t.Errorf("Unknown count = %d, want 1", counts["Unknown"])
	}
}

func TestHoldingAnalysis_JSONShape(t *testing.T) {
	analysis := HoldingAnalysis{
		Stock:       "Acme Corp",
		Ticker:      "ACME",
		Sector:      strPtr("Technology"),
		NewsSummary: "Acme Corp posts record profit",
		Impact:      ImpactPositive,
		AdditionalNews: []NewsCandidate{
			{Title: "Acme expands", Source: "Reuters"},
		},
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for _, key := range []string{"stock", "ticker", "sector", "news_summary", "impact", "additional_news"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("serialized analysis missing %q key", key)
		}
	}
	if decoded["impact"] != "Positive" {
		t.Errorf("impact = %v, want 'Positive'", decoded["impact"])
	}
}

func TestNewsCandidate_IsSynthetic(t *testing.T) {
	if (NewsCandidate{Source: "Reuters"}).IsSynthetic() {
		t.Error("real article reported as synthetic")
	}
	if !(NewsCandidate{Source: SourceSystemAnalysis}).IsSynthetic() {
		t.Error("fallback item not reported as synthetic")
	}
}
