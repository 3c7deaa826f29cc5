package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"portfolio-pulse/models"
	"portfolio-pulse/observability"
)

var impactColors = map[models.Impact]drawing.Color{
	models.ImpactPositive: drawing.ColorFromHex("16a34a"), // green-600
	models.ImpactNegative: drawing.ColorFromHex("dc2626"), // red-600
	models.ImpactNeutral:  drawing.ColorFromHex("9ca3af"), // gray-400
}

// RenderImpactChart renders a PNG bar chart of holdings per impact label.
// Returns raw PNG bytes.
func RenderImpactChart(report *models.PortfolioReport) ([]byte, error) {
	if len(report.Stocks) == 0 {
		return nil, fmt.Errorf("cannot chart an empty report")
	}

	counts := report.ImpactCounts()
	bars := make([]chart.Value, 0, 3)
	for _, impact := range []models.Impact{models.ImpactPositive, models.ImpactNegative, models.ImpactNeutral} {
		bars = append(bars, chart.Value{
			Label: string(impact),
			Value: float64(counts[impact]),
			Style: chart.Style{
				FillColor:   impactColors[impact],
				StrokeColor: impactColors[impact],
			},
		})
	}

	graph := chart.BarChart{
		Title:  "News Impact Distribution",
		Width:  600,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		BarWidth: 80,
		Bars:     bars,
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderSectorChart renders a PNG donut chart of holdings per sector.
// Returns raw PNG bytes.
func RenderSectorChart(report *models.PortfolioReport) ([]byte, error) {
	if len(report.Stocks) == 0 {
		return nil, fmt.Errorf("cannot chart an empty report")
	}

	counts := report.SectorCounts()
	sectors := make([]string, 0, len(counts))
	for sector := range counts {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	values := make([]chart.Value, 0, len(sectors))
	for _, sector := range sectors {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", sector, counts[sector]),
			Value: float64(counts[sector]),
		})
	}

	graph := chart.DonutChart{
		Title:  "Sector Allocation",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// SaveCharts renders both charts into a directory, creating it if needed.
// Returns the written file paths.
func SaveCharts(dir string, report *models.PortfolioReport) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create charts dir: %w", err)
	}

	charts := []struct {
		name   string
		render func(*models.PortfolioReport) ([]byte, error)
	}{
		{"impact_distribution.png", RenderImpactChart},
		{"sector_allocation.png", RenderSectorChart},
	}

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		png, err := c.render(report)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, c.name)
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write chart: %w", err)
		}
		paths = append(paths, path)
	}

	observability.Info("charts saved", "dir", dir, "count", len(paths))
	return paths, nil
}
