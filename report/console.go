package report

import (
	"fmt"
	"io"

	"portfolio-pulse/models"
)

// WriteConsole writes a human-readable summary of the report
func WriteConsole(w io.Writer, report *models.PortfolioReport, commentary *models.Commentary) {
	counts := report.ImpactCounts()

	fmt.Fprintf(w, "Analyzed %d stocks:\n", len(report.Stocks))
	fmt.Fprintf(w, "  Positive: %d\n", counts[models.ImpactPositive])
	fmt.Fprintf(w, "  Negative: %d\n", counts[models.ImpactNegative])
	fmt.Fprintf(w, "  Neutral: %d\n", counts[models.ImpactNeutral])

	if len(report.Stocks) > 0 {
		fmt.Fprintln(w, "\nDetailed Analysis Results:")
		for _, stock := range report.Stocks {
			fmt.Fprintf(w, "\n%s (%s) - %s:\n", stock.Stock, stock.Ticker, stock.Impact)
			fmt.Fprintf(w, "  %s\n", stock.NewsSummary)

			if len(stock.AdditionalNews) > 0 {
				fmt.Fprintln(w, "  Additional news headlines:")
				for i, news := range stock.AdditionalNews {
					fmt.Fprintf(w, "  %d. %s\n", i+1, news.Title)
				}
			}
		}
	}

	if commentary != nil {
		fmt.Fprintln(w, "\nAI Commentary:")
		fmt.Fprintf(w, "  %s\n", commentary.Summary)
		writeConsoleList(w, "Recommendations", commentary.Recommendations)
		writeConsoleList(w, "Risks", commentary.Risks)
		writeConsoleList(w, "Opportunities", commentary.Opportunities)
	}
}

func writeConsoleList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", label)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
