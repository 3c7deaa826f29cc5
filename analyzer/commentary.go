package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"portfolio-pulse/models"
)

const commentarySystemPrompt = `You are a financial analyst reviewing a portfolio news analysis.
You will be given a list of holdings, each with a sentiment verdict (Positive/Negative/Neutral) and a news summary.

Provide your assessment in the following JSON format:
{
  "summary": "<2-3 sentence overall assessment of the portfolio's news picture>",
  "recommendations": ["<recommendation1>", "<recommendation2>"],
  "risks": ["<risk1>", "<risk2>"],
  "opportunities": ["<opportunity1>", "<opportunity2>"]
}

Be concise and objective. Do not invent news that is not in the input.`

// CommentaryGenerator produces an optional model-written narrative for a
// finished report. It is advisory only: impact labels are already final
// when it runs, and any failure leaves the report untouched.
type CommentaryGenerator struct {
	llm LLMService
}

// NewCommentaryGenerator creates a CommentaryGenerator
func NewCommentaryGenerator(llm LLMService) *CommentaryGenerator {
	return &CommentaryGenerator{llm: llm}
}

// Generate asks the model for a portfolio commentary
func (g *CommentaryGenerator) Generate(ctx context.Context, report *models.PortfolioReport) (*models.Commentary, error) {
	if len(report.Stocks) == 0 {
		return nil, fmt.Errorf("cannot generate commentary for an empty report")
	}

	var sb strings.Builder
	sb.WriteString("Review the following portfolio news analysis:\n\n")

	for i, stock := range report.Stocks {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)", i+1, stock.Stock, stock.Ticker))
		if stock.Sector != nil && *stock.Sector != "" {
			sb.WriteString(fmt.Sprintf(" [%s]", *stock.Sector))
		}
		sb.WriteString(fmt.Sprintf(" - %s\n", stock.Impact))
		sb.WriteString(fmt.Sprintf("   %s\n", stock.NewsSummary))
	}

	counts := report.ImpactCounts()
	sb.WriteString(fmt.Sprintf("\nVerdicts: %d positive, %d negative, %d neutral.\n",
		counts[models.ImpactPositive], counts[models.ImpactNegative], counts[models.ImpactNeutral]))
	sb.WriteString("Provide your assessment.")

	response, err := g.llm.InvokeWithPrompt(ctx, commentarySystemPrompt, sb.String())
	if err != nil {
		return nil, fmt.Errorf("commentary generation failed: %w", err)
	}

	var commentary models.Commentary
	if err := json.Unmarshal([]byte(response), &commentary); err != nil {
		// Model ignored the JSON contract; keep the raw text as summary
		return &models.Commentary{Summary: response}, nil
	}

	return &commentary, nil
}
