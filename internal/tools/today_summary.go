package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TodaySummaryInput defines the input schema for the today_summary
// tool. It takes no arguments.
type TodaySummaryInput struct{}

// NewTodaySummaryHandler creates the today_summary tool handler,
// reporting per-facility cleaning counts since the start of today.
func NewTodaySummaryHandler(deps *Dependencies) mcp.ToolHandlerFor[TodaySummaryInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input TodaySummaryInput) (
		*mcp.CallToolResult, any, error,
	) {
		now := time.Now()
		since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		counts, err := deps.Store.CountHistorySince(ctx, since)
		if err != nil {
			deps.Logger.Error("today summary failed", "error", err)
			return ErrorResult("Failed to summarize today's cleanings", "Database may be unavailable"), nil, nil
		}

		total := 0
		for _, c := range counts {
			total += c.Count
		}

		jsonBytes, _ := json.MarshalIndent(map[string]any{
			"date":       now.Format("02/01/2006"),
			"total":      total,
			"facilities": counts,
		}, "", "  ")

		deps.Logger.Info("today summary computed", "facilities", len(counts), "total", total)
		return TextResult(string(jsonBytes)), nil, nil
	}
}
