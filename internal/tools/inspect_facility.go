package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanitrack/cleanlog-go/internal/export"
)

// inspectLimit bounds how many recent entries the inspection shows.
const inspectLimit = 50

// InspectFacilityInput defines the input schema for the
// inspect_facility tool.
type InspectFacilityInput struct {
	Query string `json:"query" jsonschema:"required,Free-text facility name to match"`
}

// NewInspectFacilityHandler creates the inspect_facility tool handler.
// It reports a facility's cleanings over the trailing twelve hours as
// text, newest first. This default differs deliberately from the
// bulk-export one.
func NewInspectFacilityHandler(deps *Dependencies, resolver *export.Resolver) mcp.ToolHandlerFor[InspectFacilityInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input InspectFacilityInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Provide a facility name to match"), nil, nil
		}

		window, err := export.PlanWindow(export.Request{Query: input.Query}, export.DefaultTrailingTwelveHours)
		if err != nil {
			return pipelineError(err), nil, nil
		}

		facilities, err := resolver.Resolve(ctx, input.Query)
		if err != nil {
			deps.Logger.Error("inspection resolve failed", "query", input.Query, "error", err)
			return pipelineError(err), nil, nil
		}

		var lines []string
		for _, f := range facilities {
			entries, err := deps.Store.HistoryPage(ctx, f.ID, window, inspectLimit, 0)
			if err != nil {
				deps.Logger.Error("inspection retrieval failed", "facility", f.Name, "error", err)
				return ErrorResult("Inspection failed", "Database may be unavailable"), nil, nil
			}
			if len(entries) == 0 {
				lines = append(lines, fmt.Sprintf("%s: no cleanings in the last 12 hours", f.Name))
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: %d cleaning(s) in the last 12 hours", f.Name, len(entries)))
			for _, e := range entries {
				kind := "routine"
				if e.Terminal {
					kind = "terminal"
				} else if e.Concurrent {
					kind = "concurrent"
				}
				lines = append(lines, fmt.Sprintf("  %s  %s", e.At.Format(export.TimestampLayout), kind))
			}
		}

		deps.Logger.Info("inspection completed", "query", input.Query, "facilities", len(facilities))
		return TextResult(FormatResults(lines)), nil, nil
	}
}
