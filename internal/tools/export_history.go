package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanitrack/cleanlog-go/internal/export"
)

// ExportHistoryInput defines the input schema for the export_history
// tool. Window precedence: days > from_date > the last-7-days default.
type ExportHistoryInput struct {
	Query    string `json:"query" jsonschema:"required,Free-text facility name to match"`
	FromDate string `json:"from_date,omitempty" jsonschema:"Window start as dd/mm/yyyy"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"Window end as dd/mm/yyyy (defaults to today)"`
	Days     int    `json:"days,omitempty" jsonschema:"Trailing day count, overrides explicit dates"`
}

// exportPayload is the JSON body returned on success.
type exportPayload struct {
	Artifact   any      `json:"artifact"`
	ExpiresAt  string   `json:"expires_at"`
	Window     string   `json:"window"`
	Facilities []string `json:"facilities"`
	Rows       int      `json:"rows"`
	Batches    int      `json:"batches"`
	Skipped    int      `json:"skipped,omitempty"`
	Notice     string   `json:"notice,omitempty"`
}

// NewExportHistoryHandler creates the export_history tool handler. It
// runs the full pipeline and registers the finished workbook with the
// artifact store, which deletes it after its TTL.
func NewExportHistoryHandler(deps *Dependencies, pipeline *export.Pipeline) mcp.ToolHandlerFor[ExportHistoryInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ExportHistoryInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Provide a facility name to match"), nil, nil
		}

		res, err := pipeline.Run(ctx, export.Request{
			Query:    input.Query,
			FromDate: input.FromDate,
			ToDate:   input.ToDate,
			Days:     input.Days,
		}, export.DefaultLastSevenDays)
		if err != nil {
			deps.Logger.Error("export failed", "query", input.Query, "error", err)
			return pipelineError(err), nil, nil
		}

		art, err := deps.Artifacts.Track(res.Path)
		if err != nil {
			deps.Logger.Error("artifact registration failed", "path", res.Path, "error", err)
			return ErrorResult("Export failed", "Could not register the generated file"), nil, nil
		}

		names := make([]string, 0, len(res.Facilities))
		for _, f := range res.Facilities {
			names = append(names, f.Name)
		}

		payload := exportPayload{
			Artifact:   art,
			ExpiresAt:  art.ExpiresAt.Format("15:04:05"),
			Window:     res.Window.String(),
			Facilities: names,
			Rows:       res.Rows,
			Batches:    res.Batches,
			Skipped:    res.Skipped,
		}
		if res.Capped {
			cap := export.RecordCap
			var capErr *export.CapExceededError
			if errors.As(res.Job.Err, &capErr) {
				cap = capErr.Cap
			}
			payload.Notice = fmt.Sprintf(
				"Record cap of %d reached; the file contains the first %d matching records. Narrow the window to export the rest.",
				cap, res.Rows)
		}

		jsonBytes, _ := json.MarshalIndent(payload, "", "  ")
		deps.Logger.Info("export completed",
			"query", input.Query, "rows", res.Rows, "capped", res.Capped, "artifact", art.ID)
		return TextResult(string(jsonBytes)), nil, nil
	}
}
