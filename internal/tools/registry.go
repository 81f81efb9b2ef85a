package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanitrack/cleanlog-go/internal/config"
	"github.com/sanitrack/cleanlog-go/internal/export"
)

// RegisterAll registers all tools with the MCP server.
// Called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies, cfg config.Config) {
	pipeline := export.NewPipeline(deps.Store, deps.Store, deps.Store, export.Options{
		ArtifactDir: cfg.ArtifactDir,
		PageSize:    cfg.PageSize,
		BatchSize:   cfg.BatchSize,
		RecordCap:   cfg.RecordCap,
		ScoreCutoff: cfg.ScoreCutoff,
	}, deps.Logger)
	resolver := export.NewResolver(deps.Store, cfg.ScoreCutoff, deps.Logger)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_facilities",
		Description: "List all known facilities with their code and area classification",
	}, NewListFacilitiesHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "today_summary",
		Description: "Per-facility cleaning counts since the start of today",
	}, NewTodaySummaryHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_history",
		Description: "Export cleaning history for a facility-name pattern over a date window or trailing day count as a spreadsheet",
	}, NewExportHistoryHandler(deps, pipeline))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect_facility",
		Description: "Show a facility's cleanings over the trailing twelve hours",
	}, NewInspectFacilityHandler(deps, resolver))
}
