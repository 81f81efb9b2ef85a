package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListFacilitiesInput defines the input schema for the list_facilities
// tool. It takes no arguments.
type ListFacilitiesInput struct{}

type facilityInfo struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
	Area string `json:"area"`
}

// NewListFacilitiesHandler creates the list_facilities tool handler.
func NewListFacilitiesHandler(deps *Dependencies) mcp.ToolHandlerFor[ListFacilitiesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListFacilitiesInput) (
		*mcp.CallToolResult, any, error,
	) {
		facilities, err := deps.Store.ListFacilities(ctx)
		if err != nil {
			deps.Logger.Error("list facilities failed", "error", err)
			return ErrorResult("Failed to list facilities", "Database may be unavailable"), nil, nil
		}

		infos := make([]facilityInfo, 0, len(facilities))
		for _, f := range facilities {
			infos = append(infos, facilityInfo{
				Name: f.Name,
				Code: f.Code,
				Area: f.Area.Label(),
			})
		}

		jsonBytes, _ := json.MarshalIndent(map[string]any{
			"facilities": infos,
			"count":      len(infos),
		}, "", "  ")

		deps.Logger.Info("facilities listed", "count", len(infos))
		return TextResult(string(jsonBytes)), nil, nil
	}
}
