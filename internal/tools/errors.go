package tools

import (
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanitrack/cleanlog-go/internal/export"
)

// ErrorResult creates a tool error result with optional recovery hint.
// If hint is non-empty, formats as "{msg}. {hint}".
func ErrorResult(msg, hint string) *mcp.CallToolResult {
	text := msg
	if hint != "" {
		text = msg + ". " + hint
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

// TextResult creates a success result with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// FormatResults joins items with newlines for list output.
func FormatResults(items []string) string {
	return strings.Join(items, "\n")
}

// pipelineError maps a pipeline failure to a caller-facing result.
// Validation and not-found failures are surfaced verbatim with the
// offending input echoed; storage failures become a generic message,
// the detail stays in the logs.
func pipelineError(err error) *mcp.CallToolResult {
	var ve *export.ValidationError
	if errors.As(err, &ve) {
		return ErrorResult(ve.Error(), "Check the date format (dd/mm/yyyy) and window span")
	}
	var nf *export.NotFoundError
	if errors.As(err, &nf) {
		return ErrorResult(nf.Error(), "Try a different facility name")
	}
	return ErrorResult("Export failed", "Storage may be unavailable, try again later")
}
