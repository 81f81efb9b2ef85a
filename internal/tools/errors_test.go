package tools

import (
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanitrack/cleanlog-go/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, r.Content, 1)
	text, ok := r.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestErrorResult(t *testing.T) {
	r := ErrorResult("Query cannot be empty", "Provide a facility name")
	assert.True(t, r.IsError)
	assert.Equal(t, "Query cannot be empty. Provide a facility name", resultText(t, r))

	r = ErrorResult("Export failed", "")
	assert.Equal(t, "Export failed", resultText(t, r))
}

func TestPipelineErrorMapping(t *testing.T) {
	t.Run("validation surfaced verbatim", func(t *testing.T) {
		r := pipelineError(&export.ValidationError{Field: "from_date", Reason: `expected 02/01/2006, got "bogus"`})
		assert.True(t, r.IsError)
		assert.Contains(t, resultText(t, r), "invalid from_date")
		assert.Contains(t, resultText(t, r), "bogus")
	})

	t.Run("not found echoes the query", func(t *testing.T) {
		r := pipelineError(&export.NotFoundError{Query: "Atlantis"})
		assert.Contains(t, resultText(t, r), `"Atlantis"`)
	})

	t.Run("storage failures stay generic", func(t *testing.T) {
		r := pipelineError(&export.StorageError{Op: "history retrieval", Err: errors.New("conn refused at 10.0.0.3")})
		text := resultText(t, r)
		assert.NotContains(t, text, "10.0.0.3", "internal detail must not cross the boundary")
		assert.Contains(t, text, "Export failed")
	})
}
