//go:build integration

// Package tools_test exercises the MCP tool surface end to end over
// in-memory transports with a fake store.
package tools_test

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanitrack/cleanlog-go/internal/artifact"
	"github.com/sanitrack/cleanlog-go/internal/config"
	"github.com/sanitrack/cleanlog-go/internal/export"
	"github.com/sanitrack/cleanlog-go/internal/models"
	"github.com/sanitrack/cleanlog-go/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// fakeStore backs the tool surface without a database.
type fakeStore struct {
	facilities []models.Facility
	matches    []models.FacilityMatch
	history    map[string][]models.HistoryEntry
	counts     []models.FacilityCount
}

func (s *fakeStore) MatchFacilities(ctx context.Context, query string, limit int) ([]models.FacilityMatch, error) {
	if len(s.matches) > limit {
		return s.matches[:limit], nil
	}
	return s.matches, nil
}

func (s *fakeStore) HistoryPage(ctx context.Context, facility surrealmodels.RecordID, window export.Window, limit, offset int) ([]models.HistoryEntry, error) {
	var filtered []models.HistoryEntry
	for _, e := range s.history[models.RecordRef(facility)] {
		if window.Contains(e.At) {
			filtered = append(filtered, e)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].At.After(filtered[j].At) })
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (s *fakeStore) OperatorLabel(ctx context.Context, operator surrealmodels.RecordID) (string, error) {
	return "Ana Ribeiro", nil
}

func (s *fakeStore) ListFacilities(ctx context.Context) ([]models.Facility, error) {
	return s.facilities, nil
}

func (s *fakeStore) CountHistorySince(ctx context.Context, since time.Time) ([]models.FacilityCount, error) {
	return s.counts, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func roomFacility(id, name string) models.Facility {
	return models.Facility{
		ID:   surrealmodels.NewRecordID("facility", id),
		Name: name,
		Code: id,
		Area: models.AreaCritical,
	}
}

// startSession wires a server with the fake store and connects an
// in-memory client. The cleanup cancels the server run.
func startSession(t *testing.T, store *fakeStore) (*mcp.ClientSession, context.Context) {
	t.Helper()

	artifactDir := t.TempDir()
	artifacts, err := artifact.NewStore(artifactDir, time.Minute, artifact.LocatorFile, testLogger())
	require.NoError(t, err)
	t.Cleanup(artifacts.Close)

	impl := &mcp.Implementation{
		Name:    "test-cleanlog",
		Version: "0.0.1-test",
	}
	server := mcp.NewServer(impl, nil)

	deps := &tools.Dependencies{
		Store:     store,
		Artifacts: artifacts,
		Logger:    testLogger(),
	}
	cfg := config.Config{
		ArtifactDir: artifactDir,
		PageSize:    10,
		BatchSize:   10,
		RecordCap:   1000,
		ScoreCutoff: 0.7,
	}
	tools.RegisterAll(server, deps, cfg)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	go func() {
		_ = server.Run(ctx, serverTransport)
	}()
	time.Sleep(50 * time.Millisecond)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	t.Cleanup(func() { session.Close() })

	return session, ctx
}

func callText(t *testing.T, ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content should be TextContent")
	return text.Text, result.IsError
}

func TestToolRegistry(t *testing.T) {
	session, ctx := startSession(t, &fakeStore{})

	result, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 4)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	assert.Contains(t, names, "list_facilities")
	assert.Contains(t, names, "today_summary")
	assert.Contains(t, names, "export_history")
	assert.Contains(t, names, "inspect_facility")
}

func TestListFacilitiesTool(t *testing.T) {
	session, ctx := startSession(t, &fakeStore{facilities: []models.Facility{
		roomFacility("room_5a", "Room 5 (A)"),
		roomFacility("icu_1", "ICU Ward 1"),
	}})

	text, isErr := callText(t, ctx, session, "list_facilities", map[string]any{})
	assert.False(t, isErr)
	assert.Contains(t, text, "Room 5 (A)")
	assert.Contains(t, text, "ICU Ward 1")
	assert.Contains(t, text, `"count": 2`)
}

func TestTodaySummaryTool(t *testing.T) {
	session, ctx := startSession(t, &fakeStore{counts: []models.FacilityCount{
		{Name: "Room 5 (A)", Count: 3},
		{Name: "ICU Ward 1", Count: 1},
	}})

	text, isErr := callText(t, ctx, session, "today_summary", map[string]any{})
	assert.False(t, isErr)
	assert.Contains(t, text, `"total": 4`)
	assert.Contains(t, text, "Room 5 (A)")
}

func TestExportHistoryTool(t *testing.T) {
	now := time.Now()
	op := surrealmodels.NewRecordID("operator", "op_ana")
	store := &fakeStore{
		matches: []models.FacilityMatch{
			{Facility: roomFacility("room_5a", "Room 5 (A)"), Score: 0.9},
		},
		history: map[string][]models.HistoryEntry{
			"facility:room_5a": {
				{
					ID:       surrealmodels.NewRecordID("history", "h1"),
					Facility: surrealmodels.NewRecordID("facility", "room_5a"),
					At:       now.Add(-2 * time.Hour),
					Operator: &op,
				},
				{
					ID:       surrealmodels.NewRecordID("history", "h2"),
					Facility: surrealmodels.NewRecordID("facility", "room_5a"),
					At:       now.Add(-26 * time.Hour),
					Operator: &op,
				},
			},
		},
	}
	session, ctx := startSession(t, store)

	t.Run("export returns an artifact reference", func(t *testing.T) {
		text, isErr := callText(t, ctx, session, "export_history", map[string]any{"query": "Room 5"})
		assert.False(t, isErr)
		assert.Contains(t, text, `"rows": 2`)
		assert.Contains(t, text, "cleaning_history_")
		assert.Contains(t, text, "Room 5 (A)")
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		text, isErr := callText(t, ctx, session, "export_history", map[string]any{"query": ""})
		assert.True(t, isErr)
		assert.Contains(t, text, "Query cannot be empty")
	})

	t.Run("malformed date is surfaced verbatim", func(t *testing.T) {
		text, isErr := callText(t, ctx, session, "export_history",
			map[string]any{"query": "Room 5", "from_date": "2025-01-01"})
		assert.True(t, isErr)
		assert.Contains(t, text, "invalid from_date")
	})

	t.Run("unmatched query reports not found", func(t *testing.T) {
		empty, ctx2 := startSession(t, &fakeStore{})
		text, isErr := callText(t, ctx2, empty, "export_history", map[string]any{"query": "Atlantis"})
		assert.True(t, isErr)
		assert.Contains(t, text, `"Atlantis"`)
	})
}

func TestInspectFacilityTool(t *testing.T) {
	now := time.Now()
	store := &fakeStore{
		matches: []models.FacilityMatch{
			{Facility: roomFacility("room_5a", "Room 5 (A)"), Score: 0.9},
		},
		history: map[string][]models.HistoryEntry{
			"facility:room_5a": {
				{
					ID:       surrealmodels.NewRecordID("history", "h1"),
					Facility: surrealmodels.NewRecordID("facility", "room_5a"),
					At:       now.Add(-2 * time.Hour),
					Terminal: true,
				},
				{
					// Outside the trailing 12 hours.
					ID:       surrealmodels.NewRecordID("history", "h2"),
					Facility: surrealmodels.NewRecordID("facility", "room_5a"),
					At:       now.Add(-20 * time.Hour),
				},
			},
		},
	}
	session, ctx := startSession(t, store)

	text, isErr := callText(t, ctx, session, "inspect_facility", map[string]any{"query": "Room 5"})
	assert.False(t, isErr)
	assert.Contains(t, text, "1 cleaning(s) in the last 12 hours")
	assert.Contains(t, text, "terminal")
}
