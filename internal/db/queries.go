package db

import (
	"context"
	"fmt"
	"time"

	"github.com/sanitrack/cleanlog-go/internal/export"
	"github.com/sanitrack/cleanlog-go/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// MatchFacilities runs the ranked full-text match over facility names.
// Scores come from the BM25 index; candidates are returned best-first.
func (c *Client) MatchFacilities(ctx context.Context, query string, limit int) ([]models.FacilityMatch, error) {
	results, err := surrealdb.Query[[]models.FacilityMatch](ctx, c.db, `
		SELECT id, name, code, area, search::score(0) AS score
		FROM facility
		WHERE name @0@ $q
		ORDER BY score DESC
		LIMIT $limit
	`, map[string]any{"q": query, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("match facilities: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 {
		return []models.FacilityMatch{}, nil
	}
	return (*results)[0].Result, nil
}

// HistoryPage retrieves one page of a facility's history, newest first,
// with the date filter pushed into the query. Documents are validated
// into typed entries at this boundary; a malformed document is logged
// and dropped rather than trusted as-is.
func (c *Client) HistoryPage(ctx context.Context, facility surrealmodels.RecordID, window export.Window, limit, offset int) ([]models.HistoryEntry, error) {
	results, err := surrealdb.Query[[]models.RawHistory](ctx, c.db, `
		SELECT * FROM history
		WHERE facility = $facility AND at >= $from AND at <= $to
		ORDER BY at DESC
		LIMIT $limit
		START $offset
	`, map[string]any{
		"facility": facility,
		"from":     window.From,
		"to":       window.To,
		"limit":    limit,
		"offset":   offset,
	})
	if err != nil {
		return nil, fmt.Errorf("history page: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}

	raw := (*results)[0].Result
	entries := make([]models.HistoryEntry, 0, len(raw))
	for _, r := range raw {
		entry, err := r.Entry()
		if err != nil {
			c.logger.Warn("malformed history document dropped", "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// OperatorLabel resolves an operator reference to its display name.
// An unknown reference yields an empty label and no error.
func (c *Client) OperatorLabel(ctx context.Context, operator surrealmodels.RecordID) (string, error) {
	results, err := surrealdb.Query[[]models.Operator](ctx, c.db, `
		SELECT id, name FROM $operator
	`, map[string]any{"operator": operator})
	if err != nil {
		return "", fmt.Errorf("operator label: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return "", nil
	}
	return (*results)[0].Result[0].Name, nil
}

// ListFacilities returns every known facility ordered by name.
func (c *Client) ListFacilities(ctx context.Context) ([]models.Facility, error) {
	results, err := surrealdb.Query[[]models.Facility](ctx, c.db, `
		SELECT id, name, code, area FROM facility ORDER BY name
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 {
		return []models.Facility{}, nil
	}
	return (*results)[0].Result, nil
}

// CountHistorySince returns per-facility cleaning counts for entries at
// or after the given instant, busiest first.
func (c *Client) CountHistorySince(ctx context.Context, since time.Time) ([]models.FacilityCount, error) {
	results, err := surrealdb.Query[[]models.FacilityCount](ctx, c.db, `
		SELECT facility.name AS name, count() AS count
		FROM history
		WHERE at >= $since
		GROUP BY name
		ORDER BY count DESC
	`, map[string]any{"since": since})
	if err != nil {
		return nil, fmt.Errorf("count history: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 {
		return []models.FacilityCount{}, nil
	}
	return (*results)[0].Result, nil
}

// CreateFacility inserts a facility. Used by seeding and tests.
func (c *Client) CreateFacility(ctx context.Context, id, name, code string, area models.AreaClass) (*models.Facility, error) {
	results, err := surrealdb.Query[[]models.Facility](ctx, c.db, `
		CREATE type::record("facility", $id) SET name = $name, code = $code, area = $area
	`, map[string]any{"id": id, "name": name, "code": code, "area": string(area)})
	if err != nil {
		return nil, fmt.Errorf("create facility: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("create facility: empty result")
	}
	return &(*results)[0].Result[0], nil
}

// CreateOperator inserts an operator. Used by seeding and tests.
func (c *Client) CreateOperator(ctx context.Context, id, name string) (*models.Operator, error) {
	results, err := surrealdb.Query[[]models.Operator](ctx, c.db, `
		CREATE type::record("operator", $id) SET name = $name
	`, map[string]any{"id": id, "name": name})
	if err != nil {
		return nil, fmt.Errorf("create operator: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("create operator: empty result")
	}
	return &(*results)[0].Result[0], nil
}

// CreateHistory inserts a cleaning event. Used by seeding and tests.
func (c *Client) CreateHistory(ctx context.Context, entry models.HistoryEntry) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE history SET
			facility = $facility,
			at = $at,
			start_time = $start,
			end_time = $end,
			detergent = $detergent,
			disinfectant = $disinfectant,
			wiper = $wiper,
			mop = $mop,
			concurrent = $concurrent,
			terminal = $terminal,
			observation = $observation,
			operator = $operator
	`, map[string]any{
		"facility":     entry.Facility,
		"at":           entry.At,
		"start":        entry.Start,
		"end":          entry.End,
		"detergent":    entry.Detergent,
		"disinfectant": entry.Disinfectant,
		"wiper":        entry.Wiper,
		"mop":          entry.Mop,
		"concurrent":   entry.Concurrent,
		"terminal":     entry.Terminal,
		"observation":  entry.Observation,
		"operator":     entry.Operator,
	})
	if err != nil {
		return fmt.Errorf("create history: %w", wrapQueryError(err))
	}
	return nil
}
