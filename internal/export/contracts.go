package export

import (
	"context"

	"github.com/sanitrack/cleanlog-go/internal/models"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// FacilityMatcher is the ranked full-text match capability over
// facility display names. Scores are on the engine's normalized scale.
type FacilityMatcher interface {
	MatchFacilities(ctx context.Context, query string, limit int) ([]models.FacilityMatch, error)
}

// HistoryPager is the paged retrieval capability. Date filtering is
// pushed into the call; pages are ordered newest-first within a
// facility.
type HistoryPager interface {
	HistoryPage(ctx context.Context, facility surrealmodels.RecordID, window Window, limit, offset int) ([]models.HistoryEntry, error)
}

// OperatorDirectory resolves an operator reference to a display label.
type OperatorDirectory interface {
	OperatorLabel(ctx context.Context, operator surrealmodels.RecordID) (string, error)
}
