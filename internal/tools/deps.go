// Package tools provides the MCP tool handlers and registration for
// the cleanlog operation surface.
package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/sanitrack/cleanlog-go/internal/artifact"
	"github.com/sanitrack/cleanlog-go/internal/export"
	"github.com/sanitrack/cleanlog-go/internal/models"
)

// Store is the slice of the database the tools consume. *db.Client
// satisfies it; tests substitute fakes.
type Store interface {
	export.FacilityMatcher
	export.HistoryPager
	export.OperatorDirectory

	ListFacilities(ctx context.Context) ([]models.Facility, error)
	CountHistorySince(ctx context.Context, since time.Time) ([]models.FacilityCount, error)
}

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Store     Store
	Artifacts *artifact.Store
	Logger    *slog.Logger
}
