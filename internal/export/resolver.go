package export

import (
	"context"
	"log/slog"

	"github.com/sanitrack/cleanlog-go/internal/models"
)

// MatchLimit caps how many ranked candidates are considered per query.
const MatchLimit = 3

// DefaultScoreCutoff is the absolute relevance cutoff on the match
// engine's normalized scale. Configurable because the cutoff only
// holds meaning while the engine scores on a fixed [0,1] range.
const DefaultScoreCutoff = 0.7

// Resolver turns free-text facility queries into threshold-filtered
// facility sets.
type Resolver struct {
	matcher FacilityMatcher
	cutoff  float64
	logger  *slog.Logger
}

// NewResolver creates a resolver over the given match capability.
// A non-positive cutoff falls back to DefaultScoreCutoff.
func NewResolver(matcher FacilityMatcher, cutoff float64, logger *slog.Logger) *Resolver {
	if cutoff <= 0 {
		cutoff = DefaultScoreCutoff
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{matcher: matcher, cutoff: cutoff, logger: logger}
}

// Resolve returns every candidate clearing the score cutoff, in rank
// order. Aliased or duplicated names that all qualify are all retained;
// their histories are later combined rather than collapsed to a single
// best match. Zero qualifying candidates yields a NotFoundError even
// when lower-scored candidates exist.
func (r *Resolver) Resolve(ctx context.Context, query string) ([]models.Facility, error) {
	if query == "" {
		return nil, &ValidationError{Field: "query", Reason: "must not be empty"}
	}

	candidates, err := r.matcher.MatchFacilities(ctx, query, MatchLimit)
	if err != nil {
		return nil, &StorageError{Op: "facility match", Err: err}
	}

	var resolved []models.Facility
	for _, c := range candidates {
		if c.Score >= r.cutoff {
			resolved = append(resolved, c.Facility)
		} else {
			r.logger.Debug("candidate below cutoff",
				"facility", c.Name, "score", c.Score, "cutoff", r.cutoff)
		}
	}

	if len(resolved) == 0 {
		r.logger.Info("no facility cleared cutoff", "query", query, "candidates", len(candidates))
		return nil, &NotFoundError{Query: query}
	}

	r.logger.Info("facilities resolved", "query", query, "count", len(resolved))
	return resolved, nil
}
