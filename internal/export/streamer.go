package export

import (
	"context"
	"log/slog"

	"github.com/sanitrack/cleanlog-go/internal/models"
)

// RecordCap is the global limit on history records one export job will
// process before aborting.
const RecordCap = 50000

// DefaultPageSize is the retrieval page size when none is configured.
const DefaultPageSize = 500

// PageFunc receives one page of entries for one facility, in arrival
// order. Entries within a facility arrive newest-first.
type PageFunc func(facility models.Facility, entries []models.HistoryEntry) error

// Streamer retrieves history for resolved facilities in bounded pages.
type Streamer struct {
	pager    HistoryPager
	pageSize int
	cap      int
	logger   *slog.Logger
}

// NewStreamer creates a streamer over the given retrieval capability.
// Non-positive pageSize or cap fall back to the defaults.
func NewStreamer(pager HistoryPager, pageSize, cap int, logger *slog.Logger) *Streamer {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if cap <= 0 {
		cap = RecordCap
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Streamer{pager: pager, pageSize: pageSize, cap: cap, logger: logger}
}

// Stream pages through each facility's history within the window and
// hands every page to fn before fetching the next. A running total is
// kept across all facilities; the page that would push it past the cap
// aborts with CapExceededError instead of truncating silently. The cap
// is checked at page boundaries only.
func (s *Streamer) Stream(ctx context.Context, facilities []models.Facility, window Window, fn PageFunc) (int, error) {
	total := 0
	for _, f := range facilities {
		offset := 0
		for {
			page, err := s.pager.HistoryPage(ctx, f.ID, window, s.pageSize, offset)
			if err != nil {
				return total, &StorageError{Op: "history retrieval", Err: err}
			}
			if len(page) == 0 {
				break
			}

			if total+len(page) > s.cap {
				s.logger.Warn("record cap exceeded",
					"facility", f.Name, "cap", s.cap, "seen", total+len(page))
				return total, &CapExceededError{Cap: s.cap, Seen: total + len(page)}
			}
			total += len(page)

			if err := fn(f, page); err != nil {
				return total, err
			}

			if len(page) < s.pageSize {
				break
			}
			offset += s.pageSize
		}
		s.logger.Debug("facility streamed", "facility", f.Name, "total", total)
	}
	return total, nil
}
