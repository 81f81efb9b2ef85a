package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sanitrack/cleanlog-go/internal/models"
)

// TimestampLayout is the locale format used for the timestamp column.
const TimestampLayout = "02/01/2006 15:04"

// Columns is the fixed, ordered header row of the export.
var Columns = []string{
	"Facility",
	"Code",
	"Area",
	"Date",
	"Start",
	"End",
	"Detergent",
	"Disinfectant",
	"Wiper",
	"Mop",
	"Concurrent",
	"Terminal",
	"Operator",
	"Observation",
}

// Formatter projects raw history entries into fixed-column rows.
// Operator labels are resolved through a per-job cache so a given
// operator is looked up at most once per job.
type Formatter struct {
	directory OperatorDirectory
	labels    map[string]string
	logger    *slog.Logger
}

// NewFormatter creates a formatter with an empty label cache. One
// formatter serves exactly one job; labels are stable for its lifetime.
func NewFormatter(directory OperatorDirectory, logger *slog.Logger) *Formatter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Formatter{
		directory: directory,
		labels:    make(map[string]string),
		logger:    logger,
	}
}

// Row produces the column values for one entry. A malformed entry
// returns a FormattingError; callers skip the row and continue.
func (f *Formatter) Row(ctx context.Context, facility models.Facility, e models.HistoryEntry) ([]any, error) {
	if e.At.IsZero() {
		return nil, &FormattingError{Err: fmt.Errorf("entry %s has no timestamp", models.RecordRef(e.ID))}
	}

	return []any{
		facility.Name,
		facility.Code,
		facility.Area.Label(),
		e.At.Format(TimestampLayout),
		orNA(e.Start),
		orNA(e.End),
		yesNo(e.Detergent),
		yesNo(e.Disinfectant),
		yesNo(e.Wiper),
		yesNo(e.Mop),
		yesNo(e.Concurrent),
		yesNo(e.Terminal),
		f.operatorLabel(ctx, e),
		e.Observation,
	}, nil
}

// operatorLabel resolves the entry's operator through the cache.
// Lookup failures degrade to "unknown" rather than failing the row.
func (f *Formatter) operatorLabel(ctx context.Context, e models.HistoryEntry) string {
	if e.Operator == nil {
		return "unknown"
	}
	key := models.RecordRef(*e.Operator)
	if label, ok := f.labels[key]; ok {
		return label
	}

	label, err := f.directory.OperatorLabel(ctx, *e.Operator)
	if err != nil || label == "" {
		if err != nil {
			f.logger.Warn("operator lookup failed", "operator", key, "error", err)
		}
		label = "unknown"
	}
	f.labels[key] = label
	return label
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
