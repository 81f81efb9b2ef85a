package export

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// DefaultBatchSize is the number of rows buffered between workbook
// flushes.
const DefaultBatchSize = 1000

// SheetName is the single worksheet holding the export.
const SheetName = "Cleaning History"

// Writer persists formatted rows into an xlsx workbook in fixed-size
// batches. After every batch the workbook is saved to disk, so a
// mid-export failure leaves a partially complete but independently
// readable file. The header row and column widths are set once at
// creation.
type Writer struct {
	file      *excelize.File
	path      string
	batchSize int
	logger    *slog.Logger

	nextRow int // 1-based sheet row for the next append
	pending int // rows since the last flush
	batches int
}

// ArtifactName generates a collision-resistant workbook file name from
// the current time plus a random suffix.
func ArtifactName() string {
	return fmt.Sprintf("cleaning_history_%s_%s.xlsx",
		time.Now().Format("20060102T150405"), uuid.New().String()[:8])
}

// NewWriter creates the workbook in dir, writes the header row and
// fixes the column widths. A non-positive batchSize falls back to
// DefaultBatchSize.
func NewWriter(dir string, batchSize int, logger *slog.Logger) (*Writer, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, &StorageError{Op: "workbook setup", Err: err}
	}
	if err := f.SetSheetRow(SheetName, "A1", &Columns); err != nil {
		return nil, &StorageError{Op: "workbook header", Err: err}
	}

	// Facility/date/operator/observation columns need room; the yes/no
	// flag columns stay narrow.
	for _, cw := range []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 28},
		{"B", "C", 14},
		{"D", "D", 18},
		{"E", "F", 10},
		{"G", "L", 12},
		{"M", "M", 20},
		{"N", "N", 40},
	} {
		if err := f.SetColWidth(SheetName, cw.from, cw.to, cw.width); err != nil {
			return nil, &StorageError{Op: "workbook layout", Err: err}
		}
	}

	w := &Writer{
		file:      f,
		path:      filepath.Join(dir, ArtifactName()),
		batchSize: batchSize,
		logger:    logger,
		nextRow:   2,
	}

	// Persist the header immediately so even a zero-row export yields
	// a readable artifact.
	if err := w.flush(); err != nil {
		return nil, err
	}
	w.batches = 0 // the header save is not a row batch
	return w, nil
}

// Path returns the workbook's location on disk.
func (w *Writer) Path() string { return w.path }

// Batches returns how many flushes have been performed.
func (w *Writer) Batches() int { return w.batches }

// Append adds one row, flushing the workbook when the batch fills.
func (w *Writer) Append(row []any) error {
	cell, err := excelize.CoordinatesToCellName(1, w.nextRow)
	if err != nil {
		return &StorageError{Op: "workbook append", Err: err}
	}
	if err := w.file.SetSheetRow(SheetName, cell, &row); err != nil {
		return &StorageError{Op: "workbook append", Err: err}
	}
	w.nextRow++
	w.pending++

	if w.pending >= w.batchSize {
		return w.flush()
	}
	return nil
}

// Finalize flushes any partial batch and closes the workbook.
func (w *Writer) Finalize() error {
	if w.pending > 0 {
		if err := w.flush(); err != nil {
			return err
		}
	}
	if err := w.file.Close(); err != nil {
		return &StorageError{Op: "workbook close", Err: err}
	}
	return nil
}

func (w *Writer) flush() error {
	if err := w.file.SaveAs(w.path); err != nil {
		return &StorageError{Op: "workbook flush", Err: err}
	}
	w.batches++
	w.pending = 0
	w.logger.Debug("workbook flushed", "path", w.path, "rows", w.nextRow-2, "batches", w.batches)
	return nil
}
