package export

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sanitrack/cleanlog-go/internal/models"
)

// Options configures one export pipeline instance. Zero values fall
// back to the package defaults.
type Options struct {
	ArtifactDir string
	PageSize    int
	BatchSize   int
	RecordCap   int
	ScoreCutoff float64
}

// Result is the outcome of a completed or cap-aborted export.
type Result struct {
	Job        *Job
	Window     Window
	Facilities []models.Facility
	Path       string
	Rows       int
	Batches    int
	Skipped    int
	Capped     bool // true when the job aborted at the record cap
}

// Pipeline runs export jobs end to end. One pipeline serves many jobs;
// per-job state (operator cache, workbook, counters) is created fresh
// for each run. Jobs share no mutable state beyond the artifact
// directory, which tolerates concurrent writers because generated file
// names are collision-resistant.
type Pipeline struct {
	resolver  *Resolver
	streamer  *Streamer
	directory OperatorDirectory
	opts      Options
	logger    *slog.Logger
}

// NewPipeline wires the export components over the external
// capabilities. The capabilities are constructed once at process start
// and passed in; the pipeline holds no connection state of its own.
func NewPipeline(matcher FacilityMatcher, pager HistoryPager, directory OperatorDirectory, opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		resolver:  NewResolver(matcher, opts.ScoreCutoff, logger),
		streamer:  NewStreamer(pager, opts.PageSize, opts.RecordCap, logger),
		directory: directory,
		opts:      opts,
		logger:    logger,
	}
}

// Run executes one export request as a sequential pipeline:
// Created → Validating → Matching → Streaming → Writing → Finalized.
// Validation and not-found failures exit before any file exists. A
// storage failure aborts the job. Hitting the record cap finalizes the
// rows written so far and reports a capped result instead of failing.
func (p *Pipeline) Run(ctx context.Context, req Request, def WindowDefault) (*Result, error) {
	job := NewJob()
	log := p.logger.With("job_id", job.ID)
	log.Info("export started", "query", req.Query)

	job.transition(JobValidating)
	window, err := PlanWindow(req, def)
	if err != nil {
		job.Fail(err)
		return nil, err
	}

	job.transition(JobMatching)
	facilities, err := p.resolver.Resolve(ctx, req.Query)
	if err != nil {
		job.Fail(err)
		return nil, err
	}

	writer, err := NewWriter(p.opts.ArtifactDir, p.opts.BatchSize, log)
	if err != nil {
		job.Fail(err)
		return nil, err
	}

	formatter := NewFormatter(p.directory, log)

	job.transition(JobStreaming)
	_, streamErr := p.streamer.Stream(ctx, facilities, window, func(f models.Facility, entries []models.HistoryEntry) error {
		for _, e := range entries {
			row, rowErr := formatter.Row(ctx, f, e)
			if rowErr != nil {
				var fe *FormattingError
				if errors.As(rowErr, &fe) {
					job.Skipped++
					log.Warn("row skipped", "entry", models.RecordRef(e.ID), "error", rowErr)
					continue
				}
				return rowErr
			}
			if err := writer.Append(row); err != nil {
				return err
			}
			job.Processed++
		}
		return nil
	})

	var capErr *CapExceededError
	switch {
	case streamErr == nil:
		// fall through to finalize
	case errors.As(streamErr, &capErr):
		// Partial success: keep the rows already flushed and report
		// the limit instead of failing outright.
		job.Abort(capErr)
	default:
		job.Fail(streamErr)
		return nil, streamErr
	}

	if !job.Done() {
		job.transition(JobWriting)
	}
	if err := writer.Finalize(); err != nil {
		job.Fail(err)
		return nil, err
	}
	job.Batches = writer.Batches()

	if !job.Done() {
		job.transition(JobFinalized)
	}

	res := &Result{
		Job:        job,
		Window:     window,
		Facilities: facilities,
		Path:       writer.Path(),
		Rows:       job.Processed,
		Batches:    job.Batches,
		Skipped:    job.Skipped,
		Capped:     job.State == JobAborted,
	}
	log.Info("export finished",
		"state", job.State, "rows", res.Rows, "batches", res.Batches,
		"skipped", res.Skipped, "window", window.String())
	return res, nil
}
