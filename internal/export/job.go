package export

import (
	"time"

	"github.com/google/uuid"
)

// JobState is the lifecycle state of one export job.
type JobState string

const (
	JobCreated    JobState = "created"
	JobValidating JobState = "validating"
	JobMatching   JobState = "matching"
	JobStreaming  JobState = "streaming"
	JobWriting    JobState = "writing"
	JobFinalized  JobState = "finalized"
	JobFailed     JobState = "failed"
	JobAborted    JobState = "aborted"
)

// Job tracks one export request through the pipeline. Finalized,
// Failed and Aborted are terminal. The processed count never silently
// passes the record cap; the job halts at the cap boundary instead.
type Job struct {
	ID        string
	State     JobState
	StartedAt time.Time

	Processed int // rows handed to the writer
	Batches   int // batch flushes performed
	Skipped   int // rows dropped by per-row formatting failures

	Err error // terminal error for Failed/Aborted
}

// NewJob creates a job in the Created state with a short ID.
func NewJob() *Job {
	return &Job{
		ID:        uuid.New().String()[:8],
		State:     JobCreated,
		StartedAt: time.Now(),
	}
}

func (j *Job) transition(s JobState) {
	j.State = s
}

// Fail marks the job failed with the given terminal error.
func (j *Job) Fail(err error) {
	j.State = JobFailed
	j.Err = err
}

// Abort marks the job aborted at the cap boundary.
func (j *Job) Abort(err *CapExceededError) {
	j.State = JobAborted
	j.Err = err
}

// Done reports whether the job reached a terminal state.
func (j *Job) Done() bool {
	return j.State == JobFinalized || j.State == JobFailed || j.State == JobAborted
}
