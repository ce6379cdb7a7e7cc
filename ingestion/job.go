package ingestion

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/embedding"
)

// Job is a handle on one dispatched embedding job.
type Job struct {
	ID  uuid.UUID
	Ref core.EntityRef

	done   chan struct{}
	once   sync.Once
	result *embedding.Result
	err    error
}

func newJob(ref core.EntityRef) *Job {
	return &Job{
		ID:   uuid.New(),
		Ref:  ref,
		done: make(chan struct{}),
	}
}

func (j *Job) finish(result *embedding.Result, err error) {
	j.once.Do(func() {
		j.result = result
		j.err = err
		close(j.done)
	})
}

// Done returns a channel that is closed when the job finishes.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job finishes or ctx is done.
func (j *Job) Wait(ctx context.Context) (*embedding.Result, error) {
	select {
	case <-j.done:
		return j.result, j.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Err returns the job's error once it has finished, nil before that.
func (j *Job) Err() error {
	select {
	case <-j.done:
		return j.err
	default:
		return nil
	}
}
