package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs into the queue hosted by the backend.
// When the handle is transactional the insert participates in the surrounding
// transaction and only becomes visible on commit.
//
// Backends without queue support return ErrJobsUnsupported.
type JobStorage interface {
	// AddJob enqueues a new job with the given arguments. The boolean result is
	// false when the insert was skipped as a unique duplicate.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
