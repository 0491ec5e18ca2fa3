package storage

import "errors"

var (
	// ErrAlreadyInTx is returned by Begin and WithTx on a transactional handle.
	ErrAlreadyInTx = errors.New("storage: transaction already open")
	// ErrNotInTx is returned by Commit and Rollback outside a transaction.
	ErrNotInTx = errors.New("storage: no open transaction")
	// ErrJobsUnsupported is returned by AddJob on backends without a job queue.
	ErrJobsUnsupported = errors.New("background jobs are not supported by this storage driver")
)
