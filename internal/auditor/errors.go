package auditor

import (
	"carbonaudit/pkg/domain"
	"fmt"
)

// Error is returned when a pipeline fails after its record was created.
// ID references the record so that clients can look it up later.
type Error struct {
	ID  domain.AuditID
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("audit %s failed: %v", e.ID, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
