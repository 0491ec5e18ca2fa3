// Package serrors attaches semantic kinds to errors so that transports can
// map failures to status codes without knowing where they came from.
package serrors

import (
	"errors"
	"net/http"
	"sync"
)

// Kind is a semantic error category. Kinds are sentinels: compare them with
// errors.Is.
type Kind interface {
	error
	isKind()
}

type kind string

func (k kind) Error() string { return string(k) }
func (kind) isKind()         {}

// NewKind creates a kind identified by name. Packages declare their own kinds
// next to the code that produces them and register a status for each.
func NewKind(name string) Kind { return kind(name) }

// Built-in kinds.
var (
	ErrBadRequest  = NewKind("BAD_REQUEST")
	ErrNotFound    = NewKind("NOT_FOUND")
	ErrConflict    = NewKind("CONFLICT")
	ErrInternal    = NewKind("INTERNAL")
	ErrTimeout     = NewKind("TIMEOUT")
	ErrUnavailable = NewKind("UNAVAILABLE")
)

var (
	statusMu     sync.RWMutex
	statusByKind = map[Kind]int{ //nolint: gochecknoglobals
		ErrBadRequest:  http.StatusBadRequest,
		ErrNotFound:    http.StatusNotFound,
		ErrConflict:    http.StatusConflict,
		ErrInternal:    http.StatusInternalServerError,
		ErrTimeout:     http.StatusGatewayTimeout,
		ErrUnavailable: http.StatusServiceUnavailable,
	}
)

// RegisterStatus maps k to an HTTP status code.
func RegisterStatus(k Kind, code int) {
	statusMu.Lock()
	defer statusMu.Unlock()

	statusByKind[k] = code
}

// KindOf returns the kind of the outermost *Error in err's chain, or err's
// own kind when it is a bare Kind. Anything else is ErrInternal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) && se.kind != nil {
		return se.kind
	}

	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return ErrInternal
}

// HTTPStatus maps err to a status code through its kind. Unregistered kinds
// are 500.
func HTTPStatus(err error) int {
	statusMu.RLock()
	defer statusMu.RUnlock()

	if code, ok := statusByKind[KindOf(err)]; ok {
		return code
	}

	return http.StatusInternalServerError
}
