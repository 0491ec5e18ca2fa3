package serrors_test

import (
	"carbonaudit/pkg/serrors"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type lookupError struct{ host string }

func (e *lookupError) Error() string { return "lookup " + e.host + " failed" }

func TestError_Formatting(t *testing.T) {
	cause := errors.New("db down")

	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "message", err: serrors.With(serrors.ErrNotFound, "audit %d not found", 42), want: "audit 42 not found"},
		{name: "message and cause", err: serrors.Wrap(serrors.ErrUnavailable, cause, "saving audit"), want: "saving audit: db down"},
		{name: "cause only", err: serrors.Wrap(serrors.ErrUnavailable, cause, ""), want: "db down"},
		{name: "kind only", err: serrors.KindOnly(serrors.ErrConflict), want: "CONFLICT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.EqualError(t, tc.err, tc.want)
		})
	}
}

func TestError_IsAndAs(t *testing.T) {
	cause := &lookupError{host: "example.com"}
	err := fmt.Errorf("estimate: %w", serrors.Wrap(serrors.ErrUnavailable, cause, "green check"))

	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, serrors.ErrNotFound)

	var k serrors.Kind
	require.ErrorAs(t, err, &k)
	require.Equal(t, serrors.ErrUnavailable, k)

	var le *lookupError
	require.ErrorAs(t, err, &le)
	require.Equal(t, "example.com", le.host)

	var se *serrors.Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, "green check", se.Message())
	require.Equal(t, cause, se.Cause())
	require.Equal(t, serrors.ErrUnavailable, se.Kind())
}

func TestKindOf(t *testing.T) {
	require.Equal(t, serrors.ErrInternal, serrors.KindOf(errors.New("plain")))
	require.Equal(t, serrors.ErrBadRequest, serrors.KindOf(serrors.ErrBadRequest))

	// the outermost kind wins
	inner := serrors.With(serrors.ErrNotFound, "audit not found")
	outer := serrors.Wrap(serrors.ErrUnavailable, inner, "history")
	require.Equal(t, serrors.ErrUnavailable, serrors.KindOf(outer))
	require.Equal(t, serrors.ErrNotFound, serrors.KindOf(fmt.Errorf("x: %w", inner)))
}

func TestHTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusInternalServerError, serrors.HTTPStatus(errors.New("plain")))
	require.Equal(t, http.StatusNotFound, serrors.HTTPStatus(serrors.KindOnly(serrors.ErrNotFound)))
	require.Equal(t, http.StatusServiceUnavailable, serrors.HTTPStatus(serrors.ErrUnavailable))
	require.Equal(t, http.StatusGatewayTimeout, serrors.HTTPStatus(serrors.KindOnly(serrors.ErrTimeout)))

	custom := serrors.NewKind("TEAPOT")
	require.Equal(t, http.StatusInternalServerError, serrors.HTTPStatus(serrors.KindOnly(custom)))
	serrors.RegisterStatus(custom, http.StatusTeapot)
	require.Equal(t, http.StatusTeapot, serrors.HTTPStatus(serrors.With(custom, "short and stout")))
}
