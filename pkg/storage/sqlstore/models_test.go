package sqlstore_test

import (
	"carbonaudit/pkg/storage/sqlstore"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestamp_ValueIsSortable(t *testing.T) {
	early := sqlstore.Timestamp(time.Date(2025, 1, 1, 10, 0, 0, 500_000_000, time.UTC))
	late := sqlstore.Timestamp(time.Date(2025, 1, 1, 10, 0, 0, 123_000, time.FixedZone("x", 3600)))

	a, err := early.Value()
	require.NoError(t, err)
	b, err := late.Value()
	require.NoError(t, err)

	// late is 09:00:00.000123Z once normalised to UTC
	require.Equal(t, "2025-01-01T10:00:00.500000Z", a)
	require.Equal(t, "2025-01-01T09:00:00.000123Z", b)
	require.Less(t, b.(string), a.(string))
}

func TestTimestamp_Scan(t *testing.T) {
	want := time.Date(2025, 6, 2, 8, 30, 0, 250_000, time.UTC)

	for _, src := range []any{
		want,
		"2025-06-02T08:30:00.000250Z",
		[]byte("2025-06-02T08:30:00.000250Z"),
		"2025-06-02T10:30:00.00025+02:00",
	} {
		var ts sqlstore.Timestamp
		require.NoError(t, ts.Scan(src))
		require.True(t, want.Equal(time.Time(ts)), "%v", src)
	}

	var ts sqlstore.Timestamp
	require.NoError(t, ts.Scan(nil))
	require.True(t, time.Time(ts).IsZero())
	require.Error(t, ts.Scan("yesterday"))
	require.Error(t, ts.Scan(42))
}
