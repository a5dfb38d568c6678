package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestNextStatus(t *testing.T) {
	cases := []struct {
		from, action string
		want         string
		wantErr      bool
	}{
		{StatusPending, ActionAccept, StatusAccepted, false},
		{StatusPending, ActionReject, StatusRejected, false},
		{StatusPending, ActionCancel, StatusCancelled, false},
		{StatusAccepted, ActionCancel, StatusCancelled, false},
		{StatusAccepted, ActionMarkPaid, StatusPaid, false},

		{StatusAccepted, ActionAccept, "", true},
		{StatusPaid, ActionCancel, "", true},
		{StatusRejected, ActionMarkPaid, "", true},
		{StatusCancelled, ActionAccept, "", true},
		{StatusPending, ActionMarkPaid, "", true},
		{StatusPending, "bogus", "", true},
	}

	for _, tc := range cases {
		got, err := nextStatus(tc.from, tc.action)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s/%s", tc.from, tc.action)
			continue
		}
		assert.NoError(t, err, "%s/%s", tc.from, tc.action)
		assert.Equal(t, tc.want, got, "%s/%s", tc.from, tc.action)
	}
}

func TestInvoiceNumber_Shape(t *testing.T) {
	n := invoiceNumber(mustTime(t, "2026-03-05T10:00:00Z"))
	assert.Contains(t, n, "INV-20260305-")
	assert.Len(t, n, len("INV-20260305-")+8)
}
