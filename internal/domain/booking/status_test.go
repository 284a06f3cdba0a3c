//go:build unit

package booking_test

import (
	"testing"

	"tour-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	legal := map[booking.Status][]booking.Status{
		booking.StatusPending:   {booking.StatusPaid, booking.StatusCancelled},
		booking.StatusPaid:      {booking.StatusConfirmed, booking.StatusCancelled},
		booking.StatusConfirmed: {booking.StatusCompleted},
	}

	for _, from := range booking.AllStatuses() {
		for _, to := range booking.AllStatuses() {
			want := false
			for _, ok := range legal[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, booking.StatusCompleted.IsTerminal())
	assert.True(t, booking.StatusCancelled.IsTerminal())
	assert.False(t, booking.StatusConfirmed.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	s, err := booking.ParseStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPaid, s)

	_, err = booking.ParseStatus("refunded")
	require.ErrorIs(t, err, booking.ErrUnknownStatus)
}
