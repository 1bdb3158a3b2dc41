//go:build unit

package booking_test

import (
	"testing"
	"time"

	"fleetbook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustPeriod(t *testing.T, pickup, ret time.Time) booking.BookingPeriod {
	t.Helper()
	p, err := booking.NewBookingPeriod(pickup, ret, pickup)
	require.NoError(t, err)
	return p
}

func TestNewBookingPeriod(t *testing.T) {
	today := date(2025, 11, 20)

	cases := []struct {
		name   string
		pickup time.Time
		ret    time.Time
		errIs  error
	}{
		{
			name:   "valid future period",
			pickup: date(2025, 12, 1),
			ret:    date(2025, 12, 5),
		},
		{
			name:   "pickup today is allowed",
			pickup: today,
			ret:    date(2025, 11, 22),
		},
		{
			name:   "return equal to pickup",
			pickup: date(2025, 12, 1),
			ret:    date(2025, 12, 1),
			errIs:  booking.ErrInvalidArgument,
		},
		{
			name:   "return before pickup",
			pickup: date(2025, 12, 5),
			ret:    date(2025, 12, 1),
			errIs:  booking.ErrInvalidArgument,
		},
		{
			name:   "pickup in the past",
			pickup: date(2025, 11, 19),
			ret:    date(2025, 11, 25),
			errIs:  booking.ErrInvalidArgument,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := booking.NewBookingPeriod(c.pickup, c.ret, today)
			if c.errIs != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, booking.DateOf(c.pickup), p.PickupDate())
			assert.Equal(t, booking.DateOf(c.ret), p.ReturnDate())
		})
	}

	t.Run("time-of-day is ignored", func(t *testing.T) {
		pickup := time.Date(2025, 12, 1, 23, 59, 0, 0, time.UTC)
		ret := time.Date(2025, 12, 5, 0, 1, 0, 0, time.UTC)
		p, err := booking.NewBookingPeriod(pickup, ret, today)
		require.NoError(t, err)
		assert.Equal(t, date(2025, 12, 1), p.PickupDate())
		assert.Equal(t, 5, p.TotalDays())
	})
}

func TestTotalDays(t *testing.T) {
	cases := []struct {
		name   string
		pickup time.Time
		ret    time.Time
		want   int
	}{
		{"two consecutive days", date(2025, 12, 1), date(2025, 12, 2), 2},
		{"five day rental", date(2025, 12, 1), date(2025, 12, 5), 5},
		{"across month boundary", date(2025, 11, 28), date(2025, 12, 2), 5},
		{"across year boundary", date(2025, 12, 30), date(2026, 1, 2), 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := mustPeriod(t, c.pickup, c.ret)
			assert.Equal(t, c.want, p.TotalDays())
		})
	}
}

func TestOverlapsWith(t *testing.T) {
	d1 := date(2025, 12, 1)
	d2 := date(2025, 12, 2)
	d3 := date(2025, 12, 3)
	d4 := date(2025, 12, 4)
	d5 := date(2025, 12, 5)

	cases := []struct {
		name string
		a    booking.BookingPeriod
		b    booking.BookingPeriod
		want bool
	}{
		{
			name: "fully contained",
			a:    booking.ReconstructBookingPeriod(d1, d5),
			b:    booking.ReconstructBookingPeriod(d2, d3),
			want: true,
		},
		{
			name: "partial overlap",
			a:    booking.ReconstructBookingPeriod(d1, d3),
			b:    booking.ReconstructBookingPeriod(d2, d5),
			want: true,
		},
		{
			name: "shared boundary day overlaps",
			a:    booking.ReconstructBookingPeriod(d1, d3),
			b:    booking.ReconstructBookingPeriod(d3, d5),
			want: true,
		},
		{
			name: "adjacent but disjoint",
			a:    booking.ReconstructBookingPeriod(d1, d2),
			b:    booking.ReconstructBookingPeriod(d3, d4),
			want: false,
		},
		{
			name: "far apart",
			a:    booking.ReconstructBookingPeriod(d1, d2),
			b:    booking.ReconstructBookingPeriod(date(2026, 1, 1), date(2026, 1, 5)),
			want: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.a.OverlapsWith(c.b))
			// symmetry must hold for every pair
			assert.Equal(t, c.want, c.b.OverlapsWith(c.a))
		})
	}

	t.Run("reflexivity", func(t *testing.T) {
		p := booking.ReconstructBookingPeriod(d1, d5)
		assert.True(t, p.OverlapsWith(p))
	})
}
