//go:build unit

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fleetbook/internal/domain/booking"
	"fleetbook/internal/infra"
	"fleetbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReservationReadStore struct {
	mock.Mock
}

func (m *mockReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.ReservationView), args.Error(1)
}

func (m *mockReservationReadStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*queries.ReservationListItem, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.ReservationListItem), args.Error(1)
}

func (m *mockReservationReadStore) FindBlockingByPeriod(ctx context.Context, period booking.BookingPeriod) ([]queries.BlockingReservation, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.BlockingReservation), args.Error(1)
}

func day(d int) time.Time {
	return time.Date(2025, 12, d, 0, 0, 0, 0, time.UTC)
}

func mustPeriod(t *testing.T, pickup, ret time.Time) booking.BookingPeriod {
	t.Helper()
	today := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	p, err := booking.NewBookingPeriod(pickup, ret, today)
	require.NoError(t, err)
	return p
}

func TestReservationQueries_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("maps storage not-found to sentinel", func(t *testing.T) {
		t.Parallel()
		store := &mockReservationReadStore{}
		q := queries.NewReservationQueries(store)
		id := uuid.New()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		store.On("FindByID", mock.Anything, id).
			Return(nil, infra.WrapRepoErr(logger, infra.KindNotFound, "no row", nil))

		_, err := q.GetByID(context.Background(), id)

		require.ErrorIs(t, err, queries.ErrReservationNotFound)
	})
}

func TestReservationQueries_Availability(t *testing.T) {
	t.Parallel()

	vehicleA := uuid.New()
	vehicleB := uuid.New()

	t.Run("deduplicates vehicles with multiple blocking reservations", func(t *testing.T) {
		t.Parallel()
		store := &mockReservationReadStore{}
		q := queries.NewReservationQueries(store)
		candidate := mustPeriod(t, day(10), day(20))

		store.On("FindBlockingByPeriod", mock.Anything, candidate).Return([]queries.BlockingReservation{
			{VehicleID: vehicleA, PickupDate: day(8), ReturnDate: day(12)},
			{VehicleID: vehicleA, PickupDate: day(15), ReturnDate: day(18)},
			{VehicleID: vehicleB, PickupDate: day(19), ReturnDate: day(25)},
		}, nil)

		got, err := q.Availability(context.Background(), candidate)

		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{vehicleA, vehicleB}, got)
	})

	t.Run("shared boundary day still blocks", func(t *testing.T) {
		t.Parallel()
		store := &mockReservationReadStore{}
		q := queries.NewReservationQueries(store)
		candidate := mustPeriod(t, day(10), day(20))

		store.On("FindBlockingByPeriod", mock.Anything, candidate).Return([]queries.BlockingReservation{
			{VehicleID: vehicleA, PickupDate: day(20), ReturnDate: day(24)},
		}, nil)

		got, err := q.Availability(context.Background(), candidate)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{vehicleA}, got)
	})

	t.Run("disjoint rows from a loose prefilter are dropped", func(t *testing.T) {
		t.Parallel()
		store := &mockReservationReadStore{}
		q := queries.NewReservationQueries(store)
		candidate := mustPeriod(t, day(10), day(20))

		store.On("FindBlockingByPeriod", mock.Anything, candidate).Return([]queries.BlockingReservation{
			{VehicleID: vehicleA, PickupDate: day(21), ReturnDate: day(24)},
		}, nil)

		got, err := q.Availability(context.Background(), candidate)

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
