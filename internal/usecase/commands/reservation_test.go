//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fleetbook/internal/domain/booking"
	"fleetbook/internal/domain/vehicle"
	"fleetbook/internal/infra"
	"fleetbook/internal/pkg/clock"
	"fleetbook/internal/pkg/errs"
	"fleetbook/internal/usecase/commands"
	"fleetbook/internal/usecase/queries"
	"fleetbook/internal/usecase/shared"
	"fleetbook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) Create(ctx context.Context, res booking.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *mockReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (booking.Reservation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(booking.Reservation), args.Error(1)
}

func (m *mockReservationRepo) Update(ctx context.Context, res booking.Reservation, expectedVersion int64) error {
	args := m.Called(ctx, res, expectedVersion)
	return args.Error(0)
}

type mockCommandReads struct {
	mock.Mock
}

func (m *mockCommandReads) VehicleByID(ctx context.Context, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.VehicleSnapshot), args.Error(1)
}

// stubUoW runs the work function synchronously against the mock repository.
// It doubles as the Tx it hands to the callback.
type stubUoW struct {
	repo  *mockReservationRepo
	reads *mockCommandReads
}

func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u)
}

func (u *stubUoW) Reads() shared.CommandReads { return u.reads }

func (u *stubUoW) Reservations() shared.ReservationRepository { return u.repo }

type mockPricingService struct {
	mock.Mock
}

func (m *mockPricingService) Quote(ctx context.Context, category vehicle.Category, period booking.BookingPeriod, pickupLocation string) (booking.Money, error) {
	args := m.Called(ctx, category, period, pickupLocation)
	return args.Get(0).(booking.Money), args.Error(1)
}

type mockCustomerRegistrar struct {
	mock.Mock
}

func (m *mockCustomerRegistrar) Register(ctx context.Context, details commands.GuestDetails) (uuid.UUID, error) {
	args := m.Called(ctx, details)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Publish(ctx context.Context, ev booking.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type mockReservationQueries struct {
	mock.Mock
}

func (m *mockReservationQueries) GetByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.ReservationView), args.Error(1)
}

func (m *mockReservationQueries) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*queries.ReservationListItem, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.ReservationListItem), args.Error(1)
}

func (m *mockReservationQueries) Availability(ctx context.Context, period booking.BookingPeriod) ([]uuid.UUID, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type commandsFixture struct {
	repo      *mockReservationRepo
	reads     *mockCommandReads
	pricing   *mockPricingService
	registrar *mockCustomerRegistrar
	publisher *mockEventPublisher
	queries   *mockReservationQueries
	clock     *clock.MockClock
	commands  commands.ReservationCommands
}

func newCommandsFixture(t *testing.T, now time.Time) *commandsFixture {
	t.Helper()
	f := &commandsFixture{
		repo:      &mockReservationRepo{},
		reads:     &mockCommandReads{},
		pricing:   &mockPricingService{},
		registrar: &mockCustomerRegistrar{},
		publisher: &mockEventPublisher{},
		queries:   &mockReservationQueries{},
		clock:     clock.NewMockClock(now),
	}
	uow := &stubUoW{repo: f.repo, reads: f.reads}
	f.commands = commands.NewReservationCommands(uow, f.pricing, f.registrar, f.publisher, f.queries, f.clock)
	return f
}

func repoErr(kind infra.RepositoryErrorKind, msg string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return infra.WrapRepoErr(logger, kind, msg, nil)
}

func createParams(b *builder.ReservationBuilder) commands.CreateReservationParams {
	price := b.PriceCents
	return commands.CreateReservationParams{
		VehicleID:       b.VehicleID,
		CustomerID:      b.CustomerID,
		PickupDate:      b.PickupDate,
		ReturnDate:      b.ReturnDate,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		PriceCents:      &price,
		Currency:        b.Currency,
	}
}

func vehicleSnapshot(id uuid.UUID) *shared.VehicleSnapshot {
	return &shared.VehicleSnapshot{
		ID:       id,
		Plate:    "M-FB 1234",
		Model:    "VW Golf",
		Category: "compact",
	}
}

func TestReservationCommands_Create(t *testing.T) {
	t.Parallel()

	t.Run("creates reservation with provided price", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)

		f.reads.On("VehicleByID", mock.Anything, b.VehicleID).Return(vehicleSnapshot(b.VehicleID), nil)
		f.repo.On("Create", mock.Anything, mock.AnythingOfType("booking.Reservation")).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
		view := b.BuildView()
		f.queries.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(view, nil)

		got, err := f.commands.Create(context.Background(), createParams(b))

		require.NoError(t, err)
		assert.Equal(t, view, got)
		f.repo.AssertExpectations(t)
		f.publisher.AssertNumberOfCalls(t, "Publish", 1)
		f.pricing.AssertNotCalled(t, "Quote")
	})

	t.Run("quotes price when none provided", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)

		params := createParams(b)
		params.PriceCents = nil

		quoted, err := booking.NewMoney(45000, "EUR")
		require.NoError(t, err)

		f.reads.On("VehicleByID", mock.Anything, b.VehicleID).Return(vehicleSnapshot(b.VehicleID), nil)
		f.pricing.On("Quote", mock.Anything, vehicle.CategoryCompact, mock.Anything, b.PickupLocation).Return(quoted, nil)
		f.repo.On("Create", mock.Anything, mock.MatchedBy(func(r booking.Reservation) bool {
			return r.Price() == quoted
		})).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
		f.queries.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(b.BuildView(), nil)

		_, err = f.commands.Create(context.Background(), params)

		require.NoError(t, err)
		f.pricing.AssertExpectations(t)
		f.repo.AssertExpectations(t)
	})

	t.Run("surfaces pricing outage without booking", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)

		params := createParams(b)
		params.PriceCents = nil

		f.reads.On("VehicleByID", mock.Anything, b.VehicleID).Return(vehicleSnapshot(b.VehicleID), nil)
		f.pricing.On("Quote", mock.Anything, vehicle.CategoryCompact, mock.Anything, b.PickupLocation).Return(booking.Money{}, assert.AnError)

		_, err := f.commands.Create(context.Background(), params)

		require.True(t, errs.Is(err, commands.ErrPricingUnavailable))
		f.repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects unknown vehicle", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)

		f.reads.On("VehicleByID", mock.Anything, b.VehicleID).Return(nil, repoErr(infra.KindNotFound, "vehicle not found"))

		_, err := f.commands.Create(context.Background(), createParams(b))

		require.ErrorIs(t, err, commands.ErrVehicleNotFound)
		f.repo.AssertNotCalled(t, "Create")
	})

	t.Run("maps storage conflict on insert", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)

		f.reads.On("VehicleByID", mock.Anything, b.VehicleID).Return(vehicleSnapshot(b.VehicleID), nil)
		f.repo.On("Create", mock.Anything, mock.Anything).Return(repoErr(infra.KindConflict, "conflicting reservation"))

		_, err := f.commands.Create(context.Background(), createParams(b))

		require.ErrorIs(t, err, commands.ErrReservationConflict)
		f.publisher.AssertNotCalled(t, "Publish")
		f.queries.AssertNotCalled(t, "GetByID")
	})

	t.Run("rejects inverted period before touching storage", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)

		params := createParams(b)
		params.PickupDate, params.ReturnDate = params.ReturnDate, params.PickupDate

		_, err := f.commands.Create(context.Background(), params)

		require.ErrorIs(t, err, booking.ErrInvalidArgument)
		f.reads.AssertNotCalled(t, "VehicleByID")
		f.repo.AssertNotCalled(t, "Create")
	})
}

func TestReservationCommands_CreateGuest(t *testing.T) {
	t.Parallel()

	guest := commands.GuestDetails{
		FirstName:     "Ada",
		LastName:      "Martin",
		Email:         "ada.martin@example.com",
		Phone:         "+49 151 0000000",
		DriverLicense: "B123456789",
	}

	t.Run("registers guest then books under the new customer id", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)

		registeredID := uuid.New()
		f.registrar.On("Register", mock.Anything, guest).Return(registeredID, nil)
		f.reads.On("VehicleByID", mock.Anything, b.VehicleID).Return(vehicleSnapshot(b.VehicleID), nil)
		f.repo.On("Create", mock.Anything, mock.MatchedBy(func(r booking.Reservation) bool {
			return r.CustomerID() == registeredID
		})).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
		f.queries.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(b.BuildView(), nil)

		_, err := f.commands.CreateGuest(context.Background(), commands.CreateGuestReservationParams{
			Reservation: createParams(b),
			Guest:       guest,
		})

		require.NoError(t, err)
		f.repo.AssertExpectations(t)
	})

	t.Run("surfaces registration failure without booking", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)

		f.registrar.On("Register", mock.Anything, guest).Return(uuid.Nil, assert.AnError)

		_, err := f.commands.CreateGuest(context.Background(), commands.CreateGuestReservationParams{
			Reservation: createParams(b),
			Guest:       guest,
		})

		require.True(t, errs.Is(err, commands.ErrGuestRegistration))
		f.repo.AssertNotCalled(t, "Create")
	})
}

func TestReservationCommands_Transitions(t *testing.T) {
	t.Parallel()

	pendingReservation := func(t *testing.T, b *builder.ReservationBuilder) booking.Reservation {
		t.Helper()
		res, _, err := b.BuildDomain()
		require.NoError(t, err)
		return res
	}

	t.Run("confirm persists with version check and publishes", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)
		res := pendingReservation(t, b)

		f.repo.On("FindByID", mock.Anything, res.ID()).Return(res, nil)
		f.repo.On("Update", mock.Anything, mock.MatchedBy(func(r booking.Reservation) bool {
			return r.Status() == booking.StatusConfirmed && r.Version() == res.Version()+1
		}), res.Version()).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(ev booking.Event) bool {
			return ev.Kind() == booking.EventKindConfirmed
		})).Return(nil)
		f.queries.On("GetByID", mock.Anything, res.ID()).Return(b.BuildView(), nil)

		_, err := f.commands.Confirm(context.Background(), res.ID())

		require.NoError(t, err)
		f.repo.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("confirm from confirmed fails with state conflict", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)
		res := pendingReservation(t, b)
		confirmed, _, err := res.Confirm(b.Today)
		require.NoError(t, err)

		f.repo.On("FindByID", mock.Anything, res.ID()).Return(confirmed, nil)

		_, err = f.commands.Confirm(context.Background(), res.ID())

		require.ErrorIs(t, err, booking.ErrStateConflict)
		f.repo.AssertNotCalled(t, "Update")
		f.publisher.AssertNotCalled(t, "Publish")
	})

	t.Run("unknown reservation id", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)
		id := uuid.New()

		f.repo.On("FindByID", mock.Anything, id).Return(booking.Reservation{}, repoErr(infra.KindNotFound, "reservation not found"))

		_, err := f.commands.Confirm(context.Background(), id)

		require.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("lost optimistic lock surfaces as conflict", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)
		res := pendingReservation(t, b)

		f.repo.On("FindByID", mock.Anything, res.ID()).Return(res, nil)
		f.repo.On("Update", mock.Anything, mock.Anything, res.Version()).Return(repoErr(infra.KindConflict, "version mismatch"))

		_, err := f.commands.Confirm(context.Background(), res.ID())

		require.ErrorIs(t, err, commands.ErrReservationConflict)
		f.publisher.AssertNotCalled(t, "Publish")
	})

	t.Run("cancel of cancelled reservation is a read-only no-op", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)
		res := pendingReservation(t, b)
		cancelled, _, err := res.Cancel("change of plans", b.Today)
		require.NoError(t, err)

		f.repo.On("FindByID", mock.Anything, res.ID()).Return(cancelled, nil)
		f.queries.On("GetByID", mock.Anything, res.ID()).Return(b.BuildView(), nil)

		_, err = f.commands.Cancel(context.Background(), res.ID(), "again")

		require.NoError(t, err)
		f.repo.AssertNotCalled(t, "Update")
		f.publisher.AssertNotCalled(t, "Publish")
	})

	t.Run("mark active before pickup day is rejected", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today) // today well before pickup
		res := pendingReservation(t, b)
		confirmed, _, err := res.Confirm(b.Today)
		require.NoError(t, err)

		f.repo.On("FindByID", mock.Anything, res.ID()).Return(confirmed, nil)

		_, err = f.commands.MarkActive(context.Background(), res.ID())

		require.ErrorIs(t, err, booking.ErrStateConflict)
		f.repo.AssertNotCalled(t, "Update")
	})

	t.Run("publish failure does not fail the command", func(t *testing.T) {
		t.Parallel()
		b := builder.NewReservationBuilder()
		f := newCommandsFixture(t, b.Today)
		res := pendingReservation(t, b)

		f.repo.On("FindByID", mock.Anything, res.ID()).Return(res, nil)
		f.repo.On("Update", mock.Anything, mock.Anything, res.Version()).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(assert.AnError)
		f.queries.On("GetByID", mock.Anything, res.ID()).Return(b.BuildView(), nil)

		_, err := f.commands.Confirm(context.Background(), res.ID())

		require.NoError(t, err)
	})
}
