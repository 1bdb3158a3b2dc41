//go:build unit || e2e

package builder

import (
	"time"

	"fleetbook/internal/domain/booking"
	reqdto "fleetbook/internal/handler/dto/request"
	"fleetbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	VehicleID       uuid.UUID
	CustomerID      uuid.UUID
	Today           time.Time
	PickupDate      time.Time
	ReturnDate      time.Time
	PickupLocation  string
	DropoffLocation string
	PriceCents      int64
	Currency        string
}

func NewReservationBuilder() *ReservationBuilder {
	today := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		VehicleID:       uuid.New(),
		CustomerID:      uuid.New(),
		Today:           today,
		PickupDate:      time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate:      time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC),
		PickupLocation:  "MUC-AIRPORT",
		DropoffLocation: "MUC-AIRPORT",
		PriceCents:      29999,
		Currency:        "EUR",
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildPeriod() (booking.BookingPeriod, error) {
	return booking.NewBookingPeriod(b.PickupDate, b.ReturnDate, b.Today)
}

func (b *ReservationBuilder) BuildDomain() (booking.Reservation, booking.Event, error) {
	period, err := b.BuildPeriod()
	if err != nil {
		return booking.Reservation{}, nil, err
	}
	pickupLoc, err := booking.NewLocationCode(b.PickupLocation)
	if err != nil {
		return booking.Reservation{}, nil, err
	}
	dropoffLoc, err := booking.NewLocationCode(b.DropoffLocation)
	if err != nil {
		return booking.Reservation{}, nil, err
	}
	price, err := booking.NewMoney(b.PriceCents, b.Currency)
	if err != nil {
		return booking.Reservation{}, nil, err
	}
	return booking.NewReservation(b.VehicleID, b.CustomerID, period, pickupLoc, dropoffLoc, price, b.Today)
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	priceCents := b.PriceCents
	return reqdto.CreateReservationRequest{
		VehicleID:       b.VehicleID,
		PickupDate:      b.PickupDate.Format("2006-01-02"),
		ReturnDate:      b.ReturnDate.Format("2006-01-02"),
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		PriceCents:      &priceCents,
		Currency:        b.Currency,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	id, _ := uuid.NewV7()
	return &queries.ReservationView{
		ID:              id,
		VehicleID:       b.VehicleID,
		CustomerID:      b.CustomerID,
		PickupDate:      b.PickupDate,
		ReturnDate:      b.ReturnDate,
		TotalDays:       5,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		Status:          booking.StatusPending.String(),
		PriceCents:      b.PriceCents,
		Currency:        b.Currency,
		CreatedAt:       b.Today,
	}
}
