package request

import (
	"strings"
	"time"

	"fleetbook/internal/usecase/commands"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CreateReservationRequest struct {
	VehicleID       uuid.UUID `json:"vehicle_id" binding:"required"`
	PickupDate      string    `json:"pickup_date" binding:"required"`
	ReturnDate      string    `json:"return_date" binding:"required"`
	PickupLocation  string    `json:"pickup_location" binding:"required"`
	DropoffLocation string    `json:"dropoff_location" binding:"required"`
	// PriceCents carries a pre-agreed total; omit to have the pricing
	// service quote the booking.
	PriceCents *int64 `json:"price_cents,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

func (r CreateReservationRequest) ToParams(customerID uuid.UUID) (commands.CreateReservationParams, error) {
	pickup, err := time.Parse(dateLayout, r.PickupDate)
	if err != nil {
		return commands.CreateReservationParams{}, err
	}
	ret, err := time.Parse(dateLayout, r.ReturnDate)
	if err != nil {
		return commands.CreateReservationParams{}, err
	}

	return commands.CreateReservationParams{
		VehicleID:       r.VehicleID,
		CustomerID:      customerID,
		PickupDate:      pickup,
		ReturnDate:      ret,
		PickupLocation:  r.PickupLocation,
		DropoffLocation: r.DropoffLocation,
		PriceCents:      r.PriceCents,
		Currency:        r.Currency,
	}, nil
}

type GuestDetailsRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	DriverLicense string `json:"driver_license" binding:"required"`
}

type CreateGuestReservationRequest struct {
	Guest       GuestDetailsRequest      `json:"guest" binding:"required"`
	Reservation CreateReservationRequest `json:"reservation" binding:"required"`
}

func (r CreateGuestReservationRequest) ToParams() (commands.CreateGuestReservationParams, error) {
	// CustomerID is assigned after guest registration
	reservation, err := r.Reservation.ToParams(uuid.Nil)
	if err != nil {
		return commands.CreateGuestReservationParams{}, err
	}

	return commands.CreateGuestReservationParams{
		Reservation: reservation,
		Guest: commands.GuestDetails{
			FirstName:     strings.TrimSpace(r.Guest.FirstName),
			LastName:      strings.TrimSpace(r.Guest.LastName),
			Email:         strings.TrimSpace(r.Guest.Email),
			Phone:         strings.TrimSpace(r.Guest.Phone),
			DriverLicense: strings.TrimSpace(r.Guest.DriverLicense),
		},
	}, nil
}

type CancelReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}

type AvailabilityRequest struct {
	PickupDate string `form:"pickup_date" binding:"required"`
	ReturnDate string `form:"return_date" binding:"required"`
}

func (r AvailabilityRequest) Dates() (pickup, ret time.Time, err error) {
	pickup, err = time.Parse(dateLayout, r.PickupDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	ret, err = time.Parse(dateLayout, r.ReturnDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return pickup, ret, nil
}
