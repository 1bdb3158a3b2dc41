package response

import (
	"time"

	"fleetbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID                 uuid.UUID  `json:"id"`
	VehicleID          uuid.UUID  `json:"vehicleId"`
	CustomerID         uuid.UUID  `json:"customerId"`
	PickupDate         string     `json:"pickupDate"`
	ReturnDate         string     `json:"returnDate"`
	TotalDays          int        `json:"totalDays"`
	PickupLocation     string     `json:"pickupLocation"`
	DropoffLocation    string     `json:"dropoffLocation"`
	Status             string     `json:"status"`
	PriceCents         int64      `json:"priceCents"`
	Currency           string     `json:"currency"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
}

type ReservationListResponse struct {
	ID         uuid.UUID `json:"id"`
	VehicleID  uuid.UUID `json:"vehicleId"`
	PickupDate string    `json:"pickupDate"`
	ReturnDate string    `json:"returnDate"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"priceCents"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AvailabilityResponse struct {
	UnavailableVehicleIDs []uuid.UUID `json:"unavailableVehicleIds"`
}

const dateLayout = "2006-01-02"

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	// Dates are formatted below; copier fills the identically named fields.
	_ = copier.Copy(&resp, view)
	resp.PickupDate = view.PickupDate.Format(dateLayout)
	resp.ReturnDate = view.ReturnDate.Format(dateLayout)
	return &resp
}

func FromReservationListItem(item *queries.ReservationListItem) *ReservationListResponse {
	var resp ReservationListResponse
	_ = copier.Copy(&resp, item)
	resp.PickupDate = item.PickupDate.Format(dateLayout)
	resp.ReturnDate = item.ReturnDate.Format(dateLayout)
	return &resp
}

func FromReservationListItems(items []*queries.ReservationListItem) []*ReservationListResponse {
	responses := make([]*ReservationListResponse, len(items))
	for i, item := range items {
		responses[i] = FromReservationListItem(item)
	}
	return responses
}

func FromUnavailableVehicles(ids []uuid.UUID) AvailabilityResponse {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return AvailabilityResponse{UnavailableVehicleIDs: ids}
}
