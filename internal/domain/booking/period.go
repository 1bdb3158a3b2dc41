package booking

import "time"

// BookingPeriod is the inclusive [pickupDate, returnDate] calendar-date range
// of a rental. Both bounds are normalized to UTC midnight so comparisons are
// date comparisons, never timestamp comparisons.
type BookingPeriod struct {
	pickupDate time.Time
	returnDate time.Time
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewBookingPeriod validates and constructs a period. The return date must be
// strictly after the pickup date, and the pickup date must not be in the past
// relative to the caller's today.
func NewBookingPeriod(pickupDate, returnDate, today time.Time) (BookingPeriod, error) {
	pickup := DateOf(pickupDate)
	ret := DateOf(returnDate)

	if !ret.After(pickup) {
		return BookingPeriod{}, invalidArgument("return_date", "must be after pickup date")
	}
	if pickup.Before(DateOf(today)) {
		return BookingPeriod{}, invalidArgument("pickup_date", "must not be in the past")
	}

	return BookingPeriod{pickupDate: pickup, returnDate: ret}, nil
}

// ReconstructBookingPeriod rebuilds a period from storage without re-running
// the not-in-the-past check, which only applies at creation time.
func ReconstructBookingPeriod(pickupDate, returnDate time.Time) BookingPeriod {
	return BookingPeriod{pickupDate: DateOf(pickupDate), returnDate: DateOf(returnDate)}
}

func (p BookingPeriod) PickupDate() time.Time {
	return p.pickupDate
}

func (p BookingPeriod) ReturnDate() time.Time {
	return p.returnDate
}

func (p BookingPeriod) IsZero() bool {
	return p.pickupDate.IsZero() && p.returnDate.IsZero()
}

// TotalDays is the inclusive day count of the period.
func (p BookingPeriod) TotalDays() int {
	return int(p.returnDate.Sub(p.pickupDate).Hours()/24) + 1
}

// OverlapsWith reports whether two closed date intervals share at least one
// day. This is the single overlap predicate for the whole system; the SQL
// availability filter mirrors it and must never diverge.
func (p BookingPeriod) OverlapsWith(other BookingPeriod) bool {
	return !p.pickupDate.After(other.returnDate) && !p.returnDate.Before(other.pickupDate)
}
