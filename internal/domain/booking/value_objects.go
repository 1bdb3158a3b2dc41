package booking

import "strings"

// Money is a currency amount in minor units. Set once at reservation creation
// and never mutated; price changes require a new reservation.
type Money struct {
	cents    int64
	currency string
}

func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, invalidArgument("price", "must not be negative")
	}
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if len(cur) != 3 {
		return Money{}, invalidArgument("currency", "must be a 3-letter ISO code")
	}
	return Money{cents: cents, currency: cur}, nil
}

// ReconstructMoney rebuilds a stored amount without validation.
func ReconstructMoney(cents int64, currency string) Money {
	return Money{cents: cents, currency: currency}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Currency() string {
	return m.currency
}

// LocationCode is a branch/station identifier such as "MUC-AIRPORT".
type LocationCode struct {
	value string
}

func NewLocationCode(value string) (LocationCode, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return LocationCode{}, invalidArgument("location", "must not be empty")
	}
	return LocationCode{value: trimmed}, nil
}

// ReconstructLocationCode rebuilds a stored code without validation.
func ReconstructLocationCode(value string) LocationCode {
	return LocationCode{value: value}
}

func (l LocationCode) String() string {
	return l.value
}
