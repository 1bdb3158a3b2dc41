// Package pricing calls the platform pricing service for rental quotes.
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"fleetbook/internal/domain/booking"
	"fleetbook/internal/domain/vehicle"
	"fleetbook/internal/pkg/config"
	"fleetbook/internal/pkg/errs"
	"fleetbook/internal/usecase/commands"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.PricingConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

var _ commands.PricingService = (*Client)(nil)

type quoteRequest struct {
	Category       string `json:"category"`
	PickupDate     string `json:"pickup_date"`
	ReturnDate     string `json:"return_date"`
	TotalDays      int    `json:"total_days"`
	PickupLocation string `json:"pickup_location"`
}

type quoteResponse struct {
	TotalCents int64  `json:"total_cents"`
	Currency   string `json:"currency"`
}

func (c *Client) Quote(ctx context.Context, category vehicle.Category, period booking.BookingPeriod, pickupLocation string) (booking.Money, error) {
	body, err := json.Marshal(quoteRequest{
		Category:       category.String(),
		PickupDate:     period.PickupDate().Format("2006-01-02"),
		ReturnDate:     period.ReturnDate().Format("2006-01-02"),
		TotalDays:      period.TotalDays(),
		PickupLocation: pickupLocation,
	})
	if err != nil {
		return booking.Money{}, errs.Wrap(err, "failed to marshal quote request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/quotes", bytes.NewReader(body))
	if err != nil {
		return booking.Money{}, errs.Wrap(err, "failed to build quote request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return booking.Money{}, errs.Wrap(err, "failed to call pricing service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return booking.Money{}, errs.New(fmt.Sprintf("pricing service returned status %d", resp.StatusCode))
	}

	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return booking.Money{}, errs.Wrap(err, "failed to decode quote response")
	}
	return booking.NewMoney(quote.TotalCents, quote.Currency)
}
