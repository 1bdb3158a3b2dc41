// Package customers calls the platform customer service to register guests.
package customers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"fleetbook/internal/pkg/config"
	"fleetbook/internal/pkg/errs"
	"fleetbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.CustomersConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

var _ commands.CustomerRegistrar = (*Client)(nil)

type registerRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	DriverLicense string `json:"driver_license"`
}

type registerResponse struct {
	CustomerID uuid.UUID `json:"customer_id"`
}

func (c *Client) Register(ctx context.Context, details commands.GuestDetails) (uuid.UUID, error) {
	body, err := json.Marshal(registerRequest{
		FirstName:     details.FirstName,
		LastName:      details.LastName,
		Email:         details.Email,
		Phone:         details.Phone,
		DriverLicense: details.DriverLicense,
	})
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to marshal register request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/customers", bytes.NewReader(body))
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to build register request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to call customer service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return uuid.Nil, errs.New(fmt.Sprintf("customer service returned status %d", resp.StatusCode))
	}

	var registered registerResponse
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to decode register response")
	}
	if registered.CustomerID == uuid.Nil {
		return uuid.Nil, errs.New("customer service returned empty customer id")
	}
	return registered.CustomerID, nil
}
