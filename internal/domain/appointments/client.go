package appointments

import (
	"context"
	"fmt"
	"net/url"

	"github.com/carelink/carelink/internal/api"
)

const basePath = "/api/appointment/appointments/"

// Client fetches appointments and triggers the one mutating action the
// appointment views expose: cancellation.
type Client struct {
	api *api.Client
}

func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

// List fetches the caller's appointments, optionally filtered by status.
// Every call re-fetches; nothing is cached across invocations.
func (c *Client) List(ctx context.Context, status Status) ([]Appointment, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {string(status)}}
	}

	var resp struct {
		Data []Appointment `json:"data"`
	}
	if err := c.api.Get(ctx, basePath, query, &resp); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return resp.Data, nil
}

// Get fetches a single appointment.
func (c *Client) Get(ctx context.Context, id string) (*Appointment, error) {
	var appt Appointment
	if err := c.api.Get(ctx, basePath+id+"/", nil, &appt); err != nil {
		return nil, fmt.Errorf("get appointment %s: %w", id, err)
	}
	return &appt, nil
}

// Cancel posts a cancel request with an empty body and returns the
// server's fee/refund computation. The caller decides navigation: on
// Success the list view is re-entered, on failure the detail view stays.
func (c *Client) Cancel(ctx context.Context, id string) (*CancelResult, error) {
	var result CancelResult
	if err := c.api.Post(ctx, basePath+id+"/cancel/", nil, &result); err != nil {
		return nil, fmt.Errorf("cancel appointment %s: %w", id, err)
	}
	return &result, nil
}
