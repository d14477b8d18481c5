package analytics

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/carelink/carelink/internal/api"
)

// Overview is the admin dashboard aggregate, computed server-side.
type Overview struct {
	TotalAppointments int            `json:"total_appointments"`
	TotalDoctors      int            `json:"total_doctors"`
	TotalPatients     int            `json:"total_patients"`
	TotalRevenue      float64        `json:"total_revenue"`
	StatusCounts      map[string]int `json:"status_counts"`
}

// StatPoint is one day of the stats window.
type StatPoint struct {
	Date         string  `json:"date"`
	Appointments int     `json:"appointments"`
	Revenue      float64 `json:"revenue"`
}

// Stats is the admin per-day breakdown over a trailing window.
type Stats struct {
	Days   int         `json:"days"`
	Points []StatPoint `json:"points"`
}

type Client struct {
	api *api.Client
}

func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

func (c *Client) Overview(ctx context.Context) (*Overview, error) {
	var o Overview
	if err := c.api.Get(ctx, "/api/appointment/overview/", nil, &o); err != nil {
		return nil, fmt.Errorf("get overview: %w", err)
	}
	return &o, nil
}

func (c *Client) Stats(ctx context.Context, days int) (*Stats, error) {
	if days <= 0 {
		days = 7
	}
	query := url.Values{"days": {strconv.Itoa(days)}}

	var s Stats
	if err := c.api.Get(ctx, "/api/appointment/stats/", query, &s); err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return &s, nil
}
