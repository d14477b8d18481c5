package tips

import (
	"context"
	"fmt"

	"github.com/carelink/carelink/internal/api"
)

const basePath = "/api/doctor/tips/"

// HealthTip is public content. Everyone reads; doctors create and edit via
// full-document writes.
type HealthTip struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Tags       []string `json:"tags,omitempty"`
	DoctorName string   `json:"doctor_name"`
	CreatedAt  string   `json:"created_at"`
	Views      int      `json:"views"`
}

// WriteRequest is the full document sent on create and update.
type WriteRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags,omitempty"`
}

type Client struct {
	api *api.Client
}

func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

func (c *Client) List(ctx context.Context) ([]HealthTip, error) {
	var resp struct {
		Data []HealthTip `json:"data"`
	}
	if err := c.api.Get(ctx, basePath, nil, &resp); err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) Get(ctx context.Context, id string) (*HealthTip, error) {
	var tip HealthTip
	if err := c.api.Get(ctx, basePath+id+"/", nil, &tip); err != nil {
		return nil, fmt.Errorf("get tip %s: %w", id, err)
	}
	return &tip, nil
}

func (c *Client) Create(ctx context.Context, req WriteRequest) (*HealthTip, error) {
	if req.Title == "" || req.Body == "" {
		return nil, fmt.Errorf("title and body are required")
	}
	var tip HealthTip
	if err := c.api.Post(ctx, basePath, req, &tip); err != nil {
		return nil, fmt.Errorf("create tip: %w", err)
	}
	return &tip, nil
}

func (c *Client) Update(ctx context.Context, id string, req WriteRequest) (*HealthTip, error) {
	if req.Title == "" || req.Body == "" {
		return nil, fmt.Errorf("title and body are required")
	}
	var tip HealthTip
	if err := c.api.Put(ctx, basePath+id+"/", req, &tip); err != nil {
		return nil, fmt.Errorf("update tip %s: %w", id, err)
	}
	return &tip, nil
}
