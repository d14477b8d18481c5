package prescriptions

import (
	"context"
	"fmt"
	"io"

	"github.com/carelink/carelink/internal/api"
)

const basePath = "/api/appointment/prescriptions/"

type Client struct {
	api *api.Client
}

func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

func (c *Client) List(ctx context.Context) ([]Prescription, error) {
	var resp struct {
		Data []Prescription `json:"data"`
	}
	if err := c.api.Get(ctx, basePath, nil, &resp); err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) Get(ctx context.Context, id string) (*Prescription, error) {
	var p Prescription
	if err := c.api.Get(ctx, basePath+id+"/", nil, &p); err != nil {
		return nil, fmt.Errorf("get prescription %s: %w", id, err)
	}
	return &p, nil
}

// Download streams the server-rendered prescription document into w.
func (c *Client) Download(ctx context.Context, id string, w io.Writer) (int64, error) {
	n, err := c.api.GetBlob(ctx, basePath+id+"/download/", w)
	if err != nil {
		return n, fmt.Errorf("download prescription %s: %w", id, err)
	}
	return n, nil
}
