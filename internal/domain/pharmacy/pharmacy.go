package pharmacy

import (
	"context"
	"fmt"

	"github.com/carelink/carelink/internal/api"
)

// Product is one inventory line of the pharmacy summary. Read-only here.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Stock    int     `json:"stock"`
	Price    float64 `json:"price"`
	Expiry   string  `json:"expiry,omitempty"`
}

// LowStock flags lines the pharmacist dashboard highlights.
func (p Product) LowStock() bool { return p.Stock < 10 }

type Client struct {
	api *api.Client
}

func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var resp struct {
		Data []Product `json:"data"`
	}
	if err := c.api.Get(ctx, "/api/pharmacy/products/", nil, &resp); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return resp.Data, nil
}
