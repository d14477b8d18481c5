package patients

import (
	"context"
	"fmt"

	"github.com/carelink/carelink/internal/api"
)

const profilePath = "/api/user/profile/"

// Profile is the patient's own record, replaced wholesale on update.
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Age     int    `json:"age,omitempty"`
	Gender  string `json:"gender,omitempty"`
	Address string `json:"address,omitempty"`
}

type Client struct {
	api *api.Client
}

func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.api.Get(ctx, profilePath, nil, &p); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, p Profile) (*Profile, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	var updated Profile
	if err := c.api.Put(ctx, profilePath, p, &updated); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &updated, nil
}
