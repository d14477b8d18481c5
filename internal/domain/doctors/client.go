package doctors

import (
	"context"
	"fmt"

	"github.com/carelink/carelink/internal/api"
)

type Client struct {
	api *api.Client
}

func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

// -- Admin operations --

func (c *Client) Create(ctx context.Context, req CreateDoctorRequest) (*Doctor, error) {
	var d Doctor
	if err := c.api.Post(ctx, "/api/doctor/doctors/create/", req, &d); err != nil {
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	return &d, nil
}

func (c *Client) List(ctx context.Context) ([]Doctor, error) {
	var resp struct {
		Data []Doctor `json:"data"`
	}
	if err := c.api.Get(ctx, "/api/doctor/doctors/", nil, &resp); err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) Get(ctx context.Context, id string) (*Doctor, error) {
	var d Doctor
	if err := c.api.Get(ctx, "/api/doctor/doctors/"+id+"/", nil, &d); err != nil {
		return nil, fmt.Errorf("get doctor %s: %w", id, err)
	}
	return &d, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, "/api/doctor/doctors/"+id+"/"); err != nil {
		return fmt.Errorf("delete doctor %s: %w", id, err)
	}
	return nil
}

// -- Doctor self profile --

func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.api.Get(ctx, "/api/doctor/doctor/profile/", nil, &p); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile replaces the whole profile and returns the server's copy,
// including the recomputed is_profile_complete flag.
func (c *Client) UpdateProfile(ctx context.Context, p Profile) (*Profile, error) {
	var updated Profile
	if err := c.api.Put(ctx, "/api/doctor/doctor/profile/", p, &updated); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &updated, nil
}

// -- Public profile and reviews --

func (c *Client) PublicProfile(ctx context.Context, id string) (*PublicProfile, error) {
	var p PublicProfile
	if err := c.api.Get(ctx, "/api/doctor/"+id+"/", nil, &p); err != nil {
		return nil, fmt.Errorf("get doctor %s: %w", id, err)
	}
	return &p, nil
}

func (c *Client) ListReviews(ctx context.Context, id string) ([]Review, error) {
	var resp struct {
		Data []Review `json:"data"`
	}
	if err := c.api.Get(ctx, "/api/doctor/"+id+"/reviews/", nil, &resp); err != nil {
		return nil, fmt.Errorf("list reviews for doctor %s: %w", id, err)
	}
	return resp.Data, nil
}

func (c *Client) SubmitReview(ctx context.Context, id string, req SubmitReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	var r Review
	if err := c.api.Post(ctx, "/api/doctor/"+id+"/reviews/", req, &r); err != nil {
		return nil, fmt.Errorf("submit review for doctor %s: %w", id, err)
	}
	return &r, nil
}
