package authflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/carelink/carelink/internal/api"
	"github.com/carelink/carelink/internal/session"
)

// APIAuthenticator performs real authentication calls against the backend.
// This replaces the embedded demo credential check for any deployment that
// talks to an actual server.
type APIAuthenticator struct {
	API *api.Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	Role  string       `json:"role"`
	Email string       `json:"email"`
	User  session.User `json:"user"`
}

func (r *authResponse) session() (*session.Session, error) {
	role, err := session.ParseRole(r.Role)
	if err != nil {
		return nil, fmt.Errorf("server returned %w", err)
	}
	if r.Token == "" {
		return nil, errors.New("server returned an empty token")
	}
	return &session.Session{Token: r.Token, Role: role, Email: r.Email, User: r.User}, nil
}

// Login submits the credentials over the unauthenticated path. A rejection
// comes back as an *api.APIError with the server's message and must never
// disturb whatever session is already stored.
func (a *APIAuthenticator) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var resp authResponse
	err := a.API.PostPublic(ctx, "/api/user/login/", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.session()
}

func (a *APIAuthenticator) Register(ctx context.Context, req RegisterRequest) (*session.Session, error) {
	var resp authResponse
	body := registerRequest{Name: req.Name, Email: req.Email, Phone: req.Phone, Password: req.Password}
	err := a.API.PostPublic(ctx, "/api/user/register/", body, &resp)
	if err != nil {
		return nil, err
	}
	return resp.session()
}
