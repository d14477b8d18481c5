package authflow

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/carelink/carelink/internal/session"
)

// ErrInvalidCredentials is returned for any unrecognized email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// demoPause imitates the network round-trip of a real credential check so
// the demo flow feels like the API flow.
const demoPause = 300 * time.Millisecond

type demoUser struct {
	password string
	role     session.Role
	name     string
}

// demoUsers are placeholder fixtures standing in for real accounts. They
// exist so the client can be exercised without a backend and must never be
// the auth path in production (config.Validate enforces this).
var demoUsers = map[string]demoUser{
	"admin@gmail.com":      {password: "password123", role: session.RoleAdmin, name: "Admin User"},
	"doctor@gmail.com":     {password: "password123", role: session.RoleDoctor, name: "Dr. Sarah Ahmed"},
	"customer@gmail.com":   {password: "password123", role: session.RoleCustomer, name: "John Carter"},
	"pharmacist@gmail.com": {password: "password123", role: session.RolePharmacist, name: "Paula Mensah"},
}

// DemoAuthenticator validates against the fixture accounts without any
// network call.
type DemoAuthenticator struct {
	// Pause overrides the simulated delay; zero means demoPause. Tests
	// set it negative to skip the pause entirely.
	Pause time.Duration
}

func (d *DemoAuthenticator) pause(ctx context.Context) error {
	p := d.Pause
	if p == 0 {
		p = demoPause
	}
	if p < 0 {
		return nil
	}
	select {
	case <-time.After(p):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *DemoAuthenticator) Login(ctx context.Context, email, password string) (*session.Session, error) {
	if err := d.pause(ctx); err != nil {
		return nil, err
	}
	u, ok := demoUsers[email]
	if !ok || u.password != password {
		return nil, ErrInvalidCredentials
	}
	return &session.Session{
		Token: demoToken(),
		Role:  u.role,
		Email: email,
		User:  session.User{ID: "demo-" + string(u.role), Name: u.name},
	}, nil
}

func (d *DemoAuthenticator) Register(ctx context.Context, req RegisterRequest) (*session.Session, error) {
	if err := d.pause(ctx); err != nil {
		return nil, err
	}
	if _, exists := demoUsers[req.Email]; exists {
		return nil, fmt.Errorf("an account with this email already exists")
	}
	return &session.Session{
		Token: demoToken(),
		Role:  session.RoleCustomer,
		Email: req.Email,
		User:  session.User{ID: "demo-new", Name: req.Name, Phone: req.Phone},
	}, nil
}

func demoToken() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return "demo-" + hex.EncodeToString(b[:])
}
