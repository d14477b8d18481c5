package session

import (
	"errors"
	"fmt"
)

// Role gates which command sections are reachable after login.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleDoctor     Role = "doctor"
	RoleAdmin      Role = "admin"
	RolePharmacist Role = "pharmacist"
)

// ParseRole validates a role string received from the API or stored on disk.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleDoctor, RoleAdmin, RolePharmacist:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Valid reports whether the role is one of the four known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Home returns the section route a user lands on after login.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleDoctor:
		return "/doctor"
	case RolePharmacist:
		return "/pharmacist"
	default:
		return "/customer"
	}
}

// EntryRoute is where unauthenticated users are sent.
const EntryRoute = "/"

// User is the identity payload returned at login and cached with the token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Session is the client-held record of the authenticated identity.
// Exactly one session exists per store; Set replaces any previous one.
type Session struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
	Email string `json:"email"`
	User  User   `json:"user"`
}

// ErrNoSession is returned by Store.Current when nobody is logged in.
var ErrNoSession = errors.New("no active session")

// Store holds the session for the duration of a login. Clear must be
// idempotent: a 401 can tear the session down more than once.
type Store interface {
	Current() (*Session, error)
	Set(s *Session) error
	Clear() error
}
