package authflow

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/carelink/carelink/internal/api"
	"github.com/carelink/carelink/internal/session"
)

// State is one of the five screens of the entry flow.
type State string

const (
	StateLogin    State = "login"
	StateRegister State = "register"
	StateForgot   State = "forgot"
	StateOTP      State = "otp"
	StateReset    State = "reset"
)

// DemoOTP is the fixture one-time code. No delivery channel exists; the
// forgot/otp/reset branch is a placeholder flow, not real account recovery.
const DemoOTP = "123456"

const minPasswordLen = 6

// RegisterRequest is the payload collected on the register screen.
type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Authenticator checks credentials and produces a session. The demo
// implementation is a local fixture; the API implementation performs the
// real authentication call.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*session.Session, error)
	Register(ctx context.Context, req RegisterRequest) (*session.Session, error)
}

// Machine drives the entry flow. Every failed submission is local and
// non-fatal: the machine stays in place and Err returns the message to
// surface. Successful login or registration writes the session and records
// the role home route.
type Machine struct {
	state State
	auth  Authenticator
	store session.Store

	errMsg     string
	notice     string
	home       string
	resetEmail string
	otp        string
}

type Option func(*Machine)

// WithInitialState starts the flow on a different screen, mirroring the
// entry route's mode parameter.
func WithInitialState(s State) Option {
	return func(m *Machine) { m.state = s }
}

func New(auth Authenticator, store session.Store, opts ...Option) *Machine {
	m := &Machine{
		state: StateLogin,
		auth:  auth,
		store: store,
		otp:   DemoOTP,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current screen.
func (m *Machine) State() State { return m.state }

// Err returns the message from the last failed submission, if any.
func (m *Machine) Err() string { return m.errMsg }

// Notice returns the message from the last successful transition, if any.
func (m *Machine) Notice() string { return m.notice }

// HomeRoute returns the role home recorded by a successful login or
// registration.
func (m *Machine) HomeRoute() string { return m.home }

// loginErrorMessage maps a credential rejection, from either authenticator,
// to the canonical login message. Everything else (transport failures,
// cancelled contexts, server 5xx) keeps its own text so the user does not
// retype a password that was never the problem.
func loginErrorMessage(err error) string {
	if errors.Is(err, ErrInvalidCredentials) {
		return "Invalid email or password."
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized {
			return "Invalid email or password."
		}
		return apiErr.Message
	}
	return "Could not log in: " + err.Error()
}

// errText prefers the server's message field when the failure is an API
// error.
func errText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func (m *Machine) fail(msg string) bool {
	m.errMsg = msg
	m.notice = ""
	return false
}

func (m *Machine) advance(to State, notice string) bool {
	m.state = to
	m.errMsg = ""
	m.notice = notice
	return true
}

// GoRegister switches from login to the register screen.
func (m *Machine) GoRegister() {
	if m.state == StateLogin {
		m.advance(StateRegister, "")
	}
}

// GoLogin switches from register back to the login screen.
func (m *Machine) GoLogin() {
	if m.state == StateRegister {
		m.advance(StateLogin, "")
	}
}

// GoForgot switches from login to the forgot-password screen.
func (m *Machine) GoForgot() {
	if m.state == StateLogin {
		m.advance(StateForgot, "")
	}
}

// Back returns to login from any recovery screen.
func (m *Machine) Back() {
	switch m.state {
	case StateForgot, StateOTP, StateReset:
		m.resetEmail = ""
		m.advance(StateLogin, "")
	}
}

// SubmitLogin validates credentials. On success the session is stored and
// the machine reports the role home; on failure the machine stays in login.
func (m *Machine) SubmitLogin(ctx context.Context, email, password string) bool {
	if m.state != StateLogin {
		return m.fail("not on the login screen")
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return m.fail("Email and password are required.")
	}

	sess, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return m.fail(loginErrorMessage(err))
	}
	if err := m.store.Set(sess); err != nil {
		return m.fail("Could not save session: " + err.Error())
	}

	m.home = sess.Role.Home()
	return m.advance(StateLogin, "Logged in as "+string(sess.Role)+".")
}

// SubmitRegister creates an account. On success the session is stored, the
// user is navigated to their role home, and the flow is done.
func (m *Machine) SubmitRegister(ctx context.Context, req RegisterRequest) bool {
	if m.state != StateRegister {
		return m.fail("not on the register screen")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return m.fail("Name, email and password are required.")
	}
	if len(req.Password) < minPasswordLen {
		return m.fail("Password must be at least 6 characters.")
	}

	sess, err := m.auth.Register(ctx, req)
	if err != nil {
		return m.fail(errText(err))
	}
	if err := m.store.Set(sess); err != nil {
		return m.fail("Could not save session: " + err.Error())
	}

	m.home = sess.Role.Home()
	return m.advance(StateRegister, "Account created. Logged in as "+string(sess.Role)+".")
}

// SubmitForgot accepts any non-empty email and moves to OTP entry. Nothing
// is delivered anywhere; the fixture code is DemoOTP.
func (m *Machine) SubmitForgot(email string) bool {
	if m.state != StateForgot {
		return m.fail("not on the forgot-password screen")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return m.fail("Email is required.")
	}
	m.resetEmail = email
	return m.advance(StateOTP, "An OTP has been sent to "+email+".")
}

// SubmitOTP checks the one-time code. Correct code moves to reset; anything
// else stays in otp with an error.
func (m *Machine) SubmitOTP(code string) bool {
	if m.state != StateOTP {
		return m.fail("not on the OTP screen")
	}
	if strings.TrimSpace(code) != m.otp {
		return m.fail("Invalid OTP.")
	}
	return m.advance(StateReset, "OTP verified.")
}

// SubmitReset checks the new password pair and, on success, returns the
// flow to login.
func (m *Machine) SubmitReset(newPassword, confirm string) bool {
	if m.state != StateReset {
		return m.fail("not on the reset screen")
	}
	if newPassword == "" || confirm == "" {
		return m.fail("Both password fields are required.")
	}
	if len(newPassword) < minPasswordLen {
		return m.fail("Password must be at least 6 characters.")
	}
	if newPassword != confirm {
		return m.fail("Passwords do not match.")
	}
	m.resetEmail = ""
	return m.advance(StateLogin, "Password reset successful. Please log in.")
}
