package demoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carelink/carelink/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	Role  string       `json:"role"`
	Email string       `json:"email"`
	User  session.User `json:"user"`
}

func (s *Server) authResponseFor(u *userRecord) (*authResponse, error) {
	token, err := MintToken(s.secret, u, tokenTTL)
	if err != nil {
		return nil, err
	}
	return &authResponse{
		Token: token,
		Role:  string(u.Role),
		Email: u.Email,
		User:  session.User{ID: u.ID, Name: u.Name, Phone: u.Phone},
	}, nil
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	u, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password.")
	}

	resp, err := s.authResponseFor(u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email, and a password of at least 6 characters are required")
	}
	if !strings.Contains(req.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "please enter a valid email address")
	}

	// Self-service registration only creates customer accounts. Doctors
	// are onboarded by an admin, pharmacists are provisioned.
	u, err := s.store.CreateUser(req.Name, req.Email, req.Phone, req.Password, session.RoleCustomer)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := s.authResponseFor(u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}
	return c.JSON(http.StatusCreated, resp)
}
