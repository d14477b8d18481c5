package demoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handlePatientProfile(c echo.Context) error {
	claims := claimsFrom(c)
	profile, err := s.store.PatientProfile(claims.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Address string `json:"address"`
}

func (s *Server) handleUpdatePatientProfile(c echo.Context) error {
	claims := claimsFrom(c)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := s.store.UpdatePatientProfile(claims.Email, req.Name, req.Phone, req.Age, req.Gender, req.Address); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	profile, err := s.store.PatientProfile(claims.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}
