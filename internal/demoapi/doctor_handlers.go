package demoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carelink/carelink/internal/domain/doctors"
	"github.com/carelink/carelink/internal/domain/tips"
	"github.com/carelink/carelink/pkg/pagination"
)

// -- Admin doctor management --

func (s *Server) handleCreateDoctor(c echo.Context) error {
	var req doctors.CreateDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email, and a password of at least 6 characters are required")
	}

	d, err := s.store.CreateDoctor(req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, d.Doctor)
}

func (s *Server) handleListDoctors(c echo.Context) error {
	all := s.store.Doctors()
	params := pagination.FromContext(c)
	lo, hi := params.Slice(len(all))
	return c.JSON(http.StatusOK, pagination.NewResponse(all[lo:hi], len(all), params.Limit, params.Offset))
}

func (s *Server) handleGetDoctor(c echo.Context) error {
	d, ok := s.store.DoctorByID(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}
	return c.JSON(http.StatusOK, d.Doctor)
}

func (s *Server) handleDeleteDoctor(c echo.Context) error {
	if err := s.store.DeleteDoctor(c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Doctor self profile --

func (s *Server) handleDoctorProfile(c echo.Context) error {
	claims := claimsFrom(c)
	p, err := s.store.DoctorProfile(claims.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleUpdateDoctorProfile(c echo.Context) error {
	claims := claimsFrom(c)

	var p doctors.Profile
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	updated, err := s.store.UpdateDoctorProfile(claims.Email, p)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

// -- Public profile and reviews --

func (s *Server) handlePublicDoctorProfile(c echo.Context) error {
	p, err := s.store.PublicDoctorProfile(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleListReviews(c echo.Context) error {
	if _, ok := s.store.DoctorByID(c.Param("id")); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}
	all := s.store.ReviewsFor(c.Param("id"))
	params := pagination.FromContext(c)
	lo, hi := params.Slice(len(all))
	return c.JSON(http.StatusOK, pagination.NewResponse(all[lo:hi], len(all), params.Limit, params.Offset))
}

func (s *Server) handleSubmitReview(c echo.Context) error {
	claims := claimsFrom(c)

	var req doctors.SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	r, err := s.store.AddReview(c.Param("id"), claims.Name, req.Rating, req.Comment)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

// -- Health tips --

func (s *Server) handleListTips(c echo.Context) error {
	all := s.store.Tips()
	params := pagination.FromContext(c)
	lo, hi := params.Slice(len(all))
	return c.JSON(http.StatusOK, pagination.NewResponse(all[lo:hi], len(all), params.Limit, params.Offset))
}

func (s *Server) handleGetTip(c echo.Context) error {
	t, ok := s.store.TipByID(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "tip not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleCreateTip(c echo.Context) error {
	claims := claimsFrom(c)

	var req tips.WriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	t, err := s.store.CreateTip(claims.Email, claims.Name, req.Title, req.Body, req.Tags)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) handleUpdateTip(c echo.Context) error {
	claims := claimsFrom(c)

	var req tips.WriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	t, err := s.store.UpdateTip(c.Param("id"), claims.Email, req.Title, req.Body, req.Tags)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case strings.Contains(err.Error(), "author"):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusOK, t)
}
