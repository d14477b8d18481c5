package demoapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carelink/carelink/internal/domain/appointments"
	"github.com/carelink/carelink/internal/session"
	"github.com/carelink/carelink/pkg/pagination"
)

func (s *Server) handleListAppointments(c echo.Context) error {
	claims := claimsFrom(c)
	role, _ := session.ParseRole(claims.Role)
	status := appointments.Status(c.QueryParam("status"))

	all := s.store.AppointmentsFor(claims.Email, role, status)

	params := pagination.FromContext(c)
	lo, hi := params.Slice(len(all))
	return c.JSON(http.StatusOK, pagination.NewResponse(all[lo:hi], len(all), params.Limit, params.Offset))
}

func (s *Server) handleGetAppointment(c echo.Context) error {
	claims := claimsFrom(c)
	role, _ := session.ParseRole(claims.Role)

	a, ok := s.store.AppointmentByID(c.Param("id"))
	if !ok || (role != session.RoleAdmin && role != session.RoleDoctor && a.PatientEmail != claims.Email) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a.Appointment)
}

func (s *Server) handleCancelAppointment(c echo.Context) error {
	claims := claimsFrom(c)
	role, _ := session.ParseRole(claims.Role)

	fee, refund, err := s.store.CancelAppointment(c.Param("id"), claims.Email, role)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		// The appointment exists but is not cancellable; report the
		// outcome in the body rather than as a transport error.
		return c.JSON(http.StatusOK, appointments.CancelResult{
			Success: false,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, appointments.CancelResult{
		Success:      true,
		CompanyFee:   fee,
		RefundAmount: refund,
		Message:      "Appointment cancelled. The refund will be processed to your original payment method.",
	})
}

func (s *Server) handleListPrescriptions(c echo.Context) error {
	claims := claimsFrom(c)
	all := s.store.PrescriptionsFor(claims.Email)

	params := pagination.FromContext(c)
	lo, hi := params.Slice(len(all))
	return c.JSON(http.StatusOK, pagination.NewResponse(all[lo:hi], len(all), params.Limit, params.Offset))
}

func (s *Server) handleGetPrescription(c echo.Context) error {
	claims := claimsFrom(c)
	p, ok := s.store.PrescriptionByID(c.Param("id"), claims.Email)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleDownloadPrescription(c echo.Context) error {
	claims := claimsFrom(c)
	p, ok := s.store.PrescriptionByID(c.Param("id"), claims.Email)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PRESCRIPTION %s\n", p.ID)
	fmt.Fprintf(&b, "Doctor: %s (%s)\n", p.DoctorName, p.DoctorSpecialty)
	fmt.Fprintf(&b, "Date: %s %s\n", p.AppointmentDate, p.AppointmentTime)
	fmt.Fprintf(&b, "Diagnosis: %s\n\nMedications:\n", p.Diagnosis)
	for _, m := range p.Medications {
		fmt.Fprintf(&b, "  - %s", m.Name)
		if m.Dosage != "" {
			fmt.Fprintf(&b, " %s", m.Dosage)
		}
		if m.Duration != "" {
			fmt.Fprintf(&b, " for %s", m.Duration)
		}
		if m.Instructions != "" {
			fmt.Fprintf(&b, " (%s)", m.Instructions)
		}
		b.WriteString("\n")
	}
	if p.Instructions != "" {
		fmt.Fprintf(&b, "\nInstructions: %s\n", p.Instructions)
	}
	if p.FollowUpDate != "" {
		fmt.Fprintf(&b, "Follow-up: %s\n", p.FollowUpDate)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=prescription-%s.txt", p.ID))
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(b.String()))
}

func (s *Server) handleOverview(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Overview())
}

func (s *Server) handleStats(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	if days <= 0 {
		days = 7
	}
	return c.JSON(http.StatusOK, s.store.Stats(days, time.Now()))
}
