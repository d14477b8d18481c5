package demoapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/carelink/carelink/internal/domain/appointments"
	"github.com/carelink/carelink/internal/domain/doctors"
	"github.com/carelink/carelink/internal/domain/pharmacy"
	"github.com/carelink/carelink/internal/domain/prescriptions"
	"github.com/carelink/carelink/internal/domain/tips"
	"github.com/carelink/carelink/internal/session"
)

// companyFeeRate is the retained share of the consultation fee on
// cancellation. This is the authoritative computation; clients only quote
// it informally.
const companyFeeRate = 0.20

type userRecord struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash []byte
	Role         session.Role
}

type doctorRecord struct {
	doctors.Doctor
	Profile doctors.Profile
}

type appointmentRecord struct {
	appointments.Appointment
	PatientEmail string
	DoctorID     string
	When         time.Time
}

type reviewRecord struct {
	doctors.Review
	DoctorID string
}

type prescriptionRecord struct {
	prescriptions.Prescription
	PatientEmail string
}

type tipRecord struct {
	tips.HealthTip
	DoctorEmail string
}

// patientExtra holds the profile fields that live outside the account
// record.
type patientExtra struct {
	Age     int
	Gender  string
	Address string
}

// Store is the demo server's seeded in-memory state. It stands in for the
// real platform database and can be reset back to fixtures at any time.
type Store struct {
	mu            sync.RWMutex
	users         map[string]*userRecord // by email
	doctors       []*doctorRecord
	appointments  []*appointmentRecord
	prescriptions []*prescriptionRecord
	reviews       []*reviewRecord
	tips          []*tipRecord
	products      []pharmacy.Product
	patients      map[string]*patientExtra
}

func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset drops all state and reloads the fixtures.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedLocked()
}

// -- Users --

func (s *Store) Authenticate(email, password string) (*userRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(email)]
	if ok && bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil {
		return u, nil
	}
	return nil, fmt.Errorf("invalid email or password")
}

func (s *Store) CreateUser(name, email, phone, password string, role session.Role) (*userRecord, error) {
	email = strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return nil, fmt.Errorf("an account with this email already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &userRecord{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
	}
	s.users[email] = u
	return u, nil
}

func (s *Store) UserByEmail(email string) (*userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[strings.ToLower(email)]
	return u, ok
}

// -- Patient profiles --

func (s *Store) PatientProfile(email string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	extra := s.patients[u.Email]
	profile := map[string]interface{}{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
	}
	if extra != nil {
		profile["age"] = extra.Age
		profile["gender"] = extra.Gender
		profile["address"] = extra.Address
	}
	return profile, nil
}

func (s *Store) UpdatePatientProfile(email, name, phone string, age int, gender, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return fmt.Errorf("user not found")
	}
	if name != "" {
		u.Name = name
	}
	u.Phone = phone
	s.patients[u.Email] = &patientExtra{Age: age, Gender: gender, Address: address}
	return nil
}

// -- Doctors --

func (s *Store) Doctors() []doctors.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]doctors.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		out = append(out, d.Doctor)
	}
	return out
}

func (s *Store) DoctorByID(id string) (*doctorRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doctorByIDLocked(id)
}

func (s *Store) doctorByIDLocked(id string) (*doctorRecord, bool) {
	for _, d := range s.doctors {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

func (s *Store) CreateDoctor(name, email, phone, password string) (*doctorRecord, error) {
	u, err := s.CreateUser(name, email, phone, password, session.RoleDoctor)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := &doctorRecord{
		Doctor: doctors.Doctor{
			ID:     uuid.NewString(),
			Name:   u.Name,
			Email:  u.Email,
			Phone:  u.Phone,
			Active: true,
		},
	}
	s.doctors = append(s.doctors, d)
	return d, nil
}

func (s *Store) DeleteDoctor(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range s.doctors {
		if d.ID == id {
			delete(s.users, d.Email)
			s.doctors = append(s.doctors[:i], s.doctors[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("doctor not found")
}

func (s *Store) DoctorProfile(email string) (*doctors.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.doctors {
		if d.Email == strings.ToLower(email) {
			p := d.Profile
			return &p, nil
		}
	}
	return nil, fmt.Errorf("doctor not found")
}

// UpdateDoctorProfile replaces the profile wholesale and recomputes the
// completion flag, which gates the doctor dashboard.
func (s *Store) UpdateDoctorProfile(email string, p doctors.Profile) (*doctors.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.doctors {
		if d.Email == strings.ToLower(email) {
			p.IsProfileComplete = p.Specialty != "" &&
				p.Experience > 0 &&
				p.Qualification != "" &&
				p.LicenseNumber != "" &&
				len(p.AvailableDays) > 0 &&
				len(p.AvailableTimeSlots) > 0 &&
				p.ConsultationFee > 0
			d.Profile = p
			d.Specialty = p.Specialty
			out := p
			return &out, nil
		}
	}
	return nil, fmt.Errorf("doctor not found")
}

func (s *Store) PublicDoctorProfile(id string) (*doctors.PublicProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.doctorByIDLocked(id)
	if !ok {
		return nil, fmt.Errorf("doctor not found")
	}

	sum, count := 0, 0
	for _, r := range s.reviews {
		if r.DoctorID == id {
			sum += r.Rating
			count++
		}
	}
	rating := 0.0
	if count > 0 {
		rating = float64(sum) / float64(count)
	}

	return &doctors.PublicProfile{
		ID:              d.ID,
		Name:            d.Name,
		Specialty:       d.Profile.Specialty,
		Experience:      d.Profile.Experience,
		Qualification:   d.Profile.Qualification,
		Bio:             d.Profile.Bio,
		ConsultationFee: d.Profile.ConsultationFee,
		Rating:          rating,
		TotalReviews:    count,
	}, nil
}

// -- Reviews --

func (s *Store) ReviewsFor(doctorID string) []doctors.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []doctors.Review
	for _, r := range s.reviews {
		if r.DoctorID == doctorID {
			out = append(out, r.Review)
		}
	}
	return out
}

func (s *Store) AddReview(doctorID, userName string, rating int, comment string) (*doctors.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doctorByIDLocked(doctorID); !ok {
		return nil, fmt.Errorf("doctor not found")
	}
	r := &reviewRecord{
		Review: doctors.Review{
			ID:        uuid.NewString(),
			UserName:  userName,
			Rating:    rating,
			Comment:   comment,
			CreatedAt: time.Now().Format("2006-01-02"),
		},
		DoctorID: doctorID,
	}
	s.reviews = append(s.reviews, r)
	out := r.Review
	return &out, nil
}

// -- Appointments --

// AppointmentsFor returns what the caller is allowed to see: customers
// their own bookings, doctors their own schedule, admins everything.
func (s *Store) AppointmentsFor(email string, role session.Role, status appointments.Status) []appointments.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doctorID string
	if role == session.RoleDoctor {
		for _, d := range s.doctors {
			if d.Email == strings.ToLower(email) {
				doctorID = d.ID
			}
		}
	}

	var out []appointments.Appointment
	for _, a := range s.appointments {
		switch role {
		case session.RoleAdmin:
		case session.RoleDoctor:
			if a.DoctorID != doctorID {
				continue
			}
		default:
			if a.PatientEmail != strings.ToLower(email) {
				continue
			}
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a.Appointment)
	}
	return out
}

func (s *Store) AppointmentByID(id string) (*appointmentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.appointments {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// CancelAppointment performs the status transition and the fee split. Only
// pending or confirmed appointments qualify.
func (s *Store) CancelAppointment(id, email string, role session.Role) (companyFee, refund float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.appointments {
		if a.ID != id {
			continue
		}
		if role != session.RoleAdmin && a.PatientEmail != strings.ToLower(email) {
			return 0, 0, fmt.Errorf("appointment not found")
		}
		if !a.Status.CanCancel() {
			return 0, 0, fmt.Errorf("only pending or confirmed appointments can be cancelled")
		}
		a.Status = appointments.StatusCancelled
		companyFee = a.ConsultationFee * companyFeeRate
		refund = a.ConsultationFee - companyFee
		return companyFee, refund, nil
	}
	return 0, 0, fmt.Errorf("appointment not found")
}

// AutoCompletePast marks confirmed appointments whose time has passed as
// completed. Run periodically by the background job.
func (s *Store) AutoCompletePast(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, a := range s.appointments {
		if a.Status == appointments.StatusConfirmed && a.When.Before(now) {
			a.Status = appointments.StatusCompleted
			n++
		}
	}
	return n
}

// -- Prescriptions --

func (s *Store) PrescriptionsFor(email string) []prescriptions.Prescription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []prescriptions.Prescription
	for _, p := range s.prescriptions {
		if p.PatientEmail == strings.ToLower(email) {
			out = append(out, p.Prescription)
		}
	}
	return out
}

func (s *Store) PrescriptionByID(id, email string) (*prescriptions.Prescription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.prescriptions {
		if p.ID == id && p.PatientEmail == strings.ToLower(email) {
			out := p.Prescription
			return &out, true
		}
	}
	return nil, false
}

// -- Tips --

func (s *Store) Tips() []tips.HealthTip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tips.HealthTip, 0, len(s.tips))
	for _, t := range s.tips {
		out = append(out, t.HealthTip)
	}
	return out
}

// TipByID returns the tip and bumps its view counter, like the detail
// page does.
func (s *Store) TipByID(id string) (*tips.HealthTip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tips {
		if t.ID == id {
			t.Views++
			out := t.HealthTip
			return &out, true
		}
	}
	return nil, false
}

func (s *Store) CreateTip(doctorEmail, doctorName, title, body string, tags []string) (*tips.HealthTip, error) {
	if title == "" || body == "" {
		return nil, fmt.Errorf("title and body are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tipRecord{
		HealthTip: tips.HealthTip{
			ID:         uuid.NewString(),
			Title:      title,
			Body:       body,
			Tags:       tags,
			DoctorName: doctorName,
			CreatedAt:  time.Now().Format("2006-01-02"),
		},
		DoctorEmail: strings.ToLower(doctorEmail),
	}
	s.tips = append(s.tips, t)
	out := t.HealthTip
	return &out, nil
}

func (s *Store) UpdateTip(id, doctorEmail, title, body string, tags []string) (*tips.HealthTip, error) {
	if title == "" || body == "" {
		return nil, fmt.Errorf("title and body are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tips {
		if t.ID == id {
			if t.DoctorEmail != strings.ToLower(doctorEmail) {
				return nil, fmt.Errorf("only the author can edit a tip")
			}
			t.Title = title
			t.Body = body
			t.Tags = tags
			out := t.HealthTip
			return &out, nil
		}
	}
	return nil, fmt.Errorf("tip not found")
}

// -- Pharmacy --

func (s *Store) Products() []pharmacy.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pharmacy.Product, len(s.products))
	copy(out, s.products)
	return out
}

// -- Analytics --

func (s *Store) Overview() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statusCounts := map[string]int{}
	revenue := 0.0
	for _, a := range s.appointments {
		statusCounts[string(a.Status)]++
		if a.Status == appointments.StatusCompleted {
			revenue += a.ConsultationFee
		}
	}

	patientCount := 0
	for _, u := range s.users {
		if u.Role == session.RoleCustomer {
			patientCount++
		}
	}

	return map[string]interface{}{
		"total_appointments": len(s.appointments),
		"total_doctors":      len(s.doctors),
		"total_patients":     patientCount,
		"total_revenue":      revenue,
		"status_counts":      statusCounts,
	}
}

func (s *Store) Stats(days int, now time.Time) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type point struct {
		count   int
		revenue float64
	}
	byDate := map[string]*point{}
	cutoff := now.AddDate(0, 0, -days)

	for _, a := range s.appointments {
		if a.When.Before(cutoff) || a.When.After(now) {
			continue
		}
		key := a.When.Format("2006-01-02")
		p := byDate[key]
		if p == nil {
			p = &point{}
			byDate[key] = p
		}
		p.count++
		if a.Status != appointments.StatusCancelled {
			p.revenue += a.ConsultationFee
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	points := make([]map[string]interface{}, 0, len(dates))
	for _, d := range dates {
		points = append(points, map[string]interface{}{
			"date":         d,
			"appointments": byDate[d].count,
			"revenue":      byDate[d].revenue,
		})
	}

	return map[string]interface{}{"days": days, "points": points}
}
