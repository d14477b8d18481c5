package demoapi

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/carelink/carelink/internal/domain/appointments"
	"github.com/carelink/carelink/internal/domain/doctors"
	"github.com/carelink/carelink/internal/domain/pharmacy"
	"github.com/carelink/carelink/internal/domain/prescriptions"
	"github.com/carelink/carelink/internal/domain/tips"
	"github.com/carelink/carelink/internal/session"
)

// demoPassword is shared by every seeded account.
const demoPassword = "password123"

var (
	demoHashOnce sync.Once
	demoHash     []byte
)

// demoPasswordHash hashes the shared fixture password once; Reset runs
// periodically and should not pay bcrypt cost every time.
func demoPasswordHash() []byte {
	demoHashOnce.Do(func() {
		demoHash, _ = bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	})
	return demoHash
}

func (s *Store) seedLocked() {
	hash := demoPasswordHash()
	now := time.Now()
	day := func(offset int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, time.Local).AddDate(0, 0, offset)
	}

	s.users = map[string]*userRecord{
		"admin@gmail.com": {
			ID: "usr-admin-1", Name: "Admin User", Email: "admin@gmail.com",
			Phone: "+233200000001", PasswordHash: hash, Role: session.RoleAdmin,
		},
		"doctor@gmail.com": {
			ID: "usr-doctor-1", Name: "Dr. Sarah Ahmed", Email: "doctor@gmail.com",
			Phone: "+233200000002", PasswordHash: hash, Role: session.RoleDoctor,
		},
		"customer@gmail.com": {
			ID: "usr-customer-1", Name: "John Carter", Email: "customer@gmail.com",
			Phone: "+233200000003", PasswordHash: hash, Role: session.RoleCustomer,
		},
		"pharmacist@gmail.com": {
			ID: "usr-pharmacist-1", Name: "Paula Mensah", Email: "pharmacist@gmail.com",
			Phone: "+233200000004", PasswordHash: hash, Role: session.RolePharmacist,
		},
	}

	s.patients = map[string]*patientExtra{
		"customer@gmail.com": {Age: 34, Gender: "male", Address: "12 Ring Road, Accra"},
	}

	s.doctors = []*doctorRecord{
		{
			Doctor: doctors.Doctor{
				ID: "doc-1", Name: "Dr. Sarah Ahmed", Email: "doctor@gmail.com",
				Phone: "+233200000002", Specialty: "Cardiology", Active: true,
			},
			Profile: doctors.Profile{
				Specialty:          "Cardiology",
				Experience:         12,
				Qualification:      "MBChB, FWACP",
				LicenseNumber:      "MD-2041",
				Bio:                "Consultant cardiologist with a focus on preventive care.",
				AvailableDays:      []string{"monday", "wednesday", "friday"},
				AvailableTimeSlots: []string{"09:00-12:00", "14:00-17:00"},
				ConsultationFee:    500,
				IsProfileComplete:  true,
			},
		},
		{
			Doctor: doctors.Doctor{
				ID: "doc-2", Name: "Dr. Kwame Boateng", Email: "kwame.boateng@carelink.example",
				Phone: "+233200000005", Specialty: "Dermatology", Active: true,
			},
			Profile: doctors.Profile{
				Specialty:          "Dermatology",
				Experience:         7,
				Qualification:      "MBChB",
				LicenseNumber:      "MD-3310",
				AvailableDays:      []string{"tuesday", "thursday"},
				AvailableTimeSlots: []string{"10:00-13:00"},
				ConsultationFee:    350,
				IsProfileComplete:  true,
			},
		},
		{
			// Freshly onboarded, profile not filled in yet.
			Doctor: doctors.Doctor{
				ID: "doc-3", Name: "Dr. Ama Owusu", Email: "ama.owusu@carelink.example",
				Phone: "+233200000006", Active: true,
			},
		},
	}

	s.appointments = []*appointmentRecord{
		{
			Appointment: appointments.Appointment{
				ID: "apt-1", AppointmentID: "APT-1001",
				DoctorName: "Dr. Sarah Ahmed", DoctorSpecialty: "Cardiology",
				AppointmentDate: day(2).Format("2006-01-02"), AppointmentTime: "10:00",
				Status: appointments.StatusConfirmed, Reason: "Chest pain follow-up",
				ConsultationFee: 500, PaymentStatus: "paid", PaymentMethod: "mobile_money",
			},
			PatientEmail: "customer@gmail.com", DoctorID: "doc-1", When: day(2),
		},
		{
			Appointment: appointments.Appointment{
				ID: "apt-2", AppointmentID: "APT-1002",
				DoctorName: "Dr. Kwame Boateng", DoctorSpecialty: "Dermatology",
				AppointmentDate: day(5).Format("2006-01-02"), AppointmentTime: "11:30",
				Status: appointments.StatusPending, Reason: "Skin rash",
				ConsultationFee: 350, PaymentStatus: "unpaid",
			},
			PatientEmail: "customer@gmail.com", DoctorID: "doc-2", When: day(5),
		},
		{
			Appointment: appointments.Appointment{
				ID: "apt-3", AppointmentID: "APT-1003",
				DoctorName: "Dr. Sarah Ahmed", DoctorSpecialty: "Cardiology",
				AppointmentDate: day(-3).Format("2006-01-02"), AppointmentTime: "14:00",
				Status: appointments.StatusCompleted, Reason: "Hypertension review",
				ConsultationFee: 500, PaymentStatus: "paid", PaymentMethod: "card",
			},
			PatientEmail: "customer@gmail.com", DoctorID: "doc-1", When: day(-3),
		},
		{
			Appointment: appointments.Appointment{
				ID: "apt-4", AppointmentID: "APT-1004",
				DoctorName: "Dr. Sarah Ahmed", DoctorSpecialty: "Cardiology",
				AppointmentDate: day(-1).Format("2006-01-02"), AppointmentTime: "09:00",
				Status: appointments.StatusCancelled, Reason: "Routine check",
				ConsultationFee: 500, PaymentStatus: "refunded",
			},
			PatientEmail: "customer@gmail.com", DoctorID: "doc-1", When: day(-1),
		},
	}

	s.prescriptions = []*prescriptionRecord{
		{
			Prescription: prescriptions.Prescription{
				ID: "rx-1", DoctorName: "Dr. Sarah Ahmed", DoctorSpecialty: "Cardiology",
				AppointmentDate: day(-3).Format("2006-01-02"), AppointmentTime: "14:00",
				Diagnosis: "Stage 1 hypertension",
				Medications: prescriptions.Medications{
					{Name: "Amlodipine", Dosage: "5mg", Duration: "30 days", Instructions: "Once daily, morning"},
					{Name: "Aspirin", Dosage: "75mg", Duration: "30 days", Instructions: "Once daily with food"},
				},
				Instructions: "Reduce salt intake. Check blood pressure weekly.",
				FollowUpDate: day(27).Format("2006-01-02"),
			},
			PatientEmail: "customer@gmail.com",
		},
		{
			Prescription: prescriptions.Prescription{
				ID: "rx-2", DoctorName: "Dr. Kwame Boateng", DoctorSpecialty: "Dermatology",
				AppointmentDate: day(-20).Format("2006-01-02"), AppointmentTime: "10:30",
				Diagnosis: "Contact dermatitis",
				// Legacy record shape: medications stored as plain names.
				Medications: prescriptions.Medications{
					{Name: "Hydrocortisone cream"},
					{Name: "Cetirizine"},
				},
				Notes: "Avoid the suspected detergent.",
			},
			PatientEmail: "customer@gmail.com",
		},
	}

	s.reviews = []*reviewRecord{
		{
			Review: doctors.Review{
				ID: "rev-1", UserName: "John Carter", Rating: 5,
				Comment:   "Very thorough and patient.",
				CreatedAt: day(-10).Format("2006-01-02"),
			},
			DoctorID: "doc-1",
		},
		{
			Review: doctors.Review{
				ID: "rev-2", UserName: "Abena K.", Rating: 4,
				Comment:   "Short wait, clear explanations.",
				CreatedAt: day(-30).Format("2006-01-02"),
			},
			DoctorID: "doc-1",
		},
	}

	s.tips = []*tipRecord{
		{
			HealthTip: tips.HealthTip{
				ID: "tip-1", Title: "Know your blood pressure numbers",
				Body:       "Check your blood pressure at least once a year. Persistent readings above 140/90 deserve a clinic visit.",
				Tags:       []string{"heart", "prevention"},
				DoctorName: "Dr. Sarah Ahmed",
				CreatedAt:  day(-14).Format("2006-01-02"),
				Views:      42,
			},
			DoctorEmail: "doctor@gmail.com",
		},
		{
			HealthTip: tips.HealthTip{
				ID: "tip-2", Title: "Sunscreen is not optional",
				Body:       "Daily SPF 30 protects against premature ageing and skin cancer, even on cloudy days.",
				Tags:       []string{"skin"},
				DoctorName: "Dr. Kwame Boateng",
				CreatedAt:  day(-7).Format("2006-01-02"),
				Views:      17,
			},
			DoctorEmail: "kwame.boateng@carelink.example",
		},
	}

	s.products = []pharmacy.Product{
		{ID: "prd-1", Name: "Paracetamol 500mg", Category: "Analgesic", Stock: 240, Price: 12.50, Expiry: "2027-06-30"},
		{ID: "prd-2", Name: "Amlodipine 5mg", Category: "Cardiovascular", Stock: 8, Price: 45.00, Expiry: "2026-12-31"},
		{ID: "prd-3", Name: "Cetirizine 10mg", Category: "Antihistamine", Stock: 60, Price: 18.00, Expiry: "2027-01-31"},
		{ID: "prd-4", Name: "Hydrocortisone cream 1%", Category: "Dermatology", Stock: 3, Price: 32.00, Expiry: "2026-10-15"},
	}
}
