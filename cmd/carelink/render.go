package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/carelink/carelink/internal/domain/appointments"
	"github.com/carelink/carelink/internal/domain/doctors"
	"github.com/carelink/carelink/internal/domain/pharmacy"
	"github.com/carelink/carelink/internal/domain/prescriptions"
	"github.com/carelink/carelink/internal/domain/tips"
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func renderAppointments(list []appointments.Appointment) {
	if len(list) == 0 {
		fmt.Println("No appointments.")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tCODE\tDOCTOR\tDATE\tTIME\tSTATUS\tFEE")
	for _, a := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\n",
			a.ID, a.AppointmentID, a.DoctorName, a.AppointmentDate, a.AppointmentTime, a.Status, a.ConsultationFee)
	}
	w.Flush()
}

func renderAppointment(a *appointments.Appointment) {
	fmt.Printf("%s (%s)\n", a.AppointmentID, a.Status)
	fmt.Printf("Doctor:  %s (%s)\n", a.DoctorName, a.DoctorSpecialty)
	fmt.Printf("When:    %s %s\n", a.AppointmentDate, a.AppointmentTime)
	if a.Reason != "" {
		fmt.Printf("Reason:  %s\n", a.Reason)
	}
	fmt.Printf("Fee:     %.2f", a.ConsultationFee)
	if a.PaymentStatus != "" {
		fmt.Printf(" (%s", a.PaymentStatus)
		if a.PaymentMethod != "" {
			fmt.Printf(", %s", a.PaymentMethod)
		}
		fmt.Print(")")
	}
	fmt.Println()
}

func renderPrescriptions(list []prescriptions.Prescription) {
	if len(list) == 0 {
		fmt.Println("No prescriptions.")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tDOCTOR\tDATE\tDIAGNOSIS\tMEDICATIONS")
	for _, p := range list {
		names := make([]string, len(p.Medications))
		for i, m := range p.Medications {
			names[i] = m.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.DoctorName, p.AppointmentDate, p.Diagnosis, strings.Join(names, ", "))
	}
	w.Flush()
}

func renderPrescription(p *prescriptions.Prescription) {
	fmt.Printf("Prescription %s\n", p.ID)
	fmt.Printf("Doctor:    %s (%s)\n", p.DoctorName, p.DoctorSpecialty)
	fmt.Printf("Date:      %s %s\n", p.AppointmentDate, p.AppointmentTime)
	fmt.Printf("Diagnosis: %s\n", p.Diagnosis)
	fmt.Println("Medications:")
	for _, m := range p.Medications {
		fmt.Printf("  - %s", m.Name)
		if m.Dosage != "" {
			fmt.Printf(" %s", m.Dosage)
		}
		if m.Duration != "" {
			fmt.Printf(" for %s", m.Duration)
		}
		if m.Instructions != "" {
			fmt.Printf(" (%s)", m.Instructions)
		}
		fmt.Println()
	}
	if p.Instructions != "" {
		fmt.Printf("Instructions: %s\n", p.Instructions)
	}
	if p.FollowUpDate != "" {
		fmt.Printf("Follow-up:    %s\n", p.FollowUpDate)
	}
}

func renderDoctorProfile(p *doctors.PublicProfile, reviews []doctors.Review) {
	fmt.Printf("%s (%s)\n", p.Name, p.Specialty)
	fmt.Printf("Experience:    %d years\n", p.Experience)
	fmt.Printf("Qualification: %s\n", p.Qualification)
	if p.Bio != "" {
		fmt.Printf("Bio:           %s\n", p.Bio)
	}
	fmt.Printf("Fee:           %.2f\n", p.ConsultationFee)
	fmt.Printf("Rating:        %.1f (%d reviews)\n", p.Rating, p.TotalReviews)

	if len(reviews) == 0 {
		return
	}
	sum := doctors.Summarize(reviews)
	for stars := 5; stars >= 1; stars-- {
		fmt.Printf("  %d★ %d\n", stars, sum.Distribution[stars])
	}
	fmt.Println("Recent reviews:")
	for _, r := range reviews {
		fmt.Printf("  [%d★] %s - %s (%s)\n", r.Rating, r.Comment, r.UserName, r.CreatedAt)
	}
}

func renderTips(list []tips.HealthTip) {
	if len(list) == 0 {
		fmt.Println("No health tips.")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tTITLE\tDOCTOR\tVIEWS")
	for _, t := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", t.ID, t.Title, t.DoctorName, t.Views)
	}
	w.Flush()
}

func renderTip(t *tips.HealthTip) {
	fmt.Printf("%s\nby %s on %s (%d views)\n\n%s\n", t.Title, t.DoctorName, t.CreatedAt, t.Views, t.Body)
	if len(t.Tags) > 0 {
		fmt.Println("Tags:", strings.Join(t.Tags, ", "))
	}
}

func renderProducts(list []pharmacy.Product) {
	if len(list) == 0 {
		fmt.Println("No products.")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSTOCK\tPRICE\tEXPIRY")
	for _, p := range list {
		stock := fmt.Sprintf("%d", p.Stock)
		if p.LowStock() {
			stock += " LOW"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\n", p.ID, p.Name, p.Category, stock, p.Price, p.Expiry)
	}
	w.Flush()
}
