package appointments

// Status is the appointment lifecycle state as reported by the server.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// CanCancel reports whether the server will accept a cancel for this
// status. Used only to phrase the confirmation prompt; the server remains
// the authority.
func (s Status) CanCancel() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Appointment is the read model for the list and detail views. Created and
// owned server-side; this client only reads and triggers cancellation.
type Appointment struct {
	ID              string  `json:"id"`
	AppointmentID   string  `json:"appointment_id"` // display code, e.g. APT-1003
	DoctorName      string  `json:"doctor_name"`
	DoctorSpecialty string  `json:"doctor_specialty"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	Status          Status  `json:"status"`
	Reason          string  `json:"reason,omitempty"`
	ConsultationFee float64 `json:"consultation_fee"`
	PaymentStatus   string  `json:"payment_status,omitempty"`
	PaymentMethod   string  `json:"payment_method,omitempty"`
}

// CancelResult is the server's answer to a cancel request. The fee and
// refund figures come from the server's own computation and are displayed
// as-is, even if they differ from the percentage quoted in the prompt.
type CancelResult struct {
	Success      bool    `json:"success"`
	CompanyFee   float64 `json:"company_fee"`
	RefundAmount float64 `json:"refund_amount"`
	Message      string  `json:"message,omitempty"`
}

// CancelNotice is the informational text shown before confirming a cancel.
// The percentage here is a quote only; the authoritative company_fee comes
// back in CancelResult.
const CancelNotice = "Cancelling this appointment may retain 20% of the consultation fee. The final fee and refund are computed by the server."
