package prescriptions

import (
	"encoding/json"
	"fmt"
)

// Medication is one prescribed item. Older records carry medications as
// plain strings; newer ones as structured objects. Medications handles both
// on decode, mapping a bare string onto Name.
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type Medications []Medication

func (m *Medications) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("medications: %w", err)
	}

	out := make(Medications, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, Medication{Name: s})
			continue
		}
		var med Medication
		if err := json.Unmarshal(item, &med); err != nil {
			return fmt.Errorf("medications: %w", err)
		}
		out = append(out, med)
	}
	*m = out
	return nil
}

// Prescription is read-only from this client: list, view, download.
type Prescription struct {
	ID              string      `json:"id"`
	DoctorName      string      `json:"doctor_name"`
	DoctorSpecialty string      `json:"doctor_specialty"`
	AppointmentDate string      `json:"appointment_date"`
	AppointmentTime string      `json:"appointment_time"`
	Diagnosis       string      `json:"diagnosis"`
	Medications     Medications `json:"medications"`
	Instructions    string      `json:"instructions,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	FollowUpDate    string      `json:"follow_up_date,omitempty"`
}
