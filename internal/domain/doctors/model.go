package doctors

// Doctor is the administrative view of a doctor account.
type Doctor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	Active    bool   `json:"active"`
}

// CreateDoctorRequest is the admin payload for onboarding a doctor.
type CreateDoctorRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Profile is the doctor's own profile, replaced wholesale on update.
// IsProfileComplete is computed server-side and gates the doctor section;
// the client only surfaces the returned flag.
type Profile struct {
	Specialty          string   `json:"specialty"`
	Experience         int      `json:"experience"`
	Qualification      string   `json:"qualification"`
	LicenseNumber      string   `json:"license_number"`
	Bio                string   `json:"bio,omitempty"`
	AvailableDays      []string `json:"available_days"`
	AvailableTimeSlots []string `json:"available_time_slots"`
	ConsultationFee    float64  `json:"consultation_fee"`
	IsProfileComplete  bool     `json:"is_profile_complete"`
}

// PublicProfile is what patients see, including the server-owned rating.
// The client-side review summary is display-only and never overrides this.
type PublicProfile struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Specialty       string  `json:"specialty"`
	Experience      int     `json:"experience"`
	Qualification   string  `json:"qualification"`
	Bio             string  `json:"bio,omitempty"`
	ConsultationFee float64 `json:"consultation_fee"`
	Rating          float64 `json:"rating"`
	TotalReviews    int     `json:"total_reviews"`
}

// Review is a single patient review of a doctor.
type Review struct {
	ID        string `json:"id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

// SubmitReviewRequest is the payload for posting a review.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}
