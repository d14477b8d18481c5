package demoapi

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/carelink/carelink/internal/api"
	"github.com/carelink/carelink/internal/authflow"
	"github.com/carelink/carelink/internal/domain/appointments"
	"github.com/carelink/carelink/internal/domain/doctors"
	"github.com/carelink/carelink/internal/session"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(Options{Secret: "test-secret", Logger: zerolog.Nop()})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

// loginAs authenticates a seeded account and returns a ready API client
// with the session stored.
func loginAs(t *testing.T, ts *httptest.Server, email string) (*api.Client, session.Store) {
	t.Helper()
	store := session.NewMemStore()
	client := api.New(ts.URL, 5*time.Second, store, zerolog.Nop())

	auth := &authflow.APIAuthenticator{API: client}
	sess, err := auth.Login(context.Background(), email, demoPassword)
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	if err := store.Set(sess); err != nil {
		t.Fatal(err)
	}
	return client, store
}

func TestLoginSeededAccounts(t *testing.T) {
	_, ts := newTestServer(t)

	cases := map[string]session.Role{
		"admin@gmail.com":      session.RoleAdmin,
		"doctor@gmail.com":     session.RoleDoctor,
		"customer@gmail.com":   session.RoleCustomer,
		"pharmacist@gmail.com": session.RolePharmacist,
	}

	for email, want := range cases {
		client := api.New(ts.URL, 5*time.Second, session.NewMemStore(), zerolog.Nop())
		auth := &authflow.APIAuthenticator{API: client}

		sess, err := auth.Login(context.Background(), email, demoPassword)
		if err != nil {
			t.Fatalf("login %s: %v", email, err)
		}
		if sess.Role != want {
			t.Errorf("%s: role = %s, want %s", email, sess.Role, want)
		}
		if sess.Token == "" || sess.User.ID == "" {
			t.Errorf("%s: incomplete session %+v", email, sess)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, ts := newTestServer(t)
	client := api.New(ts.URL, 5*time.Second, session.NewMemStore(), zerolog.Nop())
	auth := &authflow.APIAuthenticator{API: client}

	_, err := auth.Login(context.Background(), "customer@gmail.com", "wrong")
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != 401 || apiErr.Message != "Invalid email or password." {
		t.Fatalf("unexpected rejection: %+v", apiErr)
	}
}

func TestFailedLoginKeepsExistingSession(t *testing.T) {
	_, ts := newTestServer(t)
	client, store := loginAs(t, ts, "customer@gmail.com")

	m := authflow.New(&authflow.APIAuthenticator{API: client}, store)
	if m.SubmitLogin(context.Background(), "customer@gmail.com", "wrong") {
		t.Fatal("login with a wrong password succeeded")
	}
	if m.Err() != "Invalid email or password." {
		t.Errorf("error = %q, want %q", m.Err(), "Invalid email or password.")
	}

	// The rejection must not tear down the session already in the store.
	sess, err := store.Current()
	if err != nil {
		t.Fatalf("stored session gone after failed login: %v", err)
	}
	if sess.Email != "customer@gmail.com" {
		t.Errorf("stored session changed: %+v", sess)
	}
}

func TestRegisterCreatesCustomer(t *testing.T) {
	_, ts := newTestServer(t)
	client := api.New(ts.URL, 5*time.Second, session.NewMemStore(), zerolog.Nop())
	auth := &authflow.APIAuthenticator{API: client}

	req := authflow.RegisterRequest{Name: "New Person", Email: "new@example.com", Password: "secret99"}
	sess, err := auth.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.Role != session.RoleCustomer {
		t.Errorf("role = %s, want customer", sess.Role)
	}

	// Same email again must fail.
	if _, err := auth.Register(context.Background(), req); err == nil {
		t.Error("expected duplicate email to be rejected")
	}

	// And the new account can log in.
	if _, err := auth.Login(context.Background(), "new@example.com", "secret99"); err != nil {
		t.Errorf("login after register: %v", err)
	}
}

func TestAppointmentListAndFilter(t *testing.T) {
	_, ts := newTestServer(t)
	client, _ := loginAs(t, ts, "customer@gmail.com")
	appts := appointments.NewClient(client)

	all, err := appts.List(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 seeded appointments, got %d", len(all))
	}

	pending, err := appts.List(context.Background(), appointments.StatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != "apt-2" {
		t.Errorf("pending filter returned %+v", pending)
	}
}

func TestCancelComputesFeeSplit(t *testing.T) {
	_, ts := newTestServer(t)
	client, _ := loginAs(t, ts, "customer@gmail.com")
	appts := appointments.NewClient(client)

	// apt-1 is confirmed with a 500 fee: 20% retained, 80% refunded.
	res, err := appts.Cancel(context.Background(), "apt-1")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Fatalf("cancel failed: %s", res.Message)
	}
	if res.CompanyFee != 100 || res.RefundAmount != 400 {
		t.Errorf("fee split = %v/%v, want 100/400", res.CompanyFee, res.RefundAmount)
	}

	// Second cancel: already cancelled, reported in the body.
	res, err = appts.Cancel(context.Background(), "apt-1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Success {
		t.Error("expected second cancel to be refused")
	}

	// apt-3 is completed and must also refuse.
	res, err = appts.Cancel(context.Background(), "apt-3")
	if err != nil {
		t.Fatal(err)
	}
	if res.Success {
		t.Error("expected completed appointment to refuse cancellation")
	}
}

func TestCancelUnknownAppointment(t *testing.T) {
	_, ts := newTestServer(t)
	client, _ := loginAs(t, ts, "customer@gmail.com")
	appts := appointments.NewClient(client)

	_, err := appts.Cancel(context.Background(), "missing")
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 404 {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
}

func TestRoleGates(t *testing.T) {
	_, ts := newTestServer(t)

	customer, _ := loginAs(t, ts, "customer@gmail.com")
	var out map[string]interface{}
	err := customer.Get(context.Background(), "/api/appointment/overview/", nil, &out)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 403 {
		t.Errorf("customer on admin overview: expected 403, got %v", err)
	}

	admin, _ := loginAs(t, ts, "admin@gmail.com")
	if err := admin.Get(context.Background(), "/api/appointment/overview/", nil, &out); err != nil {
		t.Errorf("admin on overview: %v", err)
	}

	if err := customer.Get(context.Background(), "/api/pharmacy/products/", nil, &out); err == nil {
		t.Error("customer on pharmacy products: expected rejection")
	}
	pharmacist, _ := loginAs(t, ts, "pharmacist@gmail.com")
	if err := pharmacist.Get(context.Background(), "/api/pharmacy/products/", nil, &out); err != nil {
		t.Errorf("pharmacist on products: %v", err)
	}
}

func TestPrescriptionDownload(t *testing.T) {
	_, ts := newTestServer(t)
	client, _ := loginAs(t, ts, "customer@gmail.com")

	var buf strings.Builder
	if _, err := client.GetBlob(context.Background(), "/api/appointment/prescriptions/rx-1/download/", &buf); err != nil {
		t.Fatal(err)
	}
	doc := buf.String()
	for _, want := range []string{"Stage 1 hypertension", "Amlodipine", "5mg", "Dr. Sarah Ahmed"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestDoctorProfileCompletion(t *testing.T) {
	_, ts := newTestServer(t)
	client, _ := loginAs(t, ts, "doctor@gmail.com")
	docs := doctors.NewClient(client)

	p, err := docs.Profile(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsProfileComplete {
		t.Fatal("seeded profile should be complete")
	}

	// Full replace without a consultation fee flips the flag off.
	incomplete := *p
	incomplete.ConsultationFee = 0
	updated, err := docs.UpdateProfile(context.Background(), incomplete)
	if err != nil {
		t.Fatal(err)
	}
	if updated.IsProfileComplete {
		t.Error("profile without a fee must not be complete")
	}

	// Restoring the fee flips it back on.
	incomplete.ConsultationFee = 450
	updated, err = docs.UpdateProfile(context.Background(), incomplete)
	if err != nil {
		t.Fatal(err)
	}
	if !updated.IsProfileComplete {
		t.Error("restored profile should be complete again")
	}
}

func TestAdminDoctorManagement(t *testing.T) {
	_, ts := newTestServer(t)
	client, _ := loginAs(t, ts, "admin@gmail.com")
	docs := doctors.NewClient(client)

	d, err := docs.Create(context.Background(), doctors.CreateDoctorRequest{
		Name: "Dr. Yaw Asante", Email: "yaw.asante@carelink.example", Password: "secret99",
	})
	if err != nil {
		t.Fatal(err)
	}

	list, err := docs.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 4 {
		t.Errorf("expected 4 doctors after create, got %d", len(list))
	}

	if err := docs.Delete(context.Background(), d.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := docs.Get(context.Background(), d.ID); err == nil {
		t.Error("expected deleted doctor to be gone")
	}
}

func TestReviewMovesPublicRating(t *testing.T) {
	_, ts := newTestServer(t)
	client, _ := loginAs(t, ts, "customer@gmail.com")
	docs := doctors.NewClient(client)

	// doc-2 has no seeded reviews.
	before, err := docs.PublicProfile(context.Background(), "doc-2")
	if err != nil {
		t.Fatal(err)
	}
	if before.TotalReviews != 0 || before.Rating != 0 {
		t.Fatalf("unexpected seeded rating: %+v", before)
	}

	if _, err := docs.SubmitReview(context.Background(), "doc-2", doctors.SubmitReviewRequest{Rating: 4, Comment: "Good"}); err != nil {
		t.Fatal(err)
	}

	after, err := docs.PublicProfile(context.Background(), "doc-2")
	if err != nil {
		t.Fatal(err)
	}
	if after.TotalReviews != 1 || after.Rating != 4 {
		t.Errorf("rating after review = %v (%d reviews), want 4 (1)", after.Rating, after.TotalReviews)
	}
}

func TestTipViewsIncrement(t *testing.T) {
	_, ts := newTestServer(t)
	client, _ := loginAs(t, ts, "customer@gmail.com")

	var tip struct {
		Views int `json:"views"`
	}
	if err := client.Get(context.Background(), "/api/doctor/tips/tip-1/", nil, &tip); err != nil {
		t.Fatal(err)
	}
	first := tip.Views
	if err := client.Get(context.Background(), "/api/doctor/tips/tip-1/", nil, &tip); err != nil {
		t.Fatal(err)
	}
	if tip.Views != first+1 {
		t.Errorf("views did not increment: %d then %d", first, tip.Views)
	}
}

func TestExpiredTokenClearsSession(t *testing.T) {
	srv, ts := newTestServer(t)

	u, ok := srv.Store().UserByEmail("customer@gmail.com")
	if !ok {
		t.Fatal("seed user missing")
	}
	token, err := MintToken(srv.secret, u, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	store := session.NewMemStore()
	store.Set(&session.Session{Token: token, Role: session.RoleCustomer, Email: u.Email})
	client := api.New(ts.URL, 5*time.Second, store, zerolog.Nop())

	appts := appointments.NewClient(client)
	if _, err := appts.List(context.Background(), ""); !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := store.Current(); !errors.Is(err, session.ErrNoSession) {
		t.Error("expected session cleared after 401")
	}
}

func TestResetRestoresFixtures(t *testing.T) {
	srv, ts := newTestServer(t)
	client, _ := loginAs(t, ts, "customer@gmail.com")
	appts := appointments.NewClient(client)

	if _, err := appts.Cancel(context.Background(), "apt-1"); err != nil {
		t.Fatal(err)
	}
	srv.Store().Reset()

	a, err := appts.Get(context.Background(), "apt-1")
	if err != nil {
		t.Fatal(err)
	}
	if a.Status != appointments.StatusConfirmed {
		t.Errorf("after reset apt-1 status = %s, want confirmed", a.Status)
	}
}

func TestAutoCompletePast(t *testing.T) {
	srv, _ := newTestServer(t)

	// apt-1 is confirmed two days out; jump past it.
	n := srv.Store().AutoCompletePast(time.Now().AddDate(0, 0, 3))
	if n != 1 {
		t.Fatalf("expected 1 auto-completed appointment, got %d", n)
	}
	a, ok := srv.Store().AppointmentByID("apt-1")
	if !ok || a.Status != appointments.StatusCompleted {
		t.Errorf("apt-1 not completed: %+v", a)
	}
}
