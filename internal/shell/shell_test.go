package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/carelink/carelink/internal/session"
)

func TestGateNoSession(t *testing.T) {
	store := session.NewMemStore()
	shells := []*Shell{
		{Role: session.RoleAdmin, Title: "Admin"},
		{Role: session.RoleDoctor, Title: "Doctor"},
		{Role: session.RoleCustomer, Title: "Customer"},
		{Role: session.RolePharmacist, Title: "Pharmacy"},
	}

	// After Clear, every gated section refuses and points at the entry route.
	for _, sh := range shells {
		if _, err := sh.Gate(store); !errors.Is(err, ErrNotLoggedIn) {
			t.Errorf("%s: expected ErrNotLoggedIn, got %v", sh.Role, err)
		}
	}
}

func TestGateRoleMismatch(t *testing.T) {
	store := session.NewMemStore()
	store.Set(&session.Session{Token: "t", Role: session.RoleCustomer, Email: "customer@gmail.com"})

	sh := &Shell{Role: session.RoleAdmin, Title: "Admin"}
	_, err := sh.Gate(store)

	var wrong *WrongRoleError
	if !errors.As(err, &wrong) {
		t.Fatalf("expected WrongRoleError, got %v", err)
	}
	if wrong.Have != session.RoleCustomer || wrong.Want != session.RoleAdmin {
		t.Errorf("unexpected roles: %+v", wrong)
	}
	// Gating must not mutate the session.
	if _, err := store.Current(); err != nil {
		t.Error("session must survive a role mismatch")
	}
}

func TestGateMatch(t *testing.T) {
	store := session.NewMemStore()
	store.Set(&session.Session{Token: "t", Role: session.RoleDoctor, Email: "doctor@gmail.com"})

	sh := &Shell{Role: session.RoleDoctor, Title: "Doctor"}
	sess, err := sh.Gate(store)
	if err != nil {
		t.Fatalf("Gate failed: %v", err)
	}
	if sess.Email != "doctor@gmail.com" {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestGateAfterClearIsStable(t *testing.T) {
	store := session.NewMemStore()
	store.Set(&session.Session{Token: "t", Role: session.RoleAdmin, Email: "admin@gmail.com"})
	sh := &Shell{Role: session.RoleAdmin, Title: "Admin"}

	if _, err := sh.Gate(store); err != nil {
		t.Fatal(err)
	}
	if _, err := Logout(store); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := sh.Gate(store); !errors.Is(err, ErrNotLoggedIn) {
			t.Fatalf("gate #%d after logout: expected ErrNotLoggedIn, got %v", i, err)
		}
	}
}

func TestHeaderWithChrome(t *testing.T) {
	sh := &Shell{
		Role:  session.RoleDoctor,
		Title: "Doctor Dashboard",
		NavItems: []NavItem{
			{Name: "profile", Description: "View and update your profile"},
			{Name: "tips", Description: "Manage health tips"},
		},
		FetchProfile: func(ctx context.Context) (Chrome, error) {
			return Chrome{Name: "Dr. Sarah Ahmed", ID: "DOC-12", Badge: "profile incomplete"}, nil
		},
	}
	sess := &session.Session{Token: "t", Role: session.RoleDoctor, Email: "doctor@gmail.com"}

	out := sh.Header(context.Background(), sess)
	for _, want := range []string{"Doctor Dashboard", "doctor@gmail.com", "Dr. Sarah Ahmed", "DOC-12", "profile incomplete", "tips"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestHeaderChromeFailureIsNonFatal(t *testing.T) {
	sh := &Shell{
		Role:  session.RoleAdmin,
		Title: "Admin",
		FetchProfile: func(ctx context.Context) (Chrome, error) {
			return Chrome{}, fmt.Errorf("backend down")
		},
	}
	sess := &session.Session{Token: "t", Role: session.RoleAdmin, Email: "admin@gmail.com"}

	out := sh.Header(context.Background(), sess)
	if !strings.Contains(out, "Admin") {
		t.Errorf("header should still render title, got:\n%s", out)
	}
}

func TestLogout(t *testing.T) {
	store := session.NewMemStore()
	store.Set(&session.Session{Token: "t", Role: session.RoleCustomer, Email: "c@x.com"})

	entry, err := Logout(store)
	if err != nil {
		t.Fatal(err)
	}
	if entry != session.EntryRoute {
		t.Errorf("expected entry route %q, got %q", session.EntryRoute, entry)
	}
	if _, err := store.Current(); !errors.Is(err, session.ErrNoSession) {
		t.Error("expected session cleared")
	}
}
