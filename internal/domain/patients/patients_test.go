package patients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/carelink/carelink/internal/api"
	"github.com/carelink/carelink/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemStore()
	store.Set(&session.Session{Token: "tok", Role: session.RoleCustomer, Email: "customer@gmail.com"})
	return NewClient(api.New(srv.URL, 5*time.Second, store, zerolog.Nop()))
}

func TestProfileRoundTrip(t *testing.T) {
	var gotPut Profile
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user/profile/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"id":"u1","name":"John Carter","email":"customer@gmail.com","phone":"0100","age":34}`))
		case http.MethodPut:
			json.NewDecoder(r.Body).Decode(&gotPut)
			json.NewEncoder(w).Encode(gotPut)
		}
	})

	p, err := c.Profile(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "John Carter" || p.Age != 34 {
		t.Errorf("unexpected profile: %+v", p)
	}

	p.Phone = "0111"
	updated, err := c.UpdateProfile(context.Background(), *p)
	if err != nil {
		t.Fatal(err)
	}
	if gotPut.Phone != "0111" || updated.Phone != "0111" {
		t.Errorf("update not a full replace: %+v", gotPut)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	if _, err := c.UpdateProfile(context.Background(), Profile{}); err == nil {
		t.Error("expected error for empty name")
	}
}
