package tips

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
	store.Set(&session.Session{Token: "tok", Role: session.RoleDoctor, Email: "doctor@gmail.com"})
	return NewClient(api.New(srv.URL, 5*time.Second, store, zerolog.Nop()))
}

func TestListAndGet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/doctor/tips/":
			w.Write([]byte(`{"data":[{"id":"t1","title":"Hydration","views":12}],"total":1}`))
		case "/api/doctor/tips/t1/":
			w.Write([]byte(`{"id":"t1","title":"Hydration","body":"Drink water.","doctor_name":"Dr. Sarah Ahmed","views":13}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	list, err := c.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Title != "Hydration" {
		t.Errorf("unexpected list: %+v", list)
	}

	tip, err := c.Get(context.Background(), "t1")
	if err != nil {
		t.Fatal(err)
	}
	if tip.Body != "Drink water." || tip.Views != 13 {
		t.Errorf("unexpected tip: %+v", tip)
	}
}

func TestCreateValidation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for invalid payload")
	})

	if _, err := c.Create(context.Background(), WriteRequest{Title: "", Body: "x"}); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := c.Update(context.Background(), "t1", WriteRequest{Title: "x", Body: ""}); err == nil {
		t.Error("expected error for missing body")
	}
}

func TestCreateAndUpdate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req WriteRequest
		json.NewDecoder(r.Body).Decode(&req)
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/doctor/tips/":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(HealthTip{ID: "t2", Title: req.Title, Body: req.Body})
		case r.Method == http.MethodPut && r.URL.Path == "/api/doctor/tips/t2/":
			json.NewEncoder(w).Encode(HealthTip{ID: "t2", Title: req.Title, Body: req.Body})
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})

	tip, err := c.Create(context.Background(), WriteRequest{Title: "Sleep", Body: "8 hours."})
	if err != nil {
		t.Fatal(err)
	}
	if tip.ID != "t2" {
		t.Errorf("unexpected tip: %+v", tip)
	}

	updated, err := c.Update(context.Background(), "t2", WriteRequest{Title: "Sleep", Body: "At least 7 hours."})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Body != "At least 7 hours." {
		t.Errorf("unexpected update: %+v", updated)
	}
}
