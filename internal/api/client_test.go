package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/carelink/carelink/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.MemStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemStore()
	c := New(srv.URL, 5*time.Second, store, zerolog.Nop())
	return c, store
}

func login(t *testing.T, store session.Store) {
	t.Helper()
	err := store.Set(&session.Session{
		Token: "tok-abc",
		Role:  session.RoleCustomer,
		Email: "customer@gmail.com",
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestGetSendsBearerToken(t *testing.T) {
	var gotAuth string
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})
	login(t, store)

	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.Get(context.Background(), "/api/ping/", nil, &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if !out.OK {
		t.Error("response not decoded")
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	login(t, store)

	err := c.Get(context.Background(), "/api/appointment/appointments/", nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := store.Current(); !errors.Is(err, session.ErrNoSession) {
		t.Error("expected session cleared after 401")
	}

	// A second 401 with the session already gone must behave the same.
	err = c.Get(context.Background(), "/api/appointment/appointments/", nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized on repeat, got %v", err)
	}
}

func TestPostPublicUnauthorizedKeepsSession(t *testing.T) {
	var gotAuth string
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid email or password."}`))
	})
	login(t, store)

	err := c.PostPublic(context.Background(), "/api/user/login/", map[string]string{
		"email": "customer@gmail.com", "password": "wrong",
	}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.Status)
	}
	if apiErr.Message != "Invalid email or password." {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if gotAuth != "" {
		t.Errorf("public request must not carry the stored token, got %q", gotAuth)
	}

	// A rejected credential check is not an expired session.
	if _, err := store.Current(); err != nil {
		t.Errorf("existing session cleared by a public 401: %v", err)
	}
}

func TestErrorMessageFromJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"appointment already cancelled"}`))
	})

	err := c.Post(context.Background(), "/api/appointment/appointments/1/cancel/", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.Status)
	}
	if apiErr.Message != "appointment already cancelled" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestErrorMessageFromRawBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	err := c.Get(context.Background(), "/api/pharmacy/products/", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "upstream exploded" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestErrorMessageEmptyBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := c.Get(context.Background(), "/api/pharmacy/products/", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != http.StatusText(http.StatusServiceUnavailable) {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestQueryParamsEncoded(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	})

	q := url.Values{}
	q.Set("status", "pending")
	var out map[string]interface{}
	if err := c.Get(context.Background(), "/api/appointment/appointments/", q, &out); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "status=pending" {
		t.Errorf("unexpected query %q", gotQuery)
	}
}

func TestGetBlob(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte("PRESCRIPTION-BYTES"))
	})
	login(t, store)

	var buf bytes.Buffer
	n, err := c.GetBlob(context.Background(), "/api/appointment/prescriptions/1/download/", &buf)
	if err != nil {
		t.Fatalf("GetBlob failed: %v", err)
	}
	if n != int64(len("PRESCRIPTION-BYTES")) {
		t.Errorf("unexpected byte count %d", n)
	}
	if buf.String() != "PRESCRIPTION-BYTES" {
		t.Errorf("unexpected blob %q", buf.String())
	}
}

func TestGetBlobUnauthorized(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	login(t, store)

	var buf bytes.Buffer
	_, err := c.GetBlob(context.Background(), "/api/appointment/prescriptions/1/download/", &buf)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := store.Current(); !errors.Is(err, session.ErrNoSession) {
		t.Error("expected session cleared after 401")
	}
}

func TestContextCancellation(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Get(ctx, "/api/appointment/appointments/", nil, nil)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
