package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/estatehub/realty-platform/internal/core/domain"
)

func TestDo_ForwardsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New("peer", srv.URL, time.Second)
	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.Do(context.Background(), http.MethodGet, "/x", nil, "tok-123", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("token not forwarded verbatim, got %q", gotAuth)
	}
	if !out.OK {
		t.Fatalf("response not decoded")
	}
}

func TestDo_NonTwoHundredIsPeerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	c := New("peer", srv.URL, time.Second)
	err := c.Do(context.Background(), http.MethodGet, "/x", nil, "", nil)

	var pe *PeerError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PeerError, got %T: %v", err, err)
	}
	if pe.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", pe.StatusCode)
	}
	if pe.Message != "boom" {
		t.Fatalf("expected peer error body to be kept, got %q", pe.Message)
	}
}

func TestDo_RefusedConnectionIsPeerError(t *testing.T) {
	// Bind then close so nothing is listening on the port.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := New("peer", addr, time.Second)
	err := c.Do(context.Background(), http.MethodGet, "/x", nil, "", nil)

	var pe *PeerError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PeerError, got %T: %v", err, err)
	}
	if pe.StatusCode != 0 {
		t.Fatalf("transport failure must not carry a status, got %d", pe.StatusCode)
	}
}

func TestDo_TimeoutIsPeerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := New("peer", srv.URL, 50*time.Millisecond)
	err := c.Do(context.Background(), http.MethodGet, "/slow", nil, "", nil)

	var pe *PeerError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PeerError, got %T: %v", err, err)
	}
}

func TestPropertyClient_GetMapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"property not found"}`))
	}))
	defer srv.Close()

	pc := NewPropertyClient(srv.URL)
	_, err := pc.Get(context.Background(), 7)
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestAuthClient_VerifyTotalOnPeerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	ac := NewAuthClient(addr)
	if _, ok := ac.Verify("any-token"); ok {
		t.Fatalf("verify against an unreachable peer must report invalid")
	}
}
