// ABOUTME: Tests for the API client's envelope handling and error taxonomy
// ABOUTME: Uses a stub handler rather than the full server stack

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDo_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Project not found"}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	err := c.do(context.Background(), http.MethodGet, "/api/portfolio/projects", nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", apiErr.Status)
	}
	if apiErr.Message != "Project not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestDo_EnvelopeFailureWithoutErrorStatus(t *testing.T) {
	// A 200 with success=false still counts as an error
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"nope"}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	err := c.do(context.Background(), http.MethodGet, "/x", nil, nil)
	if err == nil {
		t.Fatal("expected error for success=false envelope")
	}
}

func TestDo_SendsBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	c.SetToken("abc123")
	if err := c.do(context.Background(), http.MethodGet, "/x", nil, nil); err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	c.ClearToken()
	if err := c.do(context.Background(), http.MethodGet, "/x", nil, nil); err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization after ClearToken = %q, want empty", gotAuth)
	}
}

func TestIsAuthFailure(t *testing.T) {
	if !IsAuthFailure(&APIError{Status: http.StatusUnauthorized}) {
		t.Error("401 should be an auth failure")
	}
	if IsAuthFailure(&APIError{Status: http.StatusForbidden}) {
		t.Error("403 is not an auth failure in this API")
	}
	if IsAuthFailure(errors.New("network down")) {
		t.Error("plain errors are not auth failures")
	}
}
