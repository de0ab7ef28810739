package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthReportsRegisteredChecks(t *testing.T) {
	s := NewServer(0, "test", nil)
	s.RegisterCheck("engine", func(ctx context.Context) (bool, string) {
		return true, "Stopped"
	})

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Status string `json:"status"`
		Checks map[string]struct {
			Healthy bool   `json:"healthy"`
			Message string `json:"message"`
		} `json:"checks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want %q", body.Status, "ok")
	}
	check, found := body.Checks["engine"]
	if !found {
		t.Fatal("engine check missing from response")
	}
	if !check.Healthy || check.Message != "Stopped" {
		t.Errorf("engine check = %+v, want healthy with message Stopped", check)
	}
}

func TestHealthDegradesOnFailingCheck(t *testing.T) {
	s := NewServer(0, "test", nil)
	s.RegisterCheck("broken", func(ctx context.Context) (bool, string) {
		return false, "down"
	})

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestReadyFollowsChecks(t *testing.T) {
	s := NewServer(0, "test", nil)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("no checks: status = %d, want %d", rec.Code, http.StatusOK)
	}

	s.RegisterCheck("broken", func(ctx context.Context) (bool, string) {
		return false, ""
	})
	rec = httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("failing check: status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestStateServesSnapshot(t *testing.T) {
	s := NewServer(0, "test", func() any {
		return map[string]any{"status": "Live", "block": 42}
	})

	rec := httptest.NewRecorder()
	s.handleState(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "Live" {
		t.Errorf("state status = %v, want Live", body["status"])
	}
}
