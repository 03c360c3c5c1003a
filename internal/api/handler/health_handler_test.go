package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string { return s.name }
func (s stubChecker) Ping(context.Context) error { return s.err }

func TestHealthHandler_Liveness(t *testing.T) {
	rec := serve(newEcho(), http.MethodGet, "/health", "", NewHealthHandler().Liveness)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthDependenciesHandler_Ready(t *testing.T) {
	h := NewHealthDependenciesHandler(stubChecker{name: "store"}, stubChecker{name: "redis"})

	rec := serve(newEcho(), http.MethodGet, "/health/ready", "", h.Readiness)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"redis":{"status":"ok"}`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHealthDependenciesHandler_Degraded(t *testing.T) {
	h := NewHealthDependenciesHandler(stubChecker{name: "store", err: errors.New("connection refused")})

	rec := serve(newEcho(), http.MethodGet, "/health/ready", "", h.Readiness)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("missing cause: %s", rec.Body.String())
	}
}
