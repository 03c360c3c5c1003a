package handler

import (
	"net/http"
	"testing"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

func TestSelectionHandler_Get(t *testing.T) {
	ws := &stubWorkspace{selections: domain.RecipientSelections{
		FieldVisibility: domain.DefaultVisibility([]domain.FieldKey{domain.FieldName}),
		FieldOrder:      domain.FieldOrder{},
	}}

	rec := serve(newEcho(), http.MethodGet, "/v1/candidates/c1/selections", "", NewSelectionHandler(ws).Get, "id", "c1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := `{"candidateId":"c1","fieldVisibility":{"name":{"client":true,"internal":true,"superiors":true}},"fieldOrder":[]}`
	if got := rec.Body.String(); got != want+"\n" {
		t.Fatalf("unexpected body:\n%s\nwant\n%s", got, want)
	}
}

func TestSelectionHandler_Put_UsesPathID(t *testing.T) {
	ws := &stubWorkspace{}
	body := `{"fieldVisibility":{"email":{"client":false,"internal":true,"superiors":true}},"fieldOrder":["email","name"]}`

	rec := serve(newEcho(), http.MethodPut, "/v1/candidates/c1/selections", body, NewSelectionHandler(ws).Put, "id", "c1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ws.lastSaved.CandidateID != "c1" || len(ws.lastSaved.FieldOrder) != 2 {
		t.Fatalf("unexpected save: %+v", ws.lastSaved)
	}
	if ws.lastSaved.FieldVisibility.IsVisible(domain.FieldEmail, domain.RecipientClient) {
		t.Error("visibility not bound")
	}
}

func TestSelectionHandler_Toggle(t *testing.T) {
	ws := &stubWorkspace{}

	rec := serve(newEcho(), http.MethodPost, "/v1/candidates/c1/selections/toggle",
		`{"field":"salary","recipient":"client"}`, NewSelectionHandler(ws).Toggle, "id", "c1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ws.lastToggle.key != domain.FieldSalary || ws.lastToggle.r != domain.RecipientClient {
		t.Fatalf("unexpected toggle: %+v", ws.lastToggle)
	}
}

func TestSelectionHandler_Toggle_UnknownRecipient(t *testing.T) {
	ws := &stubWorkspace{}

	rec := serve(newEcho(), http.MethodPost, "/v1/candidates/c1/selections/toggle",
		`{"field":"salary","recipient":"everyone"}`, NewSelectionHandler(ws).Toggle, "id", "c1")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if ws.lastToggle.key != "" {
		t.Error("workspace must not be called")
	}
}

func TestSelectionHandler_Bulk_RequiresVisible(t *testing.T) {
	ws := &stubWorkspace{}
	h := NewSelectionHandler(ws)

	rec := serve(newEcho(), http.MethodPost, "/x", `{"recipient":"internal"}`, h.Bulk, "id", "c1")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	rec = serve(newEcho(), http.MethodPost, "/x", `{"recipient":"internal","visible":false}`, h.Bulk, "id", "c1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ws.lastBulk.r != domain.RecipientInternal || ws.lastBulk.visible {
		t.Fatalf("unexpected bulk call: %+v", ws.lastBulk)
	}
}

func TestSelectionHandler_Reorder(t *testing.T) {
	ws := &stubWorkspace{}
	h := NewSelectionHandler(ws)

	rec := serve(newEcho(), http.MethodPost, "/x", `{"from":0,"to":3}`, h.Reorder, "id", "c1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ws.lastReorder != [2]int{0, 3} {
		t.Fatalf("unexpected reorder: %v", ws.lastReorder)
	}

	rec = serve(newEcho(), http.MethodPost, "/x", `{"from":-1,"to":3}`, h.Reorder, "id", "c1")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for negative index, got %d", rec.Code)
	}
}

func TestSelectionHandler_Reorder_OutOfRangeFromWorkspace(t *testing.T) {
	ws := &stubWorkspace{err: domain.NewValidationError("to", "index 9 out of range [0,3)")}

	rec := serve(newEcho(), http.MethodPost, "/x", `{"from":0,"to":9}`, NewSelectionHandler(ws).Reorder, "id", "c1")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestResultLabel(t *testing.T) {
	cases := map[string]error{
		"ok":       nil,
		"invalid":  domain.NewValidationError("x", "bad"),
		"conflict": domain.ErrActionInFlight,
		"auth":     &domain.AuthError{Err: domain.ErrAuthRequired},
	}
	for want, err := range cases {
		if got := resultLabel(err); got != want {
			t.Errorf("resultLabel(%v) = %q, want %q", err, got, want)
		}
	}
}
