package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
	"github.com/buzzhire/recruit-mailer/internal/infrastructure/memory"
)

// ---------------------------------------------------------------------------
// Message
// ---------------------------------------------------------------------------

func TestBuildMessage_HeaderOrder(t *testing.T) {
	raw := BuildMessage(domain.OutgoingMail{
		To:       []string{"a@x.com", "b@x.com"},
		Cc:       []string{"c@x.com"},
		Subject:  "Candidate: Jane Doe",
		HTMLBody: "<p>hi</p>",
	})

	want := "Content-Type: text/html; charset=utf-8\r\n" +
		"MIME-Version: 1.0\r\n" +
		"To: a@x.com, b@x.com\r\n" +
		"Cc: c@x.com\r\n" +
		"Subject: Candidate: Jane Doe\r\n\r\n" +
		"<p>hi</p>"
	if raw != want {
		t.Fatalf("unexpected message:\n%q\nwant\n%q", raw, want)
	}
}

func TestBuildMessage_OmitsEmptyCopyHeaders(t *testing.T) {
	raw := BuildMessage(domain.OutgoingMail{To: []string{"a@x.com"}, Subject: "s"})
	if strings.Contains(raw, "Cc:") || strings.Contains(raw, "Bcc:") {
		t.Fatalf("unexpected copy headers: %q", raw)
	}
}

func TestBuildMessage_EncodesNonASCIISubject(t *testing.T) {
	raw := BuildMessage(domain.OutgoingMail{To: []string{"a@x.com"}, Subject: "Résumé"})
	if !strings.Contains(raw, "Subject: =?utf-8?q?") {
		t.Fatalf("subject not encoded: %q", raw)
	}
}

func TestEncodeRaw_URLSafeNoPadding(t *testing.T) {
	enc := EncodeRaw(domain.OutgoingMail{To: []string{"a@x.com"}, Subject: "??>>", HTMLBody: "x"})
	if strings.ContainsAny(enc, "+/=") {
		t.Fatalf("not base64url without padding: %s", enc)
	}
	dec, err := base64.RawURLEncoding.DecodeString(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasSuffix(string(dec), "\r\n\r\nx") {
		t.Fatalf("unexpected body: %q", dec)
	}
}

// ---------------------------------------------------------------------------
// Sender
// ---------------------------------------------------------------------------

func newGmailServer(t *testing.T, status int, body string, gotRaw *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gmail/v1/users/me/messages/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer at-1" {
			t.Errorf("authorization header = %q", got)
		}
		var msg struct {
			Raw string `json:"raw"`
		}
		_ = json.NewDecoder(r.Body).Decode(&msg)
		if gotRaw != nil {
			*gotRaw = msg.Raw
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testToken() *oauth2.Token {
	return &oauth2.Token{AccessToken: "at-1", TokenType: "Bearer"}
}

func TestSender_Send(t *testing.T) {
	var raw string
	srv := newGmailServer(t, http.StatusOK, `{"id":"m-1","threadId":"t-1"}`, &raw)
	s := NewSender(nil, srv.URL+"/", zerolog.Nop())

	msg := domain.OutgoingMail{To: []string{"a@x.com"}, Subject: "Hi", HTMLBody: "<b>x</b>"}
	id, err := s.Send(context.Background(), testToken(), msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "m-1" {
		t.Errorf("id = %q", id)
	}
	if raw != EncodeRaw(msg) {
		t.Errorf("raw payload mismatch")
	}
}

func TestSender_UnauthorizedIsAuthError(t *testing.T) {
	srv := newGmailServer(t, http.StatusUnauthorized, `{"error":{"code":401,"message":"Invalid Credentials"}}`, nil)
	s := NewSender(nil, srv.URL+"/", zerolog.Nop())

	_, err := s.Send(context.Background(), testToken(), domain.OutgoingMail{To: []string{"a@x.com"}})
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if !errors.Is(err, domain.ErrAuthExpired) {
		t.Errorf("expected ErrAuthExpired, got %v", err)
	}
}

func TestSender_ServerErrorIsTransportError(t *testing.T) {
	srv := newGmailServer(t, http.StatusInternalServerError, `{"error":{"code":500,"message":"backend"}}`, nil)
	s := NewSender(nil, srv.URL+"/", zerolog.Nop())

	_, err := s.Send(context.Background(), testToken(), domain.OutgoingMail{To: []string{"a@x.com"}})
	var trErr *domain.TransportError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestSender_MissingToken(t *testing.T) {
	s := NewSender(nil, "", zerolog.Nop())
	_, err := s.Send(context.Background(), nil, domain.OutgoingMail{})
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// TokenBroker
// ---------------------------------------------------------------------------

func newBroker(t *testing.T, timeout time.Duration) (*TokenBroker, *memory.TokenStore) {
	t.Helper()
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Form.Get("code") == "bad" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","refresh_token":"rt-1","expires_in":3600}`))
	}))
	t.Cleanup(tokenSrv.Close)

	tokens := memory.NewTokenStore()
	b := NewTokenBroker(BrokerConfig{
		ClientID:     "client-1",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/api/v1/mail/auth/callback",
		StateSecret:  "state-secret",
		FlowTimeout:  timeout,
		AuthURL:      "https://accounts.example.com/auth",
		TokenURL:     tokenSrv.URL + "/token",
	}, tokens, zerolog.Nop())
	return b, tokens
}

func stateOf(t *testing.T, flowURL string) string {
	t.Helper()
	u, err := url.Parse(flowURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return u.Query().Get("state")
}

func TestBroker_BeginBuildsConsentURL(t *testing.T) {
	b, _ := newBroker(t, time.Minute)

	flow, err := b.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	u, _ := url.Parse(flow.URL())
	q := u.Query()
	if q.Get("client_id") != "client-1" || q.Get("access_type") != "offline" {
		t.Errorf("unexpected query: %v", q)
	}
	if !strings.Contains(q.Get("scope"), "gmail.send") {
		t.Errorf("scope = %q", q.Get("scope"))
	}
	if q.Get("state") == "" {
		t.Error("missing state")
	}
}

func TestBroker_SingleFlight(t *testing.T) {
	b, _ := newBroker(t, time.Minute)

	if _, err := b.Begin(context.Background()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	_, err := b.Begin(context.Background())
	if !errors.Is(err, domain.ErrAuthInProgress) {
		t.Fatalf("expected ErrAuthInProgress, got %v", err)
	}
}

func TestBroker_CompleteStoresToken(t *testing.T) {
	b, tokens := newBroker(t, time.Minute)
	ctx := context.Background()

	flow, _ := b.Begin(ctx)
	if err := b.Complete(ctx, stateOf(t, flow.URL()), "good"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := flow.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}

	tok, err := tokens.Get(ctx)
	if err != nil || tok.AccessToken != "at-1" || tok.RefreshToken != "rt-1" {
		t.Fatalf("token not stored: %+v, %v", tok, err)
	}
	if _, ok := b.Pending(); ok {
		t.Error("flow still pending")
	}
	if ok, _ := b.Connected(ctx); !ok {
		t.Error("expected connected")
	}
}

func TestBroker_CompleteRejectsForeignState(t *testing.T) {
	b, tokens := newBroker(t, time.Minute)
	ctx := context.Background()

	if _, err := b.Begin(ctx); err != nil {
		t.Fatalf("begin: %v", err)
	}
	err := b.Complete(ctx, "forged", "good")
	if !errors.Is(err, domain.ErrAuthExpired) {
		t.Fatalf("expected ErrAuthExpired, got %v", err)
	}
	if _, err := tokens.Get(ctx); !errors.Is(err, domain.ErrAuthRequired) {
		t.Error("token stored for forged state")
	}
	if _, ok := b.Pending(); !ok {
		t.Error("pending flow dropped by forged callback")
	}
}

func TestBroker_ExchangeFailure(t *testing.T) {
	b, _ := newBroker(t, time.Minute)
	ctx := context.Background()

	flow, _ := b.Begin(ctx)
	err := b.Complete(ctx, stateOf(t, flow.URL()), "bad")
	if !errors.Is(err, domain.ErrAuthDenied) {
		t.Fatalf("expected ErrAuthDenied, got %v", err)
	}
	if werr := flow.Wait(ctx); !errors.Is(werr, domain.ErrAuthDenied) {
		t.Fatalf("wait = %v", werr)
	}
}

func TestBroker_FailAccessDenied(t *testing.T) {
	b, _ := newBroker(t, time.Minute)
	ctx := context.Background()

	flow, _ := b.Begin(ctx)
	_ = b.Fail(stateOf(t, flow.URL()), "access_denied")

	err := flow.Wait(ctx)
	if !errors.Is(err, domain.ErrAuthDenied) {
		t.Fatalf("expected ErrAuthDenied, got %v", err)
	}
	if !strings.Contains(err.Error(), "access denied") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestBroker_FlowExpires(t *testing.T) {
	b, _ := newBroker(t, 20*time.Millisecond)
	ctx := context.Background()

	flow, _ := b.Begin(ctx)
	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := flow.Wait(waitCtx); !errors.Is(err, domain.ErrAuthExpired) {
		t.Fatalf("expected ErrAuthExpired, got %v", err)
	}

	if err := b.Complete(ctx, stateOf(t, flow.URL()), "good"); !errors.Is(err, domain.ErrAuthExpired) {
		t.Fatalf("late callback accepted: %v", err)
	}
	if _, err := b.Begin(ctx); err != nil {
		t.Fatalf("begin after expiry: %v", err)
	}
}

func TestBroker_Disconnect(t *testing.T) {
	b, tokens := newBroker(t, time.Minute)
	ctx := context.Background()
	_ = tokens.Put(ctx, testToken())

	if err := b.Disconnect(ctx); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if ok, _ := b.Connected(ctx); ok {
		t.Error("still connected")
	}
}
