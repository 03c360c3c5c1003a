package gmail

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
	"github.com/buzzhire/recruit-mailer/internal/core/ports"
)

const (
	defaultFlowTimeout = 5 * time.Minute
	stateSubject       = "mail-auth"
)

// BrokerConfig holds the OAuth client registration.
type BrokerConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	StateSecret  string
	FlowTimeout  time.Duration

	// AuthURL and TokenURL override Google's endpoints when non-empty.
	AuthURL  string
	TokenURL string
}

// OAuthConfig returns the oauth2 configuration for the send-only Gmail scope.
func (c BrokerConfig) OAuthConfig() *oauth2.Config {
	endpoint := google.Endpoint
	if c.AuthURL != "" {
		endpoint.AuthURL = c.AuthURL
	}
	if c.TokenURL != "" {
		endpoint.TokenURL = c.TokenURL
	}
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       []string{gmail.GmailSendScope},
		Endpoint:     endpoint,
	}
}

// TokenBroker runs the interactive authorization flow. At most one flow is
// pending at a time; a flow that expires is resolved with ErrAuthExpired and
// its late callback is rejected.
type TokenBroker struct {
	oauth       *oauth2.Config
	tokens      ports.TokenStore
	stateSecret []byte
	timeout     time.Duration
	logger      zerolog.Logger

	mu      sync.Mutex
	pending *PendingAuth
}

func NewTokenBroker(cfg BrokerConfig, tokens ports.TokenStore, logger zerolog.Logger) *TokenBroker {
	timeout := cfg.FlowTimeout
	if timeout <= 0 {
		timeout = defaultFlowTimeout
	}
	return &TokenBroker{
		oauth:       cfg.OAuthConfig(),
		tokens:      tokens,
		stateSecret: []byte(cfg.StateSecret),
		timeout:     timeout,
		logger:      logger,
	}
}

// PendingAuth is the one-shot result of a single Begin call.
type PendingAuth struct {
	url     string
	nonce   string
	expires time.Time

	once sync.Once
	done chan struct{}
	err  error
}

func (p *PendingAuth) URL() string { return p.url }

func (p *PendingAuth) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *PendingAuth) resolve(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Begin starts a new flow and returns the consent URL to open.
func (b *TokenBroker) Begin(_ context.Context) (ports.AuthFlow, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending != nil {
		return nil, &domain.AuthError{Reason: "finish or wait for the current authorization", Err: domain.ErrAuthInProgress}
	}

	nonce := uuid.NewString()
	expires := time.Now().Add(b.timeout)
	state, err := b.signState(nonce, expires)
	if err != nil {
		return nil, fmt.Errorf("sign state: %w", err)
	}

	p := &PendingAuth{
		url:     b.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent")),
		nonce:   nonce,
		expires: expires,
		done:    make(chan struct{}),
	}
	b.pending = p
	time.AfterFunc(b.timeout, func() { b.expire(p) })

	b.logger.Info().Time("expires", expires).Msg("mail authorization started")
	return p, nil
}

// Pending returns the flow currently waiting for its callback.
func (b *TokenBroker) Pending() (ports.AuthFlow, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return nil, false
	}
	return b.pending, true
}

// Complete exchanges code for a token and stores it. state must belong to the
// pending flow.
func (b *TokenBroker) Complete(ctx context.Context, state, code string) error {
	p, err := b.claim(state)
	if err != nil {
		return err
	}

	tok, err := b.oauth.Exchange(ctx, code)
	if err != nil {
		authErr := &domain.AuthError{Reason: "code exchange failed: " + err.Error(), Err: domain.ErrAuthDenied}
		p.resolve(authErr)
		return authErr
	}
	if err := b.tokens.Put(ctx, tok); err != nil {
		err = fmt.Errorf("store mail token: %w", err)
		p.resolve(err)
		return err
	}

	p.resolve(nil)
	b.logger.Info().Msg("mail account connected")
	return nil
}

// Fail resolves the pending flow with the provider's error (for example
// access_denied).
func (b *TokenBroker) Fail(state, reason string) error {
	p, err := b.claim(state)
	if err != nil {
		return err
	}
	if reason == "access_denied" {
		reason = "access denied; make sure the account is allowed to use this application"
	}
	authErr := &domain.AuthError{Reason: reason, Err: domain.ErrAuthDenied}
	p.resolve(authErr)

	b.logger.Warn().Str("reason", reason).Msg("mail authorization denied")
	return authErr
}

func (b *TokenBroker) Connected(ctx context.Context) (bool, error) {
	_, err := b.tokens.Get(ctx)
	if errors.Is(err, domain.ErrAuthRequired) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b *TokenBroker) Disconnect(ctx context.Context) error {
	if err := b.tokens.Delete(ctx); err != nil {
		return fmt.Errorf("drop mail token: %w", err)
	}
	b.logger.Info().Msg("mail account disconnected")
	return nil
}

// claim verifies state and detaches the matching pending flow.
func (b *TokenBroker) claim(state string) (*PendingAuth, error) {
	nonce, err := b.verifyState(state)
	if err != nil {
		return nil, &domain.AuthError{Reason: "invalid or expired state", Err: domain.ErrAuthExpired}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.pending
	if p == nil || p.nonce != nonce {
		return nil, &domain.AuthError{Reason: "no matching authorization in progress", Err: domain.ErrAuthExpired}
	}
	b.pending = nil
	return p, nil
}

func (b *TokenBroker) expire(p *PendingAuth) {
	b.mu.Lock()
	if b.pending == p {
		b.pending = nil
	}
	b.mu.Unlock()
	p.resolve(&domain.AuthError{Reason: "authorization timed out", Err: domain.ErrAuthExpired})
}

func (b *TokenBroker) signState(nonce string, expires time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        nonce,
		Subject:   stateSubject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.stateSecret)
}

func (b *TokenBroker) verifyState(state string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(state, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return b.stateSecret, nil
	})
	if err != nil || !tkn.Valid {
		return "", fmt.Errorf("state: %w", err)
	}
	if claims.Subject != stateSubject || claims.ID == "" {
		return "", errors.New("state: unexpected claims")
	}
	return claims.ID, nil
}
