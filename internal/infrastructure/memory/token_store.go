package memory

import (
	"context"
	"sync"

	"golang.org/x/oauth2"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// TokenStore keeps the mail token for the life of the process.
type TokenStore struct {
	mu  sync.RWMutex
	tok *oauth2.Token
}

func NewTokenStore() *TokenStore { return &TokenStore{} }

func (s *TokenStore) Get(_ context.Context) (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tok == nil {
		return nil, domain.ErrAuthRequired
	}
	cp := *s.tok
	return &cp, nil
}

func (s *TokenStore) Put(_ context.Context, tok *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *tok
	s.tok = &cp
	return nil
}

func (s *TokenStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = nil
	return nil
}
