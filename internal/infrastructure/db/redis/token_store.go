package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

const tokenKey = "mail:oauth_token"

// TokenStore keeps the operator's mail token so it survives restarts.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Get(ctx context.Context) (*oauth2.Token, error) {
	data, err := s.client.Get(ctx, tokenKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrAuthRequired
	}
	if err != nil {
		return nil, fmt.Errorf("token get: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("token decode: %w", err)
	}
	return &tok, nil
}

func (s *TokenStore) Put(ctx context.Context, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("token encode: %w", err)
	}
	return s.client.Set(ctx, tokenKey, data, 0).Err()
}

func (s *TokenStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, tokenKey).Err()
}
