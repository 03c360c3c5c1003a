package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// AuthService logs in the configured operator account.
type AuthService struct {
	username     string
	email        string
	passwordHash []byte
	jwtSecret    string
	tokenTTL     time.Duration
}

// NewAuthService configures the single operator. passwordHash is a bcrypt hash.
func NewAuthService(username, email, passwordHash, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &AuthService{
		username:     username,
		email:        email,
		passwordHash: []byte(passwordHash),
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
	}
}

// Login accepts either the operator's username or email.
func (s *AuthService) Login(_ context.Context, username, password string) (string, *domain.Operator, error) {
	if username == "" || password == "" || len(s.passwordHash) == 0 {
		return "", nil, domain.ErrInvalidCredentials
	}

	nameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	emailOK := s.email != "" && subtle.ConstantTimeCompare([]byte(username), []byte(s.email)) == 1
	if !nameOK && !emailOK {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	op := &domain.Operator{
		Username:   s.username,
		Email:      s.email,
		Role:       domain.RoleOperator,
		LoggedInAt: time.Now().UTC(),
	}
	token, err := s.generateToken(op)
	if err != nil {
		return "", nil, err
	}
	return token, op, nil
}

func (s *AuthService) generateToken(op *domain.Operator) (string, error) {
	return SignOperatorToken(s.jwtSecret, op.Username, op.Role, s.tokenTTL)
}

// SignOperatorToken issues the HS256 token checked by the API auth middleware.
func SignOperatorToken(secret, username, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
